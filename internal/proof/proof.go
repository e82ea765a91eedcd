// Package proof holds the client proofing session state machine: a PIN
// gate, cap-checked favorite toggling, and a one-time submission. It is
// pure state; persistence belongs to the store and rendering to the
// handlers, which keeps the rules testable on their own.
package proof

import "errors"

var (
	// ErrLocked means the session has not passed the PIN gate yet.
	ErrLocked = errors.New("album is locked")

	// ErrCapReached means the selection limit is met; the toggle was refused.
	ErrCapReached = errors.New("selection limit reached")

	// ErrEmptySelection means submit was called with nothing selected.
	ErrEmptySelection = errors.New("no photos selected")

	// ErrSubmitted means the selection was already finalized; the session
	// is read-only.
	ErrSubmitted = errors.New("selection already submitted")
)

type Phase int

const (
	PhaseLocked Phase = iota
	PhaseSelecting
	PhaseSubmitted
)

func (p Phase) String() string {
	switch p {
	case PhaseLocked:
		return "locked"
	case PhaseSelecting:
		return "selecting"
	case PhaseSubmitted:
		return "submitted"
	}
	return "unknown"
}

// Session tracks one client's progress through an album. A limit of 0
// means unlimited.
type Session struct {
	AlbumID  string
	Limit    int
	phase    Phase
	selected map[string]bool
}

// NewSession starts a locked session. If the album was already submitted
// when loaded, the session opens directly in the read-only submitted phase.
func NewSession(albumID string, limit int, alreadySubmitted bool) *Session {
	s := &Session{
		AlbumID:  albumID,
		Limit:    limit,
		selected: make(map[string]bool),
	}
	if alreadySubmitted {
		s.phase = PhaseSubmitted
	}
	return s
}

func (s *Session) Phase() Phase { return s.phase }

// Unlock moves a locked session into selecting when the PIN check passed.
// A failed check leaves the session locked.
func (s *Session) Unlock(pinOK bool) bool {
	if s.phase == PhaseLocked && pinOK {
		s.phase = PhaseSelecting
	}
	return s.phase != PhaseLocked
}

// Restore seeds the selected set from persisted selections, e.g. when the
// client returns in a new browser session.
func (s *Session) Restore(photoIDs []string) {
	for _, id := range photoIDs {
		s.selected[id] = true
	}
}

// Toggle flips a photo's selected state. Removing is always permitted;
// adding is refused with ErrCapReached once the limit is met. Returns
// whether the photo is selected after the call.
func (s *Session) Toggle(photoID string) (selected bool, err error) {
	switch s.phase {
	case PhaseLocked:
		return false, ErrLocked
	case PhaseSubmitted:
		return false, ErrSubmitted
	}

	if s.selected[photoID] {
		delete(s.selected, photoID)
		return false, nil
	}
	if s.Limit > 0 && len(s.selected) >= s.Limit {
		return false, ErrCapReached
	}
	s.selected[photoID] = true
	return true, nil
}

// Revert undoes an optimistic toggle whose persistence failed, restoring
// the previous state instead of letting the display drift.
func (s *Session) Revert(photoID string, wasSelected bool) {
	if s.phase != PhaseSelecting {
		return
	}
	if wasSelected {
		s.selected[photoID] = true
	} else {
		delete(s.selected, photoID)
	}
}

// Submit finalizes the selection. At least one photo must be selected.
// Submitting an already submitted session is a no-op.
func (s *Session) Submit() error {
	switch s.phase {
	case PhaseLocked:
		return ErrLocked
	case PhaseSubmitted:
		return nil
	}
	if len(s.selected) == 0 {
		return ErrEmptySelection
	}
	s.phase = PhaseSubmitted
	return nil
}

func (s *Session) Selected(photoID string) bool { return s.selected[photoID] }

func (s *Session) Count() int { return len(s.selected) }

// SelectedIDs returns the selected photo ids in no particular order.
func (s *Session) SelectedIDs() []string {
	ids := make([]string, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	return ids
}
