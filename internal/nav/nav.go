// Package nav models the three-level gallery navigation
// (categories -> albums of a category -> photos of an album) as an
// explicit state machine, so every screen that renders the hierarchy
// shares one set of transition rules.
package nav

type Level int

const (
	LevelCategories Level = iota
	LevelAlbums
	LevelPhotos
)

func (l Level) String() string {
	switch l {
	case LevelCategories:
		return "categories"
	case LevelAlbums:
		return "albums"
	case LevelPhotos:
		return "photos"
	}
	return "unknown"
}

// State is one position in the hierarchy. The zero value is the initial
// state: the category overview.
type State struct {
	Level    Level
	Category string // set at LevelAlbums and LevelPhotos
	AlbumID  string // set at LevelPhotos
}

// EnterCategory descends from the overview into one category's albums.
// Entering a category from deeper levels resets the album context.
func (s State) EnterCategory(category string) State {
	return State{Level: LevelAlbums, Category: category}
}

// EnterAlbum descends into an album's photos. Only valid from the album
// list; calls from the overview are ignored because no category context
// exists yet.
func (s State) EnterAlbum(albumID string) State {
	if s.Level == LevelCategories {
		return s
	}
	return State{Level: LevelPhotos, Category: s.Category, AlbumID: albumID}
}

// Back ascends one level. Backing out of the overview stays put.
func (s State) Back() State {
	switch s.Level {
	case LevelPhotos:
		return State{Level: LevelAlbums, Category: s.Category}
	case LevelAlbums:
		return State{}
	}
	return s
}
