package nav

import "testing"

func TestEnterCategory(t *testing.T) {
	s := State{}.EnterCategory("casamentos")
	if s.Level != LevelAlbums || s.Category != "casamentos" || s.AlbumID != "" {
		t.Errorf("Unexpected state after EnterCategory: %+v", s)
	}
}

func TestEnterCategoryFromPhotosResetsAlbum(t *testing.T) {
	s := State{Level: LevelPhotos, Category: "casamentos", AlbumID: "a1"}
	s = s.EnterCategory("eventos")
	if s.Level != LevelAlbums || s.Category != "eventos" || s.AlbumID != "" {
		t.Errorf("Expected album context cleared, got %+v", s)
	}
}

func TestEnterAlbum(t *testing.T) {
	s := State{}.EnterCategory("gestantes").EnterAlbum("a1")
	if s.Level != LevelPhotos || s.Category != "gestantes" || s.AlbumID != "a1" {
		t.Errorf("Unexpected state after EnterAlbum: %+v", s)
	}
}

func TestEnterAlbumFromOverviewIsIgnored(t *testing.T) {
	s := State{}.EnterAlbum("a1")
	if s.Level != LevelCategories || s.AlbumID != "" {
		t.Errorf("Expected overview to ignore EnterAlbum, got %+v", s)
	}
}

func TestBack(t *testing.T) {
	s := State{}.EnterCategory("externo").EnterAlbum("a1")

	s = s.Back()
	if s.Level != LevelAlbums || s.Category != "externo" || s.AlbumID != "" {
		t.Errorf("Expected album list after Back, got %+v", s)
	}

	s = s.Back()
	if s != (State{}) {
		t.Errorf("Expected overview after second Back, got %+v", s)
	}

	// Backing out of the overview stays put.
	s = s.Back()
	if s != (State{}) {
		t.Errorf("Expected overview to be terminal, got %+v", s)
	}
}

func TestLevelString(t *testing.T) {
	cases := map[Level]string{
		LevelCategories: "categories",
		LevelAlbums:     "albums",
		LevelPhotos:     "photos",
		Level(99):       "unknown",
	}
	for level, want := range cases {
		if got := level.String(); got != want {
			t.Errorf("Level(%d).String() = %q, want %q", level, got, want)
		}
	}
}
