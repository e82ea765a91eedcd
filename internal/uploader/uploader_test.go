package uploader

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"strings"
	"testing"
)

// fakeStore records saved filenames. It can be told to fail for a given
// file name so batch error handling is testable without touching disk.
type fakeStore struct {
	saved    []string
	failNext bool
}

func (f *fakeStore) Save(filename string, r io.Reader) (string, error) {
	if f.failNext {
		f.failNext = false
		return "", errors.New("disk full")
	}
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	f.saved = append(f.saved, filename)
	return "/static/uploads/" + filename, nil
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	img.Set(0, 0, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode test PNG: %v", err)
	}
	return buf.Bytes()
}

func jpegBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("Failed to encode test JPEG: %v", err)
	}
	return buf.Bytes()
}

func TestProcessStoresJPEG(t *testing.T) {
	store := &fakeStore{}
	p := NewProcessor(store)

	url, err := p.Process("photo.png", bytes.NewReader(pngBytes(t, 10, 10)))
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if !strings.HasPrefix(url, "/static/uploads/") || !strings.HasSuffix(url, ".jpg") {
		t.Errorf("Unexpected public URL: %q", url)
	}
	if len(store.saved) != 1 {
		t.Errorf("Expected 1 saved file, got %d", len(store.saved))
	}
}

func TestProcessResizesWideImages(t *testing.T) {
	store := &fakeStore{}
	p := NewProcessor(store)
	p.MaxWidth = 8

	var got bytes.Buffer
	p.Store = saveFunc(func(filename string, r io.Reader) (string, error) {
		if _, err := io.Copy(&got, r); err != nil {
			return "", err
		}
		return "/x/" + filename, nil
	})

	if _, err := p.Process("wide.jpg", bytes.NewReader(jpegBytes(t, 20, 10))); err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	img, err := jpeg.Decode(&got)
	if err != nil {
		t.Fatalf("Stored bytes are not a JPEG: %v", err)
	}
	if img.Bounds().Dx() != 8 {
		t.Errorf("Expected width 8 after resize, got %d", img.Bounds().Dx())
	}
}

type saveFunc func(filename string, r io.Reader) (string, error)

func (f saveFunc) Save(filename string, r io.Reader) (string, error) { return f(filename, r) }

func TestProcessRejectsUnsupportedFormat(t *testing.T) {
	p := NewProcessor(&fakeStore{})

	if _, err := p.Process("clip.gif", bytes.NewReader([]byte("GIF89a"))); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
	if _, err := p.Process("broken.png", bytes.NewReader([]byte("not a png"))); err == nil {
		t.Error("Expected decode error for corrupt bytes")
	}
}

func TestProcessBatchContinuesPastFailures(t *testing.T) {
	store := &fakeStore{}
	p := NewProcessor(store)

	files := []*File{
		{Name: "one.png", Reader: bytes.NewReader(pngBytes(t, 4, 4))},
		{Name: "two.png", Reader: bytes.NewReader([]byte("garbage"))},
		{Name: "three.jpg", Reader: bytes.NewReader(jpegBytes(t, 4, 4))},
	}

	var doneOrder []string
	p.ProcessBatch(files, func(f *File) {
		doneOrder = append(doneOrder, f.Name)
	})

	if files[0].Status != StatusComplete || files[0].PublicURL == "" {
		t.Errorf("Expected file one complete, got %+v", files[0])
	}
	if files[1].Status != StatusError || files[1].Err == nil {
		t.Errorf("Expected file two flagged as error, got %+v", files[1])
	}
	if files[2].Status != StatusComplete || files[2].PublicURL == "" {
		t.Errorf("Expected file three complete despite earlier failure, got %+v", files[2])
	}

	// Strictly sequential: callbacks fire in submission order.
	if len(doneOrder) != 3 || doneOrder[0] != "one.png" || doneOrder[1] != "two.png" || doneOrder[2] != "three.jpg" {
		t.Errorf("Unexpected callback order: %v", doneOrder)
	}
	if len(store.saved) != 2 {
		t.Errorf("Expected 2 stored files, got %d", len(store.saved))
	}
}

func TestProcessBatchStoreFailure(t *testing.T) {
	store := &fakeStore{failNext: true}
	p := NewProcessor(store)

	files := []*File{
		{Name: "one.png", Reader: bytes.NewReader(pngBytes(t, 4, 4))},
		{Name: "two.png", Reader: bytes.NewReader(pngBytes(t, 4, 4))},
	}
	p.ProcessBatch(files, nil)

	if files[0].Status != StatusError {
		t.Errorf("Expected store failure to flag the file, got %+v", files[0])
	}
	if files[1].Status != StatusComplete {
		t.Errorf("Expected second file to succeed, got %+v", files[1])
	}
}

func TestDiskStoreSave(t *testing.T) {
	d := &DiskStore{Dir: t.TempDir(), PublicPrefix: "/static/uploads"}

	url, err := d.Save("abc.jpg", strings.NewReader("bytes"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if url != "/static/uploads/abc.jpg" {
		t.Errorf("Unexpected URL: %q", url)
	}
}
