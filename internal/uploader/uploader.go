// Package uploader processes admin photo uploads: decode, downscale,
// re-encode as JPEG and hand the bytes to a file store. Batches run
// strictly sequentially so per-file progress stays meaningful and the
// file store is never hammered; one failed file is flagged and the rest
// of the batch continues.
package uploader

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/nfnt/resize"
)

var ErrUnsupportedFormat = errors.New("unsupported image format, only PNG and JPEG are allowed")

// FileStore persists processed image bytes and returns the public URL the
// stored file is reachable at.
type FileStore interface {
	Save(filename string, r io.Reader) (publicURL string, err error)
}

// DiskStore writes files under a local directory served as static content.
type DiskStore struct {
	Dir          string // e.g. "static/uploads"
	PublicPrefix string // e.g. "/static/uploads"
}

func (d *DiskStore) Save(filename string, r io.Reader) (string, error) {
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(d.Dir, filename)
	out, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, r); err != nil {
		os.Remove(path)
		return "", err
	}
	return d.PublicPrefix + "/" + filename, nil
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusUploading Status = "uploading"
	StatusComplete  Status = "complete"
	StatusError     Status = "error"
)

// File is one entry in an upload batch.
type File struct {
	Name   string
	Reader io.Reader

	Status    Status
	PublicURL string
	Err       error
}

// Processor resizes and stores images. MaxWidth bounds the stored width;
// taller-than-wide originals keep their aspect ratio.
type Processor struct {
	Store    FileStore
	MaxWidth uint
	Quality  int
}

func NewProcessor(store FileStore) *Processor {
	return &Processor{Store: store, MaxWidth: 1600, Quality: 80}
}

// Process handles a single file: decode, resize, encode, store. The photo
// row must only be created by the caller after Process succeeds, so a
// failed upload never leaves an orphan record.
func (p *Processor) Process(name string, r io.Reader) (publicURL string, err error) {
	var img image.Image
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		img, err = png.Decode(r)
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(r)
	default:
		return "", ErrUnsupportedFormat
	}
	if err != nil {
		return "", fmt.Errorf("failed to decode %s: %w", name, err)
	}

	if p.MaxWidth > 0 && uint(img.Bounds().Dx()) > p.MaxWidth {
		img = resize.Resize(p.MaxWidth, 0, img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: p.Quality}); err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", name, err)
	}

	filename := uuid.New().String() + ".jpg"
	return p.Store.Save(filename, &buf)
}

// ProcessBatch runs the files one at a time in order. Each file ends up
// complete (with its public URL) or error (with the cause); a failure does
// not stop the files after it. The onDone callback fires after each file
// so callers can create the photo row for successes as the batch advances.
func (p *Processor) ProcessBatch(files []*File, onDone func(*File)) {
	for _, f := range files {
		f.Status = StatusUploading
		url, err := p.Process(f.Name, f.Reader)
		if err != nil {
			f.Status = StatusError
			f.Err = err
		} else {
			f.Status = StatusComplete
			f.PublicURL = url
		}
		if onDone != nil {
			onDone(f)
		}
	}
}
