package storage

import (
	"errors"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	// Registered decoders determine which upload formats are accepted
	// and how their dimensions are probed.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/google/uuid"
)

// ErrNotAnImage is returned when an upload cannot be decoded by any
// registered image format.
var ErrNotAnImage = errors.New("storage: file is not a supported image")

// SavedImage describes a stored upload: its path relative to the media
// root and the pixel dimensions probed from the file header.
type SavedImage struct {
	Path   string
	Width  int
	Height int
}

// SaveImage stores an uploaded image under <mediaRoot>/<subdir> with a
// generated filename and returns its reference path and dimensions.
func SaveImage(fh *multipart.FileHeader, mediaRoot, subdir string) (*SavedImage, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	cfg, format, err := image.DecodeConfig(src)
	if err != nil {
		return nil, ErrNotAnImage
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	dir := filepath.Join(mediaRoot, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	name := fmt.Sprintf("%s.%s", uuid.New().String(), format)
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return nil, err
	}

	return &SavedImage{
		Path:   filepath.ToSlash(filepath.Join(subdir, name)),
		Width:  cfg.Width,
		Height: cfg.Height,
	}, nil
}
