// Package imageio loads icon images from files for use in atlases.
//
// A File is an atlas.Image: it starts loading when opened and closes its
// Loaded channel when decoding finishes, successfully or not. A File that
// failed has a nil Image and a non-nil Err, so an atlas built from it still
// becomes ready.
//
// PNG, JPEG, GIF, BMP, TIFF and WebP are supported. The format is detected
// from the file content, not the name.
package imageio

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF
	_ "image/jpeg" // register JPEG
	_ "image/png"  // register PNG
	"io"
	"os"

	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"  // register BMP
	_ "golang.org/x/image/tiff" // register TIFF
	_ "golang.org/x/image/webp" // register WebP

	"github.com/gogpu/markers/internal/logging"
)

// ErrNotImage is returned for content that is not a known image format.
var ErrNotImage = errors.New("imageio: not an image")

// headerSize is the number of bytes inspected to detect the format.
const headerSize = 262

// Decode detects the image format of r from its content and decodes it.
// It returns the file extension of the detected format, for example "png".
func Decode(r io.Reader) (image.Image, string, error) {
	br := bufio.NewReaderSize(r, headerSize)
	head, err := br.Peek(headerSize)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, "", err
	}

	kind, err := filetype.Image(head)
	if err != nil || kind == filetype.Unknown {
		return nil, "", ErrNotImage
	}

	img, _, err := image.Decode(br)
	if err != nil {
		return nil, kind.Extension, fmt.Errorf("imageio: decode %s: %w", kind.Extension, err)
	}
	return img, kind.Extension, nil
}

// DecodeFile opens and decodes the image at path.
func DecodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// File is an image handle backed by a file.
type File struct {
	path string
	done chan struct{}
	img  image.Image
	err  error
}

// Open starts loading the image at path in the background. Cancelling ctx
// before loading starts fails the handle with the context's error.
func Open(ctx context.Context, path string) *File {
	f := newFile(path)
	go f.load(ctx)
	return f
}

func newFile(path string) *File {
	return &File{path: path, done: make(chan struct{})}
}

func (f *File) load(ctx context.Context) {
	defer close(f.done)
	if err := ctx.Err(); err != nil {
		f.err = err
		return
	}
	f.img, f.err = DecodeFile(f.path)
	if f.err != nil {
		logging.Logger().Warn("imageio: load failed", "path", f.path, "err", f.err)
		return
	}
	logging.Logger().Debug("imageio: loaded", "path", f.path, "size", f.img.Bounds().Size())
}

// Path returns the file path.
func (f *File) Path() string {
	return f.path
}

// Loaded returns a channel closed when loading has finished.
func (f *File) Loaded() <-chan struct{} {
	return f.done
}

// Image returns the decoded image, or nil before loading finished or if it
// failed.
func (f *File) Image() image.Image {
	select {
	case <-f.done:
		return f.img
	default:
		return nil
	}
}

// Err returns the loading error, or nil before loading finished or if it
// succeeded.
func (f *File) Err() error {
	select {
	case <-f.done:
		return f.err
	default:
		return nil
	}
}

// LoadAll loads every path with at most limit files decoding at once and
// returns the loaded handles in path order. Repeated paths share a handle.
// It stops at the first failure and returns its error. A limit of zero or
// less means no limit.
func LoadAll(ctx context.Context, paths []string, limit int) ([]*File, error) {
	return NewCache(0).LoadAll(ctx, paths, limit)
}
