// Package gallery lists and stores product images under the public
// directory, laid out as product_images/<product id>/{<image>,gallery/}.
package gallery

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// ImagesDir is the public subdirectory holding per-product image folders.
const ImagesDir = "product_images"

var (
	// ErrNotFound reports a missing gallery directory. Errors carrying it
	// also match fs.ErrNotExist.
	ErrNotFound = errors.New("gallery not found")
	// ErrInvalidName reports a product id or file name that is not a single
	// path element.
	ErrInvalidName = errors.New("invalid gallery path element")
)

// Reader lists gallery images from a file system rooted at the public
// directory.
type Reader struct {
	fsys fs.FS
}

// NewReader returns a Reader over fsys.
func NewReader(fsys fs.FS) Reader {
	return Reader{fsys: fsys}
}

// List returns the regular file names in the product's gallery directory in
// lexical order. Subdirectories such as thumbs are skipped.
func (r Reader) List(ctx context.Context, productID string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.fsys == nil {
		return nil, fmt.Errorf("gallery file system is not configured")
	}
	dir, err := galleryDir(productID)
	if err != nil {
		return nil, err
	}
	entries, err := fs.ReadDir(r.fsys, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return nil, fmt.Errorf("read gallery %s: %w", productID, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// ImagePath returns the URL path of a product's main image.
func ImagePath(productID, name string) string {
	return "/" + path.Join(ImagesDir, productID, name)
}

// GalleryPath returns the URL path of one gallery image.
func GalleryPath(productID, name string) string {
	return "/" + path.Join(ImagesDir, productID, "gallery", name)
}

// ThumbPath returns the URL path of one gallery thumbnail.
func ThumbPath(productID, name string) string {
	return "/" + path.Join(ImagesDir, productID, "gallery", "thumbs", name)
}

func galleryDir(productID string) (string, error) {
	if err := checkElement(productID); err != nil {
		return "", err
	}
	return path.Join(ImagesDir, productID, "gallery"), nil
}

func checkElement(value string) error {
	if value == "" || value == "." || value == ".." || strings.ContainsAny(value, `/\`) || !fs.ValidPath(value) {
		return fmt.Errorf("%w: %q", ErrInvalidName, value)
	}
	return nil
}
