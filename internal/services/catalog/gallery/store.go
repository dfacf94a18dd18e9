package gallery

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Store reads and writes product images on disk under root.
type Store struct {
	Reader
	root string
}

// NewStore returns a disk store rooted at the public directory.
func NewStore(root string) *Store {
	return &Store{Reader: NewReader(os.DirFS(root)), root: root}
}

// EnsureProduct creates the product's gallery and thumbs directories.
func (s *Store) EnsureProduct(ctx context.Context, productID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkElement(productID); err != nil {
		return err
	}
	dir := filepath.Join(s.root, ImagesDir, productID, "gallery", "thumbs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create gallery dirs: %w", err)
	}
	return nil
}

// SaveImage writes the product's main image.
func (s *Store) SaveImage(ctx context.Context, productID, name string, src io.Reader) error {
	if err := s.EnsureProduct(ctx, productID); err != nil {
		return err
	}
	if err := checkElement(name); err != nil {
		return err
	}
	return writeFile(filepath.Join(s.root, ImagesDir, productID, name), src)
}

// DeleteImage removes the product's main image. A missing file is not an
// error.
func (s *Store) DeleteImage(ctx context.Context, productID, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkElement(productID); err != nil {
		return err
	}
	if err := checkElement(name); err != nil {
		return err
	}
	return removeFile(filepath.Join(s.root, ImagesDir, productID, name))
}

// SaveGalleryImage writes one gallery image and its thumbnail copy.
func (s *Store) SaveGalleryImage(ctx context.Context, productID, name string, src io.Reader) error {
	if err := s.EnsureProduct(ctx, productID); err != nil {
		return err
	}
	if err := checkElement(name); err != nil {
		return err
	}
	dir := filepath.Join(s.root, ImagesDir, productID, "gallery")
	if err := writeFile(filepath.Join(dir, name), src); err != nil {
		return err
	}
	return copyFile(filepath.Join(dir, name), filepath.Join(dir, "thumbs", name))
}

// DeleteGalleryImage removes one gallery image and its thumbnail.
func (s *Store) DeleteGalleryImage(ctx context.Context, productID, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkElement(productID); err != nil {
		return err
	}
	if err := checkElement(name); err != nil {
		return err
	}
	dir := filepath.Join(s.root, ImagesDir, productID, "gallery")
	if err := removeFile(filepath.Join(dir, name)); err != nil {
		return err
	}
	return removeFile(filepath.Join(dir, "thumbs", name))
}

// DeleteProduct removes every image of the product.
func (s *Store) DeleteProduct(ctx context.Context, productID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkElement(productID); err != nil {
		return err
	}
	if err := os.RemoveAll(filepath.Join(s.root, ImagesDir, productID)); err != nil {
		return fmt.Errorf("remove product images: %w", err)
	}
	return nil
}

func writeFile(target string, src io.Reader) (err error) {
	file, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("create image: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("close image: %w", closeErr)
		}
	}()
	if _, err := io.Copy(file, src); err != nil {
		return fmt.Errorf("write image: %w", err)
	}
	return nil
}

func copyFile(from, to string) error {
	src, err := os.Open(from)
	if err != nil {
		return fmt.Errorf("open image: %w", err)
	}
	defer src.Close()
	return writeFile(to, src)
}

func removeFile(target string) error {
	if err := os.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove image: %w", err)
	}
	return nil
}
