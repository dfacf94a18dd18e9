package gallery

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStoreGalleryLifecycle(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := NewStore(root)
	ctx := context.Background()

	if _, err := store.List(ctx, "p1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("List() before ensure error = %v, want %v", err, ErrNotFound)
	}
	if err := store.EnsureProduct(ctx, "p1"); err != nil {
		t.Fatalf("EnsureProduct() error = %v", err)
	}
	if err := store.SaveImage(ctx, "p1", "main.png", strings.NewReader("main")); err != nil {
		t.Fatalf("SaveImage() error = %v", err)
	}
	for _, name := range []string{"b.jpg", "a.jpg"} {
		if err := store.SaveGalleryImage(ctx, "p1", name, strings.NewReader(name)); err != nil {
			t.Fatalf("SaveGalleryImage(%q) error = %v", name, err)
		}
	}

	got, err := store.List(ctx, "p1")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if diff := cmp.Diff([]string{"a.jpg", "b.jpg"}, got); diff != "" {
		t.Fatalf("List() mismatch (-want +got):\n%s", diff)
	}
	thumb, err := os.ReadFile(filepath.Join(root, ImagesDir, "p1", "gallery", "thumbs", "a.jpg"))
	if err != nil {
		t.Fatalf("read thumb: %v", err)
	}
	if string(thumb) != "a.jpg" {
		t.Fatalf("thumb = %q, want copy of original", thumb)
	}

	if err := store.DeleteGalleryImage(ctx, "p1", "a.jpg"); err != nil {
		t.Fatalf("DeleteGalleryImage() error = %v", err)
	}
	if err := store.DeleteGalleryImage(ctx, "p1", "a.jpg"); err != nil {
		t.Fatalf("second DeleteGalleryImage() error = %v", err)
	}
	got, _ = store.List(ctx, "p1")
	if diff := cmp.Diff([]string{"b.jpg"}, got); diff != "" {
		t.Fatalf("List() after delete mismatch (-want +got):\n%s", diff)
	}

	if err := store.DeleteImage(ctx, "p1", "main.png"); err != nil {
		t.Fatalf("DeleteImage() error = %v", err)
	}
	if err := store.DeleteProduct(ctx, "p1"); err != nil {
		t.Fatalf("DeleteProduct() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, ImagesDir, "p1")); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("product dir still present: %v", err)
	}
}

func TestStoreRejectsTraversalNames(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	ctx := context.Background()
	if err := store.SaveImage(ctx, "p1", "../evil.png", strings.NewReader("x")); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("SaveImage() error = %v, want %v", err, ErrInvalidName)
	}
	if err := store.DeleteProduct(ctx, ".."); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("DeleteProduct() error = %v, want %v", err, ErrInvalidName)
	}
}
