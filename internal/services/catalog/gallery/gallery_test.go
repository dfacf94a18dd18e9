package gallery

import (
	"context"
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

func TestReaderListsRegularFiles(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"product_images/p1/gallery/b.png":        &fstest.MapFile{Data: []byte("b")},
		"product_images/p1/gallery/a.jpg":        &fstest.MapFile{Data: []byte("a")},
		"product_images/p1/gallery/thumbs/a.jpg": &fstest.MapFile{Data: []byte("a")},
		"product_images/p1/main.png":             &fstest.MapFile{Data: []byte("m")},
	}
	got, err := NewReader(fsys).List(context.Background(), "p1")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if diff := cmp.Diff([]string{"a.jpg", "b.png"}, got); diff != "" {
		t.Fatalf("List() mismatch (-want +got):\n%s", diff)
	}
}

func TestReaderEmptyGallery(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"product_images/p1/gallery": &fstest.MapFile{Mode: fs.ModeDir},
	}
	got, err := NewReader(fsys).List(context.Background(), "p1")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("List() = %#v, want empty non-nil slice", got)
	}
}

func TestReaderMissingDirectory(t *testing.T) {
	t.Parallel()

	_, err := NewReader(fstest.MapFS{}).List(context.Background(), "p1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("List() error = %v, want %v", err, ErrNotFound)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("List() error = %v, want it to match fs.ErrNotExist", err)
	}
}

func TestReaderRejectsPathTraversal(t *testing.T) {
	t.Parallel()

	reader := NewReader(fstest.MapFS{})
	for _, id := range []string{"", ".", "..", "../etc", "a/b", `a\b`} {
		if _, err := reader.List(context.Background(), id); !errors.Is(err, ErrInvalidName) {
			t.Fatalf("List(%q) error = %v, want %v", id, err, ErrInvalidName)
		}
	}
}

func TestReaderHonorsCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewReader(fstest.MapFS{}).List(ctx, "p1"); !errors.Is(err, context.Canceled) {
		t.Fatalf("List() error = %v, want context.Canceled", err)
	}
}

func TestPaths(t *testing.T) {
	t.Parallel()

	if got := ImagePath("p1", "a.png"); got != "/product_images/p1/a.png" {
		t.Fatalf("ImagePath() = %q", got)
	}
	if got := GalleryPath("p1", "a.png"); got != "/product_images/p1/gallery/a.png" {
		t.Fatalf("GalleryPath() = %q", got)
	}
	if got := ThumbPath("p1", "a.png"); got != "/product_images/p1/gallery/thumbs/a.png" {
		t.Fatalf("ThumbPath() = %q", got)
	}
}
