package navigation

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/louisbranch/storefront/internal/services/catalog/storage"
)

type fakeLister struct {
	pages      []storage.Page
	categories []storage.Category
	pageErr    error
	catErr     error
}

func (f fakeLister) ListPages(context.Context) ([]storage.Page, error) {
	return f.pages, f.pageErr
}

func (f fakeLister) ListCategories(context.Context) ([]storage.Category, error) {
	return f.categories, f.catErr
}

func TestLoadBuildsSnapshot(t *testing.T) {
	t.Parallel()

	lister := fakeLister{
		pages:      []storage.Page{{Slug: "home", Title: "Home"}, {Slug: "about", Title: "About"}},
		categories: []storage.Category{{Slug: "shirts", Title: "Shirts"}},
	}
	snapshot, err := Load(context.Background(), lister, lister)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff([]Link{{Slug: "home", Title: "Home"}, {Slug: "about", Title: "About"}}, snapshot.Pages()); diff != "" {
		t.Fatalf("Pages() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Link{{Slug: "shirts", Title: "Shirts"}}, snapshot.Categories()); diff != "" {
		t.Fatalf("Categories() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFailsWhenEitherReadFails(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	if _, err := Load(context.Background(), fakeLister{pageErr: boom}, fakeLister{}); !errors.Is(err, boom) {
		t.Fatalf("Load() page failure = %v, want %v", err, boom)
	}
	if _, err := Load(context.Background(), fakeLister{}, fakeLister{catErr: boom}); !errors.Is(err, boom) {
		t.Fatalf("Load() category failure = %v, want %v", err, boom)
	}
	if _, err := Load(context.Background(), nil, fakeLister{}); err == nil {
		t.Fatal("expected nil lister error")
	}
}

func TestSnapshotAccessorsReturnCopies(t *testing.T) {
	t.Parallel()

	source := []Link{{Slug: "home", Title: "Home"}}
	snapshot := New(source, nil)
	source[0].Title = "mutated"

	pages := snapshot.Pages()
	pages[0].Title = "also mutated"
	if got := snapshot.Pages()[0].Title; got != "Home" {
		t.Fatalf("Pages()[0].Title = %q, want %q", got, "Home")
	}
	if snapshot.Categories() != nil {
		t.Fatal("expected nil categories for empty snapshot")
	}
}
