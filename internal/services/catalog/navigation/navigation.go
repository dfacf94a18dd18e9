// Package navigation holds the header navigation loaded once at startup.
//
// The snapshot is not refreshed: admin edits to pages or categories appear
// in the header after the next restart.
package navigation

import (
	"context"
	"fmt"

	"github.com/louisbranch/storefront/internal/services/catalog/storage"
	"golang.org/x/sync/errgroup"
)

// Link is one navigation entry.
type Link struct {
	Slug  string
	Title string
}

// PageLister is the page read Load needs.
type PageLister interface {
	ListPages(ctx context.Context) ([]storage.Page, error)
}

// CategoryLister is the category read Load needs.
type CategoryLister interface {
	ListCategories(ctx context.Context) ([]storage.Category, error)
}

// Snapshot is an immutable view of pages and categories.
type Snapshot struct {
	pages      []Link
	categories []Link
}

// New builds a snapshot from explicit links.
func New(pages, categories []Link) Snapshot {
	return Snapshot{
		pages:      append([]Link(nil), pages...),
		categories: append([]Link(nil), categories...),
	}
}

// Load reads pages and categories concurrently. Both lists arrive already
// ordered by their sorting field.
func Load(ctx context.Context, pages PageLister, categories CategoryLister) (Snapshot, error) {
	if pages == nil || categories == nil {
		return Snapshot{}, fmt.Errorf("page and category listers are required")
	}
	var (
		pageRecords     []storage.Page
		categoryRecords []storage.Category
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		pageRecords, err = pages.ListPages(groupCtx)
		if err != nil {
			return fmt.Errorf("load pages: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		var err error
		categoryRecords, err = categories.ListCategories(groupCtx)
		if err != nil {
			return fmt.Errorf("load categories: %w", err)
		}
		return nil
	})
	if err := group.Wait(); err != nil {
		return Snapshot{}, err
	}

	snapshot := Snapshot{
		pages:      make([]Link, 0, len(pageRecords)),
		categories: make([]Link, 0, len(categoryRecords)),
	}
	for _, page := range pageRecords {
		snapshot.pages = append(snapshot.pages, Link{Slug: page.Slug, Title: page.Title})
	}
	for _, category := range categoryRecords {
		snapshot.categories = append(snapshot.categories, Link{Slug: category.Slug, Title: category.Title})
	}
	return snapshot, nil
}

// Pages returns a copy of the page links.
func (s Snapshot) Pages() []Link {
	return append([]Link(nil), s.pages...)
}

// Categories returns a copy of the category links.
func (s Snapshot) Categories() []Link {
	return append([]Link(nil), s.categories...)
}
