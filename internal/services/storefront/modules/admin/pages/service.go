package pages

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/storefront/internal/platform/id"
	"github.com/louisbranch/storefront/internal/services/catalog/slug"
	"github.com/louisbranch/storefront/internal/services/catalog/storage"
	apperrors "github.com/louisbranch/storefront/internal/services/storefront/platform/errors"
	"github.com/louisbranch/storefront/internal/services/storefront/routepath"
)

// Slug validation messages.
const (
	DuplicateSlugMessage = "Page slug exists, choose another."
	ReservedSlugMessage  = "Page slug is reserved, choose another."
)

// Store is the page persistence the module needs.
type Store interface {
	ListPages(ctx context.Context) ([]storage.Page, error)
	GetPage(ctx context.Context, id string) (storage.Page, error)
	CreatePage(ctx context.Context, page storage.Page) error
	UpdatePage(ctx context.Context, page storage.Page) error
	DeletePage(ctx context.Context, id string) error
	ReorderPages(ctx context.Context, ids []string) error
}

// Form is the submitted page form.
type Form struct {
	Title   string
	Slug    string
	Content string
}

// FormError carries user-facing validation messages.
type FormError struct {
	Messages []string
}

func (e FormError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// normalize trims input and derives the slug from the slug field or,
// when blank, the title.
func (f Form) normalize() (Form, error) {
	f.Title = strings.TrimSpace(f.Title)
	f.Content = strings.TrimSpace(f.Content)
	source := strings.TrimSpace(f.Slug)
	if source == "" {
		source = f.Title
	}
	f.Slug = slug.Make(source)

	var problems []string
	if f.Title == "" {
		problems = append(problems, "Title must not be empty")
	} else if f.Slug == "" {
		problems = append(problems, "Slug must contain letters or digits")
	} else if routepath.ReservedPageSlug(f.Slug) {
		problems = append(problems, ReservedSlugMessage)
	}
	if f.Content == "" {
		problems = append(problems, "Content must not be empty")
	}
	if len(problems) > 0 {
		return f, FormError{Messages: problems}
	}
	return f, nil
}

type service struct {
	store Store
}

func newService(store Store) service {
	return service{store: store}
}

func (s service) list(ctx context.Context) ([]storage.Page, error) {
	pages, err := s.store.ListPages(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	return pages, nil
}

func (s service) get(ctx context.Context, pageID string) (storage.Page, error) {
	page, err := s.store.GetPage(ctx, pageID)
	if err != nil {
		return storage.Page{}, notFound(err, "page not found")
	}
	return page, nil
}

// create appends a new page after the existing ones.
func (s service) create(ctx context.Context, form Form) (storage.Page, error) {
	form, err := form.normalize()
	if err != nil {
		return storage.Page{}, err
	}
	existing, err := s.list(ctx)
	if err != nil {
		return storage.Page{}, err
	}
	sorting := 0
	for _, page := range existing {
		if page.Sorting >= sorting {
			sorting = page.Sorting + 1
		}
	}
	pageID, err := id.NewID()
	if err != nil {
		return storage.Page{}, err
	}
	page := storage.Page{ID: pageID, Slug: form.Slug, Title: form.Title, Content: form.Content, Sorting: sorting}
	if err := s.store.CreatePage(ctx, page); err != nil {
		return storage.Page{}, duplicate(err, "create page")
	}
	return page, nil
}

func (s service) update(ctx context.Context, pageID string, form Form) (storage.Page, error) {
	page, err := s.get(ctx, pageID)
	if err != nil {
		return storage.Page{}, err
	}
	form, err = form.normalize()
	if err != nil {
		return storage.Page{}, err
	}
	page.Title, page.Slug, page.Content = form.Title, form.Slug, form.Content
	if err := s.store.UpdatePage(ctx, page); err != nil {
		return storage.Page{}, duplicate(err, "update page")
	}
	return page, nil
}

func (s service) delete(ctx context.Context, pageID string) error {
	if err := s.store.DeletePage(ctx, pageID); err != nil {
		return notFound(err, "page not found")
	}
	return nil
}

func (s service) reorder(ctx context.Context, ids []string) error {
	cleaned := make([]string, 0, len(ids))
	for _, pageID := range ids {
		if pageID = strings.TrimSpace(pageID); pageID != "" {
			cleaned = append(cleaned, pageID)
		}
	}
	if len(cleaned) == 0 {
		return apperrors.E(apperrors.KindInvalidInput, "no pages to reorder")
	}
	if err := s.store.ReorderPages(ctx, cleaned); err != nil {
		return fmt.Errorf("reorder pages: %w", err)
	}
	return nil
}

func notFound(err error, message string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return apperrors.NotFound(message)
	}
	return err
}

func duplicate(err error, op string) error {
	if errors.Is(err, storage.ErrAlreadyExists) {
		return FormError{Messages: []string{DuplicateSlugMessage}}
	}
	return fmt.Errorf("%s: %w", op, err)
}
