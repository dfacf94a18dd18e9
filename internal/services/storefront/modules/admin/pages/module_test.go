package pages

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/louisbranch/storefront/internal/services/catalog/storage"
	"github.com/louisbranch/storefront/internal/services/storefront/module"
	"github.com/louisbranch/storefront/internal/services/storefront/module/moduletest"
)

type memoryStore struct {
	mu    sync.Mutex
	pages map[string]storage.Page
}

func newMemoryStore(pages ...storage.Page) *memoryStore {
	s := &memoryStore{pages: map[string]storage.Page{}}
	for _, page := range pages {
		s.pages[page.ID] = page
	}
	return s
}

func (s *memoryStore) ListPages(context.Context) ([]storage.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]storage.Page, 0, len(s.pages))
	for _, page := range s.pages {
		out = append(out, page)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Sorting < out[j].Sorting })
	return out, nil
}

func (s *memoryStore) GetPage(_ context.Context, pageID string) (storage.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	page, ok := s.pages[pageID]
	if !ok {
		return storage.Page{}, storage.ErrNotFound
	}
	return page, nil
}

func (s *memoryStore) slugTaken(slug, exceptID string) bool {
	for _, page := range s.pages {
		if page.Slug == slug && page.ID != exceptID {
			return true
		}
	}
	return false
}

func (s *memoryStore) CreatePage(_ context.Context, page storage.Page) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.slugTaken(page.Slug, "") {
		return storage.ErrAlreadyExists
	}
	s.pages[page.ID] = page
	return nil
}

func (s *memoryStore) UpdatePage(_ context.Context, page storage.Page) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pages[page.ID]; !ok {
		return storage.ErrNotFound
	}
	if s.slugTaken(page.Slug, page.ID) {
		return storage.ErrAlreadyExists
	}
	s.pages[page.ID] = page
	return nil
}

func (s *memoryStore) DeletePage(_ context.Context, pageID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pages[pageID]; !ok {
		return storage.ErrNotFound
	}
	delete(s.pages, pageID)
	return nil
}

func (s *memoryStore) ReorderPages(_ context.Context, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, pageID := range ids {
		if page, ok := s.pages[pageID]; ok {
			page.Sorting = i + 1
			s.pages[pageID] = page
		}
	}
	return nil
}

func (s *memoryStore) bySlug(slug string) (storage.Page, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, page := range s.pages {
		if page.Slug == slug {
			return page, true
		}
	}
	return storage.Page{}, false
}

func mountHandler(t *testing.T, store Store) http.Handler {
	t.Helper()
	runtime, _ := moduletest.Runtime(moduletest.NewSessions(module.Principal{SessionID: "s1", UserID: "u1", Admin: true}))
	mount, err := New(store, runtime).Mount()
	if err != nil {
		t.Fatalf("mount: %v", err)
	}
	return mount.Handler
}

func post(h http.Handler, target string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
	return rr
}

func TestAddPageDerivesSlugAndAppends(t *testing.T) {
	t.Parallel()

	store := newMemoryStore(storage.Page{ID: "p1", Slug: "home", Title: "Home", Content: "x", Sorting: 4})
	h := mountHandler(t, store)

	rr := post(h, "/admin/pages/add", url.Values{"title": {"About Us"}, "content": {"<p>hi</p>"}})
	if rr.Code != http.StatusFound || rr.Header().Get("Location") != "/admin/pages" {
		t.Fatalf("add = %d %q", rr.Code, rr.Header().Get("Location"))
	}
	page, ok := store.bySlug("about-us")
	if !ok {
		t.Fatal("expected page with slug about-us")
	}
	if page.Sorting != 5 {
		t.Fatalf("sorting = %d, want 5", page.Sorting)
	}

	rr = post(h, "/admin/pages/add", url.Values{"title": {"Team"}, "slug": {"Our Team!"}, "content": {"x"}})
	if rr.Code != http.StatusFound {
		t.Fatalf("add with slug = %d", rr.Code)
	}
	if _, ok := store.bySlug("our-team"); !ok {
		t.Fatal("expected slug from slug field")
	}
}

func TestAddPageValidation(t *testing.T) {
	t.Parallel()

	store := newMemoryStore(storage.Page{ID: "p1", Slug: "home", Title: "Home", Content: "x"})
	h := mountHandler(t, store)

	tests := []struct {
		name   string
		values url.Values
		want   string
	}{
		{name: "missing title", values: url.Values{"content": {"x"}}, want: "Title must not be empty"},
		{name: "missing content", values: url.Values{"title": {"About"}}, want: "Content must not be empty"},
		{name: "duplicate slug", values: url.Values{"title": {"Home"}, "content": {"x"}}, want: DuplicateSlugMessage},
		{name: "reserved slug from title", values: url.Values{"title": {"Products"}, "content": {"x"}}, want: ReservedSlugMessage},
		{name: "reserved slug field", values: url.Values{"title": {"Shop"}, "slug": {"Cart"}, "content": {"x"}}, want: ReservedSlugMessage},
		{name: "reserved health slug", values: url.Values{"title": {"Status"}, "slug": {"up"}, "content": {"x"}}, want: ReservedSlugMessage},
	}
	for _, tc := range tests {
		rr := post(h, "/admin/pages/add", tc.values)
		if rr.Code != http.StatusUnprocessableEntity {
			t.Fatalf("%s: status = %d, want 422", tc.name, rr.Code)
		}
		if !strings.Contains(rr.Body.String(), tc.want) {
			t.Fatalf("%s: body missing %q", tc.name, tc.want)
		}
	}
}

func TestEditAndDeletePage(t *testing.T) {
	t.Parallel()

	store := newMemoryStore(storage.Page{ID: "p1", Slug: "about", Title: "About", Content: "old", Sorting: 2})
	h := mountHandler(t, store)

	rr := get(h, "/admin/pages/p1/edit")
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "old") {
		t.Fatalf("edit form = %d", rr.Code)
	}
	if rr := get(h, "/admin/pages/nope/edit"); rr.Code != http.StatusNotFound {
		t.Fatalf("unknown edit = %d, want 404", rr.Code)
	}

	rr = post(h, "/admin/pages/p1/edit", url.Values{"title": {"About"}, "slug": {"about"}, "content": {"new"}})
	if rr.Code != http.StatusFound {
		t.Fatalf("edit = %d", rr.Code)
	}
	page, _ := store.GetPage(context.Background(), "p1")
	if page.Content != "new" || page.Sorting != 2 {
		t.Fatalf("page = %+v", page)
	}

	if rr := post(h, "/admin/pages/p1/delete", nil); rr.Code != http.StatusFound {
		t.Fatalf("delete = %d", rr.Code)
	}
	if rr := post(h, "/admin/pages/p1/delete", nil); rr.Code != http.StatusNotFound {
		t.Fatalf("second delete = %d, want 404", rr.Code)
	}
}

func TestReorderPages(t *testing.T) {
	t.Parallel()

	store := newMemoryStore(
		storage.Page{ID: "a", Slug: "a", Title: "A", Content: "x", Sorting: 1},
		storage.Page{ID: "b", Slug: "b", Title: "B", Content: "x", Sorting: 2},
		storage.Page{ID: "c", Slug: "c", Title: "C", Content: "x", Sorting: 3},
	)
	h := mountHandler(t, store)

	rr := post(h, "/admin/pages/reorder", url.Values{"id": {"c", "a", "b"}})
	if rr.Code != http.StatusFound {
		t.Fatalf("reorder = %d", rr.Code)
	}
	pages, _ := store.ListPages(context.Background())
	var order []string
	for _, page := range pages {
		order = append(order, page.ID)
	}
	if diff := cmp.Diff([]string{"c", "a", "b"}, order); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}

	if rr := post(h, "/admin/pages/reorder", url.Values{}); rr.Code != http.StatusBadRequest {
		t.Fatalf("empty reorder = %d, want 400", rr.Code)
	}
}

func TestIndexListsPages(t *testing.T) {
	t.Parallel()

	store := newMemoryStore(storage.Page{ID: "a", Slug: "about", Title: "About", Content: "x"})
	rr := get(mountHandler(t, store), "/admin/pages")
	if rr.Code != http.StatusOK {
		t.Fatalf("index = %d", rr.Code)
	}
	for _, want := range []string{"About", "/admin/pages/a/edit", "/admin/pages/a/delete"} {
		if !strings.Contains(rr.Body.String(), want) {
			t.Fatalf("body missing %q", want)
		}
	}
}
