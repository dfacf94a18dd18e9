package products

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/louisbranch/storefront/internal/services/catalog/gallery"
	"github.com/louisbranch/storefront/internal/services/catalog/storage"
	"github.com/louisbranch/storefront/internal/services/storefront/module"
	"github.com/louisbranch/storefront/internal/services/storefront/module/moduletest"
)

type catalogStub struct {
	categories      []storage.Category
	products        []storage.Product
	listErr         error
	findCategoryErr error
	findProductErr  error
}

func (c catalogStub) ListProducts(context.Context) ([]storage.Product, error) {
	if c.listErr != nil {
		return nil, c.listErr
	}
	return c.products, nil
}

func (c catalogStub) ListProductsByCategory(_ context.Context, slug string) ([]storage.Product, error) {
	if c.listErr != nil {
		return nil, c.listErr
	}
	var out []storage.Product
	for _, p := range c.products {
		if p.CategorySlug == slug {
			out = append(out, p)
		}
	}
	return out, nil
}

func (c catalogStub) FindCategory(_ context.Context, slug string) (storage.Category, bool, error) {
	if c.findCategoryErr != nil {
		return storage.Category{}, false, c.findCategoryErr
	}
	for _, category := range c.categories {
		if category.Slug == slug {
			return category, true, nil
		}
	}
	return storage.Category{}, false, nil
}

func (c catalogStub) FindProduct(_ context.Context, slug string) (storage.Product, bool, error) {
	if c.findProductErr != nil {
		return storage.Product{}, false, c.findProductErr
	}
	for _, p := range c.products {
		if p.Slug == slug {
			return p, true, nil
		}
	}
	return storage.Product{}, false, nil
}

type galleryStub map[string][]string

func (g galleryStub) List(_ context.Context, productID string) ([]string, error) {
	if productID == "broken" {
		return nil, errors.New("permission denied")
	}
	names, ok := g[productID]
	if !ok {
		return nil, fmt.Errorf("%w: %w", gallery.ErrNotFound, fs.ErrNotExist)
	}
	return names, nil
}

func newTestCatalog() catalogStub {
	return catalogStub{
		categories: []storage.Category{{ID: "c1", Slug: "shirts", Title: "Shirts"}, {ID: "c2", Slug: "hats", Title: "Hats"}},
		products: []storage.Product{
			{ID: "p1", Slug: "red-tee", Title: "Red Tee", CategorySlug: "shirts", Description: "Soft cotton", PriceCents: 1250, Image: "tee.jpg"},
			{ID: "p2", Slug: "blue-tee", Title: "Blue Tee", CategorySlug: "shirts", PriceCents: 1300},
			{ID: "broken", Slug: "mystery", Title: "Mystery", CategorySlug: "misc", PriceCents: 100},
		},
	}
}

func mountHandler(t *testing.T, catalog Catalog, principal module.Principal) (http.Handler, *moduletest.Sessions) {
	t.Helper()
	sessions := moduletest.NewSessions(principal)
	runtime, _ := moduletest.Runtime(sessions)
	mount, err := New(catalog, galleryStub{"p1": {"a.jpg", "b.jpg"}}, runtime).Mount()
	if err != nil {
		t.Fatalf("mount: %v", err)
	}
	if mount.Prefix != "/products/" {
		t.Fatalf("prefix = %q", mount.Prefix)
	}
	return mount.Handler, sessions
}

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(method, target, nil))
	return rr
}

func TestMountRequiresCollaborators(t *testing.T) {
	t.Parallel()

	if _, err := New(nil, nil, module.Runtime{}).Mount(); err == nil {
		t.Fatal("expected mount error")
	}
}

func TestListAllProducts(t *testing.T) {
	t.Parallel()

	h, _ := mountHandler(t, newTestCatalog(), module.Principal{})
	for _, target := range []string{"/products", "/products/"} {
		rr := serve(h, http.MethodGet, target)
		if rr.Code != http.StatusOK {
			t.Fatalf("GET %s status = %d", target, rr.Code)
		}
		body := rr.Body.String()
		for _, want := range []string{"<h1>All products</h1>", "Red Tee", "Blue Tee", "Mystery", "/products/shirts/red-tee", "/product_images/p1/tee.jpg", "/static/noimage.svg", "12.50"} {
			if !strings.Contains(body, want) {
				t.Fatalf("GET %s body missing %q", target, want)
			}
		}
	}
}

func TestListAllProductsStoreFailure(t *testing.T) {
	t.Parallel()

	h, _ := mountHandler(t, catalogStub{listErr: errors.New("database is locked")}, module.Principal{})
	rr := serve(h, http.MethodGet, "/products")
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
	if strings.Contains(rr.Body.String(), "database is locked") {
		t.Fatal("store error leaked to response")
	}
}

func TestCatalogRoutesStoreFailure(t *testing.T) {
	t.Parallel()

	withErrors := func(edit func(*catalogStub)) catalogStub {
		catalog := newTestCatalog()
		edit(&catalog)
		return catalog
	}
	tests := []struct {
		name    string
		catalog catalogStub
		target  string
	}{
		{
			name:    "category lookup",
			catalog: withErrors(func(c *catalogStub) { c.findCategoryErr = errors.New("disk I/O error") }),
			target:  "/products/shirts",
		},
		{
			name:    "category listing",
			catalog: withErrors(func(c *catalogStub) { c.listErr = errors.New("disk I/O error") }),
			target:  "/products/shirts",
		},
		{
			name:    "unknown category listing",
			catalog: withErrors(func(c *catalogStub) { c.listErr = errors.New("disk I/O error") }),
			target:  "/products/shoes",
		},
		{
			name:    "product lookup",
			catalog: withErrors(func(c *catalogStub) { c.findProductErr = errors.New("disk I/O error") }),
			target:  "/products/shirts/red-tee",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			h, _ := mountHandler(t, tc.catalog, module.Principal{})
			rr := serve(h, http.MethodGet, tc.target)
			if rr.Code != http.StatusInternalServerError {
				t.Fatalf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
			}
			if body := rr.Body.String(); strings.Contains(body, "disk I/O error") {
				t.Fatalf("store error leaked to response: %s", body)
			}
		})
	}
}

func TestListByCategory(t *testing.T) {
	t.Parallel()

	h, _ := mountHandler(t, newTestCatalog(), module.Principal{})

	rr := serve(h, http.MethodGet, "/products/shirts")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "<h1>Shirts</h1>") || !strings.Contains(body, "Red Tee") || strings.Contains(body, "Mystery") {
		t.Fatalf("unexpected category body: %s", body)
	}

	rr = serve(h, http.MethodGet, "/products/shirts/")
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "<h1>Shirts</h1>") {
		t.Fatalf("trailing slash category = %d %s", rr.Code, rr.Body.String())
	}

	rr = serve(h, http.MethodGet, "/products/hats")
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "No products yet.") {
		t.Fatalf("empty category = %d %s", rr.Code, rr.Body.String())
	}

	rr = serve(h, http.MethodGet, "/products/shoes")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("unknown category status = %d, want 404", rr.Code)
	}
}

func TestProductDetail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		target     string
		principal  module.Principal
		wantStatus int
		want       []string
		reject     []string
	}{
		{
			name:       "with gallery",
			target:     "/products/shirts/red-tee",
			wantStatus: http.StatusOK,
			want:       []string{"Red Tee", "Soft cotton", "12.50", "/product_images/p1/gallery/a.jpg", "/product_images/p1/gallery/thumbs/b.jpg"},
			reject:     []string{"/cart/add/red-tee"},
		},
		{
			name:       "signed in can add to cart",
			target:     "/products/anything/red-tee",
			principal:  module.Principal{SessionID: "s1", UserID: "u1", Username: "ada"},
			wantStatus: http.StatusOK,
			want:       []string{"/cart/add/red-tee"},
		},
		{
			name:       "missing gallery is empty",
			target:     "/products/shirts/blue-tee",
			wantStatus: http.StatusOK,
			want:       []string{"Blue Tee"},
			reject:     []string{`class="gallery"`},
		},
		{name: "unknown product", target: "/products/shirts/green-tee", wantStatus: http.StatusNotFound},
		{name: "gallery failure", target: "/products/misc/mystery", wantStatus: http.StatusInternalServerError},
		{name: "extra segments", target: "/products/shirts/red-tee/more", wantStatus: http.StatusNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			h, _ := mountHandler(t, newTestCatalog(), tc.principal)
			rr := serve(h, http.MethodGet, tc.target)
			if rr.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tc.wantStatus)
			}
			for _, want := range tc.want {
				if !strings.Contains(rr.Body.String(), want) {
					t.Fatalf("body missing %q", want)
				}
			}
			for _, reject := range tc.reject {
				if strings.Contains(rr.Body.String(), reject) {
					t.Fatalf("body unexpectedly contains %q", reject)
				}
			}
		})
	}
}

func TestProductRoutesRejectMutations(t *testing.T) {
	t.Parallel()

	h, _ := mountHandler(t, newTestCatalog(), module.Principal{})
	rr := serve(h, http.MethodPost, "/products/shirts")
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rr.Code)
	}
}

func TestServiceDetailReturnsEmptyGalleryForMissingDirectory(t *testing.T) {
	t.Parallel()

	svc := newService(newTestCatalog(), galleryStub{})
	detail, err := svc.detail(context.Background(), "red-tee")
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if detail.Gallery == nil || len(detail.Gallery) != 0 {
		t.Fatalf("gallery = %#v, want empty non-nil", detail.Gallery)
	}
}
