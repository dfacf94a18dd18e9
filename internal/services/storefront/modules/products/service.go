package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/storefront/internal/services/catalog/gallery"
	"github.com/louisbranch/storefront/internal/services/catalog/storage"
	apperrors "github.com/louisbranch/storefront/internal/services/storefront/platform/errors"
	"golang.org/x/sync/errgroup"
)

// AllProductsTitle heads the unfiltered listing.
const AllProductsTitle = "All products"

// Catalog is the product and category reads the module needs.
type Catalog interface {
	ListProducts(ctx context.Context) ([]storage.Product, error)
	ListProductsByCategory(ctx context.Context, categorySlug string) ([]storage.Product, error)
	FindCategory(ctx context.Context, slug string) (storage.Category, bool, error)
	FindProduct(ctx context.Context, slug string) (storage.Product, bool, error)
}

// GalleryLister lists gallery image names for a product.
type GalleryLister interface {
	List(ctx context.Context, productID string) ([]string, error)
}

// Listing is a titled set of products.
type Listing struct {
	Heading  string
	Products []storage.Product
}

// Detail is one product and its gallery file names.
type Detail struct {
	Product storage.Product
	Gallery []string
}

type service struct {
	catalog Catalog
	gallery GalleryLister
}

func newService(catalog Catalog, gallery GalleryLister) service {
	return service{catalog: catalog, gallery: gallery}
}

func (s service) listAll(ctx context.Context) (Listing, error) {
	products, err := s.catalog.ListProducts(ctx)
	if err != nil {
		return Listing{}, fmt.Errorf("list products: %w", err)
	}
	return Listing{Heading: AllProductsTitle, Products: products}, nil
}

// listByCategory resolves the category and its products concurrently.
func (s service) listByCategory(ctx context.Context, categorySlug string) (Listing, error) {
	categorySlug = strings.TrimSpace(categorySlug)
	if categorySlug == "" {
		return Listing{}, apperrors.NotFound("category not found")
	}
	var (
		category storage.Category
		found    bool
		products []storage.Product
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		category, found, err = s.catalog.FindCategory(groupCtx, categorySlug)
		if err != nil {
			return fmt.Errorf("find category %q: %w", categorySlug, err)
		}
		return nil
	})
	group.Go(func() error {
		var err error
		products, err = s.catalog.ListProductsByCategory(groupCtx, categorySlug)
		if err != nil {
			return fmt.Errorf("list products for %q: %w", categorySlug, err)
		}
		return nil
	})
	if err := group.Wait(); err != nil {
		return Listing{}, err
	}
	if !found {
		return Listing{}, apperrors.NotFound("category not found")
	}
	return Listing{Heading: category.Title, Products: products}, nil
}

func (s service) detail(ctx context.Context, productSlug string) (Detail, error) {
	productSlug = strings.TrimSpace(productSlug)
	if productSlug == "" {
		return Detail{}, apperrors.NotFound("product not found")
	}
	product, found, err := s.catalog.FindProduct(ctx, productSlug)
	if err != nil {
		return Detail{}, fmt.Errorf("find product %q: %w", productSlug, err)
	}
	if !found {
		return Detail{}, apperrors.NotFound("product not found")
	}
	images, err := s.gallery.List(ctx, product.ID)
	if err != nil {
		if !errors.Is(err, gallery.ErrNotFound) {
			return Detail{}, fmt.Errorf("list gallery for %q: %w", product.ID, err)
		}
		images = []string{}
	}
	return Detail{Product: product, Gallery: images}, nil
}
