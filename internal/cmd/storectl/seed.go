package storectl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/louisbranch/storefront/internal/platform/id"
	"github.com/louisbranch/storefront/internal/platform/money"
	"github.com/louisbranch/storefront/internal/services/catalog/gallery"
	"github.com/louisbranch/storefront/internal/services/catalog/slug"
	"github.com/louisbranch/storefront/internal/services/catalog/storage"
	"github.com/louisbranch/storefront/internal/services/storefront/routepath"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Catalog is a seed fixture of categories, pages and products.
type Catalog struct {
	Categories []CategoryFixture `yaml:"categories"`
	Pages      []PageFixture     `yaml:"pages"`
	Products   []ProductFixture  `yaml:"products"`
}

// CategoryFixture seeds one category. Slug defaults to the slugified title.
type CategoryFixture struct {
	Title string `yaml:"title"`
	Slug  string `yaml:"slug"`
}

// PageFixture seeds one content page.
type PageFixture struct {
	Title   string `yaml:"title"`
	Slug    string `yaml:"slug"`
	Content string `yaml:"content"`
}

// ProductFixture seeds one product. Price is a decimal string.
type ProductFixture struct {
	Title       string `yaml:"title"`
	Slug        string `yaml:"slug"`
	Category    string `yaml:"category"`
	Description string `yaml:"description"`
	Price       string `yaml:"price"`
}

// SeedStore is the persistence seeding writes to.
type SeedStore interface {
	CreateCategory(ctx context.Context, category storage.Category) error
	CreatePage(ctx context.Context, page storage.Page) error
	CreateProduct(ctx context.Context, product storage.Product) error
}

// SeedResult counts created and already present records.
type SeedResult struct {
	Created int
	Skipped int
}

// LoadCatalog decodes a YAML catalog, rejecting unknown fields.
func LoadCatalog(r io.Reader) (Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var catalog Catalog
	if err := dec.Decode(&catalog); err != nil {
		if errors.Is(err, io.EOF) {
			return Catalog{}, nil
		}
		return Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}
	return catalog, nil
}

// Seed writes the catalog. Records whose slug already exists are skipped.
// When images is set, each new product gets its image directories.
func Seed(ctx context.Context, store SeedStore, images *gallery.Store, catalog Catalog) (SeedResult, error) {
	var result SeedResult
	record := func(err error, kind, title string) error {
		switch {
		case err == nil:
			result.Created++
			return nil
		case errors.Is(err, storage.ErrAlreadyExists):
			result.Skipped++
			return nil
		default:
			return fmt.Errorf("seed %s %q: %w", kind, title, err)
		}
	}

	for i, fixture := range catalog.Categories {
		recordID, slugValue, err := prepare(fixture.Title, fixture.Slug)
		if err != nil {
			return result, fmt.Errorf("category %d: %w", i+1, err)
		}
		err = store.CreateCategory(ctx, storage.Category{
			ID:      recordID,
			Slug:    slugValue,
			Title:   strings.TrimSpace(fixture.Title),
			Sorting: i + 1,
		})
		if err := record(err, "category", fixture.Title); err != nil {
			return result, err
		}
	}

	for i, fixture := range catalog.Pages {
		recordID, slugValue, err := prepare(fixture.Title, fixture.Slug)
		if err != nil {
			return result, fmt.Errorf("page %d: %w", i+1, err)
		}
		if routepath.ReservedPageSlug(slugValue) {
			return result, fmt.Errorf("page %d: slug %q is reserved", i+1, slugValue)
		}
		err = store.CreatePage(ctx, storage.Page{
			ID:      recordID,
			Slug:    slugValue,
			Title:   strings.TrimSpace(fixture.Title),
			Content: fixture.Content,
			Sorting: i + 1,
		})
		if err := record(err, "page", fixture.Title); err != nil {
			return result, err
		}
	}

	for i, fixture := range catalog.Products {
		recordID, slugValue, err := prepare(fixture.Title, fixture.Slug)
		if err != nil {
			return result, fmt.Errorf("product %d: %w", i+1, err)
		}
		cents, err := money.Parse(fixture.Price)
		if err != nil {
			return result, fmt.Errorf("product %q price: %w", fixture.Title, err)
		}
		err = store.CreateProduct(ctx, storage.Product{
			ID:           recordID,
			Slug:         slugValue,
			Title:        strings.TrimSpace(fixture.Title),
			CategorySlug: slug.Make(fixture.Category),
			Description:  fixture.Description,
			PriceCents:   cents,
		})
		created := err == nil
		if err := record(err, "product", fixture.Title); err != nil {
			return result, err
		}
		if created && images != nil {
			if err := images.EnsureProduct(ctx, recordID); err != nil {
				return result, fmt.Errorf("product %q images: %w", fixture.Title, err)
			}
		}
	}
	return result, nil
}

func prepare(title, rawSlug string) (string, string, error) {
	if strings.TrimSpace(title) == "" {
		return "", "", errors.New("title is required")
	}
	source := rawSlug
	if strings.TrimSpace(source) == "" {
		source = title
	}
	value := slug.Make(source)
	if value == "" {
		return "", "", fmt.Errorf("title %q has no slug characters", title)
	}
	recordID, err := id.NewID()
	if err != nil {
		return "", "", err
	}
	return recordID, value, nil
}

func newSeedCommand(opts *RootOptions) *cobra.Command {
	var file, publicDir string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load categories, pages and products from a YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("open catalog: %w", err)
			}
			defer f.Close()
			catalog, err := LoadCatalog(f)
			if err != nil {
				return err
			}
			store, err := openStore(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer store.Close()
			var images *gallery.Store
			if strings.TrimSpace(publicDir) != "" {
				images = gallery.NewStore(publicDir)
			}
			result, err := Seed(cmd.Context(), store, images, catalog)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %d, skipped %d\n", result.Created, result.Skipped)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "YAML catalog file")
	cmd.Flags().StringVar(&publicDir, "public-dir", "", "create image directories under this public dir")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
