package products

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/louisbranch/storefront/internal/platform/id"
	"github.com/louisbranch/storefront/internal/platform/money"
	"github.com/louisbranch/storefront/internal/services/catalog/gallery"
	"github.com/louisbranch/storefront/internal/services/catalog/slug"
	"github.com/louisbranch/storefront/internal/services/catalog/storage"
	apperrors "github.com/louisbranch/storefront/internal/services/storefront/platform/errors"
)

// DuplicateTitleMessage is shown when the derived product slug is used.
const DuplicateTitleMessage = "Product title exists, choose another."

// ImageTypeMessage is shown for uploads that are not jpg or png files.
const ImageTypeMessage = "Image must be a .jpg, .jpeg or .png file"

// Store is the product persistence the module needs.
type Store interface {
	ListProducts(ctx context.Context) ([]storage.Product, error)
	CountProducts(ctx context.Context) (int, error)
	GetProduct(ctx context.Context, id string) (storage.Product, error)
	CreateProduct(ctx context.Context, product storage.Product) error
	UpdateProduct(ctx context.Context, product storage.Product) error
	DeleteProduct(ctx context.Context, id string) error
	ListCategories(ctx context.Context) ([]storage.Category, error)
}

// Images stores product images on disk.
type Images interface {
	List(ctx context.Context, productID string) ([]string, error)
	EnsureProduct(ctx context.Context, productID string) error
	SaveImage(ctx context.Context, productID, name string, src io.Reader) error
	DeleteImage(ctx context.Context, productID, name string) error
	SaveGalleryImage(ctx context.Context, productID, name string, src io.Reader) error
	DeleteGalleryImage(ctx context.Context, productID, name string) error
	DeleteProduct(ctx context.Context, productID string) error
}

// Upload is one submitted file.
type Upload struct {
	Name string
	Body io.Reader
}

// Form is the submitted product form.
type Form struct {
	Title       string
	Description string
	Category    string
	Price       string
	Image       *Upload
}

// FormError carries user-facing validation messages.
type FormError struct {
	Messages []string
}

func (e FormError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// Listing is the admin product index.
type Listing struct {
	Count    int
	Products []storage.Product
}

// Editor is the data behind the edit form.
type Editor struct {
	Product    storage.Product
	Categories []storage.Category
	Gallery    []string
}

var allowedImageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}

type validForm struct {
	title       string
	slug        string
	description string
	category    string
	priceCents  int64
	image       *Upload
}

func (f Form) validate() (validForm, error) {
	out := validForm{
		title:       strings.TrimSpace(f.Title),
		description: strings.TrimSpace(f.Description),
		category:    strings.TrimSpace(f.Category),
	}
	out.slug = slug.Make(out.title)
	var problems []string
	if out.title == "" {
		problems = append(problems, "Title must not be empty")
	} else if out.slug == "" {
		problems = append(problems, "Title must contain letters or digits")
	}
	if out.description == "" {
		problems = append(problems, "Description must not be empty")
	}
	cents, err := money.Parse(f.Price)
	if err != nil {
		problems = append(problems, "Price must be a number with at most two decimals")
	}
	out.priceCents = cents
	if f.Image != nil {
		name, err := imageName(f.Image.Name)
		if err != nil {
			problems = append(problems, ImageTypeMessage)
		}
		out.image = &Upload{Name: name, Body: f.Image.Body}
	}
	if len(problems) > 0 {
		return out, FormError{Messages: problems}
	}
	return out, nil
}

// imageName reduces an uploaded file name to a safe base name with an
// allowed extension.
func imageName(raw string) (string, error) {
	name := filepath.Base(strings.ReplaceAll(strings.TrimSpace(raw), `\`, "/"))
	ext := strings.ToLower(filepath.Ext(name))
	if !allowedImageExts[ext] {
		return "", fmt.Errorf("unsupported image extension %q", ext)
	}
	base := slug.Make(strings.TrimSuffix(name, filepath.Ext(name)))
	if base == "" {
		base = "image"
	}
	return base + ext, nil
}

type service struct {
	store  Store
	images Images
}

func newService(store Store, images Images) service {
	return service{store: store, images: images}
}

func (s service) list(ctx context.Context) (Listing, error) {
	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return Listing{}, fmt.Errorf("list products: %w", err)
	}
	count, err := s.store.CountProducts(ctx)
	if err != nil {
		return Listing{}, fmt.Errorf("count products: %w", err)
	}
	return Listing{Count: count, Products: products}, nil
}

func (s service) categories(ctx context.Context) ([]storage.Category, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (s service) get(ctx context.Context, productID string) (storage.Product, error) {
	product, err := s.store.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return storage.Product{}, apperrors.NotFound("product not found")
		}
		return storage.Product{}, fmt.Errorf("get product: %w", err)
	}
	return product, nil
}

func (s service) editor(ctx context.Context, productID string) (Editor, error) {
	product, err := s.get(ctx, productID)
	if err != nil {
		return Editor{}, err
	}
	categories, err := s.categories(ctx)
	if err != nil {
		return Editor{}, err
	}
	images, err := s.images.List(ctx, product.ID)
	if err != nil && !errors.Is(err, gallery.ErrNotFound) {
		return Editor{}, fmt.Errorf("list gallery: %w", err)
	}
	return Editor{Product: product, Categories: categories, Gallery: images}, nil
}

// create stores the product record and its image directory.
func (s service) create(ctx context.Context, form Form) (storage.Product, error) {
	valid, err := form.validate()
	if err != nil {
		return storage.Product{}, err
	}
	productID, err := id.NewID()
	if err != nil {
		return storage.Product{}, err
	}
	product := storage.Product{
		ID:           productID,
		Slug:         valid.slug,
		Title:        valid.title,
		CategorySlug: valid.category,
		Description:  valid.description,
		PriceCents:   valid.priceCents,
	}
	if valid.image != nil {
		product.Image = valid.image.Name
	}
	if err := s.store.CreateProduct(ctx, product); err != nil {
		return storage.Product{}, duplicate(err, "create product")
	}
	if err := s.images.EnsureProduct(ctx, product.ID); err != nil {
		return product, fmt.Errorf("create product image dirs: %w", err)
	}
	if valid.image != nil {
		if err := s.images.SaveImage(ctx, product.ID, valid.image.Name, valid.image.Body); err != nil {
			return product, fmt.Errorf("save product image: %w", err)
		}
	}
	return product, nil
}

// update replaces the product fields; a new image replaces the old file.
func (s service) update(ctx context.Context, productID string, form Form) (storage.Product, error) {
	product, err := s.get(ctx, productID)
	if err != nil {
		return storage.Product{}, err
	}
	valid, err := form.validate()
	if err != nil {
		return storage.Product{}, err
	}
	previousImage := product.Image
	product.Title = valid.title
	product.Slug = valid.slug
	product.Description = valid.description
	product.CategorySlug = valid.category
	product.PriceCents = valid.priceCents
	if valid.image != nil {
		product.Image = valid.image.Name
	}
	if err := s.store.UpdateProduct(ctx, product); err != nil {
		return storage.Product{}, duplicate(err, "update product")
	}
	if valid.image == nil {
		return product, nil
	}
	if err := s.images.SaveImage(ctx, product.ID, valid.image.Name, valid.image.Body); err != nil {
		return product, fmt.Errorf("save product image: %w", err)
	}
	if previousImage != "" && previousImage != valid.image.Name {
		if err := s.images.DeleteImage(ctx, product.ID, previousImage); err != nil {
			return product, fmt.Errorf("delete previous image: %w", err)
		}
	}
	return product, nil
}

func (s service) delete(ctx context.Context, productID string) error {
	product, err := s.get(ctx, productID)
	if err != nil {
		return err
	}
	if err := s.store.DeleteProduct(ctx, product.ID); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if err := s.images.DeleteProduct(ctx, product.ID); err != nil {
		return fmt.Errorf("delete product images: %w", err)
	}
	return nil
}

func (s service) addGalleryImage(ctx context.Context, productID string, upload Upload) error {
	product, err := s.get(ctx, productID)
	if err != nil {
		return err
	}
	name, err := imageName(upload.Name)
	if err != nil {
		return apperrors.Wrap(apperrors.KindInvalidInput, ImageTypeMessage, err)
	}
	if err := s.images.SaveGalleryImage(ctx, product.ID, name, upload.Body); err != nil {
		return fmt.Errorf("save gallery image: %w", err)
	}
	return nil
}

func (s service) deleteGalleryImage(ctx context.Context, productID, name string) error {
	product, err := s.get(ctx, productID)
	if err != nil {
		return err
	}
	if err := s.images.DeleteGalleryImage(ctx, product.ID, name); err != nil {
		if errors.Is(err, gallery.ErrInvalidName) {
			return apperrors.Wrap(apperrors.KindInvalidInput, "invalid image name", err)
		}
		return fmt.Errorf("delete gallery image: %w", err)
	}
	return nil
}

func duplicate(err error, op string) error {
	if errors.Is(err, storage.ErrAlreadyExists) {
		return FormError{Messages: []string{DuplicateTitleMessage}}
	}
	return fmt.Errorf("%s: %w", op, err)
}
