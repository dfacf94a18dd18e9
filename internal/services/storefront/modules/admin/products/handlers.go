package products

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/louisbranch/storefront/internal/platform/money"
	"github.com/louisbranch/storefront/internal/services/catalog/gallery"
	"github.com/louisbranch/storefront/internal/services/catalog/storage"
	apperrors "github.com/louisbranch/storefront/internal/services/storefront/platform/errors"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/flash"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/modulehandler"
	"github.com/louisbranch/storefront/internal/services/storefront/routepath"
	"github.com/louisbranch/storefront/internal/services/storefront/templates"
)

const (
	maxUploadBytes = 10 << 20
	maxMemoryBytes = 1 << 20
)

type handlers struct {
	modulehandler.Base
	service service
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	listing, err := h.service.list(r.Context())
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	rows := make([]templates.AdminRow, 0, len(listing.Products))
	for _, product := range listing.Products {
		rows = append(rows, templates.AdminRow{
			ID:        product.ID,
			Title:     product.Title,
			Detail:    h.FormatPrice(product.PriceCents),
			EditURL:   routepath.AdminProductEdit(product.ID),
			DeleteURL: routepath.AdminProductDelete(product.ID),
		})
	}
	h.WritePage(w, r, "Products", http.StatusOK, templates.AdminList(templates.AdminListView{
		Heading: "Products (" + strconv.Itoa(listing.Count) + ")",
		AddURL:  routepath.AdminProductsAdd,
		Rows:    rows,
	}))
}

func (h handlers) handleAddForm(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.categories(r.Context())
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	h.writeForm(w, r, http.StatusOK, templates.AdminProductForm{
		Heading:    "Add product",
		Action:     routepath.AdminProductsAdd,
		Categories: categoryOptions(categories, ""),
	})
}

func (h handlers) handleAdd(w http.ResponseWriter, r *http.Request) {
	form, cleanup, ok := h.parseForm(w, r)
	if !ok {
		return
	}
	defer cleanup()
	if _, err := h.service.create(r.Context(), form); err != nil {
		h.writeFormError(w, r, templates.AdminProductForm{
			Heading: "Add product",
			Action:  routepath.AdminProductsAdd,
		}, form, err)
		return
	}
	notice := flash.Success("Product added!")
	h.Redirect(w, r, routepath.AdminProducts, &notice)
}

func (h handlers) handleEditForm(w http.ResponseWriter, r *http.Request) {
	editor, err := h.service.editor(r.Context(), r.PathValue("id"))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	product := editor.Product
	h.writeForm(w, r, http.StatusOK, templates.AdminProductForm{
		Heading:       "Edit product",
		Action:        routepath.AdminProductEdit(product.ID),
		Title:         product.Title,
		Description:   product.Description,
		Price:         money.Decimal(product.PriceCents),
		Categories:    categoryOptions(editor.Categories, product.CategorySlug),
		ImageURL:      productImageURL(product),
		Gallery:       galleryImages(product.ID, editor.Gallery),
		GalleryAction: routepath.AdminProductGallery(product.ID),
	})
}

func (h handlers) handleEdit(w http.ResponseWriter, r *http.Request) {
	form, cleanup, ok := h.parseForm(w, r)
	if !ok {
		return
	}
	defer cleanup()
	productID := r.PathValue("id")
	if _, err := h.service.update(r.Context(), productID, form); err != nil {
		view := templates.AdminProductForm{
			Heading: "Edit product",
			Action:  routepath.AdminProductEdit(productID),
		}
		if editor, editorErr := h.service.editor(r.Context(), productID); editorErr == nil {
			view.ImageURL = productImageURL(editor.Product)
			view.Gallery = galleryImages(productID, editor.Gallery)
			view.GalleryAction = routepath.AdminProductGallery(productID)
		}
		h.writeFormError(w, r, view, form, err)
		return
	}
	notice := flash.Success("Product edited!")
	h.Redirect(w, r, routepath.AdminProductEdit(productID), &notice)
}

func (h handlers) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.delete(r.Context(), r.PathValue("id")); err != nil {
		h.WriteError(w, r, err)
		return
	}
	notice := flash.Success("Product deleted!")
	h.Redirect(w, r, routepath.AdminProducts, &notice)
}

func (h handlers) handleGalleryUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxMemoryBytes); err != nil {
		h.WriteError(w, r, apperrors.Wrap(apperrors.KindInvalidInput, "invalid upload", err))
		return
	}
	defer r.MultipartForm.RemoveAll()
	productID := r.PathValue("id")
	file, header, err := r.FormFile("file")
	if err != nil {
		notice := flash.Error("Choose an image to upload.")
		h.Redirect(w, r, routepath.AdminProductEdit(productID), &notice)
		return
	}
	defer file.Close()
	if err := h.service.addGalleryImage(r.Context(), productID, Upload{Name: header.Filename, Body: file}); err != nil {
		if apperrors.KindOf(err) == apperrors.KindInvalidInput {
			notice := flash.Error(apperrors.PublicMessage(err))
			h.Redirect(w, r, routepath.AdminProductEdit(productID), &notice)
			return
		}
		h.WriteError(w, r, err)
		return
	}
	notice := flash.Success("Image added!")
	h.Redirect(w, r, routepath.AdminProductEdit(productID), &notice)
}

func (h handlers) handleGalleryDelete(w http.ResponseWriter, r *http.Request) {
	productID := r.PathValue("id")
	if err := h.service.deleteGalleryImage(r.Context(), productID, r.PathValue("image")); err != nil {
		h.WriteError(w, r, err)
		return
	}
	notice := flash.Success("Image deleted!")
	h.Redirect(w, r, routepath.AdminProductEdit(productID), &notice)
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteNotFound(w, r)
}

// parseForm reads the multipart product form. The returned cleanup
// releases any temporary files.
func (h handlers) parseForm(w http.ResponseWriter, r *http.Request) (Form, func(), bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxMemoryBytes); err != nil {
		h.WriteError(w, r, apperrors.Wrap(apperrors.KindInvalidInput, "invalid form submission", err))
		return Form{}, func() {}, false
	}
	form := Form{
		Title:       r.PostFormValue("title"),
		Description: r.PostFormValue("description"),
		Category:    r.PostFormValue("category"),
		Price:       r.PostFormValue("price"),
	}
	var file multipart.File
	cleanup := func() {
		if file != nil {
			file.Close()
		}
		r.MultipartForm.RemoveAll()
	}
	f, header, err := r.FormFile("image")
	switch {
	case err == nil && header.Filename != "":
		file = f
		form.Image = &Upload{Name: header.Filename, Body: f}
	case err == nil:
		f.Close()
	case !errors.Is(err, http.ErrMissingFile):
		cleanup()
		h.WriteError(w, r, apperrors.Wrap(apperrors.KindInvalidInput, "invalid image upload", err))
		return Form{}, func() {}, false
	}
	return form, cleanup, true
}

func (h handlers) writeFormError(w http.ResponseWriter, r *http.Request, view templates.AdminProductForm, form Form, err error) {
	var formErr FormError
	if !errors.As(err, &formErr) {
		h.WriteError(w, r, err)
		return
	}
	categories, listErr := h.service.categories(r.Context())
	if listErr != nil {
		h.WriteError(w, r, listErr)
		return
	}
	view.Title = form.Title
	view.Description = form.Description
	view.Price = form.Price
	view.Categories = categoryOptions(categories, form.Category)
	view.Errors = formErr.Messages
	h.writeForm(w, r, http.StatusUnprocessableEntity, view)
}

func (h handlers) writeForm(w http.ResponseWriter, r *http.Request, status int, view templates.AdminProductForm) {
	h.WritePage(w, r, view.Heading, status, templates.AdminProductEditor(view))
}

// categoryOptions lists categories with a leading "no category" choice.
func categoryOptions(categories []storage.Category, selected string) []templates.Option {
	options := make([]templates.Option, 0, len(categories)+1)
	options = append(options, templates.Option{Value: "", Label: "None", Selected: selected == ""})
	for _, category := range categories {
		options = append(options, templates.Option{
			Value:    category.Slug,
			Label:    category.Title,
			Selected: category.Slug == selected,
		})
	}
	return options
}

func productImageURL(product storage.Product) string {
	if product.Image == "" {
		return ""
	}
	return gallery.ImagePath(product.ID, product.Image)
}

func galleryImages(productID string, names []string) []templates.AdminGalleryImage {
	images := make([]templates.AdminGalleryImage, 0, len(names))
	for _, name := range names {
		images = append(images, templates.AdminGalleryImage{
			URL:          gallery.ThumbPath(productID, name),
			DeleteAction: routepath.AdminProductGalleryDelete(productID, name),
		})
	}
	return images
}
