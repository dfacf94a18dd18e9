package categories

import (
	"errors"
	"net/http"

	apperrors "github.com/louisbranch/storefront/internal/services/storefront/platform/errors"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/flash"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/modulehandler"
	"github.com/louisbranch/storefront/internal/services/storefront/routepath"
	"github.com/louisbranch/storefront/internal/services/storefront/templates"
)

const maxFormBytes = 1 << 16

type handlers struct {
	modulehandler.Base
	service service
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.list(r.Context())
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	rows := make([]templates.AdminRow, 0, len(categories))
	for _, category := range categories {
		rows = append(rows, templates.AdminRow{
			ID:        category.ID,
			Title:     category.Title,
			Detail:    category.Slug,
			EditURL:   routepath.AdminCategoryEdit(category.ID),
			DeleteURL: routepath.AdminCategoryDelete(category.ID),
		})
	}
	h.WritePage(w, r, "Categories", http.StatusOK, templates.AdminList(templates.AdminListView{
		Heading: "Categories",
		AddURL:  routepath.AdminCategoriesAdd,
		Rows:    rows,
	}))
}

func (h handlers) handleAddForm(w http.ResponseWriter, r *http.Request) {
	h.writeForm(w, r, http.StatusOK, "Add category", routepath.AdminCategoriesAdd, "", nil)
}

func (h handlers) handleAdd(w http.ResponseWriter, r *http.Request) {
	title, ok := h.parseTitle(w, r)
	if !ok {
		return
	}
	if _, err := h.service.create(r.Context(), title); err != nil {
		h.writeFormError(w, r, "Add category", routepath.AdminCategoriesAdd, title, err)
		return
	}
	notice := flash.Success("Category added!")
	h.Redirect(w, r, routepath.AdminCategories, &notice)
}

func (h handlers) handleEditForm(w http.ResponseWriter, r *http.Request) {
	category, err := h.service.get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	h.writeForm(w, r, http.StatusOK, "Edit category", routepath.AdminCategoryEdit(category.ID), category.Title, nil)
}

func (h handlers) handleEdit(w http.ResponseWriter, r *http.Request) {
	title, ok := h.parseTitle(w, r)
	if !ok {
		return
	}
	categoryID := r.PathValue("id")
	if _, err := h.service.update(r.Context(), categoryID, title); err != nil {
		h.writeFormError(w, r, "Edit category", routepath.AdminCategoryEdit(categoryID), title, err)
		return
	}
	notice := flash.Success("Category edited!")
	h.Redirect(w, r, routepath.AdminCategories, &notice)
}

func (h handlers) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.delete(r.Context(), r.PathValue("id")); err != nil {
		h.WriteError(w, r, err)
		return
	}
	notice := flash.Success("Category deleted!")
	h.Redirect(w, r, routepath.AdminCategories, &notice)
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteNotFound(w, r)
}

func (h handlers) parseTitle(w http.ResponseWriter, r *http.Request) (string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, r, apperrors.Wrap(apperrors.KindInvalidInput, "invalid form submission", err))
		return "", false
	}
	return r.PostFormValue("title"), true
}

func (h handlers) writeFormError(w http.ResponseWriter, r *http.Request, heading, action, title string, err error) {
	var formErr FormError
	if !errors.As(err, &formErr) {
		h.WriteError(w, r, err)
		return
	}
	h.writeForm(w, r, http.StatusUnprocessableEntity, heading, action, title, formErr.Messages)
}

func (h handlers) writeForm(w http.ResponseWriter, r *http.Request, status int, heading, action, title string, problems []string) {
	h.WritePage(w, r, heading, status, templates.AdminCategoryEditor(templates.AdminCategoryForm{
		Heading: heading,
		Action:  action,
		Title:   title,
		Errors:  problems,
	}))
}
