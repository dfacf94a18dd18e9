package pages

import (
	"errors"
	"net/http"

	"github.com/louisbranch/storefront/internal/services/catalog/storage"
	apperrors "github.com/louisbranch/storefront/internal/services/storefront/platform/errors"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/flash"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/modulehandler"
	"github.com/louisbranch/storefront/internal/services/storefront/routepath"
	"github.com/louisbranch/storefront/internal/services/storefront/templates"
)

const maxFormBytes = 1 << 20

type handlers struct {
	modulehandler.Base
	service service
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	pages, err := h.service.list(r.Context())
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	rows := make([]templates.AdminRow, 0, len(pages))
	for _, page := range pages {
		rows = append(rows, templates.AdminRow{
			ID:        page.ID,
			Title:     page.Title,
			Detail:    routepath.Page(page.Slug),
			EditURL:   routepath.AdminPageEdit(page.ID),
			DeleteURL: routepath.AdminPageDelete(page.ID),
		})
	}
	h.WritePage(w, r, "Pages", http.StatusOK, templates.AdminList(templates.AdminListView{
		Heading:       "Pages",
		AddURL:        routepath.AdminPagesAdd,
		Rows:          rows,
		ReorderAction: routepath.AdminPagesReorder,
	}))
}

func (h handlers) handleAddForm(w http.ResponseWriter, r *http.Request) {
	h.writeForm(w, r, http.StatusOK, "Add page", routepath.AdminPagesAdd, Form{}, nil)
}

func (h handlers) handleAdd(w http.ResponseWriter, r *http.Request) {
	form, ok := h.parseForm(w, r)
	if !ok {
		return
	}
	if _, err := h.service.create(r.Context(), form); err != nil {
		h.writeFormError(w, r, "Add page", routepath.AdminPagesAdd, form, err)
		return
	}
	notice := flash.Success("Page added!")
	h.Redirect(w, r, routepath.AdminPages, &notice)
}

func (h handlers) handleEditForm(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	h.writeForm(w, r, http.StatusOK, "Edit page", routepath.AdminPageEdit(page.ID), formFor(page), nil)
}

func (h handlers) handleEdit(w http.ResponseWriter, r *http.Request) {
	form, ok := h.parseForm(w, r)
	if !ok {
		return
	}
	pageID := r.PathValue("id")
	if _, err := h.service.update(r.Context(), pageID, form); err != nil {
		h.writeFormError(w, r, "Edit page", routepath.AdminPageEdit(pageID), form, err)
		return
	}
	notice := flash.Success("Page edited!")
	h.Redirect(w, r, routepath.AdminPages, &notice)
}

func (h handlers) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.delete(r.Context(), r.PathValue("id")); err != nil {
		h.WriteError(w, r, err)
		return
	}
	notice := flash.Success("Page deleted!")
	h.Redirect(w, r, routepath.AdminPages, &notice)
}

func (h handlers) handleReorder(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, r, apperrors.Wrap(apperrors.KindInvalidInput, "invalid form submission", err))
		return
	}
	if err := h.service.reorder(r.Context(), r.PostForm["id"]); err != nil {
		h.WriteError(w, r, err)
		return
	}
	notice := flash.Success("Pages reordered!")
	h.Redirect(w, r, routepath.AdminPages, &notice)
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteNotFound(w, r)
}

func (h handlers) parseForm(w http.ResponseWriter, r *http.Request) (Form, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, r, apperrors.Wrap(apperrors.KindInvalidInput, "invalid form submission", err))
		return Form{}, false
	}
	return Form{
		Title:   r.PostFormValue("title"),
		Slug:    r.PostFormValue("slug"),
		Content: r.PostFormValue("content"),
	}, true
}

func (h handlers) writeFormError(w http.ResponseWriter, r *http.Request, heading, action string, form Form, err error) {
	var formErr FormError
	if !errors.As(err, &formErr) {
		h.WriteError(w, r, err)
		return
	}
	h.writeForm(w, r, http.StatusUnprocessableEntity, heading, action, form, formErr.Messages)
}

func (h handlers) writeForm(w http.ResponseWriter, r *http.Request, status int, heading, action string, form Form, problems []string) {
	h.WritePage(w, r, heading, status, templates.AdminPageEditor(templates.AdminPageForm{
		Heading: heading,
		Action:  action,
		Title:   form.Title,
		Slug:    form.Slug,
		Content: form.Content,
		Errors:  problems,
	}))
}

func formFor(page storage.Page) Form {
	return Form{Title: page.Title, Slug: page.Slug, Content: page.Content}
}
