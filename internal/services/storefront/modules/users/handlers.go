package users

import (
	"errors"
	"fmt"
	"net/http"

	apperrors "github.com/louisbranch/storefront/internal/services/storefront/platform/errors"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/flash"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/modulehandler"
	"github.com/louisbranch/storefront/internal/services/storefront/routepath"
	"github.com/louisbranch/storefront/internal/services/storefront/templates"
)

// Flash messages.
const (
	UsernameTakenMessage = "Username exists, choose another!"
	RegisteredMessage    = "You are now registered!"
	WrongLoginMessage    = "Wrong username or password."
	LoggedOutMessage     = "You are logged out!"
)

const maxFormBytes = 1 << 20

type handlers struct {
	modulehandler.Base
	service service
}

func (h handlers) handleRegisterForm(w http.ResponseWriter, r *http.Request) {
	h.WritePage(w, r, "Register", http.StatusOK, templates.RegisterForm(templates.RegisterView{}))
}

func (h handlers) handleRegister(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}
	input := Registration{
		Name:      r.PostFormValue("name"),
		Email:     r.PostFormValue("email"),
		Username:  r.PostFormValue("username"),
		Password:  r.PostFormValue("password"),
		Password2: r.PostFormValue("password2"),
	}
	if problems := input.Validate(); len(problems) > 0 {
		h.WritePage(w, r, "Register", http.StatusUnprocessableEntity, templates.RegisterForm(templates.RegisterView{
			Name:     input.Name,
			Email:    input.Email,
			Username: input.Username,
			Errors:   problems,
		}))
		return
	}
	if _, err := h.service.register(r.Context(), input); err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			notice := flash.Error(UsernameTakenMessage)
			h.Redirect(w, r, routepath.UsersRegister, &notice)
			return
		}
		h.WriteError(w, r, err)
		return
	}
	notice := flash.Success(RegisteredMessage)
	h.Redirect(w, r, routepath.UsersLogin, &notice)
}

func (h handlers) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	h.WritePage(w, r, "Log in", http.StatusOK, templates.LoginForm(templates.LoginView{}))
}

func (h handlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}
	user, err := h.service.authenticate(r.Context(), r.PostFormValue("username"), r.PostFormValue("password"))
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			notice := flash.Error(WrongLoginMessage)
			h.Redirect(w, r, routepath.UsersLogin, &notice)
			return
		}
		h.WriteError(w, r, err)
		return
	}
	if err := h.Sessions().SignIn(w, r, user); err != nil {
		h.WriteError(w, r, fmt.Errorf("sign in: %w", err))
		return
	}
	h.Redirect(w, r, routepath.ProductsIndex, nil)
}

func (h handlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions().SignOut(w, r); err != nil {
		h.WriteError(w, r, fmt.Errorf("sign out: %w", err))
		return
	}
	notice := flash.Success(LoggedOutMessage)
	h.Redirect(w, r, routepath.UsersLogin, &notice)
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteNotFound(w, r)
}

func (h handlers) parseForm(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, r, apperrors.Wrap(apperrors.KindInvalidInput, "invalid form submission", err))
		return false
	}
	return true
}
