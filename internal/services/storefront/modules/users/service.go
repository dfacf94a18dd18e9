package users

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/louisbranch/storefront/internal/platform/id"
	"github.com/louisbranch/storefront/internal/services/catalog/storage"
	apperrors "github.com/louisbranch/storefront/internal/services/storefront/platform/errors"
	"golang.org/x/crypto/bcrypt"
)

// Store is the account persistence the module needs.
type Store interface {
	CreateUser(ctx context.Context, user storage.User) error
	FindUserByUsername(ctx context.Context, username string) (storage.User, bool, error)
}

var (
	// ErrUsernameTaken reports a duplicate username at registration.
	ErrUsernameTaken = errors.New("username taken")
	// ErrInvalidCredentials reports an unknown user or wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

// Registration is the submitted register form.
type Registration struct {
	Name      string
	Email     string
	Username  string
	Password  string
	Password2 string
}

// Validate returns user-facing messages for every invalid field.
func (r Registration) Validate() []string {
	var problems []string
	if strings.TrimSpace(r.Name) == "" {
		problems = append(problems, "Name is required")
	}
	email := strings.TrimSpace(r.Email)
	if email == "" {
		problems = append(problems, "Email is required")
	} else if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		problems = append(problems, "Email is not valid")
	}
	if strings.TrimSpace(r.Username) == "" {
		problems = append(problems, "Username is required")
	}
	if r.Password == "" {
		problems = append(problems, "Password is required")
	} else if len(r.Password) > MaxPasswordBytes {
		problems = append(problems, fmt.Sprintf("Password must be at most %d bytes", MaxPasswordBytes))
	} else if r.Password != r.Password2 {
		problems = append(problems, "Passwords do not match")
	}
	return problems
}

type service struct {
	store Store
	cost  int
}

func newService(store Store, cost int) service {
	return service{store: store, cost: cost}
}

// register creates a customer account. The input must already be valid.
func (s service) register(ctx context.Context, input Registration) (storage.User, error) {
	username := strings.TrimSpace(input.Username)
	_, found, err := s.store.FindUserByUsername(ctx, username)
	if err != nil {
		return storage.User{}, fmt.Errorf("find user %q: %w", username, err)
	}
	if found {
		return storage.User{}, ErrUsernameTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return storage.User{}, apperrors.Wrap(apperrors.KindInvalidInput, "password is too long", err)
	}
	if err != nil {
		return storage.User{}, fmt.Errorf("hash password: %w", err)
	}
	userID, err := id.NewID()
	if err != nil {
		return storage.User{}, err
	}
	user := storage.User{
		ID:           userID,
		Name:         strings.TrimSpace(input.Name),
		Email:        strings.TrimSpace(input.Email),
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return storage.User{}, ErrUsernameTaken
		}
		return storage.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s service) authenticate(ctx context.Context, username, password string) (storage.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return storage.User{}, ErrInvalidCredentials
	}
	user, found, err := s.store.FindUserByUsername(ctx, username)
	if err != nil {
		return storage.User{}, fmt.Errorf("find user %q: %w", username, err)
	}
	if !found {
		return storage.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return storage.User{}, ErrInvalidCredentials
	}
	return user, nil
}
