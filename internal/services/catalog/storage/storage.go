// Package storage defines persistence contracts for catalog, account, and
// cart state.
package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound indicates a requested record is missing.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a uniqueness-constrained record already exists.
	ErrAlreadyExists = errors.New("record already exists")
)

// Category groups products under a navigable slug.
type Category struct {
	ID        string
	Slug      string
	Title     string
	Sorting   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Product is one sellable catalog entry. CategorySlug is not checked
// against existing categories.
type Product struct {
	ID           string
	Slug         string
	Title        string
	CategorySlug string
	Description  string
	PriceCents   int64
	Image        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Page is a static content page shown in the site navigation.
type Page struct {
	ID        string
	Slug      string
	Title     string
	Content   string
	Sorting   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// User is a registered customer or admin.
type User struct {
	ID           string
	Name         string
	Email        string
	Username     string
	PasswordHash []byte
	Admin        bool
	CreatedAt    time.Time
}

// Session is a server-side browser session. UserID is empty for anonymous
// visitors.
type Session struct {
	ID        string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is no longer valid at now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// CartItem is one cart line, keyed by session and product slug. Title, price
// and image are captured when the line is first added.
type CartItem struct {
	ProductID   string
	ProductSlug string
	Title       string
	Quantity    int
	PriceCents  int64
	Image       string
}

// LineTotalCents returns quantity times unit price.
func (c CartItem) LineTotalCents() int64 {
	return int64(c.Quantity) * c.PriceCents
}

// CategoryStore persists categories.
type CategoryStore interface {
	CreateCategory(ctx context.Context, category Category) error
	UpdateCategory(ctx context.Context, category Category) error
	DeleteCategory(ctx context.Context, id string) error
	GetCategory(ctx context.Context, id string) (Category, error)
	// FindCategory looks a category up by slug; found is false when absent.
	FindCategory(ctx context.Context, slug string) (category Category, found bool, err error)
	// ListCategories returns categories ordered by Sorting.
	ListCategories(ctx context.Context) ([]Category, error)
}

// ProductStore persists products.
type ProductStore interface {
	CreateProduct(ctx context.Context, product Product) error
	UpdateProduct(ctx context.Context, product Product) error
	DeleteProduct(ctx context.Context, id string) error
	GetProduct(ctx context.Context, id string) (Product, error)
	// FindProduct looks a product up by slug; found is false when absent.
	FindProduct(ctx context.Context, slug string) (product Product, found bool, err error)
	// ListProducts returns every product in insertion order.
	ListProducts(ctx context.Context) ([]Product, error)
	// ListProductsByCategory returns products whose category slug matches.
	ListProductsByCategory(ctx context.Context, categorySlug string) ([]Product, error)
	CountProducts(ctx context.Context) (int, error)
}

// PageStore persists content pages.
type PageStore interface {
	CreatePage(ctx context.Context, page Page) error
	UpdatePage(ctx context.Context, page Page) error
	DeletePage(ctx context.Context, id string) error
	GetPage(ctx context.Context, id string) (Page, error)
	// FindPage looks a page up by slug; found is false when absent.
	FindPage(ctx context.Context, slug string) (page Page, found bool, err error)
	// ListPages returns pages ordered by Sorting.
	ListPages(ctx context.Context) ([]Page, error)
	// ReorderPages assigns Sorting 1..n following ids. Unknown ids are
	// ignored.
	ReorderPages(ctx context.Context, ids []string) error
}

// UserStore persists accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user User) error
	GetUser(ctx context.Context, id string) (User, error)
	// FindUserByUsername looks a user up; found is false when absent.
	FindUserByUsername(ctx context.Context, username string) (user User, found bool, err error)
}

// SessionStore persists browser sessions.
type SessionStore interface {
	CreateSession(ctx context.Context, session Session) error
	// GetSession returns a live session; expired or missing sessions report
	// found false.
	GetSession(ctx context.Context, id string, now time.Time) (session Session, found bool, err error)
	// SetSessionUser attaches userID to the session; empty detaches.
	SetSessionUser(ctx context.Context, id, userID string) error
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

// CartStore persists per-session cart lines.
type CartStore interface {
	ListCartItems(ctx context.Context, sessionID string) ([]CartItem, error)
	// AddCartItem inserts the line with quantity one or increments it.
	AddCartItem(ctx context.Context, sessionID string, item CartItem) error
	// DecrementCartItem lowers the quantity by one, dropping the line at zero.
	DecrementCartItem(ctx context.Context, sessionID, productSlug string) error
	RemoveCartItem(ctx context.Context, sessionID, productSlug string) error
	ClearCart(ctx context.Context, sessionID string) error
	// CountCartItems returns the sum of quantities.
	CountCartItems(ctx context.Context, sessionID string) (int, error)
}

// Store aggregates every contract backed by one database.
type Store interface {
	CategoryStore
	ProductStore
	PageStore
	UserStore
	SessionStore
	CartStore
	Close() error
}
