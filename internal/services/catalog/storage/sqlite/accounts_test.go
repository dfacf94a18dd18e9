package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/louisbranch/storefront/internal/services/catalog/storage"
)

func TestUserRoundTripAndUniqueUsername(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	user := storage.User{ID: "u1", Name: "Ada", Email: "ada@example.com", Username: "ada", PasswordHash: []byte("hash"), Admin: true, CreatedAt: fixedTime}
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	got, found, err := store.FindUserByUsername(ctx, "ada")
	if err != nil || !found {
		t.Fatalf("find user: found=%v err=%v", found, err)
	}
	diff(t, user, got)

	byID, err := store.GetUser(ctx, "u1")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	diff(t, user, byID)

	dup := storage.User{ID: "u2", Username: "ada", PasswordHash: []byte("x")}
	if err := store.CreateUser(ctx, dup); !errors.Is(err, storage.ErrAlreadyExists) {
		t.Fatalf("duplicate user error = %v, want %v", err, storage.ErrAlreadyExists)
	}
	if err := store.CreateUser(ctx, storage.User{ID: "u3", Username: "nohash"}); err == nil {
		t.Fatal("expected missing password hash error")
	}
}

func TestSessionLifecycle(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	session := storage.Session{ID: "s1", CreatedAt: fixedTime, ExpiresAt: fixedTime.Add(time.Hour)}
	if err := store.CreateSession(ctx, session); err != nil {
		t.Fatalf("create session: %v", err)
	}

	got, found, err := store.GetSession(ctx, "s1", fixedTime)
	if err != nil || !found {
		t.Fatalf("get session: found=%v err=%v", found, err)
	}
	diff(t, session, got)

	if err := store.SetSessionUser(ctx, "s1", "u1"); err != nil {
		t.Fatalf("attach user: %v", err)
	}
	got, _, _ = store.GetSession(ctx, "s1", fixedTime)
	if got.UserID != "u1" {
		t.Fatalf("UserID = %q, want %q", got.UserID, "u1")
	}
	if err := store.SetSessionUser(ctx, "s1", ""); err != nil {
		t.Fatalf("detach user: %v", err)
	}
	if err := store.SetSessionUser(ctx, "missing", "u1"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("attach missing session error = %v, want %v", err, storage.ErrNotFound)
	}

	if _, found, _ := store.GetSession(ctx, "s1", fixedTime.Add(2*time.Hour)); found {
		t.Fatal("expired session should not be found")
	}
	deleted, err := store.DeleteExpiredSessions(ctx, fixedTime.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("delete expired sessions: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("deleted = %d, want 1", deleted)
	}
}

func TestCartArithmetic(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	if err := store.CreateSession(ctx, storage.Session{ID: "s1", ExpiresAt: fixedTime.Add(time.Hour)}); err != nil {
		t.Fatalf("create session: %v", err)
	}
	tee := storage.CartItem{ProductID: "p1", ProductSlug: "red-tee", Title: "Red Tee", PriceCents: 1250}
	hat := storage.CartItem{ProductID: "p2", ProductSlug: "cap", Title: "Cap", PriceCents: 900}
	for _, item := range []storage.CartItem{tee, tee, hat} {
		if err := store.AddCartItem(ctx, "s1", item); err != nil {
			t.Fatalf("add cart item: %v", err)
		}
	}

	count, err := store.CountCartItems(ctx, "s1")
	if err != nil {
		t.Fatalf("count cart: %v", err)
	}
	if count != 3 {
		t.Fatalf("count = %d, want 3", count)
	}

	items, err := store.ListCartItems(ctx, "s1")
	if err != nil {
		t.Fatalf("list cart: %v", err)
	}
	wantTee := tee
	wantTee.Quantity = 2
	wantHat := hat
	wantHat.Quantity = 1
	diff(t, []storage.CartItem{wantHat, wantTee}, items)
	if got := items[1].LineTotalCents(); got != 2500 {
		t.Fatalf("line total = %d, want 2500", got)
	}

	if err := store.DecrementCartItem(ctx, "s1", "red-tee"); err != nil {
		t.Fatalf("decrement: %v", err)
	}
	if err := store.DecrementCartItem(ctx, "s1", "cap"); err != nil {
		t.Fatalf("decrement to zero: %v", err)
	}
	items, _ = store.ListCartItems(ctx, "s1")
	wantTee.Quantity = 1
	diff(t, []storage.CartItem{wantTee}, items)

	if err := store.RemoveCartItem(ctx, "s1", "red-tee"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := store.AddCartItem(ctx, "s1", hat); err != nil {
		t.Fatalf("re-add: %v", err)
	}
	if err := store.ClearCart(ctx, "s1"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if count, _ := store.CountCartItems(ctx, "s1"); count != 0 {
		t.Fatalf("count after clear = %d, want 0", count)
	}
}

func TestCartRequiresExistingSession(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	err := store.AddCartItem(context.Background(), "ghost", storage.CartItem{ProductSlug: "cap", Title: "Cap"})
	if err == nil {
		t.Fatal("expected foreign key error for unknown session")
	}
}
