package storectl

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/louisbranch/storefront/internal/services/catalog/gallery"
	"github.com/louisbranch/storefront/internal/services/catalog/storage/sqlite"
	"golang.org/x/crypto/bcrypt"
)

func execute(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand(&RootOptions{DBPath: dbPath})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func openTestStore(t *testing.T, dbPath string) *sqlite.Store {
	t.Helper()
	store, err := sqlite.Open(context.Background(), dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestExecuteRunsNamedCommand(t *testing.T) {
	t.Setenv("STOREFRONT_OTEL_ENDPOINT", "")

	dbPath := filepath.Join(t.TempDir(), "nested", "storefront.db")
	if err := Execute(context.Background(), []string{"--db", dbPath, "migrate"}); err != nil {
		t.Fatalf("execute migrate: %v", err)
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("database not created: %v", err)
	}
	if err := Execute(context.Background(), []string{"--db", dbPath, "nope"}); err == nil {
		t.Fatal("expected unknown command error")
	}
}

func TestMigrateReportsAppliedThenUpToDate(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "nested", "storefront.db")
	out, err := execute(t, dbPath, "migrate")
	if err != nil {
		t.Fatalf("migrate error = %v", err)
	}
	if !strings.Contains(out, "applied ") {
		t.Fatalf("first migrate output = %q", out)
	}
	out, err = execute(t, dbPath, "migrate")
	if err != nil {
		t.Fatalf("second migrate error = %v", err)
	}
	if strings.TrimSpace(out) != "database is up to date" {
		t.Fatalf("second migrate output = %q", out)
	}
}

func TestSeedLoadsCatalogOnce(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	dbPath := filepath.Join(dir, "storefront.db")
	public := filepath.Join(dir, "public")

	out, err := execute(t, dbPath, "seed", "--file", "testdata/catalog.yaml", "--public-dir", public)
	if err != nil {
		t.Fatalf("seed error = %v", err)
	}
	if strings.TrimSpace(out) != "created 6, skipped 0" {
		t.Fatalf("seed output = %q", out)
	}
	out, err = execute(t, dbPath, "seed", "--file", "testdata/catalog.yaml")
	if err != nil {
		t.Fatalf("reseed error = %v", err)
	}
	if strings.TrimSpace(out) != "created 0, skipped 6" {
		t.Fatalf("reseed output = %q", out)
	}

	store := openTestStore(t, dbPath)
	ctx := context.Background()
	categories, err := store.ListCategories(ctx)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	var slugs []string
	for _, category := range categories {
		slugs = append(slugs, category.Slug)
	}
	if diff := cmp.Diff([]string{"shirts", "summer-hats"}, slugs); diff != "" {
		t.Fatalf("category slugs mismatch (-want +got):\n%s", diff)
	}
	if _, found, _ := store.FindPage(ctx, "about"); !found {
		t.Fatal("expected about page")
	}
	hat, found, err := store.FindProduct(ctx, "straw-hat")
	if err != nil || !found {
		t.Fatalf("find straw-hat: found=%v err=%v", found, err)
	}
	if hat.PriceCents != 3000 || hat.CategorySlug != "summer-hats" {
		t.Fatalf("straw hat = %+v", hat)
	}
	if _, err := gallery.NewStore(public).List(ctx, hat.ID); err != nil {
		t.Fatalf("gallery dir for seeded product: %v", err)
	}
}

func TestLoadCatalogRejectsUnknownFields(t *testing.T) {
	t.Parallel()

	if _, err := LoadCatalog(strings.NewReader("widgets:\n  - title: x\n")); err == nil {
		t.Fatal("expected error for unknown field")
	}
	catalog, err := LoadCatalog(strings.NewReader(""))
	if err != nil || len(catalog.Products) != 0 {
		t.Fatalf("empty catalog = %+v, %v", catalog, err)
	}
}

func TestSeedRejectsBadPrice(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(file, []byte("products:\n  - title: Hat\n    price: \"1.999\"\n"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := execute(t, filepath.Join(dir, "storefront.db"), "seed", "--file", file); err == nil {
		t.Fatal("expected price error")
	}
}

func TestSeedRejectsReservedPageSlug(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "reserved.yaml")
	if err := os.WriteFile(file, []byte("pages:\n  - title: Admin\n    content: hi\n"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	_, err := execute(t, filepath.Join(dir, "storefront.db"), "seed", "--file", file)
	if err == nil || !strings.Contains(err.Error(), "reserved") {
		t.Fatalf("seed error = %v, want reserved slug error", err)
	}
}

func TestUserCreate(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "storefront.db")
	args := []string{"user", "create", "--username", "ada", "--email", "ada@example.com", "--password", "secret", "--admin", "--cost", "4"}
	out, err := execute(t, dbPath, args...)
	if err != nil {
		t.Fatalf("user create error = %v", err)
	}
	if strings.TrimSpace(out) != "created admin ada" {
		t.Fatalf("output = %q", out)
	}
	if _, err := execute(t, dbPath, args...); err == nil || !strings.Contains(err.Error(), "exists") {
		t.Fatalf("duplicate user error = %v", err)
	}

	user, found, err := openTestStore(t, dbPath).FindUserByUsername(context.Background(), "ada")
	if err != nil || !found {
		t.Fatalf("find user: found=%v err=%v", found, err)
	}
	if !user.Admin || user.Name != "ada" {
		t.Fatalf("user = %+v", user)
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte("secret")); err != nil {
		t.Fatalf("password hash mismatch: %v", err)
	}
}

func TestUserCreateValidatesFlags(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "storefront.db")
	tests := [][]string{
		{"user", "create", "--password", "x"},
		{"user", "create", "--username", "ada"},
		{"user", "create", "--username", "ada", "--password", "x", "--email", "not-an-email"},
		{"user", "create", "--username", "ada", "--password", strings.Repeat("p", 80)},
	}
	for _, args := range tests {
		if _, err := execute(t, dbPath, args...); err == nil {
			t.Fatalf("%v: expected error", args)
		}
	}
	if _, found, err := openTestStore(t, dbPath).FindUserByUsername(context.Background(), "ada"); err != nil || found {
		t.Fatalf("find user: found=%v err=%v, want none", found, err)
	}
}

func TestSessionsPrune(t *testing.T) {
	t.Parallel()

	out, err := execute(t, filepath.Join(t.TempDir(), "storefront.db"), "sessions", "prune")
	if err != nil {
		t.Fatalf("prune error = %v", err)
	}
	if strings.TrimSpace(out) != "removed 0 expired sessions" {
		t.Fatalf("output = %q", out)
	}
}
