// Package app composes storefront modules into a root handler.
package app

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/louisbranch/storefront/internal/services/storefront/module"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/flash"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/httpx"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/requestmeta"
	"github.com/louisbranch/storefront/internal/services/storefront/routepath"
)

// AdminRequiredMessage is flashed when a non-admin reaches an admin route.
const AdminRequiredMessage = "Please log in as admin."

// ComposeInput carries module groups and shared composition contracts.
type ComposeInput struct {
	PublicModules []module.Module
	AdminModules  []module.Module
	// IsAdmin reports whether the request belongs to a signed-in admin.
	IsAdmin      func(*http.Request) bool
	SchemePolicy requestmeta.SchemePolicy
}

// Compose builds a root HTTP handler from module groups.
func Compose(input ComposeInput) (http.Handler, error) {
	root := http.NewServeMux()
	if input.IsAdmin == nil {
		input.IsAdmin = func(*http.Request) bool { return false }
	}
	seen := make(map[string]string)

	for _, feature := range input.PublicModules {
		if feature == nil {
			return nil, fmt.Errorf("public module is nil")
		}
		mount, prefix, err := resolveMount(feature)
		if err != nil {
			return nil, err
		}
		if isAdminPrefix(prefix) {
			return nil, fmt.Errorf("module %q has admin prefix %q in public group", feature.ID(), prefix)
		}
		if err := mountModule(root, feature, mount.Handler, prefix, seen); err != nil {
			return nil, err
		}
	}

	guard := requireAdmin(input.IsAdmin, input.SchemePolicy)
	for _, feature := range input.AdminModules {
		if feature == nil {
			return nil, fmt.Errorf("admin module is nil")
		}
		mount, prefix, err := resolveMount(feature)
		if err != nil {
			return nil, err
		}
		if !isAdminPrefix(prefix) {
			return nil, fmt.Errorf("module %q must mount under %s, got %q", feature.ID(), routepath.AdminPrefix, prefix)
		}
		if err := mountModule(root, feature, guard(mount.Handler), prefix, seen); err != nil {
			return nil, err
		}
	}

	return root, nil
}

// mountModule registers prefix and its slashless alias so "/products"
// reaches the module instead of the mux's trailing-slash redirect.
func mountModule(root *http.ServeMux, feature module.Module, handler http.Handler, prefix string, seen map[string]string) error {
	if previous, ok := seen[prefix]; ok {
		return fmt.Errorf("module %q duplicates prefix %q owned by module %q", feature.ID(), prefix, previous)
	}
	seen[prefix] = feature.ID()
	root.Handle(prefix, handler)
	if prefix != routepath.Root {
		root.Handle(strings.TrimSuffix(prefix, "/"), handler)
	}
	return nil
}

func isAdminPrefix(prefix string) bool {
	return strings.HasPrefix(prefix, routepath.AdminPrefix)
}

func resolveMount(feature module.Module) (module.Mount, string, error) {
	mount, err := feature.Mount()
	if err != nil {
		return module.Mount{}, "", fmt.Errorf("mount module %q: %w", feature.ID(), err)
	}
	prefix := normalizePrefix(mount.Prefix)
	if prefix == "" {
		return module.Mount{}, "", fmt.Errorf("mount module %q: prefix is required", feature.ID())
	}
	if mount.Handler == nil {
		return module.Mount{}, "", fmt.Errorf("mount module %q: handler is required", feature.ID())
	}
	return mount, prefix, nil
}

func normalizePrefix(prefix string) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return ""
	}
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return prefix
}

func requireAdmin(isAdmin func(*http.Request) bool, policy requestmeta.SchemePolicy) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isAdmin(r) {
				flash.Write(w, r, flash.Error(AdminRequiredMessage), policy)
				httpx.WriteRedirect(w, r, routepath.UsersLogin)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
