package storefront

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/storefront/internal/platform/money"
	"github.com/louisbranch/storefront/internal/platform/timeouts"
	"github.com/louisbranch/storefront/internal/services/catalog/gallery"
	"github.com/louisbranch/storefront/internal/services/catalog/navigation"
	"github.com/louisbranch/storefront/internal/services/storefront/app"
	"github.com/louisbranch/storefront/internal/services/storefront/module"
	"github.com/louisbranch/storefront/internal/services/storefront/modules"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/httpx"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/observability"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/requestmeta"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/session"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/sessioncookie"
	"github.com/louisbranch/storefront/internal/services/storefront/routepath"
	"github.com/louisbranch/storefront/internal/services/storefront/static"
	"go.uber.org/zap"
)

// Store is the persistence the storefront needs.
type Store interface {
	modules.Store
	session.Store
	navigation.PageLister
	navigation.CategoryLister
	Ping(ctx context.Context) error
}

// Config defines startup inputs for the storefront service.
type Config struct {
	HTTPAddr string
	Store    Store
	// PublicDir holds product_images/.
	PublicDir           string
	SessionSecret       []byte
	SessionTTL          time.Duration
	Currency            string
	TrustForwardedProto bool
	Logger              *zap.Logger
	// BcryptCost overrides the password hashing cost when positive.
	BcryptCost int
}

// Server hosts the storefront HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	logger     *zap.Logger
}

// NewHandler loads the navigation snapshot and builds the root handler.
func NewHandler(ctx context.Context, cfg Config) (http.Handler, error) {
	if cfg.Store == nil {
		return nil, errors.New("store is required")
	}
	if strings.TrimSpace(cfg.PublicDir) == "" {
		return nil, errors.New("public directory is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	policy := requestmeta.SchemePolicy{TrustForwardedProto: cfg.TrustForwardedProto}

	nav, err := navigation.Load(ctx, cfg.Store, cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("load navigation: %w", err)
	}
	codec, err := sessioncookie.NewCodec(cfg.SessionSecret, time.Now)
	if err != nil {
		return nil, fmt.Errorf("session codec: %w", err)
	}
	sessions, err := session.NewManager(session.Config{
		Store:        cfg.Store,
		Codec:        codec,
		TTL:          cfg.SessionTTL,
		SchemePolicy: policy,
		Logger:       logger.Named("session"),
	})
	if err != nil {
		return nil, err
	}
	formatter, err := money.NewFormatter(cfg.Currency, "")
	if err != nil {
		return nil, err
	}

	deps := modules.Dependencies{
		Store:  cfg.Store,
		Images: gallery.NewStore(cfg.PublicDir),
		Runtime: module.Runtime{
			Navigation:   nav,
			Sessions:     sessions,
			Logger:       logger,
			SchemePolicy: policy,
			Money:        formatter,
		},
		BcryptCost: cfg.BcryptCost,
	}
	h, err := app.Compose(app.ComposeInput{
		PublicModules: modules.DefaultPublicModules(deps),
		AdminModules:  modules.DefaultAdminModules(deps),
		IsAdmin:       sessions.IsAdmin,
		SchemePolicy:  policy,
	})
	if err != nil {
		return nil, err
	}

	rootMux := http.NewServeMux()
	rootMux.Handle(routepath.StaticPrefix, http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.FS(static.FS))))
	rootMux.Handle(routepath.ImagesPrefix, noDirectoryListing(http.FileServer(http.Dir(cfg.PublicDir))))
	rootMux.HandleFunc(http.MethodGet+" "+routepath.Health, health(cfg.Store, logger))
	rootMux.Handle("/", h)
	return httpx.Chain(rootMux,
		httpx.RecoverPanic(logger),
		httpx.RequestID(),
		observability.Tracing(),
		observability.RequestLogger(logger),
		sessions.Middleware(),
		httpx.RequireSameOrigin(policy.SameOrigin),
	), nil
}

func health(store Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.Ping(r.Context()); err != nil {
			logger.Warn("health check failed", zap.Error(err))
			httpx.WriteText(w, http.StatusServiceUnavailable, "unavailable")
			return
		}
		httpx.WriteText(w, http.StatusOK, "ok")
	}
}

func noDirectoryListing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// NewServer validates config and constructs a storefront server.
func NewServer(ctx context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("compose storefront handler: %w", err)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		httpAddr: httpAddr,
		logger:   logger,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
			ErrorLog:          zap.NewStdLog(logger.Named("http")),
		},
	}, nil
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("storefront server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()
	s.logger.Info("storefront listening", zap.String("addr", s.httpAddr))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown storefront http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve storefront http: %w", err)
	}
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	_ = s.httpServer.Close()
}
