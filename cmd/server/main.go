package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/tendant/content-types/pkg/contenttype"
	"github.com/tendant/content-types/pkg/contenttype/api"
	"github.com/tendant/content-types/pkg/contenttype/config"
	"github.com/tendant/content-types/pkg/contenttype/host/memory"
	"github.com/tendant/content-types/pkg/contenttype/i18n"
)

func main() {
	// .env is optional; real environment variables win
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "err", err)
	}

	cfg, err := config.Load(config.WithEnv())
	if err != nil {
		slog.Error("Failed to load configuration", "err", err)
		os.Exit(1)
	}

	ctx := context.Background()
	registrar, closeRegistrar, err := cfg.BuildRegistrar(ctx)
	if err != nil {
		slog.Error("Failed to build registrar", "err", err)
		os.Exit(1)
	}
	defer closeRegistrar()

	registry, err := bootstrap(ctx, cfg, registrar, slog.Default())
	if err != nil {
		slog.Error("Failed to register content types", "err", err)
		os.Exit(1)
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: newRouter(registry, cfg.Environment),
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Content type server starting", "port", cfg.Port, "env", cfg.Environment, "content_types", registry.Slugs())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "err", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "err", err)
		os.Exit(1)
	}

	slog.Info("Server exiting")
}

// bootstrap builds a factory per declaration, attaches its hooks and fires
// the load and init lifecycle points. Registered factories end up in the
// returned registry.
func bootstrap(ctx context.Context, cfg *config.Config, registrar contenttype.Registrar, logger *slog.Logger) (*contenttype.Registry, error) {
	catalog := i18n.NewCatalog()
	registry := contenttype.NewRegistry()
	dispatcher := memory.NewDispatcher()

	factories, err := cfg.BuildFactories(
		contenttype.WithTranslator(catalog.Translator(cfg.Tag())),
		contenttype.WithLocalizer(catalog),
		contenttype.WithRegistrar(registrar),
		contenttype.WithRegistry(registry),
		contenttype.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	for _, f := range factories {
		f.Hooks(dispatcher)
	}

	if err := dispatcher.DoAction(ctx, contenttype.HookPluginsLoaded); err != nil {
		return nil, err
	}
	if err := dispatcher.DoAction(ctx, contenttype.HookInit); err != nil {
		return nil, err
	}
	return registry, nil
}

func newRouter(registry *contenttype.Registry, environment string) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(api.CacheMiddleware(60))

	// CORS for development
	if environment == "development" {
		r.Use(api.CORSMiddleware(nil, nil, nil))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Mount("/api/v1/content-types", api.NewHandler(registry, slog.Default()).Routes())

	return r
}
