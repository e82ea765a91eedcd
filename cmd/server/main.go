package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"

	"github.com/RyanHLA/iasminsantos/internal/config"
	"github.com/RyanHLA/iasminsantos/internal/handlers"
	"github.com/RyanHLA/iasminsantos/internal/live"
	"github.com/RyanHLA/iasminsantos/internal/store"
	"github.com/RyanHLA/iasminsantos/internal/uploader"
)

func main() {
	handlerOpts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, handlerOpts))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Init DB
	db, err := store.NewStore(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize store", "error", err)
		os.Exit(1)
	}

	// Run Migrations
	if err := db.Migrate("migrations"); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	// 3. Session Setup
	sessionStore := sessions.NewCookieStore(cfg.SessionKey)
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.Secure = cfg.CookieSecure
	sessionStore.Options.SameSite = http.SameSiteLaxMode
	sessionStore.Options.Path = "/"
	if cfg.CookieDomain != "" {
		sessionStore.Options.Domain = cfg.CookieDomain
	}

	// 4. Templates
	templates := handlers.NewTemplateCache()
	if err := templates.Load("templates"); err != nil {
		slog.Error("Failed to load templates", "error", err)
		os.Exit(1)
	}

	// 5. Uploads + live feed
	uploads := uploader.NewProcessor(&uploader.DiskStore{
		Dir:          cfg.UploadDir,
		PublicPrefix: cfg.PublicPrefix,
	})

	hub := live.NewHub()
	go hub.Run()

	// 6. Handlers
	adminHandler := &handlers.AdminHandler{
		Store:        db,
		SessionStore: sessionStore,
		Templates:    templates,
		Uploads:      uploads,
		Live:         hub,
	}
	homeHandler := &handlers.HomeHandler{
		Store:        db,
		Templates:    templates,
		SessionStore: sessionStore,
	}
	proofHandler := &handlers.ProofHandler{
		Store:        db,
		Templates:    templates,
		SessionStore: sessionStore,
		Live:         hub,
	}

	mux := http.NewServeMux()

	// Static Files
	fileServer := http.FileServer(http.Dir("./static"))
	mux.Handle("/static/", http.StripPrefix("/static", fileServer))

	// PIN attempts are throttled per IP.
	pinLimiter := handlers.NewRateLimiter(2 * time.Second)

	// Public Routes
	mux.HandleFunc("GET /{$}", homeHandler.Index)
	mux.HandleFunc("GET /galeria/{category}", homeHandler.CategoryAlbums)
	mux.HandleFunc("GET /galeria/album/{albumID}", homeHandler.AlbumPhotos)

	// Client Proofing (PIN gated)
	mux.HandleFunc("GET /proof/{albumID}", proofHandler.View)
	mux.HandleFunc("POST /proof/{albumID}/unlock", pinLimiter.Middleware(proofHandler.Unlock))
	mux.HandleFunc("POST /proof/{albumID}/toggle", proofHandler.Toggle)
	mux.HandleFunc("POST /proof/{albumID}/submit", proofHandler.Submit)

	mux.HandleFunc("GET /login", adminHandler.LoginGet)
	mux.HandleFunc("POST /login", adminHandler.LoginPost)
	mux.HandleFunc("GET /logout", adminHandler.Logout)

	// Protected Routes
	mux.HandleFunc("GET /admin", adminHandler.AuthMiddleware(adminHandler.Dashboard))
	mux.HandleFunc("GET /admin/live", adminHandler.AuthMiddleware(adminHandler.LiveFeed))

	mux.HandleFunc("GET /admin/gallery", adminHandler.AuthMiddleware(adminHandler.Gallery))
	mux.HandleFunc("GET /admin/gallery/album/{albumID}", adminHandler.AuthMiddleware(adminHandler.Gallery))
	mux.HandleFunc("POST /admin/albums", adminHandler.AuthMiddleware(adminHandler.CreateAlbum))
	mux.HandleFunc("POST /admin/albums/{albumID}", adminHandler.AuthMiddleware(adminHandler.UpdateAlbum))
	mux.HandleFunc("POST /admin/albums/delete", adminHandler.AuthMiddleware(adminHandler.DeleteAlbum))
	mux.HandleFunc("POST /admin/albums/{albumID}/cover", adminHandler.AuthMiddleware(adminHandler.SetAlbumCover))

	mux.HandleFunc("POST /admin/albums/{albumID}/photos", adminHandler.AuthMiddleware(adminHandler.UploadPhotos))
	mux.HandleFunc("POST /admin/albums/{albumID}/reorder", adminHandler.AuthMiddleware(adminHandler.ReorderPhotos))
	mux.HandleFunc("POST /admin/photos/{photoID}", adminHandler.AuthMiddleware(adminHandler.UpdatePhoto))
	mux.HandleFunc("POST /admin/photos/delete", adminHandler.AuthMiddleware(adminHandler.DeletePhoto))
	mux.HandleFunc("POST /admin/photos/bulk-delete", adminHandler.AuthMiddleware(adminHandler.BulkDeletePhotos))
	mux.HandleFunc("POST /admin/photos/feature", adminHandler.AuthMiddleware(adminHandler.ToggleFeatured))

	mux.HandleFunc("GET /admin/clients", adminHandler.AuthMiddleware(adminHandler.ClientAlbums))
	mux.HandleFunc("POST /admin/clients/{albumID}/config", adminHandler.AuthMiddleware(adminHandler.SaveClientConfig))
	mux.HandleFunc("GET /admin/clients/{albumID}/selections", adminHandler.AuthMiddleware(adminHandler.ViewSelections))
	mux.HandleFunc("POST /admin/clients/{albumID}/reopen", adminHandler.AuthMiddleware(adminHandler.ReopenAlbum))

	mux.HandleFunc("GET /admin/site", adminHandler.AuthMiddleware(adminHandler.SiteContent))
	mux.HandleFunc("POST /admin/site/images/delete", adminHandler.AuthMiddleware(adminHandler.DeleteSiteImage))
	mux.HandleFunc("POST /admin/site/{section}", adminHandler.AuthMiddleware(adminHandler.UpdateSiteSection))

	// 7. Middleware Setup
	CSRF := csrf.Protect(
		cfg.CSRFKey,
		csrf.Secure(cfg.CookieSecure),
		csrf.TrustedOrigins([]string{"localhost:" + cfg.Port, "127.0.0.1:" + cfg.Port, "localhost", "127.0.0.1"}),
	)

	// Chain: Logger -> Security Headers -> CSRF -> Mux
	handler := handlers.LoggingMiddleware(
		handlers.SecurityHeadersMiddleware(
			CSRF(mux),
		),
	)

	// 8. Start Server with Graceful Shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to listen and serve", "error", err)
			os.Exit(1)
		}
	}()

	<-stop

	slog.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited gracefully.")
}
