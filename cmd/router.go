package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/afero"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/sbilibin2017/gw-image-gallery/docs"
	"github.com/sbilibin2017/gw-image-gallery/internal/handlers"
	"github.com/sbilibin2017/gw-image-gallery/internal/logger"
	"github.com/sbilibin2017/gw-image-gallery/internal/middlewares"
	"github.com/sbilibin2017/gw-image-gallery/internal/services"
	"github.com/sbilibin2017/gw-image-gallery/internal/token"
)

type routerDeps struct {
	auth       *services.AuthService
	sessions   *services.SessionService
	uploads    *services.UploadService
	cookie     *token.Cookie
	fs         afero.Fs
	uploadDir  string
	podName    string
	nodeName   string
	swaggerURL string
}

// newRouter wires handlers and middleware into a chi router.
func newRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))
	r.Use(middlewares.ServedByMiddleware(d.podName))

	// Public routes
	r.Post("/register", handlers.NewRegisterHandler(d.auth))
	r.Post("/login", handlers.NewLoginHandler(d.auth, d.cookie))
	r.Get("/auth/status", handlers.NewAuthStatusHandler(d.cookie, d.sessions))
	r.Get("/health", handlers.NewHealthHandler())
	r.Get("/server-info", handlers.NewServerInfoHandler(d.podName, d.nodeName))
	r.Get("/uploads/{filename}", handlers.NewFileHandler(d.fs, d.uploadDir))

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middlewares.AuthMiddleware(d.cookie, d.sessions))
		r.Get("/logout", handlers.NewLogoutHandler(d.auth, d.cookie))
		r.Post("/upload", handlers.NewUploadHandler(d.uploads))
		r.Get("/uploads", handlers.NewListUploadsHandler(d.uploads))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(d.swaggerURL),
	))

	return r
}
