package main

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"folio/docs" //this is required to generate swagger docs
	"folio/internal/domain/contact"
	"folio/internal/domain/reviews"
	"folio/internal/notifications"
	"folio/internal/ratelimiter"
	"folio/internal/theme"
	"folio/internal/views"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type application struct {
	config      config
	db          pinger
	reviews     *reviews.Service
	contact     *contact.Service
	theme       *theme.Store
	accentCSS   *views.AccentBinding
	logger      *zap.SugaredLogger
	avatars     avatarUploader
	notifier    *notifications.OwnerNotifier
	rateLimiter ratelimiter.Limiter
	wg          sync.WaitGroup
}

type config struct {
	addr        string
	env         string
	apiURL      string
	frontendURL string
	db          dbConfig
	mail        mailConfig
	auth        authConfig
	rateLimiter ratelimiter.Config
	reviews     reviewsConfig
	redis       redisConfig
	theme       themeConfig
	push        pushConfig
	site        siteConfig
	cloudinary  string
}

type dbConfig struct {
	addr        string
	maxConns    int
	maxIdleTime string
	autoMigrate bool
}

type mailConfig struct {
	host      string
	port      int
	username  string
	password  string
	fromEmail string
	ownerName string
	contactTo string
}

type authConfig struct {
	basic basicConfig
}

type basicConfig struct {
	user string
	pass string
	// bcrypt hash; takes precedence over pass when set
	passHash string
}

type reviewsConfig struct {
	limits       reviews.Limits
	cacheBackend string
	cacheTTL     time.Duration
	cacheSize    int
}

type redisConfig struct {
	addr     string
	password string
	db       int
}

type themeConfig struct {
	storage  string
	boltPath string
	strict   bool
}

type pushConfig struct {
	tokens      []string
	accessToken string
}

type siteConfig struct {
	measurementID string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(app.metricsMiddleware)

	allowedOrigins := []string{"https://*", "http://*"}
	if app.config.frontendURL != "" {
		allowedOrigins = []string{app.config.frontendURL}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.With(app.BasicAuthMiddleware()).Get("/health", app.healthCheckHandler)
		docsURL := fmt.Sprintf("%s/swagger/doc.json", app.config.addr)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))

		r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)
		r.With(app.BasicAuthMiddleware()).Handle("/metrics", promhttp.Handler())

		r.Get("/site", app.siteConfigHandler)

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", app.listReviewsHandler)
			r.With(app.RateLimiterMiddleware).Post("/", app.submitReviewHandler)
			if app.avatars != nil {
				r.With(app.RateLimiterMiddleware).Post("/avatar", app.uploadAvatarHandler)
			}
		})
		r.Get("/testimonials", app.listTestimonialsHandler)

		r.Route("/theme", func(r chi.Router) {
			r.Get("/", app.getThemeHandler)
			r.With(app.RateLimiterMiddleware, app.BasicAuthMiddleware()).Put("/", app.setThemeHandler)
			r.Get("/palette", app.paletteHandler)
			r.Get("/vars.css", app.themeCSSHandler)
		})

		r.With(app.RateLimiterMiddleware).Post("/contact", app.contactHandler)

		r.Route("/admin", func(r chi.Router) {
			r.Use(app.BasicAuthMiddleware())
			r.Get("/contact", app.adminListContactHandler)
			r.Patch("/contact/{messageID}/read", app.adminMarkContactReadHandler)
		})
	})
	return r
}

func (app *application) run(mux http.Handler) error {
	// Docs
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/v1"

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		err := srv.Shutdown(ctx)
		if err != nil {
			shutdown <- err
		}

		app.logger.Infow("completing background tasks", "addr", srv.Addr)
		app.wg.Wait()
		shutdown <- nil
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
