package main

import (
	"context"
	"errors"
	"expvar"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"plugshop/internal/auth"
	"plugshop/internal/domain/storage"
	"plugshop/internal/ratelimiter"
)

type application struct {
	config        config
	store         *storage.Container
	logger        *zap.SugaredLogger
	cld           *cloudinary.Cloudinary
	authenticator auth.Authenticator
	rateLimiter   ratelimiter.Set
	metrics       *metrics
}

type config struct {
	addr           string
	env            string
	allowedOrigins []string
	redis          redisConfig
	auth           authConfig
	rateLimiter    rateLimiterConfig
	cloudinaryURL  string
}

type authConfig struct {
	token tokenConfig
}

type tokenConfig struct {
	refreshSecret   string
	secret          string
	accessTokenExp  time.Duration
	refreshTokenExp time.Duration
	iss             string
}

type redisConfig struct {
	url         string
	poolSize    int
	maxIdleTime string
}

type rateLimiterConfig struct {
	general ratelimiter.Config
	auth    ratelimiter.Config
	admin   ratelimiter.Config
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(securityHeaders)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.config.allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	//Set a timeout value on the request context (ctx), that will signal through ctx.Done() that the request has timed out and further processing should be stopped
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(app.metrics.instrument)

	r.Get("/health", app.healthCheckHandler)
	r.Get("/ready", app.readinessHandler)
	r.Handle("/metrics", app.metrics.handler())

	r.Route("/api", func(r chi.Router) {
		r.With(app.AuthTokenMiddleware, app.requireAdmin).Get("/debug/vars", expvar.Handler().ServeHTTP)

		// Public routes
		r.Group(func(r chi.Router) {
			r.Use(app.RateLimiterMiddleware(app.rateLimiter.General))

			r.Get("/products", app.listProductsHandler)
			r.Get("/products/{id}", app.getProductHandler)
			r.Get("/categories", app.listCategoriesHandler)
			r.Get("/categories/{id}", app.getCategoryHandler)
			r.Get("/farms", app.listFarmsHandler)
			r.Get("/farms/{id}", app.getFarmHandler)
			r.Get("/promos", app.listPublicPromosHandler)
			r.Get("/reviews", app.listReviewsHandler)
			r.Get("/settings", app.getSettingsHandler)
			r.Get("/settings/{key}", app.getSettingHandler)
			r.Get("/socials", app.listSocialsHandler)
			r.Get("/events", app.listEventsHandler)
			r.Get("/cart_services", app.listCartServicesHandler)
			r.Get("/cart-settings", app.getCartSettingsHandler)
		})

		r.Route("/auth", func(r chi.Router) {
			r.Use(noStore)
			r.Use(app.RateLimiterMiddleware(app.rateLimiter.Auth))
			r.Post("/login", app.loginHandler)
			r.Post("/refresh", app.refreshTokenHandler)
		})

		// Admin routes
		r.Group(func(r chi.Router) {
			r.Use(noStore)
			r.Use(app.AuthTokenMiddleware)
			r.Use(app.requireAdmin)
			r.Use(app.RateLimiterMiddleware(app.rateLimiter.Admin))

			r.Post("/products", app.createProductHandler)
			r.Put("/products/{id}", app.updateProductHandler)
			r.Delete("/products/{id}", app.deleteProductHandler)

			r.Post("/categories", app.createCategoryHandler)
			r.Put("/categories/{id}", app.updateCategoryHandler)
			r.Delete("/categories/{id}", app.deleteCategoryHandler)

			r.Post("/farms", app.createFarmHandler)
			r.Put("/farms/{id}", app.updateFarmHandler)
			r.Delete("/farms/{id}", app.deleteFarmHandler)

			r.Get("/admin/promos", app.listAllPromosHandler)
			r.Post("/promos", app.createPromoHandler)
			r.Put("/promos/{id}", app.updatePromoHandler)
			r.Delete("/promos/{id}", app.deletePromoHandler)

			r.Post("/reviews", app.createReviewHandler)
			r.Put("/reviews/{id}", app.updateReviewHandler)
			r.Delete("/reviews/{id}", app.deleteReviewHandler)

			r.Post("/settings", app.updateSettingsHandler)

			r.Post("/socials", app.createSocialHandler)
			r.Put("/socials/{id}", app.updateSocialHandler)
			r.Delete("/socials/{id}", app.deleteSocialHandler)

			r.Post("/events", app.createEventHandler)
			r.Put("/events/{id}", app.updateEventHandler)
			r.Delete("/events/{id}", app.deleteEventHandler)

			r.Post("/cart-settings", app.updateCartSettingsHandler)

			r.Get("/admin-users", app.listAdminUsersHandler)
			r.Post("/admin-users", app.createAdminUserHandler)
			r.Put("/admin-users/{id}", app.updateAdminUserHandler)
			r.Delete("/admin-users/{id}", app.deleteAdminUserHandler)

			r.Post("/upload", app.uploadHandler)
			r.Delete("/upload", app.deleteUploadHandler)
		})
	})
	return r
}

func (app *application) run(mux http.Handler) error {
	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	// Implementing graceful shutdown
	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		shutdown <- srv.Shutdown(ctx)
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
