package api

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
	"github.com/go-chi/cors"
	"golang.org/x/crypto/bcrypt"

	"github.com/Pasindu991182/food-delivery-system/internal/store"
	"github.com/Pasindu991182/food-delivery-system/internal/tracking"
)

const (
	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 10 * time.Second
	writeTimeout      = 30 * time.Second
)

// Server wraps the chi router and application dependencies.
type Server struct {
	router     *chi.Mux
	store      store.Store
	broker     *tracking.Broker
	logger     *slog.Logger
	addr       string
	origins    []string
	bcryptCost int
	now        func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithAllowedOrigins sets the origins allowed by CORS. The default allows any
// origin.
func WithAllowedOrigins(origins []string) Option {
	return func(s *Server) {
		if len(origins) > 0 {
			s.origins = origins
		}
	}
}

// WithBcryptCost sets the cost used to hash new passwords.
func WithBcryptCost(cost int) Option {
	return func(s *Server) {
		s.bcryptCost = cost
	}
}

// WithClock overrides the clock used for timestamps on new records.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// NewServer creates and configures a new HTTP server.
func NewServer(addr string, s store.Store, broker *tracking.Broker, logger *slog.Logger, opts ...Option) *Server {
	srv := &Server{
		router:     chi.NewRouter(),
		store:      s,
		broker:     broker,
		logger:     logger,
		addr:       addr,
		origins:    []string{"*"},
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(srv)
	}

	srv.router.Use(middleware.RequestID)
	srv.router.Use(middleware.Recoverer)
	srv.router.Use(srv.loggingMiddleware)
	srv.router.Use(metricsMiddleware)
	srv.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   srv.origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	srv.routes()

	return srv
}

// routes registers all HTTP routes on the router.
func (s *Server) routes() {
	s.router.Get("/healthz", s.handleHealthz)
	s.router.Handle("/metrics", metricsHandler())

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/stats", s.handleGetStats)

		r.Route("/users", func(r chi.Router) {
			r.Post("/", s.handleRegisterUser)
			r.Post("/login", s.handleLoginUser)
			r.Get("/", s.handleListUsers)
			r.Get("/{id}", s.handleGetUser)
			r.Put("/{id}", s.handleUpdateUser)
			r.Delete("/{id}", s.handleDeleteUser)
			r.Get("/{id}/orders", s.handleListUserOrders)
			r.Get("/{id}/cart", s.handleGetCart)
			r.Post("/{id}/cart/items", s.handleAddCartItem)
			r.Delete("/{id}/cart/items/{foodID}", s.handleRemoveCartItem)
		})

		r.Route("/foods", func(r chi.Router) {
			r.Post("/", s.handleCreateFood)
			r.Get("/", s.handleListFoods)
			r.Get("/{id}", s.handleGetFood)
			r.Put("/{id}", s.handleUpdateFood)
			r.Delete("/{id}", s.handleDeleteFood)
			r.Get("/{id}/reviews", s.handleListFoodReviews)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", s.handlePlaceOrder)
			r.Get("/", s.handleListOrders)
			r.Get("/{id}", s.handleGetOrder)
			r.Put("/{id}", s.handleUpdateOrder)
			r.Delete("/{id}", s.handleDeleteOrder)
			r.Put("/{id}/status", s.handleUpdateOrderStatus)
			r.Get("/{id}/events", s.handleStreamOrderEvents)
		})

		r.Route("/delivery-persons", func(r chi.Router) {
			r.Post("/", s.handleCreateDeliveryPerson)
			r.Post("/login", s.handleLoginDeliveryPerson)
			r.Get("/", s.handleListDeliveryPersons)
			r.Get("/{id}", s.handleGetDeliveryPerson)
			r.Put("/{id}", s.handleUpdateDeliveryPerson)
			r.Delete("/{id}", s.handleDeleteDeliveryPerson)
		})

		r.Route("/deliveries", func(r chi.Router) {
			r.Get("/out-for-delivery", s.handleListOutForDelivery)
			r.Post("/assignments", s.handleCreateAssignment)
			r.Get("/assignments", s.handleListAssignments)
			r.Get("/assignments/{id}", s.handleGetAssignment)
			r.Put("/assignments/{id}", s.handleUpdateAssignment)
			r.Delete("/assignments/{id}", s.handleDeleteAssignment)
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Post("/", s.handleCreateReview)
			r.Get("/", s.handleListReviews)
			r.Get("/{id}", s.handleGetReview)
			r.Put("/{id}", s.handleUpdateReview)
			r.Delete("/{id}", s.handleDeleteReview)
		})

		r.Route("/messages", func(r chi.Router) {
			r.Post("/", s.handleCreateMessage)
			r.Get("/", s.handleListMessages)
			r.Get("/{id}", s.handleGetMessage)
			r.Put("/{id}", s.handleUpdateMessage)
			r.Delete("/{id}", s.handleDeleteMessage)
		})
	})
}

// Router returns the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Run starts the HTTP server and blocks until a shutdown signal is received.
func (s *Server) Run() error {
	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		s.logger.Info("shutting down", "signal", sig.String())
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}

// loggingMiddleware logs each request using the structured logger.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
