package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"

	"github.com/tuanvumaihuynh/inventory-management/internal/apperr"
	"github.com/tuanvumaihuynh/inventory-management/internal/config"
	"github.com/tuanvumaihuynh/inventory-management/internal/http/apierr"
	"github.com/tuanvumaihuynh/inventory-management/internal/http/metric"
	"github.com/tuanvumaihuynh/inventory-management/internal/http/middleware"
	"github.com/tuanvumaihuynh/inventory-management/internal/http/swagger"
	"github.com/tuanvumaihuynh/inventory-management/internal/service"
	"github.com/tuanvumaihuynh/inventory-management/internal/storage/db"
)

const APIPrefix = "/api/v1"

var tracer = otel.Tracer("internal/http")

// Services groups the domain services exposed over HTTP.
type Services struct {
	Category service.CategoryService
	Product  service.ProductService
	Purchase service.PurchaseService
	Order    service.OrderService
}

// Service represents the HTTP service.
type Service struct {
	cfg     config.HTTP
	logger  *slog.Logger
	metrics *metric.Metrics
	health  db.HealthChecker

	svcs Services
}

type CleanupFunc func(ctx context.Context) error

func New(
	cfg config.HTTP,
	log *slog.Logger,
	health db.HealthChecker,
	svcs Services,
) (*Service, error) {
	metrics, err := metric.New(prometheus.DefaultRegisterer)
	if err != nil {
		return nil, fmt.Errorf("register http metrics: %w", err)
	}

	return &Service{
		cfg:     cfg,
		logger:  log.With(slog.String("service", "http")),
		metrics: metrics,
		health:  health,
		svcs:    svcs,
	}, nil
}

func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	return s.RunWithServer(ctx, s.Handler())
}

// Handler builds the router with every middleware and route mounted.
func (s *Service) Handler() http.Handler {
	r := chi.NewRouter()
	s.RegisterMiddlewares(r)

	if s.cfg.Swagger {
		swagger.Register(r)
	}

	s.RegisterHandlers(r)

	return r
}

func (s *Service) RunWithServer(ctx context.Context, handler http.Handler) (CleanupFunc, error) {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.cfg.Port))
	if err != nil {
		return nil, fmt.Errorf("listen on port %d: %w", s.cfg.Port, err)
	}

	srv := &http.Server{
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 16, // 64 KB
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("http server stopped", slog.Any("error", err))
		}
	}()

	s.logger.Info("http server listening", slog.String("addr", ln.Addr().String()))

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}, nil
}

func (s *Service) RegisterMiddlewares(r chi.Router) {
	r.Use(
		middleware.Recoverer(s.logger),
		middleware.CorrelationID(),
		middleware.Trace(tracer),
		middleware.Metrics(s.metrics),
		middleware.Cors(s.cfg.AllowedOrigins),
		middleware.Logging(s.logger),
	)
}

func (s *Service) RegisterHandlers(r chi.Router) {
	h := s.newHandler()

	r.Route(APIPrefix, func(r chi.Router) {
		r.Use(middleware.RateLimit(s.cfg.RateLimit))

		r.Get("/categories", s.handle(h.ListCategories))

		r.Get("/products", s.handle(h.ListProducts))
		r.Get("/products/purchases", s.handle(h.ListPurchases))
		r.Post("/products/purchase", s.handle(h.CreatePurchase))
		r.Put("/products/purchase/{id}", s.handle(h.UpdatePurchaseStatus))

		r.Get("/orders", s.handle(h.ListOrders))
		r.Post("/orders", s.handle(h.CreateOrder))
		r.Put("/orders/{id}", s.handle(h.UpdateOrderStatus))
		r.Put("/orders/{id}/send", s.handle(h.SendOrder))
	})

	r.Get(middleware.HealthPath, s.handleHealth)

	r.Handle(middleware.MetricsPath, promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{
		ErrorLog: log.Default(),
	}))
}

// handle adapts an error-returning handler. Request errors become 400 with
// the decoder's message, everything else goes through apierr.
func (s *Service) handle(fn func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}

		var reqErr requestError
		if errors.As(err, &reqErr) {
			s.handleRequestError(w, r, reqErr)
			return
		}
		s.handleResponseError(w, r, err)
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	ok, err := s.health.IsHealthy(r.Context())
	if err != nil || !ok {
		s.logger.WarnContext(r.Context(), "health check failed", slog.Any("error", err))
		//nolint:errcheck
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	//nolint:errcheck
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Service) handleRequestError(w http.ResponseWriter, r *http.Request, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)

	err = apperr.ValidationErr.WrapParent(err)
	res := apierr.New(err)

	if err := json.NewEncoder(w).Encode(res); err != nil {
		s.logger.WarnContext(r.Context(), "error encoding error request",
			slog.Any("error", err))
	}
}

func (s *Service) handleResponseError(w http.ResponseWriter, r *http.Request, err error) {
	res := apierr.New(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(res.StatusCode)

	logLevel := slog.LevelInfo
	if res.StatusCode >= 500 {
		logLevel = slog.LevelError
	} else if res.StatusCode >= 400 {
		logLevel = slog.LevelWarn
	}
	s.logger.Log(r.Context(), logLevel, "http response error", slog.Any("error", err))

	if err := json.NewEncoder(w).Encode(res); err != nil {
		s.logger.ErrorContext(r.Context(), "error encoding error response",
			slog.Any("error", err))
	}
}

type handler struct {
	*categoryHandler
	*productHandler
	*purchaseHandler
	*orderHandler
}

func (s *Service) newHandler() *handler {
	return &handler{
		categoryHandler: newCategoryHandler(s.svcs.Category),
		productHandler:  newProductHandler(s.svcs.Product),
		purchaseHandler: newPurchaseHandler(s.svcs.Purchase),
		orderHandler:    newOrderHandler(s.svcs.Order),
	}
}
