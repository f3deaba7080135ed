package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"carparking/internal/logging"
	"carparking/internal/parking"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Config struct {
	Port         string
	ServiceName  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type Server struct {
	httpServer *http.Server
	handler    *Handler
}

func NewServer(cfg Config, registry *parking.InstrumentedRegistry) (*Server, error) {
	handler := NewHandler(registry, cfg.ServiceName)

	metrics := prometheus.NewRegistry()
	if err := metrics.Register(parking.NewCollector(registry.LotRegistry)); err != nil {
		return nil, fmt.Errorf("register parking collector: %w", err)
	}
	if err := metrics.Register(collectors.NewGoCollector()); err != nil {
		return nil, fmt.Errorf("register go collector: %w", err)
	}

	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(TracingMiddleware(cfg.ServiceName))
	r.Use(LoggingMiddleware)
	r.Use(RecoveryMiddleware)
	r.Use(CORSMiddleware)

	r.Get("/", handler.Welcome)
	r.Get("/health", handler.HealthCheck)
	r.Handle("/metrics", promhttp.HandlerFor(metrics, promhttp.HandlerOpts{Registry: metrics}))

	r.Route("/carparking", func(r chi.Router) {
		r.Get("/", handler.ListLots)
		r.Post("/create", handler.CreateLot)
		r.Route("/{id}", func(r chi.Router) {
			r.Delete("/", handler.DeleteLot)
			r.Patch("/expand", handler.ExpandLot)
			r.Post("/park", handler.Park)
			r.Post("/free", handler.Free)
			r.Get("/status", handler.Status)
			r.Get("/regnos", handler.RegNosByColor)
			r.Get("/slots", handler.SlotsByColor)
			r.Get("/slot", handler.SlotByRegNo)
			r.Get("/count_by_color", handler.ColorCounts)
		})
	})

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &Server{
		httpServer: httpServer,
		handler:    handler,
	}, nil
}

func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) Start() error {
	logging.Info(context.Background(), "starting HTTP server", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info(ctx, "shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}
