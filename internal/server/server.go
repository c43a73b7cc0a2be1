// Package server exposes the advisor over HTTP and a websocket live search.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/spigell/car-advisor/internal/advisor"
)

const (
	serviceName = "car-advisor"

	defaultAddress         = ":8080"
	defaultShutdownTimeout = 10 * time.Second
	readHeaderTimeout      = 10 * time.Second
)

type Config struct {
	Address         string
	ShutdownTimeout time.Duration
	CORSOrigin      string
}

type Server struct {
	cfg     Config
	advisor *advisor.Service
	hub     *searchHub
	logger  *zap.Logger
}

func New(cfg Config, svc *advisor.Service, log *zap.Logger) *Server {
	if cfg.Address == "" {
		cfg.Address = defaultAddress
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Server{
		cfg:     cfg,
		advisor: svc,
		hub:     newSearchHub(),
		logger:  log,
	}
}

// Handler returns the routed API wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.health).Methods(http.MethodGet)
	api.HandleFunc("/suggestions", s.getSuggestions).Methods(http.MethodGet)
	api.HandleFunc("/suggestions", s.postSuggestions).Methods(http.MethodPost)
	api.HandleFunc("/summary", s.summary).Methods(http.MethodPost)
	api.HandleFunc("/cars/{make}/{model}", s.car).Methods(http.MethodGet)
	api.HandleFunc("/catalog", s.listCatalog).Methods(http.MethodGet)

	r.HandleFunc("/ws/search", s.liveSearch).Methods(http.MethodGet)

	return Chain(r,
		Recover(s.logger),
		Logger(s.logger),
		CORS(s.cfg.CORSOrigin),
		OTel(serviceName),
	)
}

// Run serves until ctx is done, then shuts down gracefully within the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", zap.String("address", s.cfg.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server", zap.Duration("timeout", s.cfg.ShutdownTimeout))

	shutCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	s.hub.closeAll()
	return srv.Shutdown(shutCtx)
}
