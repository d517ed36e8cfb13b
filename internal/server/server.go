// Package server is the daemon's HTTP side: health checks and Prometheus metrics.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"net/http"
	"time"
)

//go:generate mockgen -destination=server_mock.go -package=server -source=server.go

const (
	serverName      = "LiteTable http server"
	startupWait     = 200 * time.Millisecond
	shutdownTimeout = 5 * time.Second
)

type httpServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
	Addr() string
}

// stdServer adapts *http.Server to httpServer.
type stdServer struct {
	*http.Server
}

func (s stdServer) Addr() string {
	return s.Server.Addr
}

type Server struct {
	address string
	port    int
	server  httpServer
}

type Config struct {
	Address string
	Port    int
	// Gatherer is exposed on /metrics. Defaults to prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer
}

func (c *Config) validate() error {
	var errGrp []error
	if c.Address == "" {
		errGrp = append(errGrp, errors.New("address is required"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errGrp = append(errGrp, errors.New("port must be between 1 and 65535"))
	}
	return errors.Join(errGrp...)
}

// New returns the HTTP server exposing /health and /metrics.
func New(cfg *Config) (*Server, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", health)
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return &Server{
		address: cfg.Address,
		port:    cfg.Port,
		server: stdServer{&http.Server{
			Addr:              fmt.Sprintf("%s:%d", cfg.Address, cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}},
	}, nil
}

func health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// Start serves in the background. It fails when the listener cannot be opened.
func (s *Server) Start() error {
	log.Info().Msgf("http server listening at %s", s.server.Addr())

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-time.After(startupWait):
		return nil
	}
}

// Stop drains in-flight requests.
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}

// Name returns the name of the server.
func (s *Server) Name() string {
	return serverName
}
