// Package grpc serves a super column backend over gRPC and provides the matching remote
// backend for clients. Messages are plain Go structs carried by a JSON codec.
package grpc

import (
	"errors"
	"fmt"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	grpc2 "google.golang.org/grpc"
	"google.golang.org/grpc/reflection"
	"net"
	"time"
)

//go:generate mockgen -destination=grpc_mock.go -package=grpc -source=grpc.go

type grpcServer interface {
	Serve(lis net.Listener) error
	GracefulStop()
}

// Server implements the app.Dependency interface for a gRPC server
type Server struct {
	address  string
	server   grpcServer
	port     int
	listener net.Listener
}

type Config struct {
	Address string
	Port    int
	Backend backend
	// Registerer receives request metrics. Optional.
	Registerer prometheus.Registerer
}

func (c *Config) validate() error {
	var errGrp []error
	if c.Address == "" {
		errGrp = append(errGrp, fmt.Errorf("address required"))
	}
	if c.Port == 0 {
		errGrp = append(errGrp, fmt.Errorf("port required"))
	}
	if c.Backend == nil {
		errGrp = append(errGrp, fmt.Errorf("backend required"))
	}

	return errors.Join(errGrp...)
}

// newGRPCServer builds a gRPC server exposing b.
func newGRPCServer(b backend, reg prometheus.Registerer) *grpc2.Server {
	srv := grpc2.NewServer(
		grpc2.ForceServerCodec(jsonCodec{}),
		grpc2.UnaryInterceptor(newMetrics(reg).unary),
	)
	srv.RegisterService(&serviceDesc, &store{backend: b})
	reflection.Register(srv)
	return srv
}

// NewServer creates a new gRPC server instance
func NewServer(cfg *Config) (*Server, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	lis, err := net.Listen("tcp", fmt.Sprintf("%s:%d", cfg.Address, cfg.Port))
	if err != nil {
		return nil, fmt.Errorf("failed to create listener on port %d: %w", cfg.Port, err)
	}

	return &Server{
		address:  cfg.Address,
		server:   newGRPCServer(cfg.Backend, cfg.Registerer),
		port:     cfg.Port,
		listener: lis,
	}, nil
}

func (s *Server) Start() error {
	log.Info().Msgf("gRPC server listening at %s:%d", s.address, s.port)

	errCh := make(chan error, 1)

	go func() {
		if err := s.server.Serve(s.listener); err != nil {
			errCh <- err
			log.Error().Err(err).Msg("gRPC server failed")
			return
		}
		errCh <- nil
	}()

	// Block briefly for error or nil return
	select {
	case err := <-errCh:
		return err
	case <-time.After(500 * time.Millisecond):
		return nil
	}
}

func (s *Server) Stop() error {
	log.Info().Msg("Stopping gRPC server")
	s.server.GracefulStop()
	return nil
}

func (s *Server) Name() string {
	return "gRPC Server"
}
