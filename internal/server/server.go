// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/go-accounts/internal/config"
	"github.com/MKhiriev/go-accounts/internal/handler"
	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/internal/workers"
)

type server struct {
	// transports are launched in order and shut down in reverse order.
	transports []transport

	// background is stopped after every transport so that work enqueued by
	// the last requests is still processed.
	background *workers.Workers

	shutdownTimeout time.Duration

	logger *logger.Logger
}

// NewServer binds a listener for every configured transport. background may
// be nil.
func NewServer(handlers *handler.Handlers, background *workers.Workers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	servers := &server{
		background:      background,
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          logger,
	}
	if servers.background == nil {
		servers.background = workers.NewWorkers()
	}
	if servers.shutdownTimeout <= 0 {
		servers.shutdownTimeout = config.DefaultShutdownTimeout
	}

	if cfg.HTTPAddress != "" && handlers.HTTP != nil {
		httpSrv, err := newHTTPServer(handlers.HTTP.Init(), cfg, logger)
		if err != nil {
			return nil, err
		}
		servers.transports = append(servers.transports, httpSrv)
	}
	if cfg.GRPCAddress != "" && handlers.GRPC != nil {
		grpcSrv, err := newGRPCServer(handlers.GRPC, cfg, logger)
		if err != nil {
			servers.closeListeners()
			return nil, err
		}
		servers.transports = append(servers.transports, grpcSrv)
	}

	if len(servers.transports) == 0 {
		return nil, errNoServersAreCreated
	}

	return servers, nil
}

func (s *server) RunServer() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	return s.Run(ctx)
}

func (s *server) Run(ctx context.Context) error {
	s.background.Run()

	errCh := make(chan error, len(s.transports))
	for _, t := range s.transports {
		go func() {
			if err := t.Serve(); err != nil {
				errCh <- fmt.Errorf("%s server: %w", t.Name(), err)
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		s.logger.Info().Msg("stop signal received, shutting down")
	case runErr = <-errCh:
		s.logger.Err(runErr).Msg("server failed, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.shutdown(shutdownCtx); err != nil {
		return errors.Join(runErr, err)
	}

	s.logger.Info().Msg("server Shutdown gracefully")
	return runErr
}

func (s *server) shutdown(ctx context.Context) error {
	var errs []error
	for i := len(s.transports) - 1; i >= 0; i-- {
		if err := s.transports[i].Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	if err := s.background.Stop(ctx); err != nil {
		errs = append(errs, fmt.Errorf("error stopping background workers: %w", err))
	}

	return errors.Join(errs...)
}

// closeListeners releases listeners bound before a later transport failed
// to start.
func (s *server) closeListeners() {
	for _, t := range s.transports {
		switch srv := t.(type) {
		case *httpServer:
			_ = srv.listener.Close()
		case *grpcServer:
			_ = srv.gRPCNetListener.Close()
		}
	}
}
