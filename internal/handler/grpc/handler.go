// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package grpc

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-accounts/internal/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the name under which the account service reports its
// health. The empty name reports the health of the whole server.
const ServiceName = "accounts.v1.AccountService"

// DefaultCheckInterval is used when NewHandler receives a non-positive
// interval.
const DefaultCheckInterval = 10 * time.Second

const pingTimeout = 2 * time.Second

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler is the root gRPC transport handler.
//
// It exposes the standard grpc.health.v1 service. The serving status follows
// the database: a background loop pings it every interval and flips both
// the server-wide and the per-service status accordingly. Handler satisfies
// workers.Worker, so the loop is started and stopped with the other
// background workers.
type Handler struct {
	health   *health.Server
	pinger   Pinger
	interval time.Duration

	// done is closed by Stop to end the check loop.
	done     chan struct{}
	wg       sync.WaitGroup
	runOnce  sync.Once
	stopOnce sync.Once

	logger *logger.Logger
}

// NewHandler constructs a [Handler] that starts in NOT_SERVING state until
// the first successful database ping.
func NewHandler(pinger Pinger, interval time.Duration, logger *logger.Logger) *Handler {
	if interval <= 0 {
		interval = DefaultCheckInterval
	}

	h := &Handler{
		health:   health.NewServer(),
		pinger:   pinger,
		interval: interval,
		done:     make(chan struct{}),
		logger:   logger,
	}
	h.setStatus(healthpb.HealthCheckResponse_NOT_SERVING)

	logger.Debug().Msg("gRPC handler created")
	return h
}

// Register attaches the health service to srv.
func (h *Handler) Register(srv *grpc.Server) {
	healthpb.RegisterHealthServer(srv, h.health)
}

// Check pings the database once and updates the serving status.
func (h *Handler) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := h.pinger.Ping(ctx); err != nil {
		h.logger.Warn().Err(err).Msg("database ping failed, reporting NOT_SERVING")
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}

	h.setStatus(status)
	return status
}

// Run performs a first check synchronously and then keeps checking in the
// background until Stop is called.
func (h *Handler) Run() {
	h.runOnce.Do(func() {
		h.Check(context.Background())

		h.wg.Add(1)
		go h.loop()
	})
}

// Stop ends the check loop and switches every status to NOT_SERVING so that
// load balancers drain the instance before the listener closes.
func (h *Handler) Stop(ctx context.Context) error {
	h.stopOnce.Do(func() {
		close(h.done)
		h.health.Shutdown()
	})

	finished := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *Handler) loop() {
	defer h.wg.Done()

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-h.done:
			return
		case <-ticker.C:
			h.Check(context.Background())
		}
	}
}

func (h *Handler) setStatus(status healthpb.HealthCheckResponse_ServingStatus) {
	h.health.SetServingStatus("", status)
	h.health.SetServingStatus(ServiceName, status)
}
