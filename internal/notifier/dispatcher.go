// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notifier

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/go-accounts/internal/config"
	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/models"
)

type job struct {
	// ctx keeps the values of the request (logger, trace id) but not its
	// cancellation: the request is long gone when the email is sent.
	ctx   context.Context
	email models.Email
}

// Dispatcher is a fire-and-forget [Notifier] backed by a bounded queue and a
// fixed pool of goroutines. It implements workers.Worker.
type Dispatcher struct {
	sender      Sender
	queue       chan job
	workers     int
	sendTimeout time.Duration
	logger      *logger.Logger

	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup
	runOnce sync.Once
}

func NewDispatcher(sender Sender, cfg config.Notifier, logger *logger.Logger) *Dispatcher {
	workers := max(cfg.Workers, 1)
	queueSize := max(cfg.QueueSize, 1)

	return &Dispatcher{
		sender:      sender,
		queue:       make(chan job, queueSize),
		workers:     workers,
		sendTimeout: cfg.SendTimeout,
		logger:      logger,
	}
}

// Notify enqueues email and returns at once. A full queue drops the email
// and returns ErrQueueFull.
func (d *Dispatcher) Notify(ctx context.Context, email models.Email) error {
	log := logger.FromContext(ctx)

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		return ErrDispatcherStopped
	}

	select {
	case d.queue <- job{ctx: context.WithoutCancel(ctx), email: email}:
		return nil
	default:
		log.Warn().Str("func", "*Dispatcher.Notify").Str("to", email.To).Str("subject", email.Subject).Msg("notification queue is full, email dropped")
		return ErrQueueFull
	}
}

// Run starts the delivery goroutines. Calling Run more than once has no effect.
func (d *Dispatcher) Run() {
	d.runOnce.Do(func() {
		d.logger.Info().Int("workers", d.workers).Int("queue_size", cap(d.queue)).Msg("starting notification dispatcher")
		for range d.workers {
			d.wg.Add(1)
			go d.loop()
		}
	})
}

// Stop rejects new emails, delivers everything already queued and waits for
// the delivery goroutines to exit or for ctx to expire. The sender is closed
// in both cases; deliveries still running after ctx expired fail and are
// logged.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return nil
	}
	d.stopped = true
	close(d.queue)
	d.mu.Unlock()

	// without Run nobody would drain the queue
	d.Run()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.logger.Info().Msg("notification dispatcher stopped")
		return d.sender.Close()
	case <-ctx.Done():
		d.logger.Warn().Int("pending", len(d.queue)).Msg("notification dispatcher stopped before the queue was drained")
		return errors.Join(ctx.Err(), d.sender.Close())
	}
}

func (d *Dispatcher) loop() {
	defer d.wg.Done()

	for j := range d.queue {
		d.deliver(j)
	}
}

func (d *Dispatcher) deliver(j job) {
	log := logger.FromContext(j.ctx)

	ctx := j.ctx
	if d.sendTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.sendTimeout)
		defer cancel()
	}

	defer func() {
		if p := recover(); p != nil {
			log.Error().Str("func", "*Dispatcher.deliver").Any("panic", p).Str("to", j.email.To).Msg("email sender panicked")
		}
	}()

	if err := d.sender.Send(ctx, j.email); err != nil {
		log.Err(err).Str("func", "*Dispatcher.deliver").Str("to", j.email.To).Str("subject", j.email.Subject).Msg("email delivery failed")
		return
	}

	log.Debug().Str("to", j.email.To).Str("subject", j.email.Subject).Msg("email delivered")
}
