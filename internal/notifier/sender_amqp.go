// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-accounts/internal/config"
	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/internal/utils"
	"github.com/MKhiriev/go-accounts/models"
	amqp "github.com/rabbitmq/amqp091-go"
)

// amqpChannel is the part of *amqp.Channel used by AMQPSender.
type amqpChannel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// emailMessage is the JSON body published for every email. A mail worker
// consuming the exchange performs the actual delivery.
type emailMessage struct {
	Type     string       `json:"type"`
	Email    models.Email `json:"email"`
	QueuedAt time.Time    `json:"queued_at"`
}

// AMQPSender publishes emails to a RabbitMQ topic exchange.
type AMQPSender struct {
	conn       *amqp.Connection
	ch         amqpChannel
	exchange   string
	routingKey string
	logger     *logger.Logger

	mu sync.Mutex
}

// NewAMQPSender dials the broker and declares the durable topic exchange
// emails are published to.
func NewAMQPSender(cfg config.Notifier, logger *logger.Logger) (*AMQPSender, error) {
	if cfg.AMQP.URL == "" {
		return nil, errors.New("amqp url is not set")
	}

	conn, err := amqp.DialConfig(cfg.AMQP.URL, amqp.Config{
		Locale: "en_US",
		Dial:   amqp.DefaultDial(10 * time.Second),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open RabbitMQ channel: %w", err)
	}

	s, err := newAMQPSender(ch, cfg.AMQP, logger)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	s.conn = conn

	return s, nil
}

func newAMQPSender(ch amqpChannel, cfg config.AMQP, logger *logger.Logger) (*AMQPSender, error) {
	if err := ch.ExchangeDeclare(cfg.Exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("failed to declare exchange %q: %w", cfg.Exchange, err)
	}

	return &AMQPSender{
		ch:         ch,
		exchange:   cfg.Exchange,
		routingKey: cfg.RoutingKey,
		logger:     logger,
	}, nil
}

func (s *AMQPSender) Send(ctx context.Context, email models.Email) error {
	body, err := json.Marshal(emailMessage{
		Type:     "email",
		Email:    email,
		QueuedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("error marshaling email message: %w", err)
	}

	headers := amqp.Table{}
	if traceID := utils.GetTraceIDFromContext(ctx); traceID != "" {
		headers["X-Trace-ID"] = traceID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.ch.PublishWithContext(ctx, s.exchange, s.routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Headers:      headers,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("error publishing email to %q: %w", s.exchange, err)
	}

	return nil
}

// Close closes the channel and the connection.
func (s *AMQPSender) Close() error {
	err := s.ch.Close()
	if s.conn != nil {
		err = errors.Join(err, s.conn.Close())
	}
	return err
}
