// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/MKhiriev/go-accounts/internal/config"
	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/internal/utils"
	"github.com/MKhiriev/go-accounts/models"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type publishedMessage struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type fakeChannel struct {
	declared   []string
	declareErr error
	publishErr error
	published  []publishedMessage
	closed     bool
}

func (c *fakeChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	c.declared = append(c.declared, name+":"+kind)
	if !durable || autoDelete || internal {
		return errors.New("unexpected exchange flags")
	}
	return c.declareErr
}

func (c *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if c.publishErr != nil {
		return c.publishErr
	}
	c.published = append(c.published, publishedMessage{exchange: exchange, key: key, msg: msg})
	return nil
}

func (c *fakeChannel) Close() error {
	c.closed = true
	return nil
}

var testAMQPConfig = config.AMQP{Exchange: "accounts.events", RoutingKey: "accounts.email.requested"}

func TestAMQPSender_Send(t *testing.T) {
	ch := &fakeChannel{}
	sender, err := newAMQPSender(ch, testAMQPConfig, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, []string{"accounts.events:topic"}, ch.declared)

	ctx := utils.WithTraceID(context.Background(), "0190f0c2-trace")
	email := models.Email{To: "jane@example.com", Subject: "Password reset", HTMLBody: "<p>hi</p>"}
	require.NoError(t, sender.Send(ctx, email))

	require.Len(t, ch.published, 1)
	p := ch.published[0]
	assert.Equal(t, "accounts.events", p.exchange)
	assert.Equal(t, "accounts.email.requested", p.key)
	assert.Equal(t, "application/json", p.msg.ContentType)
	assert.Equal(t, amqp.Persistent, p.msg.DeliveryMode)
	assert.Equal(t, "0190f0c2-trace", p.msg.Headers["X-Trace-ID"])

	var body emailMessage
	require.NoError(t, json.Unmarshal(p.msg.Body, &body))
	assert.Equal(t, "email", body.Type)
	assert.Equal(t, email, body.Email)
	assert.False(t, body.QueuedAt.IsZero())
}

func TestAMQPSender_Send_NoTraceID(t *testing.T) {
	ch := &fakeChannel{}
	sender, err := newAMQPSender(ch, testAMQPConfig, logger.Nop())
	require.NoError(t, err)

	require.NoError(t, sender.Send(context.Background(), models.Email{To: "jane@example.com"}))
	require.Len(t, ch.published, 1)
	assert.NotContains(t, ch.published[0].msg.Headers, "X-Trace-ID")
}

func TestAMQPSender_Send_PublishError(t *testing.T) {
	ch := &fakeChannel{publishErr: amqp.ErrClosed}
	sender, err := newAMQPSender(ch, testAMQPConfig, logger.Nop())
	require.NoError(t, err)

	err = sender.Send(context.Background(), models.Email{To: "jane@example.com"})
	assert.ErrorIs(t, err, amqp.ErrClosed)
}

func TestNewAMQPSender_DeclareError(t *testing.T) {
	ch := &fakeChannel{declareErr: errors.New("access refused")}

	_, err := newAMQPSender(ch, testAMQPConfig, logger.Nop())
	require.Error(t, err)
	assert.True(t, ch.closed)
}

func TestAMQPSender_Close(t *testing.T) {
	ch := &fakeChannel{}
	sender, err := newAMQPSender(ch, testAMQPConfig, logger.Nop())
	require.NoError(t, err)

	assert.NoError(t, sender.Close())
	assert.True(t, ch.closed)
}

func TestNewAMQPSender_RequiresURL(t *testing.T) {
	_, err := NewAMQPSender(config.Notifier{}, logger.Nop())
	assert.Error(t, err)
}
