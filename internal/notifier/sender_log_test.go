// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notifier

import (
	"bytes"
	"context"
	"testing"

	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/internal/utils"
	"github.com/MKhiriev/go-accounts/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogSender_Send(t *testing.T) {
	email := models.Email{To: "jane@example.com", Subject: "Account verification", HTMLBody: "<a>secret-code</a>"}

	t.Run("info level hides body", func(t *testing.T) {
		var buf bytes.Buffer
		sender := NewLogSender(&logger.Logger{Logger: zerolog.New(&buf).Level(zerolog.InfoLevel)})

		require.NoError(t, sender.Send(utils.WithTraceID(context.Background(), "t-1"), email))

		out := buf.String()
		assert.Contains(t, out, `"to":"jane@example.com"`)
		assert.Contains(t, out, `"subject":"Account verification"`)
		assert.Contains(t, out, `"trace_id":"t-1"`)
		assert.NotContains(t, out, "secret-code")
	})

	t.Run("debug level writes body", func(t *testing.T) {
		var buf bytes.Buffer
		sender := NewLogSender(&logger.Logger{Logger: zerolog.New(&buf).Level(zerolog.DebugLevel)})

		require.NoError(t, sender.Send(context.Background(), email))
		assert.Contains(t, buf.String(), "secret-code")
	})

	assert.NoError(t, NewLogSender(logger.Nop()).Close())
}
