// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notifier

import (
	"testing"

	"github.com/MKhiriev/go-accounts/internal/config"
	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSender(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Notifier
		want    any
		wantErr error
	}{
		{name: "default is log", cfg: config.Notifier{}, want: &LogSender{}},
		{name: "log", cfg: config.Notifier{Driver: config.NotifierDriverLog}, want: &LogSender{}},
		{
			name: "smtp",
			cfg:  config.Notifier{Driver: config.NotifierDriverSMTP, SMTP: config.SMTP{Host: "mail.example.com", Port: 25}},
			want: &SMTPSender{},
		},
		{name: "unknown driver", cfg: config.Notifier{Driver: "pigeon"}, wantErr: ErrUnknownDriver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender, err := NewSender(tt.cfg, logger.Nop())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, sender)
				return
			}

			require.NoError(t, err)
			assert.IsType(t, tt.want, sender)
		})
	}
}

func TestNewSender_MisconfiguredDriverReturnsNil(t *testing.T) {
	for _, driver := range []string{config.NotifierDriverSMTP, config.NotifierDriverAMQP} {
		sender, err := NewSender(config.Notifier{Driver: driver}, logger.Nop())
		assert.Error(t, err, driver)
		assert.Nil(t, sender, driver)
	}
}
