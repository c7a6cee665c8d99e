// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetClientConfig_Defaults(t *testing.T) {
	cfg, rest, err := GetClientConfig([]string{"me"})

	require.NoError(t, err)
	assert.Equal(t, DefaultClientAddress, cfg.HTTPAddress)
	assert.Equal(t, DefaultClientRequestTimeout, cfg.RequestTimeout)
	assert.Equal(t, DefaultClientLogLevel, cfg.LogLevel)
	assert.Empty(t, cfg.Token)
	assert.Equal(t, []string{"me"}, rest)
}

func TestGetClientConfig_FlagsStopAtCommand(t *testing.T) {
	cfg, rest, err := GetClientConfig([]string{"-a", "accounts.local:9000", "-timeout", "3s", "get", "-1"})

	require.NoError(t, err)
	assert.Equal(t, "accounts.local:9000", cfg.HTTPAddress)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"get", "-1"}, rest)
}

func TestGetClientConfig_EnvWinsOverFlags(t *testing.T) {
	t.Setenv("ACCOUNTS_TOKEN", "from-env")
	t.Setenv("ACCOUNTS_ADDRESS", "http://env:8080")

	cfg, _, err := GetClientConfig([]string{"-token", "from-flag", "-a", "http://flag:8080"})

	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Token)
	assert.Equal(t, "http://env:8080", cfg.HTTPAddress)
}

func TestGetClientConfig_BadFlag(t *testing.T) {
	_, _, err := GetClientConfig([]string{"-timeout", "soon"})
	require.Error(t, err)
}

func TestGetClientConfig_BadEnv(t *testing.T) {
	t.Setenv("ACCOUNTS_REQUEST_TIMEOUT", "soon")

	_, _, err := GetClientConfig(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error getting env configs")
}
