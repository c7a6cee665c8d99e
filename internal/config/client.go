// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"flag"
	"fmt"
	"time"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
)

const (
	DefaultClientAddress        = "http://localhost:8080"
	DefaultClientRequestTimeout = 15 * time.Second
	DefaultClientLogLevel       = "warn"
)

// Client holds the settings of the command-line client.
type Client struct {
	// HTTPAddress is the base URL of the account server.
	// Env: ACCOUNTS_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds every request to the server.
	// Env: ACCOUNTS_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// Token is a bearer token from an earlier login.
	// Env: ACCOUNTS_TOKEN
	Token string `env:"TOKEN"`

	// LogLevel is the zerolog level of client diagnostics.
	// Env: ACCOUNTS_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// GetClientConfig loads the client configuration from ACCOUNTS_* environment
// variables, then from the global flags in args, then from defaults. The
// first non-zero value wins, as in [GetStructuredConfig].
//
// The arguments left after the global flags (the command and its operands)
// are returned as rest.
func GetClientConfig(args []string) (cfg *Client, rest []string, err error) {
	envCfg := &Client{}
	if err := env.ParseWithOptions(envCfg, env.Options{Prefix: "ACCOUNTS_"}); err != nil {
		return nil, nil, fmt.Errorf("error getting env configs: %w", err)
	}

	flagsCfg, rest, err := parseClientFlags(args)
	if err != nil {
		return nil, nil, err
	}

	cfg = new(Client)
	for _, src := range []*Client{envCfg, flagsCfg, defaultClientConfig()} {
		if err := mergo.Merge(cfg, src); err != nil {
			return nil, nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	if cfg.HTTPAddress == "" {
		return nil, nil, ErrInvalidClientConfigs
	}

	return cfg, rest, nil
}

func parseClientFlags(args []string) (*Client, []string, error) {
	fs := flag.NewFlagSet("accounts-client", flag.ContinueOnError)

	cfg := &Client{}
	fs.StringVar(&cfg.HTTPAddress, "a", "", "Server base URL (e.g. http://localhost:8080)")
	fs.StringVar(&cfg.Token, "token", "", "Bearer token")
	fs.DurationVar(&cfg.RequestTimeout, "timeout", 0, "Request timeout (e.g., 15s)")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return cfg, fs.Args(), nil
}

func defaultClientConfig() *Client {
	return &Client{
		HTTPAddress:    DefaultClientAddress,
		RequestTimeout: DefaultClientRequestTimeout,
		LogLevel:       DefaultClientLogLevel,
	}
}
