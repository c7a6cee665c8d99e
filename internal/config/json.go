// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the shape of the JSON
// configuration file.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey  string   `json:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer"`
		TokenDuration Duration `json:"token_duration"`
		BcryptCost    int      `json:"bcrypt_cost"`
		LogLevel      string   `json:"log_level"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			Driver string `json:"driver"`
			DSN    string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress         string   `json:"http_address"`
		GRPCAddress         string   `json:"grpc_address"`
		RequestTimeout      Duration `json:"request_timeout"`
		ShutdownTimeout     Duration `json:"shutdown_timeout"`
		HealthCheckInterval Duration `json:"health_check_interval"`
	} `json:"server,omitempty"`

	Notifier struct {
		Driver      string   `json:"driver"`
		Sender      string   `json:"sender"`
		Workers     int      `json:"workers"`
		QueueSize   int      `json:"queue_size"`
		SendTimeout Duration `json:"send_timeout"`
		SMTP        struct {
			Host     string `json:"host"`
			Port     int    `json:"port"`
			User     string `json:"user"`
			Password string `json:"password"`
		} `json:"smtp,omitempty"`
		AMQP struct {
			URL        string `json:"url"`
			Exchange   string `json:"exchange"`
			RoutingKey string `json:"routing_key"`
		} `json:"amqp,omitempty"`
	} `json:"notifier,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:  jsonCfg.App.TokenSignKey,
			TokenIssuer:   jsonCfg.App.TokenIssuer,
			TokenDuration: time.Duration(jsonCfg.App.TokenDuration),
			BcryptCost:    jsonCfg.App.BcryptCost,
			LogLevel:      jsonCfg.App.LogLevel,
		},
		Storage: Storage{
			DB: DB{
				Driver: jsonCfg.Storage.DB.Driver,
				DSN:    jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:         jsonCfg.Server.HTTPAddress,
			GRPCAddress:         jsonCfg.Server.GRPCAddress,
			RequestTimeout:      time.Duration(jsonCfg.Server.RequestTimeout),
			ShutdownTimeout:     time.Duration(jsonCfg.Server.ShutdownTimeout),
			HealthCheckInterval: time.Duration(jsonCfg.Server.HealthCheckInterval),
		},
		Notifier: Notifier{
			Driver:      jsonCfg.Notifier.Driver,
			Sender:      jsonCfg.Notifier.Sender,
			Workers:     jsonCfg.Notifier.Workers,
			QueueSize:   jsonCfg.Notifier.QueueSize,
			SendTimeout: time.Duration(jsonCfg.Notifier.SendTimeout),
			SMTP: SMTP{
				Host:     jsonCfg.Notifier.SMTP.Host,
				Port:     jsonCfg.Notifier.SMTP.Port,
				User:     jsonCfg.Notifier.SMTP.User,
				Password: jsonCfg.Notifier.SMTP.Password,
			},
			AMQP: AMQP{
				URL:        jsonCfg.Notifier.AMQP.URL,
				Exchange:   jsonCfg.Notifier.AMQP.Exchange,
				RoutingKey: jsonCfg.Notifier.AMQP.RoutingKey,
			},
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration: %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
