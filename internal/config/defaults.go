// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

// Default values applied when no source sets a field.
const (
	DefaultTokenIssuer         = "go-accounts"
	DefaultTokenDuration       = 24 * time.Hour
	DefaultBcryptCost          = 12
	DefaultLogLevel            = "info"
	DefaultHTTPAddress         = "localhost:8080"
	DefaultRequestTimeout      = 30 * time.Second
	DefaultShutdownTimeout     = 15 * time.Second
	DefaultHealthCheckInterval = 10 * time.Second
	DefaultDBDriver            = DriverPostgres

	DefaultNotifierDriver      = NotifierDriverLog
	DefaultNotifierSender      = "no-reply@localhost"
	DefaultNotifierWorkers     = 2
	DefaultNotifierQueueSize   = 100
	DefaultNotifierSendTimeout = 10 * time.Second
	DefaultAMQPExchange        = "accounts.events"
	DefaultAMQPRoutingKey      = "accounts.email.requested"
)

// Supported storage drivers.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"
)

// Supported notifier drivers.
const (
	NotifierDriverLog  = "log"
	NotifierDriverSMTP = "smtp"
	NotifierDriverAMQP = "amqp"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   DefaultTokenIssuer,
			TokenDuration: DefaultTokenDuration,
			BcryptCost:    DefaultBcryptCost,
			LogLevel:      DefaultLogLevel,
		},
		Storage: Storage{
			DB: DB{Driver: DefaultDBDriver},
		},
		Server: Server{
			HTTPAddress:         DefaultHTTPAddress,
			RequestTimeout:      DefaultRequestTimeout,
			ShutdownTimeout:     DefaultShutdownTimeout,
			HealthCheckInterval: DefaultHealthCheckInterval,
		},
		Notifier: Notifier{
			Driver:      DefaultNotifierDriver,
			Sender:      DefaultNotifierSender,
			Workers:     DefaultNotifierWorkers,
			QueueSize:   DefaultNotifierQueueSize,
			SendTimeout: DefaultNotifierSendTimeout,
			AMQP: AMQP{
				Exchange:   DefaultAMQPExchange,
				RoutingKey: DefaultAMQPRoutingKey,
			},
		},
	}
}
