// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package notifier renders and delivers account emails.
//
// The account service hands rendered emails to a [Dispatcher], which queues
// them and delivers them in the background through a [Sender]: SMTP, a
// RabbitMQ exchange read by a separate mail service, or the application log.
// Delivery never blocks a request and its failures are only logged.
package notifier
