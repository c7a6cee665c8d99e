// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package grpc serves the grpc.health.v1 protocol for the account service.
// The reported status tracks database reachability.
package grpc
