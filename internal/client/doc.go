// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command-line client of the account service.
//
// Every command maps to one server endpoint and prints the server's answer
// as indented JSON. Commands that need a password read it from the
// -password flag or, when the flag is omitted, from the first line of stdin.
package client
