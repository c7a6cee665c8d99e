// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

// errNoHandlersAreCreated is returned by NewHandlers when no HTTP address is
// provided in the server configuration. The account API is served over HTTP
// only, so this is a fatal misconfiguration and the application fails at
// startup.
var errNoHandlersAreCreated = errors.New("no handlers are created")
