// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

// errNoHandlersAreCreated is returned by NewHandlers when the backend has no
// listen address or no auth service to serve. This is treated as a fatal
// misconfiguration and causes the backend to fail at startup.
var errNoHandlersAreCreated = errors.New("no handlers are created")
