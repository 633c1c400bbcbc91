// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	// errNoTransportsConfigured is returned by [NewServer] when neither
	// SERVER_ADDRESS nor SERVER_GRPC_ADDRESS is set.
	errNoTransportsConfigured = errors.New("no transports configured: set an HTTP or gRPC address")

	errNothingToRun = errors.New("no servers to run")
)
