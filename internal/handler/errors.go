// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

// errNoTransports is returned by [NewHandlers] when the contacts API has
// neither SERVER_ADDRESS nor SERVER_GRPC_ADDRESS to listen on.
var errNoTransports = errors.New("no transport handlers: HTTP and gRPC addresses are both empty")
