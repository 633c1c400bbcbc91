// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides clients for third-party HTTP services used by the
// contacts backend.
//
// The package currently ships a Gravatar client ([NewGravatar]) that resolves
// a default avatar for new accounts. Error values defined in errors.go are
// mapped from HTTP status codes by mapHTTPError so that callers can use
// [errors.Is] (e.g. [ErrNotFound] for 404).
package adapter

import (
	"context"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// AvatarResolver finds a public avatar image for an e-mail address.
type AvatarResolver interface {
	// AvatarURL returns the avatar URL for email, or an empty string when
	// none exists or the provider cannot be reached. It never fails sign-up.
	AvatarURL(ctx context.Context, email string) string
}
