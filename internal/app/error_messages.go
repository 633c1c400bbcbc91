// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// contacts HTTP handlers and middleware.
//
// All Msg* constants are human-readable message strings that are written into
// the "detail" or "message" field of HTTP response bodies. Clients match on
// some of them, so the wording is part of the API.
package app

// Error details.
const (
	// MsgContactNotFound is returned when a contact does not exist or belongs
	// to another user.
	MsgContactNotFound = "Contact not found"

	// MsgEmailExists is returned when a contact e-mail is already used by any
	// contact.
	MsgEmailExists = "Email is exists"

	// MsgAccountExists is returned when signing up with a taken username or
	// e-mail address.
	MsgAccountExists = "Account already exists"

	MsgUserNotFound = "User not found"

	// MsgAvatarStorageDisabled is returned by avatar uploads when no bucket
	// is configured.
	MsgAvatarStorageDisabled = "Avatar storage is not configured"

	MsgInvalidEmail       = "Invalid email"
	MsgEmailNotConfirmed  = "Email not confirmed"
	MsgInvalidPassword    = "Invalid password"
	MsgInvalidRefresh     = "Invalid refresh token"
	MsgNotAuthenticated   = "Not authenticated"
	MsgVerificationError  = "Verification error"
	MsgInvalidCredentials = "Could not validate credentials"
)

// Informational messages.
const (
	MsgServiceName      = "Contacts"
	MsgUnavailable      = "unavailable"
	MsgUserCreated      = "User successfully created"
	MsgEmailConfirmed   = "Email confirmed"
	MsgAlreadyConfirmed = "Your email is already confirmed"
	MsgCheckEmail       = "Check your email for confirmation."
)
