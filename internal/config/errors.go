package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidServerConfigs indicates that no transport can be started.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidStorageConfigs indicates inconsistent storage settings
	// (for example, an avatars bucket without an endpoint).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, missing token sign key).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidEnvConfigs wraps a variable that cannot be converted to its
	// field type.
	ErrInvalidEnvConfigs = errors.New("invalid env configuration")
	// ErrInvalidRateLimitConfigs indicates a negative quota or a quota
	// without a period.
	ErrInvalidRateLimitConfigs = errors.New("invalid rate limit configuration")
)
