// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or an error wrapping one of the
// ErrInvalid* sentinels otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Server.HTTPAddress == "" && cfg.Server.GRPCAddress == "" {
		return fmt.Errorf("%w: neither HTTP nor gRPC address is set", ErrInvalidServerConfigs)
	}

	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: token sign key is empty", ErrInvalidAppConfigs)
	}
	if cfg.App.AccessTokenDuration <= 0 || cfg.App.RefreshTokenDuration <= 0 || cfg.App.EmailTokenDuration <= 0 {
		return fmt.Errorf("%w: token durations must be positive", ErrInvalidAppConfigs)
	}

	if cfg.RateLimit.Times < 0 || (cfg.RateLimit.Times > 0 && cfg.RateLimit.Period <= 0) {
		return fmt.Errorf("%w: times=%d period=%s", ErrInvalidRateLimitConfigs, cfg.RateLimit.Times, cfg.RateLimit.Period)
	}

	if cfg.Storage.Avatars.Bucket != "" && cfg.Storage.Avatars.Endpoint == "" {
		return fmt.Errorf("%w: avatars bucket requires an endpoint", ErrInvalidStorageConfigs)
	}

	return nil
}
