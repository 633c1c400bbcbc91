// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

// Default values applied before any other source.
const (
	DefaultHTTPAddress          = "localhost:8000"
	DefaultRequestTimeout       = 30 * time.Second
	DefaultTokenIssuer          = "go-contacts"
	DefaultAccessTokenDuration  = 15 * time.Minute
	DefaultRefreshTokenDuration = 7 * 24 * time.Hour
	DefaultEmailTokenDuration   = 7 * 24 * time.Hour
	DefaultPublicURL            = "http://localhost:8000"
	DefaultAllowedOrigin        = "http://localhost:8000"
	DefaultLogLevel             = "debug"
	DefaultMailPort             = 465
	DefaultMailFromName         = "Contacts"
	DefaultRedisTimeout         = 5 * time.Second
	DefaultAvatarsRegion        = "us-east-1"
	DefaultRateLimitTimes       = 1
	DefaultRateLimitPeriod      = 10 * time.Second
	DefaultHealthCheckInterval  = 15 * time.Second
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:          DefaultTokenIssuer,
			AccessTokenDuration:  DefaultAccessTokenDuration,
			RefreshTokenDuration: DefaultRefreshTokenDuration,
			EmailTokenDuration:   DefaultEmailTokenDuration,
			PublicURL:            DefaultPublicURL,
			AllowedOrigins:       []string{DefaultAllowedOrigin},
			LogLevel:             DefaultLogLevel,
		},
		Storage: Storage{
			DB: DB{DSN: InMemoryDSN},
			Redis: Redis{
				Timeout: DefaultRedisTimeout,
			},
			Avatars: Avatars{
				Region: DefaultAvatarsRegion,
			},
		},
		Server: Server{
			HTTPAddress:    DefaultHTTPAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
		Mail: Mail{
			Port:     DefaultMailPort,
			FromName: DefaultMailFromName,
		},
		RateLimit: RateLimit{
			Times:  DefaultRateLimitTimes,
			Period: DefaultRateLimitPeriod,
		},
		Workers: Workers{
			HealthCheckInterval: DefaultHealthCheckInterval,
		},
	}
}
