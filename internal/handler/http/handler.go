package http

import (
	"github.com/MKhiriev/go-contacts/internal/config"
	"github.com/MKhiriev/go-contacts/internal/logger"
	"github.com/MKhiriev/go-contacts/internal/ratelimit"
	"github.com/MKhiriev/go-contacts/internal/service"
)

type Handler struct {
	services *service.Services
	limiter  *ratelimit.Limiter

	allowedOrigins []string

	// healthy reports backend health for /healthz. Nil means always healthy.
	healthy func() bool

	logger *logger.Logger
}

func NewHandler(services *service.Services, limiter *ratelimit.Limiter, cfg config.App, healthy func() bool, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		limiter:        limiter,
		allowedOrigins: cfg.AllowedOrigins,
		healthy:        healthy,
		logger:         logger,
	}
}
