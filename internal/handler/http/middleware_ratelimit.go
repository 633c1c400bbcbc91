// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"math"
	"net"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-contacts/internal/logger"
	"github.com/MKhiriev/go-contacts/internal/metrics"
	"github.com/MKhiriev/go-contacts/internal/utils"
)

// withRateLimit admits requests to route according to the limiter quota.
// Authenticated callers are counted per user, anonymous ones per remote IP.
// Rejected requests get 429 with Retry-After in whole seconds. Limiter
// failures admit the request.
func (h *Handler) withRateLimit(route string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !h.limiter.Enabled() {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := logger.FromRequest(r)

			allowed, retryAfter, err := h.limiter.Allow(r.Context(), route, clientIdentity(r))
			if err != nil {
				log.Warn().Err(err).Str("route", route).Msg("rate limiter unavailable, request admitted")
			}
			if !allowed {
				metrics.RateLimitedTotal.WithLabelValues(route).Inc()
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
				utils.WriteDetail(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIdentity(r *http.Request) string {
	if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
		return "user:" + strconv.FormatInt(userID, 10)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}
