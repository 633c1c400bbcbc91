package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-contacts/internal/metrics"
	"github.com/MKhiriev/go-contacts/internal/service"
	"github.com/MKhiriev/go-contacts/models"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestWithMetrics_LabelsByRoutePattern(t *testing.T) {
	contacts := &fakeContactService{
		getFn: func(_ context.Context, contactID, _ int64) (models.Contact, error) {
			return models.Contact{ID: contactID}, nil
		},
	}
	h := newTestHandler(t, &service.Services{ContactService: contacts, AuthService: authService()})
	router := h.Init()

	counter := metrics.HTTPRequestsTotal.WithLabelValues("/contacts/{id}", http.MethodGet, "200")
	before := testutil.ToFloat64(counter)

	for _, path := range []string{"/contacts/1", "/contacts/2"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer "+testAccessToken)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestHandler(t, nil)
	router := h.Init()

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "contacts_http_requests_total")
}
