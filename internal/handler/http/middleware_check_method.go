// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-contacts/internal/utils"
	"github.com/go-chi/chi/v5"
)

// CheckHTTPMethod returns the router's MethodNotAllowed handler.
//
// A path that exists but does not accept the requested method is answered
// with 404 and the usual {"detail": ...} body instead of chi's 405, so
// callers cannot probe which methods a contact route supports. Routes of
// mounted subrouters (/auth, /api/users, /contacts) are resolved with
// [chi.Mux.Match], which descends into them.
//
// Usage:
//
//	router := chi.NewRouter()
//	// ... register routes ...
//	router.MethodNotAllowed(CheckHTTPMethod(router))
func CheckHTTPMethod(router *chi.Mux) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if router.Match(chi.NewRouteContext(), r.Method, r.URL.Path) {
			router.ServeHTTP(w, r)
			return
		}

		utils.WriteDetail(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	}
}
