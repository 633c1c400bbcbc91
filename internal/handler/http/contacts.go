// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/MKhiriev/go-contacts/internal/utils"
	"github.com/MKhiriev/go-contacts/models"
	"github.com/go-chi/chi/v5"
)

const (
	defaultSkip  = 0
	defaultLimit = 100
)

func (h *Handler) createContact(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := utils.GetUserIDFromContext(r.Context())

	var create models.ContactCreate
	if err := json.NewDecoder(r.Body).Decode(&create); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", errInvalidJSON, err))
		return
	}

	contact, err := h.services.ContactService.CreateContact(r.Context(), create, ownerID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, contact, http.StatusCreated)
}

func (h *Handler) listContacts(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := utils.GetUserIDFromContext(r.Context())

	filter, err := paginationFromQuery(r.URL.Query(), defaultLimit)
	if err != nil {
		writeError(w, r, err)
		return
	}

	contacts, err := h.services.ContactService.ListContacts(r.Context(), ownerID, filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, contacts, http.StatusOK)
}

// searchContacts matches first_name, last_name and email exactly. A query
// parameter that is present but empty still filters on the empty string.
// Every match is returned unless skip or limit is given explicitly.
func (h *Handler) searchContacts(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := utils.GetUserIDFromContext(r.Context())
	query := r.URL.Query()

	filter, err := paginationFromQuery(query, 0)
	if err != nil {
		writeError(w, r, err)
		return
	}
	filter.FirstName = optionalParam(query, "first_name")
	filter.LastName = optionalParam(query, "last_name")
	filter.Email = optionalParam(query, "email")

	contacts, err := h.services.ContactService.SearchContacts(r.Context(), ownerID, filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, contacts, http.StatusOK)
}

func (h *Handler) upcomingBirthdays(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := utils.GetUserIDFromContext(r.Context())

	days, err := strconv.Atoi(chi.URLParam(r, "days"))
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: days: %w", errInvalidPathParam, err))
		return
	}

	contacts, err := h.services.ContactService.UpcomingBirthdays(r.Context(), ownerID, days)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, contacts, http.StatusOK)
}

func (h *Handler) getContact(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := utils.GetUserIDFromContext(r.Context())

	contactID, err := contactIDFromPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	contact, err := h.services.ContactService.GetContact(r.Context(), contactID, ownerID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, contact, http.StatusOK)
}

func (h *Handler) updateContact(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := utils.GetUserIDFromContext(r.Context())

	contactID, err := contactIDFromPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var update models.ContactUpdate
	if err = json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", errInvalidJSON, err))
		return
	}

	contact, err := h.services.ContactService.UpdateContact(r.Context(), contactID, update, ownerID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, contact, http.StatusOK)
}

func (h *Handler) deleteContact(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := utils.GetUserIDFromContext(r.Context())

	contactID, err := contactIDFromPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	contact, err := h.services.ContactService.DeleteContact(r.Context(), contactID, ownerID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, contact, http.StatusOK)
}

func contactIDFromPath(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id must be a positive integer", errInvalidPathParam)
	}

	return id, nil
}

// paginationFromQuery reads skip (default 0) and limit. A zero limit means
// no limit.
func paginationFromQuery(query url.Values, limit uint64) (models.ContactFilter, error) {
	filter := models.ContactFilter{Offset: defaultSkip, Limit: limit}

	if raw := query.Get("skip"); raw != "" {
		skip, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return models.ContactFilter{}, fmt.Errorf("%w: skip must be a non-negative integer", errInvalidQueryParam)
		}
		filter.Offset = skip
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return models.ContactFilter{}, fmt.Errorf("%w: limit must be a non-negative integer", errInvalidQueryParam)
		}
		filter.Limit = limit
	}

	return filter, nil
}

func optionalParam(query url.Values, name string) *string {
	if !query.Has(name) {
		return nil
	}
	v := query.Get(name)
	return &v
}
