package http

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"

	"github.com/MKhiriev/go-contacts/internal/app"
	"github.com/MKhiriev/go-contacts/internal/logger"
	"github.com/MKhiriev/go-contacts/internal/utils"
	"github.com/MKhiriev/go-contacts/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var signup models.UserSignup
	if err := json.NewDecoder(r.Body).Decode(&signup); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", errInvalidJSON, err))
		return
	}

	user, err := h.services.AuthService.Signup(r.Context(), signup)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Int64("id", user.ID).Msg("user signed up")
	utils.WriteJSON(w, models.UserResponse{User: user, Detail: app.MsgUserCreated}, http.StatusCreated)
}

// login accepts the OAuth2 password form (username, password) as well as a
// JSON body with the same fields. username carries the e-mail address.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	credentials, err := loginFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	pair, err := h.services.AuthService.Login(r.Context(), credentials)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, pair, http.StatusOK)
}

func loginFromRequest(r *http.Request) (models.UserLogin, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var login models.UserLogin
		if err := json.NewDecoder(r.Body).Decode(&login); err != nil {
			return models.UserLogin{}, fmt.Errorf("%w: %w", errInvalidJSON, err)
		}
		return login, nil
	}

	if err := r.ParseForm(); err != nil {
		return models.UserLogin{}, fmt.Errorf("%w: %w", errInvalidQueryParam, err)
	}

	return models.UserLogin{
		Username: r.PostForm.Get("username"),
		Password: r.PostForm.Get("password"),
	}, nil
}

// refreshToken expects the refresh token as the bearer credential.
func (h *Handler) refreshToken(w http.ResponseWriter, r *http.Request) {
	token, err := getTokenFromAuthHeader(r.Header.Get("Authorization"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	pair, err := h.services.AuthService.Refresh(r.Context(), token)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, pair, http.StatusOK)
}

func (h *Handler) confirmedEmail(w http.ResponseWriter, r *http.Request) {
	alreadyConfirmed, err := h.services.AuthService.ConfirmEmail(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	msg := app.MsgEmailConfirmed
	if alreadyConfirmed {
		msg = app.MsgAlreadyConfirmed
	}
	utils.WriteJSON(w, models.Message{Message: msg}, http.StatusOK)
}

func (h *Handler) requestEmail(w http.ResponseWriter, r *http.Request) {
	var body models.RequestEmail
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", errInvalidJSON, err))
		return
	}

	alreadyConfirmed, err := h.services.AuthService.RequestEmail(r.Context(), body.Email)
	if err != nil {
		writeError(w, r, err)
		return
	}

	msg := app.MsgCheckEmail
	if alreadyConfirmed {
		msg = app.MsgAlreadyConfirmed
	}
	utils.WriteJSON(w, models.Message{Message: msg}, http.StatusOK)
}
