package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-contacts/internal/app"
	"github.com/MKhiriev/go-contacts/internal/logger"
	"github.com/MKhiriev/go-contacts/internal/service"
	"github.com/MKhiriev/go-contacts/internal/store"
	"github.com/MKhiriev/go-contacts/internal/utils"
)

type errorMapping struct {
	target error
	status int

	// detail is the client-facing message. Empty means the error text.
	detail string
}

// errorMappings is checked in order; the first match wins.
var errorMappings = []errorMapping{
	{target: store.ErrContactNotFound, status: http.StatusNotFound, detail: app.MsgContactNotFound},
	{target: store.ErrDuplicateEmail, status: http.StatusConflict, detail: app.MsgEmailExists},
	{target: store.ErrUserAlreadyExists, status: http.StatusConflict, detail: app.MsgAccountExists},
	{target: store.ErrNoUserWasFound, status: http.StatusNotFound, detail: app.MsgUserNotFound},
	{target: store.ErrAvatarStorageDisabled, status: http.StatusServiceUnavailable, detail: app.MsgAvatarStorageDisabled},

	{target: service.ErrInvalidDataProvided, status: http.StatusUnprocessableEntity},
	{target: service.ErrInvalidDays, status: http.StatusUnprocessableEntity},
	{target: errInvalidJSON, status: http.StatusUnprocessableEntity},
	{target: errInvalidPathParam, status: http.StatusUnprocessableEntity},
	{target: errInvalidQueryParam, status: http.StatusUnprocessableEntity},
	{target: errMissingFile, status: http.StatusUnprocessableEntity},
	{target: errInvalidGzipBody, status: http.StatusBadRequest},

	{target: service.ErrInvalidEmail, status: http.StatusUnauthorized, detail: app.MsgInvalidEmail},
	{target: service.ErrEmailNotConfirmed, status: http.StatusUnauthorized, detail: app.MsgEmailNotConfirmed},
	{target: service.ErrWrongPassword, status: http.StatusUnauthorized, detail: app.MsgInvalidPassword},
	{target: service.ErrInvalidRefreshToken, status: http.StatusUnauthorized, detail: app.MsgInvalidRefresh},
	{target: service.ErrTokenIsExpiredOrInvalid, status: http.StatusUnauthorized, detail: app.MsgInvalidCredentials},
	{target: ErrEmptyAuthorizationHeader, status: http.StatusUnauthorized, detail: app.MsgNotAuthenticated},
	{target: ErrInvalidAuthorizationHeader, status: http.StatusUnauthorized, detail: app.MsgNotAuthenticated},
	{target: service.ErrVerificationError, status: http.StatusBadRequest, detail: app.MsgVerificationError},

	{target: store.ErrBuildingSQLQuery, status: http.StatusInternalServerError},
	{target: store.ErrExecutingQuery, status: http.StatusInternalServerError},
	{target: store.ErrBeginningTransaction, status: http.StatusInternalServerError},
	{target: store.ErrCommitingTransaction, status: http.StatusInternalServerError},
	{target: store.ErrScanningRow, status: http.StatusInternalServerError},
	{target: store.ErrScanningRows, status: http.StatusInternalServerError},
}

func statusFromError(err error) (int, string) {
	for _, m := range errorMappings {
		if !errors.Is(err, m.target) {
			continue
		}
		switch {
		case m.status >= http.StatusInternalServerError && m.detail == "":
			return m.status, http.StatusText(m.status)
		case m.detail == "":
			return m.status, err.Error()
		default:
			return m.status, m.detail
		}
	}

	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}

// writeError logs err and answers with {"detail": ...}. Server errors never
// leak their text.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)
	status, detail := statusFromError(err)

	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}

	utils.WriteDetail(w, detail, status)
}
