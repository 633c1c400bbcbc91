package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-contacts/internal/utils"
)

// maxAvatarSize bounds the multipart body of an avatar upload.
const maxAvatarSize = 5 << 20

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	user, _ := utils.GetUserFromContext(r.Context())
	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) updateAvatar(w http.ResponseWriter, r *http.Request) {
	user, _ := utils.GetUserFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", errMissingFile, err))
		return
	}
	defer file.Close()

	updated, err := h.services.UserService.UpdateAvatar(r.Context(), user, file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}
