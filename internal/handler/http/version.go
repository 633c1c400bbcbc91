package http

import (
	"net/http"

	"github.com/MKhiriev/go-contacts/internal/app"
	"github.com/MKhiriev/go-contacts/internal/utils"
	"github.com/MKhiriev/go-contacts/models"
)

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.AppInfoService.GetBuildInfo(r.Context()), http.StatusOK)
}

func (h *Handler) root(w http.ResponseWriter, _ *http.Request) {
	utils.WriteJSON(w, models.Message{Message: app.MsgServiceName}, http.StatusOK)
}

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	if h.healthy != nil && !h.healthy() {
		utils.WriteJSON(w, models.Message{Message: app.MsgUnavailable}, http.StatusServiceUnavailable)
		return
	}

	utils.WriteJSON(w, models.Message{Message: app.MsgServiceName}, http.StatusOK)
}
