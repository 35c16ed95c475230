package handlers

import (
	"encoding/json"
	"net/http"

	"yoyo-backend/internal/models"
	"yoyo-backend/internal/services"
	"yoyo-backend/pkg/utils"
)

type SettingsHandler struct {
	Service  *services.SettingsService
	Activity *services.ActivityService
}

func NewSettingsHandler(s *services.SettingsService, activity *services.ActivityService) *SettingsHandler {
	return &SettingsHandler{Service: s, Activity: activity}
}

func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Service.GetSettings(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, settings)
}

func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	settings, err := h.Service.UpdateSettings(r.Context(), &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	id, name := actor(r)
	h.Activity.Record(id, name, "settings_updated", "updated shop settings")
	utils.JSON(w, http.StatusOK, settings)
}
