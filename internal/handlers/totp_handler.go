package handlers

import (
	"encoding/json"
	"net/http"

	"yoyo-backend/internal/middleware"
	"yoyo-backend/internal/services"
	"yoyo-backend/pkg/utils"
)

type TOTPHandler struct {
	Service  *services.TOTPService
	Activity *services.ActivityService
}

func NewTOTPHandler(s *services.TOTPService, activity *services.ActivityService) *TOTPHandler {
	return &TOTPHandler{Service: s, Activity: activity}
}

// Setup handles POST /api/auth/totp/setup
func (h *TOTPHandler) Setup(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	setup, err := h.Service.GenerateSetup(r.Context(), userID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, setup)
}

type totpCodeRequest struct {
	Code     string `json:"code"`
	Password string `json:"password,omitempty"`
}

// VerifyAndEnable handles POST /api/auth/totp/enable
func (h *TOTPHandler) VerifyAndEnable(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	userName, _ := middleware.GetUserNameFromContext(r.Context())

	var req totpCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.VerifyAndEnable(r.Context(), userID, req.Code); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	h.Activity.Record(&userID, userName, "totp_enabled", "enabled two-factor authentication")
	utils.JSON(w, http.StatusOK, map[string]bool{"enabled": true})
}

// Disable handles POST /api/auth/totp/disable
func (h *TOTPHandler) Disable(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	userName, _ := middleware.GetUserNameFromContext(r.Context())

	var req totpCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.Disable(r.Context(), userID, req.Password, req.Code); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	h.Activity.Record(&userID, userName, "totp_disabled", "disabled two-factor authentication")
	utils.JSON(w, http.StatusOK, map[string]bool{"enabled": false})
}
