package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"yoyo-backend/internal/auth"
	"yoyo-backend/internal/models"
	"yoyo-backend/internal/services"
	"yoyo-backend/pkg/utils"
)

type AuthHandler struct {
	Users      *services.UserService
	TOTP       *services.TOTPService
	JWTManager *auth.JWTManager
	Activity   *services.ActivityService
}

func NewAuthHandler(users *services.UserService, totpSvc *services.TOTPService,
	jwtManager *auth.JWTManager, activity *services.ActivityService) *AuthHandler {
	return &AuthHandler{Users: users, TOTP: totpSvc, JWTManager: jwtManager, Activity: activity}
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.Users.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.Error(w, http.StatusUnauthorized, err.Error())
			return
		}
		utils.Error(w, http.StatusForbidden, err.Error())
		return
	}

	if result.User != nil {
		h.Activity.Record(&result.User.ID, result.User.Name, "login", "signed in")
	}
	utils.JSON(w, http.StatusOK, result)
}

type totpLoginRequest struct {
	TempToken string `json:"temp_token"`
	Code      string `json:"code"`
}

// VerifyLoginTOTP handles POST /api/auth/totp — step two of a 2FA login.
func (h *AuthHandler) VerifyLoginTOTP(w http.ResponseWriter, r *http.Request) {
	var req totpLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	claims, err := h.JWTManager.ValidateTempToken(req.TempToken)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "invalid or expired temp token")
		return
	}
	if err := h.TOTP.Verify(r.Context(), claims.UserID, req.Code); err != nil {
		utils.Error(w, http.StatusUnauthorized, err.Error())
		return
	}

	result, err := h.Users.IssueToken(r.Context(), claims.UserID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.Activity.Record(&result.User.ID, result.User.Name, "login", "signed in with 2FA")
	utils.JSON(w, http.StatusOK, result)
}
