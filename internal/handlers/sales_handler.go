package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"yoyo-backend/internal/models"
	"yoyo-backend/internal/services"
	"yoyo-backend/pkg/utils"
)

type SalesHandler struct {
	Service  *services.SalesService
	Activity *services.ActivityService
}

func NewSalesHandler(s *services.SalesService, activity *services.ActivityService) *SalesHandler {
	return &SalesHandler{Service: s, Activity: activity}
}

// GetOverview handles GET /api/sales
func (h *SalesHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.GetOverview(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, stats)
}

func (h *SalesHandler) CreateReward(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRewardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reward, err := h.Service.CreateReward(r.Context(), &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	id, name := actor(r)
	h.Activity.Record(id, name, "reward_created", fmt.Sprintf("created reward %q", reward.Name))
	utils.JSON(w, http.StatusCreated, reward)
}

func (h *SalesHandler) ListRewards(w http.ResponseWriter, r *http.Request) {
	rewards, err := h.Service.ListRewards(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, rewards)
}

func (h *SalesHandler) UpdateReward(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	var req models.UpdateRewardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reward, err := h.Service.UpdateReward(r.Context(), id, &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	uid, name := actor(r)
	h.Activity.Record(uid, name, "reward_updated", fmt.Sprintf("updated reward %q", reward.Name))
	utils.JSON(w, http.StatusOK, reward)
}

func (h *SalesHandler) DeleteReward(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Service.DeleteReward(r.Context(), id); err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	uid, name := actor(r)
	h.Activity.Record(uid, name, "reward_deleted", fmt.Sprintf("deleted reward #%d", id))
	utils.JSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// ListEarnedRewards handles GET /api/rewards/earned
func (h *SalesHandler) ListEarnedRewards(w http.ResponseWriter, r *http.Request) {
	earned, err := h.Service.ListEarnedRewards(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, earned)
}
