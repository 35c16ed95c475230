package handlers

import (
	"net/http"
	"strconv"

	"yoyo-backend/internal/services"
	"yoyo-backend/pkg/utils"
)

type ActivityLogHandler struct {
	Service *services.ActivityService
}

func NewActivityLogHandler(s *services.ActivityService) *ActivityLogHandler {
	return &ActivityLogHandler{Service: s}
}

func (h *ActivityLogHandler) ListActivity(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			utils.Error(w, http.StatusBadRequest, "invalid limit parameter")
			return
		}
		limit = n
	}

	entries, err := h.Service.List(r.Context(), limit)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, entries)
}
