package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"yoyo-backend/internal/models"
	"yoyo-backend/internal/services"
	"yoyo-backend/pkg/utils"
)

type MaterialHandler struct {
	Service  *services.MaterialService
	Activity *services.ActivityService
}

func NewMaterialHandler(s *services.MaterialService, activity *services.ActivityService) *MaterialHandler {
	return &MaterialHandler{Service: s, Activity: activity}
}

func (h *MaterialHandler) CreateMaterial(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMaterialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	material, err := h.Service.CreateMaterial(r.Context(), &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	id, name := actor(r)
	h.Activity.Record(id, name, "material_created", fmt.Sprintf("created material %q", material.Name))
	utils.JSON(w, http.StatusCreated, material)
}

func (h *MaterialHandler) GetMaterial(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	material, err := h.Service.GetMaterial(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "material not found")
		return
	}
	utils.JSON(w, http.StatusOK, material)
}

func (h *MaterialHandler) ListMaterials(w http.ResponseWriter, r *http.Request) {
	materials, err := h.Service.ListMaterials(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, materials)
}

func (h *MaterialHandler) UpdateMaterial(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	var req models.UpdateMaterialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	material, err := h.Service.UpdateMaterial(r.Context(), id, &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	uid, name := actor(r)
	h.Activity.Record(uid, name, "material_updated", fmt.Sprintf("updated material %q", material.Name))
	utils.JSON(w, http.StatusOK, material)
}

func (h *MaterialHandler) DeleteMaterial(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Service.DeleteMaterial(r.Context(), id); err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	uid, name := actor(r)
	h.Activity.Record(uid, name, "material_deleted", fmt.Sprintf("deleted material #%d", id))
	utils.JSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
