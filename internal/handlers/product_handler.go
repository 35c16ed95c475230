package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"yoyo-backend/internal/models"
	"yoyo-backend/internal/services"
	"yoyo-backend/pkg/utils"
)

type ProductHandler struct {
	Service   *services.ProductService
	Activity  *services.ActivityService
	Dashboard *services.DashboardService
}

func NewProductHandler(s *services.ProductService, activity *services.ActivityService,
	dashboard *services.DashboardService) *ProductHandler {
	return &ProductHandler{Service: s, Activity: activity, Dashboard: dashboard}
}

func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.Service.CreateProduct(r.Context(), &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	id, name := actor(r)
	h.Activity.Record(id, name, "product_created", fmt.Sprintf("created product %q", product.Name))
	h.Dashboard.Invalidate(services.SourceProducts)
	utils.JSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	product, err := h.Service.GetProduct(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "product not found")
		return
	}
	utils.JSON(w, http.StatusOK, product)
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Service.ListProducts(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, products)
}

func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	var req models.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.Service.UpdateProduct(r.Context(), id, &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	uid, name := actor(r)
	h.Activity.Record(uid, name, "product_updated", fmt.Sprintf("updated product %q", product.Name))
	h.Dashboard.Invalidate(services.SourceProducts)
	utils.JSON(w, http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Service.DeleteProduct(r.Context(), id); err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	uid, name := actor(r)
	h.Activity.Record(uid, name, "product_deleted", fmt.Sprintf("deleted product #%d", id))
	h.Dashboard.Invalidate(services.SourceProducts)
	utils.JSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
