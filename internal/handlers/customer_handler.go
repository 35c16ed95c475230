package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"yoyo-backend/internal/models"
	"yoyo-backend/internal/services"
	"yoyo-backend/pkg/utils"
)

type CustomerHandler struct {
	Service   *services.CustomerService
	Activity  *services.ActivityService
	Dashboard *services.DashboardService
}

func NewCustomerHandler(s *services.CustomerService, activity *services.ActivityService,
	dashboard *services.DashboardService) *CustomerHandler {
	return &CustomerHandler{Service: s, Activity: activity, Dashboard: dashboard}
}

func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	customer, err := h.Service.CreateCustomer(r.Context(), &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	id, name := actor(r)
	h.Activity.Record(id, name, "customer_created", fmt.Sprintf("created customer %q", customer.FullName))
	h.Dashboard.Invalidate(services.SourceCustomers)
	utils.JSON(w, http.StatusCreated, customer)
}

func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	customer, err := h.Service.GetCustomer(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "customer not found")
		return
	}
	utils.JSON(w, http.StatusOK, customer)
}

func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.Service.ListCustomers(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, customers)
}

func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	var req models.UpdateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	customer, err := h.Service.UpdateCustomer(r.Context(), id, &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	uid, name := actor(r)
	h.Activity.Record(uid, name, "customer_updated", fmt.Sprintf("updated customer %q", customer.FullName))
	h.Dashboard.Invalidate(services.SourceCustomers)
	utils.JSON(w, http.StatusOK, customer)
}

func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Service.DeleteCustomer(r.Context(), id); err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	uid, name := actor(r)
	h.Activity.Record(uid, name, "customer_deleted", fmt.Sprintf("deleted customer #%d", id))
	h.Dashboard.Invalidate(services.SourceCustomers)
	utils.JSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
