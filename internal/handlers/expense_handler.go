package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"yoyo-backend/internal/models"
	"yoyo-backend/internal/services"
	"yoyo-backend/pkg/utils"
)

type ExpenseHandler struct {
	Service   *services.ExpenseService
	Activity  *services.ActivityService
	Dashboard *services.DashboardService
}

func NewExpenseHandler(s *services.ExpenseService, activity *services.ActivityService,
	dashboard *services.DashboardService) *ExpenseHandler {
	return &ExpenseHandler{Service: s, Activity: activity, Dashboard: dashboard}
}

func (h *ExpenseHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req models.CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	expense, err := h.Service.CreateExpense(r.Context(), &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	id, name := actor(r)
	h.Activity.Record(id, name, "expense_created",
		fmt.Sprintf("recorded expense %q (%.2f)", expense.Name, expense.Amount))
	h.Dashboard.Invalidate(services.SourceExpenses)
	utils.JSON(w, http.StatusCreated, expense)
}

func (h *ExpenseHandler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.Service.ListExpenses(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, expenses)
}

// ListCategories returns the suggested expense categories.
func (h *ExpenseHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, models.ExpenseCategories)
}

func (h *ExpenseHandler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	var req models.UpdateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	expense, err := h.Service.UpdateExpense(r.Context(), id, &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	uid, name := actor(r)
	h.Activity.Record(uid, name, "expense_updated", fmt.Sprintf("updated expense %q", expense.Name))
	h.Dashboard.Invalidate(services.SourceExpenses)
	utils.JSON(w, http.StatusOK, expense)
}

func (h *ExpenseHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Service.DeleteExpense(r.Context(), id); err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	uid, name := actor(r)
	h.Activity.Record(uid, name, "expense_deleted", fmt.Sprintf("deleted expense #%d", id))
	h.Dashboard.Invalidate(services.SourceExpenses)
	utils.JSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
