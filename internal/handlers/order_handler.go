package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"yoyo-backend/internal/models"
	"yoyo-backend/internal/services"
	"yoyo-backend/pkg/utils"
)

type OrderHandler struct {
	Service   *services.OrderService
	Invoices  *services.InvoiceService
	Activity  *services.ActivityService
	Dashboard *services.DashboardService
}

func NewOrderHandler(s *services.OrderService, invoices *services.InvoiceService,
	activity *services.ActivityService, dashboard *services.DashboardService) *OrderHandler {
	return &OrderHandler{Service: s, Invoices: invoices, Activity: activity, Dashboard: dashboard}
}

func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// Orders are attributed to the creating user unless the request names
	// another salesperson.
	uid, name := actor(r)
	if req.SalespersonID == nil {
		req.SalespersonID = uid
	}

	order, err := h.Service.CreateOrder(r.Context(), &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	detail := fmt.Sprintf("created order #%d for %q", order.ID, order.CustomerName)
	if order.StockDeducted {
		detail += " with stock deduction"
	}
	h.Activity.Record(uid, name, "order_created", detail)
	h.Dashboard.Invalidate(services.SourceOrders)
	utils.JSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.Service.GetOrder(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "order not found")
		return
	}
	utils.JSON(w, http.StatusOK, order)
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Service.ListOrders(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	var draft models.OrderDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.Service.UpdateOrder(r.Context(), id, &draft)
	if err != nil {
		if errors.Is(err, services.ErrOrderCancelled) {
			utils.Error(w, http.StatusConflict, err.Error())
			return
		}
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	uid, name := actor(r)
	h.Activity.Record(uid, name, "order_updated", fmt.Sprintf("updated order #%d", order.ID))
	h.Dashboard.Invalidate(services.SourceOrders)
	utils.JSON(w, http.StatusOK, order)
}

// ChangeStatus handles PATCH /api/orders/{id}/status. When the new value
// completes an order whose stock was never deducted and no decision was
// sent, it answers 409 with a decision payload the UI turns into a prompt.
func (h *OrderHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	var req models.ChangeStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.Service.ChangeStatus(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrStockDecisionRequired):
			utils.JSON(w, http.StatusConflict, map[string]interface{}{
				"error":             err.Error(),
				"decision_required": true,
				"field":             req.Field,
				"value":             req.Value,
			})
		case errors.Is(err, services.ErrOrderCancelled):
			utils.Error(w, http.StatusConflict, err.Error())
		default:
			utils.Error(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	uid, name := actor(r)
	h.Activity.Record(uid, name, "order_status_changed",
		fmt.Sprintf("order #%d %s -> %q", order.ID, req.Field, req.Value))
	h.Dashboard.Invalidate(services.SourceOrders)
	utils.JSON(w, http.StatusOK, order)
}

// CancelOrder handles POST /api/orders/{id}/cancel
func (h *OrderHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.Service.CancelOrder(r.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrOrderCancelled) {
			utils.Error(w, http.StatusConflict, err.Error())
			return
		}
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	uid, name := actor(r)
	h.Activity.Record(uid, name, "order_cancelled", fmt.Sprintf("cancelled order #%d", order.ID))
	h.Dashboard.Invalidate(services.SourceOrders)
	utils.JSON(w, http.StatusOK, order)
}

// deleteWarning reports the log line for deleting a cancelled order. Cancel
// already restored its stock and deletion never touches stock again, so the
// operator gets a note about the asymmetry.
func deleteWarning(o *models.Order) (string, bool) {
	if !o.IsCancelled {
		return "", false
	}
	return fmt.Sprintf("deleting cancelled order #%d; its stock was already restored on cancel", o.ID), true
}

// DeleteOrder handles DELETE /api/orders/{id}. Stock is not restored.
func (h *OrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if order, err := h.Service.GetOrder(r.Context(), id); err == nil {
		if msg, warn := deleteWarning(order); warn {
			log.Printf("[Orders] %s", msg)
		}
	}
	if err := h.Service.DeleteOrder(r.Context(), id); err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	uid, name := actor(r)
	h.Activity.Record(uid, name, "order_deleted", fmt.Sprintf("deleted order #%d", id))
	h.Dashboard.Invalidate(services.SourceOrders)
	utils.JSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// GetInvoice handles GET /api/orders/{id}/invoice?lang=en|ar
func (h *OrderHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	lang := r.URL.Query().Get("lang")
	data, filename, err := h.Invoices.GenerateOrderInvoice(r.Context(), id, lang)
	if err != nil {
		utils.Error(w, http.StatusNotFound, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=\"%s\"", filename))
	w.Write(data)
}
