package handlers

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"yoyo-backend/internal/cache"
	"yoyo-backend/internal/services"
	"yoyo-backend/pkg/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type DashboardHandler struct {
	Service *services.DashboardService

	clientsMux sync.Mutex
	clients    map[*websocket.Conn]bool
}

func NewDashboardHandler(s *services.DashboardService) *DashboardHandler {
	h := &DashboardHandler{
		Service: s,
		clients: make(map[*websocket.Conn]bool),
	}
	s.OnUpdate = h.broadcast
	return h
}

// GetDashboard handles GET /api/dashboard
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	if snap := h.Service.Snapshot(); snap != nil {
		utils.JSON(w, http.StatusOK, snap)
		return
	}

	// First build still running; serve the cached copy if Redis has one
	if data, ok := cache.GetCachedDashboard(r.Context()); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
		return
	}
	utils.Error(w, http.StatusServiceUnavailable, "dashboard not ready")
}

// Stream handles GET /api/dashboard/ws. Each client gets the current
// snapshot on connect and every refresh after that.
func (h *DashboardHandler) Stream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("[Dashboard] websocket upgrade error:", err)
		return
	}
	defer conn.Close()

	if snap := h.Service.Snapshot(); snap != nil {
		conn.WriteJSON(snap)
	}

	h.clientsMux.Lock()
	h.clients[conn] = true
	h.clientsMux.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.clientsMux.Lock()
			delete(h.clients, conn)
			h.clientsMux.Unlock()
			break
		}
	}
}

func (h *DashboardHandler) broadcast(snap *services.DashboardSnapshot) {
	h.clientsMux.Lock()
	defer h.clientsMux.Unlock()
	for client := range h.clients {
		if err := client.WriteJSON(snap); err != nil {
			client.Close()
			delete(h.clients, client)
		}
	}
}
