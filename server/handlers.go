// Package server exposes the ops HTTP surface: health, status, metrics, and
// the menu actions the add-on registers. For a headless host, the action
// routes are the menu framework: RegisterPage mounts each action descriptor
// as a POST endpoint.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/onnwee/chat-tap/addon"
	"github.com/onnwee/chat-tap/host"
)

// Handlers holds dependencies for all HTTP handlers and implements
// host.MenuRegistrar.
type Handlers struct {
	addon *addon.Addon

	mu        sync.RWMutex
	pageTitle string
	actions   map[string]host.Action
	order     []string
}

// NewHandlers creates a new Handlers instance bound to the add-on.
func NewHandlers(a *addon.Addon) *Handlers {
	return &Handlers{
		addon:   a,
		actions: make(map[string]host.Action),
	}
}

// RegisterPage implements host.MenuRegistrar. Registration may happen before
// or after the server starts; dispatch always reads the current table.
func (h *Handlers) RegisterPage(title string, actions []host.Action) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pageTitle = title
	h.actions = make(map[string]host.Action, len(actions))
	h.order = h.order[:0]
	for _, a := range actions {
		h.actions[a.ID] = a
		h.order = append(h.order, a.ID)
	}
	return nil
}

// HandleHealthz responds to liveness probe requests.
func (h *Handlers) HandleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// HandleStatus reports the page registration and capture state as JSON.
func (h *Handlers) HandleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.mu.RLock()
	title := h.pageTitle
	ids := make([]string, len(h.order))
	copy(ids, h.order)
	h.mu.RUnlock()

	st := h.addon.Status()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"page":            title,
		"actions":         ids,
		"capture_enabled": st.CaptureEnabled,
		"log_size":        st.LogSize,
		"last_export":     st.LastExport,
	})
}

// HandleAction dispatches POST /actions/{id} to the registered action.
func (h *Handlers) HandleAction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/actions/")
	if id == "" || strings.Contains(id, "/") {
		http.Error(w, "unknown action", http.StatusNotFound)
		return
	}
	h.mu.RLock()
	action, ok := h.actions[id]
	h.mu.RUnlock()
	if !ok || action.OnActivate == nil {
		http.Error(w, "unknown action", http.StatusNotFound)
		return
	}

	slog.Info("menu action activated", slog.String("action", id))
	action.OnActivate()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok", "action": id})
}
