package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ariefcatur/nirmala-invitations/internal/auth"
	"github.com/ariefcatur/nirmala-invitations/internal/orders"
	"github.com/go-chi/chi/v5"
)

type AdminHandler struct {
	Engine   *orders.Engine
	Admin    auth.Admin
	Sessions *auth.Sessions
	Orders   *OrdersHandler // status cache
}

type LoginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResp struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"` // detik
}

type SetStatusReq struct {
	Status string `json:"status"`
}

type AdminOrder struct {
	orders.Order
	Total int `json:"total"`
}

type ctxKey struct{}

func (h *AdminHandler) Register(r chi.Router) {
	r.Post("/admin/login", h.login)
	r.Group(func(r chi.Router) {
		r.Use(h.requireAdmin)
		r.Post("/admin/logout", h.logout)
		r.Get("/admin/orders", h.listOrders)
		r.Get("/admin/stats", h.stats)
		r.Patch("/admin/orders/{id}/status", h.setStatus)
	})
}

func bearer(r *http.Request) string {
	v := r.Header.Get("Authorization")
	if len(v) > 7 && strings.EqualFold(v[:7], "bearer ") {
		return strings.TrimSpace(v[7:])
	}
	return ""
}

func (h *AdminHandler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := h.Sessions.Lookup(r.Context(), bearer(r))
		if errors.Is(err, auth.ErrNoSession) {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		if err != nil {
			internalError(w, r, "session lookup", err)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, user)))
	})
}

func (h *AdminHandler) login(w http.ResponseWriter, r *http.Request) {
	var req LoginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.Admin.Check(req.Username, req.Password); err != nil {
		slog.Warn("admin login failed", "username", req.Username, "ip", r.RemoteAddr)
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	token, err := h.Sessions.Create(r.Context(), req.Username)
	if err != nil {
		internalError(w, r, "create session", err)
		return
	}
	writeJSON(w, http.StatusOK, LoginResp{Token: token, ExpiresIn: int(h.Sessions.TTL / time.Second)})
}

func (h *AdminHandler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.Revoke(r.Context(), bearer(r)); err != nil {
		internalError(w, r, "revoke session", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	all, err := h.Engine.All(r.Context())
	if err != nil {
		internalError(w, r, "list orders", err)
		return
	}
	out := make([]AdminOrder, 0, len(all))
	for _, o := range all {
		out = append(out, AdminOrder{Order: o, Total: h.Engine.TotalOf(o)})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *AdminHandler) stats(w http.ResponseWriter, r *http.Request) {
	s, err := h.Engine.Stats(r.Context())
	if err != nil {
		internalError(w, r, "order stats", err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *AdminHandler) setStatus(w http.ResponseWriter, r *http.Request) {
	var req SetStatusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	to, err := orders.ParseStatus(req.Status)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	o, err := h.Engine.SetStatus(ctx, chi.URLParam(r, "id"), to, traceID(r))
	switch {
	case errors.Is(err, orders.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
		return
	case errors.Is(err, orders.ErrInvalidTransition):
		writeError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		internalError(w, r, "set order status", err)
		return
	}
	slog.Info("status updated by admin", "order_id", o.ID, "admin", r.Context().Value(ctxKey{}))
	if h.Orders != nil {
		h.Orders.cacheStatus(ctx, o)
	}
	writeJSON(w, http.StatusOK, AdminOrder{Order: o, Total: h.Engine.TotalOf(o)})
}
