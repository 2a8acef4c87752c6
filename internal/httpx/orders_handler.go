package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/ariefcatur/nirmala-invitations/internal/orders"
	"github.com/ariefcatur/nirmala-invitations/internal/redisx"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
)

type OrdersHandler struct {
	Engine *orders.Engine
	Redis  *redis.Client
}

type ValidateResp struct {
	Valid  bool               `json:"valid"`
	Errors orders.FieldErrors `json:"errors"`
}

type QuoteResp struct {
	Total      int  `json:"total"`
	Computable bool `json:"computable"`
}

type SubmitResp struct {
	Order orders.Order `json:"order"`
	Total int          `json:"total"`
}

type OrderStatusResp struct {
	ID        string        `json:"id"`
	Status    orders.Status `json:"status"`
	OrderDate string        `json:"order_date"`
}

func (h *OrdersHandler) Register(r chi.Router) {
	r.Post("/orders/validate", h.validate)
	r.Post("/orders/quote", h.quote)
	r.Post("/orders", h.submit)
	r.Get("/orders/{id}", h.getOrder)
}

func decodeDraft(w http.ResponseWriter, r *http.Request) (orders.Draft, bool) {
	var d orders.Draft
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return d, false
	}
	return d, true
}

func (h *OrdersHandler) validate(w http.ResponseWriter, r *http.Request) {
	d, ok := decodeDraft(w, r)
	if !ok {
		return
	}
	fe := h.Engine.Validate(d)
	writeJSON(w, http.StatusOK, ValidateResp{Valid: fe.Empty(), Errors: fe})
}

func (h *OrdersHandler) quote(w http.ResponseWriter, r *http.Request) {
	d, ok := decodeDraft(w, r)
	if !ok {
		return
	}
	total, computable := h.Engine.Quote(d)
	writeJSON(w, http.StatusOK, QuoteResp{Total: total, Computable: computable})
}

func (h *OrdersHandler) submit(w http.ResponseWriter, r *http.Request) {
	d, ok := decodeDraft(w, r)
	if !ok {
		return
	}
	// field errors dikembalikan sebagai data, bukan kegagalan
	if fe := h.Engine.Validate(d); !fe.Empty() {
		writeJSON(w, http.StatusUnprocessableEntity, ValidateResp{Valid: false, Errors: fe})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	o, err := h.Engine.Submit(ctx, d, traceID(r))
	switch {
	case errors.Is(err, orders.ErrPrecondition):
		slog.Warn("submit rejected", "err", err)
		writeError(w, http.StatusConflict, "order cannot be submitted")
		return
	case err != nil:
		internalError(w, r, "submit order", err)
		return
	}

	h.cacheStatus(ctx, o)
	writeJSON(w, http.StatusCreated, SubmitResp{Order: o, Total: h.Engine.TotalOf(o)})
}

func (h *OrdersHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	// 1) coba cache
	key := fmt.Sprintf(redisx.KeyOrderStatus, orderID)
	if s, err := h.Redis.Get(ctx, key).Result(); err == nil && s != "" {
		writeJSON(w, http.StatusOK, json.RawMessage(s))
		return
	}

	// 2) fallback ledger
	o, err := h.Engine.Get(ctx, orderID)
	if errors.Is(err, orders.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if err != nil {
		internalError(w, r, "get order", err)
		return
	}
	h.cacheStatus(ctx, o)
	writeJSON(w, http.StatusOK, statusOf(o))
}

func statusOf(o orders.Order) OrderStatusResp {
	return OrderStatusResp{ID: o.ID, Status: o.Status, OrderDate: o.OrderDate}
}

func (h *OrdersHandler) cacheStatus(ctx context.Context, o orders.Order) {
	b, _ := json.Marshal(statusOf(o))
	if err := h.Redis.Set(ctx, fmt.Sprintf(redisx.KeyOrderStatus, o.ID), b, redisx.TTLStatusCache).Err(); err != nil {
		slog.Warn("cache order status", "order_id", o.ID, "err", err)
	}
}
