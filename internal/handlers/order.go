package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/diewo77/go-shopchat/internal/httpx"
	"github.com/diewo77/go-shopchat/internal/models"
	"github.com/diewo77/go-shopchat/internal/store"
)

type OrderHandler struct {
	Store *store.Store
}

func NewOrderHandler(st *store.Store) *OrderHandler { return &OrderHandler{Store: st} }

// orderResponse serializes nested products through productResponse so they
// carry the same derived availability flag as the product routes.
type orderResponse struct {
	ID         uint               `json:"id"`
	UserID     uint               `json:"user_id"`
	Products   []productResponse  `json:"products"`
	OrderDate  time.Time          `json:"order_date"`
	Status     models.OrderStatus `json:"status"`
	TotalPrice float64            `json:"total_price"`
}

func toOrderResponse(o models.Order) orderResponse {
	return orderResponse{
		ID:         o.ID,
		UserID:     o.UserID,
		Products:   toProductResponses(o.Products),
		OrderDate:  o.OrderDate,
		Status:     o.Status,
		TotalPrice: o.TotalPrice,
	}
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Store.ListOrders()
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in struct {
		UserID     uint               `json:"user_id"`
		ProductIDs []uint             `json:"product_ids"`
		Status     models.OrderStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	// An order is placed with at least one product.
	if len(in.ProductIDs) == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed",
			[]map[string]string{{"field": "product_ids", "message": "required"}})
		return
	}
	o := models.Order{UserID: in.UserID, Status: in.Status}
	if err := h.Store.CreateOrder(&o, in.ProductIDs); err != nil {
		writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toOrderResponse(o))
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	o, err := h.Store.GetOrder(id)
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toOrderResponse(*o))
}

// Update applies a status transition and/or replaces the product set, in one
// store transaction so a failing part never leaves the other half applied.
// Owner and order date are immutable; the total is recomputed whenever the
// product set changes. Serves both PUT and PATCH.
func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var in struct {
		Status     *models.OrderStatus `json:"status"`
		ProductIDs *[]uint             `json:"product_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if _, err := h.Store.PatchOrder(id, in.Status, in.ProductIDs); err != nil {
		writeError(w, err)
		return
	}
	o, err := h.Store.GetOrder(id)
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toOrderResponse(*o))
}

func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.Store.DeleteOrder(id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
