package api

import (
	"log/slog"
	"math"
	"net/http"

	"github.com/denizak/lootledger/internal/models"
	"github.com/denizak/lootledger/internal/storage"
)

// ItemsHandler serves item creation, update and deletion.
type ItemsHandler struct {
	Store storage.Store
}

type saveItemRequest struct {
	ID       string   `json:"id"`
	GroupID  string   `json:"group_id"`
	Name     string   `json:"name"`
	Price    *float64 `json:"price"`
	SellerID string   `json:"seller_id"`
	Status   string   `json:"status"`
}

// Save inserts a new item when no ID is given, otherwise updates the
// existing item in place.
func (h *ItemsHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req saveItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.GroupID == "" || req.Name == "" || req.Status == "" {
		respondError(w, http.StatusBadRequest, "group, item name and status are required")
		return
	}
	if !models.ValidStatus(req.Status) {
		respondError(w, http.StatusBadRequest, "status must be pending, sold or reserved")
		return
	}
	if req.Price != nil && (*req.Price < 0 || math.IsNaN(*req.Price) || math.IsInf(*req.Price, 0)) {
		respondError(w, http.StatusBadRequest, "price must be a non-negative number")
		return
	}

	item := &models.Item{
		ID:       req.ID,
		GroupID:  req.GroupID,
		Name:     req.Name,
		Price:    req.Price,
		SellerID: req.SellerID,
		Status:   req.Status,
	}
	if err := h.Store.SaveItem(r.Context(), item); err != nil {
		respondStoreError(w, err)
		return
	}

	slog.Info("Item saved", "item_id", item.ID, "group_id", item.GroupID, "status", item.Status)
	respondOK(w, envelope{"item": item})
}

// Delete removes an item.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	itemID := r.PathValue("id")
	if err := h.Store.DeleteItem(r.Context(), itemID); err != nil {
		respondStoreError(w, err)
		return
	}
	slog.Info("Item deleted", "item_id", itemID)
	respondOK(w, envelope{"message": "item deleted"})
}
