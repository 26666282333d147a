package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/skons/warehouse/internal/store"
)

// ItemsHandler exposes the inventory CRUD and quantity endpoints.
type ItemsHandler struct {
	DB *sql.DB
}

type createItemRequest struct {
	Warehouse string `json:"warehouse"`
	Category  string `json:"category"`
	PartName  string `json:"part_name"`
	Quantity  int    `json:"quantity"`
}

type editItemRequest struct {
	PartName string `json:"part_name"`
	Quantity int    `json:"quantity"`
}

type adjustRequest struct {
	Direction string `json:"direction"`
	Amount    int    `json:"amount"`
}

// List handles GET /api/items with optional warehouse and category filters.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := store.ListItems(r.Context(), h.DB, r.URL.Query().Get("warehouse"), r.URL.Query().Get("category"))
	if err != nil {
		storeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, items)
}

// Create handles POST /api/items.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	claims := GetClaims(r.Context())
	item, err := store.CreateItem(r.Context(), h.DB, req.Warehouse, req.Category, req.PartName, req.Quantity, claims.Name)
	if err != nil {
		storeError(w, err)
		return
	}

	slog.Info("item created", "item_id", item.ID, "part_name", item.PartName, "warehouse", item.Warehouse, "by", claims.EmployeeID)
	jsonResponse(w, http.StatusCreated, item)
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil {
		storeError(w, err)
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Edit handles PUT /api/items/{id}. Quantity set here records a zero-delta
// history entry so the audit trail stays replayable.
func (h *ItemsHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var req editItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	claims := GetClaims(r.Context())
	if err := store.EditItem(r.Context(), h.DB, id, req.PartName, req.Quantity, claims.Name); err != nil {
		storeError(w, err)
		return
	}

	item, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil {
		storeError(w, err)
		return
	}

	slog.Info("item edited", "item_id", id, "by", claims.EmployeeID)
	jsonResponse(w, http.StatusOK, item)
}

// Delete handles DELETE /api/items/{id}. History, photos and snapshots for
// the item go with it.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	if err := store.DeleteItem(r.Context(), h.DB, id); err != nil {
		storeError(w, err)
		return
	}

	claims := GetClaims(r.Context())
	slog.Info("item deleted", "item_id", id, "by", claims.EmployeeID)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "item deleted"})
}

// Adjust handles POST /api/items/{id}/adjust, moving stock in or out.
func (h *ItemsHandler) Adjust(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var req adjustRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	claims := GetClaims(r.Context())
	newQty, err := store.Adjust(r.Context(), h.DB, id, req.Direction, req.Amount, claims.Name)
	if err != nil {
		storeError(w, err)
		return
	}

	slog.Info("quantity adjusted", "item_id", id, "direction", req.Direction, "amount", req.Amount, "new_quantity", newQty, "by", claims.EmployeeID)
	jsonResponse(w, http.StatusOK, map[string]int{"new_quantity": newQty})
}

// History handles GET /api/items/{id}/history, newest entries first.
func (h *ItemsHandler) History(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil {
		storeError(w, err)
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	entries, err := store.GetHistory(r.Context(), h.DB, id)
	if err != nil {
		storeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, entries)
}
