package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/skons/warehouse/internal/store"
)

// ReceiptsHandler records incoming deliveries.
type ReceiptsHandler struct {
	DB *sql.DB
}

type createReceiptRequest struct {
	Warehouse string `json:"warehouse"`
	Supplier  string `json:"supplier"`
	PartName  string `json:"part_name"`
	Quantity  int    `json:"quantity"`
	Note      string `json:"note"`
}

// Create handles POST /api/receipts.
func (h *ReceiptsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createReceiptRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	claims := GetClaims(r.Context())
	receipt, err := store.CreateReceipt(r.Context(), h.DB, req.Warehouse, req.Supplier, req.PartName, req.Quantity, req.Note, claims.Name)
	if err != nil {
		storeError(w, err)
		return
	}

	slog.Info("delivery receipt recorded", "receipt_id", receipt.ID, "warehouse", receipt.Warehouse, "by", claims.EmployeeID)
	jsonResponse(w, http.StatusCreated, receipt)
}

// List handles GET /api/receipts with an optional warehouse filter.
func (h *ReceiptsHandler) List(w http.ResponseWriter, r *http.Request) {
	receipts, err := store.ListReceipts(r.Context(), h.DB, r.URL.Query().Get("warehouse"))
	if err != nil {
		storeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, receipts)
}

// Get handles GET /api/receipts/{id}.
func (h *ReceiptsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid receipt id")
		return
	}

	receipt, err := store.GetReceipt(r.Context(), h.DB, id)
	if err != nil {
		storeError(w, err)
		return
	}
	if receipt == nil {
		jsonError(w, http.StatusNotFound, "receipt not found")
		return
	}
	jsonResponse(w, http.StatusOK, receipt)
}
