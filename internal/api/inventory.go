package api

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/skons/warehouse/internal/export"
	"github.com/skons/warehouse/internal/model"
	"github.com/skons/warehouse/internal/store"
)

// InventoryHandler serves cross-item inventory views.
type InventoryHandler struct {
	DB *sql.DB
}

// Search handles GET /api/inventory/search. With no query and no filters
// the result is empty rather than the whole inventory.
func (h *InventoryHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items, err := store.SearchItems(r.Context(), h.DB, q.Get("q"), q.Get("warehouse"), q.Get("category"))
	if err != nil {
		storeError(w, err)
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Stats handles GET /api/inventory/stats.
func (h *InventoryHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := store.GetStats(r.Context(), h.DB)
	if err != nil {
		storeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, stats)
}

// Export handles GET /api/inventory/export, streaming the inventory as CSV.
// Accepts the same warehouse and category filters as the item list.
func (h *InventoryHandler) Export(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items, err := store.ListItems(r.Context(), h.DB, q.Get("warehouse"), q.Get("category"))
	if err != nil {
		storeError(w, err)
		return
	}

	filename := fmt.Sprintf("inventory-%s.csv", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := export.WriteCSV(w, items); err != nil {
		// Headers are already sent, so just log.
		slog.Error("csv export failed", "error", err)
	}

	claims := GetClaims(r.Context())
	slog.Info("inventory exported", "items", len(items), "by", claims.EmployeeID)
}
