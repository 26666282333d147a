package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/skons/warehouse/internal/store"
)

// UsersHandler exposes admin user management.
type UsersHandler struct {
	DB *sql.DB
}

// List handles GET /api/users. Pending users sort first.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := store.ListUsers(r.Context(), h.DB)
	if err != nil {
		storeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, users)
}

// Approve handles PUT /api/users/{id}/approve.
func (h *UsersHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := store.ApproveUser(r.Context(), h.DB, id); err != nil {
		storeError(w, err)
		return
	}

	claims := GetClaims(r.Context())
	slog.Info("user approved", "user_id", id, "approved_by", claims.EmployeeID)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "user approved"})
}

// Delete handles DELETE /api/users/{id}. Admin accounts cannot be removed.
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := store.DeleteUser(r.Context(), h.DB, id); err != nil {
		storeError(w, err)
		return
	}

	claims := GetClaims(r.Context())
	slog.Info("user deleted", "user_id", id, "deleted_by", claims.EmployeeID)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "user deleted"})
}
