package api

import (
	"database/sql"
	"net/http"

	"github.com/skons/warehouse/internal/model"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, jwtSecret string) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	usersHandler := &UsersHandler{DB: db}
	itemsHandler := &ItemsHandler{DB: db}
	photosHandler := &PhotosHandler{DB: db}
	inventoryHandler := &InventoryHandler{DB: db}
	receiptsHandler := &ReceiptsHandler{DB: db}

	authMW := AuthMiddleware(jwtSecret, db)
	requireAdmin := RequireRole(model.RoleAdmin)

	// Public: registration, login and health.
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("GET /api/health", Health(db))

	// Authenticated session management.
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("PUT /api/auth/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))

	// Users (admin only).
	mux.Handle("GET /api/users", authMW(requireAdmin(http.HandlerFunc(usersHandler.List))))
	mux.Handle("PUT /api/users/{id}/approve", authMW(requireAdmin(http.HandlerFunc(usersHandler.Approve))))
	mux.Handle("DELETE /api/users/{id}", authMW(requireAdmin(http.HandlerFunc(usersHandler.Delete))))

	// Items: read and adjust (all roles), structure changes (admin).
	mux.Handle("GET /api/items", authMW(http.HandlerFunc(itemsHandler.List)))
	mux.Handle("POST /api/items", authMW(requireAdmin(http.HandlerFunc(itemsHandler.Create))))
	mux.Handle("GET /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Get)))
	mux.Handle("PUT /api/items/{id}", authMW(requireAdmin(http.HandlerFunc(itemsHandler.Edit))))
	mux.Handle("DELETE /api/items/{id}", authMW(requireAdmin(http.HandlerFunc(itemsHandler.Delete))))
	mux.Handle("POST /api/items/{id}/adjust", authMW(http.HandlerFunc(itemsHandler.Adjust)))
	mux.Handle("GET /api/items/{id}/history", authMW(http.HandlerFunc(itemsHandler.History)))

	// Photos: read and upload (all roles), delete (admin).
	mux.Handle("POST /api/items/{id}/photos", authMW(http.HandlerFunc(photosHandler.Upload)))
	mux.Handle("GET /api/items/{id}/photos", authMW(http.HandlerFunc(photosHandler.List)))
	mux.Handle("GET /api/photos/{id}", authMW(http.HandlerFunc(photosHandler.Serve)))
	mux.Handle("DELETE /api/photos/{id}", authMW(requireAdmin(http.HandlerFunc(photosHandler.Delete))))

	// Inventory views (all roles).
	mux.Handle("GET /api/inventory/search", authMW(http.HandlerFunc(inventoryHandler.Search)))
	mux.Handle("GET /api/inventory/stats", authMW(http.HandlerFunc(inventoryHandler.Stats)))
	mux.Handle("GET /api/inventory/export", authMW(http.HandlerFunc(inventoryHandler.Export)))

	// Delivery receipts (all roles).
	mux.Handle("POST /api/receipts", authMW(http.HandlerFunc(receiptsHandler.Create)))
	mux.Handle("GET /api/receipts", authMW(http.HandlerFunc(receiptsHandler.List)))
	mux.Handle("GET /api/receipts/{id}", authMW(http.HandlerFunc(receiptsHandler.Get)))

	return LoggingMiddleware(mux)
}
