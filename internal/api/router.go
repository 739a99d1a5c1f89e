package api

import (
	"database/sql"
	"net/http"

	"carstock/internal/model"
	"carstock/internal/vision"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, jwtSecret string, visionClient *vision.Client) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	usersHandler := &UsersHandler{DB: db}
	inventoryHandler := &InventoryHandler{DB: db}
	lifecycleHandler := &LifecycleHandler{DB: db}
	manufacturersHandler := &ManufacturersHandler{DB: db}
	locationsHandler := &LocationsHandler{DB: db}
	transfersHandler := &TransfersHandler{DB: db}
	alertsHandler := &AlertsHandler{DB: db}
	appearanceHandler := &AppearanceHandler{DB: db}
	exportHandler := &ExportHandler{DB: db}
	visionHandler := &VisionHandler{Client: visionClient}

	authMW := AuthMiddleware(jwtSecret, db)
	requireAdmin := RequireRole(model.RoleAdmin)
	requireManager := RequireRole(model.RoleManager)

	// Public: login.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// Authenticated routes.
	mux.Handle("PUT /api/auth/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))

	// Users (admin only).
	mux.Handle("GET /api/users", authMW(requireAdmin(http.HandlerFunc(usersHandler.List))))
	mux.Handle("POST /api/users", authMW(requireAdmin(http.HandlerFunc(usersHandler.Create))))
	mux.Handle("GET /api/users/{id}", authMW(requireAdmin(http.HandlerFunc(usersHandler.Get))))
	mux.Handle("PUT /api/users/{id}", authMW(requireAdmin(http.HandlerFunc(usersHandler.Update))))
	mux.Handle("PUT /api/users/{id}/password", authMW(requireAdmin(http.HandlerFunc(usersHandler.ResetPassword))))
	mux.Handle("DELETE /api/users/{id}", authMW(requireAdmin(http.HandlerFunc(usersHandler.Delete))))

	// Inventory: read (all roles), write (manager+).
	mux.Handle("GET /api/inventory", authMW(http.HandlerFunc(inventoryHandler.List)))
	mux.Handle("POST /api/inventory", authMW(requireManager(http.HandlerFunc(inventoryHandler.Create))))
	mux.Handle("GET /api/inventory/search", authMW(http.HandlerFunc(inventoryHandler.Search)))
	mux.Handle("GET /api/inventory/filter", authMW(http.HandlerFunc(inventoryHandler.Filter)))
	mux.Handle("GET /api/inventory/stats", authMW(http.HandlerFunc(inventoryHandler.Stats)))
	mux.Handle("GET /api/inventory/manufacturer-stats", authMW(http.HandlerFunc(inventoryHandler.ManufacturerStats)))
	mux.Handle("GET /api/inventory/location-stats", authMW(http.HandlerFunc(inventoryHandler.LocationStats)))
	mux.Handle("GET /api/inventory/export", authMW(http.HandlerFunc(exportHandler.Export)))
	mux.Handle("GET /api/inventory/{id}", authMW(http.HandlerFunc(inventoryHandler.Get)))
	mux.Handle("PUT /api/inventory/{id}", authMW(requireManager(http.HandlerFunc(inventoryHandler.Update))))
	mux.Handle("PATCH /api/inventory/{id}", authMW(requireManager(http.HandlerFunc(inventoryHandler.Update))))
	mux.Handle("DELETE /api/inventory/{id}", authMW(requireManager(http.HandlerFunc(inventoryHandler.Delete))))
	mux.Handle("GET /api/inventory/{id}/history", authMW(http.HandlerFunc(inventoryHandler.History)))

	// Lifecycle (manager+).
	mux.Handle("PUT /api/inventory/{id}/sell", authMW(requireManager(http.HandlerFunc(lifecycleHandler.Sell))))
	mux.Handle("PUT /api/inventory/{id}/restock", authMW(requireManager(http.HandlerFunc(lifecycleHandler.Restock))))
	mux.Handle("POST /api/inventory/{id}/reserve", authMW(requireManager(http.HandlerFunc(lifecycleHandler.Reserve))))
	mux.Handle("POST /api/inventory/{id}/cancel-reservation", authMW(requireManager(http.HandlerFunc(lifecycleHandler.CancelReservation))))
	mux.Handle("POST /api/inventory/{id}/transfer", authMW(requireManager(http.HandlerFunc(lifecycleHandler.Transfer))))

	// Manufacturers: read (all roles), write (manager+).
	mux.Handle("GET /api/manufacturers", authMW(http.HandlerFunc(manufacturersHandler.List)))
	mux.Handle("POST /api/manufacturers", authMW(requireManager(http.HandlerFunc(manufacturersHandler.Create))))
	mux.Handle("GET /api/manufacturers/{id}", authMW(http.HandlerFunc(manufacturersHandler.Get)))
	mux.Handle("PUT /api/manufacturers/{id}", authMW(requireManager(http.HandlerFunc(manufacturersHandler.Update))))
	mux.Handle("DELETE /api/manufacturers/{id}", authMW(requireManager(http.HandlerFunc(manufacturersHandler.Delete))))
	mux.Handle("PUT /api/manufacturers/{id}/logo", authMW(requireManager(http.HandlerFunc(manufacturersHandler.UploadLogo))))
	mux.Handle("GET /api/manufacturers/{id}/logo", authMW(http.HandlerFunc(manufacturersHandler.GetLogo)))

	// Locations: read (all roles), write (manager+).
	mux.Handle("GET /api/locations", authMW(http.HandlerFunc(locationsHandler.List)))
	mux.Handle("POST /api/locations", authMW(requireManager(http.HandlerFunc(locationsHandler.Create))))
	mux.Handle("GET /api/locations/{id}", authMW(http.HandlerFunc(locationsHandler.Get)))
	mux.Handle("PUT /api/locations/{id}", authMW(requireManager(http.HandlerFunc(locationsHandler.Update))))
	mux.Handle("DELETE /api/locations/{id}", authMW(requireManager(http.HandlerFunc(locationsHandler.Delete))))

	// Transfer log (all roles).
	mux.Handle("GET /api/location-transfers", authMW(http.HandlerFunc(transfersHandler.List)))

	// Stock settings and alerts: read (all roles), write (manager+).
	mux.Handle("GET /api/stock-settings", authMW(http.HandlerFunc(alertsHandler.ListSettings)))
	mux.Handle("POST /api/stock-settings", authMW(requireManager(http.HandlerFunc(alertsHandler.CreateSetting))))
	mux.Handle("PUT /api/stock-settings/{id}", authMW(requireManager(http.HandlerFunc(alertsHandler.UpdateSetting))))
	mux.Handle("DELETE /api/stock-settings/{id}", authMW(requireManager(http.HandlerFunc(alertsHandler.DeleteSetting))))
	mux.Handle("GET /api/alerts", authMW(http.HandlerFunc(alertsHandler.ListAlerts)))
	mux.Handle("PUT /api/alerts/{id}/read", authMW(http.HandlerFunc(alertsHandler.MarkRead)))
	mux.Handle("DELETE /api/alerts/{id}", authMW(requireManager(http.HandlerFunc(alertsHandler.DeleteAlert))))
	mux.Handle("POST /api/alerts/check", authMW(requireManager(http.HandlerFunc(alertsHandler.Check))))

	// Appearance: read (all roles), write (admin).
	mux.Handle("GET /api/appearance", authMW(http.HandlerFunc(appearanceHandler.Get)))
	mux.Handle("PUT /api/appearance", authMW(requireAdmin(http.HandlerFunc(appearanceHandler.Update))))

	// Vision/voice (all roles).
	mux.Handle("POST /api/vision/extract-chassis", authMW(http.HandlerFunc(visionHandler.ExtractChassis)))
	mux.Handle("POST /api/voice/process", authMW(http.HandlerFunc(visionHandler.ProcessVoice)))

	return LoggingMiddleware(mux)
}
