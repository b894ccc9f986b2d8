package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"fleetadmin/internal/delivery/http/controllers"
	"fleetadmin/internal/delivery/http/middleware"
	"fleetadmin/internal/domain"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Auth      *controllers.AuthController
	Vehicles  *controllers.VehicleController
	Customers *controllers.CustomerController
	Contracts *controllers.ContractController
	Payments  *controllers.PaymentController
	AuditLogs *controllers.AuditLogController
	Health    *controllers.HealthController
}

// NewRouter initializes the HTTP router with all application routes.
// Every /api/v1 route except login requires a bearer token.
func NewRouter(c Controllers, verifier domain.TokenVerifier, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	// Auth
	mux.HandleFunc("POST /api/v1/auth/login", c.Auth.Login)

	// Vehicles
	mux.HandleFunc("GET /api/v1/vehicles", auth(c.Vehicles.ListVehicles))
	mux.HandleFunc("POST /api/v1/vehicles", auth(c.Vehicles.CreateVehicle))
	mux.HandleFunc("GET /api/v1/vehicles/{id}", auth(c.Vehicles.GetVehicle))
	mux.HandleFunc("PATCH /api/v1/vehicles/{id}/status", auth(c.Vehicles.UpdateVehicleStatus))

	// Customers
	mux.HandleFunc("GET /api/v1/customers", auth(c.Customers.ListCustomers))
	mux.HandleFunc("POST /api/v1/customers", auth(c.Customers.CreateCustomer))
	mux.HandleFunc("GET /api/v1/customers/{id}", auth(c.Customers.GetCustomer))

	// Contracts
	mux.HandleFunc("GET /api/v1/contracts", auth(c.Contracts.ListContracts))
	mux.HandleFunc("POST /api/v1/contracts", auth(c.Contracts.CreateContract))
	mux.HandleFunc("GET /api/v1/contracts/{id}", auth(c.Contracts.GetContract))
	mux.HandleFunc("POST /api/v1/contracts/{id}/document", auth(c.Contracts.UploadDocument))
	mux.HandleFunc("GET /api/v1/contracts/{id}/document", auth(c.Contracts.GetDocumentURL))

	// Payments
	mux.HandleFunc("GET /api/v1/payments", auth(c.Payments.ListPayments))
	mux.HandleFunc("POST /api/v1/payments", auth(c.Payments.RecordPayment))
	mux.HandleFunc("GET /api/v1/payments/{id}", auth(c.Payments.GetPayment))

	// Activity feed
	mux.HandleFunc("GET /api/v1/audit-logs", auth(c.AuditLogs.ListAuditLogs))

	mux.HandleFunc("GET /health", c.Health.Health)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
