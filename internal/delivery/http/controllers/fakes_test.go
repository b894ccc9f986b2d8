package controllers

import (
	"context"
	"io"
	"log/slog"

	"fleetadmin/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

const (
	testAdminID    = "6f1c2a9e-3b7d-4c1a-9e2f-0a1b2c3d4e5f"
	testVehicleID  = "0b9d8c7e-6f5a-4b3c-8d2e-1f0a9b8c7d6e"
	testCustomerID = "1c2d3e4f-5a6b-4c7d-8e9f-0a1b2c3d4e5f"
	testContractID = "2d3e4f5a-6b7c-4d8e-9f0a-1b2c3d4e5f6a"
	testPaymentID  = "3e4f5a6b-7c8d-4e9f-8a1b-2c3d4e5f6a7b"
)

type fakeVehicleService struct {
	page        domain.Page[*domain.Vehicle]
	vehicle     *domain.Vehicle
	err         error
	lastFilter  domain.VehicleFilter
	lastWindow  domain.PageWindow
	lastActorID string
	lastID      string
	lastInput   domain.CreateVehicleInput
	lastStatus  domain.VehicleStatus
}

func (f *fakeVehicleService) ListVehicles(_ context.Context, filter domain.VehicleFilter, window domain.PageWindow) (domain.Page[*domain.Vehicle], error) {
	f.lastFilter, f.lastWindow = filter, window
	return f.page, f.err
}

func (f *fakeVehicleService) GetVehicle(_ context.Context, id string) (*domain.Vehicle, error) {
	f.lastID = id
	return f.vehicle, f.err
}

func (f *fakeVehicleService) CreateVehicle(_ context.Context, actorID string, in domain.CreateVehicleInput) (*domain.Vehicle, error) {
	f.lastActorID, f.lastInput = actorID, in
	return f.vehicle, f.err
}

func (f *fakeVehicleService) UpdateVehicleStatus(_ context.Context, actorID, id string, status domain.VehicleStatus) (*domain.Vehicle, error) {
	f.lastActorID, f.lastID, f.lastStatus = actorID, id, status
	return f.vehicle, f.err
}

type fakeCustomerService struct {
	page        domain.Page[*domain.Customer]
	customer    *domain.Customer
	err         error
	lastFilter  domain.CustomerFilter
	lastWindow  domain.PageWindow
	lastActorID string
	lastEmail   string
}

func (f *fakeCustomerService) ListCustomers(_ context.Context, filter domain.CustomerFilter, window domain.PageWindow) (domain.Page[*domain.Customer], error) {
	f.lastFilter, f.lastWindow = filter, window
	return f.page, f.err
}

func (f *fakeCustomerService) GetCustomer(_ context.Context, _ string) (*domain.Customer, error) {
	return f.customer, f.err
}

func (f *fakeCustomerService) CreateCustomer(_ context.Context, actorID, _, email, _ string) (*domain.Customer, error) {
	f.lastActorID, f.lastEmail = actorID, email
	return f.customer, f.err
}

type fakeContractService struct {
	page        domain.Page[*domain.Contract]
	contract    *domain.Contract
	url         string
	err         error
	lastFilter  domain.ContractFilter
	lastInput   domain.CreateContractInput
	lastActorID string
	lastDoc     domain.ContractDocument
	lastDocBody []byte
}

func (f *fakeContractService) ListContracts(_ context.Context, filter domain.ContractFilter, _ domain.PageWindow) (domain.Page[*domain.Contract], error) {
	f.lastFilter = filter
	return f.page, f.err
}

func (f *fakeContractService) GetContract(_ context.Context, _ string) (*domain.Contract, error) {
	return f.contract, f.err
}

func (f *fakeContractService) CreateContract(_ context.Context, actorID string, in domain.CreateContractInput) (*domain.Contract, error) {
	f.lastActorID, f.lastInput = actorID, in
	return f.contract, f.err
}

func (f *fakeContractService) AttachDocument(_ context.Context, actorID, _ string, doc domain.ContractDocument) (*domain.Contract, error) {
	f.lastActorID, f.lastDoc = actorID, doc
	if doc.Body != nil {
		f.lastDocBody, _ = io.ReadAll(doc.Body)
	}
	return f.contract, f.err
}

func (f *fakeContractService) DocumentURL(_ context.Context, _ string) (string, error) {
	return f.url, f.err
}

type fakePaymentService struct {
	page        domain.Page[*domain.Payment]
	payment     *domain.Payment
	err         error
	lastFilter  domain.PaymentFilter
	lastInput   domain.RecordPaymentInput
	lastActorID string
}

func (f *fakePaymentService) ListPayments(_ context.Context, filter domain.PaymentFilter, _ domain.PageWindow) (domain.Page[*domain.Payment], error) {
	f.lastFilter = filter
	return f.page, f.err
}

func (f *fakePaymentService) GetPayment(_ context.Context, _ string) (*domain.Payment, error) {
	return f.payment, f.err
}

func (f *fakePaymentService) RecordPayment(_ context.Context, actorID string, in domain.RecordPaymentInput) (*domain.Payment, error) {
	f.lastActorID, f.lastInput = actorID, in
	return f.payment, f.err
}

type fakeAuditService struct {
	page       domain.Page[*domain.AuditLogView]
	err        error
	lastFilter domain.AuditLogFilter
	lastWindow domain.PageWindow
}

func (f *fakeAuditService) Record(context.Context, string, domain.AuditAction, string, string, string) {
}

func (f *fakeAuditService) ListAuditLogs(_ context.Context, filter domain.AuditLogFilter, window domain.PageWindow) (domain.Page[*domain.AuditLogView], error) {
	f.lastFilter, f.lastWindow = filter, window
	return f.page, f.err
}

type fakeAuthService struct {
	token     string
	admin     *domain.Admin
	err       error
	lastEmail string
}

func (f *fakeAuthService) Login(_ context.Context, email, _ string) (string, *domain.Admin, error) {
	f.lastEmail = email
	return f.token, f.admin, f.err
}

func (f *fakeAuthService) EnsureAdmin(context.Context, string, string, string) (*domain.Admin, error) {
	return f.admin, f.err
}
