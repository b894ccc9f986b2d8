package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"fleetadmin/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeAudit implements domain.AuditService and keeps recorded entries.
type fakeAudit struct {
	mu      sync.Mutex
	entries []*domain.AuditLog
}

func (f *fakeAudit) Record(ctx context.Context, actorID string, action domain.AuditAction, entityType, entityID, details string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, &domain.AuditLog{ActorID: actorID, Action: action, EntityType: entityType, EntityID: entityID, Details: details})
}

func (f *fakeAudit) ListAuditLogs(ctx context.Context, filter domain.AuditLogFilter, window domain.PageWindow) (domain.Page[*domain.AuditLogView], error) {
	return domain.Page[*domain.AuditLogView]{}, nil
}

// fakeVehicleRepo implements domain.VehicleRepository for tests.
type fakeVehicleRepo struct {
	byID      map[string]*domain.Vehicle
	createErr error
	listErr   error
	lastList  domain.VehicleFilter
	lastWin   domain.PageWindow
	seq       int
}

func newFakeVehicleRepo(vs ...*domain.Vehicle) *fakeVehicleRepo {
	f := &fakeVehicleRepo{byID: make(map[string]*domain.Vehicle)}
	for _, v := range vs {
		f.byID[v.ID] = v
	}
	return f
}

func (f *fakeVehicleRepo) Create(ctx context.Context, v *domain.Vehicle) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.seq++
	v.ID = fmt.Sprintf("veh-%d", f.seq)
	f.byID[v.ID] = v
	return nil
}

func (f *fakeVehicleRepo) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	if v, ok := f.byID[id]; ok {
		cp := *v
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeVehicleRepo) List(ctx context.Context, filter domain.VehicleFilter, window domain.PageWindow) (domain.Page[*domain.Vehicle], error) {
	f.lastList, f.lastWin = filter, window
	if f.listErr != nil {
		return domain.Page[*domain.Vehicle]{}, f.listErr
	}
	items := make([]*domain.Vehicle, 0, len(f.byID))
	for _, v := range f.byID {
		items = append(items, v)
	}
	return domain.Page[*domain.Vehicle]{Items: items, Total: len(items)}, nil
}

func (f *fakeVehicleRepo) UpdateStatus(ctx context.Context, id string, status domain.VehicleStatus, updatedAt time.Time) error {
	v, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	v.Status = status
	v.UpdatedAt = updatedAt
	return nil
}

// fakeCustomerRepo implements domain.CustomerRepository for tests.
type fakeCustomerRepo struct {
	byID      map[string]*domain.Customer
	createErr error
	seq       int
}

func newFakeCustomerRepo(cs ...*domain.Customer) *fakeCustomerRepo {
	f := &fakeCustomerRepo{byID: make(map[string]*domain.Customer)}
	for _, c := range cs {
		f.byID[c.ID] = c
	}
	return f
}

func (f *fakeCustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.seq++
	c.ID = fmt.Sprintf("cus-%d", f.seq)
	f.byID[c.ID] = c
	return nil
}

func (f *fakeCustomerRepo) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	if c, ok := f.byID[id]; ok {
		return c, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeCustomerRepo) List(ctx context.Context, filter domain.CustomerFilter, window domain.PageWindow) (domain.Page[*domain.Customer], error) {
	return domain.Page[*domain.Customer]{}, nil
}

// fakeContractRepo implements domain.ContractRepository for tests.
type fakeContractRepo struct {
	byID     map[string]*domain.Contract
	vehicles *fakeVehicleRepo
	seq      int
}

func newFakeContractRepo(cs ...*domain.Contract) *fakeContractRepo {
	f := &fakeContractRepo{byID: make(map[string]*domain.Contract)}
	for _, c := range cs {
		f.byID[c.ID] = c
	}
	return f
}

func (f *fakeContractRepo) Create(ctx context.Context, c *domain.Contract) error {
	if f.vehicles != nil {
		v, ok := f.vehicles.byID[c.VehicleID]
		if !ok || v.Status != domain.VehicleAvailable {
			return domain.ErrVehicleUnavailable
		}
		v.Status = domain.VehicleLeased
		v.UpdatedAt = c.CreatedAt
	}
	f.seq++
	c.ID = fmt.Sprintf("con-%d", f.seq)
	f.byID[c.ID] = c
	return nil
}

func (f *fakeContractRepo) GetByID(ctx context.Context, id string) (*domain.Contract, error) {
	if c, ok := f.byID[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeContractRepo) List(ctx context.Context, filter domain.ContractFilter, window domain.PageWindow) (domain.Page[*domain.Contract], error) {
	return domain.Page[*domain.Contract]{}, nil
}

func (f *fakeContractRepo) SetDocumentKey(ctx context.Context, id, key string, updatedAt time.Time) error {
	c, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.DocumentKey = key
	c.UpdatedAt = updatedAt
	return nil
}

// fakePaymentRepo implements domain.PaymentRepository for tests.
type fakePaymentRepo struct {
	created []*domain.Payment
}

func (f *fakePaymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	p.ID = fmt.Sprintf("pay-%d", len(f.created)+1)
	f.created = append(f.created, p)
	return nil
}

func (f *fakePaymentRepo) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	for _, p := range f.created {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakePaymentRepo) List(ctx context.Context, filter domain.PaymentFilter, window domain.PageWindow) (domain.Page[*domain.Payment], error) {
	return domain.Page[*domain.Payment]{Items: f.created, Total: len(f.created)}, nil
}

// fakeAuditRepo implements domain.AuditLogRepository for tests.
type fakeAuditRepo struct {
	entries   []*domain.AuditLog
	createErr error
}

func (f *fakeAuditRepo) Create(ctx context.Context, l *domain.AuditLog) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.entries = append(f.entries, l)
	return nil
}

func (f *fakeAuditRepo) List(ctx context.Context, filter domain.AuditLogFilter, window domain.PageWindow) (domain.Page[*domain.AuditLog], error) {
	return domain.Page[*domain.AuditLog]{Items: f.entries, Total: len(f.entries)}, nil
}

// fakeAdminRepo implements domain.AdminRepository for tests.
type fakeAdminRepo struct {
	byEmail map[string]*domain.Admin
	getErr  error
}

func (f *fakeAdminRepo) Create(ctx context.Context, a *domain.Admin) error {
	if f.byEmail == nil {
		f.byEmail = make(map[string]*domain.Admin)
	}
	a.ID = "adm-" + a.Email
	f.byEmail[a.Email] = a
	return nil
}

func (f *fakeAdminRepo) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if a, ok := f.byEmail[email]; ok {
		return a, nil
	}
	return nil, domain.ErrNotFound
}

// fakePasswordHasher implements domain.PasswordHasher for tests.
type fakePasswordHasher struct{}

func (fakePasswordHasher) GenerateSalt() (string, error) { return "salt", nil }
func (fakePasswordHasher) Hash(salt, password string) (string, error) {
	return salt + ":" + password, nil
}
func (fakePasswordHasher) Compare(hash, salt, password string) error {
	if hash != salt+":"+password {
		return errors.New("mismatch")
	}
	return nil
}

// fakeTokenIssuer implements domain.TokenIssuer for tests.
type fakeTokenIssuer struct {
	roles []string
	err   error
}

func (f *fakeTokenIssuer) Issue(adminID, email string, roles []string, expiry time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.roles = roles
	return "token-" + adminID, nil
}

// fakeStorage implements domain.DocumentStorage for tests.
type fakeStorage struct {
	uploaded  map[string][]byte
	uploadErr error
}

func (f *fakeStorage) Upload(ctx context.Context, prefix string, doc domain.ContractDocument) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	body, err := io.ReadAll(doc.Body)
	if err != nil {
		return "", err
	}
	if f.uploaded == nil {
		f.uploaded = make(map[string][]byte)
	}
	key := prefix + "/" + doc.FileName
	f.uploaded[key] = body
	return key, nil
}

func (f *fakeStorage) PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return "https://files.test/" + key, nil
}

// fakeNotifier implements domain.ReceiptNotifier for tests.
type fakeNotifier struct {
	receipts []*domain.PaymentReceipt
	err      error
}

func (f *fakeNotifier) NotifyPaymentReceipt(ctx context.Context, r *domain.PaymentReceipt) error {
	f.receipts = append(f.receipts, r)
	return f.err
}
