package memory

import (
	"context"
	"strings"
	"time"

	"fleetadmin/internal/domain"
)

type vehicleRepository struct{ s *Store }

func (r *vehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.vehicles {
		if strings.EqualFold(existing.VIN, v.VIN) {
			return domain.ErrConflict
		}
	}
	v.ID = newID()
	r.s.vehicles[v.ID] = *v
	return nil
}

func (r *vehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	v, ok := r.s.vehicles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &v, nil
}

func (r *vehicleRepository) List(ctx context.Context, filter domain.VehicleFilter, window domain.PageWindow) (domain.Page[*domain.Vehicle], error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	items := make([]*domain.Vehicle, 0, len(r.s.vehicles))
	for _, v := range r.s.vehicles {
		if filter.Status != "" && v.Status != filter.Status {
			continue
		}
		if !containsFold(filter.Search, v.Plate, v.VIN, v.Make, v.Model) {
			continue
		}
		items = append(items, &v)
	}
	sortNewestFirst(items, func(v *domain.Vehicle) time.Time { return v.CreatedAt }, func(v *domain.Vehicle) string { return v.ID })
	return paginate(items, window), nil
}

func (r *vehicleRepository) UpdateStatus(ctx context.Context, id string, status domain.VehicleStatus, updatedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.vehicles[id]
	if !ok {
		return domain.ErrNotFound
	}
	v.Status = status
	v.UpdatedAt = updatedAt
	r.s.vehicles[id] = v
	return nil
}

type customerRepository struct{ s *Store }

func (r *customerRepository) Create(ctx context.Context, c *domain.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.customers {
		if strings.EqualFold(existing.Email, c.Email) {
			return domain.ErrConflict
		}
	}
	c.ID = newID()
	r.s.customers[c.ID] = *c
	return nil
}

func (r *customerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.customers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r *customerRepository) List(ctx context.Context, filter domain.CustomerFilter, window domain.PageWindow) (domain.Page[*domain.Customer], error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	items := make([]*domain.Customer, 0, len(r.s.customers))
	for _, c := range r.s.customers {
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		if !containsFold(filter.Search, c.FullName, c.Email, c.Phone) {
			continue
		}
		items = append(items, &c)
	}
	sortNewestFirst(items, func(c *domain.Customer) time.Time { return c.CreatedAt }, func(c *domain.Customer) string { return c.ID })
	return paginate(items, window), nil
}

type contractRepository struct{ s *Store }

func (r *contractRepository) Create(ctx context.Context, c *domain.Contract) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.vehicles[c.VehicleID]
	if !ok || v.Status != domain.VehicleAvailable {
		return domain.ErrVehicleUnavailable
	}
	for _, existing := range r.s.contracts {
		if existing.Number == c.Number {
			return domain.ErrConflict
		}
	}
	v.Status = domain.VehicleLeased
	v.UpdatedAt = c.CreatedAt
	r.s.vehicles[v.ID] = v
	c.ID = newID()
	r.s.contracts[c.ID] = *c
	return nil
}

func (r *contractRepository) GetByID(ctx context.Context, id string) (*domain.Contract, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.contracts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r *contractRepository) List(ctx context.Context, filter domain.ContractFilter, window domain.PageWindow) (domain.Page[*domain.Contract], error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	items := make([]*domain.Contract, 0, len(r.s.contracts))
	for _, c := range r.s.contracts {
		if filter.CustomerID != "" && c.CustomerID != filter.CustomerID {
			continue
		}
		if filter.VehicleID != "" && c.VehicleID != filter.VehicleID {
			continue
		}
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		items = append(items, &c)
	}
	sortNewestFirst(items, func(c *domain.Contract) time.Time { return c.CreatedAt }, func(c *domain.Contract) string { return c.ID })
	return paginate(items, window), nil
}

func (r *contractRepository) SetDocumentKey(ctx context.Context, id, key string, updatedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.contracts[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.DocumentKey = key
	c.UpdatedAt = updatedAt
	r.s.contracts[id] = c
	return nil
}

type paymentRepository struct{ s *Store }

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p.ID = newID()
	r.s.payments[p.ID] = *p
	return nil
}

func (r *paymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.payments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (r *paymentRepository) List(ctx context.Context, filter domain.PaymentFilter, window domain.PageWindow) (domain.Page[*domain.Payment], error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	items := make([]*domain.Payment, 0, len(r.s.payments))
	for _, p := range r.s.payments {
		if filter.ContractID != "" && p.ContractID != filter.ContractID {
			continue
		}
		if filter.CustomerID != "" && p.CustomerID != filter.CustomerID {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		items = append(items, &p)
	}
	sortNewestFirst(items, func(p *domain.Payment) time.Time { return p.PaidAt }, func(p *domain.Payment) string { return p.ID })
	return paginate(items, window), nil
}

type auditLogRepository struct{ s *Store }

func (r *auditLogRepository) Create(ctx context.Context, l *domain.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l.ID = newID()
	r.s.auditLogs[l.ID] = *l
	return nil
}

func (r *auditLogRepository) List(ctx context.Context, filter domain.AuditLogFilter, window domain.PageWindow) (domain.Page[*domain.AuditLog], error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	items := make([]*domain.AuditLog, 0, len(r.s.auditLogs))
	for _, l := range r.s.auditLogs {
		if filter.EntityType != "" && l.EntityType != filter.EntityType {
			continue
		}
		if filter.EntityID != "" && l.EntityID != filter.EntityID {
			continue
		}
		if filter.ActorID != "" && l.ActorID != filter.ActorID {
			continue
		}
		if filter.Action != "" && l.Action != filter.Action {
			continue
		}
		items = append(items, &l)
	}
	sortNewestFirst(items, func(l *domain.AuditLog) time.Time { return l.CreatedAt }, func(l *domain.AuditLog) string { return l.ID })
	return paginate(items, window), nil
}

type adminRepository struct{ s *Store }

func (r *adminRepository) Create(ctx context.Context, a *domain.Admin) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	email := strings.ToLower(a.Email)
	if _, ok := r.s.admins[email]; ok {
		return domain.ErrConflict
	}
	a.ID = newID()
	r.s.admins[email] = *a
	return nil
}

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.admins[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}
