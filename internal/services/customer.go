package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fleetadmin/internal/domain"
)

type customerService struct {
	repo  domain.CustomerRepository
	audit domain.AuditService
}

// NewCustomerService creates a CustomerService backed by repo.
func NewCustomerService(repo domain.CustomerRepository, audit domain.AuditService) domain.CustomerService {
	return &customerService{repo: repo, audit: audit}
}

func (s *customerService) ListCustomers(ctx context.Context, filter domain.CustomerFilter, window domain.PageWindow) (domain.Page[*domain.Customer], error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return domain.Page[*domain.Customer]{}, invalidInput("unknown customer status %q", filter.Status)
	}
	filter.Search = strings.TrimSpace(filter.Search)
	page, err := s.repo.List(ctx, filter, window)
	if err != nil {
		return domain.Page[*domain.Customer]{}, fmt.Errorf("list customers: %w", err)
	}
	return page, nil
}

func (s *customerService) GetCustomer(ctx context.Context, id string) (*domain.Customer, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *customerService) CreateCustomer(ctx context.Context, actorID, fullName, email, phone string) (*domain.Customer, error) {
	fullName = strings.TrimSpace(fullName)
	email = normalizeEmail(email)
	phone = strings.TrimSpace(phone)

	if fullName == "" {
		return nil, invalidInput("full_name is required")
	}
	if !emailRegexp.MatchString(email) {
		return nil, invalidInput("invalid email format")
	}
	if phone != "" && !phoneRegexp.MatchString(phone) {
		return nil, invalidInput("invalid phone format")
	}

	c := domain.NewCustomer(fullName, email, phone, time.Now().UTC())
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	s.audit.Record(ctx, actorID, domain.AuditCreate, domain.EntityCustomer, c.ID, "customer "+c.Email)
	return c, nil
}
