package domain

import (
	"context"
	"time"
)

// CustomerStatus is the standing of a customer with the business.
type CustomerStatus string

const (
	CustomerActive  CustomerStatus = "active"
	CustomerBlocked CustomerStatus = "blocked"
)

// IsValid reports whether s is a known customer status.
func (s CustomerStatus) IsValid() bool {
	return s == CustomerActive || s == CustomerBlocked
}

// Customer is a person leasing or financing a vehicle.
// swagger:model Customer
type Customer struct {
	ID        string         `json:"id"`
	FullName  string         `json:"full_name"`
	Email     string         `json:"email"`
	Phone     string         `json:"phone"`
	Status    CustomerStatus `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// NewCustomer returns an active Customer. ID is set by the repository on create.
func NewCustomer(fullName, email, phone string, createdAt time.Time) *Customer {
	return &Customer{
		FullName:  fullName,
		Email:     email,
		Phone:     phone,
		Status:    CustomerActive,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

// CustomerFilter narrows a customer listing.
type CustomerFilter struct {
	Status CustomerStatus
	Search string
}

// CustomerRepository defines storage operations for customers.
type CustomerRepository interface {
	Create(ctx context.Context, c *Customer) error
	GetByID(ctx context.Context, id string) (*Customer, error)
	List(ctx context.Context, filter CustomerFilter, window PageWindow) (Page[*Customer], error)
}

// CustomerService defines customer use cases.
type CustomerService interface {
	ListCustomers(ctx context.Context, filter CustomerFilter, window PageWindow) (Page[*Customer], error)
	GetCustomer(ctx context.Context, id string) (*Customer, error)
	CreateCustomer(ctx context.Context, actorID, fullName, email, phone string) (*Customer, error)
}
