package domain

import (
	"context"
	"io"
	"math"
	"time"
)

// ContractStatus is the state of a financing contract.
type ContractStatus string

const (
	ContractActive    ContractStatus = "active"
	ContractClosed    ContractStatus = "closed"
	ContractDefaulted ContractStatus = "defaulted"
)

// IsValid reports whether s is a known contract status.
func (s ContractStatus) IsValid() bool {
	switch s {
	case ContractActive, ContractClosed, ContractDefaulted:
		return true
	}
	return false
}

// Contract finances one vehicle for one customer.
// swagger:model Contract
type Contract struct {
	ID             string         `json:"id"`
	Number         string         `json:"number"`
	CustomerID     string         `json:"customer_id"`
	VehicleID      string         `json:"vehicle_id"`
	PrincipalCents int64          `json:"principal_cents"`
	AnnualRateBps  int            `json:"annual_rate_bps"`
	TermMonths     int            `json:"term_months"`
	StartDate      time.Time      `json:"start_date"`
	Status         ContractStatus `json:"status"`
	DocumentKey    string         `json:"document_key,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// MonthlyInstallment returns the annuity payment in cents for the contract terms.
// A zero rate splits the principal evenly across the term.
func (c *Contract) MonthlyInstallment() int64 {
	if c.TermMonths <= 0 {
		return 0
	}
	principal := float64(c.PrincipalCents)
	n := float64(c.TermMonths)
	if c.AnnualRateBps <= 0 {
		return int64(math.Round(principal / n))
	}
	r := float64(c.AnnualRateBps) / 10000 / 12
	return int64(math.Round(principal * r / (1 - math.Pow(1+r, -n))))
}

// ContractFilter narrows a contract listing.
type ContractFilter struct {
	CustomerID string
	VehicleID  string
	Status     ContractStatus
}

// ContractRepository defines storage operations for contracts.
type ContractRepository interface {
	// Create inserts c and marks its vehicle leased as one step. It fails with
	// ErrVehicleUnavailable, leaving nothing written, unless the vehicle is available.
	Create(ctx context.Context, c *Contract) error
	GetByID(ctx context.Context, id string) (*Contract, error)
	List(ctx context.Context, filter ContractFilter, window PageWindow) (Page[*Contract], error)
	SetDocumentKey(ctx context.Context, id, key string, updatedAt time.Time) error
}

// CreateContractInput holds the terms of a new contract.
type CreateContractInput struct {
	CustomerID     string
	VehicleID      string
	PrincipalCents int64
	AnnualRateBps  int
	TermMonths     int
	StartDate      time.Time
}

// ContractDocument is an uploaded signed contract file.
type ContractDocument struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// DocumentStorage stores contract files in object storage.
type DocumentStorage interface {
	Upload(ctx context.Context, prefix string, doc ContractDocument) (key string, err error)
	PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// ContractService defines contract use cases.
type ContractService interface {
	ListContracts(ctx context.Context, filter ContractFilter, window PageWindow) (Page[*Contract], error)
	GetContract(ctx context.Context, id string) (*Contract, error)
	CreateContract(ctx context.Context, actorID string, in CreateContractInput) (*Contract, error)
	AttachDocument(ctx context.Context, actorID, id string, doc ContractDocument) (*Contract, error)
	DocumentURL(ctx context.Context, id string) (string, error)
}
