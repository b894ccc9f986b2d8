package domain

import (
	"context"
	"time"
)

// PaymentMethod is how a customer paid.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCard     PaymentMethod = "card"
	PaymentTransfer PaymentMethod = "transfer"
)

// IsValid reports whether m is a known payment method.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer:
		return true
	}
	return false
}

// PaymentStatus is the settlement state of a payment.
type PaymentStatus string

const (
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// IsValid reports whether s is a known payment status.
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentCompleted, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// Payment is an installment paid against a contract.
// swagger:model Payment
type Payment struct {
	ID          string        `json:"id"`
	ContractID  string        `json:"contract_id"`
	CustomerID  string        `json:"customer_id"`
	AmountCents int64         `json:"amount_cents"`
	Method      PaymentMethod `json:"method"`
	Status      PaymentStatus `json:"status"`
	PaidAt      time.Time     `json:"paid_at"`
	CreatedAt   time.Time     `json:"created_at"`
}

// PaymentFilter narrows a payment listing.
type PaymentFilter struct {
	ContractID string
	CustomerID string
	Status     PaymentStatus
}

// PaymentRepository defines storage operations for payments.
type PaymentRepository interface {
	Create(ctx context.Context, p *Payment) error
	GetByID(ctx context.Context, id string) (*Payment, error)
	List(ctx context.Context, filter PaymentFilter, window PageWindow) (Page[*Payment], error)
}

// RecordPaymentInput holds a payment to record against a contract.
type RecordPaymentInput struct {
	ContractID  string
	AmountCents int64
	Method      PaymentMethod
	PaidAt      time.Time
}

// PaymentService defines payment use cases.
type PaymentService interface {
	ListPayments(ctx context.Context, filter PaymentFilter, window PageWindow) (Page[*Payment], error)
	GetPayment(ctx context.Context, id string) (*Payment, error)
	RecordPayment(ctx context.Context, actorID string, in RecordPaymentInput) (*Payment, error)
}
