package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fleetadmin/internal/domain"
)

type paymentService struct {
	repo         domain.PaymentRepository
	contractRepo domain.ContractRepository
	customerRepo domain.CustomerRepository
	notifier     domain.ReceiptNotifier
	audit        domain.AuditService
	logger       *slog.Logger
	now          func() time.Time
}

// NewPaymentService creates a PaymentService. notifier may be nil to skip receipts.
func NewPaymentService(repo domain.PaymentRepository, contractRepo domain.ContractRepository, customerRepo domain.CustomerRepository, notifier domain.ReceiptNotifier, audit domain.AuditService, logger *slog.Logger) domain.PaymentService {
	return &paymentService{
		repo:         repo,
		contractRepo: contractRepo,
		customerRepo: customerRepo,
		notifier:     notifier,
		audit:        audit,
		logger:       logger.With("component", "payments"),
		now:          time.Now,
	}
}

func (s *paymentService) ListPayments(ctx context.Context, filter domain.PaymentFilter, window domain.PageWindow) (domain.Page[*domain.Payment], error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return domain.Page[*domain.Payment]{}, invalidInput("unknown payment status %q", filter.Status)
	}
	page, err := s.repo.List(ctx, filter, window)
	if err != nil {
		return domain.Page[*domain.Payment]{}, fmt.Errorf("list payments: %w", err)
	}
	return page, nil
}

func (s *paymentService) GetPayment(ctx context.Context, id string) (*domain.Payment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *paymentService) RecordPayment(ctx context.Context, actorID string, in domain.RecordPaymentInput) (*domain.Payment, error) {
	if in.ContractID == "" {
		return nil, invalidInput("contract_id is required")
	}
	if in.AmountCents <= 0 {
		return nil, invalidInput("amount must be greater than zero")
	}
	if !in.Method.IsValid() {
		return nil, invalidInput("unknown payment method %q", in.Method)
	}

	contract, err := s.contractRepo.GetByID(ctx, in.ContractID)
	if err != nil {
		return nil, err
	}
	if contract.Status != domain.ContractActive {
		return nil, invalidInput("contract %s is %s", contract.Number, contract.Status)
	}

	now := s.now().UTC()
	paidAt := in.PaidAt
	if paidAt.IsZero() {
		paidAt = now
	}
	p := &domain.Payment{
		ContractID:  contract.ID,
		CustomerID:  contract.CustomerID,
		AmountCents: in.AmountCents,
		Method:      in.Method,
		Status:      domain.PaymentCompleted,
		PaidAt:      paidAt.UTC(),
		CreatedAt:   now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("record payment: %w", err)
	}
	s.audit.Record(ctx, actorID, domain.AuditPayment, domain.EntityPayment, p.ID, fmt.Sprintf("%s via %s on %s", formatCents(p.AmountCents), p.Method, contract.Number))
	s.sendReceipt(ctx, contract, p)
	return p, nil
}

// sendReceipt notifies the customer. The payment is already stored, so failures are only logged.
func (s *paymentService) sendReceipt(ctx context.Context, contract *domain.Contract, p *domain.Payment) {
	if s.notifier == nil {
		return
	}
	customer, err := s.customerRepo.GetByID(ctx, contract.CustomerID)
	if err != nil {
		s.logger.WarnContext(ctx, "receipt skipped: load customer", "payment_id", p.ID, "err", err)
		return
	}
	receipt := &domain.PaymentReceipt{
		PaymentID:      p.ID,
		ContractNumber: contract.Number,
		CustomerName:   customer.FullName,
		CustomerEmail:  customer.Email,
		Amount:         formatCents(p.AmountCents),
		Method:         string(p.Method),
		PaidAt:         domain.FormatTimestamp(p.PaidAt, time.UTC),
	}
	if err := s.notifier.NotifyPaymentReceipt(ctx, receipt); err != nil {
		s.logger.ErrorContext(ctx, "send payment receipt", "payment_id", p.ID, "err", err)
	}
}
