package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"path"
	"strings"
	"time"

	"fleetadmin/internal/domain"
)

const (
	contractNumberSuffixLength = 4
	maxContractTermMonths      = 120
	maxContractRateBps         = 10000
	maxDocumentSize            = 10 << 20
	documentURLExpiry          = 15 * time.Minute
)

var contractNumberAlphabet = []rune("ABCDEFGHJKLMNPQRSTUVWXYZ23456789")

type contractService struct {
	repo           domain.ContractRepository
	customerRepo   domain.CustomerRepository
	vehicleRepo    domain.VehicleRepository
	storage        domain.DocumentStorage
	audit          domain.AuditService
	contextTimeout time.Duration
	now            func() time.Time
}

// NewContractService creates a ContractService. storage may be nil, in which case
// document operations fail with domain.ErrInvalidInput.
func NewContractService(repo domain.ContractRepository, customerRepo domain.CustomerRepository, vehicleRepo domain.VehicleRepository, storage domain.DocumentStorage, audit domain.AuditService, timeout time.Duration) domain.ContractService {
	return &contractService{
		repo:           repo,
		customerRepo:   customerRepo,
		vehicleRepo:    vehicleRepo,
		storage:        storage,
		audit:          audit,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *contractService) ListContracts(ctx context.Context, filter domain.ContractFilter, window domain.PageWindow) (domain.Page[*domain.Contract], error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return domain.Page[*domain.Contract]{}, invalidInput("unknown contract status %q", filter.Status)
	}
	page, err := s.repo.List(ctx, filter, window)
	if err != nil {
		return domain.Page[*domain.Contract]{}, fmt.Errorf("list contracts: %w", err)
	}
	return page, nil
}

func (s *contractService) GetContract(ctx context.Context, id string) (*domain.Contract, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *contractService) CreateContract(ctx context.Context, actorID string, in domain.CreateContractInput) (*domain.Contract, error) {
	switch {
	case in.CustomerID == "" || in.VehicleID == "":
		return nil, invalidInput("customer_id and vehicle_id are required")
	case in.PrincipalCents <= 0:
		return nil, invalidInput("principal must be greater than zero")
	case in.AnnualRateBps < 0 || in.AnnualRateBps > maxContractRateBps:
		return nil, invalidInput("annual rate must be between 0 and %d bps", maxContractRateBps)
	case in.TermMonths <= 0 || in.TermMonths > maxContractTermMonths:
		return nil, invalidInput("term must be between 1 and %d months", maxContractTermMonths)
	}

	customer, err := s.customerRepo.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer.Status != domain.CustomerActive {
		return nil, invalidInput("customer %s is %s", customer.ID, customer.Status)
	}
	vehicle, err := s.vehicleRepo.GetByID(ctx, in.VehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle.Status != domain.VehicleAvailable {
		return nil, invalidInput("vehicle %s is %s", vehicle.ID, vehicle.Status)
	}

	now := s.now().UTC()
	number, err := generateContractNumber(now)
	if err != nil {
		return nil, fmt.Errorf("generate contract number: %w", err)
	}
	start := in.StartDate
	if start.IsZero() {
		start = now
	}
	c := &domain.Contract{
		Number:         number,
		CustomerID:     customer.ID,
		VehicleID:      vehicle.ID,
		PrincipalCents: in.PrincipalCents,
		AnnualRateBps:  in.AnnualRateBps,
		TermMonths:     in.TermMonths,
		StartDate:      start.UTC(),
		Status:         domain.ContractActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		if errors.Is(err, domain.ErrVehicleUnavailable) {
			return nil, fmt.Errorf("vehicle %s: %w", vehicle.ID, err)
		}
		return nil, fmt.Errorf("create contract: %w", err)
	}
	s.audit.Record(ctx, actorID, domain.AuditCreate, domain.EntityContract, c.ID, fmt.Sprintf("contract %s for vehicle %s", c.Number, vehicle.Plate))
	return c, nil
}

func (s *contractService) AttachDocument(ctx context.Context, actorID, id string, doc domain.ContractDocument) (*domain.Contract, error) {
	if s.storage == nil {
		return nil, invalidInput("document storage is not configured")
	}
	if doc.Body == nil || doc.Size <= 0 {
		return nil, invalidInput("document is empty")
	}
	if doc.Size > maxDocumentSize {
		return nil, invalidInput("document exceeds %d bytes", maxDocumentSize)
	}
	if doc.ContentType != "application/pdf" && !strings.EqualFold(path.Ext(doc.FileName), ".pdf") {
		return nil, invalidInput("document must be a PDF")
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	key, err := s.storage.Upload(ctx, "contracts/"+c.ID, doc)
	if err != nil {
		return nil, fmt.Errorf("upload contract document: %w", err)
	}
	now := s.now().UTC()
	if err := s.repo.SetDocumentKey(ctx, c.ID, key, now); err != nil {
		return nil, fmt.Errorf("save document key: %w", err)
	}
	c.DocumentKey = key
	c.UpdatedAt = now
	s.audit.Record(ctx, actorID, domain.AuditUpload, domain.EntityContract, c.ID, "document "+doc.FileName)
	return c, nil
}

func (s *contractService) DocumentURL(ctx context.Context, id string) (string, error) {
	if s.storage == nil {
		return "", invalidInput("document storage is not configured")
	}
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if c.DocumentKey == "" {
		return "", fmt.Errorf("contract %s has no document: %w", c.ID, domain.ErrNotFound)
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	url, err := s.storage.PresignedURL(ctx, c.DocumentKey, documentURLExpiry)
	if err != nil {
		return "", fmt.Errorf("presign document url: %w", err)
	}
	return url, nil
}

// generateContractNumber returns FC-YYYYMMDD-XXXX with a random suffix.
func generateContractNumber(now time.Time) (string, error) {
	b := make([]rune, contractNumberSuffixLength)
	max := big.NewInt(int64(len(contractNumberAlphabet)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = contractNumberAlphabet[n.Int64()]
	}
	return "FC-" + now.Format("20060102") + "-" + string(b), nil
}
