package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fleetadmin/internal/domain"
)

const minVehicleYear = 1950

type vehicleService struct {
	repo  domain.VehicleRepository
	audit domain.AuditService
	now   func() time.Time
}

// NewVehicleService creates a VehicleService backed by repo that records changes in audit.
func NewVehicleService(repo domain.VehicleRepository, audit domain.AuditService) domain.VehicleService {
	return &vehicleService{repo: repo, audit: audit, now: time.Now}
}

func (s *vehicleService) ListVehicles(ctx context.Context, filter domain.VehicleFilter, window domain.PageWindow) (domain.Page[*domain.Vehicle], error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return domain.Page[*domain.Vehicle]{}, invalidInput("unknown vehicle status %q", filter.Status)
	}
	filter.Search = strings.TrimSpace(filter.Search)
	page, err := s.repo.List(ctx, filter, window)
	if err != nil {
		return domain.Page[*domain.Vehicle]{}, fmt.Errorf("list vehicles: %w", err)
	}
	return page, nil
}

func (s *vehicleService) GetVehicle(ctx context.Context, id string) (*domain.Vehicle, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *vehicleService) CreateVehicle(ctx context.Context, actorID string, in domain.CreateVehicleInput) (*domain.Vehicle, error) {
	vin := strings.ToUpper(strings.TrimSpace(in.VIN))
	plate := strings.ToUpper(strings.TrimSpace(in.Plate))
	vehicleMake := strings.TrimSpace(in.Make)
	model := strings.TrimSpace(in.Model)

	now := s.now().UTC()
	switch {
	case !vinRegexp.MatchString(vin):
		return nil, invalidInput("vin must be 17 characters (letters I, O, Q not allowed)")
	case plate == "":
		return nil, invalidInput("plate is required")
	case vehicleMake == "" || model == "":
		return nil, invalidInput("make and model are required")
	case in.Year < minVehicleYear || in.Year > now.Year()+1:
		return nil, invalidInput("year must be between %d and %d", minVehicleYear, now.Year()+1)
	}

	v := domain.NewVehicle(vin, plate, vehicleMake, model, in.Year, now)
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, fmt.Errorf("create vehicle: %w", err)
	}
	s.audit.Record(ctx, actorID, domain.AuditCreate, domain.EntityVehicle, v.ID, fmt.Sprintf("registered %s %s (%s)", v.Make, v.Model, v.Plate))
	return v, nil
}

func (s *vehicleService) UpdateVehicleStatus(ctx context.Context, actorID, id string, status domain.VehicleStatus) (*domain.Vehicle, error) {
	if !status.IsValid() {
		return nil, invalidInput("unknown vehicle status %q", status)
	}
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v.Status == status {
		return v, nil
	}
	now := s.now().UTC()
	if err := s.repo.UpdateStatus(ctx, id, status, now); err != nil {
		return nil, fmt.Errorf("update vehicle status: %w", err)
	}
	previous := v.Status
	v.Status = status
	v.UpdatedAt = now
	s.audit.Record(ctx, actorID, domain.AuditUpdate, domain.EntityVehicle, v.ID, fmt.Sprintf("status %s -> %s", previous, status))
	return v, nil
}
