package domain

import (
	"context"
	"time"
)

// VehicleStatus is the lifecycle state of a fleet vehicle.
type VehicleStatus string

const (
	VehicleAvailable   VehicleStatus = "available"
	VehicleLeased      VehicleStatus = "leased"
	VehicleMaintenance VehicleStatus = "maintenance"
	VehicleRetired     VehicleStatus = "retired"
)

// IsValid reports whether s is a known vehicle status.
func (s VehicleStatus) IsValid() bool {
	switch s {
	case VehicleAvailable, VehicleLeased, VehicleMaintenance, VehicleRetired:
		return true
	}
	return false
}

// Vehicle is a car in the fleet.
// swagger:model Vehicle
type Vehicle struct {
	ID        string        `json:"id"`
	VIN       string        `json:"vin"`
	Plate     string        `json:"plate"`
	Make      string        `json:"make"`
	Model     string        `json:"model"`
	Year      int           `json:"year"`
	Status    VehicleStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// NewVehicle returns an available Vehicle. ID is set by the repository on create.
func NewVehicle(vin, plate, vehicleMake, model string, year int, createdAt time.Time) *Vehicle {
	return &Vehicle{
		VIN:       vin,
		Plate:     plate,
		Make:      vehicleMake,
		Model:     model,
		Year:      year,
		Status:    VehicleAvailable,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

// VehicleFilter narrows a vehicle listing. Empty fields match everything.
type VehicleFilter struct {
	Status VehicleStatus
	Search string
}

// VehicleRepository defines storage operations for vehicles.
type VehicleRepository interface {
	Create(ctx context.Context, v *Vehicle) error
	GetByID(ctx context.Context, id string) (*Vehicle, error)
	List(ctx context.Context, filter VehicleFilter, window PageWindow) (Page[*Vehicle], error)
	UpdateStatus(ctx context.Context, id string, status VehicleStatus, updatedAt time.Time) error
}

// VehicleService defines fleet vehicle use cases.
type VehicleService interface {
	ListVehicles(ctx context.Context, filter VehicleFilter, window PageWindow) (Page[*Vehicle], error)
	GetVehicle(ctx context.Context, id string) (*Vehicle, error)
	CreateVehicle(ctx context.Context, actorID string, in CreateVehicleInput) (*Vehicle, error)
	UpdateVehicleStatus(ctx context.Context, actorID, id string, status VehicleStatus) (*Vehicle, error)
}

// CreateVehicleInput holds the fields needed to register a vehicle.
type CreateVehicleInput struct {
	VIN   string
	Plate string
	Make  string
	Model string
	Year  int
}
