package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"fleetadmin/internal/domain"
)

const vehicleColumns = "id, vin, plate, make, model, year, status, created_at, updated_at"

type vehicleRepository struct {
	DB *sql.DB
}

func NewVehicleRepository(db *sql.DB) domain.VehicleRepository {
	return &vehicleRepository{DB: db}
}

func (r *vehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	query := `
		INSERT INTO vehicles (vin, plate, make, model, year, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, v.VIN, v.Plate, v.Make, v.Model, v.Year, v.Status, v.CreatedAt, v.UpdatedAt).Scan(&v.ID)
	if isUniqueViolation(err) {
		return domain.ErrConflict
	}
	return err
}

func (r *vehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	row := r.DB.QueryRowContext(ctx, "SELECT "+vehicleColumns+" FROM vehicles WHERE id = $1", id)
	v, err := scanVehicle(row)
	if err != nil {
		return nil, notFound(err)
	}
	return v, nil
}

func (r *vehicleRepository) List(ctx context.Context, filter domain.VehicleFilter, window domain.PageWindow) (domain.Page[*domain.Vehicle], error) {
	where := &whereClause{}
	where.eq("status", string(filter.Status))
	where.search(strings.TrimSpace(filter.Search), "plate", "vin", "make", "model")
	return listPage(ctx, r.DB, "vehicles", vehicleColumns, "created_at DESC, id", where, window, func(rows *sql.Rows) (*domain.Vehicle, error) {
		return scanVehicle(rows)
	})
}

func (r *vehicleRepository) UpdateStatus(ctx context.Context, id string, status domain.VehicleStatus, updatedAt time.Time) error {
	return execOne(ctx, r.DB, `UPDATE vehicles SET status = $1, updated_at = $2 WHERE id = $3`, status, updatedAt, id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVehicle(row rowScanner) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	if err := row.Scan(&v.ID, &v.VIN, &v.Plate, &v.Make, &v.Model, &v.Year, &v.Status, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return nil, err
	}
	return v, nil
}
