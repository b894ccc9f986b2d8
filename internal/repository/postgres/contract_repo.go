package postgres

import (
	"context"
	"database/sql"
	"time"

	"fleetadmin/internal/domain"
)

const contractColumns = "id, number, customer_id, vehicle_id, principal_cents, annual_rate_bps, term_months, start_date, status, document_key, created_at, updated_at"

type contractRepository struct {
	DB *sql.DB
}

func NewContractRepository(db *sql.DB) domain.ContractRepository {
	return &contractRepository{DB: db}
}

func (r *contractRepository) Create(ctx context.Context, c *domain.Contract) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// The row lock taken here makes a concurrent lease of the same vehicle wait and then match nothing.
	res, err := tx.ExecContext(ctx,
		`UPDATE vehicles SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`,
		domain.VehicleLeased, c.CreatedAt, c.VehicleID, domain.VehicleAvailable,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrVehicleUnavailable
	}

	query := `
		INSERT INTO contracts (number, customer_id, vehicle_id, principal_cents, annual_rate_bps, term_months, start_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	err = tx.QueryRowContext(ctx, query,
		c.Number, c.CustomerID, c.VehicleID, c.PrincipalCents, c.AnnualRateBps, c.TermMonths, c.StartDate, c.Status, c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID)
	if isUniqueViolation(err) {
		return domain.ErrConflict
	}
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (r *contractRepository) GetByID(ctx context.Context, id string) (*domain.Contract, error) {
	row := r.DB.QueryRowContext(ctx, "SELECT "+contractColumns+" FROM contracts WHERE id = $1", id)
	c, err := scanContract(row)
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

func (r *contractRepository) List(ctx context.Context, filter domain.ContractFilter, window domain.PageWindow) (domain.Page[*domain.Contract], error) {
	where := &whereClause{}
	where.eq("customer_id", filter.CustomerID)
	where.eq("vehicle_id", filter.VehicleID)
	where.eq("status", string(filter.Status))
	return listPage(ctx, r.DB, "contracts", contractColumns, "created_at DESC, id", where, window, func(rows *sql.Rows) (*domain.Contract, error) {
		return scanContract(rows)
	})
}

func (r *contractRepository) SetDocumentKey(ctx context.Context, id, key string, updatedAt time.Time) error {
	return execOne(ctx, r.DB, `UPDATE contracts SET document_key = $1, updated_at = $2 WHERE id = $3`, key, updatedAt, id)
}

func scanContract(row rowScanner) (*domain.Contract, error) {
	c := &domain.Contract{}
	var docKey sql.NullString
	err := row.Scan(&c.ID, &c.Number, &c.CustomerID, &c.VehicleID, &c.PrincipalCents, &c.AnnualRateBps, &c.TermMonths,
		&c.StartDate, &c.Status, &docKey, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.DocumentKey = docKey.String
	return c, nil
}
