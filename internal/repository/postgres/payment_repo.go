package postgres

import (
	"context"
	"database/sql"

	"fleetadmin/internal/domain"
)

const paymentColumns = "id, contract_id, customer_id, amount_cents, method, status, paid_at, created_at"

type paymentRepository struct {
	DB *sql.DB
}

func NewPaymentRepository(db *sql.DB) domain.PaymentRepository {
	return &paymentRepository{DB: db}
}

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	query := `
		INSERT INTO payments (contract_id, customer_id, amount_cents, method, status, paid_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, p.ContractID, p.CustomerID, p.AmountCents, p.Method, p.Status, p.PaidAt, p.CreatedAt).Scan(&p.ID)
}

func (r *paymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	row := r.DB.QueryRowContext(ctx, "SELECT "+paymentColumns+" FROM payments WHERE id = $1", id)
	p, err := scanPayment(row)
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

func (r *paymentRepository) List(ctx context.Context, filter domain.PaymentFilter, window domain.PageWindow) (domain.Page[*domain.Payment], error) {
	where := &whereClause{}
	where.eq("contract_id", filter.ContractID)
	where.eq("customer_id", filter.CustomerID)
	where.eq("status", string(filter.Status))
	return listPage(ctx, r.DB, "payments", paymentColumns, "paid_at DESC, id", where, window, func(rows *sql.Rows) (*domain.Payment, error) {
		return scanPayment(rows)
	})
}

func scanPayment(row rowScanner) (*domain.Payment, error) {
	p := &domain.Payment{}
	if err := row.Scan(&p.ID, &p.ContractID, &p.CustomerID, &p.AmountCents, &p.Method, &p.Status, &p.PaidAt, &p.CreatedAt); err != nil {
		return nil, err
	}
	return p, nil
}
