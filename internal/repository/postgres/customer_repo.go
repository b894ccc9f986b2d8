package postgres

import (
	"context"
	"database/sql"
	"strings"

	"fleetadmin/internal/domain"
)

const customerColumns = "id, full_name, email, phone, status, created_at, updated_at"

type customerRepository struct {
	DB *sql.DB
}

func NewCustomerRepository(db *sql.DB) domain.CustomerRepository {
	return &customerRepository{DB: db}
}

func (r *customerRepository) Create(ctx context.Context, c *domain.Customer) error {
	query := `
		INSERT INTO customers (full_name, email, phone, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, c.FullName, c.Email, c.Phone, c.Status, c.CreatedAt, c.UpdatedAt).Scan(&c.ID)
	if isUniqueViolation(err) {
		return domain.ErrConflict
	}
	return err
}

func (r *customerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	row := r.DB.QueryRowContext(ctx, "SELECT "+customerColumns+" FROM customers WHERE id = $1", id)
	c, err := scanCustomer(row)
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

func (r *customerRepository) List(ctx context.Context, filter domain.CustomerFilter, window domain.PageWindow) (domain.Page[*domain.Customer], error) {
	where := &whereClause{}
	where.eq("status", string(filter.Status))
	where.search(strings.TrimSpace(filter.Search), "full_name", "email", "phone")
	return listPage(ctx, r.DB, "customers", customerColumns, "created_at DESC, id", where, window, func(rows *sql.Rows) (*domain.Customer, error) {
		return scanCustomer(rows)
	})
}

func scanCustomer(row rowScanner) (*domain.Customer, error) {
	c := &domain.Customer{}
	var phone sql.NullString
	if err := row.Scan(&c.ID, &c.FullName, &c.Email, &phone, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.Phone = phone.String
	return c, nil
}
