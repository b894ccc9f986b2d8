package postgres

import (
	"context"
	"database/sql"

	"fleetadmin/internal/domain"
)

const auditLogColumns = "id, actor_id, action, entity_type, entity_id, details, created_at"

type auditLogRepository struct {
	DB *sql.DB
}

func NewAuditLogRepository(db *sql.DB) domain.AuditLogRepository {
	return &auditLogRepository{DB: db}
}

func (r *auditLogRepository) Create(ctx context.Context, l *domain.AuditLog) error {
	query := `
		INSERT INTO audit_logs (actor_id, action, entity_type, entity_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, l.ActorID, l.Action, l.EntityType, l.EntityID, l.Details, l.CreatedAt).Scan(&l.ID)
}

func (r *auditLogRepository) List(ctx context.Context, filter domain.AuditLogFilter, window domain.PageWindow) (domain.Page[*domain.AuditLog], error) {
	where := &whereClause{}
	where.eq("entity_type", filter.EntityType)
	where.eq("entity_id", filter.EntityID)
	where.eq("actor_id", filter.ActorID)
	where.eq("action", string(filter.Action))
	return listPage(ctx, r.DB, "audit_logs", auditLogColumns, "created_at DESC, id", where, window, func(rows *sql.Rows) (*domain.AuditLog, error) {
		l := &domain.AuditLog{}
		var details sql.NullString
		if err := rows.Scan(&l.ID, &l.ActorID, &l.Action, &l.EntityType, &l.EntityID, &details, &l.CreatedAt); err != nil {
			return nil, err
		}
		l.Details = details.String
		return l, nil
	})
}
