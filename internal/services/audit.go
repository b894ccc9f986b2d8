package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fleetadmin/internal/domain"
)

type auditService struct {
	repo   domain.AuditLogRepository
	logger *slog.Logger
	loc    *time.Location
	now    func() time.Time
}

// NewAuditService returns an AuditService that renders timestamps in loc.
func NewAuditService(repo domain.AuditLogRepository, logger *slog.Logger, loc *time.Location) domain.AuditService {
	if loc == nil {
		loc = time.UTC
	}
	return &auditService{
		repo:   repo,
		logger: logger.With("component", "audit"),
		loc:    loc,
		now:    time.Now,
	}
}

// Record stores an audit entry. Failures are logged and never reach the caller.
func (s *auditService) Record(ctx context.Context, actorID string, action domain.AuditAction, entityType, entityID, details string) {
	entry := &domain.AuditLog{
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		s.logger.ErrorContext(ctx, "record audit entry", "action", action, "entity_type", entityType, "entity_id", entityID, "err", err)
	}
}

func (s *auditService) ListAuditLogs(ctx context.Context, filter domain.AuditLogFilter, window domain.PageWindow) (domain.Page[*domain.AuditLogView], error) {
	page, err := s.repo.List(ctx, filter, window)
	if err != nil {
		return domain.Page[*domain.AuditLogView]{}, fmt.Errorf("list audit logs: %w", err)
	}
	now := s.now()
	views := make([]*domain.AuditLogView, 0, len(page.Items))
	for _, l := range page.Items {
		views = append(views, domain.NewAuditLogView(l, now, s.loc))
	}
	return domain.Page[*domain.AuditLogView]{Items: views, Total: page.Total}, nil
}
