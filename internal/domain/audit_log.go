package domain

import (
	"context"
	"fmt"
	"time"
)

// AuditAction is the kind of change an audit entry records.
type AuditAction string

const (
	AuditCreate  AuditAction = "create"
	AuditUpdate  AuditAction = "update"
	AuditDelete  AuditAction = "delete"
	AuditLogin   AuditAction = "login"
	AuditPayment AuditAction = "payment"
	AuditUpload  AuditAction = "upload"
)

// Entity types referenced by audit entries.
const (
	EntityVehicle  = "vehicle"
	EntityCustomer = "customer"
	EntityContract = "contract"
	EntityPayment  = "payment"
	EntityAdmin    = "admin"
)

// DisplayTimeLayout is how audit timestamps are rendered for the dashboard.
const DisplayTimeLayout = "02 Jan 2006, 15:04"

// AuditLog is one recorded administrative action.
// swagger:model AuditLog
type AuditLog struct {
	ID         string      `json:"id"`
	ActorID    string      `json:"actor_id"`
	Action     AuditAction `json:"action"`
	EntityType string      `json:"entity_type"`
	EntityID   string      `json:"entity_id"`
	Details    string      `json:"details"`
	CreatedAt  time.Time   `json:"created_at"`
}

// AuditLogView is an audit entry decorated for display.
// swagger:model AuditLogView
type AuditLogView struct {
	*AuditLog
	Icon        string `json:"icon"`
	FormattedAt string `json:"formatted_at"`
	Relative    string `json:"relative"`
}

// IconForAction returns the dashboard icon name for an audit action.
func IconForAction(a AuditAction) string {
	switch a {
	case AuditCreate:
		return "add_circle"
	case AuditUpdate:
		return "edit"
	case AuditDelete:
		return "delete"
	case AuditLogin:
		return "login"
	case AuditPayment:
		return "payments"
	case AuditUpload:
		return "upload_file"
	default:
		return "info"
	}
}

// FormatTimestamp renders t in loc using DisplayTimeLayout. The zero time renders as "".
func FormatTimestamp(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DisplayTimeLayout)
}

// RelativeTimestamp describes t relative to now; entries older than 30 days fall back to FormatTimestamp.
func RelativeTimestamp(t, now time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d/time.Minute), "minute")
	case d < 24*time.Hour:
		return plural(int(d/time.Hour), "hour")
	case d < 30*24*time.Hour:
		return plural(int(d/(24*time.Hour)), "day")
	default:
		return FormatTimestamp(t, loc)
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

// NewAuditLogView decorates an entry with its icon and display timestamps.
func NewAuditLogView(l *AuditLog, now time.Time, loc *time.Location) *AuditLogView {
	return &AuditLogView{
		AuditLog:    l,
		Icon:        IconForAction(l.Action),
		FormattedAt: FormatTimestamp(l.CreatedAt, loc),
		Relative:    RelativeTimestamp(l.CreatedAt, now, loc),
	}
}

// AuditLogFilter narrows an audit listing.
type AuditLogFilter struct {
	EntityType string
	EntityID   string
	ActorID    string
	Action     AuditAction
}

// AuditLogRepository defines storage operations for audit entries.
type AuditLogRepository interface {
	Create(ctx context.Context, l *AuditLog) error
	List(ctx context.Context, filter AuditLogFilter, window PageWindow) (Page[*AuditLog], error)
}

// AuditService records and lists administrative actions.
type AuditService interface {
	Record(ctx context.Context, actorID string, action AuditAction, entityType, entityID, details string)
	ListAuditLogs(ctx context.Context, filter AuditLogFilter, window PageWindow) (Page[*AuditLogView], error)
}
