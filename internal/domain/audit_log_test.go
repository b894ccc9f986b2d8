package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIconForAction(t *testing.T) {
	tests := []struct {
		action AuditAction
		want   string
	}{
		{AuditCreate, "add_circle"},
		{AuditUpdate, "edit"},
		{AuditDelete, "delete"},
		{AuditLogin, "login"},
		{AuditPayment, "payments"},
		{AuditUpload, "upload_file"},
		{AuditAction("export"), "info"},
		{AuditAction(""), "info"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IconForAction(tt.action), "action %q", tt.action)
	}
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2025, 3, 7, 22, 5, 0, 0, time.UTC)

	assert.Equal(t, "07 Mar 2025, 22:05", FormatTimestamp(ts, nil))
	assert.Equal(t, "", FormatTimestamp(time.Time{}, time.UTC))

	loc := time.FixedZone("UTC+3", 3*60*60)
	assert.Equal(t, "08 Mar 2025, 01:05", FormatTimestamp(ts, loc))
}

func TestRelativeTimestamp(t *testing.T) {
	now := time.Date(2025, 3, 7, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"zero", time.Time{}, ""},
		{"seconds", now.Add(-20 * time.Second), "just now"},
		{"one minute", now.Add(-time.Minute), "1 minute ago"},
		{"minutes", now.Add(-45 * time.Minute), "45 minutes ago"},
		{"hours", now.Add(-5 * time.Hour), "5 hours ago"},
		{"one day", now.Add(-26 * time.Hour), "1 day ago"},
		{"days", now.Add(-10 * 24 * time.Hour), "10 days ago"},
		{"old", now.Add(-40 * 24 * time.Hour), "26 Jan 2025, 12:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeTimestamp(tt.at, now, time.UTC))
		})
	}
}

func TestNewAuditLogView(t *testing.T) {
	now := time.Date(2025, 3, 7, 12, 0, 0, 0, time.UTC)
	l := &AuditLog{ID: "a1", Action: AuditPayment, CreatedAt: now.Add(-2 * time.Hour)}

	v := NewAuditLogView(l, now, time.UTC)
	require.NotNil(t, v)
	assert.Equal(t, "a1", v.ID)
	assert.Equal(t, "payments", v.Icon)
	assert.Equal(t, "07 Mar 2025, 10:00", v.FormattedAt)
	assert.Equal(t, "2 hours ago", v.Relative)
}
