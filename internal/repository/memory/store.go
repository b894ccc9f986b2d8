// Package memory holds in-memory repositories used when the API runs with the mock data provider.
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"fleetadmin/internal/domain"
)

// Store keeps every collection in memory. All repositories returned by a Store share its lock.
type Store struct {
	mu        sync.RWMutex
	vehicles  map[string]domain.Vehicle
	customers map[string]domain.Customer
	contracts map[string]domain.Contract
	payments  map[string]domain.Payment
	auditLogs map[string]domain.AuditLog
	admins    map[string]domain.Admin
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		vehicles:  make(map[string]domain.Vehicle),
		customers: make(map[string]domain.Customer),
		contracts: make(map[string]domain.Contract),
		payments:  make(map[string]domain.Payment),
		auditLogs: make(map[string]domain.AuditLog),
		admins:    make(map[string]domain.Admin),
	}
}

func (s *Store) Vehicles() domain.VehicleRepository   { return &vehicleRepository{s} }
func (s *Store) Customers() domain.CustomerRepository { return &customerRepository{s} }
func (s *Store) Contracts() domain.ContractRepository { return &contractRepository{s} }
func (s *Store) Payments() domain.PaymentRepository   { return &paymentRepository{s} }
func (s *Store) AuditLogs() domain.AuditLogRepository { return &auditLogRepository{s} }
func (s *Store) Admins() domain.AdminRepository       { return &adminRepository{s} }

func newID() string {
	return uuid.NewString()
}

// paginate cuts one window out of items. A window starting past the end yields an empty page.
func paginate[T any](items []T, window domain.PageWindow) domain.Page[T] {
	total := len(items)
	out := make([]T, 0)
	offset := max(window.Offset, 0)
	if offset < total {
		end := total
		if window.Limit > 0 && offset+window.Limit < total {
			end = offset + window.Limit
		}
		out = append(out, items[offset:end]...)
	}
	return domain.Page[T]{Items: out, Total: total}
}

// sortNewestFirst orders items by the given timestamp descending, then by ID.
func sortNewestFirst[T any](items []T, at func(T) time.Time, id func(T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		ti, tj := at(items[i]), at(items[j])
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return id(items[i]) < id(items[j])
	})
}

// containsFold reports whether any field contains term, ignoring case.
func containsFold(term string, fields ...string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}
