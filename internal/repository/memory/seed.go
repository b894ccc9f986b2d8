package memory

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"fleetadmin/internal/domain"
)

// Credentials of the operator account the API bootstraps in mock mode.
const (
	SeedAdminEmail    = "admin@fleet.local"
	SeedAdminName     = "Fleet Admin"
	SeedAdminPassword = "fleetadmin"
)

// Seed sizes.
const (
	seedVehicles  = 36
	seedCustomers = 24
	seedContracts = 14
)

var seedNamespace = uuid.MustParse("6f1c1d0e-8b0a-4c55-9a53-3f1f0f4f2a10")

var seedModels = []struct{ make, model string }{
	{"Toyota", "Camry"}, {"Toyota", "RAV4"}, {"Kia", "Rio"}, {"Kia", "Sportage"},
	{"Hyundai", "Solaris"}, {"Hyundai", "Tucson"}, {"Skoda", "Octavia"}, {"Volkswagen", "Polo"},
	{"Lada", "Vesta"}, {"Renault", "Logan"}, {"Nissan", "Qashqai"}, {"Haval", "Jolion"},
}

var seedNames = []string{
	"Ana Petrova", "Ivan Sokolov", "Maria Ivanova", "Dmitry Volkov", "Elena Smirnova", "Sergey Kuznetsov",
	"Olga Popova", "Alexey Morozov", "Natalia Lebedeva", "Pavel Kozlov", "Irina Novikova", "Nikolai Fedorov",
}

func seedID(kind string, n int) string {
	return uuid.NewSHA1(seedNamespace, []byte(fmt.Sprintf("%s-%d", kind, n))).String()
}

// NewSeededStore returns a store filled with deterministic demo data relative to now.
// Every contract leases one vehicle and carries a payment history; audit entries mirror the seed.
func NewSeededStore(now time.Time) *Store {
	s := NewStore()
	now = now.UTC().Truncate(time.Minute)
	actor := seedID("admin", 0)

	addLog := func(n int, action domain.AuditAction, entityType, entityID, details string, at time.Time) {
		id := seedID("audit", n)
		s.auditLogs[id] = domain.AuditLog{
			ID: id, ActorID: actor, Action: action, EntityType: entityType,
			EntityID: entityID, Details: details, CreatedAt: at,
		}
	}
	logSeq := 0

	for i := 0; i < seedVehicles; i++ {
		m := seedModels[i%len(seedModels)]
		created := now.Add(-time.Duration(seedVehicles-i) * 36 * time.Hour)
		v := domain.NewVehicle(fmt.Sprintf("1FLEET%011d", i+1), fmt.Sprintf("A%03dMK", i+1), m.make, m.model, 2018+i%7, created)
		v.ID = seedID("vehicle", i)
		if i >= seedContracts && i%9 == 8 {
			v.Status = domain.VehicleMaintenance
		}
		if i == seedVehicles-1 {
			v.Status = domain.VehicleRetired
		}
		s.vehicles[v.ID] = *v
		logSeq++
		addLog(logSeq, domain.AuditCreate, domain.EntityVehicle, v.ID, fmt.Sprintf("registered %s %s (%s)", v.Make, v.Model, v.Plate), created)
	}

	for i := 0; i < seedCustomers; i++ {
		name := seedNames[i%len(seedNames)]
		if i >= len(seedNames) {
			name += " Jr."
		}
		created := now.Add(-time.Duration(seedCustomers-i) * 48 * time.Hour)
		c := domain.NewCustomer(name, fmt.Sprintf("customer%02d@example.com", i+1), fmt.Sprintf("+7900%07d", i+1), created)
		c.ID = seedID("customer", i)
		if i%11 == 10 {
			c.Status = domain.CustomerBlocked
		}
		s.customers[c.ID] = *c
		logSeq++
		addLog(logSeq, domain.AuditCreate, domain.EntityCustomer, c.ID, "customer "+c.Email, created)
	}

	paymentSeq := 0
	methods := []domain.PaymentMethod{domain.PaymentTransfer, domain.PaymentCard, domain.PaymentCash}
	for i := 0; i < seedContracts; i++ {
		vehicleID := seedID("vehicle", i)
		customerID := seedID("customer", i%(seedCustomers/2))
		start := now.AddDate(0, -(seedContracts - i), 0)
		c := domain.Contract{
			ID:             seedID("contract", i),
			Number:         fmt.Sprintf("FC-%s-S%03d", start.Format("20060102"), i+1),
			CustomerID:     customerID,
			VehicleID:      vehicleID,
			PrincipalCents: int64(800_000+i*50_000) * 100,
			AnnualRateBps:  900 + (i%4)*150,
			TermMonths:     24 + (i%3)*12,
			StartDate:      start,
			Status:         domain.ContractActive,
			CreatedAt:      start,
			UpdatedAt:      start,
		}
		if i == 0 {
			c.Status = domain.ContractClosed
		}
		s.contracts[c.ID] = c

		v := s.vehicles[vehicleID]
		if c.Status == domain.ContractActive {
			v.Status = domain.VehicleLeased
		}
		s.vehicles[vehicleID] = v
		logSeq++
		addLog(logSeq, domain.AuditCreate, domain.EntityContract, c.ID, fmt.Sprintf("contract %s for vehicle %s", c.Number, v.Plate), start)

		installment := c.MonthlyInstallment()
		for m := 1; m < seedContracts-i && m <= 6; m++ {
			paid := start.AddDate(0, m, 0)
			if paid.After(now) {
				break
			}
			paymentSeq++
			p := domain.Payment{
				ID:          seedID("payment", paymentSeq),
				ContractID:  c.ID,
				CustomerID:  c.CustomerID,
				AmountCents: installment,
				Method:      methods[paymentSeq%len(methods)],
				Status:      domain.PaymentCompleted,
				PaidAt:      paid,
				CreatedAt:   paid,
			}
			if paymentSeq%13 == 0 {
				p.Status = domain.PaymentFailed
			}
			s.payments[p.ID] = p
			logSeq++
			addLog(logSeq, domain.AuditPayment, domain.EntityPayment, p.ID, fmt.Sprintf("%d.%02d via %s on %s", p.AmountCents/100, p.AmountCents%100, p.Method, c.Number), paid)
		}
	}

	logSeq++
	addLog(logSeq, domain.AuditLogin, domain.EntityAdmin, actor, "signed in", now.Add(-2*time.Hour))
	logSeq++
	addLog(logSeq, domain.AuditUpdate, domain.EntityVehicle, seedID("vehicle", 26), "status available -> maintenance", now.Add(-20*time.Minute))
	return s
}
