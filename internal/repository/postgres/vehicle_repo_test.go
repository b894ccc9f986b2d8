package postgres

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"fleetadmin/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var vehicleCols = []string{"id", "vin", "plate", "make", "model", "year", "status", "created_at", "updated_at"}

func TestVehicleRepository_Create(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO vehicles \(vin, plate, make, model, year, status, created_at, updated_at\)`).
					WithArgs("1HGCM82633A004352", "A001AA", "Honda", "Accord", 2021, "available", created, created).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("veh-1"))
			},
			wantID: "veh-1",
		},
		{
			name: "duplicate vin",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO vehicles`).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: domain.ErrConflict,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO vehicles`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			v := domain.NewVehicle("1HGCM82633A004352", "A001AA", "Honda", "Accord", 2021, created)
			err = NewVehicleRepository(db).Create(ctx, v)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, v.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestVehicleRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewVehicleRepository(db)

	mock.ExpectQuery(`SELECT id, vin, plate, make, model, year, status, created_at, updated_at FROM vehicles WHERE id = \$1`).
		WithArgs("veh-1").
		WillReturnRows(sqlmock.NewRows(vehicleCols).AddRow("veh-1", "1HGCM82633A004352", "A001AA", "Honda", "Accord", 2021, "leased", ts, ts))
	mock.ExpectQuery(`SELECT .* FROM vehicles WHERE id = \$1`).
		WithArgs("veh-missing").
		WillReturnError(sql.ErrNoRows)

	v, err := repo.GetByID(ctx, "veh-1")
	require.NoError(t, err)
	assert.Equal(t, domain.VehicleLeased, v.Status)
	assert.Equal(t, 2021, v.Year)

	_, err = repo.GetByID(ctx, "veh-missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVehicleRepository_List(t *testing.T) {
	ctx := context.Background()
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	where := ` WHERE status = $1 AND (plate ILIKE $2 OR vin ILIKE $2 OR make ILIKE $2 OR model ILIKE $2)`

	tests := []struct {
		name      string
		window    domain.PageWindow
		mock      func(mock sqlmock.Sqlmock)
		wantTotal int
		wantItems int
	}{
		{
			name:   "first page",
			window: domain.PageWindow{Limit: 10, Offset: 0},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM vehicles`+where)).
					WithArgs("leased", "%hon%").
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT `+vehicleColumns+` FROM vehicles`+where+` ORDER BY created_at DESC, id LIMIT $3 OFFSET $4`)).
					WithArgs("leased", "%hon%", 10, 0).
					WillReturnRows(sqlmock.NewRows(vehicleCols).
						AddRow("veh-1", "1HGCM82633A004352", "A001AA", "Honda", "Accord", 2021, "leased", ts, ts).
						AddRow("veh-2", "1HGCM82633A004353", "A002AA", "Honda", "Civic", 2022, "leased", ts, ts))
			},
			wantTotal: 12,
			wantItems: 2,
		},
		{
			name:   "past the end skips the page query",
			window: domain.PageWindow{Limit: 10, Offset: 20},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM vehicles`+where)).
					WithArgs("leased", "%hon%").
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
			},
			wantTotal: 12,
			wantItems: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			page, err := NewVehicleRepository(db).List(ctx, domain.VehicleFilter{Status: domain.VehicleLeased, Search: " hon "}, tt.window)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, page.Total)
			assert.NotNil(t, page.Items)
			assert.Len(t, page.Items, tt.wantItems)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestVehicleRepository_ListWithoutFilter(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM vehicles`) + `$`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	page, err := NewVehicleRepository(db).List(context.Background(), domain.VehicleFilter{}, domain.PageWindow{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 0, page.Total)
	assert.Empty(t, page.Items)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVehicleRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	ts := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewVehicleRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE vehicles SET status = $1, updated_at = $2 WHERE id = $3`)).
		WithArgs("maintenance", ts, "veh-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE vehicles`).
		WithArgs("maintenance", ts, "veh-missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.UpdateStatus(ctx, "veh-1", domain.VehicleMaintenance, ts))
	require.ErrorIs(t, repo.UpdateStatus(ctx, "veh-missing", domain.VehicleMaintenance, ts), domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\x`, escapeLike(`c:\x`))
}
