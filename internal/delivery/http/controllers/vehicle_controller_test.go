package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"fleetadmin/internal/delivery/http/middleware"
	"fleetadmin/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleVehicles(n int) []*domain.Vehicle {
	out := make([]*domain.Vehicle, n)
	for i := range out {
		out[i] = &domain.Vehicle{ID: fmt.Sprintf("v-%d", i), Plate: fmt.Sprintf("ABC-%03d", i), Status: domain.VehicleAvailable}
	}
	return out
}

func TestVehicleController_ListVehicles(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		page       domain.Page[*domain.Vehicle]
		fakeErr    error
		wantStatus int
		wantWindow domain.PageWindow
		wantMeta   string
		wantItems  int
	}{
		{
			name:       "defaults",
			page:       domain.Page[*domain.Vehicle]{Items: sampleVehicles(10), Total: 45},
			wantStatus: http.StatusOK,
			wantWindow: domain.PageWindow{Limit: 10, Offset: 0},
			wantMeta:   `{"page":0,"rows_per_page":10,"offset":0,"total":45,"total_pages":5}`,
			wantItems:  10,
		},
		{
			name:       "last page",
			query:      "?page=4&rows_per_page=10",
			page:       domain.Page[*domain.Vehicle]{Items: sampleVehicles(5), Total: 45},
			wantStatus: http.StatusOK,
			wantWindow: domain.PageWindow{Limit: 10, Offset: 40},
			wantMeta:   `{"page":4,"rows_per_page":10,"offset":40,"total":45,"total_pages":5}`,
			wantItems:  5,
		},
		{
			name:       "page past the end is empty",
			query:      "?page=9",
			page:       domain.Page[*domain.Vehicle]{Total: 45},
			wantStatus: http.StatusOK,
			wantWindow: domain.PageWindow{Limit: 10, Offset: 90},
			wantMeta:   `{"page":9,"rows_per_page":10,"offset":90,"total":45,"total_pages":5}`,
			wantItems:  0,
		},
		{
			name:       "rows per page clamped",
			query:      "?rows_per_page=1000",
			page:       domain.Page[*domain.Vehicle]{Items: sampleVehicles(3), Total: 3},
			wantStatus: http.StatusOK,
			wantWindow: domain.PageWindow{Limit: 100, Offset: 0},
			wantMeta:   `{"page":0,"rows_per_page":100,"offset":0,"total":3,"total_pages":1}`,
			wantItems:  3,
		},
		{
			name:       "invalid status",
			query:      "?status=sold",
			fakeErr:    fmt.Errorf("%w: unknown vehicle status", domain.ErrInvalidInput),
			wantStatus: http.StatusBadRequest,
			wantWindow: domain.PageWindow{Limit: 10, Offset: 0},
		},
		{
			name:       "service error",
			fakeErr:    errors.New("db down"),
			wantStatus: http.StatusInternalServerError,
			wantWindow: domain.PageWindow{Limit: 10, Offset: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeVehicleService{page: tt.page, err: tt.fakeErr}
			ctrl := NewVehicleController(testLogger, fake)
			req := httptest.NewRequest(http.MethodGet, "/api/v1/vehicles"+tt.query, nil)
			rr := httptest.NewRecorder()

			ctrl.ListVehicles(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			assert.Equal(t, tt.wantWindow, fake.lastWindow)
			if tt.wantStatus != http.StatusOK {
				envelope := decodeEnvelope(t, rr, nil)
				require.NotNil(t, envelope.Error)
				if tt.wantStatus == http.StatusInternalServerError {
					assert.Equal(t, "internal server error", envelope.Error.Message)
				}
				return
			}
			var body struct {
				Items      []map[string]any `json:"items"`
				Pagination map[string]any   `json:"pagination"`
			}
			decodeEnvelope(t, rr, &body)
			require.NotNil(t, body.Items, "items must be an array")
			assert.Len(t, body.Items, tt.wantItems)
			metaBytes, err := json.Marshal(body.Pagination)
			require.NoError(t, err)
			assert.JSONEq(t, tt.wantMeta, string(metaBytes))
		})
	}
}

func TestVehicleController_ListVehiclesFilters(t *testing.T) {
	fake := &fakeVehicleService{}
	ctrl := NewVehicleController(testLogger, fake)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/vehicles?status=leased&search=corolla", nil)
	rr := httptest.NewRecorder()

	ctrl.ListVehicles(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, domain.VehicleFilter{Status: domain.VehicleLeased, Search: "corolla"}, fake.lastFilter)
	assert.Contains(t, rr.Body.String(), `"items":[]`)
}

func TestVehicleController_GetVehicle(t *testing.T) {
	tests := []struct {
		name           string
		id             string
		fakeErr        error
		wantStatus     int
		wantBodySubstr string
	}{
		{name: "success", id: testVehicleID, wantStatus: http.StatusOK},
		{name: "invalid id", id: "not-a-uuid", wantStatus: http.StatusBadRequest, wantBodySubstr: "invalid id"},
		{name: "not found", id: testVehicleID, fakeErr: domain.ErrNotFound, wantStatus: http.StatusNotFound, wantBodySubstr: "vehicle not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeVehicleService{vehicle: &domain.Vehicle{ID: testVehicleID, VIN: "1HGCM82633A004352"}, err: tt.fakeErr}
			ctrl := NewVehicleController(testLogger, fake)
			req := httptest.NewRequest(http.MethodGet, "/api/v1/vehicles/"+tt.id, nil)
			req.SetPathValue("id", tt.id)
			rr := httptest.NewRecorder()

			ctrl.GetVehicle(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusOK {
				var v domain.Vehicle
				decodeEnvelope(t, rr, &v)
				assert.Equal(t, testVehicleID, v.ID)
				return
			}
			envelope := decodeEnvelope(t, rr, nil)
			require.NotNil(t, envelope.Error)
			assert.Contains(t, envelope.Error.Message, tt.wantBodySubstr)
		})
	}
}

func TestVehicleController_CreateVehicle(t *testing.T) {
	valid := `{"vin":"1HGCM82633A004352","plate":"ABC-123","make":"Toyota","model":"Corolla","year":2022}`
	tests := []struct {
		name           string
		body           string
		fakeErr        error
		noAdmin        bool
		wantStatus     int
		wantBodySubstr string
	}{
		{name: "success", body: valid, wantStatus: http.StatusCreated},
		{name: "no admin in context", body: valid, noAdmin: true, wantStatus: http.StatusUnauthorized, wantBodySubstr: "unauthorized"},
		{name: "invalid json", body: `{invalid`, wantStatus: http.StatusBadRequest, wantBodySubstr: "invalid"},
		{name: "missing fields", body: `{"vin":"1HGCM82633A004352"}`, wantStatus: http.StatusBadRequest, wantBodySubstr: "plate is required"},
		{name: "unknown field rejected", body: `{"vin":"x","status":"leased"}`, wantStatus: http.StatusBadRequest, wantBodySubstr: "unknown field"},
		{name: "duplicate vin", body: valid, fakeErr: fmt.Errorf("vin taken: %w", domain.ErrConflict), wantStatus: http.StatusConflict, wantBodySubstr: "vin taken"},
		{name: "service validation", body: valid, fakeErr: fmt.Errorf("%w: year out of range", domain.ErrInvalidInput), wantStatus: http.StatusBadRequest, wantBodySubstr: "year out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeVehicleService{vehicle: &domain.Vehicle{ID: testVehicleID, Status: domain.VehicleAvailable}, err: tt.fakeErr}
			ctrl := NewVehicleController(testLogger, fake)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/vehicles", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			if !tt.noAdmin {
				req = req.WithContext(middleware.WithAdminID(req.Context(), testAdminID))
			}
			rr := httptest.NewRecorder()

			ctrl.CreateVehicle(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusCreated {
				var v domain.Vehicle
				decodeEnvelope(t, rr, &v)
				assert.Equal(t, testVehicleID, v.ID)
				assert.Equal(t, testAdminID, fake.lastActorID)
				assert.Equal(t, domain.CreateVehicleInput{VIN: "1HGCM82633A004352", Plate: "ABC-123", Make: "Toyota", Model: "Corolla", Year: 2022}, fake.lastInput)
				return
			}
			envelope := decodeEnvelope(t, rr, nil)
			require.NotNil(t, envelope.Error)
			assert.Contains(t, envelope.Error.Message, tt.wantBodySubstr)
		})
	}
}

func TestVehicleController_UpdateVehicleStatus(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		fakeErr    error
		wantStatus int
	}{
		{name: "success", body: `{"status":"maintenance"}`, wantStatus: http.StatusOK},
		{name: "unknown status", body: `{"status":"sold"}`, wantStatus: http.StatusBadRequest},
		{name: "missing status", body: `{}`, wantStatus: http.StatusBadRequest},
		{name: "not found", body: `{"status":"retired"}`, fakeErr: domain.ErrNotFound, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeVehicleService{vehicle: &domain.Vehicle{ID: testVehicleID, Status: domain.VehicleMaintenance}, err: tt.fakeErr}
			ctrl := NewVehicleController(testLogger, fake)
			req := httptest.NewRequest(http.MethodPatch, "/api/v1/vehicles/"+testVehicleID+"/status", bytes.NewBufferString(tt.body))
			req.SetPathValue("id", testVehicleID)
			req = req.WithContext(middleware.WithAdminID(req.Context(), testAdminID))
			rr := httptest.NewRecorder()

			ctrl.UpdateVehicleStatus(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, testVehicleID, fake.lastID)
				assert.Equal(t, domain.VehicleMaintenance, fake.lastStatus)
			}
		})
	}
}
