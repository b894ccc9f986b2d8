package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	h "fleetadmin/internal/delivery/http/helpers"
	"fleetadmin/internal/domain"
)

// CreateVehicleRequest is the request body for POST /api/v1/vehicles.
type CreateVehicleRequest struct {
	VIN   string `json:"vin"`
	Plate string `json:"plate"`
	Make  string `json:"make"`
	Model string `json:"model"`
	Year  int    `json:"year"`
}

// Validate implements Validator.
func (c CreateVehicleRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.VIN) == "" {
		errs = append(errs, "vin is required")
	}
	if strings.TrimSpace(c.Plate) == "" {
		errs = append(errs, "plate is required")
	}
	if strings.TrimSpace(c.Make) == "" {
		errs = append(errs, "make is required")
	}
	if strings.TrimSpace(c.Model) == "" {
		errs = append(errs, "model is required")
	}
	if c.Year == 0 {
		errs = append(errs, "year is required")
	}
	return errs
}

// UpdateVehicleStatusRequest is the request body for PATCH /api/v1/vehicles/{id}/status.
type UpdateVehicleStatusRequest struct {
	Status domain.VehicleStatus `json:"status"`
}

// Validate implements Validator.
func (u UpdateVehicleStatusRequest) Validate() []string {
	if u.Status == "" {
		return []string{"status is required"}
	}
	if !u.Status.IsValid() {
		return []string{"status must be one of available, leased, maintenance, retired"}
	}
	return nil
}

// VehicleListResponse is the data payload for GET /api/v1/vehicles.
type VehicleListResponse struct {
	Items      []*domain.Vehicle `json:"items"`
	Pagination h.PaginationMeta  `json:"pagination"`
}

// VehicleListSuccessResponse is the success envelope for GET /api/v1/vehicles.
type VehicleListSuccessResponse struct {
	Data  VehicleListResponse `json:"data"`
	Error *h.APIError         `json:"error"`
}

type VehicleController struct {
	Logger  *slog.Logger
	Service domain.VehicleService
}

func NewVehicleController(logger *slog.Logger, svc domain.VehicleService) *VehicleController {
	return &VehicleController{Logger: logger, Service: svc}
}

// ListVehicles godoc
// @Summary List vehicles
// @Description Paginated fleet listing ordered by registration date, newest first. Pages are zero-based; a page past the end returns an empty items array.
// @Tags vehicles
// @Produce json
// @Security BearerAuth
// @Param status query string false "available, leased, maintenance or retired"
// @Param search query string false "Substring of plate, VIN, make or model"
// @Param page query int false "Zero-based page (default 0)"
// @Param rows_per_page query int false "Rows per page (default 10, max 100)"
// @Success 200 {object} controllers.VehicleListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/v1/vehicles [get]
func (c *VehicleController) ListVehicles(w http.ResponseWriter, r *http.Request) {
	state := h.ParsePagination(r)
	q := r.URL.Query()
	filter := domain.VehicleFilter{
		Status: domain.VehicleStatus(q.Get("status")),
		Search: q.Get("search"),
	}
	page, err := c.Service.ListVehicles(r.Context(), filter, state.Window())
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "")
		return
	}
	items, meta, err := finishPage(state, page)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, VehicleListResponse{Items: items, Pagination: meta})
}

// GetVehicle godoc
// @Summary Get a vehicle
// @Tags vehicles
// @Produce json
// @Security BearerAuth
// @Param id path string true "Vehicle ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the vehicle"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/v1/vehicles/{id} [get]
func (c *VehicleController) GetVehicle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	v, err := c.Service.GetVehicle(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "vehicle not found")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, v)
}

// CreateVehicle godoc
// @Summary Register a vehicle
// @Description VIN must be 17 characters and unique. The vehicle starts as available.
// @Tags vehicles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param vehicle body CreateVehicleRequest true "Vehicle data"
// @Success 201 {object} helpers.APIResponse "data contains the created vehicle"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (duplicate VIN)"
// @Router /api/v1/vehicles [post]
func (c *VehicleController) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(w, r)
	if !ok {
		return
	}
	var req CreateVehicleRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	v, err := c.Service.CreateVehicle(r.Context(), actor, domain.CreateVehicleInput{
		VIN: req.VIN, Plate: req.Plate, Make: req.Make, Model: req.Model, Year: req.Year,
	})
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "")
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, v)
}

// UpdateVehicleStatus godoc
// @Summary Change vehicle status
// @Tags vehicles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Vehicle ID (UUID)"
// @Param body body UpdateVehicleStatusRequest true "New status"
// @Success 200 {object} helpers.APIResponse "data contains the updated vehicle"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/v1/vehicles/{id}/status [patch]
func (c *VehicleController) UpdateVehicleStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	actor, ok := actorID(w, r)
	if !ok {
		return
	}
	var req UpdateVehicleStatusRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	v, err := c.Service.UpdateVehicleStatus(r.Context(), actor, id, req.Status)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "vehicle not found")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, v)
}
