package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	h "fleetadmin/internal/delivery/http/helpers"
	"fleetadmin/internal/domain"
)

// CreateCustomerRequest is the request body for POST /api/v1/customers.
type CreateCustomerRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// Validate implements Validator.
func (c CreateCustomerRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.FullName) == "" {
		errs = append(errs, "full_name is required")
	}
	if strings.TrimSpace(c.Email) == "" {
		errs = append(errs, "email is required")
	}
	return errs
}

// CustomerListResponse is the data payload for GET /api/v1/customers.
type CustomerListResponse struct {
	Items      []*domain.Customer `json:"items"`
	Pagination h.PaginationMeta   `json:"pagination"`
}

// CustomerListSuccessResponse is the success envelope for GET /api/v1/customers.
type CustomerListSuccessResponse struct {
	Data  CustomerListResponse `json:"data"`
	Error *h.APIError          `json:"error"`
}

type CustomerController struct {
	Logger  *slog.Logger
	Service domain.CustomerService
}

func NewCustomerController(logger *slog.Logger, svc domain.CustomerService) *CustomerController {
	return &CustomerController{Logger: logger, Service: svc}
}

// ListCustomers godoc
// @Summary List customers
// @Tags customers
// @Produce json
// @Security BearerAuth
// @Param status query string false "active or blocked"
// @Param search query string false "Substring of name, email or phone"
// @Param page query int false "Zero-based page (default 0)"
// @Param rows_per_page query int false "Rows per page (default 10, max 100)"
// @Success 200 {object} controllers.CustomerListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /api/v1/customers [get]
func (c *CustomerController) ListCustomers(w http.ResponseWriter, r *http.Request) {
	state := h.ParsePagination(r)
	q := r.URL.Query()
	filter := domain.CustomerFilter{
		Status: domain.CustomerStatus(q.Get("status")),
		Search: q.Get("search"),
	}
	page, err := c.Service.ListCustomers(r.Context(), filter, state.Window())
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "")
		return
	}
	items, meta, err := finishPage(state, page)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, CustomerListResponse{Items: items, Pagination: meta})
}

// GetCustomer godoc
// @Summary Get a customer
// @Tags customers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Customer ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the customer"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/v1/customers/{id} [get]
func (c *CustomerController) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	customer, err := c.Service.GetCustomer(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "customer not found")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, customer)
}

// CreateCustomer godoc
// @Summary Create a customer
// @Tags customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param customer body CreateCustomerRequest true "Customer data"
// @Success 201 {object} helpers.APIResponse "data contains the created customer"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (email already registered)"
// @Router /api/v1/customers [post]
func (c *CustomerController) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(w, r)
	if !ok {
		return
	}
	var req CreateCustomerRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	customer, err := c.Service.CreateCustomer(r.Context(), actor, req.FullName, req.Email, req.Phone)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "")
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, customer)
}
