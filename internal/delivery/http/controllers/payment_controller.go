package controllers

import (
	"log/slog"
	"net/http"
	"time"

	h "fleetadmin/internal/delivery/http/helpers"
	"fleetadmin/internal/domain"
)

// RecordPaymentRequest is the request body for POST /api/v1/payments.
type RecordPaymentRequest struct {
	ContractID  string               `json:"contract_id"`
	AmountCents int64                `json:"amount_cents"`
	Method      domain.PaymentMethod `json:"method"`
	PaidAt      *time.Time           `json:"paid_at,omitempty"`
}

// Validate implements Validator.
func (p RecordPaymentRequest) Validate() []string {
	var errs []string
	if !isUUID(p.ContractID) {
		errs = append(errs, "contract_id must be a UUID")
	}
	if p.AmountCents <= 0 {
		errs = append(errs, "amount_cents must be greater than zero")
	}
	if !p.Method.IsValid() {
		errs = append(errs, "method must be one of cash, card, transfer")
	}
	return errs
}

// PaymentListResponse is the data payload for GET /api/v1/payments.
type PaymentListResponse struct {
	Items      []*domain.Payment `json:"items"`
	Pagination h.PaginationMeta  `json:"pagination"`
}

// PaymentListSuccessResponse is the success envelope for GET /api/v1/payments.
type PaymentListSuccessResponse struct {
	Data  PaymentListResponse `json:"data"`
	Error *h.APIError         `json:"error"`
}

type PaymentController struct {
	Logger  *slog.Logger
	Service domain.PaymentService
}

func NewPaymentController(logger *slog.Logger, svc domain.PaymentService) *PaymentController {
	return &PaymentController{Logger: logger, Service: svc}
}

// ListPayments godoc
// @Summary List payments
// @Description Ordered by payment date, newest first.
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param contract_id query string false "Contract ID (UUID)"
// @Param customer_id query string false "Customer ID (UUID)"
// @Param status query string false "completed, failed or refunded"
// @Param page query int false "Zero-based page (default 0)"
// @Param rows_per_page query int false "Rows per page (default 10, max 100)"
// @Success 200 {object} controllers.PaymentListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /api/v1/payments [get]
func (c *PaymentController) ListPayments(w http.ResponseWriter, r *http.Request) {
	state := h.ParsePagination(r)
	contractID, ok := queryID(w, r, "contract_id")
	if !ok {
		return
	}
	customerID, ok := queryID(w, r, "customer_id")
	if !ok {
		return
	}
	filter := domain.PaymentFilter{
		ContractID: contractID,
		CustomerID: customerID,
		Status:     domain.PaymentStatus(r.URL.Query().Get("status")),
	}
	page, err := c.Service.ListPayments(r.Context(), filter, state.Window())
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "")
		return
	}
	items, meta, err := finishPage(state, page)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, PaymentListResponse{Items: items, Pagination: meta})
}

// GetPayment godoc
// @Summary Get a payment
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the payment"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/v1/payments/{id} [get]
func (c *PaymentController) GetPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	p, err := c.Service.GetPayment(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "payment not found")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, p)
}

// RecordPayment godoc
// @Summary Record a payment
// @Description The contract must be active. A receipt is emailed to the customer.
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payment body RecordPaymentRequest true "Payment data"
// @Success 201 {object} helpers.APIResponse "data contains the recorded payment"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (contract)"
// @Router /api/v1/payments [post]
func (c *PaymentController) RecordPayment(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(w, r)
	if !ok {
		return
	}
	var req RecordPaymentRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	in := domain.RecordPaymentInput{
		ContractID:  req.ContractID,
		AmountCents: req.AmountCents,
		Method:      req.Method,
	}
	if req.PaidAt != nil {
		in.PaidAt = *req.PaidAt
	}
	p, err := c.Service.RecordPayment(r.Context(), actor, in)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "contract not found")
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, p)
}
