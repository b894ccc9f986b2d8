package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	h "fleetadmin/internal/delivery/http/helpers"
	"fleetadmin/internal/domain"
)

const (
	// maxUploadBytes bounds the multipart body of a contract document upload.
	maxUploadBytes = 11 << 20
	uploadMemory   = 2 << 20
	dateLayout     = "2006-01-02"
)

// CreateContractRequest is the request body for POST /api/v1/contracts.
type CreateContractRequest struct {
	CustomerID     string `json:"customer_id"`
	VehicleID      string `json:"vehicle_id"`
	PrincipalCents int64  `json:"principal_cents"`
	AnnualRateBps  int    `json:"annual_rate_bps"`
	TermMonths     int    `json:"term_months"`
	StartDate      string `json:"start_date,omitempty"` // YYYY-MM-DD, defaults to today
}

// Validate implements Validator.
func (c CreateContractRequest) Validate() []string {
	var errs []string
	if !isUUID(c.CustomerID) {
		errs = append(errs, "customer_id must be a UUID")
	}
	if !isUUID(c.VehicleID) {
		errs = append(errs, "vehicle_id must be a UUID")
	}
	if c.PrincipalCents <= 0 {
		errs = append(errs, "principal_cents must be greater than zero")
	}
	if c.TermMonths <= 0 {
		errs = append(errs, "term_months must be greater than zero")
	}
	if c.StartDate != "" {
		if _, err := time.Parse(dateLayout, c.StartDate); err != nil {
			errs = append(errs, "start_date must be YYYY-MM-DD")
		}
	}
	return errs
}

// ContractView is a contract with its computed monthly installment.
// swagger:model ContractView
type ContractView struct {
	*domain.Contract
	MonthlyInstallmentCents int64 `json:"monthly_installment_cents"`
}

func newContractView(c *domain.Contract) *ContractView {
	return &ContractView{Contract: c, MonthlyInstallmentCents: c.MonthlyInstallment()}
}

// ContractListResponse is the data payload for GET /api/v1/contracts.
type ContractListResponse struct {
	Items      []*ContractView  `json:"items"`
	Pagination h.PaginationMeta `json:"pagination"`
}

// ContractListSuccessResponse is the success envelope for GET /api/v1/contracts.
type ContractListSuccessResponse struct {
	Data  ContractListResponse `json:"data"`
	Error *h.APIError          `json:"error"`
}

// DocumentURLResponse is the data payload for GET /api/v1/contracts/{id}/document.
type DocumentURLResponse struct {
	URL string `json:"url"`
}

type ContractController struct {
	Logger  *slog.Logger
	Service domain.ContractService
}

func NewContractController(logger *slog.Logger, svc domain.ContractService) *ContractController {
	return &ContractController{Logger: logger, Service: svc}
}

// ListContracts godoc
// @Summary List contracts
// @Tags contracts
// @Produce json
// @Security BearerAuth
// @Param customer_id query string false "Customer ID (UUID)"
// @Param vehicle_id query string false "Vehicle ID (UUID)"
// @Param status query string false "active, closed or defaulted"
// @Param page query int false "Zero-based page (default 0)"
// @Param rows_per_page query int false "Rows per page (default 10, max 100)"
// @Success 200 {object} controllers.ContractListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /api/v1/contracts [get]
func (c *ContractController) ListContracts(w http.ResponseWriter, r *http.Request) {
	state := h.ParsePagination(r)
	customerID, ok := queryID(w, r, "customer_id")
	if !ok {
		return
	}
	vehicleID, ok := queryID(w, r, "vehicle_id")
	if !ok {
		return
	}
	filter := domain.ContractFilter{
		CustomerID: customerID,
		VehicleID:  vehicleID,
		Status:     domain.ContractStatus(r.URL.Query().Get("status")),
	}
	page, err := c.Service.ListContracts(r.Context(), filter, state.Window())
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "")
		return
	}
	contracts, meta, err := finishPage(state, page)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "")
		return
	}
	items := make([]*ContractView, 0, len(contracts))
	for _, ct := range contracts {
		items = append(items, newContractView(ct))
	}
	h.WriteJSONSuccess(w, http.StatusOK, ContractListResponse{Items: items, Pagination: meta})
}

// GetContract godoc
// @Summary Get a contract
// @Tags contracts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Contract ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the contract with monthly_installment_cents"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/v1/contracts/{id} [get]
func (c *ContractController) GetContract(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	ct, err := c.Service.GetContract(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "contract not found")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, newContractView(ct))
}

// CreateContract godoc
// @Summary Create a financing contract
// @Description The customer must be active and the vehicle available. The vehicle becomes leased.
// @Tags contracts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param contract body CreateContractRequest true "Contract terms"
// @Success 201 {object} helpers.APIResponse "data contains the created contract"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (customer or vehicle)"
// @Router /api/v1/contracts [post]
func (c *ContractController) CreateContract(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(w, r)
	if !ok {
		return
	}
	var req CreateContractRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	var start time.Time
	if req.StartDate != "" {
		start, _ = time.Parse(dateLayout, req.StartDate)
	}
	ct, err := c.Service.CreateContract(r.Context(), actor, domain.CreateContractInput{
		CustomerID:     req.CustomerID,
		VehicleID:      req.VehicleID,
		PrincipalCents: req.PrincipalCents,
		AnnualRateBps:  req.AnnualRateBps,
		TermMonths:     req.TermMonths,
		StartDate:      start,
	})
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "customer or vehicle not found")
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, newContractView(ct))
}

// UploadDocument godoc
// @Summary Attach the signed contract PDF
// @Tags contracts
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Contract ID (UUID)"
// @Param file formData file true "Signed contract (PDF, max 10 MiB)"
// @Success 200 {object} helpers.APIResponse "data contains the updated contract"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/v1/contracts/{id}/document [post]
func (c *ContractController) UploadDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	actor, ok := actorID(w, r)
	if !ok {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(uploadMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.WriteJSONError(w, http.StatusRequestEntityTooLarge, h.ErrCodePayloadTooLarge, "document is too large")
			return
		}
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "expected multipart form with a file field")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "file is required")
		return
	}
	defer file.Close()

	ct, err := c.Service.AttachDocument(r.Context(), actor, id, domain.ContractDocument{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "contract not found")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, newContractView(ct))
}

// GetDocumentURL godoc
// @Summary Get a download link for the signed contract
// @Description Returns a short-lived presigned URL.
// @Tags contracts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Contract ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data.url contains the presigned URL"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (contract or document)"
// @Router /api/v1/contracts/{id}/document [get]
func (c *ContractController) GetDocumentURL(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	url, err := c.Service.DocumentURL(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "contract document not found")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, DocumentURLResponse{URL: url})
}
