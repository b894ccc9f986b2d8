package controllers

import (
	"log/slog"
	"net/http"

	h "fleetadmin/internal/delivery/http/helpers"
	"fleetadmin/internal/domain"
)

// AuditLogListResponse is the data payload for GET /api/v1/audit-logs.
type AuditLogListResponse struct {
	Items      []*domain.AuditLogView `json:"items"`
	Pagination h.PaginationMeta       `json:"pagination"`
}

// AuditLogListSuccessResponse is the success envelope for GET /api/v1/audit-logs.
type AuditLogListSuccessResponse struct {
	Data  AuditLogListResponse `json:"data"`
	Error *h.APIError          `json:"error"`
}

type AuditLogController struct {
	Logger  *slog.Logger
	Service domain.AuditService
}

func NewAuditLogController(logger *slog.Logger, svc domain.AuditService) *AuditLogController {
	return &AuditLogController{Logger: logger, Service: svc}
}

// ListAuditLogs godoc
// @Summary List the activity feed
// @Description Newest first. Each entry carries a display icon, a formatted timestamp and a relative time.
// @Tags audit
// @Produce json
// @Security BearerAuth
// @Param entity_type query string false "vehicle, customer, contract, payment or admin"
// @Param entity_id query string false "Entity ID"
// @Param actor_id query string false "Admin ID"
// @Param action query string false "create, update, delete, login, payment or upload"
// @Param page query int false "Zero-based page (default 0)"
// @Param rows_per_page query int false "Rows per page (default 10, max 100)"
// @Success 200 {object} controllers.AuditLogListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /api/v1/audit-logs [get]
func (c *AuditLogController) ListAuditLogs(w http.ResponseWriter, r *http.Request) {
	state := h.ParsePagination(r)
	q := r.URL.Query()
	filter := domain.AuditLogFilter{
		EntityType: q.Get("entity_type"),
		EntityID:   q.Get("entity_id"),
		ActorID:    q.Get("actor_id"),
		Action:     domain.AuditAction(q.Get("action")),
	}
	page, err := c.Service.ListAuditLogs(r.Context(), filter, state.Window())
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "")
		return
	}
	items, meta, err := finishPage(state, page)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, AuditLogListResponse{Items: items, Pagination: meta})
}
