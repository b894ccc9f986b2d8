package controllers

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	h "fleetadmin/internal/delivery/http/helpers"
	"fleetadmin/internal/delivery/http/middleware"
	"fleetadmin/internal/domain"
)

// writeServiceError maps err to an error envelope. notFoundMsg replaces the message on 404.
// Unexpected errors are logged and hidden from the client.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error, notFoundMsg string) {
	status, code := h.StatusForError(err)
	msg := err.Error()
	switch status {
	case http.StatusNotFound:
		if notFoundMsg != "" {
			msg = notFoundMsg
		}
	case http.StatusInternalServerError:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		msg = "internal server error"
	}
	h.WriteJSONError(w, status, code, msg)
}

// actorID returns the authenticated admin ID or writes 401.
func actorID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := middleware.AdminIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return "", false
	}
	return id, true
}

// pathID reads a UUID path value or writes 400.
func pathID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	id := r.PathValue(name)
	if id == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "missing "+name)
		return "", false
	}
	if !isUUID(id) {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid "+name)
		return "", false
	}
	return id, true
}

// queryID reads an optional UUID query parameter. An invalid value writes 400.
func queryID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	v := r.URL.Query().Get(name)
	if v != "" && !isUUID(v) {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid "+name)
		return "", false
	}
	return v, true
}

func isUUID(s string) bool {
	return uuid.Validate(s) == nil && len(s) == 36
}

// finishPage records the page total on state and returns non-nil items with pagination metadata.
func finishPage[T any](state *domain.PaginationState, page domain.Page[T]) ([]T, h.PaginationMeta, error) {
	if err := state.SetTotalCount(page.Total); err != nil {
		return nil, h.PaginationMeta{}, err
	}
	items := page.Items
	if items == nil {
		items = []T{}
	}
	return items, h.NewPaginationMeta(state), nil
}
