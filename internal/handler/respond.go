package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"docu360/internal/data"
	"docu360/internal/doctree"
	"docu360/internal/importer"
	"docu360/internal/middleware"
	"docu360/internal/service"
)

// respondJSON writes v as a JSON response body.
func respondJSON(w http.ResponseWriter, code int, v interface{}) *middleware.AppError {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if v == nil {
		return nil
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to encode response", Code: http.StatusInternalServerError}
	}
	return nil
}

// appError maps service-layer errors onto the API error taxonomy. Validation
// problems and rejected import formats carry their specific message to the
// user; everything unexpected becomes an opaque internal error.
func appError(err error) *middleware.AppError {
	switch {
	case errors.Is(err, service.ErrForbidden):
		return &middleware.AppError{Error: err, Message: "Forbidden", Code: http.StatusForbidden}
	case errors.Is(err, data.ErrNotFound),
		errors.Is(err, doctree.ErrFolderNotFound),
		errors.Is(err, doctree.ErrPageNotFound):
		return &middleware.AppError{Error: err, Message: "Not found", Code: http.StatusNotFound}
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, doctree.ErrFolderRequired),
		errors.Is(err, importer.ErrUnsupportedFormat):
		return &middleware.AppError{Error: err, Message: err.Error(), Code: http.StatusBadRequest}
	default:
		return &middleware.AppError{Error: err, Message: "Internal Server Error", Code: http.StatusInternalServerError}
	}
}

// actorFrom converts the request-context user into a service actor.
func actorFrom(r *http.Request) service.Actor {
	userInfo := middleware.GetUserInfo(r.Context())
	return service.Actor{
		Subject:    userInfo.Subject,
		Role:       userInfo.Role,
		CustomerID: userInfo.CustomerID,
	}
}
