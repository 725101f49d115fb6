package handler

import (
	"fmt"
	"net/http"

	"docu360/internal/middleware"
	"docu360/internal/service"

	"github.com/go-chi/chi/v5"
)

// PublishedHandler serves previously published artifacts for download.
type PublishedHandler struct {
	publisher *service.PublishService
}

// NewPublishedHandler creates a new PublishedHandler.
func NewPublishedHandler(publisher *service.PublishService) *PublishedHandler {
	return &PublishedHandler{publisher: publisher}
}

// downloadHandler returns the stored artifact verbatim as an attachment.
func (h *PublishedHandler) downloadHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	fileName, html, err := h.publisher.Download(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return appError(err)
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", fileName))
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html))
	return nil
}
