package handler

import (
	"encoding/json"
	"net/http"

	"docu360/internal/middleware"
	"docu360/internal/service"

	"github.com/go-chi/chi/v5"
)

// ProductHandler holds the dependencies for the product registry handlers,
// including publish and preview.
type ProductHandler struct {
	products  *service.ProductService
	publisher *service.PublishService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(products *service.ProductService, publisher *service.PublishService) *ProductHandler {
	return &ProductHandler{products: products, publisher: publisher}
}

type productRequest struct {
	CustomerID string `json:"customerId"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	Desc       string `json:"desc"`
}

func (h *ProductHandler) listHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	products, err := h.products.ListProducts(r.Context(), actorFrom(r), r.URL.Query().Get("customerId"))
	if err != nil {
		return appError(err)
	}
	return respondJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) createHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &middleware.AppError{Error: err, Message: "Invalid request body", Code: http.StatusBadRequest}
	}
	product, err := h.products.CreateProduct(r.Context(), actorFrom(r), service.ProductInput{
		CustomerID: req.CustomerID,
		Name:       req.Name,
		Slug:       req.Slug,
		Desc:       req.Desc,
	})
	if err != nil {
		return appError(err)
	}
	return respondJSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) getHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	product, err := h.products.GetProduct(r.Context(), actorFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		return appError(err)
	}
	return respondJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) updateHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &middleware.AppError{Error: err, Message: "Invalid request body", Code: http.StatusBadRequest}
	}
	product, err := h.products.UpdateProduct(r.Context(), actorFrom(r), chi.URLParam(r, "id"), service.ProductInput{
		Name: req.Name,
		Slug: req.Slug,
		Desc: req.Desc,
	})
	if err != nil {
		return appError(err)
	}
	return respondJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) deleteHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	if err := h.products.DeleteProduct(r.Context(), actorFrom(r), chi.URLParam(r, "id")); err != nil {
		return appError(err)
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// publishHandler renders the product's pages, persists the artifact, and
// responds with its public locations.
func (h *ProductHandler) publishHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	result, err := h.publisher.Publish(r.Context(), actorFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		return appError(err)
	}
	return respondJSON(w, http.StatusOK, result)
}

// previewHandler renders the product's pages without persisting anything.
func (h *ProductHandler) previewHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	html, err := h.publisher.Preview(r.Context(), actorFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		return appError(err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html))
	return nil
}
