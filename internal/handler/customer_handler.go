package handler

import (
	"encoding/json"
	"net/http"

	"docu360/internal/middleware"
	"docu360/internal/service"

	"github.com/go-chi/chi/v5"
)

// CustomerHandler holds the dependencies for the customer-account handlers.
type CustomerHandler struct {
	customers *service.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(customers *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

type customerRequest struct {
	Name        string `json:"name"`
	Designation string `json:"designation"`
	Email       string `json:"email"`
	Company     string `json:"company"`
	Status      string `json:"status"`
}

func (h *CustomerHandler) listHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	customers, err := h.customers.ListCustomers(r.Context(), actorFrom(r))
	if err != nil {
		return appError(err)
	}
	return respondJSON(w, http.StatusOK, customers)
}

func (h *CustomerHandler) createHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var req customerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &middleware.AppError{Error: err, Message: "Invalid request body", Code: http.StatusBadRequest}
	}
	customer, err := h.customers.CreateCustomer(r.Context(), actorFrom(r), service.CustomerInput{
		Name:        req.Name,
		Designation: req.Designation,
		Email:       req.Email,
		Company:     req.Company,
	})
	if err != nil {
		return appError(err)
	}
	return respondJSON(w, http.StatusCreated, customer)
}

func (h *CustomerHandler) getHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	customer, err := h.customers.GetCustomer(r.Context(), actorFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		return appError(err)
	}
	return respondJSON(w, http.StatusOK, customer)
}

func (h *CustomerHandler) updateHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var req customerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &middleware.AppError{Error: err, Message: "Invalid request body", Code: http.StatusBadRequest}
	}
	customer, err := h.customers.UpdateCustomer(r.Context(), actorFrom(r), chi.URLParam(r, "id"), service.CustomerInput{
		Name:        req.Name,
		Designation: req.Designation,
		Email:       req.Email,
		Company:     req.Company,
		Status:      req.Status,
	})
	if err != nil {
		return appError(err)
	}
	return respondJSON(w, http.StatusOK, customer)
}

func (h *CustomerHandler) deleteHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	if err := h.customers.DeleteCustomer(r.Context(), actorFrom(r), chi.URLParam(r, "id")); err != nil {
		return appError(err)
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}
