package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"docu360/internal/data"

	"github.com/google/uuid"
)

// CustomerRepository defines the interface for database operations on
// customer accounts.
type CustomerRepository interface {
	CreateCustomer(ctx context.Context, customer *data.Customer) error
	GetCustomerByID(ctx context.Context, id string) (*data.Customer, error)
	GetAllCustomers(ctx context.Context) ([]*data.Customer, error)
	UpdateCustomer(ctx context.Context, customer *data.Customer) error
	DeleteCustomer(ctx context.Context, id string) error
}

// CustomerService provides business logic for managing customer accounts.
// Only admins may manage customers.
type CustomerService struct {
	repo CustomerRepository
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(repo CustomerRepository) *CustomerService {
	return &CustomerService{repo: repo}
}

// CustomerInput carries the caller-supplied customer fields.
type CustomerInput struct {
	Name        string
	Designation string
	Email       string
	Company     string
	Status      string
}

// CreateCustomer creates a new active customer account.
func (s *CustomerService) CreateCustomer(ctx context.Context, actor Actor, input CustomerInput) (*data.Customer, error) {
	if actor.Role != data.RoleAdmin {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Email) == "" {
		return nil, fmt.Errorf("%w: name and email are required", ErrValidation)
	}
	now := time.Now().UTC()
	customer := &data.Customer{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(input.Name),
		Designation: input.Designation,
		Email:       strings.TrimSpace(input.Email),
		Company:     input.Company,
		Status:      "active",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.CreateCustomer(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetCustomer retrieves one customer account.
func (s *CustomerService) GetCustomer(ctx context.Context, actor Actor, id string) (*data.Customer, error) {
	if actor.Role != data.RoleAdmin {
		return nil, ErrForbidden
	}
	return s.repo.GetCustomerByID(ctx, id)
}

// ListCustomers retrieves all customer accounts.
func (s *CustomerService) ListCustomers(ctx context.Context, actor Actor) ([]*data.Customer, error) {
	if actor.Role != data.RoleAdmin {
		return nil, ErrForbidden
	}
	return s.repo.GetAllCustomers(ctx)
}

// UpdateCustomer merges the input into an existing customer account.
func (s *CustomerService) UpdateCustomer(ctx context.Context, actor Actor, id string, input CustomerInput) (*data.Customer, error) {
	if actor.Role != data.RoleAdmin {
		return nil, ErrForbidden
	}
	customer, err := s.repo.GetCustomerByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		customer.Name = name
	}
	if input.Designation != "" {
		customer.Designation = input.Designation
	}
	if email := strings.TrimSpace(input.Email); email != "" {
		customer.Email = email
	}
	if input.Company != "" {
		customer.Company = input.Company
	}
	if input.Status == "active" || input.Status == "inactive" {
		customer.Status = input.Status
	}
	customer.UpdatedAt = time.Now().UTC()
	if err := s.repo.UpdateCustomer(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer removes a customer account.
func (s *CustomerService) DeleteCustomer(ctx context.Context, actor Actor, id string) error {
	if actor.Role != data.RoleAdmin {
		return ErrForbidden
	}
	return s.repo.DeleteCustomer(ctx, id)
}
