package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SQLCustomerRepository handles database operations for customer accounts.
type SQLCustomerRepository struct {
	db *sqlx.DB
}

// NewSQLCustomerRepository creates a new SQLCustomerRepository.
func NewSQLCustomerRepository(db *sqlx.DB) *SQLCustomerRepository {
	return &SQLCustomerRepository{db: db}
}

// CreateCustomer inserts a new customer account.
func (r *SQLCustomerRepository) CreateCustomer(ctx context.Context, customer *Customer) error {
	query := `INSERT INTO customers (id, name, designation, email, company, status, created_at, updated_at)
	          VALUES (:id, :name, :designation, :email, :company, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, customer); err != nil {
		return fmt.Errorf("failed to execute create customer query: %w", err)
	}
	return nil
}

// GetCustomerByID retrieves a single customer by its ID.
func (r *SQLCustomerRepository) GetCustomerByID(ctx context.Context, id string) (*Customer, error) {
	var customer Customer
	query := `SELECT * FROM customers WHERE id = ?`
	if err := r.db.GetContext(ctx, &customer, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("customer %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get customer by id: %w", err)
	}
	return &customer, nil
}

// GetAllCustomers retrieves all customer accounts ordered by name.
func (r *SQLCustomerRepository) GetAllCustomers(ctx context.Context) ([]*Customer, error) {
	var customers []*Customer
	query := `SELECT * FROM customers ORDER BY name`
	if err := r.db.SelectContext(ctx, &customers, query); err != nil {
		return nil, fmt.Errorf("failed to get all customers: %w", err)
	}
	return customers, nil
}

// UpdateCustomer updates an existing customer account.
func (r *SQLCustomerRepository) UpdateCustomer(ctx context.Context, customer *Customer) error {
	query := `UPDATE customers SET name = :name, designation = :designation, email = :email,
	          company = :company, status = :status, updated_at = :updated_at WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, customer)
	if err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("customer %s: %w", customer.ID, ErrNotFound)
	}
	return nil
}

// DeleteCustomer removes a customer account by its ID.
func (r *SQLCustomerRepository) DeleteCustomer(ctx context.Context, id string) error {
	query := `DELETE FROM customers WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("customer %s: %w", id, ErrNotFound)
	}
	return nil
}
