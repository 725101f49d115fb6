package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SQLUserRepository handles database operations for platform logins.
type SQLUserRepository struct {
	db *sqlx.DB
}

// NewSQLUserRepository creates a new SQLUserRepository.
func NewSQLUserRepository(db *sqlx.DB) *SQLUserRepository {
	return &SQLUserRepository{db: db}
}

// CreateUser inserts a new user.
func (r *SQLUserRepository) CreateUser(ctx context.Context, user *User) error {
	query := `INSERT INTO users (id, name, email, subject, role, customer_id)
	          VALUES (:id, :name, :email, :subject, :role, :customer_id)`
	if _, err := r.db.NamedExecContext(ctx, query, user); err != nil {
		return fmt.Errorf("failed to execute create user query: %w", err)
	}
	return nil
}

// GetUserBySubject retrieves the user mapped to an identity-provider subject.
func (r *SQLUserRepository) GetUserBySubject(ctx context.Context, subject string) (*User, error) {
	var user User
	query := `SELECT * FROM users WHERE subject = ?`
	if err := r.db.GetContext(ctx, &user, query, subject); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user with subject %q: %w", subject, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by subject: %w", err)
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email, used to bind a first OIDC login
// to a pre-provisioned account.
func (r *SQLUserRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	query := `SELECT * FROM users WHERE email = ?`
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user with email %q: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

// BindSubject records the identity-provider subject on a user after its
// first login.
func (r *SQLUserRepository) BindSubject(ctx context.Context, id, subject string) error {
	query := `UPDATE users SET subject = ? WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, subject, id)
	if err != nil {
		return fmt.Errorf("failed to bind user subject: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return nil
}
