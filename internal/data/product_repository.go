package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SQLProductRepository is a concrete implementation of the product registry
// using sqlx.
type SQLProductRepository struct {
	db *sqlx.DB
}

// NewSQLProductRepository creates a new SQLProductRepository.
func NewSQLProductRepository(db *sqlx.DB) *SQLProductRepository {
	return &SQLProductRepository{db: db}
}

// CreateProduct inserts a new product into the database.
func (r *SQLProductRepository) CreateProduct(ctx context.Context, product *Product) error {
	query := `INSERT INTO products (id, customer_id, name, slug, descr, published, created_at, updated_at)
	          VALUES (:id, :customer_id, :name, :slug, :descr, :published, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, product); err != nil {
		return fmt.Errorf("failed to execute create product query: %w", err)
	}
	return nil
}

// GetProductByID retrieves a single product from the database by its ID.
func (r *SQLProductRepository) GetProductByID(ctx context.Context, id string) (*Product, error) {
	var product Product
	query := `SELECT * FROM products WHERE id = ?`
	if err := r.db.GetContext(ctx, &product, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by id: %w", err)
	}
	return &product, nil
}

// GetProductsByCustomerID retrieves all products owned by a customer,
// most recently updated first.
func (r *SQLProductRepository) GetProductsByCustomerID(ctx context.Context, customerID string) ([]*Product, error) {
	var products []*Product
	query := `SELECT * FROM products WHERE customer_id = ? ORDER BY updated_at DESC`
	if err := r.db.SelectContext(ctx, &products, query, customerID); err != nil {
		return nil, fmt.Errorf("failed to get products by customer id: %w", err)
	}
	return products, nil
}

// GetAllProducts retrieves every product, most recently updated first.
func (r *SQLProductRepository) GetAllProducts(ctx context.Context) ([]*Product, error) {
	var products []*Product
	query := `SELECT * FROM products ORDER BY updated_at DESC`
	if err := r.db.SelectContext(ctx, &products, query); err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// UpdateProduct updates a product's registry fields.
func (r *SQLProductRepository) UpdateProduct(ctx context.Context, product *Product) error {
	query := `UPDATE products SET name = :name, slug = :slug, descr = :descr, updated_at = :updated_at WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, product)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("product %s: %w", product.ID, ErrNotFound)
	}
	return nil
}

// MarkPublished records a successful publish: the flag, the public path, and
// the rendered HTML kept inline for later download. It must only be called
// after the artifact write has succeeded.
func (r *SQLProductRepository) MarkPublished(ctx context.Context, id, publishedURL, publishedHTML string) error {
	query := `UPDATE products SET published = 1, published_url = ?, published_html = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, publishedURL, publishedHTML, id)
	if err != nil {
		return fmt.Errorf("failed to mark product published: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteProduct removes a product from the database by its ID.
func (r *SQLProductRepository) DeleteProduct(ctx context.Context, id string) error {
	query := `DELETE FROM products WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	return nil
}
