package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"docu360/internal/data"
	"docu360/internal/doctree"
	"docu360/internal/slug"

	"github.com/google/uuid"
)

// ProductRepository defines the interface for database operations on the
// product registry.
type ProductRepository interface {
	CreateProduct(ctx context.Context, product *data.Product) error
	GetProductByID(ctx context.Context, id string) (*data.Product, error)
	GetProductsByCustomerID(ctx context.Context, customerID string) ([]*data.Product, error)
	GetAllProducts(ctx context.Context) ([]*data.Product, error)
	UpdateProduct(ctx context.Context, product *data.Product) error
	MarkPublished(ctx context.Context, id, publishedURL, publishedHTML string) error
	DeleteProduct(ctx context.Context, id string) error
}

// BlobKV is the keyed blob storage the tree snapshots live in.
type BlobKV interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Delete(key string) error
}

// ProductService provides business logic for the product registry.
type ProductService struct {
	repo  ProductRepository
	blobs BlobKV
}

// NewProductService creates a new ProductService.
func NewProductService(repo ProductRepository, blobs BlobKV) *ProductService {
	return &ProductService{repo: repo, blobs: blobs}
}

// ProductInput carries the caller-supplied product fields.
type ProductInput struct {
	CustomerID string
	Name       string
	Slug       string
	Desc       string
}

// CreateProduct creates a product for a customer account. Customer actors
// always create under their own account; the slug derives from the name
// unless one is supplied explicitly.
func (s *ProductService) CreateProduct(ctx context.Context, actor Actor, input ProductInput) (*data.Product, error) {
	if actor.Role == data.RoleCustomer {
		input.CustomerID = actor.CustomerID
	}
	if input.CustomerID == "" {
		return nil, fmt.Errorf("%w: customerId is required", ErrValidation)
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	productSlug := slug.Make(input.Slug)
	if productSlug == "" {
		productSlug = slug.Make(input.Name)
	}
	now := time.Now().UTC()
	product := &data.Product{
		ID:         uuid.NewString(),
		CustomerID: input.CustomerID,
		Name:       strings.TrimSpace(input.Name),
		Slug:       productSlug,
		Desc:       input.Desc,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct retrieves a product, enforcing ownership.
func (s *ProductService) GetProduct(ctx context.Context, actor Actor, id string) (*data.Product, error) {
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.owns(product) {
		return nil, ErrForbidden
	}
	return product, nil
}

// ListProducts retrieves the products visible to the actor: everything for
// admins (optionally filtered by customer), only their own for customers.
func (s *ProductService) ListProducts(ctx context.Context, actor Actor, customerID string) ([]*data.Product, error) {
	if actor.Role == data.RoleCustomer {
		return s.repo.GetProductsByCustomerID(ctx, actor.CustomerID)
	}
	if customerID != "" {
		return s.repo.GetProductsByCustomerID(ctx, customerID)
	}
	return s.repo.GetAllProducts(ctx)
}

// UpdateProduct merges the input into an existing product. The slug is
// regenerated from a new name only when no explicit slug accompanies it.
func (s *ProductService) UpdateProduct(ctx context.Context, actor Actor, id string, input ProductInput) (*data.Product, error) {
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.owns(product) {
		return nil, ErrForbidden
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		product.Name = name
		if input.Slug == "" {
			product.Slug = slug.Make(name)
		}
	}
	if input.Slug != "" {
		product.Slug = slug.Make(input.Slug)
	}
	if input.Desc != "" {
		product.Desc = input.Desc
	}
	product.UpdatedAt = time.Now().UTC()
	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product together with its document tree snapshot.
func (s *ProductService) DeleteProduct(ctx context.Context, actor Actor, id string) error {
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.owns(product) {
		return ErrForbidden
	}
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return err
	}
	// Best effort; an orphaned snapshot is unreachable but harmless.
	_ = s.blobs.Delete(doctree.SnapshotKey(id))
	return nil
}
