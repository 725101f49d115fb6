package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"docu360/internal/data"
	"docu360/internal/doctree"
	"docu360/internal/render"
)

// PublishService produces and durably exposes the rendered static-site
// artifact for a product.
type PublishService struct {
	products ProductRepository
	kv       doctree.KV
	dir      string
	basePath string
}

// NewPublishService creates a new PublishService. dir is the directory
// published artifacts are written to; basePath is the public path prefix
// they are served under.
func NewPublishService(products ProductRepository, kv doctree.KV, dir, basePath string) *PublishService {
	return &PublishService{products: products, kv: kv, dir: dir, basePath: basePath}
}

// PublishResult is the pair of public locations of a published artifact.
type PublishResult struct {
	HostedPath   string `json:"hostedUrl"`
	DownloadPath string `json:"htmlDownloadUrl"`
}

// Publish renders the product's current page set and durably exposes the
// artifact. The product record is only marked published after the artifact
// write has succeeded; a failed write leaves the record untouched.
func (s *PublishService) Publish(ctx context.Context, actor Actor, productID string) (*PublishResult, error) {
	product, err := s.products.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !actor.owns(product) {
		return nil, ErrForbidden
	}

	html, err := s.renderProduct(product.Name, productID)
	if err != nil {
		return nil, err
	}

	fileName := productID + ".html"
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create publish directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, fileName), []byte(html), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write published artifact: %w", err)
	}

	hostedPath := s.basePath + "/" + fileName
	if err := s.products.MarkPublished(ctx, productID, hostedPath, html); err != nil {
		return nil, err
	}

	return &PublishResult{
		HostedPath:   hostedPath,
		DownloadPath: "/api/published/" + productID + "/download",
	}, nil
}

// Preview renders the product's current page set without persisting
// anything.
func (s *PublishService) Preview(ctx context.Context, actor Actor, productID string) (string, error) {
	product, err := s.products.GetProductByID(ctx, productID)
	if err != nil {
		return "", err
	}
	if !actor.owns(product) {
		return "", ErrForbidden
	}
	return s.renderProduct(product.Name, productID)
}

// Download returns a previously published artifact verbatim together with
// the suggested attachment filename. A product that was never published
// reports NotFound.
func (s *PublishService) Download(ctx context.Context, productID string) (fileName, html string, err error) {
	product, err := s.products.GetProductByID(ctx, productID)
	if err != nil {
		return "", "", err
	}
	if product.PublishedHTML == nil {
		return "", "", fmt.Errorf("product %s has no published artifact: %w", productID, data.ErrNotFound)
	}
	return fmt.Sprintf("product-%s.html", productID), *product.PublishedHTML, nil
}

func (s *PublishService) renderProduct(title, productID string) (string, error) {
	store, err := doctree.Open(s.kv, productID)
	if err != nil {
		return "", err
	}
	tree := store.Tree()

	// The renderer does not order pages itself; every call site sorts
	// lexicographically by title so repeated renders are reproducible.
	sort.SliceStable(tree.Pages, func(i, j int) bool {
		return tree.Pages[i].Title < tree.Pages[j].Title
	})

	pages := make([]render.Page, 0, len(tree.Pages))
	for _, p := range tree.Pages {
		pages = append(pages, render.Page{Title: p.Title, Slug: p.Slug, ContentHTML: p.ContentHTML})
	}
	return render.Build(title, pages)
}
