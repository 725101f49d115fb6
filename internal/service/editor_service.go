package service

import (
	"context"

	"docu360/internal/doctree"
	"docu360/internal/importer"

	"github.com/microcosm-cc/bluemonday"
)

// EditorService provides the document-tree editing operations for one
// product at a time: folder and page lifecycle plus document import. All
// operations verify product ownership before touching the tree; the tree
// store itself never performs authorization checks.
type EditorService struct {
	products  ProductRepository
	kv        doctree.KV
	sanitizer *bluemonday.Policy
}

// NewEditorService creates a new EditorService.
func NewEditorService(products ProductRepository, kv doctree.KV) *EditorService {
	// UGCPolicy allows the basic formatting the editor produces (links,
	// lists, bold, headings) while stripping dangerous HTML.
	return &EditorService{
		products:  products,
		kv:        kv,
		sanitizer: bluemonday.UGCPolicy(),
	}
}

// open verifies the actor may edit the product and loads its tree.
func (s *EditorService) open(ctx context.Context, actor Actor, productID string) (*doctree.Store, error) {
	product, err := s.products.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !actor.owns(product) {
		return nil, ErrForbidden
	}
	return doctree.Open(s.kv, productID)
}

// GetTree returns the product's current folder/page tree.
func (s *EditorService) GetTree(ctx context.Context, actor Actor, productID string) (doctree.Tree, error) {
	store, err := s.open(ctx, actor, productID)
	if err != nil {
		return doctree.Tree{}, err
	}
	return store.Tree(), nil
}

// CreateFolder adds a folder under the given parent, or at the root.
func (s *EditorService) CreateFolder(ctx context.Context, actor Actor, productID string, parentID *string) (doctree.Folder, error) {
	store, err := s.open(ctx, actor, productID)
	if err != nil {
		return doctree.Folder{}, err
	}
	return store.CreateFolder(parentID)
}

// RenameFolder sets a folder's display name.
func (s *EditorService) RenameFolder(ctx context.Context, actor Actor, productID, folderID, name string) (doctree.Folder, error) {
	store, err := s.open(ctx, actor, productID)
	if err != nil {
		return doctree.Folder{}, err
	}
	return store.RenameFolder(folderID, name)
}

// DeleteFolder removes a folder and its descendant subtree, orphaning the
// pages that pointed into it.
func (s *EditorService) DeleteFolder(ctx context.Context, actor Actor, productID, folderID string) error {
	store, err := s.open(ctx, actor, productID)
	if err != nil {
		return err
	}
	return store.DeleteFolder(folderID)
}

// CreatePage adds a page with a default title inside the given folder.
func (s *EditorService) CreatePage(ctx context.Context, actor Actor, productID string, folderID *string) (doctree.Page, error) {
	store, err := s.open(ctx, actor, productID)
	if err != nil {
		return doctree.Page{}, err
	}
	return store.CreatePage(folderID)
}

// UpdatePage merges the given fields into a page. Content markup is
// sanitized before it reaches the tree.
func (s *EditorService) UpdatePage(ctx context.Context, actor Actor, productID, pageID string, upd doctree.PageUpdate) (doctree.Page, error) {
	store, err := s.open(ctx, actor, productID)
	if err != nil {
		return doctree.Page{}, err
	}
	if upd.ContentHTML != nil {
		clean := s.sanitizer.Sanitize(*upd.ContentHTML)
		upd.ContentHTML = &clean
	}
	return store.UpdatePage(pageID, upd)
}

// DeletePage removes a page.
func (s *EditorService) DeletePage(ctx context.Context, actor Actor, productID, pageID string) error {
	store, err := s.open(ctx, actor, productID)
	if err != nil {
		return err
	}
	return store.DeletePage(pageID)
}

// Import parses an uploaded HTML or Markdown document and attaches the
// derived pages to the tree. With a pageID the first derived section
// replaces that page's content; with a folderID the pages are added there;
// with neither, a new "Imported" folder receives them. Unsupported formats
// are rejected before anything is touched.
func (s *EditorService) Import(ctx context.Context, actor Actor, productID, filename string, document []byte, folderID, pageID *string) (doctree.Tree, error) {
	store, err := s.open(ctx, actor, productID)
	if err != nil {
		return doctree.Tree{}, err
	}
	sections, err := importer.Parse(filename, document)
	if err != nil {
		return doctree.Tree{}, err
	}

	if pageID != nil {
		content := s.sanitizer.Sanitize(sections[0].ContentHTML)
		if _, err := store.UpdatePage(*pageID, doctree.PageUpdate{ContentHTML: &content}); err != nil {
			return doctree.Tree{}, err
		}
		return store.Tree(), nil
	}

	items := make([]doctree.NewPage, 0, len(sections))
	for _, sec := range sections {
		items = append(items, doctree.NewPage{
			Title:       sec.Title,
			ContentHTML: s.sanitizer.Sanitize(sec.ContentHTML),
		})
	}
	if _, err := store.ImportPages(items, folderID); err != nil {
		return doctree.Tree{}, err
	}
	return store.Tree(), nil
}
