package doctree

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"docu360/internal/slug"

	"github.com/google/uuid"
)

const (
	defaultFolderName = "New Folder"
	defaultPageTitle  = "Untitled Page"
)

var (
	// ErrFolderRequired is returned when a page is created without a target folder.
	ErrFolderRequired = errors.New("a folder must be selected before creating a page")
	// ErrFolderNotFound is returned when a referenced folder does not exist.
	ErrFolderNotFound = errors.New("folder not found")
	// ErrPageNotFound is returned when a referenced page does not exist.
	ErrPageNotFound = errors.New("page not found")
)

// KV is the keyed blob storage the store persists its snapshot into. Get
// returns nil for a missing key.
type KV interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
}

// Store maintains the folder/page tree of a single product. The tree is
// loaded as a unit and the full snapshot is written back after every
// mutation. Mutations are all-or-nothing: the in-memory tree only advances
// once the snapshot write has succeeded.
type Store struct {
	kv   KV
	key  string
	tree Tree
}

// SnapshotKey is the blob-store key holding a product's tree snapshot.
func SnapshotKey(productID string) string {
	return "tree:" + productID
}

// Open loads the tree for the given product. A missing or corrupt snapshot
// yields an empty tree, never an error.
func Open(kv KV, productID string) (*Store, error) {
	s := &Store{kv: kv, key: SnapshotKey(productID)}
	raw, err := kv.Get(s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to load tree snapshot: %w", err)
	}
	if raw != nil {
		var t Tree
		if err := json.Unmarshal(raw, &t); err == nil {
			s.tree = t
		}
		// Corrupt snapshots degrade to an empty tree.
	}
	return s, nil
}

// Tree returns a copy of the current snapshot.
func (s *Store) Tree() Tree {
	t := Tree{
		Folders: make([]Folder, len(s.tree.Folders)),
		Pages:   make([]Page, len(s.tree.Pages)),
	}
	copy(t.Folders, s.tree.Folders)
	copy(t.Pages, s.tree.Pages)
	return t
}

// CreateFolder allocates a new folder with a default name under the given
// parent, or at the root when parentID is nil.
func (s *Store) CreateFolder(parentID *string) (Folder, error) {
	if parentID != nil && s.findFolder(*parentID) == nil {
		return Folder{}, ErrFolderNotFound
	}
	f := Folder{ID: uuid.NewString(), Name: defaultFolderName, ParentID: parentID}
	next := s.Tree()
	next.Folders = append(next.Folders, f)
	if err := s.save(next); err != nil {
		return Folder{}, err
	}
	return f, nil
}

// RenameFolder sets the folder's display name. An empty name after trimming
// keeps the old name; this is not an error.
func (s *Store) RenameFolder(id, name string) (Folder, error) {
	f := s.findFolder(id)
	if f == nil {
		return Folder{}, ErrFolderNotFound
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return *f, nil
	}
	next := s.Tree()
	for i := range next.Folders {
		if next.Folders[i].ID == id {
			next.Folders[i].Name = name
			if err := s.save(next); err != nil {
				return Folder{}, err
			}
			return next.Folders[i], nil
		}
	}
	return Folder{}, ErrFolderNotFound
}

// DeleteFolder removes the folder and its entire descendant subtree. Pages
// pointing into the deleted closure are orphaned (FolderID set to nil), never
// deleted. The removal and the orphaning land in a single snapshot write.
func (s *Store) DeleteFolder(id string) error {
	if s.findFolder(id) == nil {
		return ErrFolderNotFound
	}
	closure := make(map[string]struct{})
	for _, fid := range s.DescendantFolderIDs(id) {
		closure[fid] = struct{}{}
	}

	next := Tree{}
	for _, f := range s.tree.Folders {
		if _, gone := closure[f.ID]; !gone {
			next.Folders = append(next.Folders, f)
		}
	}
	for _, p := range s.tree.Pages {
		if p.FolderID != nil {
			if _, gone := closure[*p.FolderID]; gone {
				p.FolderID = nil
			}
		}
		next.Pages = append(next.Pages, p)
	}
	return s.save(next)
}

// CreatePage allocates a page with a default title inside the given folder.
// Creating a page without a target folder is a blocking precondition.
func (s *Store) CreatePage(folderID *string) (Page, error) {
	if folderID == nil || *folderID == "" {
		return Page{}, ErrFolderRequired
	}
	if s.findFolder(*folderID) == nil {
		return Page{}, ErrFolderNotFound
	}
	now := time.Now().UTC()
	p := Page{
		ID:        uuid.NewString(),
		Title:     defaultPageTitle,
		Slug:      s.uniqueSlug(slug.Make(defaultPageTitle), ""),
		FolderID:  folderID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	next := s.Tree()
	next.Pages = append(next.Pages, p)
	if err := s.save(next); err != nil {
		return Page{}, err
	}
	return p, nil
}

// NewPage is the material for a page appended by an import.
type NewPage struct {
	Title       string
	ContentHTML string
}

// ImportPages appends imported pages to the tree. When folderID is nil a new
// folder named "Imported" is created to hold them. Folder creation and every
// page land in a single snapshot write: an import either applies completely
// or not at all.
func (s *Store) ImportPages(items []NewPage, folderID *string) ([]Page, error) {
	next := s.Tree()
	if folderID == nil {
		f := Folder{ID: uuid.NewString(), Name: "Imported"}
		next.Folders = append(next.Folders, f)
		folderID = &f.ID
	} else if s.findFolder(*folderID) == nil {
		return nil, ErrFolderNotFound
	}
	now := time.Now().UTC()
	added := make([]Page, 0, len(items))
	for _, item := range items {
		p := Page{
			ID:          uuid.NewString(),
			Title:       item.Title,
			Slug:        uniqueSlugIn(next.Pages, slug.Make(item.Title), ""),
			FolderID:    folderID,
			ContentHTML: item.ContentHTML,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		next.Pages = append(next.Pages, p)
		added = append(added, p)
	}
	if err := s.save(next); err != nil {
		return nil, err
	}
	return added, nil
}

// UpdatePage merges the given fields into the page and refreshes UpdatedAt.
// The slug is regenerated from a supplied title only when no explicit slug
// accompanies it; an explicit slug is normalized before use.
func (s *Store) UpdatePage(id string, upd PageUpdate) (Page, error) {
	if upd.FolderID != nil && s.findFolder(*upd.FolderID) == nil {
		return Page{}, ErrFolderNotFound
	}
	next := s.Tree()
	for i := range next.Pages {
		p := &next.Pages[i]
		if p.ID != id {
			continue
		}
		if upd.Title != nil {
			p.Title = *upd.Title
			if upd.Slug == nil {
				p.Slug = s.uniqueSlug(slug.Make(*upd.Title), id)
			}
		}
		if upd.Slug != nil {
			p.Slug = s.uniqueSlug(slug.Make(*upd.Slug), id)
		}
		if upd.ContentHTML != nil {
			p.ContentHTML = *upd.ContentHTML
		}
		if upd.Description != nil {
			p.Description = *upd.Description
		}
		if upd.Tags != nil {
			p.Tags = upd.Tags
		}
		if upd.Published != nil {
			p.Published = *upd.Published
		}
		if upd.FolderID != nil {
			p.FolderID = upd.FolderID
		}
		p.UpdatedAt = time.Now().UTC()
		if err := s.save(next); err != nil {
			return Page{}, err
		}
		return *p, nil
	}
	return Page{}, ErrPageNotFound
}

// DeletePage removes the page unconditionally. Pages have no children, so
// there is nothing to cascade.
func (s *Store) DeletePage(id string) error {
	next := s.Tree()
	for i := range next.Pages {
		if next.Pages[i].ID == id {
			next.Pages = append(next.Pages[:i], next.Pages[i+1:]...)
			return s.save(next)
		}
	}
	return ErrPageNotFound
}

// DescendantFolderIDs returns the ids of every folder reachable from rootID,
// inclusive, in breadth-first order. A visited set guards against a corrupt
// snapshot introducing a cycle in the parent relation.
func (s *Store) DescendantFolderIDs(rootID string) []string {
	visited := map[string]struct{}{rootID: {}}
	order := []string{rootID}
	queue := []string{rootID}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, f := range s.tree.Folders {
			if f.ParentID == nil || *f.ParentID != current {
				continue
			}
			if _, seen := visited[f.ID]; seen {
				continue
			}
			visited[f.ID] = struct{}{}
			order = append(order, f.ID)
			queue = append(queue, f.ID)
		}
	}
	return order
}

// PagesUnderFolder returns the pages visible under the given folder: every
// page whose FolderID falls inside the folder's inclusive descendant closure.
func (s *Store) PagesUnderFolder(folderID string) []Page {
	closure := make(map[string]struct{})
	for _, id := range s.DescendantFolderIDs(folderID) {
		closure[id] = struct{}{}
	}
	var pages []Page
	for _, p := range s.tree.Pages {
		if p.FolderID == nil {
			continue
		}
		if _, ok := closure[*p.FolderID]; ok {
			pages = append(pages, p)
		}
	}
	return pages
}

// FindPage returns the page with the given id, or nil.
func (s *Store) FindPage(id string) *Page {
	for i := range s.tree.Pages {
		if s.tree.Pages[i].ID == id {
			p := s.tree.Pages[i]
			return &p
		}
	}
	return nil
}

func (s *Store) findFolder(id string) *Folder {
	for i := range s.tree.Folders {
		if s.tree.Folders[i].ID == id {
			return &s.tree.Folders[i]
		}
	}
	return nil
}

func (s *Store) uniqueSlug(base, excludeID string) string {
	return uniqueSlugIn(s.tree.Pages, base, excludeID)
}

// uniqueSlugIn enforces per-product slug uniqueness at the store boundary by
// appending a numeric suffix to colliding slugs. excludeID lets an update
// keep its own slug.
func uniqueSlugIn(pages []Page, base, excludeID string) string {
	taken := func(candidate string) bool {
		for _, p := range pages {
			if p.ID != excludeID && p.Slug == candidate {
				return true
			}
		}
		return false
	}
	candidate := base
	for i := 2; taken(candidate); i++ {
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return candidate
}

func (s *Store) save(next Tree) error {
	raw, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("failed to encode tree snapshot: %w", err)
	}
	if err := s.kv.Put(s.key, raw); err != nil {
		return fmt.Errorf("failed to persist tree snapshot: %w", err)
	}
	s.tree = next
	return nil
}
