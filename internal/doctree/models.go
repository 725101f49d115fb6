package doctree

import "time"

// Folder is a node in a product's folder forest. A nil ParentID marks a root
// folder; several roots may coexist.
type Folder struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	ParentID *string `json:"parentId"`
}

// Page is a single document inside a product. A nil FolderID means the page
// is unfiled, which happens when its owning folder is deleted.
type Page struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	FolderID    *string   `json:"folderId"`
	ContentHTML string    `json:"contentHtml"`
	Description string    `json:"description,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Published   bool      `json:"published"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Tree is the full folder/page hierarchy of one product. It is loaded and
// persisted as a unit.
type Tree struct {
	Folders []Folder `json:"folders"`
	Pages   []Page   `json:"pages"`
}

// PageUpdate carries a partial set of page fields to merge. Nil pointers
// leave the corresponding field untouched; a nil Tags slice is ignored.
type PageUpdate struct {
	Title       *string
	Slug        *string
	ContentHTML *string
	Description *string
	Tags        []string
	Published   *bool
	FolderID    *string
}
