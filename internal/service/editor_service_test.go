//go:build unit

package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"docu360/internal/data"
	"docu360/internal/doctree"
	"docu360/internal/importer"
)

func TestEditorService_Ownership(t *testing.T) {
	repo := newMockProductRepository(testProduct("p1", "c1", "Guide"))
	svc := NewEditorService(repo, newMemKV())
	outsider := Actor{Role: data.RoleCustomer, CustomerID: "c2"}

	if _, err := svc.GetTree(context.Background(), outsider, "p1"); !errors.Is(err, ErrForbidden) {
		t.Errorf("GetTree: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.CreateFolder(context.Background(), outsider, "p1", nil); !errors.Is(err, ErrForbidden) {
		t.Errorf("CreateFolder: expected ErrForbidden, got %v", err)
	}
	if err := svc.DeletePage(context.Background(), outsider, "p1", "x"); !errors.Is(err, ErrForbidden) {
		t.Errorf("DeletePage: expected ErrForbidden, got %v", err)
	}
}

func TestEditorService_UnknownProduct(t *testing.T) {
	svc := NewEditorService(newMockProductRepository(), newMemKV())
	_, err := svc.GetTree(context.Background(), Actor{Role: data.RoleAdmin}, "missing")
	if !errors.Is(err, data.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestEditorService_UpdatePageSanitizesContent(t *testing.T) {
	repo := newMockProductRepository(testProduct("p1", "c1", "Guide"))
	kv := newMemKV()
	svc := NewEditorService(repo, kv)
	admin := Actor{Role: data.RoleAdmin}

	folder, err := svc.CreateFolder(context.Background(), admin, "p1", nil)
	if err != nil {
		t.Fatalf("CreateFolder failed: %v", err)
	}
	page, err := svc.CreatePage(context.Background(), admin, "p1", &folder.ID)
	if err != nil {
		t.Fatalf("CreatePage failed: %v", err)
	}

	dirty := `<p>fine</p><script>alert(1)</script><p onclick="boom()">also fine</p>`
	updated, err := svc.UpdatePage(context.Background(), admin, "p1", page.ID, doctree.PageUpdate{ContentHTML: &dirty})
	if err != nil {
		t.Fatalf("UpdatePage failed: %v", err)
	}

	if strings.Contains(updated.ContentHTML, "<script>") {
		t.Errorf("script element survived sanitization: %q", updated.ContentHTML)
	}
	if strings.Contains(updated.ContentHTML, "onclick") {
		t.Errorf("event handler attribute survived sanitization: %q", updated.ContentHTML)
	}
	if !strings.Contains(updated.ContentHTML, "<p>fine</p>") {
		t.Errorf("benign markup was stripped: %q", updated.ContentHTML)
	}
}

func TestEditorService_Import(t *testing.T) {
	doc := []byte(`<body><h2>Alpha</h2><p>a</p><h2>Beta</h2><p>b</p></body>`)

	t.Run("without a target folder pages land in a new Imported folder", func(t *testing.T) {
		repo := newMockProductRepository(testProduct("p1", "c1", "Guide"))
		svc := NewEditorService(repo, newMemKV())

		tree, err := svc.Import(context.Background(), Actor{Role: data.RoleAdmin}, "p1", "doc.html", doc, nil, nil)
		if err != nil {
			t.Fatalf("Import failed: %v", err)
		}

		if len(tree.Folders) != 1 || tree.Folders[0].Name != "Imported" {
			t.Fatalf("expected a single 'Imported' folder, got %+v", tree.Folders)
		}
		if len(tree.Pages) != 2 {
			t.Fatalf("expected 2 pages, got %d", len(tree.Pages))
		}
		for _, p := range tree.Pages {
			if p.FolderID == nil || *p.FolderID != tree.Folders[0].ID {
				t.Errorf("page %q is not in the Imported folder", p.Title)
			}
		}
		if tree.Pages[0].Title != "Alpha" || tree.Pages[1].Title != "Beta" {
			t.Errorf("unexpected page titles: %q, %q", tree.Pages[0].Title, tree.Pages[1].Title)
		}
	})

	t.Run("with a target folder pages land there", func(t *testing.T) {
		repo := newMockProductRepository(testProduct("p1", "c1", "Guide"))
		svc := NewEditorService(repo, newMemKV())
		admin := Actor{Role: data.RoleAdmin}

		folder, err := svc.CreateFolder(context.Background(), admin, "p1", nil)
		if err != nil {
			t.Fatalf("CreateFolder failed: %v", err)
		}
		tree, err := svc.Import(context.Background(), admin, "p1", "doc.html", doc, &folder.ID, nil)
		if err != nil {
			t.Fatalf("Import failed: %v", err)
		}
		if len(tree.Folders) != 1 {
			t.Errorf("expected no extra folder, got %d", len(tree.Folders))
		}
		for _, p := range tree.Pages {
			if p.FolderID == nil || *p.FolderID != folder.ID {
				t.Errorf("page %q is not in the target folder", p.Title)
			}
		}
	})

	t.Run("with a target page the first section replaces its content", func(t *testing.T) {
		repo := newMockProductRepository(testProduct("p1", "c1", "Guide"))
		svc := NewEditorService(repo, newMemKV())
		admin := Actor{Role: data.RoleAdmin}

		folder, err := svc.CreateFolder(context.Background(), admin, "p1", nil)
		if err != nil {
			t.Fatalf("CreateFolder failed: %v", err)
		}
		page, err := svc.CreatePage(context.Background(), admin, "p1", &folder.ID)
		if err != nil {
			t.Fatalf("CreatePage failed: %v", err)
		}

		tree, err := svc.Import(context.Background(), admin, "p1", "doc.html", doc, nil, &page.ID)
		if err != nil {
			t.Fatalf("Import failed: %v", err)
		}
		if len(tree.Pages) != 1 {
			t.Fatalf("expected the page count to stay at 1, got %d", len(tree.Pages))
		}
		if !strings.Contains(tree.Pages[0].ContentHTML, "<p>a</p>") {
			t.Errorf("page content was not replaced: %q", tree.Pages[0].ContentHTML)
		}
		if strings.Contains(tree.Pages[0].ContentHTML, "<p>b</p>") {
			t.Errorf("page content includes later sections: %q", tree.Pages[0].ContentHTML)
		}
	})

	t.Run("word documents are rejected and the tree is untouched", func(t *testing.T) {
		repo := newMockProductRepository(testProduct("p1", "c1", "Guide"))
		kv := newMemKV()
		svc := NewEditorService(repo, kv)
		admin := Actor{Role: data.RoleAdmin}

		_, err := svc.Import(context.Background(), admin, "p1", "handbook.docx", []byte("PK..."), nil, nil)
		if !errors.Is(err, importer.ErrUnsupportedFormat) {
			t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
		}
		if raw := kv.data[doctree.SnapshotKey("p1")]; raw != nil {
			t.Error("a rejected import must not write a snapshot")
		}
	})

	t.Run("imported content is sanitized", func(t *testing.T) {
		repo := newMockProductRepository(testProduct("p1", "c1", "Guide"))
		svc := NewEditorService(repo, newMemKV())

		hostile := []byte(`<body><h2>Intro</h2><p>ok</p><script>alert(1)</script></body>`)
		tree, err := svc.Import(context.Background(), Actor{Role: data.RoleAdmin}, "p1", "doc.html", hostile, nil, nil)
		if err != nil {
			t.Fatalf("Import failed: %v", err)
		}
		if strings.Contains(tree.Pages[0].ContentHTML, "<script>") {
			t.Errorf("script element survived import sanitization: %q", tree.Pages[0].ContentHTML)
		}
	})
}
