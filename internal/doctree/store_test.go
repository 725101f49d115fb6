//go:build unit

package doctree

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

// mockKV is an in-memory KV with an optional forced Put failure.
type mockKV struct {
	data    map[string][]byte
	putErr  error
	putHits int
}

var _ KV = (*mockKV)(nil)

func newMockKV() *mockKV {
	return &mockKV{data: map[string][]byte{}}
}

func (m *mockKV) Get(key string) ([]byte, error) {
	return m.data[key], nil
}

func (m *mockKV) Put(key string, value []byte) error {
	m.putHits++
	if m.putErr != nil {
		return m.putErr
	}
	m.data[key] = value
	return nil
}

func openTestStore(t *testing.T) (*Store, *mockKV) {
	t.Helper()
	kv := newMockKV()
	store, err := Open(kv, "prod-1")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return store, kv
}

func TestOpen_MissingOrCorruptSnapshotYieldsEmptyTree(t *testing.T) {
	t.Run("missing snapshot", func(t *testing.T) {
		store, _ := openTestStore(t)
		tree := store.Tree()
		if len(tree.Folders) != 0 || len(tree.Pages) != 0 {
			t.Errorf("expected empty tree, got %d folders, %d pages", len(tree.Folders), len(tree.Pages))
		}
	})

	t.Run("corrupt snapshot", func(t *testing.T) {
		kv := newMockKV()
		kv.data[SnapshotKey("prod-1")] = []byte("{not json")
		store, err := Open(kv, "prod-1")
		if err != nil {
			t.Fatalf("Open failed on corrupt snapshot: %v", err)
		}
		tree := store.Tree()
		if len(tree.Folders) != 0 || len(tree.Pages) != 0 {
			t.Errorf("expected corrupt snapshot to degrade to empty tree, got %+v", tree)
		}
	})
}

func TestCreateFolder(t *testing.T) {
	store, kv := openTestStore(t)

	root, err := store.CreateFolder(nil)
	if err != nil {
		t.Fatalf("CreateFolder failed: %v", err)
	}
	if root.Name != "New Folder" {
		t.Errorf("expected default folder name, got %q", root.Name)
	}
	if root.ParentID != nil {
		t.Errorf("expected root folder, got parent %v", root.ParentID)
	}

	child, err := store.CreateFolder(&root.ID)
	if err != nil {
		t.Fatalf("CreateFolder under parent failed: %v", err)
	}
	if child.ParentID == nil || *child.ParentID != root.ID {
		t.Errorf("expected child of %s, got %v", root.ID, child.ParentID)
	}

	if _, err := store.CreateFolder(strPtr("no-such-folder")); !errors.Is(err, ErrFolderNotFound) {
		t.Errorf("expected ErrFolderNotFound for unknown parent, got %v", err)
	}

	// Every mutation writes the full snapshot back.
	var snapshot Tree
	if err := json.Unmarshal(kv.data[SnapshotKey("prod-1")], &snapshot); err != nil {
		t.Fatalf("snapshot is not valid JSON: %v", err)
	}
	if len(snapshot.Folders) != 2 {
		t.Errorf("expected snapshot with 2 folders, got %d", len(snapshot.Folders))
	}
}

func TestRenameFolder_EmptyNameKeepsOldName(t *testing.T) {
	store, _ := openTestStore(t)
	f, _ := store.CreateFolder(nil)

	renamed, err := store.RenameFolder(f.ID, "  Guides  ")
	if err != nil {
		t.Fatalf("RenameFolder failed: %v", err)
	}
	if renamed.Name != "Guides" {
		t.Errorf("expected trimmed name 'Guides', got %q", renamed.Name)
	}

	kept, err := store.RenameFolder(f.ID, "   ")
	if err != nil {
		t.Fatalf("RenameFolder with blank name failed: %v", err)
	}
	if kept.Name != "Guides" {
		t.Errorf("expected blank rename to keep old name, got %q", kept.Name)
	}
}

func TestCreatePage(t *testing.T) {
	store, _ := openTestStore(t)

	if _, err := store.CreatePage(nil); !errors.Is(err, ErrFolderRequired) {
		t.Errorf("expected ErrFolderRequired without a folder, got %v", err)
	}

	f, _ := store.CreateFolder(nil)
	page, err := store.CreatePage(&f.ID)
	if err != nil {
		t.Fatalf("CreatePage failed: %v", err)
	}
	if page.Title != "Untitled Page" {
		t.Errorf("expected default title, got %q", page.Title)
	}
	if page.Slug != "untitled-page" {
		t.Errorf("expected slug derived from title, got %q", page.Slug)
	}
	if page.CreatedAt.IsZero() || page.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestDeleteFolder_CascadeAndOrphaning(t *testing.T) {
	store, _ := openTestStore(t)

	// root -> child -> grandchild, plus an unrelated sibling tree.
	root, _ := store.CreateFolder(nil)
	child, _ := store.CreateFolder(&root.ID)
	grandchild, _ := store.CreateFolder(&child.ID)
	other, _ := store.CreateFolder(nil)

	inRoot, _ := store.CreatePage(&root.ID)
	inGrandchild, _ := store.CreatePage(&grandchild.ID)
	inOther, _ := store.CreatePage(&other.ID)

	if err := store.DeleteFolder(root.ID); err != nil {
		t.Fatalf("DeleteFolder failed: %v", err)
	}

	tree := store.Tree()
	if len(tree.Folders) != 1 || tree.Folders[0].ID != other.ID {
		t.Fatalf("expected only the unrelated folder to survive, got %+v", tree.Folders)
	}
	if len(tree.Pages) != 3 {
		t.Fatalf("expected all 3 pages to survive folder deletion, got %d", len(tree.Pages))
	}
	for _, p := range tree.Pages {
		switch p.ID {
		case inRoot.ID, inGrandchild.ID:
			if p.FolderID != nil {
				t.Errorf("expected page %s to be orphaned, got folder %v", p.ID, *p.FolderID)
			}
		case inOther.ID:
			if p.FolderID == nil || *p.FolderID != other.ID {
				t.Errorf("expected page outside closure to keep its folder, got %v", p.FolderID)
			}
		}
	}
}

func TestDescendantFolderIDs(t *testing.T) {
	store, _ := openTestStore(t)
	root, _ := store.CreateFolder(nil)
	a, _ := store.CreateFolder(&root.ID)
	b, _ := store.CreateFolder(&root.ID)
	aa, _ := store.CreateFolder(&a.ID)
	_, _ = store.CreateFolder(nil) // unrelated root

	got := store.DescendantFolderIDs(root.ID)
	want := map[string]bool{root.ID: true, a.ID: true, b.ID: true, aa.ID: true}
	if len(got) != len(want) {
		t.Fatalf("expected %d ids, got %d (%v)", len(want), len(got), got)
	}
	for _, id := range got {
		if !want[id] {
			t.Errorf("unexpected id %s in closure", id)
		}
	}
	if got[0] != root.ID {
		t.Errorf("expected BFS order to start at the root, got %s", got[0])
	}
}

func TestUpdatePage_SlugRegeneration(t *testing.T) {
	store, _ := openTestStore(t)
	f, _ := store.CreateFolder(nil)
	page, _ := store.CreatePage(&f.ID)

	t.Run("title change regenerates slug", func(t *testing.T) {
		updated, err := store.UpdatePage(page.ID, PageUpdate{Title: strPtr("Welcome Home")})
		if err != nil {
			t.Fatalf("UpdatePage failed: %v", err)
		}
		if updated.Slug != "welcome-home" {
			t.Errorf("expected regenerated slug 'welcome-home', got %q", updated.Slug)
		}
	})

	t.Run("explicit slug wins over title", func(t *testing.T) {
		updated, err := store.UpdatePage(page.ID, PageUpdate{Title: strPtr("Another Title"), Slug: strPtr("Custom Slug")})
		if err != nil {
			t.Fatalf("UpdatePage failed: %v", err)
		}
		if updated.Slug != "custom-slug" {
			t.Errorf("expected normalized explicit slug 'custom-slug', got %q", updated.Slug)
		}
	})

	t.Run("content change leaves slug alone", func(t *testing.T) {
		before, _ := store.UpdatePage(page.ID, PageUpdate{Title: strPtr("Stable")})
		updated, err := store.UpdatePage(page.ID, PageUpdate{ContentHTML: strPtr("<p>Hi</p>")})
		if err != nil {
			t.Fatalf("UpdatePage failed: %v", err)
		}
		if updated.Slug != before.Slug {
			t.Errorf("expected slug to stay %q, got %q", before.Slug, updated.Slug)
		}
		if updated.ContentHTML != "<p>Hi</p>" {
			t.Errorf("expected content to be merged, got %q", updated.ContentHTML)
		}
		if !updated.UpdatedAt.After(page.CreatedAt.Add(-time.Second)) {
			t.Error("expected UpdatedAt to be refreshed")
		}
	})
}

func TestSlugUniquenessPerProduct(t *testing.T) {
	store, _ := openTestStore(t)
	f, _ := store.CreateFolder(nil)
	p1, _ := store.CreatePage(&f.ID)
	p2, _ := store.CreatePage(&f.ID)
	p3, _ := store.CreatePage(&f.ID)

	a, _ := store.UpdatePage(p1.ID, PageUpdate{Title: strPtr("Guide")})
	b, _ := store.UpdatePage(p2.ID, PageUpdate{Title: strPtr("Guide")})
	c, _ := store.UpdatePage(p3.ID, PageUpdate{Title: strPtr("Guide")})

	if a.Slug != "guide" || b.Slug != "guide-2" || c.Slug != "guide-3" {
		t.Errorf("expected suffixed slugs guide/guide-2/guide-3, got %q/%q/%q", a.Slug, b.Slug, c.Slug)
	}

	// Updating a page without changing its title keeps its own slug.
	again, _ := store.UpdatePage(p2.ID, PageUpdate{Title: strPtr("Guide")})
	if again.Slug != "guide-2" {
		t.Errorf("expected page to keep its slug on re-save, got %q", again.Slug)
	}
}

func TestMutationsAreAtomic(t *testing.T) {
	store, kv := openTestStore(t)
	f, _ := store.CreateFolder(nil)
	page, _ := store.CreatePage(&f.ID)

	kv.putErr = errors.New("disk full")

	if err := store.DeleteFolder(f.ID); err == nil {
		t.Fatal("expected DeleteFolder to surface the storage error")
	}

	// The in-memory tree must not have advanced past the failed write.
	tree := store.Tree()
	if len(tree.Folders) != 1 {
		t.Errorf("expected folder to survive failed delete, got %d folders", len(tree.Folders))
	}
	for _, p := range tree.Pages {
		if p.ID == page.ID && p.FolderID == nil {
			t.Error("expected page to keep its folder after failed delete")
		}
	}
}

func TestImportPages(t *testing.T) {
	t.Run("creates Imported folder when none selected", func(t *testing.T) {
		store, _ := openTestStore(t)
		pages, err := store.ImportPages([]NewPage{
			{Title: "A", ContentHTML: "<p>a</p>"},
			{Title: "B", ContentHTML: "<p>b</p>"},
		}, nil)
		if err != nil {
			t.Fatalf("ImportPages failed: %v", err)
		}
		if len(pages) != 2 {
			t.Fatalf("expected 2 pages, got %d", len(pages))
		}
		tree := store.Tree()
		if len(tree.Folders) != 1 || tree.Folders[0].Name != "Imported" {
			t.Fatalf("expected a single 'Imported' folder, got %+v", tree.Folders)
		}
		for _, p := range pages {
			if p.FolderID == nil || *p.FolderID != tree.Folders[0].ID {
				t.Errorf("expected imported page in the Imported folder, got %v", p.FolderID)
			}
		}
	})

	t.Run("uses the selected folder", func(t *testing.T) {
		store, _ := openTestStore(t)
		f, _ := store.CreateFolder(nil)
		pages, err := store.ImportPages([]NewPage{{Title: "Only", ContentHTML: "<p>x</p>"}}, &f.ID)
		if err != nil {
			t.Fatalf("ImportPages failed: %v", err)
		}
		if *pages[0].FolderID != f.ID {
			t.Errorf("expected page in folder %s, got %v", f.ID, pages[0].FolderID)
		}
	})

	t.Run("deduplicates slugs within the batch", func(t *testing.T) {
		store, _ := openTestStore(t)
		pages, err := store.ImportPages([]NewPage{
			{Title: "Intro"},
			{Title: "Intro"},
		}, nil)
		if err != nil {
			t.Fatalf("ImportPages failed: %v", err)
		}
		if pages[0].Slug != "intro" || pages[1].Slug != "intro-2" {
			t.Errorf("expected intro/intro-2, got %q/%q", pages[0].Slug, pages[1].Slug)
		}
	})

	t.Run("nothing is applied when the write fails", func(t *testing.T) {
		store, kv := openTestStore(t)
		kv.putErr = errors.New("disk full")
		if _, err := store.ImportPages([]NewPage{{Title: "A"}}, nil); err == nil {
			t.Fatal("expected ImportPages to surface the storage error")
		}
		tree := store.Tree()
		if len(tree.Folders) != 0 || len(tree.Pages) != 0 {
			t.Errorf("expected no partial import, got %+v", tree)
		}
	})
}

func strPtr(s string) *string { return &s }
