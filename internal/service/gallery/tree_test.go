package gallery

import (
	"context"
	"errors"
	"testing"
	"time"

	"lumina/internal/domain"
)

func TestGetGalleryTree(t *testing.T) {
	ctx := context.Background()
	owner := "user-1"

	t.Run("builds nested tree in creation order", func(t *testing.T) {
		env := newTestEnv(t)
		g := env.addGallery(t, owner, false)

		// vacation
		// ├── italy
		// │   └── rome
		// └── france
		// misc
		vacation := env.addFolder(t, g.ID, nil, "vacation")
		italy := env.addFolder(t, g.ID, &vacation.ID, "italy")
		rome := env.addFolder(t, g.ID, &italy.ID, "rome")
		france := env.addFolder(t, g.ID, &vacation.ID, "france")
		misc := env.addFolder(t, g.ID, nil, "misc")

		tree, err := env.treeSvc.GetGalleryTree(ctx, owner, g.ID)
		if err != nil {
			t.Fatalf("GetGalleryTree: %v", err)
		}

		if len(tree.Folders) != 2 {
			t.Fatalf("root count = %d, want 2", len(tree.Folders))
		}
		if tree.Folders[0].ID != vacation.ID || tree.Folders[1].ID != misc.ID {
			t.Errorf("roots out of creation order: %s, %s", tree.Folders[0].ID, tree.Folders[1].ID)
		}

		root := tree.Folders[0]
		if len(root.Folders) != 2 || root.Folders[0].ID != italy.ID || root.Folders[1].ID != france.ID {
			t.Fatalf("vacation children wrong: %+v", root.Folders)
		}
		if len(root.Folders[0].Folders) != 1 || root.Folders[0].Folders[0].ID != rome.ID {
			t.Errorf("italy children wrong: %+v", root.Folders[0].Folders)
		}
	})

	t.Run("attaches photos in capture order", func(t *testing.T) {
		env := newTestEnv(t)
		g := env.addGallery(t, owner, false)
		f := env.addFolder(t, g.ID, nil, "album")

		early := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
		late := time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC)
		pLate := env.addPhoto(t, f.ID, "late.jpg", &late)
		pEarly := env.addPhoto(t, f.ID, "early.jpg", &early)
		// No capture time: falls back to upload time, which is newest here
		pUntimed := env.addPhoto(t, f.ID, "scan.jpg", nil)

		tree, err := env.treeSvc.GetGalleryTree(ctx, owner, g.ID)
		if err != nil {
			t.Fatalf("GetGalleryTree: %v", err)
		}

		photos := tree.Folders[0].Photos
		if len(photos) != 3 {
			t.Fatalf("photo count = %d, want 3", len(photos))
		}
		want := []string{pEarly.ID, pLate.ID, pUntimed.ID}
		for i, id := range want {
			if photos[i].ID != id {
				t.Errorf("photos[%d] = %s, want %s", i, photos[i].ID, id)
			}
		}
	})

	t.Run("empty gallery yields empty tree", func(t *testing.T) {
		env := newTestEnv(t)
		g := env.addGallery(t, owner, false)

		tree, err := env.treeSvc.GetGalleryTree(ctx, owner, g.ID)
		if err != nil {
			t.Fatalf("GetGalleryTree: %v", err)
		}
		if tree.GalleryID != g.ID {
			t.Errorf("gallery ID = %s, want %s", tree.GalleryID, g.ID)
		}
		if tree.Folders == nil || len(tree.Folders) != 0 {
			t.Errorf("folders = %v, want empty slice", tree.Folders)
		}
	})

	t.Run("unknown gallery", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.treeSvc.GetGalleryTree(ctx, owner, "nope")
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("private gallery hidden from strangers", func(t *testing.T) {
		env := newTestEnv(t)
		g := env.addGallery(t, owner, false)

		_, err := env.treeSvc.GetGalleryTree(ctx, "stranger", g.ID)
		if !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("err = %v, want ErrForbidden", err)
		}
	})

	t.Run("public gallery readable by anyone", func(t *testing.T) {
		env := newTestEnv(t)
		g := env.addGallery(t, owner, true)

		if _, err := env.treeSvc.GetGalleryTree(ctx, "stranger", g.ID); err != nil {
			t.Errorf("GetGalleryTree on public gallery: %v", err)
		}
	})
}

func TestDescendantIDs(t *testing.T) {
	ctx := context.Background()
	owner := "user-1"

	t.Run("collects transitive descendants, root excluded", func(t *testing.T) {
		env := newTestEnv(t)
		g := env.addGallery(t, owner, false)
		a := env.addFolder(t, g.ID, nil, "a")
		b := env.addFolder(t, g.ID, &a.ID, "b")
		c := env.addFolder(t, g.ID, &b.ID, "c")
		d := env.addFolder(t, g.ID, &a.ID, "d")
		env.addFolder(t, g.ID, nil, "unrelated")

		descendants, err := env.treeSvc.DescendantIDs(ctx, a.ID)
		if err != nil {
			t.Fatalf("DescendantIDs: %v", err)
		}

		if len(descendants) != 3 {
			t.Fatalf("descendant count = %d, want 3", len(descendants))
		}
		for _, id := range []string{b.ID, c.ID, d.ID} {
			if _, ok := descendants[id]; !ok {
				t.Errorf("missing descendant %s", id)
			}
		}
		if _, ok := descendants[a.ID]; ok {
			t.Error("root included in its own descendant set")
		}
	})

	t.Run("leaf has no descendants", func(t *testing.T) {
		env := newTestEnv(t)
		g := env.addGallery(t, owner, false)
		leaf := env.addFolder(t, g.ID, nil, "leaf")

		descendants, err := env.treeSvc.DescendantIDs(ctx, leaf.ID)
		if err != nil {
			t.Fatalf("DescendantIDs: %v", err)
		}
		if len(descendants) != 0 {
			t.Errorf("descendant count = %d, want 0", len(descendants))
		}
	})

	t.Run("terminates on corrupted cyclic data", func(t *testing.T) {
		env := newTestEnv(t)
		g := env.addGallery(t, owner, false)
		a := env.addFolder(t, g.ID, nil, "a")
		b := env.addFolder(t, g.ID, &a.ID, "b")

		// Corrupt the store directly: a and b point at each other. The
		// traversal must still terminate and report b once.
		env.store.folders[a.ID].ParentID = &b.ID

		descendants, err := env.treeSvc.DescendantIDs(ctx, a.ID)
		if err != nil {
			t.Fatalf("DescendantIDs: %v", err)
		}
		if len(descendants) != 1 {
			t.Errorf("descendant count = %d, want 1", len(descendants))
		}
		if _, ok := descendants[b.ID]; !ok {
			t.Error("missing descendant b")
		}
	})
}
