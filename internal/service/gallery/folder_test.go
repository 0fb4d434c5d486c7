package gallery

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"lumina/internal/domain"
	models "lumina/internal/domain/models/gallery"
	"lumina/internal/domain/repositories"
	gallerySvc "lumina/internal/domain/services/gallery"
	serviceAuth "lumina/internal/service/auth"
)

// fakeStore is a shared in-memory backing store for the fake repositories.
// It mirrors the store-level guarantees the real Postgres layer provides:
// parents must resolve within the same gallery, cover photos must belong
// to the folder, and subtree deletion cascades to photos.
type fakeStore struct {
	galleries map[string]*models.Gallery
	folders   map[string]*models.Folder
	photos    map[string]*models.Photo

	folderOrder []string
	photoOrder  []string

	nextID    int
	clock     time.Time
	lockCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		galleries: map[string]*models.Gallery{},
		folders:   map[string]*models.Folder{},
		photos:    map[string]*models.Photo{},
		clock:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *fakeStore) id(prefix string) string {
	s.nextID++
	return fmt.Sprintf("%s-%d", prefix, s.nextID)
}

func (s *fakeStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

type fakeGalleryRepo struct{ store *fakeStore }

func (r *fakeGalleryRepo) Create(ctx context.Context, g *models.Gallery) error {
	if g.ID == "" {
		g.ID = r.store.id("gal")
	}
	copied := *g
	r.store.galleries[g.ID] = &copied
	return nil
}

func (r *fakeGalleryRepo) GetByID(ctx context.Context, id string) (*models.Gallery, error) {
	g, ok := r.store.galleries[id]
	if !ok {
		return nil, fmt.Errorf("gallery %s: %w", id, domain.ErrNotFound)
	}
	copied := *g
	return &copied, nil
}

func (r *fakeGalleryRepo) GetByIDForOwner(ctx context.Context, id, ownerID string) (*models.Gallery, error) {
	g, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g.OwnerID != ownerID {
		return nil, fmt.Errorf("gallery %s: %w", id, domain.ErrNotFound)
	}
	return g, nil
}

func (r *fakeGalleryRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Gallery, error) {
	var out []models.Gallery
	for _, g := range r.store.galleries {
		if g.OwnerID == ownerID {
			out = append(out, *g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (r *fakeGalleryRepo) LockForUpdate(ctx context.Context, id string) error {
	if _, ok := r.store.galleries[id]; !ok {
		return fmt.Errorf("gallery %s: %w", id, domain.ErrNotFound)
	}
	r.store.lockCalls++
	return nil
}

type fakeFolderRepo struct{ store *fakeStore }

func (r *fakeFolderRepo) Create(ctx context.Context, folder *models.Folder) error {
	if folder.ParentID != nil {
		parent, ok := r.store.folders[*folder.ParentID]
		if !ok || parent.GalleryID != folder.GalleryID {
			return &domain.StructuralError{
				Code:    domain.CodeParentNotFound,
				Message: fmt.Sprintf("parent folder %s not found", *folder.ParentID),
			}
		}
	}
	if folder.ID == "" {
		folder.ID = r.store.id("fld")
	}
	folder.CreatedAt = r.store.tick()
	folder.UpdatedAt = folder.CreatedAt
	copied := *folder
	r.store.folders[folder.ID] = &copied
	r.store.folderOrder = append(r.store.folderOrder, folder.ID)
	return nil
}

func (r *fakeFolderRepo) GetByID(ctx context.Context, id string) (*models.Folder, error) {
	f, ok := r.store.folders[id]
	if !ok {
		return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	copied := *f
	return &copied, nil
}

func (r *fakeFolderRepo) ListRoots(ctx context.Context, galleryID string) ([]models.Folder, error) {
	return r.list(func(f *models.Folder) bool {
		return f.GalleryID == galleryID && f.ParentID == nil
	}), nil
}

func (r *fakeFolderRepo) ListChildren(ctx context.Context, parentID string) ([]models.Folder, error) {
	return r.list(func(f *models.Folder) bool {
		return f.ParentID != nil && *f.ParentID == parentID
	}), nil
}

func (r *fakeFolderRepo) ListByGallery(ctx context.Context, galleryID string) ([]models.Folder, error) {
	return r.list(func(f *models.Folder) bool { return f.GalleryID == galleryID }), nil
}

func (r *fakeFolderRepo) list(keep func(*models.Folder) bool) []models.Folder {
	out := []models.Folder{}
	for _, id := range r.store.folderOrder {
		f, ok := r.store.folders[id]
		if ok && keep(f) {
			out = append(out, *f)
		}
	}
	return out
}

func (r *fakeFolderRepo) Rename(ctx context.Context, id, name string) (*models.Folder, error) {
	f, ok := r.store.folders[id]
	if !ok {
		return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	f.Name = name
	f.UpdatedAt = r.store.tick()
	copied := *f
	return &copied, nil
}

func (r *fakeFolderRepo) SetCover(ctx context.Context, id string, photoID *string) (*models.Folder, error) {
	f, ok := r.store.folders[id]
	if !ok {
		return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	if photoID != nil {
		p, ok := r.store.photos[*photoID]
		if !ok || p.FolderID != id {
			return nil, &domain.StructuralError{
				Code:    domain.CodePhotoNotInFolder,
				Message: fmt.Sprintf("photo %s does not belong to folder %s", *photoID, id),
			}
		}
	}
	f.CoverPhotoID = photoID
	f.UpdatedAt = r.store.tick()
	copied := *f
	return &copied, nil
}

func (r *fakeFolderRepo) Reparent(ctx context.Context, id string, parentID *string) (*models.Folder, error) {
	f, ok := r.store.folders[id]
	if !ok {
		return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	f.ParentID = parentID
	f.UpdatedAt = r.store.tick()
	copied := *f
	return &copied, nil
}

func (r *fakeFolderRepo) DeleteSubtree(ctx context.Context, id string) error {
	if _, ok := r.store.folders[id]; !ok {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}

	doomed := map[string]struct{}{id: {}}
	for {
		grew := false
		for _, f := range r.store.folders {
			if f.ParentID == nil {
				continue
			}
			if _, gone := doomed[f.ID]; gone {
				continue
			}
			if _, parentGone := doomed[*f.ParentID]; parentGone {
				doomed[f.ID] = struct{}{}
				grew = true
			}
		}
		if !grew {
			break
		}
	}

	for photoID, p := range r.store.photos {
		if _, gone := doomed[p.FolderID]; gone {
			delete(r.store.photos, photoID)
		}
	}
	for folderID := range doomed {
		delete(r.store.folders, folderID)
	}
	return nil
}

type fakePhotoRepo struct{ store *fakeStore }

func (r *fakePhotoRepo) Create(ctx context.Context, photo *models.Photo) error {
	if photo.ID == "" {
		photo.ID = r.store.id("pho")
	}
	photo.CreatedAt = r.store.tick()
	photo.UpdatedAt = photo.CreatedAt
	copied := *photo
	r.store.photos[photo.ID] = &copied
	r.store.photoOrder = append(r.store.photoOrder, photo.ID)
	return nil
}

func (r *fakePhotoRepo) GetByID(ctx context.Context, id string) (*models.Photo, error) {
	p, ok := r.store.photos[id]
	if !ok {
		return nil, fmt.Errorf("photo %s: %w", id, domain.ErrNotFound)
	}
	copied := *p
	return &copied, nil
}

func (r *fakePhotoRepo) ListByFolder(ctx context.Context, folderID string) ([]models.Photo, error) {
	return r.list(func(p *models.Photo) bool { return p.FolderID == folderID }), nil
}

func (r *fakePhotoRepo) ListByGallery(ctx context.Context, galleryID string) ([]models.Photo, error) {
	return r.list(func(p *models.Photo) bool {
		f, ok := r.store.folders[p.FolderID]
		return ok && f.GalleryID == galleryID
	}), nil
}

// list returns photos ordered by capture time, falling back to creation
// time, the same ordering the SQL layer produces.
func (r *fakePhotoRepo) list(keep func(*models.Photo) bool) []models.Photo {
	out := []models.Photo{}
	for _, id := range r.store.photoOrder {
		p, ok := r.store.photos[id]
		if ok && keep(p) {
			out = append(out, *p)
		}
	}
	effective := func(p models.Photo) time.Time {
		if p.TakenAt != nil {
			return *p.TakenAt
		}
		return p.CreatedAt
	}
	sort.SliceStable(out, func(i, j int) bool { return effective(out[i]).Before(effective(out[j])) })
	return out
}

func (r *fakePhotoRepo) ExistsInFolder(ctx context.Context, photoID, folderID string) (bool, error) {
	p, ok := r.store.photos[photoID]
	return ok && p.FolderID == folderID, nil
}

// fakeTxManager runs the function directly; the fakes have no
// transaction semantics to roll back.
type fakeTxManager struct{}

func (m *fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

type testEnv struct {
	store     *fakeStore
	galleries *fakeGalleryRepo
	folders   *fakeFolderRepo
	photos    *fakePhotoRepo
	folderSvc gallerySvc.FolderService
	treeSvc   gallerySvc.TreeService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := newFakeStore()
	galleries := &fakeGalleryRepo{store: store}
	folders := &fakeFolderRepo{store: store}
	photos := &fakePhotoRepo{store: store}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	authorizer := serviceAuth.NewOwnerBasedAuthorizer(galleries, folders)
	treeSvc := NewTreeService(folders, photos, authorizer, logger)
	folderSvc := NewFolderService(folders, photos, galleries, treeSvc, &fakeTxManager{}, authorizer, logger)

	return &testEnv{
		store:     store,
		galleries: galleries,
		folders:   folders,
		photos:    photos,
		folderSvc: folderSvc,
		treeSvc:   treeSvc,
	}
}

func (e *testEnv) addGallery(t *testing.T, ownerID string, isPublic bool) *models.Gallery {
	t.Helper()
	g := &models.Gallery{OwnerID: ownerID, Name: "Test Gallery", IsPublic: isPublic}
	if err := e.galleries.Create(context.Background(), g); err != nil {
		t.Fatalf("addGallery: %v", err)
	}
	return g
}

func (e *testEnv) addFolder(t *testing.T, galleryID string, parentID *string, name string) *models.Folder {
	t.Helper()
	f := &models.Folder{GalleryID: galleryID, ParentID: parentID, Name: name}
	if err := e.folders.Create(context.Background(), f); err != nil {
		t.Fatalf("addFolder %s: %v", name, err)
	}
	return f
}

func (e *testEnv) addPhoto(t *testing.T, folderID, fileName string, takenAt *time.Time) *models.Photo {
	t.Helper()
	p := &models.Photo{FolderID: folderID, FileName: fileName, TakenAt: takenAt}
	if err := e.photos.Create(context.Background(), p); err != nil {
		t.Fatalf("addPhoto %s: %v", fileName, err)
	}
	return p
}

func structuralCode(t *testing.T, err error) string {
	t.Helper()
	var structuralErr *domain.StructuralError
	if !errors.As(err, &structuralErr) {
		t.Fatalf("expected structural error, got %v", err)
	}
	return structuralErr.Code
}

func TestCreateFolder(t *testing.T) {
	ctx := context.Background()
	owner := "user-1"

	t.Run("creates root folder", func(t *testing.T) {
		env := newTestEnv(t)
		g := env.addGallery(t, owner, false)

		folder, err := env.folderSvc.CreateFolder(ctx, owner, &gallerySvc.CreateFolderRequest{
			GalleryID: g.ID,
			Name:      "Vacation",
		})
		if err != nil {
			t.Fatalf("CreateFolder: %v", err)
		}
		if folder.Name != "Vacation" {
			t.Errorf("name = %q, want %q", folder.Name, "Vacation")
		}
		if folder.ParentID != nil {
			t.Errorf("parent = %v, want nil", *folder.ParentID)
		}
		if folder.ID == "" {
			t.Error("expected folder ID to be assigned")
		}
	})

	t.Run("defaults empty name", func(t *testing.T) {
		env := newTestEnv(t)
		g := env.addGallery(t, owner, false)

		folder, err := env.folderSvc.CreateFolder(ctx, owner, &gallerySvc.CreateFolderRequest{
			GalleryID: g.ID,
		})
		if err != nil {
			t.Fatalf("CreateFolder: %v", err)
		}
		if folder.Name != models.DefaultFolderName {
			t.Errorf("name = %q, want %q", folder.Name, models.DefaultFolderName)
		}
	})

	t.Run("defaults whitespace-only name", func(t *testing.T) {
		env := newTestEnv(t)
		g := env.addGallery(t, owner, false)

		folder, err := env.folderSvc.CreateFolder(ctx, owner, &gallerySvc.CreateFolderRequest{
			GalleryID: g.ID,
			Name:      "   ",
		})
		if err != nil {
			t.Fatalf("CreateFolder: %v", err)
		}
		if folder.Name != models.DefaultFolderName {
			t.Errorf("name = %q, want %q", folder.Name, models.DefaultFolderName)
		}
	})

	t.Run("nests under parent in same gallery", func(t *testing.T) {
		env := newTestEnv(t)
		g := env.addGallery(t, owner, false)
		parent := env.addFolder(t, g.ID, nil, "Parent")

		folder, err := env.folderSvc.CreateFolder(ctx, owner, &gallerySvc.CreateFolderRequest{
			GalleryID: g.ID,
			Name:      "Child",
			ParentID:  &parent.ID,
		})
		if err != nil {
			t.Fatalf("CreateFolder: %v", err)
		}
		if folder.ParentID == nil || *folder.ParentID != parent.ID {
			t.Errorf("parent = %v, want %s", folder.ParentID, parent.ID)
		}
	})

	t.Run("rejects parent from another gallery", func(t *testing.T) {
		env := newTestEnv(t)
		g1 := env.addGallery(t, owner, false)
		g2 := env.addGallery(t, owner, false)
		foreign := env.addFolder(t, g2.ID, nil, "Foreign")

		_, err := env.folderSvc.CreateFolder(ctx, owner, &gallerySvc.CreateFolderRequest{
			GalleryID: g1.ID,
			Name:      "Child",
			ParentID:  &foreign.ID,
		})
		if code := structuralCode(t, err); code != domain.CodeParentNotFound {
			t.Errorf("code = %q, want %q", code, domain.CodeParentNotFound)
		}
	})

	t.Run("rejects missing gallery", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.folderSvc.CreateFolder(ctx, owner, &gallerySvc.CreateFolderRequest{
			GalleryID: "nope",
			Name:      "Orphan",
		})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("rejects non-owner", func(t *testing.T) {
		env := newTestEnv(t)
		g := env.addGallery(t, owner, true)

		_, err := env.folderSvc.CreateFolder(ctx, "someone-else", &gallerySvc.CreateFolderRequest{
			GalleryID: g.ID,
			Name:      "Intruder",
		})
		if !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("err = %v, want ErrForbidden", err)
		}
	})

	t.Run("rejects missing gallery ID", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.folderSvc.CreateFolder(ctx, owner, &gallerySvc.CreateFolderRequest{
			Name: "No Home",
		})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("err = %v, want ErrValidation", err)
		}
	})
}

func TestRenameFolder(t *testing.T) {
	ctx := context.Background()
	owner := "user-1"

	t.Run("renames and trims", func(t *testing.T) {
		env := newTestEnv(t)
		g := env.addGallery(t, owner, false)
		f := env.addFolder(t, g.ID, nil, "Old Name")

		renamed, err := env.folderSvc.RenameFolder(ctx, owner, f.ID, "  New Name  ")
		if err != nil {
			t.Fatalf("RenameFolder: %v", err)
		}
		if renamed.Name != "New Name" {
			t.Errorf("name = %q, want %q", renamed.Name, "New Name")
		}
	})

	t.Run("rejects empty name", func(t *testing.T) {
		env := newTestEnv(t)
		g := env.addGallery(t, owner, false)
		f := env.addFolder(t, g.ID, nil, "Keep Me")

		_, err := env.folderSvc.RenameFolder(ctx, owner, f.ID, "   ")
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("err = %v, want ErrValidation", err)
		}
		kept, _ := env.folders.GetByID(ctx, f.ID)
		if kept.Name != "Keep Me" {
			t.Errorf("name changed to %q after rejected rename", kept.Name)
		}
	})

	t.Run("rejects unknown folder", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.folderSvc.RenameFolder(ctx, owner, "nope", "Name")
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("rejects non-owner", func(t *testing.T) {
		env := newTestEnv(t)
		g := env.addGallery(t, owner, true)
		f := env.addFolder(t, g.ID, nil, "Mine")

		_, err := env.folderSvc.RenameFolder(ctx, "someone-else", f.ID, "Yours")
		if !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("err = %v, want ErrForbidden", err)
		}
	})
}

func TestMoveFolder(t *testing.T) {
	ctx := context.Background()
	owner := "user-1"

	// a
	// └── b
	//     └── c
	// d
	build := func(t *testing.T) (*testEnv, *models.Gallery, [4]*models.Folder) {
		env := newTestEnv(t)
		g := env.addGallery(t, owner, false)
		a := env.addFolder(t, g.ID, nil, "a")
		b := env.addFolder(t, g.ID, &a.ID, "b")
		c := env.addFolder(t, g.ID, &b.ID, "c")
		d := env.addFolder(t, g.ID, nil, "d")
		return env, g, [4]*models.Folder{a, b, c, d}
	}

	t.Run("moves under new parent", func(t *testing.T) {
		env, _, f := build(t)

		moved, err := env.folderSvc.MoveFolder(ctx, owner, f[3].ID, &f[2].ID)
		if err != nil {
			t.Fatalf("MoveFolder: %v", err)
		}
		if moved.ParentID == nil || *moved.ParentID != f[2].ID {
			t.Errorf("parent = %v, want %s", moved.ParentID, f[2].ID)
		}
	})

	t.Run("moves subtree to root", func(t *testing.T) {
		env, _, f := build(t)

		moved, err := env.folderSvc.MoveFolder(ctx, owner, f[1].ID, nil)
		if err != nil {
			t.Fatalf("MoveFolder: %v", err)
		}
		if moved.ParentID != nil {
			t.Errorf("parent = %v, want nil", *moved.ParentID)
		}
		// The subtree tags along untouched
		c, _ := env.folders.GetByID(ctx, f[2].ID)
		if c.ParentID == nil || *c.ParentID != f[1].ID {
			t.Errorf("child parent = %v, want %s", c.ParentID, f[1].ID)
		}
	})

	t.Run("locks the owning gallery", func(t *testing.T) {
		env, _, f := build(t)

		if _, err := env.folderSvc.MoveFolder(ctx, owner, f[3].ID, &f[0].ID); err != nil {
			t.Fatalf("MoveFolder: %v", err)
		}
		if env.store.lockCalls == 0 {
			t.Error("expected gallery row lock to be taken")
		}
	})

	t.Run("rejects self parenting", func(t *testing.T) {
		env, _, f := build(t)

		_, err := env.folderSvc.MoveFolder(ctx, owner, f[0].ID, &f[0].ID)
		if code := structuralCode(t, err); code != domain.CodeSelfParenting {
			t.Errorf("code = %q, want %q", code, domain.CodeSelfParenting)
		}
	})

	t.Run("rejects move under own descendant", func(t *testing.T) {
		env, _, f := build(t)

		_, err := env.folderSvc.MoveFolder(ctx, owner, f[0].ID, &f[2].ID)
		if code := structuralCode(t, err); code != domain.CodeCyclicMove {
			t.Errorf("code = %q, want %q", code, domain.CodeCyclicMove)
		}

		// The rejected move leaves the tree untouched
		a, _ := env.folders.GetByID(ctx, f[0].ID)
		if a.ParentID != nil {
			t.Errorf("parent changed to %v after rejected move", *a.ParentID)
		}
	})

	t.Run("rejects unknown target", func(t *testing.T) {
		env, _, f := build(t)

		target := "nope"
		_, err := env.folderSvc.MoveFolder(ctx, owner, f[0].ID, &target)
		if code := structuralCode(t, err); code != domain.CodeTargetNotFound {
			t.Errorf("code = %q, want %q", code, domain.CodeTargetNotFound)
		}
	})

	t.Run("rejects target in another gallery", func(t *testing.T) {
		env, _, f := build(t)
		other := env.addGallery(t, owner, false)
		foreign := env.addFolder(t, other.ID, nil, "foreign")

		_, err := env.folderSvc.MoveFolder(ctx, owner, f[0].ID, &foreign.ID)
		if code := structuralCode(t, err); code != domain.CodeTargetNotFound {
			t.Errorf("code = %q, want %q", code, domain.CodeTargetNotFound)
		}
	})

	t.Run("rejects non-owner", func(t *testing.T) {
		env, _, f := build(t)

		_, err := env.folderSvc.MoveFolder(ctx, "someone-else", f[3].ID, &f[0].ID)
		if !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("err = %v, want ErrForbidden", err)
		}
	})
}

func TestSetCoverPhoto(t *testing.T) {
	ctx := context.Background()
	owner := "user-1"

	t.Run("sets cover from own photo", func(t *testing.T) {
		env := newTestEnv(t)
		g := env.addGallery(t, owner, false)
		f := env.addFolder(t, g.ID, nil, "Album")
		p := env.addPhoto(t, f.ID, "cover.jpg", nil)

		updated, err := env.folderSvc.SetCoverPhoto(ctx, owner, f.ID, &p.ID)
		if err != nil {
			t.Fatalf("SetCoverPhoto: %v", err)
		}
		if updated.CoverPhotoID == nil || *updated.CoverPhotoID != p.ID {
			t.Errorf("cover = %v, want %s", updated.CoverPhotoID, p.ID)
		}
	})

	t.Run("rejects photo from another folder", func(t *testing.T) {
		env := newTestEnv(t)
		g := env.addGallery(t, owner, false)
		f1 := env.addFolder(t, g.ID, nil, "Album")
		f2 := env.addFolder(t, g.ID, nil, "Other")
		p := env.addPhoto(t, f2.ID, "elsewhere.jpg", nil)

		_, err := env.folderSvc.SetCoverPhoto(ctx, owner, f1.ID, &p.ID)
		if code := structuralCode(t, err); code != domain.CodePhotoNotInFolder {
			t.Errorf("code = %q, want %q", code, domain.CodePhotoNotInFolder)
		}

		kept, _ := env.folders.GetByID(ctx, f1.ID)
		if kept.CoverPhotoID != nil {
			t.Errorf("cover changed to %v after rejected assignment", *kept.CoverPhotoID)
		}
	})

	t.Run("clears cover with nil", func(t *testing.T) {
		env := newTestEnv(t)
		g := env.addGallery(t, owner, false)
		f := env.addFolder(t, g.ID, nil, "Album")
		p := env.addPhoto(t, f.ID, "cover.jpg", nil)

		if _, err := env.folderSvc.SetCoverPhoto(ctx, owner, f.ID, &p.ID); err != nil {
			t.Fatalf("SetCoverPhoto: %v", err)
		}
		cleared, err := env.folderSvc.SetCoverPhoto(ctx, owner, f.ID, nil)
		if err != nil {
			t.Fatalf("SetCoverPhoto clear: %v", err)
		}
		if cleared.CoverPhotoID != nil {
			t.Errorf("cover = %v, want nil", *cleared.CoverPhotoID)
		}
	})
}

func TestDeleteFolder(t *testing.T) {
	ctx := context.Background()
	owner := "user-1"

	t.Run("cascades to descendants and their photos", func(t *testing.T) {
		env := newTestEnv(t)
		g := env.addGallery(t, owner, false)
		root := env.addFolder(t, g.ID, nil, "root")
		child := env.addFolder(t, g.ID, &root.ID, "child")
		grandchild := env.addFolder(t, g.ID, &child.ID, "grandchild")
		sibling := env.addFolder(t, g.ID, nil, "sibling")

		env.addPhoto(t, child.ID, "a.jpg", nil)
		env.addPhoto(t, grandchild.ID, "b.jpg", nil)
		survivor := env.addPhoto(t, sibling.ID, "c.jpg", nil)

		if err := env.folderSvc.DeleteFolder(ctx, owner, root.ID); err != nil {
			t.Fatalf("DeleteFolder: %v", err)
		}

		for _, id := range []string{root.ID, child.ID, grandchild.ID} {
			if _, err := env.folders.GetByID(ctx, id); !errors.Is(err, domain.ErrNotFound) {
				t.Errorf("folder %s still present after cascade", id)
			}
		}
		if _, err := env.folders.GetByID(ctx, sibling.ID); err != nil {
			t.Errorf("sibling deleted by cascade: %v", err)
		}
		if len(env.store.photos) != 1 {
			t.Errorf("photo count = %d, want 1", len(env.store.photos))
		}
		if _, err := env.photos.GetByID(ctx, survivor.ID); err != nil {
			t.Errorf("sibling photo deleted by cascade: %v", err)
		}
	})

	t.Run("rejects unknown folder", func(t *testing.T) {
		env := newTestEnv(t)

		err := env.folderSvc.DeleteFolder(ctx, owner, "nope")
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("rejects non-owner", func(t *testing.T) {
		env := newTestEnv(t)
		g := env.addGallery(t, owner, true)
		f := env.addFolder(t, g.ID, nil, "Mine")

		err := env.folderSvc.DeleteFolder(ctx, "someone-else", f.ID)
		if !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("err = %v, want ErrForbidden", err)
		}
	})
}

func TestGetFolder(t *testing.T) {
	ctx := context.Background()
	owner := "user-1"

	t.Run("returns children and photos in order", func(t *testing.T) {
		env := newTestEnv(t)
		g := env.addGallery(t, owner, false)
		f := env.addFolder(t, g.ID, nil, "Album")
		first := env.addFolder(t, g.ID, &f.ID, "First")
		second := env.addFolder(t, g.ID, &f.ID, "Second")

		// Later capture time but earlier upload; capture time wins
		early := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
		late := time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)
		p1 := env.addPhoto(t, f.ID, "late.jpg", &late)
		p2 := env.addPhoto(t, f.ID, "early.jpg", &early)

		contents, err := env.folderSvc.GetFolder(ctx, owner, f.ID)
		if err != nil {
			t.Fatalf("GetFolder: %v", err)
		}

		if contents.Gallery == nil || contents.Gallery.ID != g.ID {
			t.Fatalf("gallery summary = %+v, want gallery %s", contents.Gallery, g.ID)
		}
		if len(contents.Folders) != 2 || contents.Folders[0].ID != first.ID || contents.Folders[1].ID != second.ID {
			t.Errorf("children out of creation order: %+v", contents.Folders)
		}
		if len(contents.Photos) != 2 || contents.Photos[0].ID != p2.ID || contents.Photos[1].ID != p1.ID {
			t.Errorf("photos out of capture order: %+v", contents.Photos)
		}
	})

	t.Run("public gallery readable by anyone", func(t *testing.T) {
		env := newTestEnv(t)
		g := env.addGallery(t, owner, true)
		f := env.addFolder(t, g.ID, nil, "Public Album")

		if _, err := env.folderSvc.GetFolder(ctx, "stranger", f.ID); err != nil {
			t.Errorf("GetFolder on public gallery: %v", err)
		}
	})

	t.Run("private gallery hidden from strangers", func(t *testing.T) {
		env := newTestEnv(t)
		g := env.addGallery(t, owner, false)
		f := env.addFolder(t, g.ID, nil, "Private Album")

		_, err := env.folderSvc.GetFolder(ctx, "stranger", f.ID)
		if !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("err = %v, want ErrForbidden", err)
		}
	})
}
