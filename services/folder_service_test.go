package services

import (
	"context"
	"testing"

	"drivebox/models"
)

func newFolderServiceForTest() (FolderService, *fakeFolderRepo, *fakeSearchCache) {
	folders := newFakeFolderRepo()
	cache := newFakeSearchCache()
	return NewFolderService(folders, cache), folders, cache
}

func TestCreateFolderTrimsName(t *testing.T) {
	svc, _, _ := newFolderServiceForTest()

	folder, err := svc.CreateFolder(context.Background(), 1, "  Photos  ", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if folder.Name != "Photos" {
		t.Fatalf("expected trimmed name, got %q", folder.Name)
	}
	if folder.ID == 0 {
		t.Fatalf("expected a fresh id")
	}
	if folder.ParentID != nil {
		t.Fatalf("expected nil parent for a root-level folder")
	}
}

func TestCreateFolderEmptyNameRejected(t *testing.T) {
	svc, folders, _ := newFolderServiceForTest()

	_, err := svc.CreateFolder(context.Background(), 1, "   ", nil)
	assertAppError(t, err, 400)
	if len(folders.folders) != 0 {
		t.Fatalf("expected no folder persisted")
	}
}

func TestCreateFolderMissingParentRejected(t *testing.T) {
	svc, _, _ := newFolderServiceForTest()

	parentID := uint(42)
	_, err := svc.CreateFolder(context.Background(), 1, "Photos", &parentID)
	assertAppError(t, err, 404)
}

func TestCreateFolderForeignParentRejected(t *testing.T) {
	svc, folders, _ := newFolderServiceForTest()
	folders.folders[5] = models.Folder{ID: 5, Name: "Theirs", UserID: 2}

	parentID := uint(5)
	_, err := svc.CreateFolder(context.Background(), 1, "Photos", &parentID)
	assertAppError(t, err, 404)
}

func TestCreateFolderAllowsDuplicateNames(t *testing.T) {
	svc, folders, _ := newFolderServiceForTest()

	if _, err := svc.CreateFolder(context.Background(), 1, "Photos", nil); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := svc.CreateFolder(context.Background(), 1, "Photos", nil); err != nil {
		t.Fatalf("duplicate name should be allowed, got: %v", err)
	}
	if len(folders.folders) != 2 {
		t.Fatalf("expected 2 folders, got %d", len(folders.folders))
	}
}

func TestCreateFolderBumpsSearchGeneration(t *testing.T) {
	svc, _, cache := newFolderServiceForTest()

	if _, err := svc.CreateFolder(context.Background(), 1, "Photos", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.bumps != 1 {
		t.Fatalf("expected 1 generation bump, got %d", cache.bumps)
	}
}

func TestListFoldersScopedToOwner(t *testing.T) {
	svc, folders, _ := newFolderServiceForTest()
	folders.folders[1] = models.Folder{ID: 1, Name: "Work", UserID: 1}
	folders.folders[2] = models.Folder{ID: 2, Name: "Private", UserID: 2}

	list, err := svc.ListFolders(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Work" {
		t.Fatalf("expected only the owner's folder, got %+v", list)
	}

	listB, err := svc.ListFolders(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listB) != 1 || listB[0].Name != "Private" {
		t.Fatalf("user 2 must not see user 1 folders, got %+v", listB)
	}
}

func TestResolvePathNestedFolders(t *testing.T) {
	svc, _, _ := newFolderServiceForTest()

	photos, err := svc.CreateFolder(context.Background(), 1, "Photos", nil)
	if err != nil {
		t.Fatalf("create Photos: %v", err)
	}
	year, err := svc.CreateFolder(context.Background(), 1, "2024", &photos.ID)
	if err != nil {
		t.Fatalf("create 2024: %v", err)
	}

	path, err := svc.ResolvePath(context.Background(), 1, year.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(path) != 2 || path[0].Name != "Photos" || path[1].Name != "2024" {
		t.Fatalf("expected [Photos 2024], got %+v", path)
	}
	if path[0].ParentID != nil {
		t.Fatalf("first element of the path must have no parent")
	}
	if path[len(path)-1].ID != year.ID {
		t.Fatalf("last element must be the queried folder")
	}
}

func TestResolvePathRootLevelFolder(t *testing.T) {
	svc, _, _ := newFolderServiceForTest()

	folder, err := svc.CreateFolder(context.Background(), 1, "Docs", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	path, err := svc.ResolvePath(context.Background(), 1, folder.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(path) != 1 || path[0].ID != folder.ID {
		t.Fatalf("expected single-element path, got %+v", path)
	}
}

func TestResolvePathUnknownFolder(t *testing.T) {
	svc, _, _ := newFolderServiceForTest()

	_, err := svc.ResolvePath(context.Background(), 1, 99)
	assertAppError(t, err, 404)
}

func TestResolvePathForeignFolder(t *testing.T) {
	svc, folders, _ := newFolderServiceForTest()
	folders.folders[7] = models.Folder{ID: 7, Name: "Theirs", UserID: 2}

	_, err := svc.ResolvePath(context.Background(), 1, 7)
	assertAppError(t, err, 404)
}

func TestResolvePathCyclicChainTerminates(t *testing.T) {
	svc, folders, _ := newFolderServiceForTest()

	// Corrupt data: two folders referencing each other as parents.
	idA, idB := uint(1), uint(2)
	folders.folders[idA] = models.Folder{ID: idA, Name: "A", ParentID: &idB, UserID: 1}
	folders.folders[idB] = models.Folder{ID: idB, Name: "B", ParentID: &idA, UserID: 1}

	path, err := svc.ResolvePath(context.Background(), 1, idA)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(path) == 0 || path[len(path)-1].ID != idA {
		t.Fatalf("expected a terminating path ending at the queried folder, got %+v", path)
	}
}

func TestResolvePathDanglingParentStops(t *testing.T) {
	svc, folders, _ := newFolderServiceForTest()

	missing := uint(99)
	folders.folders[1] = models.Folder{ID: 1, Name: "Orphan", ParentID: &missing, UserID: 1}

	path, err := svc.ResolvePath(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(path) != 1 || path[0].ID != 1 {
		t.Fatalf("expected the chain to stop at the dangling reference, got %+v", path)
	}
}

func assertAppError(t *testing.T, err error, httpCode int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected an error")
	}
	appErr, ok := err.(*AppError)
	if !ok {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}
	if appErr.HTTPCode != httpCode {
		t.Fatalf("expected HTTP code %d, got %d (%s)", httpCode, appErr.HTTPCode, appErr.Message)
	}
}
