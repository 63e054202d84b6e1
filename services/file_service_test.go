package services

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"testing"

	"drivebox/models"
	"drivebox/storage"
)

func newFileServiceForTest() (FileService, *fakeFolderRepo, *fakeFileRepo, *fakeSearchCache, *storage.MemoryBlobStore) {
	folders := newFakeFolderRepo()
	files := newFakeFileRepo()
	cache := newFakeSearchCache()
	blobs := storage.NewMemoryBlobStore()
	return NewFileService(folders, files, cache, blobs), folders, files, cache, blobs
}

func uploadInput(name, folderRef string, data []byte, contentType string) UploadInput {
	return UploadInput{
		Name:        name,
		FolderRef:   folderRef,
		Content:     bytes.NewReader(data),
		Size:        int64(len(data)),
		ContentType: contentType,
	}
}

func TestUploadFileEmptyNameRejected(t *testing.T) {
	svc, _, files, _, _ := newFileServiceForTest()

	_, err := svc.UploadFile(context.Background(), 1, uploadInput("  ", "", []byte("x"), "text/plain"))
	assertAppError(t, err, 400)
	if len(files.files) != 0 {
		t.Fatalf("expected no record persisted")
	}
}

func TestUploadFileRootRefVariants(t *testing.T) {
	// Empty, the "root" sentinel and malformed values all file at root.
	for _, ref := range []string{"", "root", "ROOT", " root ", "not-a-number", "12abc", "0"} {
		svc, _, _, _, _ := newFileServiceForTest()

		file, err := svc.UploadFile(context.Background(), 1, uploadInput("logo", ref, []byte("data"), "text/plain"))
		if err != nil {
			t.Fatalf("ref %q: unexpected error: %v", ref, err)
		}
		if file.FolderID != 0 {
			t.Fatalf("ref %q: expected FolderID 0, got %d", ref, file.FolderID)
		}

		rootID := uint(0)
		list, err := svc.ListFiles(context.Background(), 1, &rootID)
		if err != nil {
			t.Fatalf("ref %q: list failed: %v", ref, err)
		}
		if len(list) != 1 || list[0].Name != "logo" {
			t.Fatalf("ref %q: expected the file in the root listing, got %+v", ref, list)
		}
	}
}

func TestUploadFileIntoOwnedFolder(t *testing.T) {
	svc, folders, _, _, _ := newFileServiceForTest()
	folders.folders[5] = models.Folder{ID: 5, Name: "Photos", UserID: 1}

	file, err := svc.UploadFile(context.Background(), 1, uploadInput("pic", "5", []byte("data"), "text/plain"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if file.FolderID != 5 {
		t.Fatalf("expected FolderID 5, got %d", file.FolderID)
	}
}

func TestUploadFileUnknownFolderRejected(t *testing.T) {
	svc, _, _, _, _ := newFileServiceForTest()

	_, err := svc.UploadFile(context.Background(), 1, uploadInput("pic", "42", []byte("data"), "text/plain"))
	assertAppError(t, err, 404)
}

func TestUploadFileForeignFolderRejected(t *testing.T) {
	svc, folders, _, _, _ := newFileServiceForTest()
	folders.folders[5] = models.Folder{ID: 5, Name: "Theirs", UserID: 2}

	_, err := svc.UploadFile(context.Background(), 1, uploadInput("pic", "5", []byte("data"), "text/plain"))
	assertAppError(t, err, 404)
}

func TestUploadFileBlobFailureLeavesNoRecord(t *testing.T) {
	folders := newFakeFolderRepo()
	files := newFakeFileRepo()
	cache := newFakeSearchCache()
	blobs := &failingBlobStore{putErr: errors.New("minio down")}
	svc := NewFileService(folders, files, cache, blobs)

	_, err := svc.UploadFile(context.Background(), 1, uploadInput("pic", "", []byte("data"), "text/plain"))
	assertAppError(t, err, 500)
	if len(files.files) != 0 {
		t.Fatalf("expected no metadata record after blob failure")
	}
	if cache.bumps != 0 {
		t.Fatalf("expected no cache invalidation after failed upload")
	}
}

func TestUploadFileRecordFailureLeavesOrphanBlob(t *testing.T) {
	svc, _, files, _, blobs := newFileServiceForTest()
	files.createErr = errors.New("insert failed")

	_, err := svc.UploadFile(context.Background(), 1, uploadInput("pic", "", []byte("data"), "text/plain"))
	assertAppError(t, err, 500)
	// The blob stays behind; no compensating delete.
	if blobs.Len() != 1 {
		t.Fatalf("expected 1 orphaned blob, got %d", blobs.Len())
	}
}

func TestUploadFileStoresOwnerMetadata(t *testing.T) {
	svc, folders, _, _, blobs := newFileServiceForTest()
	folders.folders[3] = models.Folder{ID: 3, Name: "Docs", UserID: 7}

	file, err := svc.UploadFile(context.Background(), 7, uploadInput("doc", "3", []byte("data"), "text/plain"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	meta := blobs.Metadata(file.ContentRef)
	if meta["owner"] != "7" || meta["folder"] != "3" {
		t.Fatalf("expected owner/folder metadata on the blob, got %v", meta)
	}
}

func TestUploadFileBumpsSearchGeneration(t *testing.T) {
	svc, _, _, cache, _ := newFileServiceForTest()

	if _, err := svc.UploadFile(context.Background(), 1, uploadInput("pic", "", []byte("data"), "text/plain")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.bumps != 1 {
		t.Fatalf("expected 1 generation bump, got %d", cache.bumps)
	}
}

func TestContentRoundTrip(t *testing.T) {
	svc, _, _, _, _ := newFileServiceForTest()
	payload := []byte("the quick brown fox")

	file, err := svc.UploadFile(context.Background(), 1, uploadInput("fox.txt", "", payload, "text/plain"))
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	out, err := svc.GetContent(context.Background(), file.ContentRef)
	if err != nil {
		t.Fatalf("get content failed: %v", err)
	}
	defer out.Body.Close()

	got, err := io.ReadAll(out.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("content mismatch: got %q", got)
	}
	if out.ContentType != "text/plain" {
		t.Fatalf("expected original mime type, got %q", out.ContentType)
	}
	if out.Name != "fox.txt" {
		t.Fatalf("expected the display name, got %q", out.Name)
	}
}

func TestGetContentUnknownHandle(t *testing.T) {
	svc, _, _, _, _ := newFileServiceForTest()

	_, err := svc.GetContent(context.Background(), "no-such-handle")
	assertAppError(t, err, 404)
}

func TestListFilesFolderScoping(t *testing.T) {
	svc, folders, _, _, _ := newFileServiceForTest()
	folders.folders[5] = models.Folder{ID: 5, Name: "Photos", UserID: 1}

	if _, err := svc.UploadFile(context.Background(), 1, uploadInput("logo", "", []byte("a"), "text/plain")); err != nil {
		t.Fatalf("upload logo: %v", err)
	}
	if _, err := svc.UploadFile(context.Background(), 1, uploadInput("pic", "5", []byte("b"), "text/plain")); err != nil {
		t.Fatalf("upload pic: %v", err)
	}

	rootID := uint(0)
	rootList, err := svc.ListFiles(context.Background(), 1, &rootID)
	if err != nil {
		t.Fatalf("list root: %v", err)
	}
	if len(rootList) != 1 || rootList[0].Name != "logo" {
		t.Fatalf("expected only logo at root, got %+v", rootList)
	}

	folderID := uint(5)
	folderList, err := svc.ListFiles(context.Background(), 1, &folderID)
	if err != nil {
		t.Fatalf("list folder: %v", err)
	}
	if len(folderList) != 1 || folderList[0].Name != "pic" {
		t.Fatalf("expected only pic in the folder, got %+v", folderList)
	}

	all, err := svc.ListFiles(context.Background(), 1, nil)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 files without a folder filter, got %d", len(all))
	}
}

func TestListFilesScopedToOwner(t *testing.T) {
	svc, _, _, _, _ := newFileServiceForTest()

	if _, err := svc.UploadFile(context.Background(), 1, uploadInput("mine", "", []byte("a"), "text/plain")); err != nil {
		t.Fatalf("upload: %v", err)
	}

	list, err := svc.ListFiles(context.Background(), 2, nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("user 2 must not see user 1 files, got %+v", list)
	}
}

func TestUploadImageCreatesThumbnail(t *testing.T) {
	svc, _, _, _, _ := newFileServiceForTest()

	img := image.NewRGBA(image.Rect(0, 0, 320, 200))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test image: %v", err)
	}

	file, err := svc.UploadFile(context.Background(), 1, uploadInput("photo.png", "", buf.Bytes(), "image/png"))
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if file.ThumbnailRef == "" {
		t.Fatalf("expected a thumbnail for an image upload")
	}

	thumb, err := svc.GetThumbnail(context.Background(), 1, file.ID)
	if err != nil {
		t.Fatalf("get thumbnail: %v", err)
	}
	defer thumb.Body.Close()
	if thumb.ContentType != "image/jpeg" {
		t.Fatalf("expected jpeg thumbnail, got %q", thumb.ContentType)
	}
}

func TestUploadNonImageSkipsThumbnail(t *testing.T) {
	svc, _, _, _, blobs := newFileServiceForTest()

	file, err := svc.UploadFile(context.Background(), 1, uploadInput("notes.txt", "", []byte("text"), "text/plain"))
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if file.ThumbnailRef != "" {
		t.Fatalf("expected no thumbnail for a text upload")
	}
	if blobs.Len() != 1 {
		t.Fatalf("expected a single blob, got %d", blobs.Len())
	}

	_, err = svc.GetThumbnail(context.Background(), 1, file.ID)
	assertAppError(t, err, 404)
}
