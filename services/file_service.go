package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"drivebox/logger"
	"drivebox/models"
	"drivebox/repositories"
	"drivebox/storage"

	"gorm.io/gorm"
)

// FolderRefRoot is the sentinel clients may send instead of a folder id.
const FolderRefRoot = "root"

type UploadInput struct {
	Name string
	// FolderRef is the raw caller-supplied folder value: empty, "root",
	// or a folder id in decimal form.
	FolderRef   string
	Content     io.ReadSeeker
	Size        int64
	ContentType string
}

// ContentOutput carries an open content stream back to the handler.
// Body must be closed by the caller.
type ContentOutput struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.ReadCloser
}

type FileService interface {
	UploadFile(ctx context.Context, userID uint, in UploadInput) (models.File, error)
	ListFiles(ctx context.Context, userID uint, folderID *uint) ([]models.File, error)
	GetContent(ctx context.Context, contentRef string) (ContentOutput, error)
	GetThumbnail(ctx context.Context, userID uint, fileID uint) (ContentOutput, error)
}

type fileService struct {
	folders repositories.FolderRepository
	files   repositories.FileRepository
	cache   repositories.SearchCache
	blobs   storage.BlobStore
}

func NewFileService(
	folders repositories.FolderRepository,
	files repositories.FileRepository,
	cache repositories.SearchCache,
	blobs storage.BlobStore,
) FileService {
	return &fileService{folders: folders, files: files, cache: cache, blobs: blobs}
}

// normalizeFolderRef maps the caller-supplied folder value onto a folder id.
// Empty, "root" and malformed values all mean the root level; this mirrors
// the historical upload contract, where a bad folder reference silently files
// the upload at the root instead of rejecting it. A well-formed id must
// resolve to a folder owned by the caller.
func (s *fileService) normalizeFolderRef(ctx context.Context, userID uint, ref string) (uint, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.EqualFold(ref, FolderRefRoot) {
		return 0, nil
	}

	id, err := strconv.ParseUint(ref, 10, 32)
	if err != nil || id == 0 {
		logger.Debugf("malformed folder ref %q from user %d, filing at root", ref, userID)
		return 0, nil
	}

	if _, err := s.folders.GetByIDAndUser(ctx, nil, uint(id), userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, newAppError(http.StatusNotFound, "target folder does not exist", nil)
		}
		return 0, newAppError(http.StatusInternalServerError, "failed to check target folder", err)
	}
	return uint(id), nil
}

func (s *fileService) UploadFile(ctx context.Context, userID uint, in UploadInput) (models.File, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.File{}, newAppError(http.StatusBadRequest, "file name is required", nil)
	}

	folderID, err := s.normalizeFolderRef(ctx, userID, in.FolderRef)
	if err != nil {
		return models.File{}, err
	}

	// Phase one: the bytes go to the blob store first. Owner and folder
	// travel along as object metadata for traceability.
	meta := map[string]string{
		"owner":  strconv.FormatUint(uint64(userID), 10),
		"folder": strconv.FormatUint(uint64(folderID), 10),
	}
	contentRef, err := s.blobs.Put(ctx, storage.PutInput{
		Reader:      in.Content,
		Size:        in.Size,
		ContentType: in.ContentType,
		Metadata:    meta,
	})
	if err != nil {
		return models.File{}, newAppError(http.StatusInternalServerError, "failed to store file content", err)
	}

	thumbnailRef := ""
	if isImageMime(in.ContentType) {
		thumbnailRef = s.makeThumbnail(ctx, in.Content, meta)
	}

	// Phase two: the metadata record. If this insert fails the blob stays
	// behind as an orphan; no compensating delete is attempted.
	file := models.File{
		Name:         name,
		ContentRef:   contentRef,
		ThumbnailRef: thumbnailRef,
		MimeType:     in.ContentType,
		Size:         in.Size,
		FolderID:     folderID,
		UserID:       userID,
	}
	if err := s.files.Create(ctx, nil, &file); err != nil {
		logger.Errorf("file record insert failed, blob %s orphaned: %v", contentRef, err)
		return models.File{}, newAppError(http.StatusInternalServerError, "failed to save file record", err)
	}

	s.invalidateSearch(ctx, userID)
	return file, nil
}

func (s *fileService) ListFiles(ctx context.Context, userID uint, folderID *uint) ([]models.File, error) {
	var (
		files []models.File
		err   error
	)
	if folderID == nil {
		files, err = s.files.ListByUser(ctx, nil, userID)
	} else {
		// Exact folder match only; files in subfolders are not included.
		files, err = s.files.ListByFolder(ctx, nil, userID, *folderID)
	}
	if err != nil {
		return nil, newAppError(http.StatusInternalServerError, "failed to list files", err)
	}
	return files, nil
}

// GetContent serves file bytes by content handle. There is deliberately no
// owner check on this path: a handle is an unguessable UUID and the historical
// contract lets anyone holding one fetch the content.
func (s *fileService) GetContent(ctx context.Context, contentRef string) (ContentOutput, error) {
	file, err := s.files.GetByContentRef(ctx, nil, contentRef)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ContentOutput{}, newAppError(http.StatusNotFound, "file not found", nil)
		}
		return ContentOutput{}, newAppError(http.StatusInternalServerError, "failed to load file record", err)
	}

	return s.openBlob(ctx, file.ContentRef, file)
}

func (s *fileService) GetThumbnail(ctx context.Context, userID uint, fileID uint) (ContentOutput, error) {
	file, err := s.files.GetByIDAndUser(ctx, nil, fileID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ContentOutput{}, newAppError(http.StatusNotFound, "file not found", nil)
		}
		return ContentOutput{}, newAppError(http.StatusInternalServerError, "failed to load file record", err)
	}
	if file.ThumbnailRef == "" {
		return ContentOutput{}, newAppError(http.StatusNotFound, "file has no thumbnail", nil)
	}

	return s.openBlob(ctx, file.ThumbnailRef, file)
}

func (s *fileService) openBlob(ctx context.Context, handle string, file models.File) (ContentOutput, error) {
	obj, err := s.blobs.Get(ctx, handle)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ContentOutput{}, newAppError(http.StatusNotFound, "file content not found", nil)
		}
		return ContentOutput{}, newAppError(http.StatusInternalServerError, "failed to open file content", err)
	}

	contentType := obj.ContentType
	if contentType == "" {
		contentType = file.MimeType
	}
	return ContentOutput{
		Name:        file.Name,
		ContentType: contentType,
		Size:        obj.Size,
		Body:        obj.Body,
	}, nil
}

func (s *fileService) invalidateSearch(ctx context.Context, userID uint) {
	if err := s.cache.BumpGeneration(ctx, userID); err != nil {
		logger.Debugf("bump search generation for user %d: %v", userID, err)
	}
}
