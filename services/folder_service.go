package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"drivebox/logger"
	"drivebox/models"
	"drivebox/repositories"

	"gorm.io/gorm"
)

type FolderService interface {
	CreateFolder(ctx context.Context, userID uint, name string, parentID *uint) (models.Folder, error)
	ListFolders(ctx context.Context, userID uint) ([]models.Folder, error)
	// ResolvePath returns the ancestor chain of a folder, root first,
	// the folder itself last.
	ResolvePath(ctx context.Context, userID uint, folderID uint) ([]models.Folder, error)
}

type folderService struct {
	folders repositories.FolderRepository
	cache   repositories.SearchCache
}

func NewFolderService(folders repositories.FolderRepository, cache repositories.SearchCache) FolderService {
	return &folderService{folders: folders, cache: cache}
}

func (s *folderService) CreateFolder(ctx context.Context, userID uint, name string, parentID *uint) (models.Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Folder{}, newAppError(http.StatusBadRequest, "folder name is required", nil)
	}

	if parentID != nil {
		if _, err := s.folders.GetByIDAndUser(ctx, nil, *parentID, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.Folder{}, newAppError(http.StatusNotFound, "parent folder does not exist", nil)
			}
			return models.Folder{}, newAppError(http.StatusInternalServerError, "failed to check parent folder", err)
		}
	}

	// Duplicate names under one parent are allowed.
	folder := models.Folder{
		Name:     name,
		ParentID: parentID,
		UserID:   userID,
	}
	if err := s.folders.Create(ctx, nil, &folder); err != nil {
		return models.Folder{}, newAppError(http.StatusInternalServerError, "failed to create folder", err)
	}

	s.invalidateSearch(ctx, userID)
	return folder, nil
}

func (s *folderService) ListFolders(ctx context.Context, userID uint) ([]models.Folder, error) {
	folders, err := s.folders.ListByUser(ctx, nil, userID)
	if err != nil {
		return nil, newAppError(http.StatusInternalServerError, "failed to list folders", err)
	}
	return folders, nil
}

func (s *folderService) ResolvePath(ctx context.Context, userID uint, folderID uint) ([]models.Folder, error) {
	folder, err := s.folders.GetByIDAndUser(ctx, nil, folderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newAppError(http.StatusNotFound, "folder does not exist", nil)
		}
		return nil, newAppError(http.StatusInternalServerError, "failed to load folder", err)
	}

	chain := []models.Folder{folder}
	visited := map[uint]bool{folder.ID: true}

	for folder.ParentID != nil {
		parentID := *folder.ParentID
		// Parent links are never rewritten through the API, but stored
		// data is not trusted: a visited set keeps a corrupt chain from
		// looping forever.
		if visited[parentID] {
			logger.Errorf("folder %d of user %d has a cyclic parent chain", folderID, userID)
			break
		}

		folder, err = s.folders.GetByIDAndUser(ctx, nil, parentID, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Dangling parent reference; treat the chain
				// resolved so far as the full path.
				logger.Debugf("folder %d of user %d references missing parent %d", chain[0].ID, userID, parentID)
				break
			}
			return nil, newAppError(http.StatusInternalServerError, "failed to resolve folder path", err)
		}

		visited[folder.ID] = true
		chain = append([]models.Folder{folder}, chain...)
	}

	return chain, nil
}

func (s *folderService) invalidateSearch(ctx context.Context, userID uint) {
	if err := s.cache.BumpGeneration(ctx, userID); err != nil {
		logger.Debugf("bump search generation for user %d: %v", userID, err)
	}
}
