package services

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"drivebox/config"
	"drivebox/logger"
	"drivebox/repositories"
)

const (
	KindFolder = "folder"
	KindFile   = "file"
)

type SearchResult struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Kind string `json:"kind"`
}

type SearchService interface {
	// Search matches the query as a case-insensitive substring against
	// folder and file names owned by the user. Matching folders come
	// first, then matching files, each in catalog order.
	Search(ctx context.Context, userID uint, query string) ([]SearchResult, error)
}

type searchService struct {
	folders repositories.FolderRepository
	files   repositories.FileRepository
	cache   repositories.SearchCache
}

func NewSearchService(
	folders repositories.FolderRepository,
	files repositories.FileRepository,
	cache repositories.SearchCache,
) SearchService {
	return &searchService{folders: folders, files: files, cache: cache}
}

func (s *searchService) Search(ctx context.Context, userID uint, query string) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []SearchResult{}, nil
	}

	cacheKey := strings.ToLower(query)
	gen, cached := s.fromCache(ctx, userID, cacheKey)
	if cached != nil {
		return cached, nil
	}

	folders, err := s.folders.SearchByName(ctx, nil, userID, query)
	if err != nil {
		return nil, newAppError(http.StatusInternalServerError, "failed to search folders", err)
	}
	files, err := s.files.SearchByName(ctx, nil, userID, query)
	if err != nil {
		return nil, newAppError(http.StatusInternalServerError, "failed to search files", err)
	}

	results := make([]SearchResult, 0, len(folders)+len(files))
	for _, folder := range folders {
		results = append(results, SearchResult{ID: folder.ID, Name: folder.Name, Kind: KindFolder})
	}
	for _, file := range files {
		results = append(results, SearchResult{ID: file.ID, Name: file.Name, Kind: KindFile})
	}

	s.toCache(ctx, userID, gen, cacheKey, results)
	return results, nil
}

// fromCache returns the current cache generation and, when present, the
// memoized results. Cache failures degrade to a direct query.
func (s *searchService) fromCache(ctx context.Context, userID uint, key string) (int64, []SearchResult) {
	gen, err := s.cache.Generation(ctx, userID)
	if err != nil {
		logger.Debugf("search cache generation for user %d: %v", userID, err)
		return 0, nil
	}

	payload, ok, err := s.cache.Get(ctx, userID, gen, key)
	if err != nil {
		logger.Debugf("search cache get for user %d: %v", userID, err)
		return gen, nil
	}
	if !ok {
		return gen, nil
	}

	var results []SearchResult
	if err := json.Unmarshal(payload, &results); err != nil {
		logger.Debugf("search cache payload for user %d: %v", userID, err)
		return gen, nil
	}
	return gen, results
}

func (s *searchService) toCache(ctx context.Context, userID uint, gen int64, key string, results []SearchResult) {
	payload, err := json.Marshal(results)
	if err != nil {
		return
	}
	ttl := config.AppConfig.Search.CacheTTLSeconds
	if err := s.cache.Set(ctx, userID, gen, key, payload, ttl); err != nil {
		logger.Debugf("search cache set for user %d: %v", userID, err)
	}
}
