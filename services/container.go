package services

import (
	"drivebox/repositories"
	"drivebox/storage"
)

type Container struct {
	Auth   AuthService
	Folder FolderService
	File   FileService
	Search SearchService
}

func NewContainer(repos repositories.Container, blobs storage.BlobStore) *Container {
	return &Container{
		Auth:   NewAuthService(repos.Users),
		Folder: NewFolderService(repos.Folders, repos.SearchCache),
		File:   NewFileService(repos.Folders, repos.Files, repos.SearchCache, blobs),
		Search: NewSearchService(repos.Folders, repos.Files, repos.SearchCache),
	}
}
