package repositories

import (
	"context"

	"drivebox/models"

	"gorm.io/gorm"
)

type UserRepository interface {
	CountByUsername(ctx context.Context, username string) (int64, error)
	Create(ctx context.Context, tx *gorm.DB, user *models.User) error
	GetByUsername(ctx context.Context, tx *gorm.DB, username string) (models.User, error)
}

type FolderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, folder *models.Folder) error
	GetByIDAndUser(ctx context.Context, tx *gorm.DB, folderID uint, userID uint) (models.Folder, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uint) ([]models.Folder, error)
	SearchByName(ctx context.Context, tx *gorm.DB, userID uint, query string) ([]models.Folder, error)
}

type FileRepository interface {
	Create(ctx context.Context, tx *gorm.DB, file *models.File) error
	GetByIDAndUser(ctx context.Context, tx *gorm.DB, fileID uint, userID uint) (models.File, error)
	GetByContentRef(ctx context.Context, tx *gorm.DB, contentRef string) (models.File, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uint) ([]models.File, error)
	ListByFolder(ctx context.Context, tx *gorm.DB, userID uint, folderID uint) ([]models.File, error)
	SearchByName(ctx context.Context, tx *gorm.DB, userID uint, query string) ([]models.File, error)
}

// SearchCache memoizes combined search results per user. A generation
// counter bumped on every write keeps stale entries from being served.
type SearchCache interface {
	Generation(ctx context.Context, userID uint) (int64, error)
	BumpGeneration(ctx context.Context, userID uint) error
	Get(ctx context.Context, userID uint, generation int64, query string) ([]byte, bool, error)
	Set(ctx context.Context, userID uint, generation int64, query string, payload []byte, ttlSeconds int) error
}

type Container struct {
	Users       UserRepository
	Folders     FolderRepository
	Files       FileRepository
	SearchCache SearchCache
}
