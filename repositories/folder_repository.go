package repositories

import (
	"context"
	"strings"

	"drivebox/models"

	"gorm.io/gorm"
)

type GormFolderRepository struct {
	db *gorm.DB
}

func NewGormFolderRepository(db *gorm.DB) *GormFolderRepository {
	return &GormFolderRepository{db: db}
}

func (r *GormFolderRepository) Create(_ context.Context, tx *gorm.DB, folder *models.Folder) error {
	return useTx(r.db, tx).Create(folder).Error
}

func (r *GormFolderRepository) GetByIDAndUser(_ context.Context, tx *gorm.DB, folderID uint, userID uint) (models.Folder, error) {
	var folder models.Folder
	err := useTx(r.db, tx).Where("id = ? AND user_id = ?", folderID, userID).First(&folder).Error
	return folder, err
}

func (r *GormFolderRepository) ListByUser(_ context.Context, tx *gorm.DB, userID uint) ([]models.Folder, error) {
	var folders []models.Folder
	err := useTx(r.db, tx).Where("user_id = ?", userID).Order("id ASC").Find(&folders).Error
	return folders, err
}

func (r *GormFolderRepository) SearchByName(_ context.Context, tx *gorm.DB, userID uint, query string) ([]models.Folder, error) {
	var folders []models.Folder
	err := useTx(r.db, tx).
		Where("user_id = ? AND LOWER(name) LIKE ?", userID, likePattern(query)).
		Order("id ASC").Find(&folders).Error
	return folders, err
}

// likePattern builds a case-insensitive substring pattern, escaping
// LIKE metacharacters in the user's query.
func likePattern(query string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(strings.ToLower(query))
	return "%" + escaped + "%"
}
