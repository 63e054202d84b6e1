package repositories

import (
	"context"

	"drivebox/models"

	"gorm.io/gorm"
)

type GormFileRepository struct {
	db *gorm.DB
}

func NewGormFileRepository(db *gorm.DB) *GormFileRepository {
	return &GormFileRepository{db: db}
}

func (r *GormFileRepository) Create(_ context.Context, tx *gorm.DB, file *models.File) error {
	return useTx(r.db, tx).Create(file).Error
}

func (r *GormFileRepository) GetByIDAndUser(_ context.Context, tx *gorm.DB, fileID uint, userID uint) (models.File, error) {
	var file models.File
	err := useTx(r.db, tx).Where("id = ? AND user_id = ?", fileID, userID).First(&file).Error
	return file, err
}

func (r *GormFileRepository) GetByContentRef(_ context.Context, tx *gorm.DB, contentRef string) (models.File, error) {
	var file models.File
	err := useTx(r.db, tx).Where("content_ref = ?", contentRef).First(&file).Error
	return file, err
}

func (r *GormFileRepository) ListByUser(_ context.Context, tx *gorm.DB, userID uint) ([]models.File, error) {
	var files []models.File
	err := useTx(r.db, tx).Where("user_id = ?", userID).Order("id ASC").Find(&files).Error
	return files, err
}

func (r *GormFileRepository) ListByFolder(_ context.Context, tx *gorm.DB, userID uint, folderID uint) ([]models.File, error) {
	var files []models.File
	err := useTx(r.db, tx).Where("user_id = ? AND folder_id = ?", userID, folderID).Order("id ASC").Find(&files).Error
	return files, err
}

func (r *GormFileRepository) SearchByName(_ context.Context, tx *gorm.DB, userID uint, query string) ([]models.File, error) {
	var files []models.File
	err := useTx(r.db, tx).
		Where("user_id = ? AND LOWER(name) LIKE ?", userID, likePattern(query)).
		Order("id ASC").Find(&files).Error
	return files, err
}
