package repositories

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type GormRepositories struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewGormRepositories(db *gorm.DB, redisClient *redis.Client) *GormRepositories {
	return &GormRepositories{db: db, redis: redisClient}
}

func (r *GormRepositories) BuildContainer() Container {
	return Container{
		Users:       NewGormUserRepository(r.db),
		Folders:     NewGormFolderRepository(r.db),
		Files:       NewGormFileRepository(r.db),
		SearchCache: NewRedisSearchCache(r.redis),
	}
}

func useTx(db *gorm.DB, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return db
}
