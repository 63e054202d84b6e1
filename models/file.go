package models

import "time"

// File is the metadata record for one uploaded object. The bytes live
// in the blob store under ContentRef; FolderID 0 means the file sits
// at the root level. Records are created once and never mutated.
type File struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	ContentRef   string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"content_ref"`
	ThumbnailRef string    `gorm:"type:varchar(64)" json:"thumbnail_ref,omitempty"`
	MimeType     string    `gorm:"type:varchar(100)" json:"mime_type"`
	Size         int64     `gorm:"not null" json:"size"`
	FolderID     uint      `gorm:"default:0;index" json:"folder_id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
