package models

import "time"

// Folder is a node in a user's namespace tree. ParentID is nil for
// folders sitting at the root level. Folders are created once and
// never renamed, moved or deleted.
type Folder struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	ParentID  *uint     `gorm:"index" json:"parent_id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
