package models

import "time"

// SavedPost represents a bookmarked post. Mirrors Like's row-existence
// toggle structure.
type SavedPost struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"index;uniqueIndex:idx_post_user_save"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_post_user_save"`
	CreatedAt time.Time `json:"created_at"`
}
