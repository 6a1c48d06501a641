package models

import "time"

// Post represents a published photo with an optional caption. The engagement
// associations carry OnDelete:CASCADE so removing a post removes its likes,
// comments and saved-post rows with it.
type Post struct {
	ID        uint        `json:"id" gorm:"primaryKey"`
	UserID    uint        `json:"user_id" gorm:"index"`
	User      User        `json:"user" gorm:"foreignKey:UserID"`
	ImageURL  string      `json:"image_url"`
	Caption   string      `json:"caption"`
	Likes     []Like      `json:"likes" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Comments  []Comment   `json:"comments" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	SavedBy   []SavedPost `json:"saved_by" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time   `json:"created_at" gorm:"index"`
	UpdatedAt time.Time   `json:"updated_at"`
}
