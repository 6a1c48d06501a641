package models

import "time"

// Story is an ephemeral post. ExpiresAt is fixed at creation time
// (CreatedAt + 24h) and never renewed; expiry is enforced as a read-time
// filter, expired rows stay in the table.
type Story struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index"`
	User      User      `json:"user" gorm:"foreignKey:UserID"`
	ImageURL  string    `json:"image_url"`
	Caption   string    `json:"caption"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	ExpiresAt time.Time `json:"expires_at" gorm:"index"`
}

// StoryGroup is one author's active stories in the stories bar. Groups are
// ordered by the author's most recent story; a user with no active story
// produces no group.
type StoryGroup struct {
	UserID    uint    `json:"user_id"`
	Username  string  `json:"username"`
	UserImage string  `json:"user_image"`
	Stories   []Story `json:"stories"`
}
