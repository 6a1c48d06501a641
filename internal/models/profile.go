package models

import "time"

// Profile is the 1:1 extension of a User. It is created lazily on first
// profile view, so a missing row is never an error.
type Profile struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex"`
	User      User      `json:"user" gorm:"foreignKey:UserID"`
	Bio       string    `json:"bio"`
	Location  string    `json:"location"`
	Interests []string  `json:"interests" gorm:"serializer:json"`
	AvatarURL string    `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateProfileRequest defines the request body for editing the own profile.
// All fields are optional; empty values leave the stored value untouched.
type UpdateProfileRequest struct {
	Name     string `json:"name,omitempty" validate:"omitempty,min=2,max=50"`
	Bio      string `json:"bio,omitempty" validate:"omitempty,max=500"`
	Location string `json:"location,omitempty" validate:"omitempty,max=100"`
}
