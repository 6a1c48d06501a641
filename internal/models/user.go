package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User represents an account. Rows are created on first Firebase sign-in
// (or local signup) and referenced by every other entity.
type User struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name"`
	Email       string    `json:"email" gorm:"uniqueIndex"`
	AvatarURL   string    `json:"avatar_url"`
	Password    string    `json:"-"` // bcrypt hash for local accounts, empty for Firebase-only users
	// default:null keeps local accounts out of the unique index; only
	// Firebase sign-ins write the column.
	FirebaseUID string    `json:"firebase_uid,omitempty" gorm:"uniqueIndex;default:null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateLocalUserRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// FirebaseLoginRequest carries the Firebase ID token exchanged for a local JWT.
type FirebaseLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
