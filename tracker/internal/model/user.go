package model

import (
	"time"

	"github.com/Astemirdum/book-tracker/pkg/auth"
)

type User struct {
	ID           string    `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         auth.Role `json:"role" db:"role"`
	ProfileImage *string   `json:"profileImage,omitempty" db:"profile_image"`
	IsActive     bool      `json:"isActive" db:"is_active"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

func (u User) Principal() auth.Principal {
	return auth.Principal{UserID: u.ID, Username: u.Username, Role: u.Role}
}

// UserRequest bounds are request-shape limits; content rules live in the user validator.
// Password is capped at 72 bytes, the bcrypt input limit.
type UserRequest struct {
	Username string `json:"username" validate:"max=64"`
	Email    string `json:"email" validate:"max=254"`
	Password string `json:"password" validate:"max=72"`
}

type UserResponse struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Role         auth.Role `json:"role"`
	ProfileImage *string   `json:"profileImage,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (u User) Response() UserResponse {
	return UserResponse{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		Role:         u.Role,
		ProfileImage: u.ProfileImage,
		CreatedAt:    u.CreatedAt,
	}
}

type AuthRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type AuthResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
	TokenType    string `json:"tokenType"`
	ExpiresIn    int64  `json:"expiresIn"`
}

type RefreshToken struct {
	ID        int64     `db:"id"`
	UserID    string    `db:"user_id"`
	TokenHash string    `db:"token_hash"`
	IssuedAt  time.Time `db:"issued_at"`
	ExpiresAt time.Time `db:"expires_at"`
	Revoked   bool      `db:"revoked"`
}
