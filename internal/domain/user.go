package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User represents a user in the system
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	ImageURL     *string   `json:"imageUrl"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserRepository defines the interface for user persistence operations
type UserRepository interface {
	List() ([]*User, error)
	GetByID(id uuid.UUID) (*User, error)
	GetByEmail(email string) (*User, error)
	Create(user *User) (*User, error)
	Update(user *User) (*User, error)
	Delete(id uuid.UUID) error
}

// PasswordHasher produces an irreversible credential string from a plaintext password
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
}

// ImageUploader stores raw image bytes and returns a stable URL for them
type ImageUploader interface {
	Upload(ctx context.Context, data []byte, filename string) (string, error)
}
