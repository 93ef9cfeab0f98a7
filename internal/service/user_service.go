package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/vsconnect/vsconnect-backend/internal/domain"
)

// UserInput carries user-submitted data for create and update operations
type UserInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
	Image    *ImageInput
}

// ImageInput is an optional raw image payload attached to a user submission
type ImageInput struct {
	Data     []byte
	Filename string
}

// UserService orchestrates validation, uniqueness checks, image upload,
// password hashing and persistence for user records
type UserService struct {
	userRepo domain.UserRepository
	uploader domain.ImageUploader
	hasher   domain.PasswordHasher
}

// NewUserService creates a new UserService
func NewUserService(userRepo domain.UserRepository, uploader domain.ImageUploader, hasher domain.PasswordHasher) *UserService {
	return &UserService{
		userRepo: userRepo,
		uploader: uploader,
		hasher:   hasher,
	}
}

// List returns all users, unfiltered and unpaginated
func (s *UserService) List() ([]*domain.User, error) {
	return s.userRepo.List()
}

// Get returns the user for the given id
func (s *UserService) Get(id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(id)
}

// Create registers a new user. The email must not already be registered;
// an attached image is uploaded before anything is persisted, and any
// upload failure aborts the whole operation.
func (s *UserService) Create(ctx context.Context, in UserInput) (*domain.User, error) {
	if !in.Role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	if _, err := s.userRepo.GetByEmail(in.Email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	user := &domain.User{
		Name:  in.Name,
		Email: in.Email,
		Role:  in.Role,
	}

	if err := s.applyCredentials(ctx, user, in); err != nil {
		return nil, err
	}

	return s.userRepo.Create(user)
}

// Update overwrites every field of an existing user from the input.
// Image upload and password hashing are re-run unconditionally; this is a
// replace-on-every-update contract, not a patch. Email uniqueness is not
// re-checked against other records.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, in UserInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if !in.Role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	user.Name = in.Name
	user.Email = in.Email
	user.Role = in.Role
	user.ImageURL = nil

	if err := s.applyCredentials(ctx, user, in); err != nil {
		return nil, err
	}

	return s.userRepo.Update(user)
}

// Delete removes the user for the given id permanently
func (s *UserService) Delete(id uuid.UUID) error {
	if _, err := s.userRepo.GetByID(id); err != nil {
		return err
	}
	return s.userRepo.Delete(id)
}

// applyCredentials derives the stored image URL and password hash from the
// input, in that order: a failed upload must leave nothing persisted.
func (s *UserService) applyCredentials(ctx context.Context, user *domain.User, in UserInput) error {
	if in.Image != nil {
		url, err := s.uploader.Upload(ctx, in.Image.Data, in.Image.Filename)
		if err != nil {
			return err
		}
		user.ImageURL = &url
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return err
	}
	user.PasswordHash = hash

	return nil
}
