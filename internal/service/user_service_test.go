package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vsconnect/vsconnect-backend/internal/domain"
	"github.com/vsconnect/vsconnect-backend/internal/testutil"
)

func newUserService() (*UserService, *testutil.MockUserRepository, *testutil.MockUploader, *testutil.MockHasher) {
	userRepo := testutil.NewMockUserRepository()
	uploader := &testutil.MockUploader{}
	hasher := &testutil.MockHasher{}
	return NewUserService(userRepo, uploader, hasher), userRepo, uploader, hasher
}

func TestUserService_Create_Success(t *testing.T) {
	svc, userRepo, _, _ := newUserService()

	user, err := svc.Create(context.Background(), UserInput{
		Name:     "Ana",
		Email:    "ana@x.com",
		Password: "secret",
		Role:     domain.RoleClient,
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "Ana", user.Name)
	assert.Equal(t, "ana@x.com", user.Email)
	assert.Equal(t, "cliente", user.Role.Label())
	assert.NotEqual(t, "secret", user.PasswordHash)
	assert.Nil(t, user.ImageURL)

	stored, err := userRepo.GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, stored.Email)
}

func TestUserService_Create_DuplicateEmail(t *testing.T) {
	svc, userRepo, _, _ := newUserService()

	_, err := svc.Create(context.Background(), UserInput{
		Name:     "Ana",
		Email:    "ana@x.com",
		Password: "secret",
		Role:     domain.RoleClient,
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), UserInput{
		Name:     "Other Ana",
		Email:    "ana@x.com",
		Password: "different",
		Role:     domain.RoleAdmin,
	})

	assert.ErrorIs(t, err, domain.ErrEmailTaken)
	assert.Equal(t, 1, userRepo.Count())
}

func TestUserService_Create_WithImage(t *testing.T) {
	svc, _, uploader, _ := newUserService()

	user, err := svc.Create(context.Background(), UserInput{
		Name:     "Bruno",
		Email:    "bruno@x.com",
		Password: "secret",
		Role:     domain.RoleDeveloper,
		Image:    &ImageInput{Data: []byte("img-bytes"), Filename: "avatar.png"},
	})

	require.NoError(t, err)
	require.NotNil(t, user.ImageURL)
	assert.Contains(t, *user.ImageURL, "avatar.png")
	assert.Equal(t, 1, uploader.Calls)
}

func TestUserService_Create_UploadFailureAborts(t *testing.T) {
	svc, userRepo, uploader, _ := newUserService()
	uploader.Err = domain.ErrUploadFailed

	_, err := svc.Create(context.Background(), UserInput{
		Name:     "Bruno",
		Email:    "bruno@x.com",
		Password: "secret",
		Role:     domain.RoleDeveloper,
		Image:    &ImageInput{Data: []byte("img-bytes"), Filename: "avatar.png"},
	})

	assert.ErrorIs(t, err, domain.ErrUploadFailed)
	assert.Equal(t, 0, userRepo.Count())
}

func TestUserService_Create_InvalidRole(t *testing.T) {
	svc, userRepo, _, _ := newUserService()

	_, err := svc.Create(context.Background(), UserInput{
		Name:     "Ana",
		Email:    "ana@x.com",
		Password: "secret",
		Role:     domain.Role("MANAGER"),
	})

	assert.ErrorIs(t, err, domain.ErrInvalidRole)
	assert.Equal(t, 0, userRepo.Count())
}

func TestUserService_Get_NotFound(t *testing.T) {
	svc, _, _, _ := newUserService()

	_, err := svc.Get(uuid.New())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserService_List(t *testing.T) {
	svc, _, _, _ := newUserService()

	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		_, err := svc.Create(context.Background(), UserInput{
			Name:     "User",
			Email:    email,
			Password: "secret",
			Role:     domain.RoleClient,
		})
		require.NoError(t, err)
	}

	users, err := svc.List()
	require.NoError(t, err)
	assert.Len(t, users, 3)
}

func TestUserService_Update_OverwritesAllFields(t *testing.T) {
	svc, _, _, _ := newUserService()

	created, err := svc.Create(context.Background(), UserInput{
		Name:     "Ana",
		Email:    "ana@x.com",
		Password: "secret",
		Role:     domain.RoleClient,
		Image:    &ImageInput{Data: []byte("img"), Filename: "a.png"},
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, UserInput{
		Name:     "Ana Maria",
		Email:    "ana.maria@x.com",
		Password: "newsecret",
		Role:     domain.RoleAdmin,
	})

	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Ana Maria", updated.Name)
	assert.Equal(t, "ana.maria@x.com", updated.Email)
	assert.Equal(t, domain.RoleAdmin, updated.Role)
	// No image in the update input, so the stored URL is cleared
	assert.Nil(t, updated.ImageURL)
	assert.NotEqual(t, created.PasswordHash, updated.PasswordHash)
}

func TestUserService_Update_RederivesOnIdenticalInput(t *testing.T) {
	svc, _, uploader, hasher := newUserService()

	input := UserInput{
		Name:     "Ana",
		Email:    "ana@x.com",
		Password: "secret",
		Role:     domain.RoleClient,
		Image:    &ImageInput{Data: []byte("img"), Filename: "a.png"},
	}

	created, err := svc.Create(context.Background(), input)
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, input)
	require.NoError(t, err)

	// Same submitted data, but hash and URL are freshly derived
	assert.Equal(t, created.Name, updated.Name)
	assert.Equal(t, created.Email, updated.Email)
	assert.NotEqual(t, created.PasswordHash, updated.PasswordHash)
	assert.NotEqual(t, *created.ImageURL, *updated.ImageURL)
	assert.Equal(t, 2, uploader.Calls)
	assert.Equal(t, 2, hasher.Calls)
}

func TestUserService_Update_NotFound(t *testing.T) {
	svc, userRepo, _, _ := newUserService()

	_, err := svc.Update(context.Background(), uuid.New(), UserInput{
		Name:     "Ana",
		Email:    "ana@x.com",
		Password: "secret",
		Role:     domain.RoleClient,
	})

	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.Equal(t, 0, userRepo.Count())
}

func TestUserService_Update_DoesNotRecheckEmailUniqueness(t *testing.T) {
	svc, _, _, _ := newUserService()

	first, err := svc.Create(context.Background(), UserInput{
		Name: "Ana", Email: "ana@x.com", Password: "secret", Role: domain.RoleClient,
	})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), UserInput{
		Name: "Bia", Email: "bia@x.com", Password: "secret", Role: domain.RoleClient,
	})
	require.NoError(t, err)

	// Known gap carried from the observed contract: an update may introduce
	// a duplicate email undetected.
	updated, err := svc.Update(context.Background(), first.ID, UserInput{
		Name: "Ana", Email: "bia@x.com", Password: "secret", Role: domain.RoleClient,
	})
	require.NoError(t, err)
	assert.Equal(t, "bia@x.com", updated.Email)
}

func TestUserService_Delete(t *testing.T) {
	svc, _, _, _ := newUserService()

	created, err := svc.Create(context.Background(), UserInput{
		Name: "Ana", Email: "ana@x.com", Password: "secret", Role: domain.RoleClient,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(created.ID))

	_, err = svc.Get(created.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserService_Delete_NotFound(t *testing.T) {
	svc, _, _, _ := newUserService()

	err := svc.Delete(uuid.New())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserService_Create_RepositoryError(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	svc := NewUserService(&failingRepo{MockUserRepository: userRepo}, &testutil.MockUploader{}, &testutil.MockHasher{})

	_, err := svc.Create(context.Background(), UserInput{
		Name: "Ana", Email: "ana@x.com", Password: "secret", Role: domain.RoleClient,
	})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrEmailTaken)
}

// failingRepo surfaces a non-not-found error from the uniqueness lookup
type failingRepo struct {
	*testutil.MockUserRepository
}

func (f *failingRepo) GetByEmail(email string) (*domain.User, error) {
	return nil, errors.New("connection refused")
}
