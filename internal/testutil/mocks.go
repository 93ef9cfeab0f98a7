package testutil

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/vsconnect/vsconnect-backend/internal/domain"
)

// MockUserRepository is an in-memory implementation of domain.UserRepository
type MockUserRepository struct {
	ByID    map[uuid.UUID]*domain.User
	ByEmail map[string]*domain.User
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		ByID:    make(map[uuid.UUID]*domain.User),
		ByEmail: make(map[string]*domain.User),
	}
}

// List returns all users ordered by creation time
func (m *MockUserRepository) List() ([]*domain.User, error) {
	users := make([]*domain.User, 0, len(m.ByID))
	for _, user := range m.ByID {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

// GetByID retrieves a user by ID
func (m *MockUserRepository) GetByID(id uuid.UUID) (*domain.User, error) {
	if user, ok := m.ByID[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// GetByEmail retrieves a user by exact email
func (m *MockUserRepository) GetByEmail(email string) (*domain.User, error) {
	if user, ok := m.ByEmail[email]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// Create stores a new user, assigning an id and timestamps
func (m *MockUserRepository) Create(user *domain.User) (*domain.User, error) {
	stored := *user
	stored.ID = uuid.New()
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	m.ByID[stored.ID] = &stored
	m.ByEmail[stored.Email] = &stored
	return &stored, nil
}

// Update overwrites an existing user
func (m *MockUserRepository) Update(user *domain.User) (*domain.User, error) {
	existing, ok := m.ByID[user.ID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	delete(m.ByEmail, existing.Email)
	stored := *user
	stored.CreatedAt = existing.CreatedAt
	stored.UpdatedAt = time.Now()
	m.ByID[stored.ID] = &stored
	m.ByEmail[stored.Email] = &stored
	return &stored, nil
}

// Delete removes a user
func (m *MockUserRepository) Delete(id uuid.UUID) error {
	user, ok := m.ByID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	delete(m.ByEmail, user.Email)
	delete(m.ByID, id)
	return nil
}

// AddUser adds a user to the mock repository (helper for tests)
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.ByID[user.ID] = user
	m.ByEmail[user.Email] = user
}

// Count returns the number of stored users (helper for tests)
func (m *MockUserRepository) Count() int {
	return len(m.ByID)
}

// MockHasher is a deterministic domain.PasswordHasher for tests
type MockHasher struct {
	// Calls counts how many times Hash was invoked
	Calls int
}

// Hash returns a recognizable non-plaintext credential
func (m *MockHasher) Hash(plaintext string) (string, error) {
	m.Calls++
	return fmt.Sprintf("hashed(%s)#%d", plaintext, m.Calls), nil
}

// MockUploader is a fake domain.ImageUploader
type MockUploader struct {
	// Err, when set, is returned by every Upload call
	Err error
	// Calls counts how many times Upload was invoked
	Calls int
}

// Upload returns a unique fake URL per call, or the configured error
func (m *MockUploader) Upload(ctx context.Context, data []byte, filename string) (string, error) {
	m.Calls++
	if m.Err != nil {
		return "", m.Err
	}
	return fmt.Sprintf("https://images.test/%s-%d", filename, m.Calls), nil
}
