package store

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-contacts/models"
)

// memoryUserRepository is an in-process [UserRepository] paired with
// [NewMemoryContactRepository].
type memoryUserRepository struct {
	mu     sync.RWMutex
	nextID int64
	users  map[int64]models.User
}

// NewMemoryUserRepository returns an empty in-memory [UserRepository].
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{
		users: make(map[int64]models.User),
	}
}

// byEmail returns the account registered with email. Callers hold mu.
func (m *memoryUserRepository) byEmail(email string) (models.User, bool) {
	for _, u := range m.users {
		if u.Email == email {
			return u, true
		}
	}

	return models.User{}, false
}

func (m *memoryUserRepository) CreateUser(_ context.Context, user models.User) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == user.Email || u.Username == user.Username {
			return models.User{}, ErrUserAlreadyExists
		}
	}

	m.nextID++
	user.ID = m.nextID
	user.CreatedAt = time.Now()
	m.users[user.ID] = user

	return user, nil
}

func (m *memoryUserRepository) FindUserByEmail(_ context.Context, email string) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.byEmail(email)
	if !ok {
		return models.User{}, ErrNoUserWasFound
	}

	return u, nil
}

func (m *memoryUserRepository) FindUserByID(_ context.Context, userID int64) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[userID]
	if !ok {
		return models.User{}, ErrNoUserWasFound
	}

	return u, nil
}

func (m *memoryUserRepository) UpdateRefreshToken(_ context.Context, userID int64, token *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[userID]
	if !ok {
		return ErrNoUserWasFound
	}
	if token != nil {
		t := *token
		token = &t
	}
	u.RefreshToken = token
	m.users[userID] = u

	return nil
}

func (m *memoryUserRepository) ConfirmEmail(_ context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.byEmail(email)
	if !ok {
		return ErrNoUserWasFound
	}
	u.Confirmed = true
	m.users[u.ID] = u

	return nil
}

func (m *memoryUserRepository) UpdateAvatar(_ context.Context, email, url string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.byEmail(email)
	if !ok {
		return models.User{}, ErrNoUserWasFound
	}
	u.Avatar = url
	m.users[u.ID] = u

	return u, nil
}
