package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/MKhiriev/go-contacts/internal/birthday"
	"github.com/MKhiriev/go-contacts/models"
)

// memoryContactRepository is an in-process [ContactRepository]. It follows
// the same ownership and uniqueness rules as the PostgreSQL one and is
// selected with the "memory" DSN.
type memoryContactRepository struct {
	mu       sync.RWMutex
	nextID   int64
	contacts map[int64]models.Contact
	now      func() time.Time
}

// NewMemoryContactRepository returns an empty in-memory [ContactRepository].
func NewMemoryContactRepository() ContactRepository {
	return &memoryContactRepository{
		contacts: make(map[int64]models.Contact),
		now:      time.Now,
	}
}

// owned returns the owner's contacts ordered by id. Callers hold mu.
func (m *memoryContactRepository) owned(ownerID int64) []models.Contact {
	result := make([]models.Contact, 0, len(m.contacts))
	for _, c := range m.contacts {
		if c.OwnerID == ownerID {
			result = append(result, c)
		}
	}
	slices.SortFunc(result, func(a, b models.Contact) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})

	return result
}

func page(contacts []models.Contact, filter models.ContactFilter) []models.Contact {
	if filter.Offset >= uint64(len(contacts)) {
		return make([]models.Contact, 0)
	}
	contacts = contacts[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < uint64(len(contacts)) {
		contacts = contacts[:filter.Limit]
	}

	return contacts
}

// emailTaken reports whether any contact other than excludeID uses email.
// Callers hold mu.
func (m *memoryContactRepository) emailTaken(email string, excludeID int64) bool {
	for id, c := range m.contacts {
		if id != excludeID && c.Email == email {
			return true
		}
	}

	return false
}

func (m *memoryContactRepository) ListContacts(_ context.Context, ownerID int64, filter models.ContactFilter) ([]models.Contact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return page(m.owned(ownerID), filter), nil
}

func (m *memoryContactRepository) GetContact(_ context.Context, contactID, ownerID int64) (models.Contact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.contacts[contactID]
	if !ok || c.OwnerID != ownerID {
		return models.Contact{}, ErrContactNotFound
	}

	return c, nil
}

func (m *memoryContactRepository) CreateContact(_ context.Context, create models.ContactCreate, ownerID int64) (models.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.emailTaken(create.Email, 0) {
		return models.Contact{}, ErrDuplicateEmail
	}

	m.nextID++
	c := create.Contact(ownerID)
	if c.Birthday != nil {
		b := *c.Birthday
		c.Birthday = &b
	}
	c.ID = m.nextID
	c.CreatedAt = m.now()
	c.UpdatedAt = c.CreatedAt
	m.contacts[c.ID] = c

	return c, nil
}

func (m *memoryContactRepository) UpdateContact(_ context.Context, contactID int64, update models.ContactUpdate, ownerID int64) (models.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.contacts[contactID]
	if !ok || c.OwnerID != ownerID {
		return models.Contact{}, ErrContactNotFound
	}
	if update.IsEmpty() {
		return c, nil
	}
	if update.Email != nil && m.emailTaken(*update.Email, contactID) {
		return models.Contact{}, ErrDuplicateEmail
	}

	c = update.Apply(c)
	c.UpdatedAt = m.now()
	m.contacts[contactID] = c

	return c, nil
}

func (m *memoryContactRepository) DeleteContact(_ context.Context, contactID, ownerID int64) (models.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.contacts[contactID]
	if !ok || c.OwnerID != ownerID {
		return models.Contact{}, ErrContactNotFound
	}
	delete(m.contacts, contactID)

	return c, nil
}

func (m *memoryContactRepository) SearchContacts(_ context.Context, ownerID int64, filter models.ContactFilter) ([]models.Contact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	matched := make([]models.Contact, 0)
	for _, c := range m.owned(ownerID) {
		if filter.Matches(c) {
			matched = append(matched, c)
		}
	}

	return page(matched, filter), nil
}

func (m *memoryContactRepository) SearchBirthdays(_ context.Context, ownerID int64, w birthday.Window) ([]models.Contact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return birthday.Filter(m.owned(ownerID), w), nil
}
