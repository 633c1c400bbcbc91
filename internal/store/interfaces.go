package store

import (
	"context"
	"io"

	"github.com/MKhiriev/go-contacts/internal/birthday"
	"github.com/MKhiriev/go-contacts/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// ContactRepository persists contacts. Every method is scoped to ownerID:
// a contact owned by someone else behaves exactly like a missing one.
type ContactRepository interface {
	// ListContacts returns the owner's contacts, paged by filter's Offset
	// and Limit. The result is never nil.
	ListContacts(ctx context.Context, ownerID int64, filter models.ContactFilter) ([]models.Contact, error)

	// GetContact returns [ErrContactNotFound] when the id is unknown or
	// owned by another user.
	GetContact(ctx context.Context, contactID, ownerID int64) (models.Contact, error)

	// CreateContact returns [ErrDuplicateEmail] when the e-mail address is
	// already used by any contact.
	CreateContact(ctx context.Context, contact models.ContactCreate, ownerID int64) (models.Contact, error)

	// UpdateContact overwrites only the supplied fields.
	UpdateContact(ctx context.Context, contactID int64, update models.ContactUpdate, ownerID int64) (models.Contact, error)

	// DeleteContact returns the contact as it was before deletion.
	DeleteContact(ctx context.Context, contactID, ownerID int64) (models.Contact, error)

	// SearchContacts returns the owner's contacts matching every non-nil
	// criterion of filter exactly.
	SearchContacts(ctx context.Context, ownerID int64, filter models.ContactFilter) ([]models.Contact, error)

	// SearchBirthdays returns the owner's contacts whose birthday falls in w.
	SearchBirthdays(ctx context.Context, ownerID int64, w birthday.Window) ([]models.Contact, error)
}

// UserRepository persists user accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
	UpdateRefreshToken(ctx context.Context, userID int64, token *string) error
	ConfirmEmail(ctx context.Context, email string) error
	UpdateAvatar(ctx context.Context, email, url string) (models.User, error)
}

// UserCache keeps recently authenticated users close to the auth middleware.
type UserCache interface {
	Get(ctx context.Context, email string) (models.User, error)
	Set(ctx context.Context, user models.User) error
	Delete(ctx context.Context, email string) error
}

// AvatarStorage uploads avatar images and returns their public URL.
type AvatarStorage interface {
	UploadAvatar(ctx context.Context, username string, body io.Reader, size int64, contentType string) (string, error)
}

// Pinger reports database liveness.
type Pinger interface {
	PingContext(ctx context.Context) error
}
