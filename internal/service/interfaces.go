package service

import (
	"context"
	"io"

	"github.com/MKhiriev/go-contacts/models"
)

// ContactService is the contact use-case layer. ownerID always comes from
// the caller's verified credentials.
type ContactService interface {
	ListContacts(ctx context.Context, ownerID int64, filter models.ContactFilter) ([]models.Contact, error)
	GetContact(ctx context.Context, contactID, ownerID int64) (models.Contact, error)
	CreateContact(ctx context.Context, contact models.ContactCreate, ownerID int64) (models.Contact, error)
	UpdateContact(ctx context.Context, contactID int64, update models.ContactUpdate, ownerID int64) (models.Contact, error)
	DeleteContact(ctx context.Context, contactID, ownerID int64) (models.Contact, error)
	SearchContacts(ctx context.Context, ownerID int64, filter models.ContactFilter) ([]models.Contact, error)

	// UpcomingBirthdays returns the owner's contacts whose birthday falls
	// within the next days calendar days, today included.
	UpcomingBirthdays(ctx context.Context, ownerID int64, days int) ([]models.Contact, error)
}

// ContactServiceWrapper defines middleware composition for ContactService.
// Implementations wrap an existing ContactService to add behavior such as
// validating.
type ContactServiceWrapper interface {
	Wrap(ContactService) ContactService // returns a decorated ContactService applying additional behavior
}

type AuthService interface {
	Signup(ctx context.Context, signup models.UserSignup) (models.User, error)
	Login(ctx context.Context, login models.UserLogin) (models.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error)

	// ConfirmEmail reports whether the address was already confirmed.
	ConfirmEmail(ctx context.Context, emailToken string) (alreadyConfirmed bool, err error)

	// RequestEmail resends the confirmation e-mail. Unknown addresses are
	// not reported.
	RequestEmail(ctx context.Context, email string) (alreadyConfirmed bool, err error)

	// CurrentUser resolves the owner of a valid access token.
	CurrentUser(ctx context.Context, accessToken string) (models.User, error)
}

type UserService interface {
	UpdateAvatar(ctx context.Context, user models.User, file io.Reader, size int64, contentType string) (models.User, error)
}

// AppInfoService reports what build is running.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.BuildInfoResponse
}
