package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-contacts/internal/validators"
	"github.com/MKhiriev/go-contacts/models"
)

// ContactValidationService checks request payloads before they reach the
// wrapped [ContactService].
type ContactValidationService struct {
	inner     ContactService
	validator validators.Validator
}

func NewContactValidationService() ContactServiceWrapper {
	return &ContactValidationService{
		validator: validators.NewStructValidator(),
	}
}

func (v *ContactValidationService) ListContacts(ctx context.Context, ownerID int64, filter models.ContactFilter) ([]models.Contact, error) {
	return v.inner.ListContacts(ctx, ownerID, filter)
}

func (v *ContactValidationService) GetContact(ctx context.Context, contactID, ownerID int64) (models.Contact, error) {
	return v.inner.GetContact(ctx, contactID, ownerID)
}

func (v *ContactValidationService) CreateContact(ctx context.Context, contact models.ContactCreate, ownerID int64) (models.Contact, error) {
	if err := v.validator.Validate(ctx, contact); err != nil {
		return models.Contact{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.CreateContact(ctx, contact, ownerID)
}

func (v *ContactValidationService) UpdateContact(ctx context.Context, contactID int64, update models.ContactUpdate, ownerID int64) (models.Contact, error) {
	if err := v.validator.Validate(ctx, update); err != nil {
		return models.Contact{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.UpdateContact(ctx, contactID, update, ownerID)
}

func (v *ContactValidationService) DeleteContact(ctx context.Context, contactID, ownerID int64) (models.Contact, error) {
	return v.inner.DeleteContact(ctx, contactID, ownerID)
}

func (v *ContactValidationService) SearchContacts(ctx context.Context, ownerID int64, filter models.ContactFilter) ([]models.Contact, error) {
	return v.inner.SearchContacts(ctx, ownerID, filter)
}

func (v *ContactValidationService) UpcomingBirthdays(ctx context.Context, ownerID int64, days int) ([]models.Contact, error) {
	return v.inner.UpcomingBirthdays(ctx, ownerID, days)
}

func (v *ContactValidationService) Wrap(wrapped ContactService) ContactService {
	v.inner = wrapped
	return v
}
