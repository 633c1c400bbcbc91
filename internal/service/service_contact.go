// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-contacts/internal/birthday"
	"github.com/MKhiriev/go-contacts/internal/logger"
	"github.com/MKhiriev/go-contacts/internal/metrics"
	"github.com/MKhiriev/go-contacts/internal/store"
	"github.com/MKhiriev/go-contacts/models"
)

type contactService struct {
	contacts store.ContactRepository
	now      func() time.Time
	logger   *logger.Logger
}

// NewContactService returns a [ContactService] over repo.
func NewContactService(repo store.ContactRepository, logger *logger.Logger) ContactService {
	return &contactService{
		contacts: repo,
		now:      time.Now,
		logger:   logger,
	}
}

func (s *contactService) ListContacts(ctx context.Context, ownerID int64, filter models.ContactFilter) ([]models.Contact, error) {
	contacts, err := s.contacts.ListContacts(ctx, ownerID, filter)
	metrics.ObserveStoreOperation("list", err)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}

	return contacts, nil
}

func (s *contactService) GetContact(ctx context.Context, contactID, ownerID int64) (models.Contact, error) {
	contact, err := s.contacts.GetContact(ctx, contactID, ownerID)
	metrics.ObserveStoreOperation("get", err)
	if err != nil {
		return models.Contact{}, fmt.Errorf("get contact: %w", err)
	}

	return contact, nil
}

func (s *contactService) CreateContact(ctx context.Context, create models.ContactCreate, ownerID int64) (models.Contact, error) {
	contact, err := s.contacts.CreateContact(ctx, create, ownerID)
	metrics.ObserveStoreOperation("create", err)
	if err != nil {
		return models.Contact{}, fmt.Errorf("create contact: %w", err)
	}

	logger.FromContext(ctx).Info().
		Int64("owner_id", ownerID).
		Int64("contact_id", contact.ID).
		Msg("contact created")

	return contact, nil
}

func (s *contactService) UpdateContact(ctx context.Context, contactID int64, update models.ContactUpdate, ownerID int64) (models.Contact, error) {
	contact, err := s.contacts.UpdateContact(ctx, contactID, update, ownerID)
	metrics.ObserveStoreOperation("update", err)
	if err != nil {
		return models.Contact{}, fmt.Errorf("update contact: %w", err)
	}

	return contact, nil
}

func (s *contactService) DeleteContact(ctx context.Context, contactID, ownerID int64) (models.Contact, error) {
	contact, err := s.contacts.DeleteContact(ctx, contactID, ownerID)
	metrics.ObserveStoreOperation("delete", err)
	if err != nil {
		return models.Contact{}, fmt.Errorf("delete contact: %w", err)
	}

	logger.FromContext(ctx).Info().
		Int64("owner_id", ownerID).
		Int64("contact_id", contactID).
		Msg("contact deleted")

	return contact, nil
}

func (s *contactService) SearchContacts(ctx context.Context, ownerID int64, filter models.ContactFilter) ([]models.Contact, error) {
	contacts, err := s.contacts.SearchContacts(ctx, ownerID, filter)
	metrics.ObserveStoreOperation("search", err)
	if err != nil {
		return nil, fmt.Errorf("search contacts: %w", err)
	}

	return contacts, nil
}

// UpcomingBirthdays builds the window [today, today+days] in the server's
// local calendar and asks the store for matching contacts.
func (s *contactService) UpcomingBirthdays(ctx context.Context, ownerID int64, days int) ([]models.Contact, error) {
	if days < 0 || days > birthday.MaxDays {
		return nil, ErrInvalidDays
	}

	w := birthday.NewWindow(s.now(), days)
	contacts, err := s.contacts.SearchBirthdays(ctx, ownerID, w)
	metrics.ObserveStoreOperation("birthdays", err)
	if err != nil {
		return nil, fmt.Errorf("search birthdays: %w", err)
	}

	logger.FromContext(ctx).Debug().
		Int64("owner_id", ownerID).
		Str("from", w.From.String()).
		Str("to", w.To.String()).
		Int("found", len(contacts)).
		Msg("birthday window searched")

	return contacts, nil
}
