// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Contact is a personal contact record that belongs to exactly one user.
//
// OwnerID is never serialized: callers learn the owner only from their own
// credentials, and a contact of another owner is indistinguishable from a
// missing one.
type Contact struct {
	// ID is the store-assigned identifier.
	ID int64 `json:"id"`

	// OwnerID references the user who owns the contact.
	OwnerID int64 `json:"-"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	// Email is unique across all contacts of all users.
	Email string `json:"email"`

	Phone    string `json:"phone_number"`
	Birthday *Date  `json:"birthday"`
	Notes    string `json:"notes"`

	// CreatedAt and UpdatedAt are managed by the store.
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// ContactCreate carries the user-supplied fields of a new contact.
type ContactCreate struct {
	FirstName string `json:"first_name" validate:"required,max=50"`
	LastName  string `json:"last_name" validate:"required,max=50"`
	Email     string `json:"email" validate:"required,email,max=320"`
	Phone     string `json:"phone_number" validate:"omitempty,max=20"`
	Birthday  *Date  `json:"birthday"`
	Notes     string `json:"notes" validate:"omitempty,max=255"`
}

// Contact builds the record that will be persisted for ownerID.
func (c ContactCreate) Contact(ownerID int64) Contact {
	return Contact{
		OwnerID:   ownerID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
		Birthday:  c.Birthday,
		Notes:     c.Notes,
	}
}

// ContactUpdate is a partial update of a contact.
//
// A nil field was not supplied (absent or JSON null) and is left untouched.
// A non-nil field overwrites the stored value, even when it points to an
// empty string.
type ContactUpdate struct {
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,min=1,max=50"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,min=1,max=50"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email,max=320"`
	Phone     *string `json:"phone_number,omitempty" validate:"omitempty,max=20"`
	Birthday  *Date   `json:"birthday,omitempty"`
	Notes     *string `json:"notes,omitempty" validate:"omitempty,max=255"`
}

// IsEmpty reports whether no field was supplied.
func (u ContactUpdate) IsEmpty() bool {
	return u.FirstName == nil &&
		u.LastName == nil &&
		u.Email == nil &&
		u.Phone == nil &&
		u.Birthday == nil &&
		u.Notes == nil
}

// Apply returns c with every supplied field of u written over it.
func (u ContactUpdate) Apply(c Contact) Contact {
	if u.FirstName != nil {
		c.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		c.LastName = *u.LastName
	}
	if u.Email != nil {
		c.Email = *u.Email
	}
	if u.Phone != nil {
		c.Phone = *u.Phone
	}
	if u.Birthday != nil {
		b := *u.Birthday
		c.Birthday = &b
	}
	if u.Notes != nil {
		c.Notes = *u.Notes
	}

	return c
}

// ContactFilter narrows a contact listing.
//
// Nil criteria are wildcards; supplied criteria must match exactly
// (case-sensitive) and are combined with AND. Limit 0 means no limit.
type ContactFilter struct {
	FirstName *string
	LastName  *string
	Email     *string

	Offset uint64
	Limit  uint64
}

// HasCriteria reports whether at least one field criterion is set.
func (f ContactFilter) HasCriteria() bool {
	return f.FirstName != nil || f.LastName != nil || f.Email != nil
}

// Matches reports whether c satisfies every supplied criterion of f.
// The owner is not part of the filter and must be checked by the caller.
func (f ContactFilter) Matches(c Contact) bool {
	if f.FirstName != nil && c.FirstName != *f.FirstName {
		return false
	}
	if f.LastName != nil && c.LastName != *f.LastName {
		return false
	}
	if f.Email != nil && c.Email != *f.Email {
		return false
	}

	return true
}
