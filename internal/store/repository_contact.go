// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-contacts/internal/birthday"
	"github.com/MKhiriev/go-contacts/internal/logger"
	"github.com/MKhiriev/go-contacts/models"
)

// contactRepository is the PostgreSQL-backed implementation of
// [ContactRepository] over the "contacts" table.
//
// Every statement carries an owner_id predicate, so rows of other users are
// never read, changed or removed.
type contactRepository struct {
	*DB
	logger *logger.Logger
}

// NewContactRepository constructs a [ContactRepository] backed by db.
func NewContactRepository(db *DB, logger *logger.Logger) ContactRepository {
	logger.Debug().Msg("creating contact repository")
	return &contactRepository{
		DB:     db,
		logger: logger,
	}
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContact(row rowScanner) (models.Contact, error) {
	var c models.Contact
	err := row.Scan(
		&c.ID,
		&c.OwnerID,
		&c.FirstName,
		&c.LastName,
		&c.Email,
		&c.Phone,
		&c.Birthday,
		&c.Notes,
		&c.CreatedAt,
		&c.UpdatedAt,
	)

	return c, err
}

func (r *contactRepository) ListContacts(ctx context.Context, ownerID int64, filter models.ContactFilter) ([]models.Contact, error) {
	query, args, err := buildListContactsQuery(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}

	return r.queryContacts(ctx, "contactRepository.ListContacts", ownerID, query, args)
}

func (r *contactRepository) SearchContacts(ctx context.Context, ownerID int64, filter models.ContactFilter) ([]models.Contact, error) {
	query, args, err := buildSearchContactsQuery(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}

	return r.queryContacts(ctx, "contactRepository.SearchContacts", ownerID, query, args)
}

func (r *contactRepository) SearchBirthdays(ctx context.Context, ownerID int64, w birthday.Window) ([]models.Contact, error) {
	query, args, err := buildBirthdayQuery(ctx, ownerID, w)
	if err != nil {
		return nil, err
	}

	return r.queryContacts(ctx, "contactRepository.SearchBirthdays", ownerID, query, args)
}

// queryContacts runs a multi-row contact SELECT. It returns an empty,
// non-nil slice when nothing matches.
func (r *contactRepository) queryContacts(ctx context.Context, funcName string, ownerID int64, query string, args []any) ([]models.Contact, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", funcName).
			Int64("owner_id", ownerID).
			Msg("failed to execute contacts query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	contacts := make([]models.Contact, 0, 50)
	for rows.Next() {
		c, scanErr := scanContact(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", funcName).
				Int64("owner_id", ownerID).
				Msg("failed to scan contact row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		contacts = append(contacts, c)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", funcName).
			Int64("owner_id", ownerID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return contacts, nil
}

func (r *contactRepository) GetContact(ctx context.Context, contactID, ownerID int64) (models.Contact, error) {
	query, args, err := buildGetContactQuery(ctx, contactID, ownerID)
	if err != nil {
		return models.Contact{}, err
	}

	return r.queryContact(ctx, r.DB, "contactRepository.GetContact", contactID, ownerID, query, args)
}

// CreateContact checks e-mail uniqueness and inserts the row in one
// transaction. A unique violation raised by a concurrent insert that slipped
// past the check is reported as [ErrDuplicateEmail] as well.
func (r *contactRepository) CreateContact(ctx context.Context, create models.ContactCreate, ownerID int64) (models.Contact, error) {
	query, args, err := buildInsertContactQuery(ctx, create.Contact(ownerID))
	if err != nil {
		return models.Contact{}, err
	}

	var created models.Contact
	err = r.withTx(ctx, func(tx *sql.Tx) error {
		if err := r.ensureEmailIsFree(ctx, tx, create.Email, 0); err != nil {
			return err
		}

		var qErr error
		created, qErr = r.queryContact(ctx, tx, "contactRepository.CreateContact", 0, ownerID, query, args)
		return qErr
	})
	if err != nil {
		return models.Contact{}, err
	}

	return created, nil
}

// UpdateContact writes only the supplied fields. An empty update reads the
// contact back unchanged.
//
// When the e-mail changes, the row is locked by (id, owner_id) before the
// uniqueness check, so a contact of another owner reports
// [ErrContactNotFound] rather than [ErrDuplicateEmail].
func (r *contactRepository) UpdateContact(ctx context.Context, contactID int64, update models.ContactUpdate, ownerID int64) (models.Contact, error) {
	if update.IsEmpty() {
		return r.GetContact(ctx, contactID, ownerID)
	}

	query, args, err := buildUpdateContactQuery(ctx, contactID, update, ownerID)
	if err != nil {
		return models.Contact{}, err
	}

	var updated models.Contact
	err = r.withTx(ctx, func(tx *sql.Tx) error {
		if update.Email != nil {
			if err := r.lockContact(ctx, tx, contactID, ownerID); err != nil {
				return err
			}
			if err := r.ensureEmailIsFree(ctx, tx, *update.Email, contactID); err != nil {
				return err
			}
		}

		var qErr error
		updated, qErr = r.queryContact(ctx, tx, "contactRepository.UpdateContact", contactID, ownerID, query, args)
		return qErr
	})
	if err != nil {
		return models.Contact{}, err
	}

	return updated, nil
}

// DeleteContact removes the row and returns its last state.
func (r *contactRepository) DeleteContact(ctx context.Context, contactID, ownerID int64) (models.Contact, error) {
	query, args, err := buildDeleteContactQuery(ctx, contactID, ownerID)
	if err != nil {
		return models.Contact{}, err
	}

	return r.queryContact(ctx, r.DB, "contactRepository.DeleteContact", contactID, ownerID, query, args)
}

// queryContact runs a single-row statement returning contact columns.
// No row maps to [ErrContactNotFound]; a unique violation maps to
// [ErrDuplicateEmail].
func (r *contactRepository) queryContact(ctx context.Context, q queryer, funcName string, contactID, ownerID int64, query string, args []any) (models.Contact, error) {
	log := logger.FromContext(ctx)

	c, err := scanContact(q.QueryRowContext(ctx, query, args...))
	switch {
	case err == nil:
		return c, nil
	case errors.Is(err, sql.ErrNoRows):
		return models.Contact{}, ErrContactNotFound
	case isUniqueViolation(err):
		log.Debug().
			Str("func", funcName).
			Int64("owner_id", ownerID).
			Msg("unique violation on contact email")
		return models.Contact{}, ErrDuplicateEmail
	default:
		log.Err(err).
			Str("func", funcName).
			Int64("contact_id", contactID).
			Int64("owner_id", ownerID).
			Msg("failed to execute contact statement")
		return models.Contact{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
}

// lockContact takes a row lock on the owner's contact for the rest of tx.
func (r *contactRepository) lockContact(ctx context.Context, tx *sql.Tx, contactID, ownerID int64) error {
	query, args, err := buildLockContactQuery(ctx, contactID, ownerID)
	if err != nil {
		return err
	}

	_, err = r.queryContact(ctx, tx, "contactRepository.lockContact", contactID, ownerID, query, args)
	return err
}

func (r *contactRepository) ensureEmailIsFree(ctx context.Context, q queryer, email string, excludeID int64) error {
	query, args, err := buildEmailExistsQuery(ctx, email, excludeID)
	if err != nil {
		return err
	}

	var exists bool
	if err = q.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "contactRepository.ensureEmailIsFree").
			Msg("failed to check contact email")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if exists {
		return ErrDuplicateEmail
	}

	return nil
}
