package store

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-contacts/internal/birthday"
	"github.com/MKhiriev/go-contacts/internal/logger"
	"github.com/MKhiriev/go-contacts/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var contactRowColumns = []string{
	"id", "owner_id", "first_name", "last_name", "email",
	"phone", "birthday", "notes", "created_at", "updated_at",
}

func newTestContactRepo(t *testing.T) (*contactRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	l := logger.Nop()
	return &contactRepository{DB: newDB(db, l), logger: l}, mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func contactRow(rows *sqlmock.Rows, id, ownerID int64, email string, bday driver.Value) *sqlmock.Rows {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return rows.AddRow(id, ownerID, "John", "Doe", email, "+100", bday, "", now, now)
}

func strPtr(s string) *string { return &s }

// ─── ListContacts / SearchContacts ───────────────────────────────────────────

func TestContactRepository_ListContacts(t *testing.T) {
	repo, mock := newTestContactRepo(t)

	rows := sqlmock.NewRows(contactRowColumns)
	contactRow(rows, 1, 7, "a@example.com", time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC))
	contactRow(rows, 2, 7, "b@example.com", nil)

	mock.ExpectQuery(`SELECT (.+) FROM contacts WHERE owner_id = \$1 ORDER BY id LIMIT 10 OFFSET 5`).
		WithArgs(int64(7)).
		WillReturnRows(rows)

	got, err := repo.ListContacts(context.Background(), 7, models.ContactFilter{Offset: 5, Limit: 10})
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, int64(1), got[0].ID)
	require.NotNil(t, got[0].Birthday)
	assert.Equal(t, "1990-05-17", got[0].Birthday.String())
	assert.Nil(t, got[1].Birthday)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepository_ListContacts_EmptyIsNotNil(t *testing.T) {
	repo, mock := newTestContactRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM contacts`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(contactRowColumns))

	got, err := repo.ListContacts(context.Background(), 7, models.ContactFilter{})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestContactRepository_ListContacts_QueryError(t *testing.T) {
	repo, mock := newTestContactRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM contacts`).
		WillReturnError(errors.New("boom"))

	_, err := repo.ListContacts(context.Background(), 7, models.ContactFilter{})
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestContactRepository_ListContacts_RowError(t *testing.T) {
	repo, mock := newTestContactRepo(t)

	rows := sqlmock.NewRows(contactRowColumns)
	contactRow(rows, 1, 7, "a@example.com", nil)
	rows.RowError(0, errors.New("broken row"))

	mock.ExpectQuery(`SELECT (.+) FROM contacts`).WillReturnRows(rows)

	_, err := repo.ListContacts(context.Background(), 7, models.ContactFilter{})
	assert.ErrorIs(t, err, ErrScanningRows)
}

func TestContactRepository_SearchContacts(t *testing.T) {
	repo, mock := newTestContactRepo(t)

	rows := sqlmock.NewRows(contactRowColumns)
	contactRow(rows, 3, 7, "a@example.com", nil)

	mock.ExpectQuery(`SELECT (.+) FROM contacts WHERE owner_id = \$1 AND first_name = \$2 AND email = \$3 ORDER BY id`).
		WithArgs(int64(7), "John", "a@example.com").
		WillReturnRows(rows)

	got, err := repo.SearchContacts(context.Background(), 7, models.ContactFilter{
		FirstName: strPtr("John"),
		Email:     strPtr("a@example.com"),
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(3), got[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ─── GetContact ──────────────────────────────────────────────────────────────

func TestContactRepository_GetContact(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "found",
			setup: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(contactRowColumns)
				contactRow(rows, 4, 7, "a@example.com", nil)
				mock.ExpectQuery(`SELECT (.+) FROM contacts WHERE owner_id = \$1 AND id = \$2`).
					WithArgs(int64(7), int64(4)).
					WillReturnRows(rows)
			},
		},
		{
			name: "missing or foreign",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT (.+) FROM contacts`).
					WithArgs(int64(7), int64(4)).
					WillReturnRows(sqlmock.NewRows(contactRowColumns))
			},
			wantErr: ErrContactNotFound,
		},
		{
			name: "driver error",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT (.+) FROM contacts`).
					WillReturnError(errors.New("boom"))
			},
			wantErr: ErrExecutingQuery,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestContactRepo(t)
			tt.setup(mock)

			got, err := repo.GetContact(context.Background(), 4, 7)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(4), got.ID)
			assert.Equal(t, int64(7), got.OwnerID)
		})
	}
}

// ─── CreateContact ───────────────────────────────────────────────────────────

func TestContactRepository_CreateContact(t *testing.T) {
	repo, mock := newTestContactRepo(t)

	bday := models.NewDate(1990, time.May, 17)
	create := models.ContactCreate{
		FirstName: "John",
		LastName:  "Doe",
		Email:     "a@example.com",
		Phone:     "+100",
		Birthday:  &bday,
	}

	rows := sqlmock.NewRows(contactRowColumns)
	contactRow(rows, 10, 7, "a@example.com", bday.Time)

	// Arrange
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT EXISTS \(\s*SELECT 1 FROM contacts WHERE email = \$1\s*\)`).
		WithArgs("a@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(`INSERT INTO contacts`).
		WithArgs(int64(7), "John", "Doe", "a@example.com", "+100", sqlmock.AnyArg(), "").
		WillReturnRows(rows)
	mock.ExpectCommit()

	// Act
	got, err := repo.CreateContact(context.Background(), create, 7)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(10), got.ID)
	assert.Equal(t, int64(7), got.OwnerID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepository_CreateContact_EmailTaken(t *testing.T) {
	repo, mock := newTestContactRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("a@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	_, err := repo.CreateContact(context.Background(), models.ContactCreate{Email: "a@example.com"}, 7)
	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepository_CreateContact_UniqueViolationOnInsert(t *testing.T) {
	repo, mock := newTestContactRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT EXISTS`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(`INSERT INTO contacts`).
		WillReturnError(pgError(pgerrcode.UniqueViolation))
	mock.ExpectRollback()

	_, err := repo.CreateContact(context.Background(), models.ContactCreate{Email: "a@example.com"}, 7)
	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepository_CreateContact_RetriesSerializationFailure(t *testing.T) {
	repo, mock := newTestContactRepo(t)

	rows := sqlmock.NewRows(contactRowColumns)
	contactRow(rows, 11, 7, "a@example.com", nil)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT EXISTS`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(`INSERT INTO contacts`).
		WillReturnError(pgError(pgerrcode.SerializationFailure))
	mock.ExpectRollback()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT EXISTS`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(`INSERT INTO contacts`).
		WillReturnRows(rows)
	mock.ExpectCommit()

	got, err := repo.CreateContact(context.Background(), models.ContactCreate{Email: "a@example.com"}, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(11), got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepository_CreateContact_BeginFails(t *testing.T) {
	repo, mock := newTestContactRepo(t)

	mock.ExpectBegin().WillReturnError(errors.New("no tx"))

	_, err := repo.CreateContact(context.Background(), models.ContactCreate{Email: "a@example.com"}, 7)
	assert.ErrorIs(t, err, ErrBeginningTransaction)
}

// ─── UpdateContact ───────────────────────────────────────────────────────────

func TestContactRepository_UpdateContact(t *testing.T) {
	repo, mock := newTestContactRepo(t)

	rows := sqlmock.NewRows(contactRowColumns)
	contactRow(rows, 4, 7, "new@example.com", nil)

	locked := sqlmock.NewRows(contactRowColumns)
	contactRow(locked, 4, 7, "old@example.com", nil)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM contacts WHERE owner_id = \$1 AND id = \$2 FOR UPDATE`).
		WithArgs(int64(7), int64(4)).
		WillReturnRows(locked)
	mock.ExpectQuery(`SELECT EXISTS \(\s*SELECT 1 FROM contacts WHERE email = \$1 AND id <> \$2\s*\)`).
		WithArgs("new@example.com", int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(`UPDATE contacts SET updated_at = NOW\(\), email = \$1 WHERE id = \$2 AND owner_id = \$3 RETURNING`).
		WithArgs("new@example.com", int64(4), int64(7)).
		WillReturnRows(rows)
	mock.ExpectCommit()

	got, err := repo.UpdateContact(context.Background(), 4, models.ContactUpdate{Email: strPtr("new@example.com")}, 7)
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", got.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepository_UpdateContact_WithoutEmailSkipsCheck(t *testing.T) {
	repo, mock := newTestContactRepo(t)

	rows := sqlmock.NewRows(contactRowColumns)
	contactRow(rows, 4, 7, "a@example.com", nil)

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE contacts SET updated_at = NOW\(\), notes = \$1`).
		WithArgs("", int64(4), int64(7)).
		WillReturnRows(rows)
	mock.ExpectCommit()

	_, err := repo.UpdateContact(context.Background(), 4, models.ContactUpdate{Notes: strPtr("")}, 7)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepository_UpdateContact_Empty(t *testing.T) {
	repo, mock := newTestContactRepo(t)

	rows := sqlmock.NewRows(contactRowColumns)
	contactRow(rows, 4, 7, "a@example.com", nil)

	mock.ExpectQuery(`SELECT (.+) FROM contacts WHERE owner_id = \$1 AND id = \$2`).
		WithArgs(int64(7), int64(4)).
		WillReturnRows(rows)

	got, err := repo.UpdateContact(context.Background(), 4, models.ContactUpdate{}, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(4), got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepository_UpdateContact_NotFound(t *testing.T) {
	repo, mock := newTestContactRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE contacts`).
		WillReturnRows(sqlmock.NewRows(contactRowColumns))
	mock.ExpectRollback()

	_, err := repo.UpdateContact(context.Background(), 4, models.ContactUpdate{FirstName: strPtr("X")}, 8)
	assert.ErrorIs(t, err, ErrContactNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepository_UpdateContact_ForeignOwnerWithTakenEmail(t *testing.T) {
	repo, mock := newTestContactRepo(t)

	// contact 4 belongs to owner 7; owner 8 asks for an address used elsewhere
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM contacts WHERE owner_id = \$1 AND id = \$2 FOR UPDATE`).
		WithArgs(int64(8), int64(4)).
		WillReturnRows(sqlmock.NewRows(contactRowColumns))
	mock.ExpectRollback()

	_, err := repo.UpdateContact(context.Background(), 4, models.ContactUpdate{Email: strPtr("taken@example.com")}, 8)
	assert.ErrorIs(t, err, ErrContactNotFound)
	assert.NotErrorIs(t, err, ErrDuplicateEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepository_UpdateContact_OwnEmailTakenByOther(t *testing.T) {
	repo, mock := newTestContactRepo(t)

	locked := sqlmock.NewRows(contactRowColumns)
	contactRow(locked, 4, 7, "old@example.com", nil)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM contacts WHERE owner_id = \$1 AND id = \$2 FOR UPDATE`).
		WithArgs(int64(7), int64(4)).
		WillReturnRows(locked)
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("taken@example.com", int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	_, err := repo.UpdateContact(context.Background(), 4, models.ContactUpdate{Email: strPtr("taken@example.com")}, 7)
	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ─── DeleteContact ───────────────────────────────────────────────────────────

func TestContactRepository_DeleteContact(t *testing.T) {
	repo, mock := newTestContactRepo(t)

	rows := sqlmock.NewRows(contactRowColumns)
	contactRow(rows, 4, 7, "a@example.com", nil)

	mock.ExpectQuery(`DELETE FROM contacts WHERE id = \$1 AND owner_id = \$2 RETURNING`).
		WithArgs(int64(4), int64(7)).
		WillReturnRows(rows)

	got, err := repo.DeleteContact(context.Background(), 4, 7)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", got.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepository_DeleteContact_NotFound(t *testing.T) {
	repo, mock := newTestContactRepo(t)

	mock.ExpectQuery(`DELETE FROM contacts`).
		WillReturnRows(sqlmock.NewRows(contactRowColumns))

	_, err := repo.DeleteContact(context.Background(), 4, 7)
	assert.ErrorIs(t, err, ErrContactNotFound)
}

// ─── SearchBirthdays ─────────────────────────────────────────────────────────

func TestContactRepository_SearchBirthdays(t *testing.T) {
	repo, mock := newTestContactRepo(t)

	w := birthday.NewWindow(time.Date(2026, time.December, 30, 0, 0, 0, 0, time.UTC), 7)

	rows := sqlmock.NewRows(contactRowColumns)
	contactRow(rows, 1, 7, "a@example.com", time.Date(1990, time.January, 2, 0, 0, 0, 0, time.UTC))

	mock.ExpectQuery(`SELECT (.+) FROM contacts WHERE owner_id = \$1 AND birthday IS NOT NULL AND`).
		WithArgs(int64(7), 2026, w.From, w.To, 2027, w.From, w.To).
		WillReturnRows(rows)

	got, err := repo.SearchBirthdays(context.Background(), 7, w)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
