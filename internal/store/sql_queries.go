package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-contacts/internal/birthday"
	"github.com/MKhiriev/go-contacts/internal/logger"
	"github.com/MKhiriev/go-contacts/models"
	sq "github.com/Masterminds/squirrel"
)

const (
	contactsTable = "contacts"
	usersTable    = "users"
)

// psql builds PostgreSQL statements with $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// contactColumns is the projection shared by every contact query and
// RETURNING clause. Optional text columns are coalesced so they scan into
// plain strings.
var contactColumns = []string{
	"id",
	"owner_id",
	"COALESCE(first_name, '') AS first_name",
	"COALESCE(last_name, '') AS last_name",
	"email",
	"COALESCE(phone, '') AS phone",
	"birthday",
	"COALESCE(notes, '') AS notes",
	"created_at",
	"updated_at",
}

var userColumns = []string{
	"id",
	"username",
	"email",
	"password",
	"COALESCE(avatar, '') AS avatar",
	"refresh_token",
	"confirmed",
	"created_at",
}

func returning(columns []string) string {
	return "RETURNING " + strings.Join(columns, ", ")
}

func toSQL(ctx context.Context, funcName string, b sq.Sqlizer) (string, []any, error) {
	query, args, err := b.ToSql()
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", funcName).Msg("failed to build query")
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// ── contacts ──────────────────────────────────────────────────────────────────

func selectContacts(ownerID int64) sq.SelectBuilder {
	return psql.Select(contactColumns...).
		From(contactsTable).
		Where(sq.Eq{"owner_id": ownerID})
}

func paginate(b sq.SelectBuilder, filter models.ContactFilter) sq.SelectBuilder {
	b = b.OrderBy("id")
	if filter.Offset > 0 {
		b = b.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		b = b.Limit(filter.Limit)
	}

	return b
}

// buildListContactsQuery selects every contact of ownerID, paged by the
// filter's Offset and Limit. Field criteria are ignored.
func buildListContactsQuery(ctx context.Context, ownerID int64, filter models.ContactFilter) (string, []any, error) {
	return toSQL(ctx, "buildListContactsQuery", paginate(selectContacts(ownerID), filter))
}

// buildGetContactQuery selects one contact by id within ownerID's contacts.
func buildGetContactQuery(ctx context.Context, contactID, ownerID int64) (string, []any, error) {
	b := selectContacts(ownerID).Where(sq.Eq{"id": contactID})
	return toSQL(ctx, "buildGetContactQuery", b)
}

// buildLockContactQuery selects the owner's contact FOR UPDATE.
func buildLockContactQuery(ctx context.Context, contactID, ownerID int64) (string, []any, error) {
	b := selectContacts(ownerID).Where(sq.Eq{"id": contactID}).Suffix("FOR UPDATE")
	return toSQL(ctx, "buildLockContactQuery", b)
}

// buildSearchContactsQuery ANDs an exact, case-sensitive equality for every
// non-nil criterion onto the owner predicate. With no criteria it selects
// all of the owner's contacts.
func buildSearchContactsQuery(ctx context.Context, ownerID int64, filter models.ContactFilter) (string, []any, error) {
	b := selectContacts(ownerID)
	if filter.FirstName != nil {
		b = b.Where(sq.Eq{"first_name": *filter.FirstName})
	}
	if filter.LastName != nil {
		b = b.Where(sq.Eq{"last_name": *filter.LastName})
	}
	if filter.Email != nil {
		b = b.Where(sq.Eq{"email": *filter.Email})
	}

	return toSQL(ctx, "buildSearchContactsQuery", paginate(b, filter))
}

// buildEmailExistsQuery checks e-mail uniqueness across all owners.
// A positive excludeID leaves that contact out, so an update may keep its
// own address.
func buildEmailExistsQuery(ctx context.Context, email string, excludeID int64) (string, []any, error) {
	b := psql.Select("1").
		From(contactsTable).
		Where(sq.Eq{"email": email})
	if excludeID > 0 {
		b = b.Where(sq.NotEq{"id": excludeID})
	}
	b = b.Prefix("SELECT EXISTS (").Suffix(")")

	return toSQL(ctx, "buildEmailExistsQuery", b)
}

// birthdayProbe returns the SQL expression that re-anchors a contact's
// birthday to year. In a non-leap year a Feb 29 birthday yields NULL, which
// never satisfies BETWEEN.
func birthdayProbe(year int) sq.Sqlizer {
	const makeDate = "make_date(?, EXTRACT(MONTH FROM birthday)::int, EXTRACT(DAY FROM birthday)::int)"
	if birthday.IsLeapYear(year) {
		return sq.Expr(makeDate, year)
	}

	return sq.Expr("CASE WHEN EXTRACT(MONTH FROM birthday) = 2 AND EXTRACT(DAY FROM birthday) = 29 THEN NULL ELSE "+makeDate+" END", year)
}

func probeBetween(year int, w birthday.Window) sq.Sqlizer {
	return sq.Expr("(?) BETWEEN ? AND ?", birthdayProbe(year), w.From, w.To)
}

// buildBirthdayQuery selects the owner's contacts whose birthday, anchored
// to the window's start year or the following year, falls in w.
func buildBirthdayQuery(ctx context.Context, ownerID int64, w birthday.Window) (string, []any, error) {
	thisYear, nextYear := w.Years()
	b := selectContacts(ownerID).
		Where(sq.NotEq{"birthday": nil}).
		Where(sq.Or{
			probeBetween(thisYear, w),
			probeBetween(nextYear, w),
		}).
		OrderBy("id")

	return toSQL(ctx, "buildBirthdayQuery", b)
}

func buildInsertContactQuery(ctx context.Context, c models.Contact) (string, []any, error) {
	b := psql.Insert(contactsTable).
		Columns("owner_id", "first_name", "last_name", "email", "phone", "birthday", "notes").
		Values(c.OwnerID, c.FirstName, c.LastName, c.Email, c.Phone, c.Birthday, c.Notes).
		Suffix(returning(contactColumns))

	return toSQL(ctx, "buildInsertContactQuery", b)
}

// buildUpdateContactQuery sets only the supplied fields and bumps
// updated_at. The row must belong to ownerID.
func buildUpdateContactQuery(ctx context.Context, contactID int64, update models.ContactUpdate, ownerID int64) (string, []any, error) {
	b := psql.Update(contactsTable).Set("updated_at", sq.Expr("NOW()"))

	if update.FirstName != nil {
		b = b.Set("first_name", *update.FirstName)
	}
	if update.LastName != nil {
		b = b.Set("last_name", *update.LastName)
	}
	if update.Email != nil {
		b = b.Set("email", *update.Email)
	}
	if update.Phone != nil {
		b = b.Set("phone", *update.Phone)
	}
	if update.Birthday != nil {
		b = b.Set("birthday", *update.Birthday)
	}
	if update.Notes != nil {
		b = b.Set("notes", *update.Notes)
	}

	b = b.Where(sq.Eq{"id": contactID}).
		Where(sq.Eq{"owner_id": ownerID}).
		Suffix(returning(contactColumns))

	return toSQL(ctx, "buildUpdateContactQuery", b)
}

func buildDeleteContactQuery(ctx context.Context, contactID, ownerID int64) (string, []any, error) {
	b := psql.Delete(contactsTable).
		Where(sq.Eq{"id": contactID}).
		Where(sq.Eq{"owner_id": ownerID}).
		Suffix(returning(contactColumns))

	return toSQL(ctx, "buildDeleteContactQuery", b)
}

// ── users ─────────────────────────────────────────────────────────────────────

func buildCreateUserQuery(ctx context.Context, u models.User) (string, []any, error) {
	b := psql.Insert(usersTable).
		Columns("username", "email", "password", "avatar").
		Values(u.Username, u.Email, u.PasswordHash, u.Avatar).
		Suffix(returning(userColumns))

	return toSQL(ctx, "buildCreateUserQuery", b)
}

func buildFindUserQuery(ctx context.Context, pred sq.Eq) (string, []any, error) {
	b := psql.Select(userColumns...).From(usersTable).Where(pred)
	return toSQL(ctx, "buildFindUserQuery", b)
}

func buildUpdateRefreshTokenQuery(ctx context.Context, userID int64, token *string) (string, []any, error) {
	b := psql.Update(usersTable).
		Set("refresh_token", token).
		Where(sq.Eq{"id": userID})

	return toSQL(ctx, "buildUpdateRefreshTokenQuery", b)
}

func buildConfirmEmailQuery(ctx context.Context, email string) (string, []any, error) {
	b := psql.Update(usersTable).
		Set("confirmed", true).
		Where(sq.Eq{"email": email})

	return toSQL(ctx, "buildConfirmEmailQuery", b)
}

func buildUpdateAvatarQuery(ctx context.Context, email, url string) (string, []any, error) {
	b := psql.Update(usersTable).
		Set("avatar", url).
		Where(sq.Eq{"email": email}).
		Suffix(returning(userColumns))

	return toSQL(ctx, "buildUpdateAvatarQuery", b)
}
