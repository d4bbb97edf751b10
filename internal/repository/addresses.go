package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/papertrail/storefront/internal/domain"
)

const addressColumns = `id, user_id, recipient, line1, city, postal_code,
	contact_number, is_default, created_at, updated_at`

func scanAddress(row pgx.Row) (domain.Address, error) {
	var a domain.Address
	err := row.Scan(
		&a.ID, &a.UserID, &a.Recipient, &a.Line1, &a.City, &a.PostalCode,
		&a.ContactNumber, &a.IsDefault, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

type CreateAddressParams struct {
	UserID        int64
	Recipient     string
	Line1         string
	City          string
	PostalCode    string
	ContactNumber string
	IsDefault     bool
}

func (q *Queries) CreateAddress(ctx context.Context, arg CreateAddressParams) (domain.Address, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO addresses (user_id, recipient, line1, city, postal_code, contact_number, is_default)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+addressColumns,
		arg.UserID, arg.Recipient, arg.Line1, arg.City, arg.PostalCode,
		arg.ContactNumber, arg.IsDefault,
	)
	return scanAddress(row)
}

func (q *Queries) GetAddressByID(ctx context.Context, id int64) (domain.Address, error) {
	row := q.db.QueryRow(ctx, `
		SELECT `+addressColumns+` FROM addresses WHERE id = $1`, id)
	a, err := scanAddress(row)
	return a, noRows(err)
}

func (q *Queries) ListAddressesByUser(ctx context.Context, userID int64) ([]domain.Address, error) {
	rows, err := q.db.Query(ctx, `
		SELECT `+addressColumns+` FROM addresses
		WHERE user_id = $1
		ORDER BY is_default DESC, created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var addrs []domain.Address
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, err
		}
		addrs = append(addrs, a)
	}
	return addrs, rows.Err()
}

type UpdateAddressParams struct {
	ID            int64
	Recipient     string
	Line1         string
	City          string
	PostalCode    string
	ContactNumber string
	IsDefault     bool
}

func (q *Queries) UpdateAddress(ctx context.Context, arg UpdateAddressParams) (domain.Address, error) {
	row := q.db.QueryRow(ctx, `
		UPDATE addresses
		SET recipient = $2, line1 = $3, city = $4, postal_code = $5,
			contact_number = $6, is_default = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING `+addressColumns,
		arg.ID, arg.Recipient, arg.Line1, arg.City, arg.PostalCode,
		arg.ContactNumber, arg.IsDefault,
	)
	a, err := scanAddress(row)
	return a, noRows(err)
}

// ClearDefaultAddress unsets the default flag on all of a user's
// addresses. Run inside the same transaction that sets a new default so
// the single-default invariant holds.
func (q *Queries) ClearDefaultAddress(ctx context.Context, userID int64) error {
	_, err := q.db.Exec(ctx, `
		UPDATE addresses SET is_default = FALSE, updated_at = NOW()
		WHERE user_id = $1 AND is_default = TRUE`, userID)
	return err
}

func (q *Queries) DeleteAddress(ctx context.Context, id int64) error {
	tag, err := q.db.Exec(ctx, `DELETE FROM addresses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
