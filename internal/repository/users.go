package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/papertrail/storefront/internal/domain"
)

const userColumns = `id, email, password_hash, full_name, contact_number,
	house_address, is_admin, created_at, updated_at`

func scanUser(row pgx.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.ContactNumber,
		&u.HouseAddress, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

type CreateUserParams struct {
	Email         string
	PasswordHash  string
	FullName      string
	ContactNumber string
	HouseAddress  string
	IsAdmin       bool
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (domain.User, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, full_name, contact_number, house_address, is_admin)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+userColumns,
		arg.Email, arg.PasswordHash, arg.FullName, arg.ContactNumber, arg.HouseAddress, arg.IsAdmin,
	)
	return scanUser(row)
}

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := q.db.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email)
	u, err := scanUser(row)
	return u, noRows(err)
}

func (q *Queries) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	row := q.db.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	return u, noRows(err)
}

const sessionColumns = `id, token, user_id, expires_at, created_at`

func scanSession(row pgx.Row) (domain.Session, error) {
	var s domain.Session
	err := row.Scan(&s.ID, &s.Token, &s.UserID, &s.ExpiresAt, &s.CreatedAt)
	return s, err
}

type CreateSessionParams struct {
	Token     string
	UserID    *int64
	ExpiresAt time.Time
}

func (q *Queries) CreateSession(ctx context.Context, arg CreateSessionParams) (domain.Session, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO sessions (token, user_id, expires_at)
		VALUES ($1, $2, $3)
		RETURNING `+sessionColumns,
		arg.Token, arg.UserID, arg.ExpiresAt,
	)
	return scanSession(row)
}

func (q *Queries) GetSessionByToken(ctx context.Context, token string) (domain.Session, error) {
	row := q.db.QueryRow(ctx, `
		SELECT `+sessionColumns+` FROM sessions WHERE token = $1`, token)
	s, err := scanSession(row)
	return s, noRows(err)
}

// AttachSessionUser binds an anonymous session to an account at login.
func (q *Queries) AttachSessionUser(ctx context.Context, token string, userID int64) error {
	tag, err := q.db.Exec(ctx, `
		UPDATE sessions SET user_id = $2 WHERE token = $1`, token, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (q *Queries) DeleteSession(ctx context.Context, token string) error {
	_, err := q.db.Exec(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	return err
}

func (q *Queries) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	tag, err := q.db.Exec(ctx, `DELETE FROM sessions WHERE expires_at < NOW()`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
