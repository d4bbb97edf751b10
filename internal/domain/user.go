package domain

import "time"

// User is a registered account. PasswordHash is a bcrypt hash and never
// leaves the server.
type User struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	FullName      string    `json:"full_name"`
	ContactNumber string    `json:"contact_number,omitempty"`
	HouseAddress  string    `json:"house_address,omitempty"`
	IsAdmin       bool      `json:"is_admin"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Session is a server-side login session. The token travels in a cookie;
// anonymous visitors get a session row with no user attached so their cart
// has an owner.
type Session struct {
	ID        int64     `json:"id"`
	Token     string    `json:"-"`
	UserID    *int64    `json:"user_id,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the session is past its expiry.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// RegisterInput is the sign-up form payload.
type RegisterInput struct {
	Email         string `json:"email" validate:"required,email,max=254"`
	Password      string `json:"password" validate:"required,min=8,max=128"`
	FullName      string `json:"full_name" validate:"required,max=150"`
	ContactNumber string `json:"contact_number" validate:"max=20"`
	HouseAddress  string `json:"house_address" validate:"max=255"`
}

// LoginInput is the sign-in form payload.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
