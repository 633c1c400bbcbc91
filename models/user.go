package models

import "time"

// User represents an account entity used for authentication and ownership
// of contacts. Credential-related fields are never serialized.
type User struct {
	// ID is the internal unique identifier of the user.
	ID int64 `json:"id"`

	// Username is the unique display login of the user.
	Username string `json:"username"`

	// Email is the unique e-mail address used to log in.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the peppered password.
	PasswordHash string `json:"-"`

	// Avatar is the public URL of the user's avatar image.
	Avatar string `json:"avatar"`

	// RefreshToken is the currently valid refresh token, nil after logout
	// or a failed refresh.
	RefreshToken *string `json:"-"`

	// Confirmed reports whether the e-mail address has been verified.
	Confirmed bool `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// UserSignup is the body of a sign-up request.
type UserSignup struct {
	Username string `json:"username" validate:"required,min=5,max=16"`
	Email    string `json:"email" validate:"required,email,max=150"`
	Password string `json:"password" validate:"required,min=6,max=10"`
}

// UserLogin carries login credentials. Username holds the e-mail address,
// mirroring the OAuth2 password flow form.
type UserLogin struct {
	Username string `json:"username" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RequestEmail is the body of a confirmation e-mail resend request.
type RequestEmail struct {
	Email string `json:"email" validate:"required,email"`
}

// UserResponse is returned after a successful sign-up.
type UserResponse struct {
	User   User   `json:"user"`
	Detail string `json:"detail"`
}

// Message is a plain informational response body.
type Message struct {
	Message string `json:"message"`
}

// Detail is an error or status response body.
type Detail struct {
	Detail string `json:"detail"`
}
