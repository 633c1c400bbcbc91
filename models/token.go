package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenScope distinguishes the purposes a signed token may be used for.
type TokenScope string

const (
	// ScopeAccessToken authorizes API requests.
	ScopeAccessToken TokenScope = "access_token"
	// ScopeRefreshToken may only be exchanged for a new token pair.
	ScopeRefreshToken TokenScope = "refresh_token"
	// ScopeEmailToken confirms ownership of an e-mail address.
	ScopeEmailToken TokenScope = "email_token"
)

// TokenClaims is the claim set carried by every token issued by the service.
// The "sub" claim holds the user's e-mail address.
type TokenClaims struct {
	jwt.RegisteredClaims

	// Scope restricts what the token can be used for.
	Scope TokenScope `json:"scope"`
}

// Token wraps a JWT token with convenience accessors for authentication flows.
//
// It embeds [jwt.Token] for low-level token operations and [TokenClaims]
// for claim access. SignedString holds the compact serialized form of the
// token ready to be transmitted in HTTP headers or bodies.
type Token struct {
	*jwt.Token `json:"-"`

	TokenClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// Email is the parsed "sub" claim.
	Email string `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}

// TokenPair is returned by login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// NewTokenPair builds a bearer [TokenPair] from an access and a refresh token.
func NewTokenPair(access, refresh Token) TokenPair {
	return TokenPair{
		AccessToken:  access.SignedString,
		RefreshToken: refresh.SignedString,
		TokenType:    "bearer",
	}
}
