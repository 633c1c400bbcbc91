package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrInvalidDays         = errors.New("days must be between 0 and 366")

	ErrWrongPassword           = errors.New("wrong password")
	ErrInvalidEmail            = errors.New("invalid email")
	ErrEmailNotConfirmed       = errors.New("email not confirmed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrInvalidRefreshToken     = errors.New("invalid refresh token")
	ErrVerificationError       = errors.New("verification error")
	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrPasswordHashing         = errors.New("password hashing failed")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
