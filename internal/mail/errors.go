package mail

import "errors"

var (
	ErrEmptyRecipient = errors.New("empty recipient")
	ErrSendingMail    = errors.New("failed to send e-mail")
)
