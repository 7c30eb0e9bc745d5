// Package errmsg maps core errors to the human-readable messages shown by
// the presentation layer. The core itself only returns typed errors.
package errmsg

import (
	"errors"

	"repairdesk/internal/domain/accounts"
	"repairdesk/internal/domain/services"
	"repairdesk/internal/service"
	"repairdesk/internal/storage"
)

const fallbackMessage = "Something went wrong. Please try again."

var messages = []struct {
	err  error
	text string
}{
	{storage.ErrAccountAlreadyExists, "This login is already taken."},
	{service.ErrInvalidCredentials, "Invalid login or password."},
	{storage.ErrAccountNotFound, "Account not found."},
	{storage.ErrServiceNotFound, "Service not found."},
	{storage.ErrServiceAlreadyExists, "A service with this id already exists."},
	{services.ErrUnknownKind, "Unknown service kind."},
	{accounts.ErrAmountNegative, "Amount cannot be negative."},
	{accounts.ErrAccountLoginEmpty, "Please fill in all fields."},
	{accounts.ErrAccountPasswdEmpty, "Please fill in all fields."},
}

// UserMessage returns the message to display for err.
func UserMessage(err error) string {
	for _, m := range messages {
		if errors.Is(err, m.err) {
			return m.text
		}
	}

	return fallbackMessage
}
