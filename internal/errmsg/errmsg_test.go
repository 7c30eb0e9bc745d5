package errmsg

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"repairdesk/internal/service"
	"repairdesk/internal/storage"
)

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "duplicate account",
			err:  storage.ErrAccountAlreadyExists,
			want: "This login is already taken.",
		},
		{
			name: "wrapped invalid credentials",
			err:  fmt.Errorf("authenticate: %w", service.ErrInvalidCredentials),
			want: "Invalid login or password.",
		},
		{
			name: "unknown error falls back",
			err:  errors.New("disk on fire"),
			want: fallbackMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err))
		})
	}
}
