package user_test

import (
	"testing"

	"github.com/amirasaad/ledger/pkg/domain"
	"github.com/amirasaad/ledger/pkg/domain/user"
	"github.com/amirasaad/ledger/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	u, err := user.New(" Alice ", "Alice@Example.com ", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "Alice", u.Name)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.NotEqual(t, "s3cret", u.Password)
	assert.True(t, utils.CheckPasswordHash("s3cret", u.Password))
	assert.False(t, u.CreatedAt.IsZero())
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name, userName, email, password string
		expected                        error
	}{
		{"empty name", "", "a@example.com", "pw", user.ErrNameRequired},
		{"invalid email", "Alice", "not-an-email", "pw", user.ErrInvalidEmail},
		{"empty password", "Alice", "a@example.com", "", user.ErrPasswordRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			u, err := user.New(tt.userName, tt.email, tt.password)
			assert.Nil(t, u)
			assert.ErrorIs(t, err, tt.expected)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func FuzzNew(f *testing.F) {
	f.Add("alice", "alice@example.com", "password123")
	f.Add("", "", "")
	f.Fuzz(func(t *testing.T, name, email, password string) {
		if len(password) > 72 {
			t.Skip()
		}
		u, err := user.New(name, email, password)
		if err == nil && (u.Name == "" || u.Email == "") {
			t.Errorf("user with empty name or email: %+v", u)
		}
	})
}
