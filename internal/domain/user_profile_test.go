package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUserProfile(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	p, err := NewUserProfile(userID, "Budi Santoso", "budi@example.com", "S1 Informatika", "Mahasiswa")
	require.NoError(t, err)

	assert.Equal(t, userID, p.UserID)
	assert.Equal(t, DefaultUserRole, p.Role)
	assert.Equal(t, "S1 Informatika", p.Pendidikan)
}

func TestUserProfileValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*UserProfile)
		wantErr bool
	}{
		{name: "valid", mutate: func(p *UserProfile) {}},
		{name: "nil user id", mutate: func(p *UserProfile) { p.UserID = uuid.Nil }, wantErr: true},
		{name: "missing name", mutate: func(p *UserProfile) { p.Name = "" }, wantErr: true},
		{name: "missing email", mutate: func(p *UserProfile) { p.Email = "" }, wantErr: true},
		{name: "malformed email", mutate: func(p *UserProfile) { p.Email = "not-an-email" }, wantErr: true},
		{name: "missing role", mutate: func(p *UserProfile) { p.Role = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := &UserProfile{
				UserID: uuid.New(),
				Name:   "Budi",
				Email:  "budi@example.com",
				Role:   DefaultUserRole,
			}
			tt.mutate(p)
			err := p.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewIdentity(t *testing.T) {
	t.Parallel()

	id, err := NewIdentity("ani@example.com", map[string]any{"name": "Ani"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id.ID)

	_, err = NewIdentity("", nil)
	assert.Error(t, err)

	_, err = NewIdentity("broken@", nil)
	assert.Error(t, err)
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidatePassword("rahasia123"))
	assert.ErrorIs(t, ValidatePassword(""), ErrEmptyPassword)
	assert.ErrorIs(t, ValidatePassword("abc"), ErrPasswordTooShort)
}
