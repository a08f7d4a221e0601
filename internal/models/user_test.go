package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmail(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"jan@example.com", "jan@example.com"},
		{"  jan@example.com  ", "jan@example.com"},
		{"Jan.Kowalski@EXAMPLE.COM", "Jan.Kowalski@example.com"},
		{"UPPER.LOCAL@Example.Com", "UPPER.LOCAL@example.com"},
		{"no-at-sign", "no-at-sign"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeEmail(tc.in), "input %q", tc.in)
	}
}

func TestNewUserHashesPassword(t *testing.T) {
	user, err := NewUser("Jan@Example.COM", "Jan", "Kowalski", "s3cretpass")
	require.NoError(t, err)

	assert.Equal(t, "Jan@example.com", user.Email)
	assert.False(t, user.IsSuperuser)
	assert.NotEqual(t, "s3cretpass", user.PasswordHash)
	assert.True(t, user.CheckPassword("s3cretpass"))
	assert.False(t, user.CheckPassword("wrong"))
}

func TestNewSuperuser(t *testing.T) {
	user, err := NewSuperuser("root@example.com", "Root", "Admin", "s3cretpass")
	require.NoError(t, err)

	assert.True(t, user.IsSuperuser)
	assert.True(t, user.CheckPassword("s3cretpass"))
}

func TestFullName(t *testing.T) {
	user := &User{FirstName: "Jan", LastName: "Kowalski"}
	assert.Equal(t, "Jan Kowalski", user.FullName())
}
