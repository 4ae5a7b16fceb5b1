package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUsers(t *testing.T) *UserStore {
	t.Helper()
	dir := t.TempDir()
	s := NewUserStore(Config{UsersFile: filepath.Join(dir, "users.json")})
	s.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestRegisterIfAbsent(t *testing.T) {
	s := newTestUsers(t)

	created, err := s.RegisterIfAbsent(42, "naruto_fan", "Aziz")
	require.NoError(t, err)
	assert.True(t, created)

	// Re-registration is a no-op and never overwrites the names.
	created, err = s.RegisterIfAbsent(42, "other_name", "Boshqa")
	require.NoError(t, err)
	assert.False(t, created)

	users, err := s.List()
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "naruto_fan", users[0].Username)
	assert.Equal(t, "Aziz", users[0].FirstName)
	assert.False(t, users[0].VIP)
	assert.False(t, users[0].JoinedDate.IsZero())
}

func TestToggleVIP(t *testing.T) {
	s := newTestUsers(t)
	_, err := s.RegisterIfAbsent(42, "", "Aziz")
	require.NoError(t, err)

	vip, err := s.ToggleVIP(42)
	require.NoError(t, err)
	assert.True(t, vip)

	vip, err = s.ToggleVIP(42)
	require.NoError(t, err)
	assert.False(t, vip)
}

func TestToggleVIP_UnknownUser(t *testing.T) {
	s := newTestUsers(t)

	vip, err := s.ToggleVIP(999)
	require.NoError(t, err)
	assert.False(t, vip)
}

func TestIsVIP_UnknownUser(t *testing.T) {
	s := newTestUsers(t)

	vip, err := s.IsVIP(999)
	require.NoError(t, err)
	assert.False(t, vip)
}
