package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "session.toml")
}

func TestLoad_MissingFileIsLoggedOut(t *testing.T) {
	s, err := Load(sessionPath(t))
	require.NoError(t, err)
	assert.False(t, s.LoggedIn())
	assert.Empty(t, s.Token())
}

func TestSetCredentialPersists(t *testing.T) {
	path := sessionPath(t)

	s, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, s.SetCredential(Credential{Token: "tok", Username: "mona", Email: "m@example.com"}))

	assert.True(t, s.LoggedIn())
	assert.Equal(t, "tok", s.Token())

	// A fresh load sees the persisted credential.
	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "tok", reloaded.Token())
	assert.Equal(t, "mona", reloaded.Username())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestClearRemovesAndNotifies(t *testing.T) {
	path := sessionPath(t)

	s, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, s.SetCredential(Credential{Token: "tok"}))

	notified := 0
	s.OnClear(func() { notified++ })
	s.OnClear(func() { notified++ })

	require.NoError(t, s.Clear())
	assert.False(t, s.LoggedIn())
	assert.Equal(t, 2, notified)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestClearWithoutFileIsFine(t *testing.T) {
	s, err := Load(sessionPath(t))
	require.NoError(t, err)
	assert.NoError(t, s.Clear())
}
