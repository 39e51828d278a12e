package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zaqiyusuf/gatepass/internal/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := openTestStore(t)

	sess := Session{
		User:  domain.User{ID: "u-1", Name: "Admin", Email: "admin@example.com", Role: domain.RoleAdmin},
		Token: "tok-1",
	}
	require.NoError(t, store.Save(sess))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, sess.User, loaded.User)
	assert.Equal(t, "tok-1", loaded.Token)
}

func TestLoadWithoutSession(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestSaveReplacesPreviousSession(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Save(Session{User: domain.User{ID: "u-1", Name: "First"}, Token: "tok-1"}))
	require.NoError(t, store.Save(Session{User: domain.User{ID: "u-2", Name: "Second"}, Token: "tok-2"}))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "u-2", loaded.User.ID)
	assert.Equal(t, "tok-2", loaded.Token)
}

func TestClearRemovesSession(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Save(Session{User: domain.User{ID: "u-1"}, Token: "tok-1"}))

	require.NoError(t, store.Clear())

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoSession)
	assert.Empty(t, store.Token())
}

func TestCorruptUserBlobIsNoSession(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Save(Session{User: domain.User{ID: "u-1"}, Token: "tok-1"}))
	require.NoError(t, store.set(keyUser, "{not json"))

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestTokenSource(t *testing.T) {
	store := openTestStore(t)
	assert.Empty(t, store.Token())

	require.NoError(t, store.Save(Session{User: domain.User{ID: "u-1"}, Token: "tok-1"}))
	assert.Equal(t, "tok-1", store.Token())

	// Invalidate drops the whole session, not just the token.
	store.Invalidate()
	assert.Empty(t, store.Token())
	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestOpenCreatesStateDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.db")
	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Save(Session{User: domain.User{ID: "u-1"}, Token: "tok-1"}))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "u-1", loaded.User.ID)
}
