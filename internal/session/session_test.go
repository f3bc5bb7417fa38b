package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smarteval/smarteval-go/internal/models"

	appErrors "github.com/smarteval/smarteval-go/pkg/errors"
)

func testUser() models.User {
	return models.User{
		ID:         "u-1",
		Username:   "amara",
		Email:      "amara@example.edu",
		Role:       models.RoleStudent,
		IsVerified: true,
	}
}

func fileBackend(t *testing.T) *FileBackend {
	t.Helper()
	backend, err := NewFileBackend(filepath.Join(t.TempDir(), "session"), "test-secret", nil)
	require.NoError(t, err)
	return backend
}

func TestFileBackendRoundTrip(t *testing.T) {
	backend := fileBackend(t)
	ctx := context.Background()
	user := testUser()

	require.NoError(t, backend.Store(ctx, Session{Token: "tok-123", User: &user}))

	loaded, err := backend.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-123", loaded.Token)
	require.NotNil(t, loaded.User)
	assert.Equal(t, user, *loaded.User)
}

func TestFileBackendMissingFileLoadsLoggedOut(t *testing.T) {
	backend := fileBackend(t)

	loaded, err := backend.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, loaded.Authenticated())
}

func TestFileBackendCorruptFileLoadsLoggedOut(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session")
	require.NoError(t, os.WriteFile(path, []byte("not a sealed session"), 0o600))

	backend, err := NewFileBackend(path, "test-secret", nil)
	require.NoError(t, err)

	loaded, err := backend.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, loaded.Authenticated())
}

func TestFileBackendWrongKeyLoadsLoggedOut(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session")
	user := testUser()

	writer, err := NewFileBackend(path, "secret-a", nil)
	require.NoError(t, err)
	require.NoError(t, writer.Store(context.Background(), Session{Token: "tok", User: &user}))

	reader, err := NewFileBackend(path, "secret-b", nil)
	require.NoError(t, err)
	loaded, err := reader.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, loaded.Authenticated())
}

func TestFileBackendClear(t *testing.T) {
	backend := fileBackend(t)
	ctx := context.Background()
	user := testUser()

	require.NoError(t, backend.Store(ctx, Session{Token: "tok", User: &user}))
	require.NoError(t, backend.Clear(ctx))
	// Clearing twice must stay silent.
	require.NoError(t, backend.Clear(ctx))

	loaded, err := backend.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded.Token)
	assert.Nil(t, loaded.User)
}

func TestAuthenticatedRequiresBoth(t *testing.T) {
	user := testUser()

	assert.False(t, Session{}.Authenticated())
	assert.False(t, Session{Token: "tok"}.Authenticated())
	assert.False(t, Session{User: &user}.Authenticated())
	assert.True(t, Session{Token: "tok", User: &user}.Authenticated())
}

func TestStoreSaveThenCurrent(t *testing.T) {
	store := Open(context.Background(), fileBackend(t), nil)
	user := testUser()

	require.NoError(t, store.Save(context.Background(), "tok", user))

	current := store.Current()
	assert.Equal(t, "tok", current.Token)
	require.NotNil(t, current.User)
	assert.Equal(t, user, *current.User)
	assert.Equal(t, "tok", store.Token())
}

func TestStoreClearThenCurrent(t *testing.T) {
	store := Open(context.Background(), fileBackend(t), nil)
	user := testUser()

	require.NoError(t, store.Save(context.Background(), "tok", user))
	require.NoError(t, store.Clear(context.Background()))

	current := store.Current()
	assert.Empty(t, current.Token)
	assert.Nil(t, current.User)
}

func TestStoreSubscribeDeliversCurrentThenChanges(t *testing.T) {
	store := Open(context.Background(), fileBackend(t), nil)
	user := testUser()

	updates, cancel := store.Subscribe()
	defer cancel()

	first := <-updates
	assert.False(t, first.Authenticated())

	require.NoError(t, store.Save(context.Background(), "tok", user))
	second := receive(t, updates)
	assert.True(t, second.Authenticated())

	require.NoError(t, store.Clear(context.Background()))
	third := receive(t, updates)
	assert.False(t, third.Authenticated())
}

func receive(t *testing.T, ch <-chan Session) Session {
	t.Helper()
	select {
	case s := <-ch:
		return s
	case <-time.After(time.Second):
		t.Fatal("no session update received")
		return Session{}
	}
}

type failingBackend struct {
	storeErr error
	clearErr error
}

func (f *failingBackend) Load(context.Context) (Session, error) { return Session{}, nil }
func (f *failingBackend) Store(context.Context, Session) error  { return f.storeErr }
func (f *failingBackend) Clear(context.Context) error           { return f.clearErr }

func TestStoreSavePersistFailureSurfacesButKeepsSession(t *testing.T) {
	backend := &failingBackend{storeErr: errors.New("disk full")}
	store := Open(context.Background(), backend, nil)
	user := testUser()

	err := store.Save(context.Background(), "tok", user)
	require.Error(t, err)
	assert.Equal(t, appErrors.CodeStorage, appErrors.FromError(err).Code)

	// The in-process session survives so the login still completes.
	assert.True(t, store.Current().Authenticated())
}

func TestStoreOpenFailingLoadStartsLoggedOut(t *testing.T) {
	backend := &loadFailingBackend{}
	store := Open(context.Background(), backend, nil)
	assert.False(t, store.Current().Authenticated())
}

type loadFailingBackend struct{}

func (l *loadFailingBackend) Load(context.Context) (Session, error) {
	return Session{}, errors.New("backend down")
}
func (l *loadFailingBackend) Store(context.Context, Session) error { return nil }
func (l *loadFailingBackend) Clear(context.Context) error          { return nil }
