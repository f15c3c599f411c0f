package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vetdesk/vetdesk/internal/client/tokenstore"
	"github.com/vetdesk/vetdesk/internal/logging"
)

// fakeStore implements tokenstore.Store for unit tests.
type fakeStore struct {
	creds   tokenstore.Credentials
	loadErr error

	loads  int
	clears int
}

func (f *fakeStore) Save(ctx context.Context, creds tokenstore.Credentials) error {
	f.creds = creds
	return nil
}

func (f *fakeStore) Load(ctx context.Context) (tokenstore.Credentials, error) {
	f.loads++
	return f.creds, f.loadErr
}

func (f *fakeStore) Clear(ctx context.Context) error {
	f.clears++
	f.creds = tokenstore.Credentials{}
	return nil
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return s
}

func TestRestore_PopulatesFromStore(t *testing.T) {
	store := &fakeStore{creds: tokenstore.Credentials{Token: "tok", Email: "a@b.c", UserID: "42"}}
	c := NewContext(store, testLogger())

	require.True(t, c.Current().Loading)

	require.NoError(t, c.Restore(context.Background()))

	s := c.Current()
	assert.False(t, s.Loading)
	assert.Equal(t, "tok", s.Token)
	assert.Equal(t, "a@b.c", s.Email)
	assert.Equal(t, "42", s.UserID)
	assert.Empty(t, s.Role, "role is not persisted, restored sessions carry none")
	assert.True(t, s.Authenticated())
}

func TestRestore_EmptyStoreEndsLoading(t *testing.T) {
	c := NewContext(&fakeStore{}, testLogger())

	require.NoError(t, c.Restore(context.Background()))

	s := c.Current()
	assert.False(t, s.Loading)
	assert.False(t, s.Authenticated())
}

func TestRestore_RunsOnce(t *testing.T) {
	store := &fakeStore{creds: tokenstore.Credentials{Token: "tok"}}
	c := NewContext(store, testLogger())

	require.NoError(t, c.Restore(context.Background()))
	require.NoError(t, c.Restore(context.Background()))

	assert.Equal(t, 1, store.loads)
}

func TestRestore_StoreErrorStillEndsLoading(t *testing.T) {
	store := &fakeStore{loadErr: errors.New("disk gone")}
	c := NewContext(store, testLogger())

	err := c.Restore(context.Background())
	require.Error(t, err)
	assert.False(t, c.Current().Loading)
	assert.False(t, c.Current().Authenticated())
}

func TestSet_ReplacesWholesale(t *testing.T) {
	c := NewContext(&fakeStore{}, testLogger())

	c.Set(Identity{Token: "t1", Email: "a@b.c", Role: RoleVeterinarian, Name: "Dr. A"})
	c.Set(Identity{Token: "t2", Email: "a@b.c"})

	s := c.Current()
	assert.Equal(t, "t2", s.Token)
	assert.Empty(t, s.Role, "Set never merges")
	assert.Empty(t, s.Name)
}

func TestLogout_Idempotent(t *testing.T) {
	store := &fakeStore{creds: tokenstore.Credentials{Token: "tok", Email: "a@b.c"}}
	c := NewContext(store, testLogger())
	ctx := context.Background()

	require.NoError(t, c.Restore(ctx))
	require.NoError(t, c.Logout(ctx))
	require.NoError(t, c.Logout(ctx))

	assert.False(t, c.Current().Authenticated())
	assert.True(t, store.creds.Empty())
	assert.Equal(t, 2, store.clears)
}

func TestEnrichFromToken_JWTClaims(t *testing.T) {
	tok := signedToken(t, jwt.MapClaims{"_id": "u-77", "name": "Jane"})

	id := Identity{Token: tok, Email: "j@x.y"}.EnrichFromToken()
	assert.Equal(t, "u-77", id.UserID)
	assert.Equal(t, "Jane", id.Name)
}

func TestEnrichFromToken_SubFallbackAndExistingFieldsKept(t *testing.T) {
	tok := signedToken(t, jwt.MapClaims{"sub": "u-88", "name": "Other"})

	id := Identity{Token: tok, Name: "Kept"}.EnrichFromToken()
	assert.Equal(t, "u-88", id.UserID)
	assert.Equal(t, "Kept", id.Name)
}

func TestEnrichFromToken_OpaqueTokenUnchanged(t *testing.T) {
	id := Identity{Token: "not-a-jwt", Email: "a@b.c"}
	assert.Equal(t, id, id.EnrichFromToken())
}
