package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	path    string
	headers http.Header
	body    map[string]string
}

// newServer spins up a backend stub that records the last request and
// replies with the given status, token header and JSON body.
func newServer(t *testing.T, status int, token string, body map[string]string) (*httptest.Server, *recordedRequest) {
	t.Helper()
	rec := &recordedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.path = r.URL.Path
		rec.headers = r.Header.Clone()
		rec.body = map[string]string{}
		_ = json.NewDecoder(r.Body).Decode(&rec.body)

		if token != "" {
			w.Header().Set(AuthTokenHeader, token)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if body != nil {
			_ = json.NewEncoder(w).Encode(body)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func TestLogin_ExtractsTokenFromHeader(t *testing.T) {
	srv, rec := newServer(t, http.StatusOK, "tok-123", nil)
	c := NewHTTPClient(srv.URL)

	token, err := c.Login(context.Background(), "a@b.c", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)

	assert.Equal(t, "/auth", rec.path)
	assert.Equal(t, "a@b.c", rec.body["email"])
	assert.Equal(t, "secret", rec.body["password"])
	assert.Equal(t, "application/json", rec.headers.Get("Content-Type"))
	assert.NotEmpty(t, rec.headers.Get("X-Request-Id"))
}

func TestLogin_MissingTokenHeaderIsNotAnError(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, "", nil)
	c := NewHTTPClient(srv.URL)

	token, err := c.Login(context.Background(), "a@b.c", "secret")
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestLogin_ForbiddenMapsToDeactivated(t *testing.T) {
	// message in the body must not override the 403 classification
	srv, _ := newServer(t, http.StatusForbidden, "", map[string]string{"message": "nope"})
	c := NewHTTPClient(srv.URL)

	_, err := c.Login(context.Background(), "a@b.c", "secret")
	require.ErrorIs(t, err, ErrAccountDeactivated)
}

func TestLogin_ErrorCarriesServerMessage(t *testing.T) {
	srv, _ := newServer(t, http.StatusBadRequest, "", map[string]string{"message": "Invalid email or password."})
	c := NewHTTPClient(srv.URL)

	_, err := c.Login(context.Background(), "a@b.c", "wrong")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Invalid email or password.", apiErr.Message)
}

func TestLogin_ErrorWithoutMessageLeavesItEmpty(t *testing.T) {
	srv, _ := newServer(t, http.StatusInternalServerError, "", nil)
	c := NewHTTPClient(srv.URL)

	_, err := c.Login(context.Background(), "a@b.c", "pw")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Empty(t, apiErr.Message)
}

func TestLogin_TransportFailure(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, "t", nil)
	url := srv.URL
	srv.Close()

	c := NewHTTPClient(url)
	_, err := c.Login(context.Background(), "a@b.c", "pw")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestSignup_PathAndBody(t *testing.T) {
	srv, rec := newServer(t, http.StatusOK, "tok-s", nil)
	c := NewHTTPClient(srv.URL)

	token, err := c.Signup(context.Background(), "Jane", "j@x.y", "pw123456")
	require.NoError(t, err)
	assert.Equal(t, "tok-s", token)
	assert.Equal(t, "/signup", rec.path)
	assert.Equal(t, "Jane", rec.body["name"])
}

func TestLoginVeterinarian_Path(t *testing.T) {
	srv, rec := newServer(t, http.StatusOK, "tok-v", nil)
	c := NewHTTPClient(srv.URL)

	_, err := c.LoginVeterinarian(context.Background(), "v@x.y", "pw")
	require.NoError(t, err)
	assert.Equal(t, "/veterinarians", rec.path)
}

func TestLoginRole_CarriesRoleInPayload(t *testing.T) {
	srv, rec := newServer(t, http.StatusOK, "tok-r", nil)
	c := NewHTTPClient(srv.URL)

	_, err := c.LoginRole(context.Background(), "admin", "adm@x.y", "pw")
	require.NoError(t, err)
	assert.Equal(t, "/admin", rec.path)
	assert.Equal(t, "admin", rec.body["role"])
}

func TestRequestPasswordReset(t *testing.T) {
	srv, rec := newServer(t, http.StatusOK, "", map[string]string{"message": "code sent"})
	c := NewHTTPClient(srv.URL)

	err := c.RequestPasswordReset(context.Background(), "v@x.y", "veterinarian")
	require.NoError(t, err)
	assert.Equal(t, "/admin/forgot-password", rec.path)
	assert.Equal(t, "veterinarian", rec.body["role"])
}

func TestRequestPasswordReset_ErrorMessage(t *testing.T) {
	srv, _ := newServer(t, http.StatusNotFound, "", map[string]string{"message": "No account found."})
	c := NewHTTPClient(srv.URL)

	err := c.RequestPasswordReset(context.Background(), "v@x.y", "veterinarian")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "No account found.", apiErr.Message)
}

func TestResetPassword_Body(t *testing.T) {
	srv, rec := newServer(t, http.StatusOK, "", nil)
	c := NewHTTPClient(srv.URL)

	err := c.ResetPassword(context.Background(), "v@x.y", "4217", "newpass99")
	require.NoError(t, err)
	assert.Equal(t, "/admin/reset-password", rec.path)
	assert.Equal(t, "4217", rec.body["resetToken"])
	assert.Equal(t, "newpass99", rec.body["newPassword"])
}

func TestBaseURLTrailingSlash(t *testing.T) {
	srv, rec := newServer(t, http.StatusOK, "tok", nil)
	c := NewHTTPClient(srv.URL + "/")

	_, err := c.Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	assert.Equal(t, "/auth", rec.path)
}
