package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// AuthTokenHeader is the response header carrying the issued bearer token.
// The backend never puts the token in the body.
const AuthTokenHeader = "x-auth-token"

// HTTPClient is the production Client implementation.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient builds a client for the backend at baseURL. The underlying
// http.Client carries no timeout; callers bound requests via ctx.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type roleLoginRequest struct {
	Role     string `json:"role"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	ResetToken  string `json:"resetToken"`
	NewPassword string `json:"newPassword"`
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	return c.postForToken(ctx, "/auth", loginRequest{Email: email, Password: password})
}

func (c *HTTPClient) Signup(ctx context.Context, name, email, password string) (string, error) {
	return c.postForToken(ctx, "/signup", signupRequest{Name: name, Email: email, Password: password})
}

func (c *HTTPClient) LoginVeterinarian(ctx context.Context, email, password string) (string, error) {
	return c.postForToken(ctx, "/veterinarians", loginRequest{Email: email, Password: password})
}

func (c *HTTPClient) LoginRole(ctx context.Context, role, email, password string) (string, error) {
	return c.postForToken(ctx, "/admin", roleLoginRequest{Role: role, Email: email, Password: password})
}

func (c *HTTPClient) RequestPasswordReset(ctx context.Context, email, role string) error {
	resp, err := c.post(ctx, "/admin/forgot-password", forgotPasswordRequest{Email: email, Role: role})
	if err != nil {
		return err
	}
	defer drain(resp.Body)

	if !success(resp.StatusCode) {
		return classify(resp)
	}
	return nil
}

func (c *HTTPClient) ResetPassword(ctx context.Context, email, resetToken, newPassword string) error {
	resp, err := c.post(ctx, "/admin/reset-password", resetPasswordRequest{
		Email:       email,
		ResetToken:  resetToken,
		NewPassword: newPassword,
	})
	if err != nil {
		return err
	}
	defer drain(resp.Body)

	if !success(resp.StatusCode) {
		return classify(resp)
	}
	return nil
}

// postForToken issues the request and pulls the bearer token off the
// response header. An absent header on a success status is not an error
// here; the empty token is handed back as-is.
func (c *HTTPClient) postForToken(ctx context.Context, path string, body any) (string, error) {
	resp, err := c.post(ctx, path, body)
	if err != nil {
		return "", err
	}
	defer drain(resp.Body)

	if !success(resp.StatusCode) {
		return "", classify(resp)
	}
	return resp.Header.Get(AuthTokenHeader), nil
}

func (c *HTTPClient) post(ctx context.Context, path string, body any) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("api: encoding request for %s: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("api: building request for %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return resp, nil
}

// classify maps an error response to the taxonomy: 403 is the dedicated
// deactivated-account signal, everything else becomes an APIError carrying
// whatever "message" the body had.
func classify(resp *http.Response) error {
	if resp.StatusCode == http.StatusForbidden {
		return ErrAccountDeactivated
	}

	var body struct {
		Message string `json:"message"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)

	return &APIError{StatusCode: resp.StatusCode, Message: body.Message}
}

func success(status int) bool {
	return status >= 200 && status <= 299
}

func drain(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}
