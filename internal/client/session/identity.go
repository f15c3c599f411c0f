package session

import "github.com/golang-jwt/jwt/v5"

// Role of an authenticated principal. A restored session has no role: it
// is not persisted, so after a restart the role is unknown until the next
// login.
type Role string

const (
	RoleUser         Role = "user"
	RoleVeterinarian Role = "veterinarian"
	RoleAdmin        Role = "admin"
)

// Identity is the set of claims describing the authenticated principal.
// Token is the only authentication signal: it is present if and only if
// the session is authenticated. Every other field is advisory.
type Identity struct {
	Token  string
	Email  string
	Role   Role
	UserID string
	Name   string
}

// Authenticated reports whether a token is held. No other field is
// trusted for this.
func (i Identity) Authenticated() bool {
	return i.Token != ""
}

// EnrichFromToken fills UserID and Name from the token's claims when the
// token happens to be a JWT. The claims are parsed without verification
// and are display-only; authorization always stays with the backend.
// Fields already set are left alone, and a non-JWT token changes nothing.
func (i Identity) EnrichFromToken() Identity {
	if i.Token == "" {
		return i
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(i.Token, claims); err != nil {
		return i
	}

	if i.UserID == "" {
		if v, ok := claims["_id"].(string); ok {
			i.UserID = v
		} else if v, ok := claims["sub"].(string); ok {
			i.UserID = v
		}
	}
	if i.Name == "" {
		if v, ok := claims["name"].(string); ok {
			i.Name = v
		}
	}
	return i
}
