// Package tokenstore persists the session credential across client
// restarts. Only three keys exist: token, email and userId. Role and
// display name are deliberately not persisted, so a restored session
// carries an unknown role.
package tokenstore

import "context"

// Keys written by Save and removed by Clear. Clear must never touch
// anything outside this set.
const (
	KeyToken  = "token"
	KeyEmail  = "email"
	KeyUserID = "userId"
)

// Credentials is the persisted slice of an identity.
type Credentials struct {
	Token  string
	Email  string
	UserID string
}

// Empty reports whether nothing usable was stored. The token is the only
// authentication signal; email/userId alone do not count.
func (c Credentials) Empty() bool {
	return c.Token == ""
}

// Store is durable key/value persistence for the session credential.
//
// Contract:
//   - Save writes the full key set in one transaction (last write wins).
//   - Load is read-only and idempotent; absent keys yield zero fields.
//   - Clear removes exactly the keys Save writes, nothing else.
type Store interface {
	Save(ctx context.Context, creds Credentials) error
	Load(ctx context.Context) (Credentials, error)
	Clear(ctx context.Context) error
}
