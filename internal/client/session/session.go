// Package session holds the process-wide authentication state. A single
// Context is created at start-up, restored once from the token store, and
// passed to every consumer; there are exactly two writers of the identity,
// the restore and the login dispatcher.
package session

import (
	"context"
	"sync"

	"github.com/vetdesk/vetdesk/internal/client/tokenstore"
	"github.com/vetdesk/vetdesk/internal/logging"
)

// Session is a snapshot of the current state. Loading is true only
// between process start and the first resolution of the token store;
// while it is set, consumers must treat the session as indeterminate
// rather than unauthenticated.
type Session struct {
	Identity
	Loading bool
}

// Context owns the live session. Safe for concurrent readers.
type Context struct {
	store tokenstore.Store
	log   logging.Logger

	mu       sync.RWMutex
	identity Identity
	loading  bool
	restored bool
}

// NewContext creates an empty, still-loading session bound to the store.
func NewContext(store tokenstore.Store, log logging.Logger) *Context {
	return &Context{
		store:   store,
		log:     log.With("component", "session"),
		loading: true,
	}
}

// Restore consults the token store exactly once per process lifetime and
// populates the identity if a token was persisted. No network call is
// made: a stale token is only discovered by the next authenticated
// request. Loading ends regardless of the outcome; repeated calls are
// no-ops.
func (c *Context) Restore(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.restored {
		return nil
	}
	c.restored = true

	defer func() { c.loading = false }()

	creds, err := c.store.Load(ctx)
	if err != nil {
		c.log.Error(ctx, "restoring session from store", "err", err)
		return err
	}
	if creds.Empty() {
		c.log.Debug(ctx, "no persisted session")
		return nil
	}

	id := Identity{
		Token:  creds.Token,
		Email:  creds.Email,
		UserID: creds.UserID,
		// Role is not persisted; a restored session has an unknown role.
	}
	c.identity = id.EnrichFromToken()
	c.log.Info(ctx, "session restored", "email", c.identity.Email)
	return nil
}

// Current returns a snapshot of the session.
func (c *Context) Current() Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Session{Identity: c.identity, Loading: c.loading}
}

// Set replaces the identity wholesale. Fields the caller leaves zero are
// gone; nothing is merged.
func (c *Context) Set(id Identity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.identity = id
}

// Logout clears the token store and resets the identity. Safe to call
// when already logged out.
func (c *Context) Logout(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Clear(ctx); err != nil {
		return err
	}
	c.identity = Identity{}
	c.log.Info(ctx, "signed out")
	return nil
}
