package router

import "github.com/vetdesk/vetdesk/internal/client/session"

// Decision is the guard's verdict on rendering a protected view.
type Decision int

const (
	// Defer: the session is still restoring; render nothing conclusive and
	// do not redirect, or an unauthenticated flash appears on every reload.
	Defer Decision = iota

	// Redirect: no token is held; send the caller to the login route.
	Redirect

	// Allow: render the protected content unchanged.
	Allow
)

func (d Decision) String() string {
	switch d {
	case Defer:
		return "defer"
	case Redirect:
		return "redirect"
	case Allow:
		return "allow"
	}
	return "unknown"
}

// Check is the route guard: a pure predicate over the session snapshot.
// The caller performs the actual redirect on Redirect.
func Check(s session.Session) Decision {
	if s.Loading {
		return Defer
	}
	if !s.Authenticated() {
		return Redirect
	}
	return Allow
}
