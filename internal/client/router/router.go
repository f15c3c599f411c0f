// Package router tracks which view the client is on and gates navigation
// on the session state.
package router

import "sync"

// Route identifies a view. The strings mirror the backend-facing route
// surface, including the one dashboard route with different casing.
type Route string

const (
	RouteLogin        Route = "/login"
	RouteSignUp       Route = "/sign-up"
	RouteHome         Route = "/"
	RouteVetDashboard Route = "/vetDashboard"

	// RouteAdminDashboard and RouteVeterinarianDashboard are the two
	// landing routes of the role-selecting login.
	RouteAdminDashboard        Route = "/adminDashboard"
	RouteVeterinarianDashboard Route = "/VeterinarianDashboard"
)

// Public reports whether the route is reachable without a session.
func Public(r Route) bool {
	return r == RouteLogin || r == RouteSignUp
}

// Navigator records the current route.
type Navigator interface {
	Navigate(Route)
	Current() Route
}

// History is the in-process Navigator. It starts at the login route.
type History struct {
	mu      sync.Mutex
	current Route
}

var _ Navigator = (*History)(nil)

func NewHistory() *History {
	return &History{current: RouteLogin}
}

func (h *History) Navigate(r Route) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = r
}

func (h *History) Current() Route {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}
