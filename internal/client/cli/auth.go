package cli

import (
	"context"
	"os"

	"github.com/vetdesk/vetdesk/internal/client/router"
	"github.com/vetdesk/vetdesk/internal/client/session"
)

// getSimpleText and getPassword are indirections used to facilitate
// testing; they point at the interactive input helpers.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login runs the generic user credential flow.
func (a *App) Login(ctx context.Context) error {
	email, password, err := a.promptCredentials()
	if err != nil {
		return err
	}
	defer wipe(password)

	if err := a.dispatcher.LoginUser(ctx, email, string(password)); err != nil {
		a.printDispatchError()
		return err
	}
	printlnFn("Logged in.")
	return nil
}

// LoginVet runs the veterinarian credential flow.
func (a *App) LoginVet(ctx context.Context) error {
	email, password, err := a.promptCredentials()
	if err != nil {
		return err
	}
	defer wipe(password)

	if err := a.dispatcher.LoginVeterinarian(ctx, email, string(password)); err != nil {
		a.printDispatchError()
		return err
	}
	printlnFn("Logged in.")
	return nil
}

// LoginAdmin runs the role-selecting flow: the user picks admin or
// veterinarian and the role travels in the request payload.
func (a *App) LoginAdmin(ctx context.Context) error {
	roleInput, err := getSimpleText(a.reader, "Role (admin/veterinarian)", os.Stdout)
	if err != nil {
		return err
	}
	role := session.RoleAdmin
	if roleInput == string(session.RoleVeterinarian) {
		role = session.RoleVeterinarian
	}

	email, password, err := a.promptCredentials()
	if err != nil {
		return err
	}
	defer wipe(password)

	if err := a.dispatcher.LoginRole(ctx, role, email, string(password)); err != nil {
		a.printDispatchError()
		return err
	}
	printlnFn("Logged in.")
	return nil
}

// Signup creates a user account; a successful signup logs the user
// straight in, like the login flows.
func (a *App) Signup(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter your name", os.Stdout)
	if err != nil {
		return err
	}
	email, password, err := a.promptCredentials()
	if err != nil {
		return err
	}
	defer wipe(password)

	if err := a.dispatcher.Signup(ctx, name, email, string(password)); err != nil {
		a.printDispatchError()
		return err
	}
	printlnFn("Account created.")
	return nil
}

// Open navigates to a route, passing protected ones through the guard.
func (a *App) Open(ctx context.Context, target string) error {
	route := router.Route(target)
	if router.Public(route) {
		a.nav.Navigate(route)
		return nil
	}

	switch router.Check(a.session.Current()) {
	case router.Defer:
		printlnFn("Still restoring your session, try again in a moment.")
	case router.Redirect:
		a.nav.Navigate(router.RouteLogin)
		printlnFn("Please log in first.")
	case router.Allow:
		a.nav.Navigate(route)
	}
	return nil
}

// Whoami prints the current identity.
func (a *App) Whoami(ctx context.Context) error {
	s := a.session.Current()
	if !s.Authenticated() {
		printlnFn("Not logged in.")
		return nil
	}
	role := string(s.Role)
	if role == "" {
		// sessions restored from disk carry no role
		role = "unknown"
	}
	printlnFn("Email:", s.Email)
	printlnFn("Role: ", role)
	if s.Name != "" {
		printlnFn("Name: ", s.Name)
	}
	return nil
}

// Logout signs out and returns to the login view.
func (a *App) Logout(ctx context.Context) error {
	if err := a.dispatcher.SignOut(ctx); err != nil {
		printlnFn("Sign-out failed:", err.Error())
		return err
	}
	printlnFn("Logged out.")
	return nil
}

func (a *App) promptCredentials() (string, []byte, error) {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return "", nil, err
	}
	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		return "", nil, err
	}
	return email, password, nil
}

// printDispatchError shows the dispatcher's retained message. A silent
// no-op login (missing token header) retains nothing, so nothing prints.
func (a *App) printDispatchError() {
	if msg := a.dispatcher.ErrorMessage(); msg != "" {
		printlnFn(msg)
	}
}
