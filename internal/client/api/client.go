// Package api implements the HTTP transport to the clinic backend. It only
// speaks the wire protocol: JSON request bodies, the x-auth-token response
// header, and the error classification described in errors.go. What to do
// with a token (or with its absence) is the caller's business.
package api

import "context"

// Client is the backend surface the session and recovery layers depend on.
//
// The Login* methods return the bearer token issued via the x-auth-token
// response header. A 2xx response without that header yields an empty
// token and a nil error; the caller decides how to treat it.
type Client interface {
	// Login authenticates a generic user. POST /auth.
	Login(ctx context.Context, email, password string) (string, error)

	// Signup registers a new user account. POST /signup.
	Signup(ctx context.Context, name, email, password string) (string, error)

	// LoginVeterinarian authenticates a veterinarian. POST /veterinarians.
	LoginVeterinarian(ctx context.Context, email, password string) (string, error)

	// LoginRole authenticates against the role-selecting endpoint, with the
	// role carried in the payload. POST /admin.
	LoginRole(ctx context.Context, role, email, password string) (string, error)

	// RequestPasswordReset asks the backend to issue a reset code.
	// POST /admin/forgot-password.
	RequestPasswordReset(ctx context.Context, email, role string) error

	// ResetPassword submits the reset code and the replacement password.
	// POST /admin/reset-password.
	ResetPassword(ctx context.Context, email, resetToken, newPassword string) error
}
