package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App satisfies
// it; tests substitute a stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	LoginVet(ctx context.Context) error
	LoginAdmin(ctx context.Context) error
	Signup(ctx context.Context) error
	Forgot(ctx context.Context) error
	Open(ctx context.Context, route string) error
	Whoami(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL reads a line, parses the first token as the command and
// dispatches to a. Unknown commands are reported back. The loop exits on
// scanner EOF or on "exit"/"quit".
//
// Command handlers surface their own errors to the user; the loop ignores
// the returned error so one failed login never kills the shell.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("vd %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, open <route>, logout, exit")
			} else {
				printlnFn("Available commands: login, vetlogin, adminlogin, signup, forgot, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "vetlogin":
			_ = a.LoginVet(ctx)

		case "adminlogin":
			_ = a.LoginAdmin(ctx)

		case "signup":
			_ = a.Signup(ctx)

		case "forgot":
			_ = a.Forgot(ctx)

		case "open":
			if len(args) == 0 {
				printlnFn("Usage: open <route>")
				continue
			}
			_ = a.Open(ctx, args[0])

		case "whoami":
			_ = a.Whoami(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
