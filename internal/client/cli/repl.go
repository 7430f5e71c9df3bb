package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL dispatches to. App implements
// it; tests provide a stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Signup(ctx context.Context) error
	Recover(ctx context.Context) error
	Reset(ctx context.Context) error
	Me(ctx context.Context) error
	User(ctx context.Context, args []string) error
	Update(ctx context.Context, args []string) error
	Save(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Resend(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL reads commands line by line from reader and dispatches them.
// Handlers prompting for input read from the same reader.
//
//	Not logged in:  help, login, signup, recover, reset, user <name>, exit | quit
//	Logged in:      help, me, user <name>, update <field>=<value>...,
//	                save <file.json>, delete <id>, resend, logout, exit | quit
//
// Handler errors are already reported by the handlers, so the loop ignores
// them and keeps going. It returns on "exit", "quit" or end of input.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "gs (%s)> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(w)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, "Available commands: me, user <name>, update <field>=<value>..., save <file.json>, delete <id>, resend, logout, exit")
			} else {
				fmt.Fprintln(w, "Available commands: login, signup, recover, reset, user <name>, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "signup":
			_ = a.Signup(ctx)

		case "recover":
			_ = a.Recover(ctx)

		case "reset":
			_ = a.Reset(ctx)

		case "me":
			_ = a.Me(ctx)

		case "user":
			_ = a.User(ctx, args)

		case "update":
			_ = a.Update(ctx, args)

		case "save":
			_ = a.Save(ctx, args)

		case "delete":
			_ = a.Delete(ctx, args)

		case "resend":
			_ = a.Resend(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}
	}
}
