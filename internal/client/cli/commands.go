package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/gsapi/internal/client/client"
	"github.com/dmitrijs2005/gsapi/internal/client/models"
)

var (
	errUsage        = errors.New("invalid usage")
	errUnknownField = errors.New("unknown field")
)

// report prints err for the user and returns it unchanged.
func (a *App) report(ctx context.Context, op string, err error) error {
	var apiErr *client.Error
	if errors.As(err, &apiErr) {
		fmt.Fprintf(a.out, "%s failed: %s\n", op, apiErr.Message)
	} else {
		fmt.Fprintf(a.out, "%s failed: %v\n", op, err)
	}
	a.log.Warn(ctx, "command failed", "command", op, "error", err)
	return err
}

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return a.report(ctx, "login", err)
	}
	pass, err := GetPassword("Password", a.out)
	if err != nil {
		return a.report(ctx, "login", err)
	}

	p, err := a.api.Login(ctx, email, pass)
	if err != nil {
		return a.report(ctx, "login", err)
	}
	fmt.Fprintf(a.out, "Logged in as %s\n", p.User.Username.OrElse(email))
	return nil
}

func (a *App) Signup(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return a.report(ctx, "signup", err)
	}
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return a.report(ctx, "signup", err)
	}
	pass, err := GetPassword("Password", a.out)
	if err != nil {
		return a.report(ctx, "signup", err)
	}

	p, err := a.api.Signup(ctx, username, email, pass)
	if err != nil {
		return a.report(ctx, "signup", err)
	}
	fmt.Fprintf(a.out, "Account created for %s, check %s to confirm it\n",
		p.User.Username.OrElse(username), p.User.Email.OrElse(email))
	return nil
}

func (a *App) Recover(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return a.report(ctx, "recover", err)
	}
	if _, err := a.api.RecoverPassword(ctx, email); err != nil {
		return a.report(ctx, "recover", err)
	}
	fmt.Fprintf(a.out, "A recovery email was sent to %s\n", email)
	return nil
}

// Reset completes a recovery started with Recover, using the code from the
// recovery email.
func (a *App) Reset(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return a.report(ctx, "reset", err)
	}
	code, err := GetSimpleText(a.reader, "Code", a.out)
	if err != nil {
		return a.report(ctx, "reset", err)
	}
	pass, err := GetPassword("New password", a.out)
	if err != nil {
		return a.report(ctx, "reset", err)
	}

	if _, err := a.api.ResetPassword(ctx, email, code, pass); err != nil {
		return a.report(ctx, "reset", err)
	}
	fmt.Fprintln(a.out, "Password changed, you can log in now")
	return nil
}

func (a *App) Me(ctx context.Context) error {
	p, err := a.api.GetMe(ctx)
	if err != nil {
		return a.report(ctx, "me", err)
	}
	printProfile(a.out, p)
	return nil
}

func (a *App) User(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.report(ctx, "user", fmt.Errorf("%w: user <name>", errUsage))
	}
	p, err := a.api.GetUser(ctx, args[0])
	if err != nil {
		return a.report(ctx, "user", err)
	}
	printProfile(a.out, p)
	return nil
}

func (a *App) Update(ctx context.Context, args []string) error {
	u, err := parseProfileUpdate(args)
	if err != nil {
		return a.report(ctx, "update", err)
	}
	p, err := a.api.UpdateMyInfo(ctx, u)
	if err != nil {
		return a.report(ctx, "update", err)
	}
	printProfile(a.out, p)
	return nil
}

// parseProfileUpdate turns field=value arguments into a ProfileUpdate.
func parseProfileUpdate(args []string) (client.ProfileUpdate, error) {
	var u client.ProfileUpdate
	if len(args) == 0 {
		return u, fmt.Errorf("%w: update <field>=<value>...", errUsage)
	}
	for _, arg := range args {
		field, value, ok := strings.Cut(arg, "=")
		if !ok {
			return u, fmt.Errorf("%w: %q is not field=value", errUsage, arg)
		}
		switch field {
		case "email":
			u.Email = models.Some(value)
		case "firstname":
			u.Firstname = models.Some(value)
		case "lastname":
			u.Lastname = models.Some(value)
		case "avatar":
			u.Avatar = models.Some(value)
		case "emailpublic":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return u, fmt.Errorf("emailpublic: %w", err)
			}
			u.EmailPublic = models.Some(b)
		default:
			return u, fmt.Errorf("%w: %s", errUnknownField, field)
		}
	}
	return u, nil
}

func (a *App) Save(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.report(ctx, "save", fmt.Errorf("%w: save <file.json>", errUsage))
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return a.report(ctx, "save", err)
	}
	var cmp models.Composition
	if err := json.Unmarshal(b, &cmp); err != nil {
		return a.report(ctx, "save", fmt.Errorf("parse %s: %w", args[0], err))
	}

	if _, err := a.api.SaveComposition(ctx, cmp); err != nil {
		return a.report(ctx, "save", err)
	}
	fmt.Fprintf(a.out, "Composition %s saved\n", compositionTitle(cmp))
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.report(ctx, "delete", fmt.Errorf("%w: delete <id>", errUsage))
	}
	if _, err := a.api.DeleteComposition(ctx, args[0]); err != nil {
		return a.report(ctx, "delete", err)
	}
	fmt.Fprintf(a.out, "Composition %s deleted\n", args[0])
	return nil
}

func (a *App) Resend(ctx context.Context) error {
	if _, err := a.api.ResendConfirmationEmail(ctx); err != nil {
		return a.report(ctx, "resend", err)
	}
	fmt.Fprintln(a.out, "Confirmation email sent")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if _, err := a.api.Logout(ctx); err != nil {
		return a.report(ctx, "logout", err)
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
