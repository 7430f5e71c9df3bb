package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/gsapi/internal/client/client"
	"github.com/dmitrijs2005/gsapi/internal/client/config"
	"github.com/dmitrijs2005/gsapi/internal/client/models"
	"github.com/dmitrijs2005/gsapi/internal/client/session"
	"github.com/dmitrijs2005/gsapi/internal/logging"
)

// API is the part of client.Client the CLI drives.
type API interface {
	GetMe(ctx context.Context) (*client.Profile, error)
	Login(ctx context.Context, email, pass string) (*client.Profile, error)
	Signup(ctx context.Context, username, email, pass string) (*client.Profile, error)
	GetUser(ctx context.Context, username string) (*client.Profile, error)
	UpdateMyInfo(ctx context.Context, u client.ProfileUpdate) (*client.Profile, error)
	SaveComposition(ctx context.Context, cmp models.Composition) (json.RawMessage, error)
	DeleteComposition(ctx context.Context, id string) (json.RawMessage, error)
	RecoverPassword(ctx context.Context, email string) (json.RawMessage, error)
	ResetPassword(ctx context.Context, email, code, pass string) (json.RawMessage, error)
	ResendConfirmationEmail(ctx context.Context) (json.RawMessage, error)
	Logout(ctx context.Context) (json.RawMessage, error)
	Store() *session.Store
}

var _ API = (*client.Client)(nil)

type App struct {
	api    API
	log    logging.Logger
	reader *bufio.Reader
	out    io.Writer
}

// NewApp builds the logger, transport and client described by c.
func NewApp(c *config.Config) (*App, error) {
	log, err := logging.New(c.LogBackend, c.LogLevel, os.Stderr)
	if err != nil {
		return nil, err
	}

	transport, err := client.NewHTTPTransport(c.RequestTimeout)
	if err != nil {
		return nil, fmt.Errorf("init transport: %w", err)
	}

	api := client.New(c.APIURL, transport, session.NewStore(), log)
	return newApp(api, log, os.Stdin, os.Stdout), nil
}

func newApp(api API, log logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{api: api, log: log, reader: bufio.NewReader(in), out: out}
}

func (a *App) isLoggedIn() bool {
	_, ok := a.api.Store().User().Username.Get()
	return ok
}

func (a *App) status() string {
	if name, ok := a.api.Store().User().Username.Get(); ok {
		return name
	}
	return "guest"
}

// Run restores an existing session if the server has one, then runs the
// REPL until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to the composition service CLI (type 'help' for commands)")

	if _, err := a.api.GetMe(ctx); err != nil {
		a.log.Debug(ctx, "no existing session", "error", err)
	}

	runREPL(ctx, a, a.status, a.reader, a.out)
}
