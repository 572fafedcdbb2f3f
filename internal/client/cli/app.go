package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/chrisdutt24/lifeadmin/internal/auth"
	"github.com/chrisdutt24/lifeadmin/internal/client/config"
	"github.com/chrisdutt24/lifeadmin/internal/client/models"
	"github.com/chrisdutt24/lifeadmin/internal/client/services"
	"github.com/chrisdutt24/lifeadmin/internal/client/storage"
	"github.com/chrisdutt24/lifeadmin/internal/logging"
	"github.com/chrisdutt24/lifeadmin/internal/presign"
	"github.com/chrisdutt24/lifeadmin/internal/timex"
)

// documentResolver turns stored s3:// references into download URLs.
type documentResolver interface {
	Resolve(ctx context.Context, ref string) (string, error)
}

type App struct {
	config     *config.Config
	db         *storage.Database
	store      *storage.JSONStore
	log        logging.Logger
	clock      timex.Clock
	httpClient *http.Client

	authService services.AuthService
	settings    services.SettingsService
	resolver    documentResolver

	user      *models.User
	ws        *services.Workspace
	dashboard services.DashboardService

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the configured database and builds the services.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log, err := logging.New(c.LogFormat, c.LogLevel, os.Stderr)
	if err != nil {
		return nil, err
	}

	db, err := storage.InitDatabase(ctx, c.DBDriver, c.DSN)
	if err != nil {
		log.Error(ctx, "error initializing database", "driver", c.DBDriver, "error", err)
		return nil, err
	}

	a := newApp(c, storage.NewJSONStore(db.KV, log), log, timex.SystemClock{})
	a.db = db
	a.resolver = presign.NewResolver(presign.Config{
		Region:   c.S3Region,
		Endpoint: c.S3Endpoint,
		User:     c.S3User,
		Password: c.S3Password,
	})
	return a, nil
}

func newApp(c *config.Config, store *storage.JSONStore, log logging.Logger, clock timex.Clock) *App {
	signer := auth.NewSigner([]byte(c.SecretKey), c.SessionValidity, clock)
	return &App{
		config:      c,
		store:       store,
		log:         log,
		clock:       clock,
		httpClient:  http.DefaultClient,
		authService: services.NewAuthService(store, signer, log),
		settings:    services.NewSettingsService(store),
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}
}

// Run restores the stored session, if any, and blocks in the REPL.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.println("Welcome to lifeadmin (type 'help' for commands)")
	if err := a.restoreSession(ctx); err != nil {
		a.log.Debug(ctx, "no session restored", "error", err)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
	if z, ok := a.log.(*logging.ZapLogger); ok {
		_ = z.Sync()
	}
}

func (a *App) isLoggedIn() bool {
	return a.ws != nil
}

func (a *App) getStatus() string {
	if a.user == nil {
		return ""
	}
	return fmt.Sprintf("(%s)", a.user.Email)
}

func (a *App) restoreSession(ctx context.Context) error {
	u, err := a.authService.Me(ctx)
	if err != nil {
		return err
	}
	return a.openSession(ctx, u)
}

// openSession loads the workspace of u.
func (a *App) openSession(ctx context.Context, u models.User) error {
	ws, err := services.OpenWorkspace(ctx, a.store, u.ID, services.Options{Clock: a.clock, Logger: a.log})
	if err != nil {
		return err
	}
	a.user = &u
	a.ws = ws
	a.dashboard = services.NewDashboardService(ws, a.settings, a.clock)
	return nil
}

func (a *App) closeSession() {
	a.user = nil
	a.ws = nil
	a.dashboard = nil
}

var errNotLoggedIn = errors.New("please log in first")

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
