package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/vetdesk/vetdesk/internal/client/api"
	"github.com/vetdesk/vetdesk/internal/client/auth"
	"github.com/vetdesk/vetdesk/internal/client/config"
	"github.com/vetdesk/vetdesk/internal/client/recovery"
	"github.com/vetdesk/vetdesk/internal/client/router"
	"github.com/vetdesk/vetdesk/internal/client/session"
	"github.com/vetdesk/vetdesk/internal/client/storage"
	"github.com/vetdesk/vetdesk/internal/client/tokenstore"
	"github.com/vetdesk/vetdesk/internal/logging"

	_ "modernc.org/sqlite"
)

// App wires the client together: session context, login dispatcher,
// recovery machine and route navigation, all over one local database and
// one API client.
type App struct {
	config *config.Config
	log    logging.Logger

	db         *sql.DB
	session    *session.Context
	nav        *router.History
	dispatcher *auth.Dispatcher
	recovery   *recovery.Machine

	reader *bufio.Reader
}

func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := storage.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	store := tokenstore.NewSQLiteStore(db)
	sess := session.NewContext(store, log)
	nav := router.NewHistory()
	apiClient := api.NewHTTPClient(cfg.ServerBaseURL)

	a := &App{
		config:  cfg,
		log:     log,
		db:      db,
		session: sess,
		nav:     nav,
		reader:  bufio.NewReader(os.Stdin),
	}
	a.dispatcher = auth.NewDispatcher(apiClient, store, sess, nav, log)
	a.recovery = recovery.NewMachine(apiClient, log, func() {
		nav.Navigate(router.RouteLogin)
	})
	return a, nil
}

// Run restores the session from the local store and enters the REPL.
func (a *App) Run(ctx context.Context) {
	if err := a.session.Restore(ctx); err != nil {
		// an unreadable store means starting logged out, not crashing
		a.log.Warn(ctx, "session restore failed", "err", err)
	}

	if s := a.session.Current(); s.Authenticated() {
		// role is not persisted, so land on the generic home view
		a.nav.Navigate(router.RouteHome)
		printlnFn(fmt.Sprintf("Welcome back, %s", s.Email))
	}

	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
}

func (a *App) Close() error {
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.session.Current().Authenticated()
}

// status renders the REPL prompt suffix: email when logged in, plus the
// current route.
func (a *App) status() string {
	s := a.session.Current()
	if s.Authenticated() {
		return fmt.Sprintf("(%s) %s", s.Email, a.nav.Current())
	}
	return string(a.nav.Current())
}
