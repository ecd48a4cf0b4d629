package cli

import (
	"bufio"
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/storyfeed/internal/client/client"
	"github.com/dmitrijs2005/storyfeed/internal/client/config"
	"github.com/dmitrijs2005/storyfeed/internal/client/repositories/session"
	"github.com/dmitrijs2005/storyfeed/internal/client/services"
	"github.com/dmitrijs2005/storyfeed/internal/logging"

	_ "modernc.org/sqlite"
)

// App wires the storyfeed CLI together: configuration, the local session
// database, the API client and the sync services, plus the interactive
// REPL on top of them.
type App struct {
	config    *config.Config
	session   services.SessionService
	catalog   services.CatalogService
	favorites services.FavoritesService
	api       client.Client
	db        *sql.DB
	reader    *bufio.Reader
	log       logging.Logger
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	db, err := client.InitDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		log.Error(ctx, "error initializing session database", "err", err)
		return nil, err
	}

	apiClient := client.NewHTTPClient(c.ServerBaseURL, c.RequestTimeout)

	catalog := services.NewCatalogService(apiClient)

	return &App{
		config:    c,
		session:   services.NewSessionService(apiClient, session.NewSQLiteRepository(db)),
		catalog:   catalog,
		favorites: services.NewFavoritesService(apiClient, catalog),
		api:       apiClient,
		db:        db,
		reader:    bufio.NewReader(os.Stdin),
		log:       log,
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.session.Current() != nil
}

// Run performs the startup flow (restore the persisted session, load the
// shared story list) and hands control to the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	if err := a.api.Ping(ctx); err != nil {
		a.log.Warn(ctx, "server not reachable", "url", a.config.ServerBaseURL, "err", err)
	}

	user, err := a.session.Restore(ctx)
	if err != nil {
		a.log.Warn(ctx, "could not restore session", "err", err)
	}
	if user != nil {
		printlnFn("Welcome back, " + user.Name + "!")
	}

	if _, err := a.catalog.LoadAll(ctx); err != nil {
		a.log.Warn(ctx, "could not load stories", "err", err)
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

// Close releases the local database and API client resources.
func (a *App) Close() {
	if err := a.api.Close(); err != nil {
		a.log.Warn(context.Background(), "closing api client", "err", err)
	}
	if err := a.db.Close(); err != nil {
		a.log.Warn(context.Background(), "closing session database", "err", err)
	}
}

func (a *App) status() string {
	if u := a.session.Current(); u != nil {
		return u.Username
	}
	return "anonymous"
}
