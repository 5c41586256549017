package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/specialistvlad/mpipgo/internal/ctxlog"
	"github.com/specialistvlad/mpipgo/internal/hcl_adapter"
	"github.com/specialistvlad/mpipgo/internal/mpip"
	"github.com/specialistvlad/mpipgo/internal/notify"
	"github.com/specialistvlad/mpipgo/internal/store"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	ctx    context.Context
	config *Config
	parser *mpip.Parser
	status *runStatus

	// openStore connects to the persistence backend; tests replace it.
	openStore func(ctx context.Context, cfg *Config) (store.Store, error)
	// dialNotifier connects to the notification server; tests replace it.
	dialNotifier func(ctx context.Context, url string) (*notify.Publisher, error)

	httpServer *http.Server
}

// Option customizes an App.
type Option func(*App)

// WithStore makes the App upload into s instead of opening the database
// named in the credentials file.
func WithStore(s store.Store) Option {
	return func(a *App) {
		a.openStore = func(context.Context, *Config) (store.Store, error) { return s, nil }
	}
}

// WithParser replaces the parser built from the configuration.
func WithParser(p *mpip.Parser) Option {
	return func(a *App) {
		a.parser = p
	}
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger. A rules file that
// cannot be loaded is a fatal startup error and panics.
func NewApp(outW io.Writer, cfg *Config, opts ...Option) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	var rules []mpip.InterfaceRule
	if cfg.RulesPath != "" {
		loaded, err := hcl_adapter.NewLoader().LoadRules(ctx, cfg.RulesPath)
		if err != nil {
			panic(fmt.Errorf("failed to load interface rules: %w", err))
		}
		rules = loaded
		logger.Debug("Interface rules loaded.", "rules", len(rules))
	}

	a := &App{
		outW:         outW,
		logger:       logger,
		ctx:          ctx,
		config:       cfg,
		parser:       mpip.NewParser(mpip.NewClassifier(rules), cfg.InterfaceOverride),
		status:       &runStatus{},
		openStore:    openGormStore,
		dialNotifier: dialNotifier,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func openGormStore(ctx context.Context, cfg *Config) (store.Store, error) {
	creds, err := store.LoadCredentials(cfg.CredentialsPath)
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("Connecting to database.", "host", creds.Database.Host, "dbname", creds.Database.DBName)
	return store.Open(creds)
}

func dialNotifier(ctx context.Context, url string) (*notify.Publisher, error) {
	return notify.Dial(ctx, notify.Options{URL: url})
}
