package app

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/five82/concepta/internal/backend"
	"github.com/five82/concepta/internal/config"
	"github.com/five82/concepta/internal/logging"
	"github.com/five82/concepta/internal/prefs"
	"github.com/five82/concepta/internal/state"
	"github.com/five82/concepta/internal/storage"
	"github.com/five82/concepta/internal/ui"
)

// Options configure the Concepta application.
type Options struct {
	ConfigPath string
	Model      string // overrides config and saved settings when set
	BackendURL string // overrides config when set
	APIURL     string // overrides config and saved settings when set
	Debug      bool
}

// Env holds the wired components shared by the TUI and the one-shot
// commands.
type Env struct {
	Config  config.Config
	Logger  *zap.Logger
	KV      storage.KV
	Prefs   *prefs.Store
	Client  *backend.Client
	Store   *state.Store
	closers []func()
}

// Open loads configuration and wires logging, storage, the backend client
// and the state store. Saved preferences are applied to the store.
func Open(opts Options) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if v := strings.TrimSpace(opts.BackendURL); v != "" {
		cfg.BackendURL = v
	}
	if v := strings.TrimSpace(opts.Model); v != "" {
		cfg.Model = v
	}
	if v := strings.TrimSpace(opts.APIURL); v != "" {
		cfg.APIURL = v
	}

	env := &Env{Config: cfg}

	logger, closeLog, err := logging.New(logging.Options{Path: cfg.LogFile, Debug: opts.Debug})
	if err != nil {
		// Logging is best effort; the client works without it.
		logger = zap.NewNop()
	} else {
		env.closers = append(env.closers, closeLog)
	}
	env.Logger = logger

	client, err := backend.NewClient(cfg.BackendURL)
	if err != nil {
		env.Close()
		return nil, fmt.Errorf("init backend client: %w", err)
	}
	env.Client = client

	env.KV = openKV(cfg.DatabasePath(), logger)
	env.closers = append(env.closers, func() { _ = env.KV.Close() })
	env.Prefs = prefs.New(env.KV, logger)

	env.Store = state.New(state.Defaults{
		Model:      cfg.Model,
		APIURL:     cfg.APIURL,
		BackendURL: client.BaseURL(),
		Theme:      state.ThemeDark,
	}, nil)
	restorePrefs(env.Store, env.Prefs, logger)
	if v := strings.TrimSpace(opts.Model); v != "" {
		env.Store.SetModel(v)
	}
	if v := strings.TrimSpace(opts.APIURL); v != "" {
		env.Store.SetAPIURL(v)
	}

	logger.Info("concepta starting",
		zap.String("backend_url", client.BaseURL()),
		zap.String("api_url", env.Store.Snapshot().APIURL),
		zap.String("model", env.Store.Snapshot().Model),
		zap.String("data_dir", cfg.DataDir),
	)
	return env, nil
}

// Close releases the storage and flushes the log, in reverse open order.
func (e *Env) Close() {
	if e == nil {
		return
	}
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i]()
	}
	e.closers = nil
}

// Run boots the Concepta TUI until the user quits or the context is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	env, err := Open(opts)
	if err != nil {
		return err
	}
	defer env.Close()

	return ui.Run(ui.Options{
		Context: ctx,
		Gateway: env.Client,
		Store:   env.Store,
		Prefs:   env.Prefs,
		Logger:  env.Logger,
	})
}

// openKV opens the on-disk database, falling back to memory so a broken
// data directory never stops the UI. Nothing persists across runs then.
func openKV(path string, logger *zap.Logger) storage.KV {
	db, err := storage.OpenSQLite(path)
	if err != nil {
		logger.Warn("local storage unavailable, preferences will not persist",
			zap.String("path", path),
			zap.Error(err),
		)
		return storage.NewMemory()
	}
	return db
}

// restorePrefs applies saved settings, then the separately saved theme,
// which takes precedence. Missing or malformed values leave defaults.
func restorePrefs(store *state.Store, p *prefs.Store, logger *zap.Logger) {
	if res := p.LoadSettings(); res.OK() {
		theme, _ := state.ParseTheme(res.Value.Theme)
		store.ApplySettings(theme, res.Value.Model, res.Value.APIURL)
	} else if res.Status == prefs.StatusMalformed {
		logger.Warn("ignoring saved settings", zap.Error(res.Err))
	}

	if res := p.LoadTheme(); res.OK() {
		if theme, ok := state.ParseTheme(res.Value); ok {
			store.SetTheme(theme)
		}
	}
}
