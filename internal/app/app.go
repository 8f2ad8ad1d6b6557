package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/five82/cerebro/internal/config"
	"github.com/five82/cerebro/internal/marvel"
	"github.com/five82/cerebro/internal/prefs"
	"github.com/five82/cerebro/internal/state"
	"github.com/five82/cerebro/internal/ui"
)

// Options configure a cerebro session.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/cerebro/prefs.toml
	Debug      bool   // log every request
}

// Session holds what the TUI and the one-shot commands share.
type Session struct {
	Config    config.Config
	Prefs     prefs.Prefs
	PrefsPath string
	Client    *marvel.Client
	Store     *state.Store
	Logger    *slog.Logger

	logFile io.Closer
}

// Open loads configuration and preferences, opens the session log and builds
// the catalog client.
func Open(opts Options) (*Session, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs, _ := prefs.Load(prefsPath)

	logger, logFile := openLog(cfg.LogFile, opts.Debug)
	store := &state.Store{}

	client, err := marvel.NewClient(marvel.Options{
		BaseURL:           cfg.APIBase,
		PublicKey:         cfg.PublicKey,
		PrivateKey:        cfg.PrivateKey,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Logger:            logger,
		Observer:          store,
	})
	if err != nil {
		if logFile != nil {
			_ = logFile.Close()
		}
		return nil, fmt.Errorf("init catalog client: %w", err)
	}

	if !cfg.HasCredentials() {
		logger.Warn("api keys not configured, requests are unsigned",
			slog.String("config", config.Path(opts.ConfigPath)),
		)
	}

	return &Session{
		Config:    cfg,
		Prefs:     userPrefs,
		PrefsPath: prefsPath,
		Client:    client,
		Store:     store,
		Logger:    logger,
		logFile:   logFile,
	}, nil
}

// Close flushes and closes the session log.
func (s *Session) Close() error {
	if s == nil || s.logFile == nil {
		return nil
	}
	return s.logFile.Close()
}

// Run boots the cerebro TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	session, err := Open(opts)
	if err != nil {
		return err
	}
	defer func() { _ = session.Close() }()

	session.Logger.Info("cerebro starting",
		slog.String("api_base", session.Config.APIBase),
		slog.String("theme", session.Prefs.Theme),
		slog.String("sort", string(session.Prefs.Sort)),
	)

	err = ui.Run(ui.Options{
		Context:   ctx,
		Client:    session.Client,
		Store:     session.Store,
		LogPath:   session.Config.LogFile,
		ThemeName: session.Prefs.Theme,
		Sort:      session.Prefs.Sort,
		PrefsPath: session.PrefsPath,
	})

	snap := session.Store.Snapshot()
	session.Logger.Info("cerebro stopped",
		slog.Int("requests", snap.Requests),
		slog.Int("failures", snap.Failures),
	)
	return err
}

// openLog opens the session log for appending. The terminal belongs to the
// TUI, so when the file cannot be opened logging is discarded.
func openLog(path string, debug bool) (*slog.Logger, io.Closer) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	if path == "" {
		return slog.New(slog.DiscardHandler), nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return slog.New(slog.DiscardHandler), nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return slog.New(slog.DiscardHandler), nil
	}
	return slog.New(slog.NewTextHandler(file, &slog.HandlerOptions{Level: level})), file
}
