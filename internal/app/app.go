// Package app provides application-level orchestration and dependency injection.
// This package wires together all components and manages the application lifecycle.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/tejashwikalptaru/tunelist/internal/adapter/eventbus"
	"github.com/tejashwikalptaru/tunelist/internal/adapter/metadata"
	"github.com/tejashwikalptaru/tunelist/internal/adapter/player/memory"
	"github.com/tejashwikalptaru/tunelist/internal/adapter/player/mpd"
	"github.com/tejashwikalptaru/tunelist/internal/adapter/random"
	"github.com/tejashwikalptaru/tunelist/internal/command"
	"github.com/tejashwikalptaru/tunelist/internal/config"
	"github.com/tejashwikalptaru/tunelist/internal/domain"
	"github.com/tejashwikalptaru/tunelist/internal/logger"
	"github.com/tejashwikalptaru/tunelist/internal/ports"
	"github.com/tejashwikalptaru/tunelist/internal/songlist"
)

// Application is the root application structure that holds all dependencies.
//
// The Application struct is responsible for:
// - Creating and wiring all dependencies
// - Loading the library and the server queue into lists
// - Managing the application lifecycle (startup, shutdown)
type Application struct {
	logger   *slog.Logger
	settings *config.Config

	// Infrastructure
	eventBus *eventbus.SyncEventBus
	player   ports.PlayerStatus
	local    *memory.Player // set when no server is configured
	server   *mpd.Client    // set when MPD is enabled
	random   ports.RandomSource

	// Lists
	library  *songlist.Songlist
	queue    *songlist.Songlist
	cursor   *command.Cursor
	selector *command.Selector

	shutdownOnce sync.Once
}

// Config holds application configuration.
type Config struct {
	// Settings is the loaded configuration file
	Settings *config.Config

	// LogOutput receives log output (nil for stderr)
	LogOutput io.Writer

	// Random replaces the default random source (nil for the default)
	Random ports.RandomSource
}

// DefaultConfig returns the default application configuration.
func DefaultConfig() Config {
	return Config{Settings: config.Default()}
}

// NewApplication creates a new application with all dependencies wired.
// Nothing touches the network or the disk until Start.
func NewApplication(cfg Config) (*Application, error) {
	if cfg.Settings == nil {
		cfg.Settings = config.Default()
	}
	if err := cfg.Settings.Validate(); err != nil {
		return nil, err
	}
	app := &Application{settings: cfg.Settings}

	// Step 1: Create logger
	loggerCfg := cfg.Settings.LoggerConfig()
	loggerCfg.Output = cfg.LogOutput
	app.logger = logger.NewLogger(loggerCfg)
	info := GetVersionInfo()
	app.logger.Debug("initializing application", slog.String("version", info.FullString()))

	// Step 2: Create an event bus
	app.eventBus = eventbus.NewSyncEventBus()
	app.eventBus.SetLogger(app.logger.With(slog.String("component", "eventbus")))
	app.eventBus.SubscribeAll(app.logEvent)

	// Step 3: Create the player status source
	if cfg.Settings.MPD.Enabled {
		app.server = mpd.NewClient(mpd.Config{
			Network:      cfg.Settings.MPD.Network,
			Address:      cfg.Settings.MPD.Address,
			Password:     cfg.Settings.MPD.Password,
			PollInterval: cfg.Settings.MPD.PollInterval,
		}, app.eventBus, app.logger)
		app.player = app.server
	} else {
		app.local = memory.NewPlayer(app.eventBus)
		app.local.SetLogger(app.logger.With(slog.String("component", "player")))
		app.player = app.local
	}

	// Step 4: Random source
	app.random = cfg.Random
	if app.random == nil {
		app.random = random.New()
	}

	// Step 5: Create lists
	opts := cfg.Settings.ListOptions()
	app.library = songlist.New(domain.RolePlaylist, opts, app.player, app.random, app.eventBus, app.logger)
	app.queue = songlist.New(domain.RoleQueue, opts, app.player, app.random, app.eventBus, app.logger)
	app.cursor = command.NewCursor(app.library, app.player, app.random, cfg.Settings.PageSize, app.logger)
	app.selector = command.NewSelector(app.library, app.logger)

	return app, nil
}

// Start loads the library from the configured directory and, when a server
// is configured, connects, loads its queue and starts following its status.
func (a *Application) Start(ctx context.Context) error {
	if dir := a.settings.LibraryDir; dir != "" {
		scanner := metadata.NewScanner(dir, a.eventBus, a.logger)
		if _, err := a.Load(ctx, a.library, scanner); err != nil {
			return fmt.Errorf("failed to load library: %w", err)
		}
		if keys := a.settings.SortKeys(); len(keys) > 0 {
			a.library.Sort(keys)
		}
	}

	if a.server == nil {
		return nil
	}
	if err := a.server.Connect(ctx); err != nil {
		return err
	}
	if _, err := a.Load(ctx, a.queue, a.server); err != nil {
		return fmt.Errorf("failed to load queue: %w", err)
	}
	a.server.Start(ctx)
	return nil
}

// Load replaces the contents of list with the tracks of src and returns the
// number of tracks added.
func (a *Application) Load(ctx context.Context, list *songlist.Songlist, src ports.TrackSource) (int, error) {
	tracks, err := src.Tracks(ctx)
	if err != nil {
		return 0, err
	}

	list.Clear()
	for i := range tracks {
		if _, err := list.Add(&tracks[i]); err != nil {
			return i, err
		}
	}

	a.logger.Info("list loaded",
		slog.String("role", list.Role().String()),
		slog.Int("tracks", list.MasterLen()),
		slog.Int("seconds", list.Duration()))
	return list.MasterLen(), nil
}

// logEvent traces every event at debug level.
func (a *Application) logEvent(event domain.Event) {
	a.logger.Debug("event", slog.String("type", string(event.Type())))
}

// Library returns the list of scanned files.
func (a *Application) Library() *songlist.Songlist {
	return a.library
}

// Queue returns the list mirroring the server's play queue.
func (a *Application) Queue() *songlist.Songlist {
	return a.queue
}

// Cursor returns the cursor command runner for the library.
func (a *Application) Cursor() *command.Cursor {
	return a.cursor
}

// Selector returns the selection command runner for the library.
func (a *Application) Selector() *command.Selector {
	return a.selector
}

// Player returns the player status source.
func (a *Application) Player() ports.PlayerStatus {
	return a.player
}

// LocalPlayer returns the in-memory player, or nil when a server is used.
func (a *Application) LocalPlayer() *memory.Player {
	return a.local
}

// EventBus returns the application event bus.
func (a *Application) EventBus() ports.FilteringEventBus {
	return a.eventBus
}

// Logger returns the application logger.
func (a *Application) Logger() *slog.Logger {
	return a.logger
}

// Settings returns the configuration the application was built with.
func (a *Application) Settings() *config.Config {
	return a.settings
}

// HasServer reports whether the application follows an MPD server.
func (a *Application) HasServer() bool {
	return a.server != nil
}

// Shutdown stops the server poller, closes the connection and the event bus.
// It is safe to call more than once.
func (a *Application) Shutdown() error {
	var err error
	a.shutdownOnce.Do(func() {
		a.logger.Debug("shutting down application")

		if a.server != nil {
			if closeErr := a.server.Close(); closeErr != nil {
				a.logger.Warn("failed to close server connection", slog.Any("error", closeErr))
				err = closeErr
			}
		}

		if closeErr := a.eventBus.Close(); closeErr != nil && err == nil {
			err = closeErr
		}

		a.logger.Debug("application shutdown complete")
	})
	return err
}
