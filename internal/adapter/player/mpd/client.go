// Package mpd provides a PlayerStatus and a TrackSource backed by a Music
// Player Daemon server.
package mpd

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync"
	"time"

	gompd "github.com/fhs/gompd/v2/mpd"

	"github.com/tejashwikalptaru/tunelist/internal/domain"
	"github.com/tejashwikalptaru/tunelist/internal/ports"
)

// DefaultPollInterval is used when Config.PollInterval is zero.
const DefaultPollInterval = time.Second

// Config holds connection settings.
type Config struct {
	Network      string // "tcp" or "unix"
	Address      string
	Password     string
	PollInterval time.Duration
}

// conn is the part of the gompd client this package uses.
type conn interface {
	Status() (gompd.Attrs, error)
	CurrentSong() (gompd.Attrs, error)
	PlaylistInfo(start, end int) ([]gompd.Attrs, error)
	Ping() error
	Close() error
}

type dialFunc func(cfg Config) (conn, error)

func dialServer(cfg Config) (conn, error) {
	if cfg.Password != "" {
		return gompd.DialAuthenticated(cfg.Network, cfg.Address, cfg.Password)
	}
	return gompd.Dial(cfg.Network, cfg.Address)
}

// Client mirrors the server's playing song and repeat flag.
//
// The state is refreshed by Refresh, or periodically once Start has been
// called. Lists read it through CurrentTrack and Repeat.
//
// Thread-safety: This implementation is thread-safe.
type Client struct {
	cfg    Config
	logger *slog.Logger
	bus    ports.EventBus
	dial   dialFunc

	// connMu serializes requests on the connection
	connMu sync.Mutex
	conn   conn

	mu      sync.RWMutex
	current *domain.Track
	repeat  bool

	cancel context.CancelFunc
	done   chan struct{}
}

// NewClient creates a client. It does not connect. bus may be nil.
func NewClient(cfg Config, bus ports.EventBus, logger *slog.Logger) *Client {
	return newClient(cfg, bus, logger, dialServer)
}

func newClient(cfg Config, bus ports.EventBus, logger *slog.Logger, dial dialFunc) *Client {
	if cfg.Network == "" {
		cfg.Network = "tcp"
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		cfg:    cfg,
		logger: logger.With(slog.String("component", "mpd"), slog.String("address", cfg.Address)),
		bus:    bus,
		dial:   dial,
	}
}

// Connect opens the connection and loads the initial status.
func (c *Client) Connect(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.connMu.Lock()
	if c.conn == nil {
		cn, err := c.dial(c.cfg)
		if err != nil {
			c.connMu.Unlock()
			return domain.NewAdapterError("mpd", "dial", c.cfg.Address, err)
		}
		c.conn = cn
	}
	c.connMu.Unlock()

	c.logger.Debug("connected")
	return c.Refresh(ctx)
}

// Refresh reads the server status and publishes a player change event when
// the playing song or the repeat flag changed.
func (c *Client) Refresh(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.connMu.Lock()
	if c.conn == nil {
		c.connMu.Unlock()
		return domain.ErrNotConnected
	}
	status, err := c.conn.Status()
	if err != nil {
		c.connMu.Unlock()
		return domain.NewAdapterError("mpd", "status", c.cfg.Address, err)
	}
	var song gompd.Attrs
	if status["state"] == "play" || status["state"] == "pause" {
		song, err = c.conn.CurrentSong()
		if err != nil {
			c.connMu.Unlock()
			return domain.NewAdapterError("mpd", "currentsong", c.cfg.Address, err)
		}
	}
	c.connMu.Unlock()

	var current *domain.Track
	if len(song) > 0 {
		t := trackFromAttrs(song)
		current = &t
	}
	repeat := status["repeat"] == "1"

	c.mu.Lock()
	changed := repeat != c.repeat || !sameSong(current, c.current)
	c.current = current
	c.repeat = repeat
	c.mu.Unlock()

	if changed {
		c.logger.Debug("player state changed",
			slog.String("state", status["state"]),
			slog.Bool("repeat", repeat))
		if c.bus != nil {
			c.bus.Publish(domain.NewPlayerChangedEvent(copyTrack(current), repeat))
		}
	}
	return nil
}

// Start refreshes the status every poll interval until ctx is done or Close
// is called. Refresh failures are logged and polling continues.
func (c *Client) Start(ctx context.Context) {
	c.mu.Lock()
	if c.cancel != nil {
		c.mu.Unlock()
		return
	}
	ctx, c.cancel = context.WithCancel(ctx)
	c.done = make(chan struct{})
	done := c.done
	c.mu.Unlock()

	go c.poll(ctx, done)
}

func (c *Client) poll(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(c.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.Refresh(ctx); err != nil && !errors.Is(err, context.Canceled) {
				c.logger.Warn("status refresh failed", slog.Any("error", err))
			}
		}
	}
}

// Close stops polling and closes the connection.
func (c *Client) Close() error {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.cancel, c.done = nil, nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}

	c.connMu.Lock()
	defer c.connMu.Unlock()
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	if err != nil {
		return domain.NewAdapterError("mpd", "close", c.cfg.Address, err)
	}
	return nil
}

// Ping checks that the server still answers.
func (c *Client) Ping() error {
	c.connMu.Lock()
	defer c.connMu.Unlock()
	if c.conn == nil {
		return domain.ErrNotConnected
	}
	if err := c.conn.Ping(); err != nil {
		return domain.NewAdapterError("mpd", "ping", c.cfg.Address, err)
	}
	return nil
}

// CurrentTrack returns a copy of the playing song, or nil when stopped.
func (c *Client) CurrentTrack() *domain.Track {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return copyTrack(c.current)
}

// Repeat reports the server's repeat flag.
func (c *Client) Repeat() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.repeat
}

// Tracks returns the server's play queue in queue order. Every track carries
// its server id and queue position.
func (c *Client) Tracks(ctx context.Context) ([]domain.Track, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.connMu.Lock()
	defer c.connMu.Unlock()
	if c.conn == nil {
		return nil, domain.ErrNotConnected
	}
	infos, err := c.conn.PlaylistInfo(-1, -1)
	if err != nil {
		return nil, domain.NewAdapterError("mpd", "playlistinfo", c.cfg.Address, err)
	}

	tracks := make([]domain.Track, 0, len(infos))
	for _, attrs := range infos {
		tracks = append(tracks, trackFromAttrs(attrs))
	}
	return tracks, nil
}

// trackFromAttrs converts a song response into a track.
func trackFromAttrs(a gompd.Attrs) domain.Track {
	t := domain.Track{
		File:            a["file"],
		Title:           a["Title"],
		Artist:          a["Artist"],
		AlbumArtist:     a["AlbumArtist"],
		Composer:        a["Composer"],
		Performer:       a["Performer"],
		Album:           a["Album"],
		Genre:           a["Genre"],
		Date:            a["Date"],
		Comment:         a["Comment"],
		TrackNumber:     a["Track"],
		Disc:            a["Disc"],
		ArtistSort:      a["ArtistSort"],
		AlbumArtistSort: a["AlbumArtistSort"],
		Name:            a["Name"],
	}
	if len(t.Date) >= 4 {
		t.Year = t.Date[:4]
	}

	if d, err := strconv.ParseFloat(a["duration"], 64); err == nil {
		t.Duration = domain.Seconds(int(d))
	} else if secs, err := strconv.Atoi(a["Time"]); err == nil {
		t.Duration = domain.Seconds(secs)
	}
	if id, err := strconv.Atoi(a["Id"]); err == nil {
		t.ID = domain.WithID(id)
	}
	if pos, err := strconv.Atoi(a["Pos"]); err == nil {
		t.Pos = domain.At(pos)
	}
	return t
}

func sameSong(a, b *domain.Track) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.File == b.File && a.ID == b.ID && a.Pos == b.Pos
}

func copyTrack(t *domain.Track) *domain.Track {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// Verify that Client implements the PlayerStatus and TrackSource interfaces
var (
	_ ports.PlayerStatus = (*Client)(nil)
	_ ports.TrackSource  = (*Client)(nil)
)
