// Package cli provides the tunelist command-line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tejashwikalptaru/tunelist/internal/app"
	"github.com/tejashwikalptaru/tunelist/internal/config"
)

// globals holds the persistent flags and the configuration they produce.
type globals struct {
	cfgFile    string
	libraryDir string
	logLevel   string
	mpdAddr    string

	settings *config.Config
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/tunelist/config.yaml, or a path
// relative to the working directory when no config directory is known.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "tunelist.yaml"
	}
	return filepath.Join(dir, "tunelist", "config.yaml")
}

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	g := &globals{}

	rootCmd := &cobra.Command{
		Use:   "tunelist",
		Short: "Browse, filter and navigate music lists",
		Long: `tunelist builds lists from a music directory or an MPD server queue
and answers questions about them: what plays next, how long the rest of
the queue runs, where the cursor lands.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.load(cmd)
		},
	}

	info := app.GetVersionInfo()
	rootCmd.Version = info.FullString()

	rootCmd.PersistentFlags().StringVarP(&g.cfgFile, "config", "c", DefaultConfigPath(), "Configuration file path")
	rootCmd.PersistentFlags().StringVarP(&g.libraryDir, "library", "l", "", "Music directory to scan (overrides config)")
	rootCmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().StringVar(&g.mpdAddr, "mpd", "", "MPD address; enables the server (overrides config)")

	rootCmd.AddCommand(
		newListCmd(g),
		newNavigateCmd(g, "next", "Show the track after the playing one"),
		newNavigateCmd(g, "prev", "Show the track before the playing one"),
		newNavigateCmd(g, "random", "Pick a random track other than the playing one"),
		newQueueCmd(g),
		newCursorCmd(g),
		newConfigCmd(g),
	)

	return rootCmd
}

func (g *globals) load(cmd *cobra.Command) error {
	settings, err := config.Load(g.cfgFile)
	if err != nil {
		return err
	}

	if g.libraryDir != "" {
		settings.LibraryDir = g.libraryDir
	}
	if g.logLevel != "" {
		settings.Log.Level = g.logLevel
	}
	if g.mpdAddr != "" {
		settings.MPD.Enabled = true
		settings.MPD.Address = g.mpdAddr
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	g.settings = settings
	return nil
}

// withApp builds and starts the application, runs fn and shuts it down.
func (g *globals) withApp(cmd *cobra.Command, fn func(a *app.Application) error) (err error) {
	a, err := app.NewApplication(app.Config{
		Settings:  g.settings,
		LogOutput: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	defer func() {
		if shutdownErr := a.Shutdown(); shutdownErr != nil && err == nil {
			err = shutdownErr
		}
	}()

	if err := a.Start(cmd.Context()); err != nil {
		return err
	}
	return fn(a)
}

func newConfigCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := g.settings.YAML()
			if err != nil {
				return fmt.Errorf("failed to render config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
