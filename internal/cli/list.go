package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tejashwikalptaru/tunelist/internal/app"
	"github.com/tejashwikalptaru/tunelist/internal/command"
	"github.com/tejashwikalptaru/tunelist/internal/domain"
	"github.com/tejashwikalptaru/tunelist/internal/songlist"
)

var errNoServer = errors.New("--queue needs an MPD server (set mpd.enabled or pass --mpd)")

// pickList returns the server queue when queue is set, the library otherwise.
func pickList(a *app.Application, queue bool) (*songlist.Songlist, error) {
	if !queue {
		return a.Library(), nil
	}
	if !a.HasServer() {
		return nil, errNoServer
	}
	return a.Queue(), nil
}

func newListCmd(g *globals) *cobra.Command {
	var (
		queue  bool
		sort   string
		fields string
	)

	cmd := &cobra.Command{
		Use:   "ls [pattern]",
		Short: "List tracks, optionally filtered by a pattern",
		Long: `List the tracks of the library, or of the server queue with --queue.

A pattern keeps the tracks with a tag that contains its characters in order,
ignoring case. Use --fields to choose which tags are searched.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mask := domain.FieldsTags
			if fields != "" {
				m, err := domain.ParseFieldMask(strings.Split(fields, ","))
				if err != nil {
					return err
				}
				mask = m
			}

			return g.withApp(cmd, func(a *app.Application) error {
				list, err := pickList(a, queue)
				if err != nil {
					return err
				}
				if sort != "" && !list.SortString(sort) {
					return fmt.Errorf("no usable sort key in '%s'", sort)
				}
				if len(args) == 1 {
					list.FilterAdd(args[0], mask)
				}

				out := cmd.OutOrStdout()
				for i, t := range list.Tracks() {
					printTrack(out, i, t)
				}
				fmt.Fprintf(out, "%d tracks, %s\n", list.Len(), totalLength(list))
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&queue, "queue", "q", false, "List the server queue instead of the library")
	cmd.Flags().StringVarP(&sort, "sort", "s", "", "Sort keys, last one most significant (e.g. \"title artist\")")
	cmd.Flags().StringVarP(&fields, "fields", "f", "", "Comma separated tags the pattern is matched against")

	return cmd
}

func newNavigateCmd(g *globals, name, short string) *cobra.Command {
	var queue bool

	cmd := &cobra.Command{
		Use:   name,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withApp(cmd, func(a *app.Application) error {
				list, err := pickList(a, queue)
				if err != nil {
					return err
				}

				var (
					t  *domain.Track
					i  int
					ok bool
				)
				switch name {
				case "next":
					t, i, ok = list.Next()
				case "prev":
					t, i, ok = list.Prev()
				default:
					t, i, ok = list.Random()
				}
				if !ok {
					return domain.ErrNotFound
				}
				printTrack(cmd.OutOrStdout(), i, t)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&queue, "queue", "q", false, "Navigate the server queue instead of the library")
	return cmd
}

func newQueueCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "queue",
		Short: "Show how much of the queue is left after the playing track",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withApp(cmd, func(a *app.Application) error {
				list := a.Library()
				if a.HasServer() {
					list = a.Queue()
				}
				ql := list.QueueLength()
				fmt.Fprintf(cmd.OutOrStdout(), "%d tracks, %s remaining\n", ql.Count, length(domain.Seconds(ql.Seconds)))
				return nil
			})
		},
	}
}

func newCursorCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "cursor <command>...",
		Short: "Run cursor and selection commands over the library and show where the cursor lands",
		Long: `Run cursor commands one after another, starting at the first track.

Commands: up, down, pgup, pgdn, home, end, current, random,
nextof <field>, prevof <field>, or a relative offset such as -3.
Selection commands: select, unselect, toggle, select all, unselect all,
invert, and remove (deletes the selection, or the cursor track without one).
Quote commands that take an argument, e.g. tunelist cursor "nextof album".`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withApp(cmd, func(a *app.Application) error {
				for _, input := range args {
					var err error
					if command.IsEdit(input) {
						_, err = a.Selector().Run(input)
					} else {
						_, err = a.Cursor().Run(input)
					}
					if err != nil {
						return fmt.Errorf("%s: %w", input, err)
					}
				}
				list := a.Library()
				t := list.CursorTrack()
				if t == nil {
					return domain.ErrEmptyList
				}
				printTrack(cmd.OutOrStdout(), list.Cursor(), t)
				return nil
			})
		},
	}
}

func printTrack(w io.Writer, i int, t *domain.Track) {
	fmt.Fprintf(w, "%4d  %s  %s\n", i+1, describe(t), length(t.Duration))
}

func describe(t *domain.Track) string {
	switch {
	case t.Artist != "" && t.Title != "":
		return t.Artist + " - " + t.Title
	case t.Title != "":
		return t.Title
	case t.Name != "":
		return t.Name
	default:
		return t.File
	}
}

func length(d domain.Duration) string {
	if s := d.String(); s != "" {
		return s
	}
	return "--:--"
}

// totalLength sums the known durations of the visible tracks.
func totalLength(list *songlist.Songlist) string {
	total := 0
	for _, t := range list.Tracks() {
		if t.Duration.Known {
			total += t.Duration.Seconds
		}
	}
	return length(domain.Seconds(total))
}
