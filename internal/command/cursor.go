// Package command parses and runs cursor movement commands against a list.
//
// The vocabulary is the one typed at the prompt or bound to keys:
//
//	up, down              move by one record
//	pgup, pgdn            move by one page
//	home, end             jump to the first or last record
//	current               jump to the playing record
//	random                jump to a random record
//	nextof <field>        jump to the next record with a different field value
//	prevof <field>        jump to the start of the previous field group
//	<number>              move by a relative offset, e.g. -3 or 10
package command

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/tejashwikalptaru/tunelist/internal/domain"
	"github.com/tejashwikalptaru/tunelist/internal/ports"
	"github.com/tejashwikalptaru/tunelist/internal/songlist"
)

// Kind is the kind of cursor movement.
type Kind int

const (
	KindRelative Kind = iota
	KindPage
	KindHome
	KindEnd
	KindCurrent
	KindRandom
	KindNextOf
	KindPrevOf
)

var kindNames = map[Kind]string{
	KindRelative: "relative",
	KindPage:     "page",
	KindHome:     "home",
	KindEnd:      "end",
	KindCurrent:  "current",
	KindRandom:   "random",
	KindNextOf:   "nextof",
	KindPrevOf:   "prevof",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Move is a parsed cursor command.
type Move struct {
	Kind   Kind
	Offset int    // records for KindRelative, pages for KindPage
	Field  string // for KindNextOf and KindPrevOf
}

const usage = "try one of: up, down, pgup, pgdn, home, end, current, random, nextof <field>, prevof <field>, <number>"

// Parse turns input into a Move.
// Errors wrap domain.ErrUnknownCommand.
func Parse(input string) (Move, error) {
	words := strings.Fields(input)
	if len(words) == 0 {
		return Move{}, fmt.Errorf("%w: expected cursor offset, %s", domain.ErrUnknownCommand, usage)
	}

	verb := strings.ToLower(words[0])
	switch verb {
	case "nextof", "prevof":
		if len(words) != 2 {
			return Move{}, fmt.Errorf("%w: %s takes exactly one field name", domain.ErrUnknownCommand, verb)
		}
		if _, ok := domain.LookupField(words[1]); !ok {
			return Move{}, fmt.Errorf("%w: unknown field '%s'", domain.ErrUnknownCommand, words[1])
		}
		kind := KindNextOf
		if verb == "prevof" {
			kind = KindPrevOf
		}
		return Move{Kind: kind, Field: words[1]}, nil
	}

	if len(words) > 1 {
		return Move{}, fmt.Errorf("%w: unexpected '%s' after '%s'", domain.ErrUnknownCommand, words[1], words[0])
	}

	switch verb {
	case "up":
		return Move{Kind: KindRelative, Offset: -1}, nil
	case "down":
		return Move{Kind: KindRelative, Offset: 1}, nil
	case "pgup", "pageup":
		return Move{Kind: KindPage, Offset: -1}, nil
	case "pgdn", "pagedn", "pagedown":
		return Move{Kind: KindPage, Offset: 1}, nil
	case "home":
		return Move{Kind: KindHome}, nil
	case "end":
		return Move{Kind: KindEnd}, nil
	case "current":
		return Move{Kind: KindCurrent}, nil
	case "random":
		return Move{Kind: KindRandom}, nil
	}

	n, err := strconv.Atoi(verb)
	if err != nil {
		return Move{}, fmt.Errorf("%w: '%s' is not recognized and is not a number, %s", domain.ErrUnknownCommand, words[0], usage)
	}
	return Move{Kind: KindRelative, Offset: n}, nil
}

// Cursor runs moves against one list.
type Cursor struct {
	list     *songlist.Songlist
	player   ports.PlayerStatus
	random   ports.RandomSource
	pageSize int
	logger   *slog.Logger
}

// NewCursor creates a command runner. pageSize is the number of records a
// page move covers; values below one are treated as one.
func NewCursor(list *songlist.Songlist, player ports.PlayerStatus, random ports.RandomSource, pageSize int, logger *slog.Logger) *Cursor {
	if pageSize < 1 {
		pageSize = 1
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Cursor{
		list:     list,
		player:   player,
		random:   random,
		pageSize: pageSize,
		logger:   logger.With(slog.String("component", "cursor")),
	}
}

// Run parses input and executes it.
func (c *Cursor) Run(input string) (int, error) {
	m, err := Parse(input)
	if err != nil {
		return c.list.Cursor(), err
	}
	return c.Execute(m)
}

// Execute applies m and returns the new cursor index. On error the cursor
// does not move.
func (c *Cursor) Execute(m Move) (int, error) {
	c.logger.Debug("cursor move",
		slog.String("kind", m.Kind.String()),
		slog.Int("offset", m.Offset),
		slog.String("field", m.Field))

	switch m.Kind {
	case KindRelative:
		return c.list.MoveCursor(m.Offset), nil

	case KindPage:
		return c.list.MoveCursor(m.Offset * c.pageSize), nil

	case KindHome:
		return c.list.SetCursor(0), nil

	case KindEnd:
		return c.list.SetCursor(c.list.Len() - 1), nil

	case KindCurrent:
		if c.player == nil || c.player.CurrentTrack() == nil {
			return c.list.Cursor(), domain.ErrNotPlaying
		}
		if !c.list.GotoCurrent() {
			return c.list.Cursor(), domain.ErrNotFound
		}
		return c.list.Cursor(), nil

	case KindRandom:
		if c.list.Len() == 0 {
			return c.list.Cursor(), domain.ErrEmptyList
		}
		if c.random == nil {
			return c.list.Cursor(), domain.NewServiceError("Cursor", "random", "no random source", nil)
		}
		i, ok := songlist.RandomIndex(c.random, c.list.Len())
		if !ok {
			return c.list.Cursor(), domain.NewServiceError("Cursor", "random", "random source has an empty range", nil)
		}
		return c.list.SetCursor(i), nil

	case KindNextOf, KindPrevOf:
		find := c.list.NextOf
		if m.Kind == KindPrevOf {
			find = c.list.PrevOf
		}
		i, ok := find(m.Field)
		if !ok {
			return c.list.Cursor(), domain.ErrNotFound
		}
		return c.list.SetCursor(i), nil
	}

	return c.list.Cursor(), fmt.Errorf("%w: move kind %d", domain.ErrUnknownCommand, int(m.Kind))
}
