package command

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/tejashwikalptaru/tunelist/internal/domain"
	"github.com/tejashwikalptaru/tunelist/internal/songlist"
)

// Action is the kind of selection edit.
type Action int

const (
	ActionSelect Action = iota
	ActionUnselect
	ActionToggle
	ActionInvert
	ActionRemove
)

var actionNames = map[string]Action{
	"select":   ActionSelect,
	"unselect": ActionUnselect,
	"toggle":   ActionToggle,
	"invert":   ActionInvert,
	"remove":   ActionRemove,
}

func (a Action) String() string {
	switch a {
	case ActionSelect:
		return "select"
	case ActionUnselect:
		return "unselect"
	case ActionToggle:
		return "toggle"
	case ActionInvert:
		return "invert"
	case ActionRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// Edit is a parsed selection command. All applies select and unselect to the
// whole filtered view instead of the cursor record.
type Edit struct {
	Action Action
	All    bool
}

// IsEdit reports whether input starts with a selection verb.
func IsEdit(input string) bool {
	words := strings.Fields(input)
	if len(words) == 0 {
		return false
	}
	_, ok := actionNames[strings.ToLower(words[0])]
	return ok
}

// ParseEdit turns input into an Edit. Accepted forms are select, unselect,
// toggle, select all, unselect all, invert and remove.
// Errors wrap domain.ErrUnknownCommand.
func ParseEdit(input string) (Edit, error) {
	words := strings.Fields(strings.ToLower(input))
	if len(words) == 0 {
		return Edit{}, fmt.Errorf("%w: expected a selection command", domain.ErrUnknownCommand)
	}

	action, ok := actionNames[words[0]]
	if !ok {
		return Edit{}, fmt.Errorf("%w: '%s' is not a selection command", domain.ErrUnknownCommand, words[0])
	}

	switch {
	case len(words) == 1:
		return Edit{Action: action}, nil
	case len(words) == 2 && words[1] == "all" && (action == ActionSelect || action == ActionUnselect):
		return Edit{Action: action, All: true}, nil
	default:
		return Edit{}, fmt.Errorf("%w: unexpected '%s' after '%s'", domain.ErrUnknownCommand, words[1], words[0])
	}
}

// Selector edits the selection of one list.
type Selector struct {
	list   *songlist.Songlist
	logger *slog.Logger
}

// NewSelector creates a selection command runner.
func NewSelector(list *songlist.Songlist, logger *slog.Logger) *Selector {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Selector{
		list:   list,
		logger: logger.With(slog.String("component", "selector")),
	}
}

// Run parses input and executes it.
func (s *Selector) Run(input string) (int, error) {
	e, err := ParseEdit(input)
	if err != nil {
		return 0, err
	}
	return s.Execute(e)
}

// Execute applies e. It returns the number of selected records afterwards,
// or for ActionRemove the number of records removed.
//
// Without a selection, remove deletes the record under the cursor.
func (s *Selector) Execute(e Edit) (int, error) {
	s.logger.Debug("selection edit",
		slog.String("action", e.Action.String()),
		slog.Bool("all", e.All))

	switch e.Action {
	case ActionSelect, ActionUnselect:
		state := e.Action == ActionSelect
		if e.All {
			s.list.SelectAll(state)
			return s.list.Selection().Count, nil
		}
		t := s.list.CursorTrack()
		if t == nil {
			return 0, domain.ErrEmptyList
		}
		s.list.Select(t, state)
		return s.list.Selection().Count, nil

	case ActionToggle:
		t := s.list.CursorTrack()
		if t == nil {
			return 0, domain.ErrEmptyList
		}
		s.list.Select(t, !s.list.Selected(t))
		return s.list.Selection().Count, nil

	case ActionInvert:
		s.list.InvertSelection()
		return s.list.Selection().Count, nil

	case ActionRemove:
		if s.list.Len() == 0 {
			return 0, domain.ErrEmptyList
		}
		s.list.ResetTraversal()
		removed := 0
		for t := s.list.NextSelected(); t != nil; t = s.list.NextSelected() {
			if s.list.Remove(t) {
				removed++
			}
		}
		s.logger.Info("records removed", slog.Int("count", removed))
		return removed, nil
	}

	return 0, fmt.Errorf("%w: %s", domain.ErrUnknownCommand, e.Action)
}
