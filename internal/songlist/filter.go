package songlist

import (
	"log/slog"
	"slices"

	"github.com/tejashwikalptaru/tunelist/internal/domain"
)

// Filter is one active predicate: records stay visible only while Pattern
// matches at least one of Fields.
type Filter struct {
	Pattern string
	Fields  domain.FieldMask
}

// FilterAdd appends a filter and narrows the filtered view by it. A filter
// with an empty pattern is recorded but hides nothing.
func (s *Songlist) FilterAdd(pattern string, fields domain.FieldMask) *Filter {
	f := &Filter{Pattern: pattern, Fields: fields}
	s.filters = append(s.filters, f)

	s.logger.Debug("filter added",
		slog.String("pattern", pattern),
		slog.String("fields", fields.String()))

	if pattern != "" {
		s.rescan()
	}
	s.publish(domain.NewFilterAddedEvent(s.id, pattern, fields, len(s.view)))
	return f
}

// FilterRemove drops f, rebuilds the filtered view from the master sequence
// and applies the remaining filters. Reports false if f is not active.
func (s *Songlist) FilterRemove(f *Filter) bool {
	i := slices.Index(s.filters, f)
	if i < 0 {
		return false
	}
	s.filters = slices.Delete(s.filters, i, i+1)

	s.logger.Debug("filter removed", slog.String("pattern", f.Pattern))

	s.setView(s.master)
	s.rescan()
	s.publish(domain.NewFilterRemovedEvent(s.id, f.Pattern, len(s.view)))
	return true
}

// FilterClear drops every filter and makes the filtered view equal to the
// master sequence.
func (s *Songlist) FilterClear() {
	if len(s.filters) == 0 && len(s.view) == len(s.master) {
		return
	}

	s.logger.Debug("clearing filters", slog.Int("count", len(s.filters)))

	s.filters = nil
	clear(s.regexps)
	s.setView(s.master)
	s.publish(domain.NewFilterRemovedEvent(s.id, "", len(s.view)))
}

// LastFilter returns the most recently added filter, or nil.
func (s *Songlist) LastFilter() *Filter {
	if len(s.filters) == 0 {
		return nil
	}
	return s.filters[len(s.filters)-1]
}

// Filters returns the active filters in the order they were added.
func (s *Songlist) Filters() []*Filter {
	return slices.Clone(s.filters)
}

// FilterMatch reports whether t passes every active filter.
func (s *Songlist) FilterMatch(t *domain.Track) bool {
	for _, f := range s.filters {
		if !s.Match(t, f.Pattern, f.Fields, MatchFuzzy) {
			return false
		}
	}
	return true
}

// rescan drops records that fail the filters from the filtered view and
// deselects them. It never adds records back.
func (s *Songlist) rescan() {
	kept := make([]*entry, 0, len(s.view))
	for _, e := range s.viewEntries() {
		if s.FilterMatch(e.track) {
			kept = append(kept, e)
			continue
		}
		s.selectEntry(e, false)
	}
	s.setView(kept)
}
