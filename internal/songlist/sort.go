package songlist

import (
	"cmp"
	"log/slog"
	"slices"
	"strings"

	"github.com/tejashwikalptaru/tunelist/internal/domain"
)

// Sort reorders the list by the named keys.
//
// Keys are applied in the order given: the first key sorts the whole list,
// and every later key is a stable sort over the result. The last key is
// therefore the most significant one, so "track disc album" groups by album
// with tracks in order inside each disc. Ties left by the first key fall back
// to insertion order, which keeps one Sort call from inheriting the order of
// an earlier one.
//
// Unknown or unsortable keys are skipped. Sort reports false and changes
// nothing when no key is usable. The master sequence and the filtered view
// are sorted with the same keys.
func (s *Songlist) Sort(keys []string) bool {
	fields := make([]domain.Field, 0, len(keys))
	for _, key := range keys {
		f, ok := domain.LookupField(key)
		if !ok || !f.Sortable() {
			s.logger.Debug("skipping unknown sort key", slog.String("key", key))
			continue
		}
		fields = append(fields, f)
	}
	if len(fields) == 0 {
		return false
	}

	s.sortEntries(s.master, fields)

	view := s.viewEntries()
	s.sortEntries(view, fields)
	s.setView(view)

	if !s.role.KeepsServerPositions() {
		s.renumber(0)
	}

	s.logger.Debug("list sorted", slog.Any("keys", fields))
	s.publish(domain.NewListSortedEvent(s.id, fields))
	return true
}

// SortString sorts by a space or comma separated key list.
func (s *Songlist) SortString(keys string) bool {
	return s.Sort(strings.FieldsFunc(keys, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	}))
}

func (s *Songlist) sortEntries(es []*entry, fields []domain.Field) {
	ignoreCase := s.opts.IgnoreCase
	for i, f := range fields {
		if i == 0 {
			slices.SortFunc(es, func(a, b *entry) int {
				if c := f.Compare(a.track, b.track, ignoreCase); c != 0 {
					return c
				}
				return cmp.Compare(a.seq, b.seq)
			})
			continue
		}
		slices.SortStableFunc(es, func(a, b *entry) int {
			return f.Compare(a.track, b.track, ignoreCase)
		})
	}
}

// renumber assigns list positions to master records from index from onwards.
func (s *Songlist) renumber(from int) {
	for i := from; i < len(s.master); i++ {
		s.master[i].track.Pos = domain.At(i)
	}
}
