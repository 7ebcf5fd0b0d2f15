package domain

import (
	"cmp"
	"fmt"
	"strings"
)

// Field names a track attribute usable as a match, sort or navigation key.
//
// The first seventeen fields double as bits of a FieldMask. Their order is the
// order in which a multi-field match tries them: common tags first, identity
// fields last, since a search for an id rarely targets anything else.
type Field int

const (
	FieldTitle Field = iota
	FieldArtist
	FieldAlbumArtist
	FieldComposer
	FieldPerformer
	FieldAlbum
	FieldGenre
	FieldDate
	FieldComment
	FieldTrack
	FieldDisc
	FieldFile
	FieldArtistSort
	FieldAlbumArtistSort
	FieldYear
	FieldID
	FieldPos

	// Fields below are sort/format keys only and have no mask bit.
	FieldName
	FieldLength

	numFields
)

// FieldMask is a set of matchable fields.
type FieldMask uint32

const (
	// FieldsNone matches nothing.
	FieldsNone FieldMask = 0

	// FieldsTags covers every textual tag plus the file path.
	FieldsTags = FieldsAll &^ (1<<FieldID | 1<<FieldPos)

	// FieldsAll covers every matchable field.
	FieldsAll FieldMask = 1<<(FieldPos+1) - 1
)

type fieldInfo struct {
	name    string
	value   func(t *Track) string
	compare func(a, b *Track, ignoreCase bool) int
}

var fields = [numFields]fieldInfo{
	FieldTitle:           {"title", func(t *Track) string { return t.Title }, textCompare(func(t *Track) string { return t.Title })},
	FieldArtist:          {"artist", func(t *Track) string { return t.Artist }, textCompare(func(t *Track) string { return t.Artist })},
	FieldAlbumArtist:     {"albumartist", func(t *Track) string { return t.AlbumArtist }, textCompare(func(t *Track) string { return t.AlbumArtist })},
	FieldComposer:        {"composer", func(t *Track) string { return t.Composer }, textCompare(func(t *Track) string { return t.Composer })},
	FieldPerformer:       {"performer", func(t *Track) string { return t.Performer }, textCompare(func(t *Track) string { return t.Performer })},
	FieldAlbum:           {"album", func(t *Track) string { return t.Album }, textCompare(func(t *Track) string { return t.Album })},
	FieldGenre:           {"genre", func(t *Track) string { return t.Genre }, textCompare(func(t *Track) string { return t.Genre })},
	FieldDate:            {"date", func(t *Track) string { return t.Date }, rawCompare(func(t *Track) string { return t.Date })},
	FieldComment:         {"comment", func(t *Track) string { return t.Comment }, textCompare(func(t *Track) string { return t.Comment })},
	FieldTrack:           {"track", func(t *Track) string { return t.TrackNumber }, numberCompare(func(t *Track) string { return t.TrackNumber })},
	FieldDisc:            {"disc", func(t *Track) string { return t.Disc }, numberCompare(func(t *Track) string { return t.Disc })},
	FieldFile:            {"file", func(t *Track) string { return t.File }, textCompare(func(t *Track) string { return t.File })},
	FieldArtistSort:      {"artistsort", func(t *Track) string { return t.ArtistSort }, textCompare(func(t *Track) string { return t.ArtistSort })},
	FieldAlbumArtistSort: {"albumartistsort", func(t *Track) string { return t.AlbumArtistSort }, textCompare(func(t *Track) string { return t.AlbumArtistSort })},
	FieldYear:            {"year", func(t *Track) string { return t.Year }, numberCompare(func(t *Track) string { return t.Year })},
	FieldID:              {"id", func(t *Track) string { return t.ID.String() }, nil},
	FieldPos:             {"pos", func(t *Track) string { return t.Pos.String() }, nil},
	FieldName:            {"name", func(t *Track) string { return t.Name }, textCompare(func(t *Track) string { return t.Name })},
	FieldLength:          {"length", func(t *Track) string { return t.Duration.String() }, compareLength},
}

var fieldAliases = map[string]Field{
	"time":     FieldLength,
	"duration": FieldLength,
	"position": FieldPos,
	"tracknum": FieldTrack,
}

// LookupField resolves a field name, case-insensitively.
func LookupField(name string) (Field, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return 0, false
	}
	for f := Field(0); f < numFields; f++ {
		if fields[f].name == name {
			return f, true
		}
	}
	f, ok := fieldAliases[name]
	return f, ok
}

// Name returns the canonical field name.
func (f Field) Name() string {
	if f < 0 || f >= numFields {
		return "invalid"
	}
	return fields[f].name
}

// String implements fmt.Stringer.
func (f Field) String() string {
	return f.Name()
}

// Format projects a track to the display string of this field.
func (f Field) Format(t *Track) string {
	if t == nil || f < 0 || f >= numFields {
		return ""
	}
	return fields[f].value(t)
}

// Sortable reports whether the field has a sort comparator.
func (f Field) Sortable() bool {
	return f >= 0 && f < numFields && fields[f].compare != nil
}

// Compare orders two tracks by this field. Nil tracks sort before present ones.
// Text fields honor ignoreCase; track, disc and year compare by their leading
// integer, with unparsable values counting as zero.
func (f Field) Compare(a, b *Track, ignoreCase bool) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	if !f.Sortable() {
		return 0
	}
	return fields[f].compare(a, b, ignoreCase)
}

// Bit returns the mask bit of a matchable field, or FieldsNone.
func (f Field) Bit() FieldMask {
	if f < 0 || f > FieldPos {
		return FieldsNone
	}
	return 1 << f
}

// MaskOf builds a mask from fields.
func MaskOf(fs ...Field) FieldMask {
	var m FieldMask
	for _, f := range fs {
		m |= f.Bit()
	}
	return m
}

// ParseFieldMask builds a mask from field names. An empty list yields FieldsTags.
func ParseFieldMask(names []string) (FieldMask, error) {
	var m FieldMask
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		f, ok := LookupField(name)
		if !ok || f.Bit() == FieldsNone {
			return FieldsNone, NewValidationError("fields", name, "not a matchable field")
		}
		m |= f.Bit()
	}
	if m == FieldsNone {
		return FieldsTags, nil
	}
	return m, nil
}

// Has reports whether f is in the mask.
func (m FieldMask) Has(f Field) bool {
	bit := f.Bit()
	return bit != FieldsNone && m&bit != 0
}

// Fields lists the mask's fields in match priority order.
func (m FieldMask) Fields() []Field {
	out := make([]Field, 0, FieldPos+1)
	for f := Field(0); f <= FieldPos; f++ {
		if m.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

// String implements fmt.Stringer.
func (m FieldMask) String() string {
	names := make([]string, 0, FieldPos+1)
	for _, f := range m.Fields() {
		names = append(names, f.Name())
	}
	return fmt.Sprintf("[%s]", strings.Join(names, ","))
}

func textCompare(get func(t *Track) string) func(a, b *Track, ignoreCase bool) int {
	return func(a, b *Track, ignoreCase bool) int {
		x, y := get(a), get(b)
		if ignoreCase {
			x, y = strings.ToLower(x), strings.ToLower(y)
		}
		return strings.Compare(x, y)
	}
}

func rawCompare(get func(t *Track) string) func(a, b *Track, ignoreCase bool) int {
	return func(a, b *Track, _ bool) int {
		return strings.Compare(get(a), get(b))
	}
}

func numberCompare(get func(t *Track) string) func(a, b *Track, ignoreCase bool) int {
	return func(a, b *Track, _ bool) int {
		return cmp.Compare(LeadingInt(get(a)), LeadingInt(get(b)))
	}
}

// compareLength puts unknown durations first.
func compareLength(a, b *Track, _ bool) int {
	switch {
	case !a.Duration.Known && !b.Duration.Known:
		return 0
	case !a.Duration.Known:
		return -1
	case !b.Duration.Known:
		return 1
	}
	return cmp.Compare(a.Duration.Seconds, b.Duration.Seconds)
}

// LeadingInt parses the integer prefix of s, so "3/12" yields 3.
// Leading whitespace and a sign are accepted; anything unparsable yields 0.
func LeadingInt(s string) int {
	s = strings.TrimLeft(s, " \t")
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	n := 0
	for i := 0; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int(s[i]-'0')
	}
	if neg {
		return -n
	}
	return n
}
