// Package candidates enumerates the names a registered name could be visually
// impersonating
//
// The candidate set always holds the normalized name. When the name's first
// printable ASCII run is within bounds, every ASCII lookalike sequence found in
// it (see homoglyph) becomes a slot, and every combination of slots allowed by
// the homoglyph count and percent limits is substituted with every original the
// lookalike may stand for
package candidates

import (
	"math"
	"slices"

	"spoofwatch/internal/core/homoglyph"
	"spoofwatch/internal/core/normalize"
)

// Config bounds candidate generation
// Min <= Max is not enforced; an inverted range simply disables substitution
type Config struct {
	MinASCIICharacters        int `json:"minAsciiCharacters"`
	MaxASCIICharacters        int `json:"maxAsciiCharacters"`
	MaxASCIIHomoglyphsCount   int `json:"maxAsciiHomoglyphsCount"`
	MaxASCIIHomoglyphsPercent int `json:"maxAsciiHomoglyphsPercent"`
}

// DefaultConfig returns the thresholds used when nothing is configured
func DefaultConfig() Config {
	return Config{
		MinASCIICharacters:        5,
		MaxASCIICharacters:        20,
		MaxASCIIHomoglyphsCount:   3,
		MaxASCIIHomoglyphsPercent: 30,
	}
}

// allows reports whether a subset of size homoglyphs is within limits for a name of length runes
func (c Config) allows(homoglyphs, length int) bool {
	if homoglyphs > c.MaxASCIIHomoglyphsCount {
		return false
	}
	if homoglyphs == 0 {
		return true
	}
	if length == 0 {
		return false
	}
	pct := math.Round(100 * float64(homoglyphs) / float64(length))
	return pct <= float64(c.MaxASCIIHomoglyphsPercent)
}

// maxSubset is the largest subset size allows accepts; both limits grow with size
func (c Config) maxSubset(slots, length int) int {
	n := 0
	for n < slots && c.allows(n+1, length) {
		n++
	}
	return n
}

// Slot is an ASCII lookalike sequence found at Pos in the normalized name
type Slot struct {
	Text string
	Pos  int
	Len  int
}

// Generator is safe for concurrent use
type Generator struct {
	tables *homoglyph.Tables
	norm   *normalize.Normalizer
}

// New builds a Generator over tables (homoglyph.Default when nil)
func New(tables *homoglyph.Tables) *Generator {
	if tables == nil {
		tables = homoglyph.Default()
	}
	return &Generator{tables: tables, norm: normalize.New(tables)}
}

// Normalize exposes the generator's normalizer
func (g *Generator) Normalize(name string) string { return g.norm.Normalize(name) }

// Generate returns the candidate originals for name
func (g *Generator) Generate(name string, cfg Config) Set {
	set := NewSet()
	normalized := g.norm.Normalize(name)
	set.Add(normalized)

	span := ASCIISpan(normalized)
	if span < cfg.MinASCIICharacters || span > cfg.MaxASCIICharacters {
		return set.without(name)
	}

	chars := []rune(normalized)
	slots := g.Slots(chars)

	limit := cfg.maxSubset(len(slots), len(chars))
	for subset := range Subsets(slots, limit) {
		if !cfg.allows(len(subset), len(chars)) {
			continue
		}
		for picked := range Product(groupByPos(subset)) {
			if overlapping(picked) {
				continue
			}
			alts := make([][]rune, len(picked))
			for i, s := range picked {
				alts[i] = g.tables.ASCIIOriginals(s.Text)
			}
			for originals := range Product(alts) {
				edits := make([]Edit, len(picked))
				for i, s := range picked {
					edits[i] = Edit{Pos: s.Pos, Len: s.Len, Text: []rune{originals[i]}}
				}
				set.Add(string(Apply(chars, edits)))
			}
		}
	}

	return set.without(name)
}

// Slots lists the ASCII lookalike sequences in chars (1 or 2 runes with the
// built-in tables), by position
func (g *Generator) Slots(chars []rune) []Slot {
	var out []Slot
	longest := g.tables.MaxGlyphLen()
	for i := range chars {
		for n := 1; n <= longest && i+n <= len(chars); n++ {
			text := string(chars[i : i+n])
			if g.tables.IsASCIIGlyph(text) {
				out = append(out, Slot{Text: text, Pos: i, Len: n})
			}
		}
	}
	return out
}

// ASCIISpan is the rune length of the first run of printable ASCII (0x20-0x7E) in s
func ASCIISpan(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x20 && r <= 0x7e {
			n++
			continue
		}
		if n > 0 {
			break
		}
	}
	return n
}

// groupByPos splits slots (already ordered by Pos) into one group per position
func groupByPos(slots []Slot) [][]Slot {
	var groups [][]Slot
	for i, s := range slots {
		if i > 0 && slots[i-1].Pos == s.Pos {
			groups[len(groups)-1] = append(groups[len(groups)-1], s)
			continue
		}
		groups = append(groups, []Slot{s})
	}
	return groups
}

// overlapping reports whether two picked slots share a rune
func overlapping(picked []Slot) bool {
	for i := 1; i < len(picked); i++ {
		if picked[i-1].Pos+picked[i-1].Len > picked[i].Pos {
			return true
		}
	}
	return false
}

// Set is a deduplicated set of candidate names
type Set struct {
	m map[string]struct{}
}

// NewSet returns an empty Set
func NewSet() Set { return Set{m: make(map[string]struct{})} }

// Add inserts name
func (s Set) Add(name string) { s.m[name] = struct{}{} }

// Has reports whether name is present
func (s Set) Has(name string) bool {
	_, ok := s.m[name]
	return ok
}

// Len is the number of names
func (s Set) Len() int { return len(s.m) }

// Names returns the names sorted
func (s Set) Names() []string {
	out := make([]string, 0, len(s.m))
	for n := range s.m {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

func (s Set) without(name string) Set {
	delete(s.m, "")
	delete(s.m, name)
	return s
}
