// Package homoglyph holds the lookalike tables used by the name normalizer and
// the candidate generator
//
// Tables are built once from the forward (original -> lookalikes) data in this
// package and are read-only afterwards, so a single value can be shared by any
// number of goroutines
package homoglyph

import (
	"slices"
	"sort"
	"sync"
)

// Tables carries the derived reverse lookups
type Tables struct {
	// glyph sequence (1 or 2 runes) -> ASCII originals it may stand for
	asciiReverse map[string][]rune
	// lookalike rune -> ASCII original
	unicodeReverse  map[rune]rune
	cyrillicReverse map[rune]rune
	invisible       map[rune]struct{}
	maxGlyphLen     int
}

var (
	defaultOnce   sync.Once
	defaultTables *Tables
)

// Default returns the process-wide tables built from the built-in data
func Default() *Tables {
	defaultOnce.Do(func() { defaultTables = New() })
	return defaultTables
}

// New builds a fresh Tables value from the built-in forward data
func New() *Tables {
	t := &Tables{
		asciiReverse:    reverseASCII(asciiLookalikes),
		unicodeReverse:  reverseRunes(unicodeLookalikes),
		cyrillicReverse: reverseRunes(cyrillicLookalikes),
		invisible:       make(map[rune]struct{}, len(invisibleRunes)),
	}
	for _, r := range invisibleRunes {
		t.invisible[r] = struct{}{}
	}
	for glyph := range t.asciiReverse {
		if n := len([]rune(glyph)); n > t.maxGlyphLen {
			t.maxGlyphLen = n
		}
	}
	return t
}

// ASCIIOriginals returns the ASCII characters the glyph sequence may be a lookalike of
// The returned slice is sorted and must not be modified
func (t *Tables) ASCIIOriginals(glyph string) []rune {
	return t.asciiReverse[glyph]
}

// IsASCIIGlyph reports whether glyph is a key of the ASCII reverse table
func (t *Tables) IsASCIIGlyph(glyph string) bool {
	_, ok := t.asciiReverse[glyph]
	return ok
}

// MaxGlyphLen is the longest ASCII glyph sequence in runes
func (t *Tables) MaxGlyphLen() int { return t.maxGlyphLen }

// FromCyrillic maps a Cyrillic lookalike to its ASCII original
func (t *Tables) FromCyrillic(r rune) (rune, bool) {
	a, ok := t.cyrillicReverse[r]
	return a, ok
}

// FromUnicode maps a broad-Unicode lookalike to its ASCII original
func (t *Tables) FromUnicode(r rune) (rune, bool) {
	a, ok := t.unicodeReverse[r]
	return a, ok
}

// IsInvisible reports whether r renders as nothing (or as blank space)
func (t *Tables) IsInvisible(r rune) bool {
	_, ok := t.invisible[r]
	return ok
}

// reverseASCII inverts original -> glyphs into glyph -> sorted distinct originals
func reverseASCII(fwd map[rune][]string) map[string][]rune {
	out := make(map[string][]rune)
	for original, glyphs := range fwd {
		for _, g := range glyphs {
			if !slices.Contains(out[g], original) {
				out[g] = append(out[g], original)
			}
		}
	}
	for g := range out {
		slices.Sort(out[g])
	}
	return out
}

// reverseRunes inverts original -> lookalikes into lookalike -> original
// Originals are visited in sorted order so a lookalike listed twice resolves
// deterministically to the greatest original
func reverseRunes(fwd map[rune][]rune) map[rune]rune {
	originals := make([]rune, 0, len(fwd))
	for r := range fwd {
		originals = append(originals, r)
	}
	sort.Slice(originals, func(i, j int) bool { return originals[i] < originals[j] })

	out := make(map[rune]rune)
	for _, original := range originals {
		for _, l := range fwd[original] {
			out[l] = original
		}
	}
	return out
}
