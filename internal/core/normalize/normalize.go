// Package normalize folds a name into the form a human would read it as.
//
// Invalid UTF-8 is dropped first. The rest runs as one x/text chain: lowercase,
// Cyrillic lookalikes back to ASCII, broad Unicode lookalikes (accents, small
// capitals) back to ASCII, then removal of separators, control and format
// runes, unassigned code points and the invisible set.
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"spoofwatch/internal/core/homoglyph"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Normalizer is concurrency safe; each call borrows a pooled transformer chain
type Normalizer struct {
	tables *homoglyph.Tables
	chain  func() transform.Transformer
	pool   sync.Pool
}

// New constructs a Normalizer over the given tables (homoglyph.Default when nil)
func New(tables *homoglyph.Tables) *Normalizer {
	if tables == nil {
		tables = homoglyph.Default()
	}
	n := &Normalizer{tables: tables}
	n.chain = n.defaultChain
	n.pool.New = func() any { return n.chain() }
	return n
}

func (n *Normalizer) defaultChain() transform.Transformer {
	return transform.Chain(
		cases.Lower(language.Und),
		runes.Map(n.fromCyrillic),
		runes.Map(n.fromUnicode),
		runes.Remove(runes.Predicate(n.ignorable)),
	)
}

// Normalize returns the normalized form of s; it never fails and "" maps to ""
func (n *Normalizer) Normalize(s string) string {
	if s == "" {
		return ""
	}

	s = strings.ToValidUTF8(s, "")

	tr := n.pool.Get().(transform.Transformer)
	out, done, err := transform.String(tr, s)
	tr.Reset()
	n.pool.Put(tr)
	if err != nil {
		// keep what the chain produced and finish the tail rune by rune
		out += n.byRune(s[done:])
	}
	return out
}

// byRune applies the chain's steps one rune at a time; it cannot fail
func (n *Normalizer) byRune(s string) string {
	return strings.Map(func(r rune) rune {
		r = n.fromUnicode(n.fromCyrillic(unicode.ToLower(r)))
		if n.ignorable(r) {
			return -1
		}
		return r
	}, s)
}

func (n *Normalizer) fromCyrillic(r rune) rune {
	if a, ok := n.tables.FromCyrillic(r); ok {
		return a
	}
	return r
}

func (n *Normalizer) fromUnicode(r rune) rune {
	if a, ok := n.tables.FromUnicode(r); ok {
		return a
	}
	return r
}

// ignorable covers Z*, C* (Cc Cf Co Cs), unassigned (Cn) and the invisible set
func (n *Normalizer) ignorable(r rune) bool {
	if unicode.In(r, unicode.Z, unicode.C) {
		return true
	}
	if !assigned(r) {
		return true
	}
	return n.tables.IsInvisible(r)
}

// assigned reports whether r belongs to any general category; Go's tables have no Cn
func assigned(r rune) bool {
	return unicode.In(r, unicode.L, unicode.M, unicode.N, unicode.P, unicode.S, unicode.Z, unicode.C)
}
