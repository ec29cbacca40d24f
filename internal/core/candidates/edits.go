package candidates

// Edit replaces Len runes starting at Pos with Text
type Edit struct {
	Pos  int
	Len  int
	Text []rune
}

// Apply writes src with edits applied into a new buffer; src is left untouched
// Edits must be sorted by Pos and must not overlap. Positions refer to src; the
// running offset tracks how far the output has drifted from them
func Apply(src []rune, edits []Edit) []rune {
	out := make([]rune, len(src))
	copy(out, src)
	offset := 0
	for _, e := range edits {
		at := e.Pos + offset
		tail := append([]rune(nil), out[at+e.Len:]...)
		out = append(append(out[:at], e.Text...), tail...)
		offset += len(e.Text) - e.Len
	}
	return out
}
