package homoglyph

// asciiLookalikes lists, per ASCII character, the ASCII sequences that read like it
var asciiLookalikes = map[rune][]string{
	'0': {"o"},
	'1': {"l", "i", "|"},
	'b': {"d", "lb"},
	'c': {"e"},
	'd': {"b"},
	'e': {"c"},
	'g': {"q"},
	'h': {"lh"},
	'i': {"1", "l", "|"},
	'k': {"lk", "ik", "lc"},
	'l': {"1", "i", "|"},
	'm': {"n", "nn", "rn", "rr"},
	'n': {"m", "r"},
	'o': {"0"},
	'q': {"g"},
	'w': {"vv"},
	'|': {"1", "l", "i"},
}
