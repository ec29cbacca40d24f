package homoglyph

var cyrillicLookalikes = map[rune][]rune{
	'a': {'\u0430'},
	'b': {'\u044c'},
	'c': {'\u0441'},
	'd': {'\u0501'},
	'e': {'\u0435'},
	'g': {'\u050d'},
	'h': {'\u04bb'},
	'i': {'\u0456'},
	'j': {'\u0458'},
	'k': {'\u043a'},
	'l': {'\u04cf'},
	'm': {'\u043c'},
	'o': {'\u043e'},
	'p': {'\u0440'},
	'q': {'\u051b'},
	's': {'\u0455'},
	't': {'\u0442'},
	'v': {'\u0475'},
	'w': {'\u051d'},
	'x': {'\u0445'},
	'y': {'\u0443'},
}
