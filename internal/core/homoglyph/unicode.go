package homoglyph

// unicodeLookalikes covers accented and small-capital Latin forms
var unicodeLookalikes = map[rune][]rune{
	'2': {'\u01bb'},
	'5': {'\u01bd'},
	'a': {'\u00e0', '\u00e1', '\u00e2', '\u00e3', '\u00e4', '\u00e5', '\u0251', '\u1ea1', '\u01ce', '\u0103', '\u0227', '\u0105', '\u0259'},
	'b': {'\u0299', '\u0253', '\u1e03', '\u1e05', '\u1e07', '\u0185'},
	'c': {'\u0188', '\u010b', '\u0107', '\u00e7', '\u010d', '\u0109', '\u1d04'},
	'd': {'\u0257', '\u0111', '\u010f', '\u0256', '\u1e11', '\u1e0b', '\u1e0d', '\u1e0f', '\u1e13'},
	'e': {'\u00e9', '\u00e8', '\u00ea', '\u00eb', '\u0113', '\u0115', '\u011b', '\u0117', '\u1eb9', '\u0119', '\u0229', '\u0247', '\u1e1b'},
	'f': {'\u0192', '\u1e1f'},
	'g': {'\u0262', '\u0261', '\u0121', '\u011f', '\u01f5', '\u0123', '\u011d', '\u01e7', '\u01e5'},
	'h': {'\u0125', '\u021f', '\u0127', '\u0266', '\u1e27', '\u1e29', '\u2c68', '\u1e23', '\u1e25', '\u1e2b', '\u1e96'},
	'i': {'\u00ed', '\u00ec', '\u00ef', '\u0131', '\u0269', '\u01d0', '\u012d', '\u1ec9', '\u1ecb', '\u0268', '\u020b', '\u012b', '\u026a'},
	'j': {'\u029d', '\u01f0', '\u0249', '\u0135'},
	'k': {'\u1e33', '\u1e35', '\u2c6a', '\u0137', '\u1d0b'},
	'l': {'\u026b', '\u0142'},
	'm': {'\u1e41', '\u1e43', '\u1d0d', '\u0271', '\u1e3f'},
	'n': {'\u0144', '\u1e45', '\u1e47', '\u1e49', '\u00f1', '\u0146', '\u01f9', '\u0148', '\ua791'},
	'o': {'\u022f', '\u1ecd', '\u1ecf', '\u01a1', '\u00f3', '\u00f6', '\u1d0f'},
	'p': {'\u01bf', '\u01a5', '\u1e55', '\u1e57'},
	'q': {'\u02a0'},
	'r': {'\u0280', '\u027c', '\u027d', '\u0155', '\u0157', '\u0159', '\u024d', '\u027e', '\u0213', '\u0211', '\u1e59', '\u1e5b', '\u1e5f'},
	's': {'\u0282', '\u015b', '\u1e63', '\u1e61', '\u0219', '\u015d', '\u0161', '\ua731'},
	't': {'\u0163', '\u0167', '\u1e6b', '\u1e6d', '\u021b', '\u01ab'},
	'u': {'\u1d1c', '\u01d4', '\u016d', '\u00fc', '\u0289', '\u00f9', '\u00fa', '\u00fb', '\u0169', '\u016b', '\u0173', '\u01b0', '\u016f', '\u0171', '\u0215', '\u0217', '\u1ee5'},
	'v': {'\u1e7f', '\u2c71', '\u1d8c', '\u1e7d', '\u2c74', '\u1d20'},
	'w': {'\u0175', '\u1e81', '\u1e83', '\u1e85', '\u2c73', '\u1e87', '\u1e89', '\u1e98', '\u1d21'},
	'x': {'\u1e8b', '\u1e8d'},
	'y': {'\u028f', '\u00fd', '\u00ff', '\u0177', '\u01b4', '\u0233', '\u024f', '\u1eff', '\u1e8f', '\u1ef5'},
	'z': {'\u0290', '\u017c', '\u017a', '\u1d22', '\u01b6', '\u1e93', '\u1e95', '\u2c6c'},
}
