package homoglyph

// invisibleRunes are code points that render blank or not at all
var invisibleRunes = []rune{
	'\u0009', '\u000A', '\u000B', '\u000C', '\u000D', ' ', '\u0085', '\u00A0',
	'\u00AD', '\u034F', '\u061C', '\u070F', '\u115F', '\u1160', '\u1680', '\u17B4',
	'\u17B5', '\u180E', '\u2000', '\u2001', '\u2002', '\u2003', '\u2004', '\u2005',
	'\u2006', '\u2007', '\u2008', '\u2009', '\u200A', '\u200B', '\u200C', '\u200D',
	'\u200E', '\u200F', '\u2028', '\u2029', '\u202F', '\u205F', '\u2060', '\u2061',
	'\u2062', '\u2063', '\u2064', '\u206A', '\u206B', '\u206C', '\u206D', '\u206E',
	'\u206F', '\u2800', '\u3000', '\u3164', '\uFEFF', '\uFFA0', '\U000110B1', '\U0001BCA0',
	'\U0001BCA1', '\U0001BCA2', '\U0001BCA3', '\U0001D159', '\U0001D173', '\U0001D174', '\U0001D175', '\U0001D176',
	'\U0001D177', '\U0001D178', '\U0001D179', '\U0001D17A',
}
