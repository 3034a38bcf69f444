package charset

// Sharp ASCII stores lower case letters in a scattered range above 0x80.
var sharpLower = map[byte]rune{
	146: 'e', 150: 't', 151: 'g', 152: 'h', 154: 'b', 155: 'x', 156: 'd',
	157: 'r', 158: 'p', 159: 'c', 160: 'q', 161: 'a', 162: 'z', 163: 'w',
	164: 's', 165: 'u', 166: 'i', 169: 'k', 170: 'f', 171: 'v', 175: 'j',
	176: 'n', 179: 'm', 183: 'o', 184: 'l', 189: 'y',
}

// sharpControl contains the glyphs of cursor and screen control codes that
// are embedded in string literals.
var sharpControl = map[byte]string{
	0x0D: "↵",
	0x10: "⌫",
	0x11: "↓",
	0x12: "↑",
	0x13: "→",
	0x14: "←",
	0x15: "⌂",
	0x16: "🅲",
	0x18: "⎀",
}

// SharpPlaceholder is shown for a Sharp ASCII code without printable glyph.
const SharpPlaceholder = "◇"

// Sharp returns the text of a Sharp ASCII code. Only the printable ASCII
// range and the lower case letters are mapped.
func Sharp(code byte) (string, bool) {
	if r, ok := sharpLower[code]; ok {
		return string(r), true
	}
	if code >= 0x20 && code <= 0x7E {
		return string(rune(code)), true
	}
	return "", false
}

// SharpControl returns the glyph of a control code inside a string literal.
func SharpControl(code byte) (string, bool) {
	s, ok := sharpControl[code]
	return s, ok
}
