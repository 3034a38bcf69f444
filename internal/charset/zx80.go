package charset

const (
	zx80Digit0  = 28
	zx80LetterA = 38

	zx80List  = 230
	zx80GoTo  = 236
	zx80Run   = 247
	zx80GoSub = 251
	zx80Rem   = 254
)

func zx80Tables() tables {
	t := tables{
		tokens: map[byte]string{
			213: " THEN ", 214: " TO ", 219: "NOT ", 224: " AND ", 225: " OR ",
			226: "**", 230: " LIST ", 231: " RETURN ", 232: " CLS ", 233: " DIM ",
			234: " SAVE ", 235: " FOR ", 236: " GO TO ", 237: " POKE ",
			238: " INPUT ", 239: " RANDOMISE ", 240: " LET ", 243: " NEXT ",
			244: " PRINT ", 246: " NEW ", 247: " RUN ", 248: " STOP ",
			249: " CONTINUE ", 250: " IF ", 251: " GO SUB ", 252: " LOAD ",
			253: " CLEAR ", 254: " REM ",
		},
		vendorTokens: map[byte]string{
			241: " CONFIG ", 245: " DELETE ", 255: " CAT ",
		},
		base: map[byte]string{
			0: " ", 1: "\"", 12: "£", 13: "$", 14: ":", 15: "?", 27: ".",
			215: ";", 216: ",", 217: ")", 218: "(",
			220: "-", 221: "+", 222: "*", 223: "/",
			227: "=", 228: ">", 229: "<",
		},
		graphics: map[byte]string{
			0: "  ", 2: ": ", 3: "..", 4: "' ", 5: " '", 6: ". ", 7: " .",
			8: ".'", 9: "##", 10: ",,", 11: "~~",
			128: "::", 130: " :", 131: "''", 132: ".:", 133: ":.", 134: "':",
			135: ":'", 136: "'.", 137: "@@", 138: ";;", 139: "!!",
		},
		extended: map[byte]string{
			2: "º", 3: "®", 4: "¶", 5: "·", 6: "¹", 7: "²", 8: "»", 9: "½",
			10: "¾", 11: "¿", 128: "«", 129: "†", 130: "°", 131: "¸",
			132: "¬", 133: "ª", 134: "¯", 135: "¼", 136: "±", 137: "³",
			138: "´", 139: "µ",
		},

		comment:          zx80Rem,
		lineNumberTokens: []byte{zx80GoTo, zx80GoSub, zx80Run, zx80List},
	}

	for i := range 10 {
		t.base[byte(zx80Digit0+i)] = string(rune('0' + i))
	}
	for i := range 26 {
		t.base[byte(zx80LetterA+i)] = string(rune('A' + i))
	}
	return t
}
