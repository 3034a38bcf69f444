package charset

const (
	zx81Digit0  = 28
	zx81LetterA = 38

	zx81Number = 0x7E // followed by the 5 byte floating point form

	zx81List  = 240
	zx81GoTo  = 236
	zx81GoSub = 237
	zx81Run   = 247
	zx81Rem   = 234
)

func zx81Tables() tables {
	t := tables{
		tokens: map[byte]string{
			64: "RND", 65: "INKEY$ ", 66: "PI",
			193: "AT ", 194: "TAB ", 196: "CODE ", 197: "VAL ", 198: "LEN ", 199: "SIN ",
			200: "COS ", 201: "TAN ", 202: "ASN ", 203: "ACS ", 204: "ATN ", 205: "LN ",
			206: "EXP ", 207: "INT ", 208: "SQR ", 209: "SGN ", 210: "ABS ", 211: "PEEK ",
			212: "USR ", 213: "STR$ ", 214: "CHR$ ", 215: "NOT ", 216: "**", 217: " OR ",
			218: " AND ", 219: "<=", 220: ">=", 221: "<>", 222: " THEN", 223: " TO ",
			224: " STEP ", 225: " LPRINT ", 226: " LLIST ", 227: " STOP", 228: " SLOW",
			229: " FAST", 230: " NEW", 231: " SCROLL", 232: " CONT ", 233: " DIM ",
			234: " REM ", 235: " FOR ", 236: " GOTO ", 237: " GOSUB ", 238: " INPUT ",
			239: " LOAD ", 240: " LIST ", 241: " LET ", 242: " PAUSE ", 243: " NEXT ",
			244: " POKE ", 245: " PRINT ", 246: " PLOT ", 247: " RUN ", 248: " SAVE ",
			249: " RAND ", 250: " IF ", 251: " CLS", 252: " UNPLOT ", 253: " CLEAR",
			254: " RETURN", 255: " COPY",
		},
		base: map[byte]string{
			0: " ", 11: "\"", 12: "£", 13: "$", 14: ":", 15: "?",
			16: "(", 17: ")", 18: ">", 19: "<", 20: "=", 21: "+",
			22: "-", 23: "*", 24: "/", 25: ";", 26: ",", 27: ".",
		},
		graphics: map[byte]string{
			1: "▘", 2: "▝", 3: "▀", 4: "▖", 5: "▌", 6: "▞", 7: "▛", 8: "▒",
			9: "\U0001FB8F", 10: "\U0001FB8E",
			128: "█", 129: "▟", 130: "▙", 131: "▄", 132: "▜", 133: "▐", 134: "▚",
			135: "▗", 136: "\U0001FB90", 137: "\U0001FB91", 138: "\U0001FB92",
		},
		extended: map[byte]string{
			192: "\"\"", // quote image inside strings
		},

		comment:          zx81Rem,
		lineNumberTokens: []byte{zx81GoTo, zx81GoSub, zx81Run, zx81List},
		numberMarkers:    []byte{zx81Number},
	}

	for i := range 10 {
		t.base[byte(zx81Digit0+i)] = string(rune('0' + i))
	}
	for i := range 26 {
		t.base[byte(zx81LetterA+i)] = string(rune('A' + i))
	}
	return t
}
