package mzbasic

// saStatements are the SA-5510 keywords that follow the 0x80 prefix byte.
var saStatements = []string{
	"REM", "DATA", "", "", "READ", "LIST", "RUN", "NEW", "PRINT", "LET", "FOR",
	"IF", "THEN", "GOTO", "GOSUB", "RETURN", "NEXT", "STOP", "END", "", "ON",
	"LOAD", "SAVE", "VERIFY", "POKE", "DIM", "DEF FN", "INPUT", "RESTORE", "CLR",
	"MUSIC", "TEMPO", "USR(", "WOPEN", "ROPEN", "CLOSE", "MON", "LIMIT", "CONT",
	"GET", "INP#", "OUT#", "CURSOR", "SET", "RESET", "", "", "", "", "", "", "AUTO",
	"", "", "COPY/P", "PAGE/P",
}

// saFunctions are the single byte SA-5510 tokens for operators and functions.
var saFunctions = []string{
	"", "", "", "><", "<>", "=<", "<=", "=>", ">=", "", ">", "<", "", "", "", "",
	"", "", "", "", "", "", "", "", "", "", "", "", "", "",
	"TO", "STEP", "LEFT$(", "RIGHT$(", "MID$(", "LEN(", "CHR$(", "STR$(", "ASC(", "VAL(",
	"PEEK(", "TAB(", "SPACE$(", "SIZE", "", "", "", "STRING$(", "", "CHARACTER$(", "CRS", "CRS",
	"", "", "", "", "", "", "", "", "", "", "", "",
	"RND(", "SIN(", "COS(", "TAN(", "ATN(", "EXP(", "INT(", "LOG(", "LN(", "ABS(", "SGN(", "SQR(",
}

var spTokens = []string{
	"REM", "DATA", "LIST", "RUN", "NEW", "PRINT", "LET", "FOR", "IF", "GOTO", "READ",
	"GOSUB", "RETURN", "NEXT", "STOP", "END", "ON", "LOAD", "SAVE", "VERIFY", "POKE", "DIM",
	"DEF FN", "INPUT", "RESTORE", "CLR", "MUSIC", "TEMPO", "USR(", "WOPEN", "ROPEN", "CLOSE", "BYE",
	"LIMIT", "CONT", "SET", "RESET", "GET", "INP#", "OUT#", "", "", "", "",
	"", "THEN", "TO", "STEP", "><", "<>", "=<", "<=", "=>", ">=", "=", ">", "<",
	"AND", "OR", "NOT", "+", "-", "*", "/", "LEFT$(", "RIGHT$(", "MID$(", "LEN(", "CHR$(",
	"STR$(", "ASC(", "VAL(", "PEEK(", "TAB(", "SP(", "SIZE", "", "", "", "^", "RND(",
	"SIN(", "COS(", "TAN(", "ATN(", "EXP(", "INT(", "LOG(", "LN(", "ABS(", "SGN(", "SQR(",
}

// mzTokens are the single byte 1Z-013B tokens, 0xFE and 0xFF select the
// extension tables.
var mzTokens = []string{
	"GOTO", "GOSUB", "", "RUN", "RETURN", "RESTORE", "RESUME", "LIST", "", "DELETE", "RENUMBER", "AUTO", "", "FOR", "NEXT", "PRINT",
	"", "INPUT", "", "IF", "DATA", "READ", "DIM", "REM", "END", "STOP", "CONT", "CLS", "", "ON", "LET", "NEW",
	"POKE", "OFF", "MODE", "SKIP", "PLOT", "LINE", "RLINE", "MOVE", "RMOVE", "TRON", "TROFF", "INP#", "", "GET", "PCOLOR", "PHOME",
	"HSET", "GPRINT", "KEY", "AXIS", "LOAD", "SAVE", "MERGE", "", "CONSOLE", "", "OUT", "CIRCLE", "TEST", "PAGE", "", "",
	"ERASE", "ERROR", "", "USR", "BYE", "", "", "DEF", "", "", "", "", "", "", "WOPEN", "CLOSE",
	"ROPEN", "", "", "", "", "", "", "", "", "KILL", "", "", "", "", "", "",
	"TO", "STEP", "THEN", "USING", "", "", "TAB", "SPC", "", "", "", "OR", "AND", "", "><", "<>",
	"=<", "<=", "=>", ">=", "=", ">", "<", "+", "-", "", "", "/", "*", "^", "", "",
}

var mzStatementsExt = []string{
	"", "SET", "RESET", "COLOR", "", "", "", "", "", "", "", "", "", "", "", "",
	"", "", "", "", "", "", "", "", "", "", "", "", "", "", "", "",
	"", "", "MUSIC", "TEMPO", "CURSOR", "VERIFY", "CLR", "LIMIT", "", "", "", "", "", "", "BOOT", "",
}

var mzFunctionsExt = []string{
	"INT", "ABS", "SIN", "COS", "TAN", "LN", "EXP", "SQR", "RND", "PEEK", "ATN", "SGN", "LOG", "PAI", "", "RAD",
	"", "", "", "", "", "EOF", "", "", "", "", "", "", "", "", "JOY", "",
	"", "STR$", "HEX$", "", "", "", "", "", "", "", "", "ASC", "LEN", "VAL", "", "",
	"", "", "", "ERN", "ERL", "SIZE", "", "", "", "", "LEFT$", "RIGHT$", "MID$", "", "", "",
	"", "", "", "", "TI$", "", "", "FN",
}

// lookup returns the keyword of a token byte in a table that starts at 0x80.
func lookup(table []string, b byte) (string, bool) {
	if b < tokenBase {
		return "", false
	}
	i := int(b - tokenBase)
	if i >= len(table) || table[i] == "" {
		return "", false
	}
	return table[i], true
}
