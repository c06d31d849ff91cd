package token

import "fmt"

// structuralNames and punctNames give the human-readable spelling for
// kinds that aren't reserved words; keywordSpelling (below) covers the
// rest by inverting the keywords table.
var structuralNames = map[Kind]string{
	Invalid:               "Invalid",
	EOF:                   "EOF",
	EndOfDirective:        "EndOfDirective",
	Directive:             "Directive",
	IncludeFileName:       "IncludeFileName",
	Identifier:            "Identifier",
	SystemIdentifier:      "SystemIdentifier",
	EscapedIdentifier:     "EscapedIdentifier",
	StringLiteral:         "StringLiteral",
	IntegerLiteral:        "IntegerLiteral",
	IntegerBase:           "IntegerBase",
	UnbasedUnsizedLiteral: "UnbasedUnsizedLiteral",
	RealLiteral:           "RealLiteral",
	TimeLiteral:           "TimeLiteral",
	OneStep:               "1step",
}

var punctNames = map[Kind]string{
	LBrace: "{", RBrace: "}", LBracket: "[", RBracket: "]",
	LParen: "(", RParen: ")", TickLBrace: "'{", TickLParen: "'(", StarRParen: "*)", LParenStar: "(*",
	Semi: ";", Colon: ":", ColonEquals: ":=", ColonSlash: ":/", ColonColon: "::",
	StarColonColonStar: "*::*", Comma: ",", DotStar: ".*", Dot: ".",
	Slash: "/", Star: "*", StarStar: "**", StarGreater: "*>",
	Plus: "+", PlusPlus: "++", PlusEquals: "+=", PlusColon: "+:",
	Minus: "-", MinusMinus: "--", MinusColon: "-:", MinusGreater: "->", MinusGreaterGreater: "->>",
	Tilde: "~", TildeAmp: "~&", TildePipe: "~|", TildeCaret: "~^",
	Dollar: "$", Question: "?", Hash: "#", HashHash: "##",
	HashMinusHash: "#-#", HashEqualsHash: "#=#",
	Caret: "^", CaretTilde: "^~",
	Equals: "=", EqualsEquals: "==", EqualsEqualsQuestion: "==?", EqualsEqualsEquals: "===",
	EqualsGreater: "=>", MinusEquals: "-=", SlashEquals: "/=", StarEquals: "*=",
	AmpEquals: "&=", PipeEquals: "|=", PercentEquals: "%=", CaretEquals: "^=",
	LessLessEquals: "<<=", LessLessLessEquals: "<<<=",
	GreaterGreaterEquals: ">>=", GreaterGreaterGreaterEquals: ">>>=",
	LessLess: "<<", GreaterGreater: ">>", LessLessLess: "<<<", GreaterGreaterGreater: ">>>",
	Bang: "!", BangEquals: "!=", BangEqualsQuestion: "!=?", BangEqualsEquals: "!==",
	Percent: "%", Less: "<", LessEquals: "<=", LessMinusGreater: "<->",
	Greater: ">", GreaterEquals: ">=",
	Pipe: "|", PipePipe: "||", PipeMinusGreater: "|->", PipeEqualsGreater: "|=>",
	At: "@", AtStar: "@*", AtAt: "@@",
	Amp: "&", AmpAmp: "&&", AmpAmpAmp: "&&&",
	BacktickQuote: "`\"", BacktickBacktick: "``",
}

// keywordSpelling maps each keyword Kind back to its reserved-word text,
// built once by inverting the keywords lookup table.
var keywordSpelling = func() map[Kind]string {
	m := make(map[Kind]string, len(keywords))
	for text, entry := range keywords {
		// Several spellings may map to the same Kind across dialects,
		// e.g. none here, but the lexer's own lookup is by Kind, so any
		// single round-trip spelling is correct; the map key order is
		// irrelevant because distinct keyword Kinds never collide.
		m[entry.kind] = text
	}
	return m
}()

// String returns a short human-readable name for k: a keyword's reserved
// spelling, a punctuator/operator's literal spelling, or the symbolic name
// of a structural/literal kind. Used by diagfmt's token dump and by
// diagnostic messages that name an unexpected token kind.
func (k Kind) String() string {
	if name, ok := structuralNames[k]; ok {
		return name
	}
	if name, ok := keywordSpelling[k]; ok {
		return name
	}
	if name, ok := punctNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint16(k))
}

var triviaKindNames = map[TriviaKind]string{
	TriviaWhitespace:       "Whitespace",
	TriviaEndOfLine:        "EndOfLine",
	TriviaLineComment:      "LineComment",
	TriviaBlockComment:     "BlockComment",
	TriviaDocLine:          "DocLine",
	TriviaDocBlock:         "DocBlock",
	TriviaDirective:        "Directive",
	TriviaDisabledText:     "DisabledText",
	TriviaSkippedTokens:    "SkippedTokens",
	TriviaLineContinuation: "LineContinuation",
}

// String names a trivia category for diagfmt's token dump.
func (k TriviaKind) String() string {
	if name, ok := triviaKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TriviaKind(%d)", uint8(k))
}
