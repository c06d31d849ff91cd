package lexer

import (
	"surgehdl/internal/diag"
	"surgehdl/internal/token"
)

// tryStr consumes the upcoming bytes if they exactly match s, greedily
// matching multi-character punctuators before falling back to shorter ones.
func (lx *Lexer) tryStr(s string) bool {
	end := int(lx.cursor.Off) + len(s)
	if end > len(lx.file.Content) {
		return false
	}
	if string(lx.file.Content[lx.cursor.Off:end]) != s {
		return false
	}
	for range s {
		lx.cursor.Bump()
	}
	return true
}

// scanOperatorOrPunct scans a punctuator or operator token, trying the
// longest spellings first so e.g. "<<<=" is never split into "<<<" + "=".
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: k, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}

	switch {
	// 4-character punctuators.
	case lx.tryStr("*::*"):
		return emit(token.StarColonColonStar)
	case lx.tryStr("<<<="):
		return emit(token.LessLessLessEquals)
	case lx.tryStr(">>>="):
		return emit(token.GreaterGreaterGreaterEquals)

	// 3-character punctuators.
	case lx.tryStr("<<="):
		return emit(token.LessLessEquals)
	case lx.tryStr(">>="):
		return emit(token.GreaterGreaterEquals)
	case lx.tryStr("<<<"):
		return emit(token.LessLessLess)
	case lx.tryStr(">>>"):
		return emit(token.GreaterGreaterGreater)
	case lx.tryStr("==="):
		return emit(token.EqualsEqualsEquals)
	case lx.tryStr("==?"):
		return emit(token.EqualsEqualsQuestion)
	case lx.tryStr("!=="):
		return emit(token.BangEqualsEquals)
	case lx.tryStr("!=?"):
		return emit(token.BangEqualsQuestion)
	case lx.tryStr("->>"):
		return emit(token.MinusGreaterGreater)
	case lx.tryStr("|->"):
		return emit(token.PipeMinusGreater)
	case lx.tryStr("|=>"):
		return emit(token.PipeEqualsGreater)
	case lx.tryStr("&&&"):
		return emit(token.AmpAmpAmp)
	case lx.tryStr("<->"):
		return emit(token.LessMinusGreater)
	case lx.tryStr("#-#"):
		return emit(token.HashMinusHash)
	case lx.tryStr("#=#"):
		return emit(token.HashEqualsHash)

	// 2-character punctuators.
	case lx.tryStr("*)"):
		return emit(token.StarRParen)
	case lx.tryStr("(*"):
		return emit(token.LParenStar)
	case lx.tryStr(":="):
		return emit(token.ColonEquals)
	case lx.tryStr(":/"):
		return emit(token.ColonSlash)
	case lx.tryStr("::"):
		return emit(token.ColonColon)
	case lx.tryStr(".*"):
		return emit(token.DotStar)
	case lx.tryStr("**"):
		return emit(token.StarStar)
	case lx.tryStr("*>"):
		return emit(token.StarGreater)
	case lx.tryStr("++"):
		return emit(token.PlusPlus)
	case lx.tryStr("+="):
		return emit(token.PlusEquals)
	case lx.tryStr("+:"):
		return emit(token.PlusColon)
	case lx.tryStr("--"):
		return emit(token.MinusMinus)
	case lx.tryStr("-:"):
		return emit(token.MinusColon)
	case lx.tryStr("->"):
		return emit(token.MinusGreater)
	case lx.tryStr("~&"):
		return emit(token.TildeAmp)
	case lx.tryStr("~|"):
		return emit(token.TildePipe)
	case lx.tryStr("~^"):
		return emit(token.TildeCaret)
	case lx.tryStr("##"):
		return emit(token.HashHash)
	case lx.tryStr("^~"):
		return emit(token.CaretTilde)
	case lx.tryStr("=="):
		return emit(token.EqualsEquals)
	case lx.tryStr("=>"):
		return emit(token.EqualsGreater)
	case lx.tryStr("-="):
		return emit(token.MinusEquals)
	case lx.tryStr("/="):
		return emit(token.SlashEquals)
	case lx.tryStr("*="):
		return emit(token.StarEquals)
	case lx.tryStr("&="):
		return emit(token.AmpEquals)
	case lx.tryStr("|="):
		return emit(token.PipeEquals)
	case lx.tryStr("%="):
		return emit(token.PercentEquals)
	case lx.tryStr("^="):
		return emit(token.CaretEquals)
	case lx.tryStr("<<"):
		return emit(token.LessLess)
	case lx.tryStr(">>"):
		return emit(token.GreaterGreater)
	case lx.tryStr("!="):
		return emit(token.BangEquals)
	case lx.tryStr("<="):
		return emit(token.LessEquals)
	case lx.tryStr(">="):
		return emit(token.GreaterEquals)
	case lx.tryStr("||"):
		return emit(token.PipePipe)
	case lx.tryStr("@*"):
		return emit(token.AtStar)
	case lx.tryStr("@@"):
		return emit(token.AtAt)
	case lx.tryStr("&&"):
		return emit(token.AmpAmp)
	case lx.tryStr("``"):
		return emit(token.BacktickBacktick)
	case lx.tryStr("`\""):
		return emit(token.BacktickQuote)
	}

	// single-character punctuators
	ch := lx.cursor.Bump()
	switch ch {
	case '{':
		return emit(token.LBrace)
	case '}':
		return emit(token.RBrace)
	case '[':
		return emit(token.LBracket)
	case ']':
		return emit(token.RBracket)
	case '(':
		return emit(token.LParen)
	case ')':
		return emit(token.RParen)
	case ';':
		return emit(token.Semi)
	case ':':
		return emit(token.Colon)
	case ',':
		return emit(token.Comma)
	case '.':
		return emit(token.Dot)
	case '/':
		return emit(token.Slash)
	case '*':
		return emit(token.Star)
	case '+':
		return emit(token.Plus)
	case '-':
		return emit(token.Minus)
	case '~':
		return emit(token.Tilde)
	case '?':
		return emit(token.Question)
	case '#':
		return emit(token.Hash)
	case '^':
		return emit(token.Caret)
	case '=':
		return emit(token.Equals)
	case '!':
		return emit(token.Bang)
	case '%':
		return emit(token.Percent)
	case '<':
		return emit(token.Less)
	case '>':
		return emit(token.Greater)
	case '|':
		return emit(token.Pipe)
	case '@':
		return emit(token.At)
	case '&':
		return emit(token.Amp)
	default:
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexNonPrintableChar, sp, "unrecognized character")
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}
}
