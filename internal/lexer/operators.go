package lexer

import "github.com/tinyjs-go/tinyjs/pkg/token"

// lastSignificant is the last token type returned by scan (ignoring the
// lookahead buffer), used to decide whether a `/` starts a regex literal
// per spec.md §4.1.2.
func (l *Lexer) lastSignificant() token.Type {
	return l.prevType
}

// scanOperator scans single-character tokens and the composite operators
// up to four characters wide (spec.md §4.1: `>>>=`, `**=`, `??=`, `?.[`,
// `?.(`, `...`).
func (l *Lexer) scanOperator(mk func(token.Type, string) token.Token) token.Token {
	ch := l.ch
	two := func(next rune, t2 token.Type, t1 token.Type, lit1 string) token.Token {
		if l.peekChar() == next {
			l.readChar()
			l.readChar()
			return mk(t2, string(ch)+string(next))
		}
		l.readChar()
		return mk(t1, lit1)
	}

	switch ch {
	case '/':
		if l.lastSignificant().CanPrecedeRegex() {
			return l.recordPrev(l.scanRegex(mk))
		}
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return l.recordPrev(mk(token.SLASH_ASSIGN, "/="))
		}
		l.readChar()
		return l.recordPrev(mk(token.SLASH, "/"))
	case '(':
		l.readChar()
		return l.recordPrev(mk(token.LPAREN, "("))
	case ')':
		l.readChar()
		return l.recordPrev(mk(token.RPAREN, ")"))
	case '{':
		l.readChar()
		return l.recordPrev(mk(token.LBRACE, "{"))
	case '}':
		l.readChar()
		return l.recordPrev(mk(token.RBRACE, "}"))
	case '[':
		l.readChar()
		return l.recordPrev(mk(token.LBRACKET, "["))
	case ']':
		l.readChar()
		return l.recordPrev(mk(token.RBRACKET, "]"))
	case ',':
		l.readChar()
		return l.recordPrev(mk(token.COMMA, ","))
	case ';':
		l.readChar()
		return l.recordPrev(mk(token.SEMICOLON, ";"))
	case ':':
		l.readChar()
		return l.recordPrev(mk(token.COLON, ":"))
	case '~':
		l.readChar()
		return l.recordPrev(mk(token.BIT_NOT, "~"))
	case '.':
		if l.peekChar() == '.' && l.peekCharAt(1) == '.' {
			l.readChar()
			l.readChar()
			l.readChar()
			return l.recordPrev(mk(token.ELLIPSIS, "..."))
		}
		l.readChar()
		return l.recordPrev(mk(token.DOT, "."))
	case '?':
		if l.peekChar() == '?' {
			l.readChar()
			l.readChar()
			if l.ch == '=' {
				l.readChar()
				return l.recordPrev(mk(token.QUESTION_QUESTION_ASSIGN, "??="))
			}
			return l.recordPrev(mk(token.QUESTION_QUESTION, "??"))
		}
		if l.peekChar() == '.' {
			l.readChar()
			l.readChar()
			if l.ch == '[' {
				l.readChar()
				return l.recordPrev(mk(token.QUESTION_DOT_BRACK, "?.["))
			}
			if l.ch == '(' {
				l.readChar()
				return l.recordPrev(mk(token.QUESTION_DOT_PAREN, "?.("))
			}
			return l.recordPrev(mk(token.QUESTION_DOT, "?."))
		}
		l.readChar()
		return l.recordPrev(mk(token.QUESTION, "?"))
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			if l.peekChar() == '=' {
				l.readChar()
				l.readChar()
				return l.recordPrev(mk(token.STRICT_EQ, "==="))
			}
			l.readChar()
			return l.recordPrev(mk(token.EQ, "=="))
		}
		if l.peekChar() == '>' {
			l.readChar()
			l.readChar()
			return l.recordPrev(mk(token.ARROW, "=>"))
		}
		l.readChar()
		return l.recordPrev(mk(token.ASSIGN, "="))
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			if l.peekChar() == '=' {
				l.readChar()
				l.readChar()
				return l.recordPrev(mk(token.STRICT_NOT_EQ, "!=="))
			}
			l.readChar()
			return l.recordPrev(mk(token.NOT_EQ, "!="))
		}
		l.readChar()
		return l.recordPrev(mk(token.LOGICAL_NOT, "!"))
	case '+':
		if l.peekChar() == '+' {
			l.readChar()
			l.readChar()
			return l.recordPrev(mk(token.INCR, "++"))
		}
		return l.recordPrev(two('=', token.PLUS_ASSIGN, token.PLUS, "+"))
	case '-':
		if l.peekChar() == '-' {
			l.readChar()
			l.readChar()
			return l.recordPrev(mk(token.DECR, "--"))
		}
		return l.recordPrev(two('=', token.MINUS_ASSIGN, token.MINUS, "-"))
	case '*':
		if l.peekChar() == '*' {
			l.readChar()
			l.readChar()
			if l.ch == '=' {
				l.readChar()
				return l.recordPrev(mk(token.STAR_STAR_ASSIGN, "**="))
			}
			return l.recordPrev(mk(token.STAR_STAR, "**"))
		}
		return l.recordPrev(two('=', token.STAR_ASSIGN, token.STAR, "*"))
	case '%':
		return l.recordPrev(two('=', token.PERCENT_ASSIGN, token.PERCENT, "%"))
	case '&':
		if l.peekChar() == '&' {
			l.readChar()
			l.readChar()
			if l.ch == '=' {
				l.readChar()
				return l.recordPrev(mk(token.LOGICAL_AND_ASSIGN, "&&="))
			}
			return l.recordPrev(mk(token.LOGICAL_AND, "&&"))
		}
		return l.recordPrev(two('=', token.AND_ASSIGN, token.BIT_AND, "&"))
	case '|':
		if l.peekChar() == '|' {
			l.readChar()
			l.readChar()
			if l.ch == '=' {
				l.readChar()
				return l.recordPrev(mk(token.LOGICAL_OR_ASSIGN, "||="))
			}
			return l.recordPrev(mk(token.LOGICAL_OR, "||"))
		}
		return l.recordPrev(two('=', token.OR_ASSIGN, token.BIT_OR, "|"))
	case '^':
		return l.recordPrev(two('=', token.XOR_ASSIGN, token.BIT_XOR, "^"))
	case '<':
		if l.peekChar() == '<' {
			l.readChar()
			l.readChar()
			if l.ch == '=' {
				l.readChar()
				return l.recordPrev(mk(token.SHL_ASSIGN, "<<="))
			}
			return l.recordPrev(mk(token.SHL, "<<"))
		}
		return l.recordPrev(two('=', token.LE, token.LT, "<"))
	case '>':
		if l.peekChar() == '>' {
			l.readChar()
			l.readChar()
			if l.ch == '>' {
				l.readChar()
				if l.ch == '=' {
					l.readChar()
					return l.recordPrev(mk(token.USHR_ASSIGN, ">>>="))
				}
				return l.recordPrev(mk(token.USHR, ">>>"))
			}
			if l.ch == '=' {
				l.readChar()
				return l.recordPrev(mk(token.SHR_ASSIGN, ">>="))
			}
			return l.recordPrev(mk(token.SHR, ">>"))
		}
		return l.recordPrev(two('=', token.GE, token.GT, ">"))
	}

	l.addError("unexpected character " + string(ch))
	l.readChar()
	return l.recordPrev(mk(token.ILLEGAL, string(ch)))
}

func (l *Lexer) recordPrev(t token.Token) token.Token {
	l.prevType = t.Type
	return t
}
