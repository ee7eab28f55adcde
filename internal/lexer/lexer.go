package lexer

import (
	"lispy/internal/token"
	"unicode/utf8"
)

type Lexer struct {
	input        string
	position     int  // current byte position in input (points to start of current rune)
	readPosition int  // next byte position in input (start of next rune)
	ch           rune // current rune under examination; 0 means EOF
}

func New(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()

	start := l.position
	switch l.ch {
	case 0:
		return token.Token{Type: token.EOF, Literal: "", Position: start}
	case '(':
		l.readChar()
		return token.Token{Type: token.LPAREN, Literal: "(", Position: start}
	case ')':
		l.readChar()
		return token.Token{Type: token.RPAREN, Literal: ")", Position: start}
	case '{':
		l.readChar()
		return token.Token{Type: token.LBRACE, Literal: "{", Position: start}
	case '}':
		l.readChar()
		return token.Token{Type: token.RBRACE, Literal: "}", Position: start}
	}

	// a leading minus binds to the digits that follow it, as in -?[0-9]+
	if isDigit(l.ch) || (l.ch == '-' && isDigit(l.peekChar())) {
		return token.Token{Type: token.NUMBER, Literal: l.readNumber(), Position: start}
	}

	if token.IsOperator(l.ch) {
		ch := l.ch
		l.readChar()
		return token.Token{Type: token.SYMBOL, Literal: string(ch), Position: start}
	}

	if isLetter(l.ch) {
		return token.Token{Type: token.SYMBOL, Literal: l.readIdentifier(), Position: start}
	}

	ch := l.ch
	l.readChar()
	return token.Token{Type: token.ILLEGAL, Literal: string(ch), Position: start}
}

// tokens drains the lexer, the trailing EOF token included.
func (l *Lexer) tokens() []token.Token {
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens
		}
	}
}

func (l *Lexer) skipWhitespace() {
	for {
		switch l.ch {
		case ' ', '\t', '\r', '\n':
			l.readChar()
		case ';':
			l.skipToLineEnd()
		default:
			return
		}
	}
}

func (l *Lexer) skipToLineEnd() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

// readChar advances by one UTF-8 rune, updating byte positions
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += size
}

// peekChar returns the next rune without advancing; returns 0 at EOF
func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

// readNumber consumes -?[0-9]+(\.[0-9]+)? and leaves any trailing garbage for the next token.
func (l *Lexer) readNumber() string {
	start := l.position
	if l.ch == '-' {
		l.readChar()
	}
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	return l.input[start:l.position]
}

func isLetter(ch rune) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}
