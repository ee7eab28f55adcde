package token

import "fmt"

type TokenType string

const (
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"

	// Literals
	NUMBER = "NUMBER" // 42, -7, 3.14
	SYMBOL = "SYMBOL" // + - * / % ^ min max head ...

	// Delimiters
	LPAREN = "("
	RPAREN = ")"
	LBRACE = "{"
	RBRACE = "}"
)

type Token struct {
	Type     TokenType
	Literal  string
	Position int // the src index of the token
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q @%d", t.Type, t.Literal, t.Position)
}

var operators = map[rune]bool{
	'+': true,
	'-': true,
	'*': true,
	'/': true,
	'%': true,
	'^': true,
}

// IsOperator reports whether ch is a single character operator symbol.
func IsOperator(ch rune) bool {
	return operators[ch]
}

// IsDelimiter reports whether the literal is one of the four bracket characters.
func IsDelimiter(literal string) bool {
	switch literal {
	case LPAREN, RPAREN, LBRACE, RBRACE:
		return true
	}
	return false
}
