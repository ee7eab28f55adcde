package parser

import (
	"errors"
	"fmt"
	"lispy/internal/ast"
	"lispy/internal/lexer"
	"lispy/internal/token"
	"lispy/internal/util"
	"strings"
)

// SyntaxError collects every message reported while parsing one source text.
type SyntaxError struct {
	Messages []string
	// Incomplete is set when the input ended inside an open list.
	Incomplete bool
	// Context renders the source around the first error.
	Context string
}

func (e *SyntaxError) Error() string {
	return strings.Join(e.Messages, "\n")
}

// IsIncomplete reports whether err is a SyntaxError caused only by missing closing brackets.
func IsIncomplete(err error) bool {
	var se *SyntaxError
	return errors.As(err, &se) && se.Incomplete
}

type Parser struct {
	l          *lexer.Lexer
	src        string // source code here
	errors     []string
	firstPos   int
	incomplete bool

	curToken  token.Token
	peekToken token.Token
}

func New(l *lexer.Lexer, source string) *Parser {
	p := &Parser{
		l:        l,
		src:      source,
		errors:   []string{},
		firstPos: -1,
	}

	// Read two tokens, so curToken and peekToken are both set
	p.nextToken()
	p.nextToken()

	return p
}

// Parse lexes and parses src into a root node; any syntax problem is returned as a *SyntaxError.
func Parse(src string) (*ast.Node, error) {
	p := New(lexer.New(src), src)
	root := p.ParseProgram()
	if len(p.errors) != 0 {
		return nil, p.syntaxError()
	}
	return root, nil
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t token.TokenType) bool {
	return p.peekToken.Type == t
}

func (p *Parser) addError(pos int, message string, args ...interface{}) {
	if p.firstPos < 0 {
		p.firstPos = pos
	}
	line, col := util.GetLineAndColumn(p.src, pos)
	m := fmt.Sprintf(message, args...)
	msg := fmt.Sprintf("[%3d:%2d] %s", line, col, m)
	p.errors = append(p.errors, msg)
}

func (p *Parser) Errors() []string {
	return p.errors
}

func (p *Parser) syntaxError() *SyntaxError {
	se := &SyntaxError{
		Messages: p.errors,
		// an unterminated list is only recoverable when nothing else went wrong
		Incomplete: p.incomplete && len(p.errors) == 1,
	}
	if p.firstPos >= 0 {
		line, col := util.GetLineAndColumn(p.src, p.firstPos)
		se.Context = util.GetContextLines(p.src, line, col, p.firstPos)
	}
	return se
}

// ParseProgram reads every expression of the input as a child of a root node.
func (p *Parser) ParseProgram() *ast.Node {
	root := &ast.Node{Kind: ast.Root, Position: p.curToken.Position}

	for !p.curTokenIs(token.EOF) {
		if node := p.parseExpression(); node != nil {
			root.Add(node)
		}
		p.nextToken()
	}

	return root
}

func (p *Parser) parseExpression() *ast.Node {
	switch p.curToken.Type {
	case token.NUMBER:
		return ast.NewLeaf(ast.Number, p.curToken)
	case token.SYMBOL:
		return ast.NewLeaf(ast.Symbol, p.curToken)
	case token.LPAREN:
		return p.parseList(ast.SExpr, token.RPAREN)
	case token.LBRACE:
		return p.parseList(ast.QExpr, token.RBRACE)
	case token.RPAREN, token.RBRACE:
		p.addError(p.curToken.Position, "unexpected %q", p.curToken.Literal)
	default:
		p.addError(p.curToken.Position, "illegal character %q", p.curToken.Literal)
	}
	return nil
}

// parseList leaves curToken on the closing delimiter.
func (p *Parser) parseList(kind ast.Kind, closing token.TokenType) *ast.Node {
	node := &ast.Node{Kind: kind, Position: p.curToken.Position}
	node.Add(ast.NewLeaf(ast.Delimiter, p.curToken))

	for !p.peekTokenIs(closing) {
		if p.peekTokenIs(token.EOF) {
			p.incomplete = true
			p.addError(p.peekToken.Position, "expected %q before end of input", string(closing))
			return nil
		}
		p.nextToken()
		child := p.parseExpression()
		if p.incomplete {
			return nil
		}
		if child != nil {
			node.Add(child)
		}
	}

	p.nextToken()
	node.Add(ast.NewLeaf(ast.Delimiter, p.curToken))
	return node
}
