package ast

import (
	"bytes"
	"lispy/internal/token"
)

type Kind string

const (
	Root      Kind = ">"
	Number    Kind = "number"
	Symbol    Kind = "symbol"
	SExpr     Kind = "sexpr"
	QExpr     Kind = "qexpr"
	Delimiter Kind = "char"
)

// Node is one vertex of the syntax tree handed to the reader. Leaves carry Text,
// list and root nodes carry Children, bracket tokens included as Delimiter leaves.
type Node struct {
	Kind     Kind
	Text     string
	Position int
	Children []*Node
}

func NewLeaf(kind Kind, tok token.Token) *Node {
	return &Node{Kind: kind, Text: tok.Literal, Position: tok.Position}
}

func (n *Node) Add(child *Node) *Node {
	n.Children = append(n.Children, child)
	return n
}

func (n *Node) IsDelimiter() bool {
	return n.Kind == Delimiter && token.IsDelimiter(n.Text)
}

// String reproduces the source form of the tree with normalised spacing.
func (n *Node) String() string {
	var out bytes.Buffer
	n.write(&out)
	return out.String()
}

func (n *Node) write(out *bytes.Buffer) {
	if len(n.Children) == 0 {
		out.WriteString(n.Text)
		return
	}
	prevOpen := true
	for _, c := range n.Children {
		closing := c.Kind == Delimiter && (c.Text == token.RPAREN || c.Text == token.RBRACE)
		if !prevOpen && !closing {
			out.WriteString(" ")
		}
		c.write(out)
		prevOpen = c.Kind == Delimiter && (c.Text == token.LPAREN || c.Text == token.LBRACE)
	}
}
