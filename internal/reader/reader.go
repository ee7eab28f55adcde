package reader

import (
	"lispy/internal/ast"
	"lispy/internal/object"
	"strconv"
	"strings"
)

// Read converts a syntax tree node into a value tree. Root and sexpr nodes
// become evaluable lists, qexpr nodes quoted lists. Bracket delimiters and
// nodes that cannot be read contribute nothing.
func Read(node *ast.Node) object.Object {
	switch node.Kind {
	case ast.Number:
		return readNumber(node.Text)
	case ast.Symbol:
		return &object.Symbol{Name: node.Text}
	case ast.Root, ast.SExpr:
		list := object.NewSExpr()
		readCells(&list.List, node)
		return list
	case ast.QExpr:
		list := object.NewQExpr()
		readCells(&list.List, node)
		return list
	}
	return nil
}

func readCells(list *object.List, node *ast.Node) {
	for _, child := range node.Children {
		if child.IsDelimiter() {
			continue
		}
		if x := Read(child); x != nil {
			list.Add(x)
		}
	}
}

func readNumber(text string) object.Object {
	if strings.Contains(text, ".") {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return &object.Error{Message: "invalid number"}
		}
		return &object.Decimal{Value: f}
	}
	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return &object.Error{Message: "invalid number"}
	}
	return &object.Integer{Value: i}
}
