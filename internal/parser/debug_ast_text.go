package parser

import (
	"fmt"
	"lispy/internal/ast"
	"strings"
)

// RenderASTAsText produces an indented listing of the tree, one node per line:
// the node kind, and for leaves the literal text.
func RenderASTAsText(node *ast.Node, indent int) string {
	if node == nil {
		return "nil"
	}

	var sb strings.Builder
	renderNode(&sb, node, indent)
	return strings.TrimSuffix(sb.String(), "\n")
}

func renderNode(sb *strings.Builder, node *ast.Node, indent int) {
	sp := strings.Repeat("  ", indent)
	if len(node.Children) == 0 && node.Kind != ast.Root {
		sb.WriteString(fmt.Sprintf("%s%s '%s'\n", sp, node.Kind, node.Text))
		return
	}
	sb.WriteString(fmt.Sprintf("%s%s\n", sp, node.Kind))
	for _, c := range node.Children {
		renderNode(sb, c, indent+1)
	}
}
