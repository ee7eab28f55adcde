package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"lispy/internal/ast"
)

// WalkAST recursively traverses an AST and serializes it into a map structure for JSON output.
func WalkAST(node *ast.Node) interface{} {
	if node == nil {
		return nil
	}

	if len(node.Children) == 0 && node.Kind != ast.Root {
		return map[string]interface{}{
			"0.type":     string(node.Kind),
			"1.position": node.Position,
			"2.text":     node.Text,
		}
	}

	children := make([]interface{}, len(node.Children))
	for i, c := range node.Children {
		children[i] = WalkAST(c)
	}
	return map[string]interface{}{
		"0.type":     string(node.Kind),
		"1.position": node.Position,
		"3.children": children,
	}
}

// RenderASTAsJSON renders the WalkAST map as indented JSON without HTML escaping.
func RenderASTAsJSON(node *ast.Node) (string, error) {
	astMap := WalkAST(node)

	buf := new(bytes.Buffer)
	encoder := json.NewEncoder(buf)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(astMap); err != nil {
		return "", fmt.Errorf("failed to encode JSON: %v", err)
	}
	return buf.String(), nil
}
