package parser

import (
	"fmt"
	"lispy/internal/ast"
	"os"
)

// WriteASTToJSON takes a root AST node and writes it to a JSON file.
func WriteASTToJSON(node *ast.Node, filename string) error {
	out, err := RenderASTAsJSON(node)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, []byte(out), 0o644); err != nil {
		return fmt.Errorf("failed to write JSON file: %v", err)
	}
	return nil
}
