package evaluator

import (
	"fmt"
	"lispy/internal/object"
	"log/slog"
)

// Evaluator reduces values. It keeps no state between calls; the logger is
// only used to trace builtin dispatch.
type Evaluator struct {
	log *slog.Logger
}

func New(logger *slog.Logger) *Evaluator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Evaluator{log: logger}
}

// Eval consumes obj and returns its normal form. Only evaluable lists reduce;
// every other value is returned as is.
func (e *Evaluator) Eval(obj object.Object) object.Object {
	if sexpr, ok := obj.(*object.SExpr); ok {
		return e.evalSExpr(sexpr)
	}
	return obj
}

func (e *Evaluator) evalSExpr(s *object.SExpr) object.Object {
	// cells reduce left to right; the first error abandons the rest unevaluated
	for i, cell := range s.Cells {
		val := e.Eval(cell)
		if e.isError(val) {
			s.Cells = nil
			return val
		}
		s.Cells[i] = val
	}

	switch s.Len() {
	case 0:
		return s
	case 1:
		return s.Take(0)
	}

	head := s.Pop(0)
	sym, ok := head.(*object.Symbol)
	if !ok {
		s.Cells = nil
		return newError("expression does not start with a symbol")
	}

	return e.apply(sym.Name, s)
}

// apply hands args over to the named builtin.
func (e *Evaluator) apply(name string, args *object.SExpr) object.Object {
	fn, ok := builtins[name]
	if !ok {
		args.Cells = nil
		return newError("unknown function '%s'", name)
	}

	e.log.Debug("apply builtin", slog.String("name", name), slog.Int("args", args.Len()))
	result := fn(e, name, args)
	if e.isError(result) {
		e.log.Debug("builtin failed", slog.String("name", name), slog.Any("error", result.Inspect()))
	}
	return result
}

func newError(format string, a ...interface{}) *object.Error {
	return &object.Error{Message: fmt.Sprintf(format, a...)}
}

func (e *Evaluator) isError(obj object.Object) bool {
	if obj != nil {
		return obj.Type() == object.ERROR_OBJ
	}
	return false
}
