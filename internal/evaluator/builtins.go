package evaluator

import (
	"lispy/internal/object"
	"sort"
)

// builtin consumes args; whatever it does not return is released with it.
type builtin func(e *Evaluator, name string, args *object.SExpr) object.Object

var builtins map[string]builtin

func init() {
	builtins = map[string]builtin{
		// list functions
		"list": funcList(),
		"head": funcHead(),
		"tail": funcTail(),
		"join": funcJoin(),
		"cons": funcCons(),
		"eval": funcEval(),

		// arithmetic
		"+":   funcArithmetic(),
		"-":   funcArithmetic(),
		"*":   funcArithmetic(),
		"/":   funcArithmetic(),
		"%":   funcArithmetic(),
		"^":   funcArithmetic(),
		"min": funcArithmetic(),
		"max": funcArithmetic(),
	}
}

// Builtins lists the names of every builtin operation in sorted order.
func Builtins() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// funcList turns its argument list into a quoted list.
func funcList() builtin {
	return func(e *Evaluator, name string, args *object.SExpr) object.Object {
		return object.Quote(args)
	}
}

// funcHead keeps only the first element of a quoted list.
func funcHead() builtin {
	return func(e *Evaluator, name string, args *object.SExpr) object.Object {
		q, err := singleNonEmptyQExpr(name, args)
		if err != nil {
			return err
		}
		first := q.Take(0)
		q.Add(first)
		return q
	}
}

// funcTail drops the first element of a quoted list.
func funcTail() builtin {
	return func(e *Evaluator, name string, args *object.SExpr) object.Object {
		q, err := singleNonEmptyQExpr(name, args)
		if err != nil {
			return err
		}
		q.Pop(0)
		return q
	}
}

func funcJoin() builtin {
	return func(e *Evaluator, name string, args *object.SExpr) object.Object {
		if args.Len() == 0 {
			return newError("function '%s' passed no arguments", name)
		}
		for i, arg := range args.Cells {
			if arg.Type() != object.QEXPR_OBJ {
				args.Cells = nil
				return typeError(name, i, arg, object.QEXPR_OBJ)
			}
		}

		joined := args.Pop(0).(*object.QExpr)
		for args.Len() > 0 {
			joined.Join(&args.Pop(0).(*object.QExpr).List)
		}
		return joined
	}
}

// funcCons prepends a number to a quoted list.
func funcCons() builtin {
	return func(e *Evaluator, name string, args *object.SExpr) object.Object {
		if err := checkArity(name, args, 2); err != nil {
			return err
		}
		if !object.IsNumber(args.Cells[0]) {
			err := typeError(name, 0, args.Cells[0], "NUMBER")
			args.Cells = nil
			return err
		}
		q, ok := args.Cells[1].(*object.QExpr)
		if !ok {
			err := typeError(name, 1, args.Cells[1], object.QEXPR_OBJ)
			args.Cells = nil
			return err
		}

		q.Insert(0, args.Cells[0])
		args.Cells = nil
		return q
	}
}

// funcEval evaluates a quoted list as if it had been written with parentheses.
func funcEval() builtin {
	return func(e *Evaluator, name string, args *object.SExpr) object.Object {
		if err := checkArity(name, args, 1); err != nil {
			return err
		}
		q, ok := args.Cells[0].(*object.QExpr)
		if !ok {
			err := typeError(name, 0, args.Cells[0], object.QEXPR_OBJ)
			args.Cells = nil
			return err
		}
		args.Cells = nil
		return e.Eval(object.Unquote(q))
	}
}

func singleNonEmptyQExpr(name string, args *object.SExpr) (*object.QExpr, *object.Error) {
	if err := checkArity(name, args, 1); err != nil {
		return nil, err
	}
	arg := args.Take(0)
	q, ok := arg.(*object.QExpr)
	if !ok {
		return nil, typeError(name, 0, arg, object.QEXPR_OBJ)
	}
	if q.Len() == 0 {
		return nil, newError("function '%s' passed {}", name)
	}
	return q, nil
}

func checkArity(name string, args *object.SExpr, want int) *object.Error {
	if args.Len() != want {
		got := args.Len()
		args.Cells = nil
		return newError("function '%s' passed wrong number of arguments. got=%d, want=%d", name, got, want)
	}
	return nil
}

func typeError(name string, i int, arg object.Object, want object.ObjectType) *object.Error {
	return newError("function '%s' passed incorrect type for argument %d. got=%s, want=%s",
		name, i, arg.Type(), want)
}
