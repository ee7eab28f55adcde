package evaluator

import (
	"lispy/internal/object"
	"math"
)

// funcArithmetic folds the named operator over its arguments left to right.
// Integer pairs stay Integer; any Decimal operand makes the step Decimal.
func funcArithmetic() builtin {
	return func(e *Evaluator, op string, args *object.SExpr) object.Object {
		if args.Len() == 0 {
			return newError("function '%s' passed no arguments", op)
		}
		for _, arg := range args.Cells {
			if !object.IsNumber(arg) {
				args.Cells = nil
				return newError("cannot operate on non-number")
			}
		}

		acc := args.Pop(0)
		if op == "-" && args.Len() == 0 {
			return negate(acc)
		}

		for args.Len() > 0 {
			acc = applyOp(op, acc, args.Pop(0))
			if e.isError(acc) {
				args.Cells = nil
				return acc
			}
		}
		return acc
	}
}

func negate(x object.Object) object.Object {
	switch n := x.(type) {
	case *object.Integer:
		return &object.Integer{Value: -n.Value}
	case *object.Decimal:
		return &object.Decimal{Value: -n.Value}
	}
	return newError("cannot operate on non-number")
}

func applyOp(op string, x, y object.Object) object.Object {
	xi, xInt := x.(*object.Integer)
	yi, yInt := y.(*object.Integer)
	if xInt && yInt {
		return integerOp(op, xi.Value, yi.Value, x, y)
	}

	xf, _ := object.Float(x)
	yf, _ := object.Float(y)

	switch op {
	case "+":
		return &object.Decimal{Value: xf + yf}
	case "-":
		return &object.Decimal{Value: xf - yf}
	case "*":
		return &object.Decimal{Value: xf * yf}
	case "/":
		if yf == 0 {
			return newError("division by zero")
		}
		return &object.Decimal{Value: xf / yf}
	case "%":
		return newError("cannot operate on non-number")
	case "^":
		return &object.Decimal{Value: math.Pow(xf, yf)}
	case "min":
		if xf < yf {
			return x
		}
		return y
	case "max":
		if xf > yf {
			return x
		}
		return y
	}
	return newError("invalid operator '%s'", op)
}

// integerOp wraps on overflow for + - * like the machine does; ^ reports it.
func integerOp(op string, a, b int64, x, y object.Object) object.Object {
	switch op {
	case "+":
		return &object.Integer{Value: a + b}
	case "-":
		return &object.Integer{Value: a - b}
	case "*":
		return &object.Integer{Value: a * b}
	case "/":
		if b == 0 {
			return newError("division by zero")
		}
		return &object.Integer{Value: a / b}
	case "%":
		if b == 0 {
			return newError("division by zero")
		}
		return &object.Integer{Value: a % b}
	case "^":
		return integerPow(a, b)
	case "min":
		if a < b {
			return x
		}
		return y
	case "max":
		if a > b {
			return x
		}
		return y
	}
	return newError("invalid operator '%s'", op)
}

// integerPow truncates toward zero for negative exponents, so only bases of
// magnitude one survive; 0 to a negative power is a division by zero.
func integerPow(base, exp int64) object.Object {
	if exp < 0 {
		switch base {
		case 0:
			return newError("division by zero")
		case 1:
			return &object.Integer{Value: 1}
		case -1:
			if exp%2 == 0 {
				return &object.Integer{Value: 1}
			}
			return &object.Integer{Value: -1}
		}
		return &object.Integer{Value: 0}
	}

	result := int64(1)
	for exp > 0 {
		var ok bool
		if exp&1 == 1 {
			if result, ok = mulInt64(result, base); !ok {
				return newError("integer overflow")
			}
		}
		exp >>= 1
		if exp > 0 {
			if base, ok = mulInt64(base, base); !ok {
				return newError("integer overflow")
			}
		}
	}
	return &object.Integer{Value: result}
}

func mulInt64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	c := a * b
	if c/b != a {
		return 0, false
	}
	return c, true
}
