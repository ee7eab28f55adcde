package object

import (
	"math"
	"strconv"
	"strings"
)

const (
	INTEGER_OBJ = "INTEGER"
	DECIMAL_OBJ = "DECIMAL"
	SYMBOL_OBJ  = "SYMBOL"
	ERROR_OBJ   = "ERROR"
	SEXPR_OBJ   = "SEXPR"
	QEXPR_OBJ   = "QEXPR"
)

type ObjectType string

// Object is the closed set of runtime values. Lists own their cells exclusively;
// a cell is moved between lists, never shared.
type Object interface {
	Type() ObjectType
	Inspect() string
	objectNode()
}

type Integer struct {
	Value int64
}

func (i *Integer) objectNode()      {}
func (i *Integer) Type() ObjectType { return INTEGER_OBJ }
func (i *Integer) Inspect() string  { return strconv.FormatInt(i.Value, 10) }

type Decimal struct {
	Value float64
}

func (d *Decimal) objectNode()      {}
func (d *Decimal) Type() ObjectType { return DECIMAL_OBJ }

// Inspect renders fixed-point notation and always keeps a fractional part so a
// Decimal never prints like an Integer.
func (d *Decimal) Inspect() string {
	s := strconv.FormatFloat(d.Value, 'f', -1, 64)
	if math.IsInf(d.Value, 0) || math.IsNaN(d.Value) || strings.Contains(s, ".") {
		return s
	}
	return s + ".0"
}

// Error is terminal: it is passed along unchanged and aborts the enclosing reduction.
type Error struct {
	Message string
}

func (e *Error) objectNode()      {}
func (e *Error) Type() ObjectType { return ERROR_OBJ }
func (e *Error) Inspect() string  { return "Error: " + e.Message }

type SExpr struct {
	List
}

func (s *SExpr) objectNode()      {}
func (s *SExpr) Type() ObjectType { return SEXPR_OBJ }
func (s *SExpr) Inspect() string  { return s.inspect("(", ")") }

type QExpr struct {
	List
}

func (q *QExpr) objectNode()      {}
func (q *QExpr) Type() ObjectType { return QEXPR_OBJ }
func (q *QExpr) Inspect() string  { return q.inspect("{", "}") }

func NewSExpr(cells ...Object) *SExpr {
	return &SExpr{List{Cells: cells}}
}

func NewQExpr(cells ...Object) *QExpr {
	return &QExpr{List{Cells: cells}}
}

// Quote consumes s and returns a quoted list owning the same cells.
func Quote(s *SExpr) *QExpr {
	q := &QExpr{List{Cells: s.Cells}}
	s.Cells = nil
	return q
}

// Unquote consumes q and returns an evaluable list owning the same cells.
func Unquote(q *QExpr) *SExpr {
	s := &SExpr{List{Cells: q.Cells}}
	q.Cells = nil
	return s
}

// IsNumber reports whether obj is an Integer or a Decimal.
func IsNumber(obj Object) bool {
	switch obj.(type) {
	case *Integer, *Decimal:
		return true
	}
	return false
}

// Float returns the numeric value of an Integer or Decimal as a float64.
func Float(obj Object) (float64, bool) {
	switch n := obj.(type) {
	case *Integer:
		return float64(n.Value), true
	case *Decimal:
		return n.Value, true
	}
	return 0, false
}

// Equal compares two values structurally. Integer and Decimal are never equal to each other.
func Equal(a, b Object) bool {
	switch x := a.(type) {
	case *Integer:
		y, ok := b.(*Integer)
		return ok && x.Value == y.Value
	case *Decimal:
		y, ok := b.(*Decimal)
		return ok && x.Value == y.Value
	case *Symbol:
		y, ok := b.(*Symbol)
		return ok && x.Name == y.Name
	case *Error:
		y, ok := b.(*Error)
		return ok && x.Message == y.Message
	case *SExpr:
		y, ok := b.(*SExpr)
		return ok && x.List.equal(&y.List)
	case *QExpr:
		y, ok := b.(*QExpr)
		return ok && x.List.equal(&y.List)
	}
	return false
}
