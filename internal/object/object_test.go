package object

import (
	"math"
	"testing"
)

func TestInspect(t *testing.T) {
	tests := []struct {
		name     string
		obj      Object
		expected string
	}{
		{"integer", &Integer{Value: -42}, "-42"},
		{"decimal", &Decimal{Value: 2.5}, "2.5"},
		{"whole decimal keeps fraction", &Decimal{Value: 3}, "3.0"},
		{"decimal is fixed point", &Decimal{Value: 1e21}, "1000000000000000000000.0"},
		{"infinite decimal", &Decimal{Value: math.Inf(1)}, "+Inf"},
		{"symbol", &Symbol{Name: "max"}, "max"},
		{"error", &Error{Message: "division by zero"}, "Error: division by zero"},
		{"empty sexpr", NewSExpr(), "()"},
		{"empty qexpr", NewQExpr(), "{}"},
		{
			"nested",
			NewSExpr(&Symbol{Name: "+"}, &Integer{Value: 1}, NewQExpr(&Decimal{Value: 0.5}, NewQExpr())),
			"(+ 1 {0.5 {}})",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.obj.Inspect(); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
			if again := tt.obj.Inspect(); again != tt.expected {
				t.Errorf("second Inspect changed output: %q", again)
			}
		})
	}
}

func TestListPopTakeInsert(t *testing.T) {
	l := NewQExpr(&Integer{Value: 1}, &Integer{Value: 2}, &Integer{Value: 3})

	x := l.Pop(1)
	if !Equal(x, &Integer{Value: 2}) {
		t.Fatalf("Pop(1) returned %s", x.Inspect())
	}
	if l.Inspect() != "{1 3}" {
		t.Fatalf("after Pop expected {1 3}, got %s", l.Inspect())
	}

	l.Insert(0, &Integer{Value: 0})
	l.Insert(l.Len(), &Integer{Value: 4})
	if l.Inspect() != "{0 1 3 4}" {
		t.Fatalf("after Insert expected {0 1 3 4}, got %s", l.Inspect())
	}

	y := l.Take(2)
	if !Equal(y, &Integer{Value: 3}) {
		t.Fatalf("Take(2) returned %s", y.Inspect())
	}
	if l.Len() != 0 {
		t.Fatalf("Take should release the remaining cells, %d left", l.Len())
	}
}

func TestJoinMovesCells(t *testing.T) {
	a := NewQExpr(&Integer{Value: 1})
	b := NewQExpr(&Integer{Value: 2}, &Integer{Value: 3})

	a.Join(&b.List)

	if a.Inspect() != "{1 2 3}" {
		t.Errorf("expected {1 2 3}, got %s", a.Inspect())
	}
	if b.Len() != 0 {
		t.Errorf("joined list should be emptied, got %s", b.Inspect())
	}
}

func TestQuoteUnquote(t *testing.T) {
	s := NewSExpr(&Symbol{Name: "+"}, &Integer{Value: 1})

	q := Quote(s)
	if q.Inspect() != "{+ 1}" {
		t.Fatalf("expected {+ 1}, got %s", q.Inspect())
	}
	if s.Len() != 0 {
		t.Fatalf("Quote should consume the source list")
	}

	back := Unquote(q)
	if back.Inspect() != "(+ 1)" {
		t.Fatalf("expected (+ 1), got %s", back.Inspect())
	}
	if q.Len() != 0 {
		t.Fatalf("Unquote should consume the source list")
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		a, b  Object
		equal bool
	}{
		{&Integer{Value: 1}, &Integer{Value: 1}, true},
		{&Integer{Value: 1}, &Decimal{Value: 1}, false},
		{&Decimal{Value: 1.5}, &Decimal{Value: 1.5}, true},
		{&Symbol{Name: "head"}, &Symbol{Name: "tail"}, false},
		{&Error{Message: "x"}, &Error{Message: "x"}, true},
		{NewQExpr(&Integer{Value: 1}), NewSExpr(&Integer{Value: 1}), false},
		{NewQExpr(NewQExpr()), NewQExpr(NewQExpr()), true},
		{NewQExpr(&Integer{Value: 1}), NewQExpr(&Integer{Value: 1}, &Integer{Value: 2}), false},
	}

	for i, tt := range tests {
		if got := Equal(tt.a, tt.b); got != tt.equal {
			t.Errorf("tests[%d] Equal(%s, %s) = %v, expected %v", i, tt.a.Inspect(), tt.b.Inspect(), got, tt.equal)
		}
	}
}

func TestFloat(t *testing.T) {
	if f, ok := Float(&Integer{Value: 3}); !ok || f != 3 {
		t.Errorf("expected 3, got %v %v", f, ok)
	}
	if f, ok := Float(&Decimal{Value: 0.25}); !ok || f != 0.25 {
		t.Errorf("expected 0.25, got %v %v", f, ok)
	}
	if _, ok := Float(NewQExpr()); ok {
		t.Errorf("a list is not a number")
	}
	if IsNumber(&Symbol{Name: "+"}) {
		t.Errorf("a symbol is not a number")
	}
}
