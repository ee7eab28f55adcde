package object

import "strings"

// List is the ordered cell sequence shared by SExpr and QExpr.
type List struct {
	Cells []Object
}

func (l *List) Len() int { return len(l.Cells) }

// Add appends x, taking ownership of it.
func (l *List) Add(x Object) {
	l.Cells = append(l.Cells, x)
}

// Pop removes and returns the cell at i, keeping the order of the rest.
func (l *List) Pop(i int) Object {
	x := l.Cells[i]
	copy(l.Cells[i:], l.Cells[i+1:])
	l.Cells[len(l.Cells)-1] = nil
	l.Cells = l.Cells[:len(l.Cells)-1]
	return x
}

// Take returns the cell at i and releases every other cell.
func (l *List) Take(i int) Object {
	x := l.Pop(i)
	l.Cells = nil
	return x
}

// Insert places x at position i, shifting later cells right.
func (l *List) Insert(i int, x Object) {
	l.Cells = append(l.Cells, nil)
	copy(l.Cells[i+1:], l.Cells[i:])
	l.Cells[i] = x
}

// Join moves every cell of other onto the end of l, leaving other empty.
func (l *List) Join(other *List) {
	l.Cells = append(l.Cells, other.Cells...)
	other.Cells = nil
}

func (l *List) inspect(open, closing string) string {
	parts := make([]string, len(l.Cells))
	for i, c := range l.Cells {
		parts[i] = c.Inspect()
	}
	return open + strings.Join(parts, " ") + closing
}

func (l *List) equal(other *List) bool {
	if len(l.Cells) != len(other.Cells) {
		return false
	}
	for i := range l.Cells {
		if !Equal(l.Cells[i], other.Cells[i]) {
			return false
		}
	}
	return true
}
