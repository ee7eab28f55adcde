package object

// Symbol names a builtin operation. It has no binding of its own and only
// means something at the head of an evaluable list.
type Symbol struct {
	Name string
}

func (s *Symbol) objectNode()      {}
func (s *Symbol) Type() ObjectType { return SYMBOL_OBJ }
func (s *Symbol) Inspect() string  { return s.Name }
