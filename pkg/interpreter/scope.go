package interpreter

import (
	"fmt"

	"github.com/rhino1998/mipsc/pkg/compiler/kinds"
)

// Scope holds every variable of a program. All storage is static, so there
// is a single scope regardless of block nesting.
type Scope struct {
	order []string
	scope map[string]*Variable
}

func newScope() *Scope {
	return &Scope{
		scope: make(map[string]*Variable),
	}
}

func (s *Scope) Get(name string) (*Variable, bool) {
	v, ok := s.scope[name]
	return v, ok
}

func (s *Scope) Put(name string, kind kinds.Kind) error {
	_, ok := s.scope[name]
	if ok {
		return fmt.Errorf("name %s already exists", name)
	}

	s.scope[name] = NewVariable(kind)
	s.order = append(s.order, name)

	return nil
}

// Values snapshots the value of every variable.
func (s *Scope) Values() map[string]int32 {
	vals := make(map[string]int32, len(s.scope))
	for _, name := range s.order {
		vals[name] = s.scope[name].Value()
	}

	return vals
}
