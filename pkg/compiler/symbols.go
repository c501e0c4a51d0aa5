package compiler

import (
	"fmt"
	"slices"
	"strings"

	"github.com/rhino1998/mipsc/pkg/compiler/kinds"
)

// Symbols is the symbol table as seen by lowering.
type Symbols interface {
	Empty() bool
	Add(name string, kind kinds.Kind) bool
	Get(name string) kinds.Kind
	All() []Symbol
}

type Symbol struct {
	Name string
	Kind kinds.Kind
}

// SymbolTable maps every declared name to its kind. Enumeration follows
// declaration order.
type SymbolTable struct {
	order []string
	table map[string]kinds.Kind
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		table: make(map[string]kinds.Kind),
	}
}

func (s *SymbolTable) Empty() bool {
	return len(s.table) == 0
}

func (s *SymbolTable) Len() int {
	return len(s.table)
}

// Add declares name. It returns false and leaves the table unchanged if name
// is already declared.
func (s *SymbolTable) Add(name string, kind kinds.Kind) bool {
	if _, ok := s.table[name]; ok {
		return false
	}

	s.table[name] = kind
	s.order = append(s.order, name)

	return true
}

func (s *SymbolTable) Remove(name string) bool {
	if _, ok := s.table[name]; !ok {
		return false
	}

	delete(s.table, name)
	s.order = slices.DeleteFunc(s.order, func(n string) bool {
		return n == name
	})

	return true
}

func (s *SymbolTable) Exists(name string) bool {
	_, ok := s.table[name]
	return ok
}

// Get returns kinds.None for undeclared names.
func (s *SymbolTable) Get(name string) kinds.Kind {
	kind, ok := s.table[name]
	if !ok {
		return kinds.None
	}

	return kind
}

func (s *SymbolTable) All() []Symbol {
	syms := make([]Symbol, 0, len(s.order))
	for _, name := range s.order {
		syms = append(syms, Symbol{Name: name, Kind: s.table[name]})
	}

	return syms
}

func (s *SymbolTable) String() string {
	var sb strings.Builder
	for _, sym := range s.All() {
		fmt.Fprintf(&sb, "%s %s\n", sym.Kind, sym.Name)
	}

	return sb.String()
}
