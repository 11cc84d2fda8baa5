package compiler

import (
	"github.com/p-sawicki/cplc/pkg/ir"
	"github.com/p-sawicki/cplc/pkg/lexer"
)

// Symbol binds an identifier to its declared type and the IR storage that
// holds its value.
type Symbol struct {
	name    string
	typ     lexer.TypeID
	storage ir.Value
}

func (s *Symbol) Name() string { return s.name }

func (s *Symbol) TypeID() lexer.TypeID { return s.typ }

func (s *Symbol) Storage() ir.Value { return s.storage }

// SymbolTable is a stack of scopes. Push and Pop bracket every block,
// function body and conditional arm; lookups walk from the innermost scope
// outwards.
type SymbolTable struct {
	tables []map[string]*Symbol
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{tables: []map[string]*Symbol{{}}}
}

func (s *SymbolTable) Push() {
	s.tables = append(s.tables, map[string]*Symbol{})
}

func (s *SymbolTable) Pop() {
	s.tables = s.tables[:len(s.tables)-1]
}

// Add registers a symbol in the innermost scope, shadowing any outer
// binding of the same name.
func (s *SymbolTable) Add(sym *Symbol) {
	s.tables[len(s.tables)-1][sym.name] = sym
}

// Get resolves a name against the scope stack.
func (s *SymbolTable) Get(name string) (*Symbol, bool) {
	for i := len(s.tables) - 1; i >= 0; i-- {
		if sym, ok := s.tables[i][name]; ok {
			return sym, true
		}
	}
	return nil, false
}
