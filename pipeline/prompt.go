package pipeline

import (
	"strings"

	"github.com/compviz-xyz/go-compviz/token"
)

// VarType is a declared primitive type for an identifier.
type VarType string

const (
	TypeInt   VarType = "int"
	TypeFloat VarType = "float"
)

// ParseVarType validates a user-provided type name.
func ParseVarType(s string) (VarType, bool) {
	switch VarType(s) {
	case TypeInt:
		return TypeInt, true
	case TypeFloat:
		return TypeFloat, true
	}
	return "", false
}

// TypeTable maps identifier names to declared types. It is built
// interactively and sent verbatim with the compile request; the service
// tolerates partial or empty tables.
type TypeTable map[string]VarType

// TypeSelector reads one selected type for a prompted name. A selector
// whose widget for a name is absent reports false and the name is
// simply omitted from the collected table.
type TypeSelector interface {
	Select(name string) (VarType, bool)
}

// SelectorFunc adapts a function to the TypeSelector interface.
type SelectorFunc func(name string) (VarType, bool)

func (f SelectorFunc) Select(name string) (VarType, bool) {
	return f(name)
}

// AssignedVariable derives the pipeline's output variable from the raw
// source: the substring before the first '=', trimmed. Sources without
// an '=' yield the whole trimmed text.
func AssignedVariable(source string) string {
	name, _, _ := strings.Cut(source, "=")
	return strings.TrimSpace(name)
}

// RequiredInputs derives the identifiers that need a user-declared type:
// the symbol table in iteration order, minus the assigned variable. An
// empty result means the prompt surface is suppressed entirely and
// compile proceeds with an empty type table.
func RequiredInputs(st *token.SymbolTable, source string) []string {
	if st == nil {
		return nil
	}
	assigned := AssignedVariable(source)
	var names []string
	for _, name := range st.Names() {
		if name == assigned {
			continue
		}
		names = append(names, name)
	}
	return names
}

// Collect reads a type for every prompted name. Names without a
// selection are omitted rather than erroring.
func Collect(names []string, sel TypeSelector) TypeTable {
	table := make(TypeTable)
	for _, name := range names {
		if t, ok := sel.Select(name); ok {
			table[name] = t
		}
	}
	return table
}
