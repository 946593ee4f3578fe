package compiler

import (
	"github.com/compviz-xyz/go-compviz/tree"
)

// TypeTable maps source identifier names to declared primitive types.
// Recognized values are "int" and "float"; undeclared identifiers
// default to int.
type TypeTable map[string]string

// TypeOf computes the static type of a node under the given type table.
// A leaf already marked for coercion counts as float.
func TypeOf(n *tree.Node, types TypeTable) string {
	if n == nil {
		return ""
	}
	if n.TypeInfo == tree.CoercionIntToFloat {
		return "float"
	}
	switch n.Kind {
	case tree.NUMBER:
		if isFloatLiteral(n.Value) {
			return "float"
		}
		return "int"
	case tree.ID:
		if t, ok := types[n.OriginalName]; ok {
			return t
		}
		return "int"
	case tree.OP, tree.ASSIGN:
		if n.Left != nil && n.Right != nil {
			if TypeOf(n.Left, types) == "float" || TypeOf(n.Right, types) == "float" {
				return "float"
			}
			return "int"
		}
	}
	return ""
}

// AnalyzeTypes walks the tree bottom-up and, wherever an operation mixes
// int and float operands, marks the int-typed side's integer leaves with
// the int-to-float coercion. The tree is annotated in place.
func AnalyzeTypes(n *tree.Node, types TypeTable) {
	if n == nil {
		return
	}
	AnalyzeTypes(n.Left, types)
	AnalyzeTypes(n.Right, types)

	if (n.Kind == tree.OP || n.Kind == tree.ASSIGN) && n.Left != nil && n.Right != nil {
		leftType := TypeOf(n.Left, types)
		rightType := TypeOf(n.Right, types)
		if leftType != rightType {
			if leftType == "int" {
				markIntLeaves(n.Left)
			}
			if rightType == "int" {
				markIntLeaves(n.Right)
			}
		}
	}
}

// markIntLeaves marks every integer-valued leaf under n for coercion.
// Float literals are already the target type and stay untouched.
func markIntLeaves(n *tree.Node) {
	if n == nil {
		return
	}
	isLeaf := n.Kind == tree.ID || n.Kind == tree.NUMBER
	if isLeaf && !(n.Kind == tree.NUMBER && isFloatLiteral(n.Value)) {
		n.TypeInfo = tree.CoercionIntToFloat
		return
	}
	markIntLeaves(n.Left)
	markIntLeaves(n.Right)
}
