// Package layout turns abstract expression trees into styled visual
// hierarchies and computes connector-edge geometry between rendered
// nodes. Both passes are pure: the transform depends only on its inputs,
// and the geometry pass reads measured boxes through the Surface
// capability without mutating anything.
package layout

import (
	"strings"

	"github.com/compviz-xyz/go-compviz/tree"
)

// Class is the primary styling tag of a visual node. Every node carries
// exactly one.
type Class string

const (
	ClassOperator Class = "operator"
	ClassID       Class = "id"
	ClassNumber   Class = "number"
	ClassValue    Class = "value"
)

// ClassCoerced is the additional tag layered onto nodes whose displayed
// value was implicitly converted.
const ClassCoerced = "coerced"

// NodeID identifies a visual node within one laid-out tree. IDs are
// assigned in preorder starting at 0, so identical input trees produce
// identical ids.
type NodeID int

// VisualNode is the positioned-for-display form of a tree node. It is
// rebuilt from scratch on every render and holds no reference back to
// the tree it came from.
type VisualNode struct {
	ID       NodeID
	Class    Class
	Coerced  bool
	Display  string
	Children []*VisualNode
}

// Classes returns the full styling tag set: the primary class plus
// "coerced" when the node was annotated.
func (v *VisualNode) Classes() []string {
	if v.Coerced {
		return []string{string(v.Class), ClassCoerced}
	}
	return []string{string(v.Class)}
}

// Count returns the number of nodes in the visual tree rooted at v.
func (v *VisualNode) Count() int {
	if v == nil {
		return 0
	}
	n := 1
	for _, child := range v.Children {
		n += child.Count()
	}
	return n
}

// Layout transforms a tree into its visual hierarchy. A nil tree yields
// nil, the empty marker that renders nothing.
//
// When annotateCoercion is set (semantic tree mode), leaves marked with
// the int-to-float conversion gain the coerced tag and a display suffix
// derived from the marker via CoercionSuffix. A missing child is omitted
// from Children entirely; when both children exist, left precedes right.
func Layout(n *tree.Node, annotateCoercion bool) *VisualNode {
	next := NodeID(0)
	return layoutNode(n, annotateCoercion, &next)
}

func layoutNode(n *tree.Node, annotateCoercion bool, next *NodeID) *VisualNode {
	if n == nil {
		return nil
	}

	v := &VisualNode{
		ID:      *next,
		Class:   classOf(n.Kind),
		Display: n.DisplayName(),
	}
	*next++

	if annotateCoercion && n.TypeInfo == tree.CoercionIntToFloat {
		v.Coerced = true
		v.Display += CoercionSuffix(n.TypeInfo)
	}

	if left := layoutNode(n.Left, annotateCoercion, next); left != nil {
		v.Children = append(v.Children, left)
	}
	if right := layoutNode(n.Right, annotateCoercion, next); right != nil {
		v.Children = append(v.Children, right)
	}
	return v
}

// classOf maps a tree node kind to its primary styling class.
func classOf(kind tree.Kind) Class {
	switch kind {
	case tree.OP, tree.ASSIGN:
		return ClassOperator
	case tree.ID:
		return ClassID
	case tree.NUMBER:
		return ClassNumber
	}
	return ClassValue
}

// CoercionSuffix derives the display marker for a conversion annotation.
// The target type is taken from the marker text itself ("int to float"
// yields " -> float"), so new coercion kinds extend without touching
// call sites. Unrecognized markers yield no suffix.
func CoercionSuffix(typeInfo string) string {
	_, target, ok := strings.Cut(typeInfo, " to ")
	if !ok || target == "" {
		return ""
	}
	return " -> " + target
}
