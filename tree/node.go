// Package tree defines the recursive expression node emitted by the
// syntax and semantic phases of the compilation service.
package tree

// Kind classifies an expression node.
type Kind string

const (
	OP     Kind = "OP"
	ASSIGN Kind = "ASSIGN"
	ID     Kind = "ID"
	NUMBER Kind = "NUMBER"
)

// CoercionIntToFloat marks a leaf whose integer value was implicitly
// converted to float during semantic analysis. It is the only coercion
// the expression language performs and is only meaningful on the
// semantic tree.
const CoercionIntToFloat = "int to float"

// Node is one node of a syntax or semantic tree. In this grammar a node
// has either zero or two children; Left and Right are nil at the leaves.
//
// Value holds the display form (the renamed internal symbol for
// identifiers). OriginalName, when set on an ID node, carries the source
// name and takes precedence for display. TypeInfo is set by semantic
// analysis when an implicit conversion was inserted.
type Node struct {
	Kind         Kind   `json:"node_type"`
	Value        string `json:"value"`
	OriginalName string `json:"original_name,omitempty"`
	TypeInfo     string `json:"type_info,omitempty"`
	Left         *Node  `json:"left,omitempty"`
	Right        *Node  `json:"right,omitempty"`
}

// DisplayName returns the name to show for the node: the original source
// name for identifiers that carry one, otherwise the value.
func (n *Node) DisplayName() string {
	if n.Kind == ID && n.OriginalName != "" {
		return n.OriginalName
	}
	return n.Value
}

// Walk calls fn for every node in preorder (node, left subtree, right
// subtree).
func (n *Node) Walk(fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	n.Left.Walk(fn)
	n.Right.Walk(fn)
}
