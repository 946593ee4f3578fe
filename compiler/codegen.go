package compiler

import (
	"strconv"

	"github.com/compviz-xyz/go-compviz/tree"
)

// Instr is one three-address instruction. Op is empty for a plain copy
// (Dest = A); otherwise Dest = A Op B.
type Instr struct {
	Dest string
	Op   string
	A    string
	B    string
}

// String renders the instruction in listing form.
func (in Instr) String() string {
	if in.Op == "" {
		return in.Dest + " = " + in.A
	}
	return in.Dest + " = " + in.A + " " + in.Op + " " + in.B
}

// Listing renders instructions one per element, in order.
func Listing(instrs []Instr) []string {
	out := make([]string, len(instrs))
	for i, in := range instrs {
		out[i] = in.String()
	}
	return out
}

type codegen struct {
	instrs  []Instr
	tempSeq int
}

func (g *codegen) newTemp() string {
	g.tempSeq++
	return "t" + strconv.Itoa(g.tempSeq)
}

// GenerateIntermediate lowers an expression tree to three-address code.
// Operands use original source names for identifiers. The final
// instruction copies the last temporary into the assigned variable.
func GenerateIntermediate(root *tree.Node) []Instr {
	g := &codegen{}
	if root == nil {
		return nil
	}
	if root.Kind == tree.ASSIGN && root.Left != nil && root.Right != nil {
		value := g.gen(root.Right)
		g.instrs = append(g.instrs, Instr{Dest: root.Left.DisplayName(), A: value})
		return g.instrs
	}
	g.gen(root)
	return g.instrs
}

func (g *codegen) gen(n *tree.Node) string {
	switch n.Kind {
	case tree.NUMBER:
		return n.Value
	case tree.ID:
		return n.DisplayName()
	default:
		left := g.gen(n.Left)
		right := g.gen(n.Right)
		temp := g.newTemp()
		g.instrs = append(g.instrs, Instr{Dest: temp, Op: n.Value, A: left, B: right})
		return temp
	}
}
