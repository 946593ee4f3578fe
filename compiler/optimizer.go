package compiler

import "strconv"

// Optimize performs constant folding and trivial copy collapsing on a
// three-address sequence. Folded temporaries are propagated into later
// operands; a temporary that ends up used exactly once, by the final
// copy, is inlined into it.
func Optimize(instrs []Instr) []Instr {
	folded := foldConstants(instrs)
	return collapseFinalCopy(folded)
}

func foldConstants(instrs []Instr) []Instr {
	consts := make(map[string]string)
	var out []Instr

	for _, in := range instrs {
		a := substitute(in.A, consts)
		b := substitute(in.B, consts)

		if in.Op != "" {
			if av, aok := numericValue(a); aok {
				if bv, bok := numericValue(b); bok {
					if v, ok := applyOp(in.Op, av, bv); ok {
						consts[in.Dest] = formatNumber(v)
						continue
					}
				}
			}
			out = append(out, Instr{Dest: in.Dest, Op: in.Op, A: a, B: b})
			continue
		}

		// Copy: fold through if the source became a constant
		if v, ok := consts[a]; ok {
			a = v
		}
		out = append(out, Instr{Dest: in.Dest, A: a})
	}
	return out
}

// collapseFinalCopy merges "tN = a op b; X = tN" into "X = a op b" when
// tN is not referenced anywhere else.
func collapseFinalCopy(instrs []Instr) []Instr {
	n := len(instrs)
	if n < 2 {
		return instrs
	}
	last := instrs[n-1]
	prev := instrs[n-2]
	if last.Op != "" || last.A != prev.Dest {
		return instrs
	}
	for _, in := range instrs[:n-2] {
		if in.A == prev.Dest || in.B == prev.Dest {
			return instrs
		}
	}
	merged := append([]Instr{}, instrs[:n-2]...)
	merged = append(merged, Instr{Dest: last.Dest, Op: prev.Op, A: prev.A, B: prev.B})
	return merged
}

func substitute(operand string, consts map[string]string) string {
	if v, ok := consts[operand]; ok {
		return v
	}
	return operand
}

func numericValue(operand string) (float64, bool) {
	if operand == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(operand, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func applyOp(op string, a, b float64) (float64, bool) {
	switch op {
	case "+":
		return a + b, true
	case "-":
		return a - b, true
	case "*":
		return a * b, true
	case "/":
		if b == 0 {
			return 0, false
		}
		return a / b, true
	}
	return 0, false
}

// formatNumber renders a folded value without a trailing fractional
// zero, so integral results stay integral in the listing.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
