package compiler

// opMnemonics maps three-address operators to assembly mnemonics.
var opMnemonics = map[string]string{
	"+": "ADD",
	"-": "SUB",
	"*": "MUL",
	"/": "DIV",
}

// GenerateAssembly lowers a three-address sequence to a flat register
// listing. Each instruction loads its operands, applies the operation,
// and stores the destination:
//
//	LD R1, a
//	LD R2, b
//	ADD R3, R1, R2
//	ST R3, t1
//
// Registers restart at R1 for every instruction; the listing is a
// display artifact, not input to a real machine.
func GenerateAssembly(instrs []Instr) []string {
	var out []string
	for _, in := range instrs {
		if in.Op == "" {
			out = append(out,
				"LD R1, "+in.A,
				"ST R1, "+in.Dest)
			continue
		}
		mnemonic, ok := opMnemonics[in.Op]
		if !ok {
			mnemonic = "OP"
		}
		out = append(out,
			"LD R1, "+in.A,
			"LD R2, "+in.B,
			mnemonic+" R3, R1, R2",
			"ST R3, "+in.Dest)
	}
	return out
}
