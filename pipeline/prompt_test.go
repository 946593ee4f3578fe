package pipeline

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/compviz-xyz/go-compviz/token"
)

func symbolsFor(names ...string) *token.SymbolTable {
	st := token.NewSymbolTable()
	for _, n := range names {
		st.Intern(n)
	}
	return st
}

func TestAssignedVariable(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"x = a + b", "x"},
		{"  result = 1", "result"},
		{"Z=2*y", "Z"},
		{"noassign", "noassign"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := AssignedVariable(tc.source); got != tc.want {
			t.Errorf("AssignedVariable(%q) = %q, want %q", tc.source, got, tc.want)
		}
	}
}

func TestRequiredInputsExcludesAssigned(t *testing.T) {
	st := symbolsFor("x", "a", "b")
	got := RequiredInputs(st, "x = a + b")
	want := []string{"a", "b"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RequiredInputs mismatch (-want +got):\n%s", diff)
	}
}

func TestRequiredInputsEmptyWhenOnlyAssigned(t *testing.T) {
	st := symbolsFor("y")
	if got := RequiredInputs(st, "y = 2 + 3.5"); len(got) != 0 {
		t.Errorf("RequiredInputs = %v, want empty", got)
	}
	if got := RequiredInputs(nil, "y = 1"); got != nil {
		t.Errorf("RequiredInputs(nil table) = %v, want nil", got)
	}
}

func TestRequiredInputsPreservesTableOrder(t *testing.T) {
	st := symbolsFor("b", "out", "a")
	got := RequiredInputs(st, "out = b + a")
	want := []string{"b", "a"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("order not preserved (-want +got):\n%s", diff)
	}
}

func TestCollect(t *testing.T) {
	selections := map[string]VarType{"a": TypeFloat, "b": TypeInt}
	sel := SelectorFunc(func(name string) (VarType, bool) {
		t, ok := selections[name]
		return t, ok
	})

	got := Collect([]string{"a", "b", "missing"}, sel)
	want := TypeTable{"a": TypeFloat, "b": TypeInt}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Collect mismatch (-want +got):\n%s", diff)
	}

	// Suppressed prompts yield an empty, usable table
	empty := Collect(nil, sel)
	if len(empty) != 0 {
		t.Errorf("Collect(nil) = %v, want empty table", empty)
	}
}

func TestParseVarType(t *testing.T) {
	if v, ok := ParseVarType("int"); !ok || v != TypeInt {
		t.Errorf("ParseVarType(int) = %v, %v", v, ok)
	}
	if v, ok := ParseVarType("float"); !ok || v != TypeFloat {
		t.Errorf("ParseVarType(float) = %v, %v", v, ok)
	}
	if _, ok := ParseVarType("double"); ok {
		t.Error("ParseVarType(double) should be rejected")
	}
}
