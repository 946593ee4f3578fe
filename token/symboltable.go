package token

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SymbolTable maps identifier names to integer ids assigned in
// first-appearance order. Iteration order is insertion order; the JSON
// form is an object whose keys appear in that order, and decoding
// preserves it (a plain map would not).
//
// A table is created fresh by each analyze or compile call and replaces
// the previous one wholesale.
type SymbolTable struct {
	names []string
	ids   map[string]int
}

// NewSymbolTable creates an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{ids: make(map[string]int)}
}

// Intern returns the id for name, assigning the next id if the name has
// not been seen before.
func (st *SymbolTable) Intern(name string) int {
	if id, ok := st.ids[name]; ok {
		return id
	}
	id := len(st.names)
	st.names = append(st.names, name)
	st.ids[name] = id
	return id
}

// Lookup returns the id for name and whether it is present.
func (st *SymbolTable) Lookup(name string) (int, bool) {
	id, ok := st.ids[name]
	return id, ok
}

// Names returns the identifier names in insertion order.
func (st *SymbolTable) Names() []string {
	out := make([]string, len(st.names))
	copy(out, st.names)
	return out
}

// Len returns the number of entries.
func (st *SymbolTable) Len() int {
	return len(st.names)
}

// Entry is a (name, id) pair used by ordered views of the table.
type Entry struct {
	Name string
	ID   int
}

// Entries returns all (name, id) pairs in insertion order.
func (st *SymbolTable) Entries() []Entry {
	out := make([]Entry, 0, len(st.names))
	for _, name := range st.names {
		out = append(out, Entry{Name: name, ID: st.ids[name]})
	}
	return out
}

// MarshalJSON encodes the table as a JSON object with keys in insertion
// order.
func (st *SymbolTable) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range st.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		fmt.Fprintf(&buf, "%d", st.ids[name])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object preserving key order by walking
// the decoder token stream instead of round-tripping through a map.
func (st *SymbolTable) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("symbol table: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("symbol table: expected object, got %v", tok)
	}

	st.names = nil
	st.ids = make(map[string]int)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("symbol table: %w", err)
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("symbol table: non-string key %v", keyTok)
		}

		valTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("symbol table: %w", err)
		}
		num, ok := valTok.(float64)
		if !ok {
			return fmt.Errorf("symbol table: non-numeric id for %q", name)
		}

		if _, dup := st.ids[name]; !dup {
			st.names = append(st.names, name)
		}
		st.ids[name] = int(num)
	}

	// Consume closing brace
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("symbol table: %w", err)
	}
	return nil
}
