package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// BlankMarkerRaw is the rich-text markup of a cell holding a single blank
// run. Exports use such cells to terminate quantity and number blocks.
const BlankMarkerRaw = "<t> </t>"

// Cell is one spreadsheet cell as delivered by the adapter.
type Cell struct {
	Type  string `json:"t"` // "s" string, "n" number, "b" bool ...
	Value string `json:"v"` // formatted text value
	Raw   string `json:"r"` // rich-text markup, e.g. "<t>Number</t>"
}

// IsBlankMarker reports whether the cell is an empty rich-text run.
func (c Cell) IsBlankMarker() bool {
	return c.Raw == BlankMarkerRaw
}

// UnmarshalJSON accepts both string and numeric "v" members, as produced by
// SheetJS for string and number cells respectively.
func (c *Cell) UnmarshalJSON(data []byte) error {
	var aux struct {
		Type  string          `json:"t"`
		Value json.RawMessage `json:"v"`
		Raw   string          `json:"r"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	c.Type = aux.Type
	c.Raw = aux.Raw
	c.Value = ""
	if len(aux.Value) == 0 || string(aux.Value) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(aux.Value, &s); err == nil {
		c.Value = s
		return nil
	}
	c.Value = strings.TrimSpace(string(aux.Value))
	return nil
}

// CellGrid is a sparse, address-keyed cell map that remembers insertion
// order. Extraction heuristics depend on sheet order, so iteration always
// follows the order cells were added.
type CellGrid struct {
	keys  []string
	cells map[string]Cell
}

// NewCellGrid returns an empty grid.
func NewCellGrid() *CellGrid {
	return &CellGrid{cells: make(map[string]Cell)}
}

// Set stores a cell. A new address is appended to the iteration order; an
// existing one keeps its position.
func (g *CellGrid) Set(addr string, c Cell) {
	if g.cells == nil {
		g.cells = make(map[string]Cell)
	}
	if _, ok := g.cells[addr]; !ok {
		g.keys = append(g.keys, addr)
	}
	g.cells[addr] = c
}

// Get returns the cell at addr.
func (g *CellGrid) Get(addr string) (Cell, bool) {
	if g == nil {
		return Cell{}, false
	}
	c, ok := g.cells[addr]
	return c, ok
}

// Delete removes addr from the grid.
func (g *CellGrid) Delete(addr string) {
	if _, ok := g.cells[addr]; !ok {
		return
	}
	delete(g.cells, addr)
	for i, k := range g.keys {
		if k == addr {
			g.keys = append(g.keys[:i], g.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of cells.
func (g *CellGrid) Len() int {
	if g == nil {
		return 0
	}
	return len(g.keys)
}

// Addresses returns the cell addresses in grid order.
func (g *CellGrid) Addresses() []string {
	if g == nil {
		return nil
	}
	out := make([]string, len(g.keys))
	copy(out, g.keys)
	return out
}

// Each calls fn for every cell in grid order.
func (g *CellGrid) Each(fn func(addr string, c Cell)) {
	if g == nil {
		return
	}
	for _, k := range g.keys {
		fn(k, g.cells[k])
	}
}

// StripMetadata removes sheet-level metadata entries ("!ref", "!margins",
// "!merges" and any other "!"-prefixed key).
func (g *CellGrid) StripMetadata() {
	if g == nil {
		return
	}
	var meta []string
	for _, k := range g.keys {
		if strings.HasPrefix(k, "!") {
			meta = append(meta, k)
		}
	}
	for _, k := range meta {
		g.Delete(k)
	}
}

// UnmarshalJSON decodes a SheetJS worksheet object. Members whose value is
// not a cell object (metadata such as "!merges") are skipped. Member order
// is preserved.
func (g *CellGrid) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("cell grid: expected object, got %v", tok)
	}

	g.keys = nil
	g.cells = make(map[string]Cell)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		addr, ok := tok.(string)
		if !ok {
			return fmt.Errorf("cell grid: unexpected key %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("cell grid: %s: %w", addr, err)
		}
		if strings.HasPrefix(addr, "!") {
			continue
		}
		var c Cell
		if err := json.Unmarshal(raw, &c); err != nil {
			return fmt.Errorf("cell grid: %s: %w", addr, err)
		}
		g.Set(addr, c)
	}
	_, err = dec.Token()
	return err
}

// MarshalJSON encodes the grid as an object in grid order.
func (g *CellGrid) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range g.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(g.cells[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
