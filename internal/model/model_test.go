package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellGridKeepsInsertionOrder(t *testing.T) {
	g := NewCellGrid()
	g.Set("D2", Cell{Type: "s", Value: "second"})
	g.Set("B10", Cell{Type: "s", Value: "first"})
	g.Set("A1", Cell{Type: "s", Value: "third"})
	g.Set("D2", Cell{Type: "s", Value: "updated"})

	assert.Equal(t, []string{"D2", "B10", "A1"}, g.Addresses())
	c, ok := g.Get("D2")
	require.True(t, ok)
	assert.Equal(t, "updated", c.Value)
	assert.Equal(t, 3, g.Len())
}

func TestCellGridDelete(t *testing.T) {
	g := NewCellGrid()
	g.Set("A1", Cell{Value: "a"})
	g.Set("A2", Cell{Value: "b"})
	g.Delete("A1")
	g.Delete("Z99")

	assert.Equal(t, []string{"A2"}, g.Addresses())
	_, ok := g.Get("A1")
	assert.False(t, ok)
}

func TestCellGridStripMetadata(t *testing.T) {
	g := NewCellGrid()
	g.Set("!ref", Cell{})
	g.Set("A1", Cell{Value: "a"})
	g.Set("!margins", Cell{})
	g.Set("B1", Cell{Value: "b"})
	g.Set("!merges", Cell{})

	g.StripMetadata()

	assert.Equal(t, []string{"A1", "B1"}, g.Addresses())
}

func TestCellGridUnmarshalJSON(t *testing.T) {
	data := `{
		"!ref": "A1:D3",
		"C3": {"t": "s", "v": "Position: 101", "r": "<t>Position: 101</t>"},
		"A1": {"t": "n", "v": 42},
		"B2": {"t": "s", "v": " ", "r": "<t> </t>"},
		"!merges": [{"s": {"c": 0, "r": 0}, "e": {"c": 1, "r": 0}}],
		"!margins": {"left": 0.7}
	}`

	var g CellGrid
	require.NoError(t, json.Unmarshal([]byte(data), &g))

	assert.Equal(t, []string{"C3", "A1", "B2"}, g.Addresses())
	a1, _ := g.Get("A1")
	assert.Equal(t, "42", a1.Value)
	b2, _ := g.Get("B2")
	assert.True(t, b2.IsBlankMarker())
	c3, _ := g.Get("C3")
	assert.False(t, c3.IsBlankMarker())
}

func TestCellGridJSONRoundTripPreservesOrder(t *testing.T) {
	g := NewCellGrid()
	g.Set("R7", Cell{Type: "s", Value: "Ion"})
	g.Set("B1", Cell{Type: "s", Value: "x", Raw: "<t>x</t>"})

	data, err := json.Marshal(g)
	require.NoError(t, err)

	var back CellGrid
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, g.Addresses(), back.Addresses())
}

func TestCellGridUnmarshalRejectsArray(t *testing.T) {
	var g CellGrid
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &g))
}

func TestErrorUnwrapsToKind(t *testing.T) {
	err := NewError(ErrMissingProfileInfo, "Cutting 1", "row %d", 4)

	assert.True(t, errors.Is(err, ErrMissingProfileInfo))
	assert.False(t, errors.Is(err, ErrEmptyInput))
	assert.Equal(t, "Cutting 1: could not extract profile info: row 4", err.Error())

	bare := &Error{Kind: ErrEmptyInput}
	assert.Equal(t, "no data to parse", bare.Error())
}

func TestNewProfileCut(t *testing.T) {
	c := NewProfileCut(CuttingInstruction{Qty: 2, Length: 1250, Position: "101"}, "T007T007")

	assert.Len(t, c.ID, 8)
	assert.Equal(t, 2, c.Qty)
	assert.Equal(t, 1250.0, c.Length)
	assert.Equal(t, "101", c.Position)
	assert.Equal(t, "T007T007", c.Color)
}

func TestSortedKeys(t *testing.T) {
	m := map[string]int{"102": 1, "007": 2, "101": 3}
	assert.Equal(t, []string{"007", "101", "102"}, SortedKeys(m))
}
