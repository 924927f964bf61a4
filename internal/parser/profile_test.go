package parser

import (
	"testing"

	"github.com/piwi3910/profilecut/internal/model"
	"github.com/stretchr/testify/assert"
)

const sampleHeader = "Cortizo 101045 4 Pcs @ 6,500 mm Colour: Special 2 Powder Coating PE007TD"

func TestExtractProfileInfo_Cortizo(t *testing.T) {
	info, ok := ExtractProfileInfo(sampleHeader)

	assert.True(t, ok)
	assert.Equal(t, model.ProfileHeaderInfo{
		PartNumber:   "101045",
		Pcs:          4,
		LengthPerPcs: 6500,
		Color:        "Special 2 Powder Coating PE007TD",
	}, info)
	assert.Equal(t, "T007T007", ColorCode(info.Color))
}

func TestExtractProfileInfo_FRTWinsOverCortizo(t *testing.T) {
	info, ok := ExtractProfileInfo("FRT  ZZZCONS0042 Cortizo 2001 2 Pcs @ 3,000 mm Colour: RAL 9016")

	assert.True(t, ok)
	assert.Equal(t, "ZZZCONS0042", info.PartNumber)
	assert.Equal(t, 2, info.Pcs)
	assert.Equal(t, 3000.0, info.LengthPerPcs)
	assert.Equal(t, "RAL 9016", info.Color)
}

func TestExtractProfileInfo_FRTMustStartALine(t *testing.T) {
	_, ok := PartNumber("see FRT ZZZCONS1")
	assert.False(t, ok)

	pn, ok := PartNumber("note\nFRT ZZZCONS1")
	assert.True(t, ok)
	assert.Equal(t, "ZZZCONS1", pn)
}

func TestExtractProfileInfo_Failures(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"no part number", "Profile 4 Pcs @ 6,500 mm Colour: RAL 9016"},
		{"no pieces", "Cortizo 101045 @ 6,500 mm Colour: RAL 9016"},
		{"zero pieces", "Cortizo 101045 0 Pcs @ 6,500 mm Colour: RAL 9016"},
		{"no length", "Cortizo 101045 4 Pcs Colour: RAL 9016"},
		{"zero length", "Cortizo 101045 4 Pcs @ 0 mm Colour: RAL 9016"},
		{"comma-only length", "Cortizo 101045 4 Pcs @ ,, mm Colour: RAL 9016"},
		{"no colour", "Cortizo 101045 4 Pcs @ 6,500 mm"},
		{"blank colour", "Cortizo 101045 4 Pcs @ 6,500 mm Colour:    "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := ExtractProfileInfo(tt.header)
			assert.False(t, ok)
		})
	}
}

func TestColorCode(t *testing.T) {
	tests := []struct {
		colour string
		want   string
	}{
		{"Special 2 Powder Coating PE007TD", "T007T007"},
		{"Special 2 Powder Coating PE12TD matt", "T12T12"},
		{"Special 2 Powder Coating RAL 7016", model.NoColor},
		{"Special 3 Powder Coating wood effect", "Sublimare"},
		{"RAL 9016 PE007TD", model.NoColor},
		{"", model.NoColor},
	}
	for _, tt := range tests {
		t.Run(tt.colour, func(t *testing.T) {
			assert.Equal(t, tt.want, ColorCode(tt.colour))
		})
	}
}

func TestIsHeaderRow(t *testing.T) {
	assert.True(t, IsHeaderRow(sampleHeader))
	assert.True(t, IsHeaderRow("FRT ZZZCONS1"))
	assert.False(t, IsHeaderRow("Cortizo"))
	assert.False(t, IsHeaderRow("FRT"))
	assert.False(t, IsHeaderRow("2 1,250 101"))
}

func TestParseInstruction(t *testing.T) {
	tests := []struct {
		row  string
		want model.CuttingInstruction
		ok   bool
	}{
		{"2 1,250 101", model.CuttingInstruction{Qty: 2, Length: 1250, Position: "101"}, true},
		{"1 845.5 007", model.CuttingInstruction{Qty: 1, Length: 845.5, Position: "007"}, true},
		{"12   1,234,567.25   200", model.CuttingInstruction{Qty: 12, Length: 1234567.25, Position: "200"}, true},
		{"2 1250 1011", model.CuttingInstruction{}, false},
		{"2 1250 10", model.CuttingInstruction{}, false},
		{"2 1250,5 101", model.CuttingInstruction{}, false},
		{"Qty Length Pos", model.CuttingInstruction{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.row, func(t *testing.T) {
			got, ok := ParseInstruction(tt.row)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
