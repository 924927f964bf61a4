package engine

import (
	"errors"
	"testing"

	"github.com/piwi3910/profilecut/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cortizoProfile is "Cortizo 101045 4 Pcs @ 6,500 mm" cut for two positions.
func cortizoProfile() model.CuttingRowData {
	return model.CuttingRowData{
		PartNumber:   "101045",
		Pcs:          4,
		LengthPerPcs: 6500,
		TotalLength:  26000,
		ColorInfo:    "T007T007",
		Instructions: []model.CuttingInstruction{
			{Qty: 2, Length: 1250, Position: "101"},
			{Qty: 2, Length: 1250, Position: "102"},
		},
	}
}

// frtProfile is a single 3 m bar with one 2,990 mm cut.
func frtProfile() model.CuttingRowData {
	return model.CuttingRowData{
		PartNumber:   "ZZZCONS7",
		Pcs:          1,
		LengthPerPcs: 3000,
		TotalLength:  3000,
		ColorInfo:    model.NoColor,
		Instructions: []model.CuttingInstruction{
			{Qty: 1, Length: 2990, Position: "103"},
		},
	}
}

func TestNewCuttingProcess(t *testing.T) {
	p := NewCuttingProcess(cortizoProfile())

	assert.Len(t, p.ID, 8)
	assert.False(t, p.IsCut())
	assert.Equal(t, 26000.0, p.TotalLength())
	assert.Equal(t, 5000.0, p.TotalLengthCutFromInstructions())
	assert.Zero(t, p.Wastage())
	assert.Empty(t, p.Cuts())
}

func TestCut(t *testing.T) {
	p := NewCuttingProcess(cortizoProfile())
	p.Cut()

	require.True(t, p.IsCut())
	require.Len(t, p.Cuts(), 2)
	assert.Equal(t, 21000.0, p.Wastage())
	assert.Equal(t, map[string]float64{"101": 2500, "102": 2500}, p.CutLengths())
	assert.Equal(t, []string{"101", "102"}, p.Positions())

	for _, c := range p.Cuts() {
		assert.Equal(t, "T007T007", c.Color)
		assert.Len(t, c.ID, 8)
	}
}

func TestCut_SecondCallIsNoop(t *testing.T) {
	p := NewCuttingProcess(cortizoProfile())
	p.Cut()
	p.Cut()

	assert.Len(t, p.Cuts(), 2)
	assert.Equal(t, 21000.0, p.Wastage())
	assert.Equal(t, 2500.0, p.CutLengthPerPosition("101"))
}

func TestCut_RepeatedPositionAccumulates(t *testing.T) {
	data := cortizoProfile()
	data.Instructions = []model.CuttingInstruction{
		{Qty: 1, Length: 1000, Position: "102"},
		{Qty: 1, Length: 500, Position: "101"},
		{Qty: 2, Length: 250, Position: "102"},
	}
	p := NewCuttingProcess(data)
	p.Cut()

	assert.Equal(t, 1500.0, p.CutLengthPerPosition("102"))
	assert.Equal(t, 500.0, p.CutLengthPerPosition("101"))
	assert.Equal(t, []string{"102", "101"}, p.Positions())
	assert.Equal(t, 24000.0, p.Wastage())
}

func TestCut_OverInstructedProfileHasNegativeWastage(t *testing.T) {
	p := NewCuttingProcess(model.CuttingRowData{
		PartNumber:   "1",
		Pcs:          1,
		LengthPerPcs: 1000,
		Instructions: []model.CuttingInstruction{{Qty: 1, Length: 5000, Position: "101"}},
	})
	p.Cut()

	assert.Equal(t, -4000.0, p.Wastage())
}

func TestColorCodeCut(t *testing.T) {
	p := NewCuttingProcess(cortizoProfile())
	p.Cut()

	err := p.ColorCodeCut(p.Cuts()[0])
	assert.True(t, errors.Is(err, model.ErrUnimplemented))
}

func TestCreateCuttingProcesses(t *testing.T) {
	processes := CreateCuttingProcesses([]model.CuttingRowData{cortizoProfile(), frtProfile()})

	require.Len(t, processes, 2)
	assert.Equal(t, "101045", processes[0].PartNumber)
	assert.Equal(t, "ZZZCONS7", processes[1].PartNumber)
	for _, p := range processes {
		assert.True(t, p.IsCut())
	}
	assert.NotEqual(t, processes[0].ID, processes[1].ID)
	assert.Equal(t, 10.0, processes[1].Wastage())
}
