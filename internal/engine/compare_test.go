package engine

import (
	"testing"

	"github.com/piwi3910/profilecut/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioNames(scenarios []ComparisonScenario) []string {
	names := make([]string, len(scenarios))
	for i, s := range scenarios {
		names[i] = s.Name
	}
	return names
}

func TestBuildDefaultScenarios(t *testing.T) {
	base := model.DefaultAppConfig().LayoutSettings()

	scenarios := BuildDefaultScenarios(base)
	assert.Equal(t, []string{"Current Settings", "Sequential", "Kerf 2.0mm (half)", "No Kerf"}, scenarioNames(scenarios))
	assert.Equal(t, 2.0, scenarios[2].Settings.KerfWidth)
	assert.Equal(t, base.Strategy, scenarios[2].Settings.Strategy)

	seq := model.LayoutSettings{Strategy: model.LayoutSequential}
	assert.Equal(t, []string{"Current Settings", "First Fit Decreasing"}, scenarioNames(BuildDefaultScenarios(seq)))
}

func TestCompareScenarios(t *testing.T) {
	scenarios := []ComparisonScenario{
		{Name: "ffd", Settings: model.LayoutSettings{Strategy: model.LayoutFirstFitDecreasing}},
		{Name: "seq", Settings: model.LayoutSettings{Strategy: model.LayoutSequential}},
	}

	results := CompareScenarios(scenarios, []*CuttingProcess{mixedProcess()})
	require.Len(t, results, 2)

	assert.Equal(t, "ffd", results[0].Scenario.Name)
	assert.Equal(t, 2, results[0].BarsUsed)
	assert.Zero(t, results[0].UnplacedCount)
	assert.InDelta(t, 0.0, results[0].WastePercent, 1e-9)

	assert.Equal(t, 2, results[1].BarsUsed)
	assert.Equal(t, 1, results[1].UnplacedCount)
	assert.InDelta(t, 35.0, results[1].WastePercent, 1e-9)
}

func TestCompareScenarios_OffcutLength(t *testing.T) {
	p := processOf(1, 6000, model.CuttingInstruction{Qty: 1, Length: 2000, Position: "101"})
	results := CompareScenarios([]ComparisonScenario{
		{Name: "keep", Settings: model.LayoutSettings{MinOffcutLength: 500}},
		{Name: "scrap", Settings: model.LayoutSettings{MinOffcutLength: 5000}},
	}, []*CuttingProcess{p})

	assert.Equal(t, 4000.0, results[0].OffcutLength)
	assert.Zero(t, results[1].OffcutLength)
}
