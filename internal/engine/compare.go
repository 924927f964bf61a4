package engine

import (
	"fmt"

	"github.com/piwi3910/profilecut/internal/model"
)

// ComparisonScenario defines a named set of layout settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.LayoutSettings
}

// ComparisonResult holds the layout and its statistics for one scenario.
type ComparisonResult struct {
	Scenario      ComparisonScenario
	Result        model.LayoutResult
	BarsUsed      int
	WastePercent  float64
	UnplacedCount int
	OffcutLength  float64 // reusable remnants, mm
}

// CompareScenarios lays the processes out once per scenario and returns the
// results in scenario order.
func CompareScenarios(scenarios []ComparisonScenario, processes []*CuttingProcess) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		result := New(scenario.Settings).Layout(processes)

		bars := 0
		for _, p := range result.Profiles {
			bars += p.BarsUsed()
		}

		waste := 0.0
		if bars > 0 {
			waste = 100.0 - result.TotalEfficiency()
		}

		offcuts := model.DetectAllOffcuts(result, scenario.Settings.MinOffcutLength)

		results = append(results, ComparisonResult{
			Scenario:      scenario,
			Result:        result,
			BarsUsed:      bars,
			WastePercent:  waste,
			UnplacedCount: result.UnplacedCount(),
			OffcutLength:  model.TotalOffcutLength(offcuts),
		})
	}

	return results
}

// BuildDefaultScenarios derives what-if alternatives from the current
// settings: the other strategy, a thinner blade and no kerf at all.
func BuildDefaultScenarios(base model.LayoutSettings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{Name: "Current Settings", Settings: base},
	}

	alt := base
	if base.Strategy == model.LayoutSequential {
		alt.Strategy = model.LayoutFirstFitDecreasing
		scenarios = append(scenarios, ComparisonScenario{Name: "First Fit Decreasing", Settings: alt})
	} else {
		alt.Strategy = model.LayoutSequential
		scenarios = append(scenarios, ComparisonScenario{Name: "Sequential", Settings: alt})
	}

	if base.KerfWidth > 1.0 {
		half := base
		half.KerfWidth = base.KerfWidth * 0.5
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("Kerf %.1fmm (half)", half.KerfWidth),
			Settings: half,
		})
	}

	if base.KerfWidth > 0 {
		none := base
		none.KerfWidth = 0
		scenarios = append(scenarios, ComparisonScenario{Name: "No Kerf", Settings: none})
	}

	return scenarios
}
