package dashboard

import "github.com/auditsense/auditsense/internal/extract"

// SeedDemoData preloads the store with a handful of representative audits so
// a fresh deployment renders a populated dashboard. Gated by configuration;
// the seeded entries are indistinguishable from real uploads and are lost on
// restart like everything else.
func SeedDemoData(store *Store) {
	pct := 18
	store.Absorb(&extract.Report{
		OrganizationName:      "Greenfield Manufacturing Ltd",
		TotalCostSavings:      42000,
		TotalEmissionsSaved:   260,
		TotalEnergySavings:    310000,
		EmissionsReductionPct: &pct,
		GrantAmount:           12600,
		ImplementationStatus:  extract.StatusImplemented,
		Region:                "Dublin",
		Industry:              "Manufacturing",
		EnergyData: []extract.EnergyLine{
			{Type: "Electricity", Cost: 68000, Usage: 410000, Emissions: 180},
			{Type: "Gas", Cost: 24000, Usage: 190000, Emissions: 80},
		},
		RecommendedActions: []extract.Action{
			{Name: "LED lighting upgrade", EnergySavings: 85000, CostSavings: 12000, EmissionsReduction: 60, Status: extract.ActionStatusImplemented},
			{Name: "Compressed air leak repair", EnergySavings: 45000, CostSavings: 8000, EmissionsReduction: 35, Status: extract.ActionStatusPending},
		},
	}, "demo-greenfield-audit.pdf")

	store.Absorb(&extract.Report{
		OrganizationName:     "St Brigid's Hospital",
		TotalCostSavings:     28500,
		TotalEmissionsSaved:  140,
		TotalEnergySavings:   175000,
		GrantAmount:          8550,
		ImplementationStatus: extract.StatusInProgress,
		Region:               "Cork",
		Industry:             "Healthcare",
		EnergyData: []extract.EnergyLine{
			{Type: "Electricity", Cost: 51000, Usage: 300000, Emissions: 130},
			{Type: "Oil", Cost: 17500, Usage: 140000, Emissions: 95},
		},
		RecommendedActions: []extract.Action{
			{Name: "Boiler replacement", EnergySavings: 95000, CostSavings: 14500, EmissionsReduction: 85, Status: extract.ActionStatusInProgress},
		},
	}, "demo-st-brigids-audit.pdf")
}
