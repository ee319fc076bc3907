// Package dashboard accumulates extracted audit reports into the in-memory
// model served to the browser client. State is process-lifetime only: it is
// never persisted and resets on restart.
package dashboard

import (
	"time"

	"github.com/auditsense/auditsense/internal/extract"
)

// EnergyLine is one energy-source row tagged with its owning organization.
type EnergyLine struct {
	Organization string  `json:"organization"`
	Type         string  `json:"type"`
	Cost         float64 `json:"cost"`
	Usage        float64 `json:"usage"`
	Emissions    float64 `json:"emissions"`
}

// Action is one recommended action tagged with its owning organization.
type Action struct {
	Organization       string  `json:"organization"`
	Name               string  `json:"name"`
	EnergySavings      float64 `json:"energySavings"`
	CostSavings        float64 `json:"costSavings"`
	EmissionsReduction float64 `json:"emissionsReduction"`
	Status             string  `json:"status"`
}

// GrantSuggestion is a heuristically generated grant lead, produced whenever
// a report carries a positive grant amount. The name and status come from
// fixed catalogs, not from a grant-matching engine.
type GrantSuggestion struct {
	Organization string  `json:"organization"`
	Name         string  `json:"name"`
	Amount       float64 `json:"amount"`
	Status       string  `json:"status"`
}

// StatusTally counts reports by implementation status.
type StatusTally struct {
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
	Rejected   int `json:"rejected"`
	Total      int `json:"total"`
}

// ReportEntry preserves one upload with its original file name and
// ingestion timestamp.
type ReportEntry struct {
	FileName         string         `json:"fileName"`
	OrganizationName string         `json:"organizationName"`
	UploadDate       time.Time      `json:"uploadDate"`
	Data             extract.Report `json:"data"`
}

// State is the cumulative dashboard model.
type State struct {
	TotalAudits         int     `json:"totalAudits"`
	TotalEmissionsSaved float64 `json:"totalEmissionsSaved"`
	TotalEuroSaved      float64 `json:"totalEuroSaved"`
	TotalGrants         float64 `json:"totalGrants"`
	// AuditConversion is the percentage of reports with implemented status,
	// recomputed from scratch on every ingestion.
	AuditConversion int `json:"auditConversion"`

	Organizations []string `json:"organizations"`
	Regions       []string `json:"regions"`
	Industries    []string `json:"industries"`

	EnergyData         []EnergyLine      `json:"energyData"`
	RecommendedActions []Action          `json:"recommendedActions"`
	RecommendedGrants  []GrantSuggestion `json:"recommendedGrants"`
	ApplicationStatus  StatusTally       `json:"applicationStatus"`
	Reports            []ReportEntry     `json:"reports"`
}

// NewState returns an empty state with collections initialized so the JSON
// payload serves arrays, not nulls.
func NewState() State {
	return State{
		Organizations:      []string{},
		Regions:            []string{},
		Industries:         []string{},
		EnergyData:         []EnergyLine{},
		RecommendedActions: []Action{},
		RecommendedGrants:  []GrantSuggestion{},
		Reports:            []ReportEntry{},
	}
}
