package extract

import "strings"

// Status is the lifecycle stage of an audit's recommendations.
type Status string

const (
	StatusPending     Status = "pending"
	StatusInProgress  Status = "in-progress"
	StatusImplemented Status = "implemented"
)

// NormalizeStatus maps free-form status input to a known Status value.
// Anything unrecognized resolves to StatusPending.
func NormalizeStatus(s string) Status {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "implemented", "completed", "complete", "done":
		return StatusImplemented
	case "in-progress", "in progress", "inprogress", "ongoing":
		return StatusInProgress
	default:
		return StatusPending
	}
}

// EnergyLine is one row of the audit's energy-source table.
type EnergyLine struct {
	Type      string  `json:"type"` // "Electricity", "Gas" or "Oil"
	Cost      float64 `json:"cost"`
	Usage     float64 `json:"usage"` // kWh
	Emissions float64 `json:"emissions"`
}

// Action is one row of the audit's recommended-actions table.
// Status carries a display value ("Pending", "In Progress", "Implemented")
// assigned heuristically during extraction; the source reports do not state it.
type Action struct {
	Name               string  `json:"name"`
	EnergySavings      float64 `json:"energySavings"`
	CostSavings        float64 `json:"costSavings"`
	EmissionsReduction float64 `json:"emissionsReduction"`
	Status             string  `json:"status"`
}

// Report holds the structured facts extracted from one audit document.
type Report struct {
	OrganizationName      string       `json:"organizationName"`
	TotalCostSavings      float64      `json:"totalCostSavings"`
	TotalEmissionsSaved   float64      `json:"totalEmissionsSaved"`
	TotalEnergySavings    float64      `json:"totalEnergySavings"`
	EmissionsReductionPct *int         `json:"emissionsReductionPct,omitempty"`
	GrantAmount           float64      `json:"grantAmount"`
	ImplementationStatus  Status       `json:"implementationStatus"`
	Region                string       `json:"region,omitempty"`
	Industry              string       `json:"industry,omitempty"`
	EnergyData            []EnergyLine `json:"energyData"`
	RecommendedActions    []Action     `json:"recommendedActions"`

	// Caller-supplied metadata merged in after extraction.
	AuditorName  string `json:"auditorName,omitempty"`
	BuildingType string `json:"buildingType,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// NewReport returns a report populated with the documented defaults.
func NewReport() *Report {
	return &Report{
		OrganizationName:     "Unknown",
		ImplementationStatus: StatusPending,
		EnergyData:           []EnergyLine{},
		RecommendedActions:   []Action{},
	}
}

// Overrides are caller-supplied form fields that take precedence over
// extracted values when present and non-empty.
type Overrides struct {
	AuditorName          string
	BuildingType         string
	Notes                string
	GrantAmount          *float64
	ImplementationStatus string
	Region               string
	Industry             string
}
