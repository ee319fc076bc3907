package dashboard

import (
	"math"
	"sync"
	"time"

	"github.com/auditsense/auditsense/internal/extract"
)

// Grant suggestion catalogs. Entries rotate over uploads; this is a
// placeholder standing in for data the audit reports do not contain.
var grantCatalog = []string{
	"SEAI Energy Audit Grant",
	"EXEED Certified Grant Scheme",
	"Support Scheme for Renewable Heat",
	"Community Energy Grant",
}

var grantStatusCatalog = []string{
	"Eligible",
	"Application Recommended",
	"Under Review",
}

// Store is the sole mutator of the dashboard state. All reads and writes go
// through its lock, so concurrent uploads cannot interleave read-modify-write
// sequences on the aggregate.
type Store struct {
	mu    sync.Mutex
	state State
	now   func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		state: NewState(),
		now:   time.Now,
	}
}

// Absorb folds one finalized report into the cumulative state and returns a
// snapshot of the result.
func (s *Store) Absorb(report *extract.Report, fileName string) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := &s.state

	st.TotalAudits++
	st.TotalEmissionsSaved += report.TotalEmissionsSaved
	st.TotalEuroSaved += report.TotalCostSavings
	st.TotalGrants += report.GrantAmount

	st.Organizations = appendUnique(st.Organizations, report.OrganizationName)
	st.Regions = appendUnique(st.Regions, report.Region)
	st.Industries = appendUnique(st.Industries, report.Industry)

	for _, line := range report.EnergyData {
		st.EnergyData = append(st.EnergyData, EnergyLine{
			Organization: report.OrganizationName,
			Type:         line.Type,
			Cost:         line.Cost,
			Usage:        line.Usage,
			Emissions:    line.Emissions,
		})
	}
	for _, action := range report.RecommendedActions {
		st.RecommendedActions = append(st.RecommendedActions, Action{
			Organization:       report.OrganizationName,
			Name:               action.Name,
			EnergySavings:      action.EnergySavings,
			CostSavings:        action.CostSavings,
			EmissionsReduction: action.EmissionsReduction,
			Status:             action.Status,
		})
	}

	switch extract.NormalizeStatus(string(report.ImplementationStatus)) {
	case extract.StatusImplemented:
		st.ApplicationStatus.Completed++
	case extract.StatusInProgress:
		st.ApplicationStatus.InProgress++
	default:
		st.ApplicationStatus.Pending++
	}
	st.ApplicationStatus.Total++

	if report.GrantAmount > 0 {
		n := len(st.RecommendedGrants)
		st.RecommendedGrants = append(st.RecommendedGrants, GrantSuggestion{
			Organization: report.OrganizationName,
			Name:         grantCatalog[n%len(grantCatalog)],
			Amount:       report.GrantAmount,
			Status:       grantStatusCatalog[n%len(grantStatusCatalog)],
		})
	}

	st.Reports = append(st.Reports, ReportEntry{
		FileName:         fileName,
		OrganizationName: report.OrganizationName,
		UploadDate:       s.now().UTC(),
		Data:             *report,
	})

	st.AuditConversion = conversionRate(st.Reports)

	return s.snapshotLocked()
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Reports returns a copy of the accumulated report entries.
func (s *Store) Reports() []ReportEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ReportEntry{}, s.state.Reports...)
}

func (s *Store) snapshotLocked() State {
	snap := s.state
	snap.Organizations = append([]string{}, s.state.Organizations...)
	snap.Regions = append([]string{}, s.state.Regions...)
	snap.Industries = append([]string{}, s.state.Industries...)
	snap.EnergyData = append([]EnergyLine{}, s.state.EnergyData...)
	snap.RecommendedActions = append([]Action{}, s.state.RecommendedActions...)
	snap.RecommendedGrants = append([]GrantSuggestion{}, s.state.RecommendedGrants...)
	snap.Reports = append([]ReportEntry{}, s.state.Reports...)
	return snap
}

// conversionRate recomputes the implemented-report percentage from scratch,
// defined as 0 when no reports exist.
func conversionRate(reports []ReportEntry) int {
	if len(reports) == 0 {
		return 0
	}
	completed := 0
	for _, entry := range reports {
		if extract.NormalizeStatus(string(entry.Data.ImplementationStatus)) == extract.StatusImplemented {
			completed++
		}
	}
	return int(math.Round(100 * float64(completed) / float64(len(reports))))
}

// appendUnique adds value to the set unless it is empty or already present.
// Insertion order is preserved.
func appendUnique(set []string, value string) []string {
	if value == "" {
		return set
	}
	for _, existing := range set {
		if existing == value {
			return set
		}
	}
	return append(set, value)
}
