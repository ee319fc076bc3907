package extract

import (
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/auditsense/auditsense/internal/pdftext"
)

// Action status display values. The audit templates do not record a status
// per action, so one is assigned from this catalog as a placeholder.
const (
	ActionStatusPending     = "Pending"
	ActionStatusInProgress  = "In Progress"
	ActionStatusImplemented = "Implemented"
)

var actionStatuses = []string{ActionStatusPending, ActionStatusInProgress, ActionStatusImplemented}

// Extractor locates audit fields inside raw document text using ordered,
// independent pattern rules. A rule that does not match leaves its field at
// the documented default; the extractor never fails on unmatched patterns.
// Safe for concurrent use: the status source is the only mutable state and
// is serialized behind its own lock.
type Extractor struct {
	statusMu     sync.Mutex
	statusSource *rand.Rand
}

// NewExtractor creates an extractor with a time-seeded status source.
func NewExtractor() *Extractor {
	return NewSeededExtractor(time.Now().UnixNano())
}

// NewSeededExtractor creates an extractor whose placeholder action statuses
// are drawn from a deterministic source. Intended for tests.
func NewSeededExtractor(seed int64) *Extractor {
	return &Extractor{
		statusSource: rand.New(rand.NewSource(seed)),
	}
}

// FromDocument runs the full rule set against a page-structured document:
// whole-document label rules plus the per-page energy table and
// recommended-actions scans.
func (e *Extractor) FromDocument(doc *pdftext.Document) *Report {
	report := NewReport()
	for _, rule := range labelRules {
		rule.apply(doc.Text, report)
	}

	for _, page := range doc.Pages {
		e.scanEnergyTable(page.Text, report)
		e.scanRecommendedActions(page.Text, report)
	}

	e.finalize(report)
	return report
}

// FromText runs the reduced rule set against flat text: label-based fields
// only, with no table or actions scan. Used for the fallback acquisition
// strategy, which has no page boundaries.
func (e *Extractor) FromText(text string) *Report {
	report := NewReport()
	for _, rule := range labelRules {
		rule.apply(text, report)
	}
	e.finalize(report)
	return report
}

// scanEnergyTable captures at most one Electricity line and one Gas-or-Oil
// line from a page that carries all of the energy table header tokens. Only
// the first match of each pattern is kept.
func (e *Extractor) scanEnergyTable(pageText string, report *Report) {
	for _, token := range energyTableTokens {
		if !strings.Contains(pageText, token) {
			return
		}
	}

	if !report.hasEnergyLine("Electricity") {
		if m := electricityPattern.FindStringSubmatch(pageText); m != nil {
			cost, okCost := parseNumber(m[1])
			usage, okUsage := parseNumber(m[2])
			emissions, okEmissions := parseNumber(m[3])
			if okCost && okUsage && okEmissions {
				report.EnergyData = append(report.EnergyData, EnergyLine{
					Type:      "Electricity",
					Cost:      cost,
					Usage:     usage,
					Emissions: emissions,
				})
			}
		}
	}

	if !report.hasEnergyLine("Gas") && !report.hasEnergyLine("Oil") {
		if m := fuelPattern.FindStringSubmatch(pageText); m != nil {
			cost, okCost := parseNumber(m[2])
			usage, okUsage := parseNumber(m[3])
			emissions, okEmissions := parseNumber(m[4])
			if okCost && okUsage && okEmissions {
				report.EnergyData = append(report.EnergyData, EnergyLine{
					Type:      m[1],
					Cost:      cost,
					Usage:     usage,
					Emissions: emissions,
				})
			}
		}
	}
}

// scanRecommendedActions captures repeated action tuples from a page that
// contains the recommended-actions marker. Tuples where both the energy and
// the cost savings are zero are discarded; accepted tuples feed the report's
// running savings totals.
func (e *Extractor) scanRecommendedActions(pageText string, report *Report) {
	if !strings.Contains(strings.ToLower(pageText), actionsSectionMarker) {
		return
	}

	for _, m := range actionPattern.FindAllStringSubmatch(pageText, -1) {
		name := strings.TrimSpace(m[1])
		energySavings, okEnergy := parseNumber(m[2])
		costSavings, okCost := parseNumber(m[3])
		emissionsReduction, okEmissions := parseNumber(m[4])
		if !okEnergy || !okCost || !okEmissions {
			continue
		}
		if energySavings == 0 && costSavings == 0 {
			continue
		}

		report.RecommendedActions = append(report.RecommendedActions, Action{
			Name:               name,
			EnergySavings:      energySavings,
			CostSavings:        costSavings,
			EmissionsReduction: emissionsReduction,
			Status:             e.pickActionStatus(),
		})
		report.TotalEnergySavings += energySavings
		report.TotalEmissionsSaved += emissionsReduction
	}
}

// finalize resolves derived fields once all pattern rules have run. When no
// grant amount was stated, a share of the cost savings stands in for it.
func (e *Extractor) finalize(report *Report) {
	if report.GrantAmount == 0 && report.TotalCostSavings > 0 {
		report.GrantAmount = math.Round(report.TotalCostSavings * grantShareOfSavings)
	}
}

// pickActionStatus draws from the shared source under its lock; one service
// extractor is reused across concurrent uploads and rand.Rand is not safe
// for unsynchronized use.
func (e *Extractor) pickActionStatus() string {
	e.statusMu.Lock()
	defer e.statusMu.Unlock()
	return actionStatuses[e.statusSource.Intn(len(actionStatuses))]
}

func (r *Report) hasEnergyLine(lineType string) bool {
	for _, line := range r.EnergyData {
		if line.Type == lineType {
			return true
		}
	}
	return false
}
