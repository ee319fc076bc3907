package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// Field patterns. Audit reports follow a small set of known textual templates,
// so each field is located with a single ordered, non-fatal pattern try.
var (
	orgPattern       = regexp.MustCompile(`For:\s*([^\n]+)`)
	emissionsPattern = regexp.MustCompile(`emissions by (\d+)%`)
	costPattern      = regexp.MustCompile(`energy spend by [€$]([0-9,]+)`)
	grantPattern     = regexp.MustCompile(`(?i)grant amount[^€$\n]*[€$]([0-9,]+)`)

	electricityPattern = regexp.MustCompile(`Electricity[^\n]*?[€$]([0-9,.]+)[^\n]*?([0-9,.]+)\s*kWh[^\n]*?([0-9,.]+)`)
	fuelPattern        = regexp.MustCompile(`(Gas|Oil)[^\n]*?[€$]([0-9,.]+)[^\n]*?([0-9,.]+)\s*kWh[^\n]*?([0-9,.]+)`)

	actionPattern = regexp.MustCompile(`([A-Za-z\s]+)\s+([0-9,.]+)\s+(?:[A-Za-z\- ]+)\s+[€$]([0-9,.]+)\s+([0-9,.]+)`)
)

// Header tokens that qualify a page as the energy-source table.
var energyTableTokens = []string{"Energy source", "Annual Cost", "Annual Use"}

const actionsSectionMarker = "recommended actions"

// Share of cost savings assumed grant-eligible when the report states no
// grant amount. A documented heuristic, not a measurement.
const grantShareOfSavings = 0.30

// vocabEntry maps a keyword found in document text to a canonical value.
type vocabEntry struct {
	keyword string
	value   string
}

// First keyword match wins, in listed order.
var regionVocab = []vocabEntry{
	{keyword: "dublin", value: "Dublin"},
	{keyword: "cork", value: "Cork"},
	{keyword: "galway", value: "Galway"},
	{keyword: "limerick", value: "Limerick"},
}

var industryVocab = []vocabEntry{
	{keyword: "manufacturing", value: "Manufacturing"},
	{keyword: "commercial", value: "Commercial"},
	{keyword: "healthcare", value: "Healthcare"},
	{keyword: "hospital", value: "Healthcare"},
	{keyword: "education", value: "Education"},
}

// matchVocab returns the canonical value of the first vocabulary keyword
// contained in text, or "" when none matches.
func matchVocab(text string, vocab []vocabEntry) string {
	lower := strings.ToLower(text)
	for _, entry := range vocab {
		if strings.Contains(lower, entry.keyword) {
			return entry.value
		}
	}
	return ""
}

// fieldRule is one ordered field-recognition step. Rules are independent:
// a rule that finds nothing leaves the report untouched and never fails.
type fieldRule struct {
	name  string
	apply func(text string, r *Report)
}

// labelRules are the whole-document rules, tried once each in order.
var labelRules = []fieldRule{
	{
		name: "organization_name",
		apply: func(text string, r *Report) {
			if m := orgPattern.FindStringSubmatch(text); m != nil {
				if name := strings.TrimSpace(m[1]); name != "" {
					r.OrganizationName = name
				}
			}
		},
	},
	{
		name: "emissions_reduction_pct",
		apply: func(text string, r *Report) {
			if m := emissionsPattern.FindStringSubmatch(text); m != nil {
				if pct, err := strconv.Atoi(m[1]); err == nil {
					r.EmissionsReductionPct = &pct
				}
			}
		},
	},
	{
		name: "total_cost_savings",
		apply: func(text string, r *Report) {
			if m := costPattern.FindStringSubmatch(text); m != nil {
				if v, ok := parseNumber(m[1]); ok {
					r.TotalCostSavings = v
				}
			}
		},
	},
	{
		name: "grant_amount",
		apply: func(text string, r *Report) {
			if m := grantPattern.FindStringSubmatch(text); m != nil {
				if v, ok := parseNumber(m[1]); ok {
					r.GrantAmount = v
				}
			}
		},
	},
	{
		name: "region",
		apply: func(text string, r *Report) {
			r.Region = matchVocab(text, regionVocab)
		},
	},
	{
		name: "industry",
		apply: func(text string, r *Report) {
			r.Industry = matchVocab(text, industryVocab)
		},
	},
}

// parseNumber parses a number with thousands separators stripped.
func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
