package dashboard

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auditsense/auditsense/internal/extract"
)

func reportFor(org string, status extract.Status) *extract.Report {
	r := extract.NewReport()
	r.OrganizationName = org
	r.ImplementationStatus = status
	return r
}

func TestStore_EmptySnapshot(t *testing.T) {
	snap := NewStore().Snapshot()

	assert.Zero(t, snap.TotalAudits)
	assert.Zero(t, snap.AuditConversion)
	assert.Empty(t, snap.Reports)
	assert.NotNil(t, snap.Organizations)
	assert.NotNil(t, snap.EnergyData)
}

func TestStore_AbsorbTotals(t *testing.T) {
	store := NewStore()

	r := reportFor("Acme Corp", extract.StatusPending)
	r.TotalCostSavings = 10000
	r.TotalEmissionsSaved = 120
	r.GrantAmount = 3000

	snap := store.Absorb(r, "acme.pdf")

	assert.Equal(t, 1, snap.TotalAudits)
	assert.Equal(t, 10000.0, snap.TotalEuroSaved)
	assert.Equal(t, 120.0, snap.TotalEmissionsSaved)
	assert.Equal(t, 3000.0, snap.TotalGrants)

	r2 := reportFor("Other Ltd", extract.StatusPending)
	r2.TotalCostSavings = 5000
	snap = store.Absorb(r2, "other.pdf")

	assert.Equal(t, 2, snap.TotalAudits)
	assert.Equal(t, 15000.0, snap.TotalEuroSaved)
}

func TestStore_StatusTallyInvariant(t *testing.T) {
	store := NewStore()

	statuses := []extract.Status{
		extract.StatusPending,
		extract.StatusImplemented,
		extract.StatusInProgress,
		extract.Status("nonsense"), // unrecognized counts as pending
		extract.StatusImplemented,
	}

	var snap State
	for i, status := range statuses {
		snap = store.Absorb(reportFor(fmt.Sprintf("Org %d", i), status), fmt.Sprintf("org-%d.pdf", i))
		assert.Equal(t, len(snap.Reports), snap.ApplicationStatus.Total)
	}

	assert.Equal(t, 5, snap.ApplicationStatus.Total)
	assert.Equal(t, 2, snap.ApplicationStatus.Pending)
	assert.Equal(t, 1, snap.ApplicationStatus.InProgress)
	assert.Equal(t, 2, snap.ApplicationStatus.Completed)
	assert.Zero(t, snap.ApplicationStatus.Rejected)

	// 2 of 5 implemented -> 40%
	assert.Equal(t, 40, snap.AuditConversion)
}

func TestStore_ConversionRounding(t *testing.T) {
	store := NewStore()

	store.Absorb(reportFor("A", extract.StatusImplemented), "a.pdf")
	store.Absorb(reportFor("B", extract.StatusPending), "b.pdf")
	snap := store.Absorb(reportFor("C", extract.StatusPending), "c.pdf")

	// round(100 * 1/3) = 33
	assert.Equal(t, 33, snap.AuditConversion)

	snap = store.Absorb(reportFor("D", extract.StatusImplemented), "d.pdf")
	// round(100 * 2/4) = 50
	assert.Equal(t, 50, snap.AuditConversion)
}

func TestStore_DistinctSets(t *testing.T) {
	store := NewStore()

	r := reportFor("Acme Corp", extract.StatusPending)
	r.Region = "Dublin"
	r.Industry = "Manufacturing"
	store.Absorb(r, "a.pdf")

	// Same organization and region again, new industry.
	r2 := reportFor("Acme Corp", extract.StatusPending)
	r2.Region = "Dublin"
	r2.Industry = "Education"
	store.Absorb(r2, "b.pdf")

	// Empty region/industry never enter the sets.
	r3 := reportFor("Other Ltd", extract.StatusPending)
	snap := store.Absorb(r3, "c.pdf")

	assert.Equal(t, []string{"Acme Corp", "Other Ltd"}, snap.Organizations)
	assert.Equal(t, []string{"Dublin"}, snap.Regions)
	assert.Equal(t, []string{"Manufacturing", "Education"}, snap.Industries)
}

func TestStore_TagsLinesWithOrganization(t *testing.T) {
	store := NewStore()

	r := reportFor("Acme Corp", extract.StatusPending)
	r.EnergyData = []extract.EnergyLine{
		{Type: "Electricity", Cost: 45000, Usage: 250000, Emissions: 120},
	}
	r.RecommendedActions = []extract.Action{
		{Name: "LED upgrade", EnergySavings: 85000, CostSavings: 12000, EmissionsReduction: 60, Status: extract.ActionStatusPending},
	}

	snap := store.Absorb(r, "acme.pdf")

	require.Len(t, snap.EnergyData, 1)
	assert.Equal(t, "Acme Corp", snap.EnergyData[0].Organization)
	assert.Equal(t, "Electricity", snap.EnergyData[0].Type)

	require.Len(t, snap.RecommendedActions, 1)
	assert.Equal(t, "Acme Corp", snap.RecommendedActions[0].Organization)
	assert.Equal(t, "LED upgrade", snap.RecommendedActions[0].Name)
}

func TestStore_GrantSuggestions(t *testing.T) {
	store := NewStore()

	noGrant := reportFor("No Grant Org", extract.StatusPending)
	snap := store.Absorb(noGrant, "none.pdf")
	assert.Empty(t, snap.RecommendedGrants)

	withGrant := reportFor("Acme Corp", extract.StatusPending)
	withGrant.GrantAmount = 3000
	snap = store.Absorb(withGrant, "acme.pdf")

	require.Len(t, snap.RecommendedGrants, 1)
	grant := snap.RecommendedGrants[0]
	assert.Equal(t, "Acme Corp", grant.Organization)
	assert.Equal(t, 3000.0, grant.Amount)
	assert.Contains(t, grantCatalog, grant.Name)
	assert.Contains(t, grantStatusCatalog, grant.Status)

	// Catalog entries rotate deterministically over uploads.
	another := reportFor("Other Ltd", extract.StatusPending)
	another.GrantAmount = 500
	snap = store.Absorb(another, "other.pdf")
	require.Len(t, snap.RecommendedGrants, 2)
	assert.NotEqual(t, snap.RecommendedGrants[0].Name, snap.RecommendedGrants[1].Name)
}

func TestStore_ReportEntries(t *testing.T) {
	store := NewStore()

	r := reportFor("Acme Corp", extract.StatusPending)
	snap := store.Absorb(r, "acme-audit.pdf")

	require.Len(t, snap.Reports, 1)
	entry := snap.Reports[0]
	assert.Equal(t, "acme-audit.pdf", entry.FileName)
	assert.Equal(t, "Acme Corp", entry.OrganizationName)
	assert.False(t, entry.UploadDate.IsZero())
	assert.Equal(t, "Acme Corp", entry.Data.OrganizationName)
}

func TestStore_SnapshotIsolation(t *testing.T) {
	store := NewStore()
	store.Absorb(reportFor("Acme Corp", extract.StatusPending), "a.pdf")

	snap := store.Snapshot()
	snap.Organizations[0] = "mutated"
	snap.TotalAudits = 99

	fresh := store.Snapshot()
	assert.Equal(t, []string{"Acme Corp"}, fresh.Organizations)
	assert.Equal(t, 1, fresh.TotalAudits)
}

func TestSeedDemoData(t *testing.T) {
	store := NewStore()
	SeedDemoData(store)

	snap := store.Snapshot()
	assert.Equal(t, 2, snap.TotalAudits)
	assert.Equal(t, snap.ApplicationStatus.Total, len(snap.Reports))
	assert.NotEmpty(t, snap.Organizations)
	assert.NotEmpty(t, snap.RecommendedGrants)
	// One of the two seeded audits is implemented.
	assert.Equal(t, 50, snap.AuditConversion)
}
