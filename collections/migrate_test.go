package collections_test

import (
	"math"
	"testing"

	"github.com/Dokboi01/BOQ-pro-sub000/collections"
	"github.com/Dokboi01/BOQ-pro-sub000/testhelpers"
)

func TestMigrateStaleItemTotals_RewritesDrifted(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Migrate Project", "Nairobi")
	section := testhelpers.CreateTestSection(t, app, proj.Id, "Works", 1)

	// A benchmark-priced item whose stored total predates the regional
	// modifier: 10 x 2000 instead of 10 x 2000 x 1.15.
	stale := testhelpers.CreateTestBOQItem(t, app, section.Id, "Stale item", 10, 0)
	stale.Set("benchmark_rate", 2000)
	stale.Set("use_benchmark", true)
	stale.Set("total", 20000)
	if err := app.Save(stale); err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := collections.MigrateStaleItemTotals(app); err != nil {
		t.Fatalf("MigrateStaleItemTotals() error: %v", err)
	}

	record, _ := app.FindRecordById("boq_items", stale.Id)
	if math.Abs(record.GetFloat("total")-23000) > 0.001 {
		t.Errorf("total = %v, want 23000", record.GetFloat("total"))
	}
}

func TestMigrateStaleItemTotals_LeavesConsistentAlone(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Consistent Project", "National Average")
	section := testhelpers.CreateTestSection(t, app, proj.Id, "Works", 1)
	item := testhelpers.CreateTestBOQItem(t, app, section.Id, "Consistent item", 4, 250)

	if err := collections.MigrateStaleItemTotals(app); err != nil {
		t.Fatalf("MigrateStaleItemTotals() error: %v", err)
	}

	record, _ := app.FindRecordById("boq_items", item.Id)
	if math.Abs(record.GetFloat("total")-1000) > 0.001 {
		t.Errorf("total = %v, want 1000", record.GetFloat("total"))
	}
}

func TestMigrateStaleItemTotals_ClampsNegativeQty(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Negative Qty Project", "National Average")
	section := testhelpers.CreateTestSection(t, app, proj.Id, "Works", 1)

	// A record written with a negative quantity: its total must be repaired
	// toward the clamped value the read paths compute, never toward qty x rate.
	bad := testhelpers.CreateTestBOQItem(t, app, section.Id, "Bad item", 10, 100)
	bad.Set("qty", -5)
	bad.Set("total", -500)
	if err := app.Save(bad); err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := collections.MigrateStaleItemTotals(app); err != nil {
		t.Fatalf("MigrateStaleItemTotals() error: %v", err)
	}

	record, _ := app.FindRecordById("boq_items", bad.Id)
	if got := record.GetFloat("total"); got != 0 {
		t.Errorf("total = %v, want 0", got)
	}
}

func TestMigrateStaleItemTotals_EmptyDatabase(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	if err := collections.MigrateStaleItemTotals(app); err != nil {
		t.Errorf("MigrateStaleItemTotals() on empty db error: %v", err)
	}
}
