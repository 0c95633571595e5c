// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"encoding/json"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/Dokboi01/BOQ-pro-sub000/collections"
	"github.com/Dokboi01/BOQ-pro-sub000/services"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestProject creates a project record with the given name and region.
func CreateTestProject(t *testing.T, app *pocketbase.PocketBase, name, region string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		t.Fatalf("failed to find projects collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("region", region)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test project: %v", err)
	}

	return record
}

// CreateTestSection creates a section record linked to a project.
func CreateTestSection(t *testing.T, app *pocketbase.PocketBase, projectID, name string, sortOrder int) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("sections")
	if err != nil {
		t.Fatalf("failed to find sections collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("project", projectID)
	record.Set("name", name)
	record.Set("sort_order", sortOrder)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test section: %v", err)
	}

	return record
}

// CreateTestBOQItem creates a BOQ item record within a section. The stored
// total follows qty x custom rate, matching what the handlers maintain.
func CreateTestBOQItem(t *testing.T, app *pocketbase.PocketBase, sectionID, description string, qty, customRate float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("boq_items")
	if err != nil {
		t.Fatalf("failed to find boq_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("section", sectionID)
	record.Set("sort_order", 1)
	record.Set("description", description)
	record.Set("unit", "m3")
	record.Set("qty", qty)
	record.Set("custom_rate", customRate)
	record.Set("total", qty*customRate)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test BOQ item: %v", err)
	}

	return record
}

// SetItemBreakdown marshals a rate build-up onto an item's breakdown column.
func SetItemBreakdown(t *testing.T, app *pocketbase.PocketBase, item *core.Record, buildUp *services.RateBuildUp) {
	t.Helper()

	raw, err := json.Marshal(buildUp)
	if err != nil {
		t.Fatalf("failed to marshal breakdown: %v", err)
	}
	item.Set("breakdown", raw)
	if err := app.Save(item); err != nil {
		t.Fatalf("failed to save breakdown: %v", err)
	}
}
