// Package handlers wires the estimating services onto PocketBase routes as
// JSON endpoints.
package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/Dokboi01/BOQ-pro-sub000/services"
)

// decodeBreakdown unmarshals an item's stored breakdown column into a rate
// build-up, or nil when the item has none. A corrupt column is treated as
// absent rather than an error: the user can always re-resolve a seed.
func decodeBreakdown(record *core.Record) *services.RateBuildUp {
	raw := record.GetString("breakdown")
	if raw == "" || raw == "null" {
		return nil
	}
	var buildUp services.RateBuildUp
	if err := json.Unmarshal([]byte(raw), &buildUp); err != nil {
		return nil
	}
	return &buildUp
}

// recordToLineItem maps a boq_items record onto the services shape.
func recordToLineItem(record *core.Record) services.LineItem {
	return services.LineItem{
		Description:       record.GetString("description"),
		Unit:              record.GetString("unit"),
		Quantity:          record.GetFloat("qty"),
		CustomRate:        record.GetFloat("custom_rate"),
		BenchmarkRate:     record.GetFloat("benchmark_rate"),
		UseBenchmark:      record.GetBool("use_benchmark"),
		IsVariationOrder:  record.GetBool("is_variation_order"),
		CompletedQuantity: record.GetFloat("completed_qty"),
		BuildUp:           decodeBreakdown(record),
	}
}

// loadProjectSections fetches every section and item of a project, in sort
// order, mapped onto the services shapes for aggregation and export.
func loadProjectSections(app *pocketbase.PocketBase, projectID string) ([]services.Section, error) {
	sectionRecords, err := app.FindRecordsByFilter(
		"sections",
		"project = {:project}",
		"sort_order",
		0,
		0,
		map[string]any{"project": projectID},
	)
	if err != nil {
		return nil, fmt.Errorf("load sections: %w", err)
	}

	sections := make([]services.Section, 0, len(sectionRecords))
	for _, sectionRecord := range sectionRecords {
		itemRecords, err := app.FindRecordsByFilter(
			"boq_items",
			"section = {:section}",
			"sort_order",
			0,
			0,
			map[string]any{"section": sectionRecord.Id},
		)
		if err != nil {
			return nil, fmt.Errorf("load items of section %s: %w", sectionRecord.Id, err)
		}

		section := services.Section{Name: sectionRecord.GetString("name")}
		for _, itemRecord := range itemRecords {
			section.Items = append(section.Items, recordToLineItem(itemRecord))
		}
		sections = append(sections, section)
	}

	return sections, nil
}

// writeItemTotal rewrites an item record's stored total from quantity times
// its effective rate under the project region, with the same degenerate-input
// clamping every read path applies. Callers save the record.
func writeItemTotal(record *core.Record, region string) {
	record.Set("total", services.ItemTotal(recordToLineItem(record), region))
}

// projectRegion resolves the region of the project owning a section/item
// chain; missing links fall back to the neutral baseline.
func projectRegion(app *pocketbase.PocketBase, projectID string) string {
	project, err := app.FindRecordById("projects", projectID)
	if err != nil {
		return "National Average"
	}
	return project.GetString("region")
}
