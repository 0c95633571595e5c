package collections

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/Dokboi01/BOQ-pro-sub000/services"
)

// ── Definition structs ───────────────────────────────────────────────────

type itemDef struct {
	sortOrder     int
	description   string
	unit          string
	qty           float64
	customRate    float64
	benchmarkRate float64
	useBenchmark  bool
	withBuildUp   bool // resolve and persist a rate build-up for this item
}

type sectionDef struct {
	sortOrder     int
	name          string
	structureType string
	items         []itemDef
}

// Seed populates the collections with a realistic demo estimating project.
// It is safe to call on every startup because it returns early if any
// project records already exist.
func Seed(app *pocketbase.PocketBase) error {
	// ── idempotency: skip if projects already exist ──────────────────
	projectsCol, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		return fmt.Errorf("seed: could not find projects collection: %w", err)
	}
	existing, err := app.FindAllRecords(projectsCol)
	if err != nil {
		return fmt.Errorf("seed: could not query projects: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: projects collection is empty – inserting seed data …")

	sectionsCol, err := app.FindCollectionByNameOrId("sections")
	if err != nil {
		return fmt.Errorf("seed: could not find sections collection: %w", err)
	}
	itemsCol, err := app.FindCollectionByNameOrId("boq_items")
	if err != nil {
		return fmt.Errorf("seed: could not find boq_items collection: %w", err)
	}

	const region = "Nairobi"

	project := core.NewRecord(projectsCol)
	project.Set("name", "Kasarani Health Centre – Phase 1")
	project.Set("region", region)
	if err := app.Save(project); err != nil {
		return fmt.Errorf("seed: could not save project: %w", err)
	}

	sections := []sectionDef{
		{
			sortOrder:     1,
			name:          "Substructure",
			structureType: "Substructure",
			items: []itemDef{
				{1, "Excavate trench for strip foundation ne 1.5m deep", "m3", 120, 450, 420, false, false},
				{2, "Hardcore filling, compacted in 150mm layers", "m3", 95, 0, 2300, true, true},
				{3, "Concrete Grade C25/30 in strip foundation and base slab", "m3", 85, 0, 0, false, true},
				{4, "Damp proof membrane laid under surface bed", "m2", 310, 95, 100, false, true},
			},
		},
		{
			sortOrder:     2,
			name:          "Superstructure & Walling",
			structureType: "Walling",
			items: []itemDef{
				{1, "200mm machine cut stone walling in cement mortar 1:4", "m2", 420, 0, 0, false, true},
				{2, "Y12 high yield reinforcement bars to ring beam", "Kg", 860, 180, 160, false, true},
				{3, "Sawn formwork to sides of ring beam", "m2", 140, 950, 900, false, false},
			},
		},
		{
			sortOrder:     3,
			name:          "Finishes",
			structureType: "Finishes",
			items: []itemDef{
				{1, "12mm cement sand plaster to internal walls", "m2", 780, 0, 520, true, true},
				{2, "Three coats emulsion paint to plastered walls", "m2", 780, 320, 300, false, false},
			},
		},
	}

	for _, sd := range sections {
		sectionRecord := core.NewRecord(sectionsCol)
		sectionRecord.Set("project", project.Id)
		sectionRecord.Set("sort_order", sd.sortOrder)
		sectionRecord.Set("name", sd.name)
		sectionRecord.Set("structure_type", sd.structureType)
		if err := app.Save(sectionRecord); err != nil {
			return fmt.Errorf("seed: could not save section %q: %w", sd.name, err)
		}

		for _, id := range sd.items {
			itemRecord := core.NewRecord(itemsCol)
			itemRecord.Set("section", sectionRecord.Id)
			itemRecord.Set("sort_order", id.sortOrder)
			itemRecord.Set("description", id.description)
			itemRecord.Set("unit", id.unit)
			itemRecord.Set("qty", id.qty)

			customRate := id.customRate
			if id.withBuildUp {
				seed := services.ResolveTemplate(id.description, sd.structureType)
				rate, buildUp := seed.BuildUp.Apply()
				if !id.useBenchmark {
					customRate = rate
				}
				raw, err := json.Marshal(buildUp)
				if err != nil {
					return fmt.Errorf("seed: could not marshal breakdown for %q: %w", id.description, err)
				}
				itemRecord.Set("breakdown", raw)
			}

			itemRecord.Set("custom_rate", customRate)
			itemRecord.Set("benchmark_rate", id.benchmarkRate)
			itemRecord.Set("use_benchmark", id.useBenchmark)
			itemRecord.Set("total", services.ItemTotal(services.LineItem{
				Quantity:      id.qty,
				CustomRate:    customRate,
				BenchmarkRate: id.benchmarkRate,
				UseBenchmark:  id.useBenchmark,
			}, region))

			if err := app.Save(itemRecord); err != nil {
				return fmt.Errorf("seed: could not save item %q: %w", id.description, err)
			}
		}
	}

	log.Printf("seed: created demo project %q with %d sections", project.GetString("name"), len(sections))
	return nil
}
