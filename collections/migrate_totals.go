package collections

import (
	"fmt"
	"log"
	"math"

	"github.com/pocketbase/pocketbase"

	"github.com/Dokboi01/BOQ-pro-sub000/services"
)

// MigrateStaleItemTotals recomputes the stored total of every BOQ item from
// qty x effective rate under its project's region and rewrites the ones that
// drifted (data written by older builds, or a region change while the app
// was down). Safe to call on every startup -- items already consistent are
// left untouched.
func MigrateStaleItemTotals(app *pocketbase.PocketBase) error {
	projects, err := app.FindAllRecords("projects")
	if err != nil {
		return fmt.Errorf("migrate: could not query projects: %w", err)
	}

	var fixed int
	for _, project := range projects {
		region := project.GetString("region")

		sections, err := app.FindRecordsByFilter(
			"sections",
			"project = {:project}",
			"sort_order",
			0,
			0,
			map[string]any{"project": project.Id},
		)
		if err != nil {
			return fmt.Errorf("migrate: could not query sections of %s: %w", project.Id, err)
		}

		for _, section := range sections {
			items, err := app.FindRecordsByFilter(
				"boq_items",
				"section = {:section}",
				"sort_order",
				0,
				0,
				map[string]any{"section": section.Id},
			)
			if err != nil {
				return fmt.Errorf("migrate: could not query items of %s: %w", section.Id, err)
			}

			for _, item := range items {
				want := services.ItemTotal(services.LineItem{
					Quantity:      item.GetFloat("qty"),
					CustomRate:    item.GetFloat("custom_rate"),
					BenchmarkRate: item.GetFloat("benchmark_rate"),
					UseBenchmark:  item.GetBool("use_benchmark"),
				}, region)
				if math.Abs(item.GetFloat("total")-want) <= 0.005 {
					continue
				}
				item.Set("total", want)
				if err := app.Save(item); err != nil {
					log.Printf("migrate: failed to rewrite total of item %s: %v\n", item.Id, err)
					continue
				}
				fixed++
			}
		}
	}

	if fixed > 0 {
		log.Printf("migrate: rewrote %d stale item total(s)\n", fixed)
	}
	return nil
}
