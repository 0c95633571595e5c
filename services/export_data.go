package services

import "fmt"

// ExportRow represents a single row in the BOQ export: a section header or a
// line item. All money figures are recomputed from current item state when
// the export data is built, never read from stored totals.
type ExportRow struct {
	Level         int    // 0 = section header, 1 = line item
	Index         string // "A", "A.1", "A.2", "B", ...
	Description   string
	Qty           float64
	Unit          string
	Rate          float64
	Total         float64
	UsesBenchmark bool
	Outlier       bool
}

// ExportData holds everything the Excel and PDF exporters need.
type ExportData struct {
	ProjectName string
	Region      string
	CreatedDate string
	Rows        []ExportRow
	GrandTotal  float64
	Materials   []MaterialScheduleRecord
}

// sectionIndexes labels sections A, B, C ... then AA, AB for overflow.
func sectionIndex(i int) string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	if i < len(letters) {
		return string(letters[i])
	}
	return string(letters[i/len(letters)-1]) + string(letters[i%len(letters)])
}

// BuildExportData flattens a project into export rows with freshly computed
// totals, section subtotals folded into header rows, the project grand total
// and the material requirement schedule.
func BuildExportData(projectName, region, createdDate string, sections []Section) ExportData {
	data := ExportData{
		ProjectName: projectName,
		Region:      region,
		CreatedDate: createdDate,
		GrandTotal:  ProjectGrandTotal(sections, region),
		Materials:   AggregateMaterials(sections),
	}

	for si, section := range sections {
		data.Rows = append(data.Rows, ExportRow{
			Level:       0,
			Index:       sectionIndex(si),
			Description: section.Name,
			Total:       SectionSubtotal(section, region),
		})
		for ii, item := range section.Items {
			rate := EffectiveRate(item.CustomRate, item.BenchmarkRate, item.UseBenchmark, region)
			data.Rows = append(data.Rows, ExportRow{
				Level:         1,
				Index:         fmt.Sprintf("%s.%d", sectionIndex(si), ii+1),
				Description:   item.Description,
				Qty:           item.Quantity,
				Unit:          item.Unit,
				Rate:          rate,
				Total:         ItemTotal(item, region),
				UsesBenchmark: item.UseBenchmark,
				Outlier:       !item.UseBenchmark && IsOutlier(item.CustomRate, item.BenchmarkRate),
			})
		}
	}

	return data
}
