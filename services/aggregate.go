package services

// LineItem is one row of the bill as seen by the aggregation layer. Totals
// are never read from storage here; they are recomputed from quantity and the
// effective rate on every fold so aggregation cannot drift.
type LineItem struct {
	Description       string       `json:"description"`
	Unit              string       `json:"unit"`
	Quantity          float64      `json:"quantity"`
	CustomRate        float64      `json:"customRate"`
	BenchmarkRate     float64      `json:"benchmarkRate"`
	UseBenchmark      bool         `json:"useBenchmark"`
	IsVariationOrder  bool         `json:"isVariationOrder,omitempty"`
	CompletedQuantity float64      `json:"completedQuantity,omitempty"`
	BuildUp           *RateBuildUp `json:"breakdown,omitempty"`
}

// Section is a named ordered collection of line items.
type Section struct {
	Name  string     `json:"name"`
	Items []LineItem `json:"items"`
}

// MaterialScheduleRecord is one line of the procurement schedule: the total
// quantity of a material required across the project and the sections that
// consume it.
type MaterialScheduleRecord struct {
	MaterialName       string   `json:"materialName"`
	Unit               string   `json:"unit"`
	AggregatedQuantity float64  `json:"aggregatedQuantity"`
	UsedInSections     []string `json:"usedInSections"`
}

// ItemTotal recomputes an item's total as quantity times its effective rate
// under the project region.
func ItemTotal(item LineItem, region string) float64 {
	return safeAmount(item.Quantity) * EffectiveRate(item.CustomRate, item.BenchmarkRate, item.UseBenchmark, region)
}

// SectionSubtotal sums recomputed item totals over a section.
func SectionSubtotal(section Section, region string) float64 {
	var sum float64
	for _, item := range section.Items {
		sum += ItemTotal(item, region)
	}
	return sum
}

// ProjectGrandTotal sums section subtotals over the whole project.
func ProjectGrandTotal(sections []Section, region string) float64 {
	var sum float64
	for _, s := range sections {
		sum += SectionSubtotal(s, region)
	}
	return sum
}

// AggregateMaterials folds the whole project into a flat material requirement
// schedule: for every item carrying a build-up, every material row
// contributes itemQuantity x rowQuantity to the running total for that
// material name. Section references are deduplicated. Records come out in
// first-seen order so repeated runs over unchanged state produce identical
// output.
func AggregateMaterials(sections []Section) []MaterialScheduleRecord {
	index := make(map[string]int)
	var records []MaterialScheduleRecord

	for _, section := range sections {
		for _, item := range section.Items {
			if item.BuildUp == nil {
				continue
			}
			itemQty := safeAmount(item.Quantity)
			for _, row := range item.BuildUp.Materials {
				i, seen := index[row.Name]
				if !seen {
					i = len(records)
					index[row.Name] = i
					records = append(records, MaterialScheduleRecord{
						MaterialName: row.Name,
						Unit:         row.Unit,
					})
				}
				records[i].AggregatedQuantity += itemQty * safeAmount(row.Quantity)
				if !containsString(records[i].UsedInSections, section.Name) {
					records[i].UsedInSections = append(records[i].UsedInSections, section.Name)
				}
			}
		}
	}

	return records
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
