package services

import (
	"math"

	"github.com/google/uuid"
)

// Rate build-up categories.
const (
	CategoryMaterials = "materials"
	CategoryLabour    = "labour"
	CategoryPlant     = "plant"
	CategoryTransport = "transport"
)

// ResourceRow is one priced input line of a rate build-up. DailyOutput is
// only meaningful on labour and plant rows, where the daily crew/equipment
// cost is amortized over the quantity of finished work completed per day.
type ResourceRow struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	UnitRate    float64 `json:"unitRate"`
	DailyOutput float64 `json:"dailyOutput,omitempty"`
}

// RateBuildUp is the full itemized cost structure behind one unit rate.
// Totals are never stored on it; they are derived by ComputeBuildUpTotals on
// every read so edits can never leave a stale figure behind.
type RateBuildUp struct {
	TemplateName    string        `json:"templateName,omitempty"`
	Materials       []ResourceRow `json:"materials"`
	Labour          []ResourceRow `json:"labour"`
	Plant           []ResourceRow `json:"plant"`
	Transport       []ResourceRow `json:"transport"`
	OverheadPercent float64       `json:"overheadPercent"`
	ProfitPercent   float64       `json:"profitPercent"`
}

// BuildUpTotals holds every derived figure of a rate build-up.
type BuildUpTotals struct {
	MaterialsTotal float64 `json:"materialsTotal"`
	LabourTotal    float64 `json:"labourTotal"`
	PlantTotal     float64 `json:"plantTotal"`
	TransportTotal float64 `json:"transportTotal"`
	PrimeCost      float64 `json:"primeCost"`
	OverheadAmount float64 `json:"overheadAmount"`
	ProfitAmount   float64 `json:"profitAmount"`
	UnitRate       float64 `json:"unitRate"`
}

// safeAmount clamps negative and non-finite user input to zero so no NaN or
// junk value ever propagates into totals.
func safeAmount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// safeOutput returns the effective daily output: anything that is not a
// positive finite number behaves as 1 (no amortization).
func safeOutput(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 1
	}
	return v
}

// DirectLineAmount computes the line amount for a materials or transport row:
// quantity times unit rate.
func DirectLineAmount(row ResourceRow) float64 {
	return safeAmount(row.Quantity) * safeAmount(row.UnitRate)
}

// AmortizedLineAmount computes the line amount for a labour or plant row:
// the daily cost divided by the quantity of finished work completed per day.
func AmortizedLineAmount(row ResourceRow) float64 {
	return safeAmount(row.Quantity) * safeAmount(row.UnitRate) / safeOutput(row.DailyOutput)
}

func sumDirect(rows []ResourceRow) float64 {
	var sum float64
	for _, r := range rows {
		sum += DirectLineAmount(r)
	}
	return sum
}

func sumAmortized(rows []ResourceRow) float64 {
	var sum float64
	for _, r := range rows {
		sum += AmortizedLineAmount(r)
	}
	return sum
}

// ComputeBuildUpTotals derives every total of the build-up from current row
// and percentage state. Profit is applied on prime cost plus overhead, not on
// prime cost alone: the contractor's margin must also cover the
// overhead-inflated cost.
func ComputeBuildUpTotals(b RateBuildUp) BuildUpTotals {
	t := BuildUpTotals{
		MaterialsTotal: sumDirect(b.Materials),
		LabourTotal:    sumAmortized(b.Labour),
		PlantTotal:     sumAmortized(b.Plant),
		TransportTotal: sumDirect(b.Transport),
	}
	t.PrimeCost = t.MaterialsTotal + t.LabourTotal + t.PlantTotal + t.TransportTotal
	t.OverheadAmount = safeAmount(b.OverheadPercent) / 100 * t.PrimeCost
	t.ProfitAmount = safeAmount(b.ProfitPercent) / 100 * (t.PrimeCost + t.OverheadAmount)
	t.UnitRate = t.PrimeCost + t.OverheadAmount + t.ProfitAmount
	return t
}

// categoryRows returns a pointer to the row list for category, or nil for an
// unknown category name.
func (b *RateBuildUp) categoryRows(category string) *[]ResourceRow {
	switch category {
	case CategoryMaterials:
		return &b.Materials
	case CategoryLabour:
		return &b.Labour
	case CategoryPlant:
		return &b.Plant
	case CategoryTransport:
		return &b.Transport
	}
	return nil
}

// AddRow appends a row to the named category with a fresh identity and
// sanitized numeric fields. It returns the row as stored, or false for an
// unknown category.
func (b *RateBuildUp) AddRow(category string, row ResourceRow) (ResourceRow, bool) {
	rows := b.categoryRows(category)
	if rows == nil {
		return ResourceRow{}, false
	}
	row.ID = uuid.NewString()
	row.Quantity = safeAmount(row.Quantity)
	row.UnitRate = safeAmount(row.UnitRate)
	if category == CategoryLabour || category == CategoryPlant {
		row.DailyOutput = safeOutput(row.DailyOutput)
	} else {
		row.DailyOutput = 0
	}
	*rows = append(*rows, row)
	return row, true
}

// EditRowField sets the named field on the row with the given identity.
// Unknown identities and unknown field names are no-ops: the row may have
// been removed concurrently by the user, so a stale edit is not an error.
func (b *RateBuildUp) EditRowField(id, field string, value any) {
	row := b.findRow(id)
	if row == nil {
		return
	}
	switch field {
	case "name":
		if s, ok := value.(string); ok {
			row.Name = s
		}
	case "unit":
		if s, ok := value.(string); ok {
			row.Unit = s
		}
	case "quantity":
		row.Quantity = safeAmount(toFloat(value))
	case "unitRate":
		row.UnitRate = safeAmount(toFloat(value))
	case "dailyOutput":
		row.DailyOutput = safeOutput(toFloat(value))
	}
}

// RemoveRow deletes the row with the given identity from whichever category
// holds it. Removing the last row of a category is legal and yields a zero
// subtotal. Unknown identities are ignored.
func (b *RateBuildUp) RemoveRow(id string) {
	for _, rows := range []*[]ResourceRow{&b.Materials, &b.Labour, &b.Plant, &b.Transport} {
		for i := range *rows {
			if (*rows)[i].ID == id {
				*rows = append((*rows)[:i], (*rows)[i+1:]...)
				return
			}
		}
	}
}

// Apply normalizes the build-up and returns the computed unit rate together
// with the build-up itself so the caller can write both onto the owning BOQ
// item. Apply never touches the item: computation stays separate from
// persistence.
func (b *RateBuildUp) Apply() (float64, *RateBuildUp) {
	b.normalize()
	return ComputeBuildUpTotals(*b).UnitRate, b
}

// normalize assigns identities to rows that arrived without one and clamps
// numeric fields, so a persisted build-up is always addressable and clean.
func (b *RateBuildUp) normalize() {
	b.OverheadPercent = safeAmount(b.OverheadPercent)
	b.ProfitPercent = safeAmount(b.ProfitPercent)
	for category, rows := range map[string]*[]ResourceRow{
		CategoryMaterials: &b.Materials,
		CategoryLabour:    &b.Labour,
		CategoryPlant:     &b.Plant,
		CategoryTransport: &b.Transport,
	} {
		amortized := category == CategoryLabour || category == CategoryPlant
		for i := range *rows {
			row := &(*rows)[i]
			if row.ID == "" {
				row.ID = uuid.NewString()
			}
			row.Quantity = safeAmount(row.Quantity)
			row.UnitRate = safeAmount(row.UnitRate)
			if amortized {
				row.DailyOutput = safeOutput(row.DailyOutput)
			} else {
				row.DailyOutput = 0
			}
		}
	}
}

func (b *RateBuildUp) findRow(id string) *ResourceRow {
	for _, rows := range []*[]ResourceRow{&b.Materials, &b.Labour, &b.Plant, &b.Transport} {
		for i := range *rows {
			if (*rows)[i].ID == id {
				return &(*rows)[i]
			}
		}
	}
	return nil
}

// toFloat coerces user-supplied values to float64; anything non-numeric
// becomes 0.
func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}
