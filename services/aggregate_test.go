package services

import (
	"math"
	"reflect"
	"testing"
)

func testSections() []Section {
	return []Section{
		{
			Name: "Substructure",
			Items: []LineItem{
				{Description: "Excavate trenches", Unit: "m3", Quantity: 120, CustomRate: 450},
				{
					Description: "Concrete Grade C25/30 in strip foundation",
					Unit:        "m3",
					Quantity:    30,
					CustomRate:  14500,
					BuildUp: &RateBuildUp{
						Materials: []ResourceRow{
							{ID: "m1", Name: "Cement (50kg bag)", Quantity: 7.6, Unit: "Bags", UnitRate: 850},
							{ID: "m2", Name: "River Sand", Quantity: 0.44, Unit: "m3", UnitRate: 2500},
						},
						OverheadPercent: 15,
						ProfitPercent:   10,
					},
				},
			},
		},
		{
			Name: "Superstructure",
			Items: []LineItem{
				{
					Description: "Concrete Grade C25/30 in columns",
					Unit:        "m3",
					Quantity:    10,
					BenchmarkRate: 15000,
					UseBenchmark:  true,
					BuildUp: &RateBuildUp{
						Materials: []ResourceRow{
							{ID: "m3", Name: "Cement (50kg bag)", Quantity: 7.6, Unit: "Bags", UnitRate: 850},
						},
						OverheadPercent: 15,
						ProfitPercent:   10,
					},
				},
			},
		},
	}
}

func TestSectionSubtotal(t *testing.T) {
	sections := testSections()

	want := 120*450 + 30*14500.0
	if got := SectionSubtotal(sections[0], "National Average"); math.Abs(got-want) > 0.001 {
		t.Errorf("SectionSubtotal = %v, want %v", got, want)
	}
}

func TestProjectGrandTotal(t *testing.T) {
	sections := testSections()
	region := "Nairobi"

	var want float64
	for _, s := range sections {
		want += SectionSubtotal(s, region)
	}
	if got := ProjectGrandTotal(sections, region); math.Abs(got-want) > 0.001 {
		t.Errorf("ProjectGrandTotal = %v, want sum of section subtotals %v", got, want)
	}

	// The benchmark-using item contributes qty x benchmark x modifier.
	itemWant := 10 * 15000 * 1.15
	if got := ItemTotal(sections[1].Items[0], region); math.Abs(got-itemWant) > 0.001 {
		t.Errorf("benchmark ItemTotal = %v, want %v", got, itemWant)
	}
}

func TestProjectGrandTotal_Empty(t *testing.T) {
	if got := ProjectGrandTotal(nil, "Nairobi"); got != 0 {
		t.Errorf("ProjectGrandTotal(nil) = %v, want 0", got)
	}
}

func TestAggregateMaterials(t *testing.T) {
	records := AggregateMaterials(testSections())

	if len(records) != 2 {
		t.Fatalf("got %d material records, want 2", len(records))
	}

	// Cement appears in both sections: 30*7.6 + 10*7.6 = 304.
	cement := records[0]
	if cement.MaterialName != "Cement (50kg bag)" {
		t.Fatalf("first record = %q, want cement (first-seen order)", cement.MaterialName)
	}
	if math.Abs(cement.AggregatedQuantity-304) > 0.001 {
		t.Errorf("cement quantity = %v, want 304", cement.AggregatedQuantity)
	}
	if !reflect.DeepEqual(cement.UsedInSections, []string{"Substructure", "Superstructure"}) {
		t.Errorf("cement sections = %v", cement.UsedInSections)
	}

	// Sand appears only in substructure: 30*0.44 = 13.2.
	sand := records[1]
	if sand.MaterialName != "River Sand" {
		t.Fatalf("second record = %q, want river sand", sand.MaterialName)
	}
	if math.Abs(sand.AggregatedQuantity-13.2) > 0.001 {
		t.Errorf("sand quantity = %v, want 13.2", sand.AggregatedQuantity)
	}
	if !reflect.DeepEqual(sand.UsedInSections, []string{"Substructure"}) {
		t.Errorf("sand sections = %v", sand.UsedInSections)
	}
}

func TestAggregateMaterials_SkipsItemsWithoutBuildUp(t *testing.T) {
	sections := []Section{
		{Name: "Prelims", Items: []LineItem{
			{Description: "Site clearance", Quantity: 1, CustomRate: 50000},
		}},
	}
	if got := AggregateMaterials(sections); len(got) != 0 {
		t.Errorf("expected no records, got %v", got)
	}
}

func TestAggregation_NoDrift(t *testing.T) {
	sections := testSections()
	region := "Mombasa"

	first := ProjectGrandTotal(sections, region)
	firstMaterials := AggregateMaterials(sections)

	// A no-op edit: overwrite a quantity with its current value.
	sections[0].Items[0].Quantity = 120

	second := ProjectGrandTotal(sections, region)
	secondMaterials := AggregateMaterials(sections)

	if first != second {
		t.Errorf("grand total drifted: %v then %v", first, second)
	}
	if !reflect.DeepEqual(firstMaterials, secondMaterials) {
		t.Errorf("material schedule drifted:\n%v\n%v", firstMaterials, secondMaterials)
	}
}
