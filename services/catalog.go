// Package services provides the rate build-up and cost estimation logic for
// BOQ items: the cost template catalog, template resolution, build-up
// arithmetic, regional adjustment and project aggregation.
package services

import "fmt"

// ── Resource pools ───────────────────────────────────────────────────────

// LabourResource is a daily-rated labour resource from the catalog pool.
type LabourResource struct {
	Name      string
	Unit      string
	DailyRate float64
}

// PlantResource is a daily-rated plant/equipment resource from the catalog pool.
type PlantResource struct {
	Name      string
	Unit      string
	DailyRate float64
}

// labourPool holds the standard labour resources keyed by short identifier.
// Rates are KES per working day.
var labourPool = map[string]LabourResource{
	"foreman":     {Name: "Site Foreman", Unit: "Day", DailyRate: 2500},
	"mason":       {Name: "Mason", Unit: "Day", DailyRate: 1800},
	"carpenter":   {Name: "Carpenter", Unit: "Day", DailyRate: 1700},
	"steel_fixer": {Name: "Steel Fixer", Unit: "Day", DailyRate: 1800},
	"painter":     {Name: "Painter", Unit: "Day", DailyRate: 1500},
	"plumber":     {Name: "Plumber", Unit: "Day", DailyRate: 1800},
	"tiler":       {Name: "Tiler", Unit: "Day", DailyRate: 1800},
	"roofer":      {Name: "Roofing Carpenter", Unit: "Day", DailyRate: 1700},
	"labourer":    {Name: "General Labourer", Unit: "Day", DailyRate: 900},
	"operator":    {Name: "Plant Operator", Unit: "Day", DailyRate: 2200},
}

// plantPool holds the standard plant/equipment resources keyed by short
// identifier. Rates are KES hire per day.
var plantPool = map[string]PlantResource{
	"concrete_mixer":  {Name: "Concrete Mixer (0.4m3)", Unit: "Day", DailyRate: 5000},
	"poker_vibrator":  {Name: "Poker Vibrator", Unit: "Day", DailyRate: 2500},
	"excavator":       {Name: "Excavator (20T)", Unit: "Day", DailyRate: 35000},
	"dumper":          {Name: "Site Dumper", Unit: "Day", DailyRate: 12000},
	"plate_compactor": {Name: "Plate Compactor", Unit: "Day", DailyRate: 4000},
	"water_pump":      {Name: "Water Pump (3 inch)", Unit: "Day", DailyRate: 3000},
	"scaffolding":     {Name: "Scaffolding Set", Unit: "Day", DailyRate: 3500},
	"bar_bender":      {Name: "Bar Bending Machine", Unit: "Day", DailyRate: 3000},
}

// LabourByKey returns the labour resource for key. Unknown keys are a
// programming error in the catalog, so it panics.
func LabourByKey(key string) LabourResource {
	r, ok := labourPool[key]
	if !ok {
		panic(fmt.Sprintf("catalog: unknown labour resource %q", key))
	}
	return r
}

// PlantByKey returns the plant resource for key. Unknown keys are a
// programming error in the catalog, so it panics.
func PlantByKey(key string) PlantResource {
	r, ok := plantPool[key]
	if !ok {
		panic(fmt.Sprintf("catalog: unknown plant resource %q", key))
	}
	return r
}

// ── Breakdown templates ──────────────────────────────────────────────────

// TemplateRow is one resource definition inside a breakdown template. For
// labour and plant rows DailyOutput is the quantity of finished work the
// crew/equipment completes per day; it is meaningless for materials and
// transport rows and left zero there.
type TemplateRow struct {
	Name        string
	Quantity    float64
	Unit        string
	UnitRate    float64
	DailyOutput float64
}

// BreakdownTemplate seeds a new rate build-up. Keywords are lowercase
// substrings matched against the normalized item description; order inside
// breakdownTemplates defines precedence (first match wins), so specific
// phrases live in earlier templates than generic ones.
type BreakdownTemplate struct {
	Name      string
	Keywords  []string
	Materials []TemplateRow
	Labour    []TemplateRow
	Plant     []TemplateRow
	Transport []TemplateRow
}

// labourRow builds a template labour row from the pool. crew is the number of
// crew members, output the finished quantity per crew-day.
func labourRow(key string, crew, output float64) TemplateRow {
	r := LabourByKey(key)
	return TemplateRow{Name: r.Name, Quantity: crew, Unit: r.Unit, UnitRate: r.DailyRate, DailyOutput: output}
}

// plantRow builds a template plant row from the pool.
func plantRow(key string, count, output float64) TemplateRow {
	r := PlantByKey(key)
	return TemplateRow{Name: r.Name, Quantity: count, Unit: r.Unit, UnitRate: r.DailyRate, DailyOutput: output}
}

// breakdownTemplates is the ordered classifier: the resolver scans it in
// declaration order and the first keyword hit wins. Specific concrete grades
// are declared before the generic concrete template so "C25/30" never falls
// through to the 1:2:4 mix.
var breakdownTemplates = []BreakdownTemplate{
	{
		Name:     "Vibrated Reinforced Concrete Grade C30/37",
		Keywords: []string{"c30/37", "grade 30", "grade c30"},
		Materials: []TemplateRow{
			{Name: "Cement (50kg bag)", Quantity: 8.4, Unit: "Bags", UnitRate: 850},
			{Name: "River Sand", Quantity: 0.42, Unit: "m3", UnitRate: 2500},
			{Name: "Ballast (20mm)", Quantity: 0.84, Unit: "m3", UnitRate: 2800},
			{Name: "Water", Quantity: 220, Unit: "Ltr", UnitRate: 3},
		},
		Labour: []TemplateRow{
			labourRow("mason", 2, 6),
			labourRow("labourer", 6, 6),
			labourRow("foreman", 0.5, 6),
		},
		Plant: []TemplateRow{
			plantRow("concrete_mixer", 1, 6),
			plantRow("poker_vibrator", 1, 6),
		},
		Transport: []TemplateRow{
			{Name: "Material haulage to site", Quantity: 1, Unit: "Trip", UnitRate: 1200},
		},
	},
	{
		Name:     "Vibrated Reinforced Concrete Grade C25/30",
		Keywords: []string{"c25/30", "grade 25", "grade c25"},
		Materials: []TemplateRow{
			{Name: "Cement (50kg bag)", Quantity: 7.6, Unit: "Bags", UnitRate: 850},
			{Name: "River Sand", Quantity: 0.44, Unit: "m3", UnitRate: 2500},
			{Name: "Ballast (20mm)", Quantity: 0.88, Unit: "m3", UnitRate: 2800},
			{Name: "Water", Quantity: 210, Unit: "Ltr", UnitRate: 3},
		},
		Labour: []TemplateRow{
			labourRow("mason", 2, 6),
			labourRow("labourer", 6, 6),
			labourRow("foreman", 0.5, 6),
		},
		Plant: []TemplateRow{
			plantRow("concrete_mixer", 1, 6),
			plantRow("poker_vibrator", 1, 6),
		},
		Transport: []TemplateRow{
			{Name: "Material haulage to site", Quantity: 1, Unit: "Trip", UnitRate: 1200},
		},
	},
	{
		Name:     "Vibrated Concrete Grade C20/25",
		Keywords: []string{"c20/25", "grade 20", "grade c20"},
		Materials: []TemplateRow{
			{Name: "Cement (50kg bag)", Quantity: 6.8, Unit: "Bags", UnitRate: 850},
			{Name: "River Sand", Quantity: 0.46, Unit: "m3", UnitRate: 2500},
			{Name: "Ballast (20mm)", Quantity: 0.92, Unit: "m3", UnitRate: 2800},
			{Name: "Water", Quantity: 200, Unit: "Ltr", UnitRate: 3},
		},
		Labour: []TemplateRow{
			labourRow("mason", 2, 7),
			labourRow("labourer", 5, 7),
			labourRow("foreman", 0.5, 7),
		},
		Plant: []TemplateRow{
			plantRow("concrete_mixer", 1, 7),
			plantRow("poker_vibrator", 1, 7),
		},
		Transport: []TemplateRow{
			{Name: "Material haulage to site", Quantity: 1, Unit: "Trip", UnitRate: 1200},
		},
	},
	{
		Name:     "Plain Concrete Blinding Grade C15/20",
		Keywords: []string{"c15/20", "grade 15", "blinding"},
		Materials: []TemplateRow{
			{Name: "Cement (50kg bag)", Quantity: 5.8, Unit: "Bags", UnitRate: 850},
			{Name: "River Sand", Quantity: 0.48, Unit: "m3", UnitRate: 2500},
			{Name: "Ballast (20mm)", Quantity: 0.96, Unit: "m3", UnitRate: 2800},
			{Name: "Water", Quantity: 190, Unit: "Ltr", UnitRate: 3},
		},
		Labour: []TemplateRow{
			labourRow("mason", 1, 8),
			labourRow("labourer", 4, 8),
		},
		Plant: []TemplateRow{
			plantRow("concrete_mixer", 1, 8),
		},
		Transport: []TemplateRow{
			{Name: "Material haulage to site", Quantity: 1, Unit: "Trip", UnitRate: 1000},
		},
	},
	{
		Name:     "High Yield Steel Reinforcement",
		Keywords: []string{"reinforcement", "rebar", "high yield", "y8", "y10", "y12", "y16", "brc mesh"},
		Materials: []TemplateRow{
			{Name: "High yield steel bars", Quantity: 1.05, Unit: "Kg", UnitRate: 145},
			{Name: "Binding wire", Quantity: 0.02, Unit: "Kg", UnitRate: 250},
			{Name: "Concrete spacers", Quantity: 0.3, Unit: "Nos", UnitRate: 15},
		},
		Labour: []TemplateRow{
			labourRow("steel_fixer", 1, 120),
			labourRow("labourer", 1, 120),
		},
		Plant: []TemplateRow{
			plantRow("bar_bender", 1, 250),
		},
		Transport: []TemplateRow{
			{Name: "Steel delivery", Quantity: 0.005, Unit: "Trip", UnitRate: 3500},
		},
	},
	{
		Name:     "Sawn Formwork to Concrete Surfaces",
		Keywords: []string{"formwork", "shutter", "falsework"},
		Materials: []TemplateRow{
			{Name: "Timber boards (uses)", Quantity: 0.3, Unit: "m2", UnitRate: 650},
			{Name: "Props and bracing timber", Quantity: 0.15, Unit: "Pcs", UnitRate: 400},
			{Name: "Nails and release oil", Quantity: 0.2, Unit: "Kg", UnitRate: 180},
		},
		Labour: []TemplateRow{
			labourRow("carpenter", 2, 12),
			labourRow("labourer", 2, 12),
		},
		Plant: []TemplateRow{
			plantRow("scaffolding", 1, 20),
		},
		Transport: []TemplateRow{
			{Name: "Timber delivery", Quantity: 0.02, Unit: "Trip", UnitRate: 2000},
		},
	},
	{
		Name:     "Machine Cut Stone Walling",
		Keywords: []string{"blockwork", "block wall", "masonry", "walling", "stone wall", "machine cut"},
		Materials: []TemplateRow{
			{Name: "Machine cut stones (200mm)", Quantity: 13, Unit: "Nos", UnitRate: 65},
			{Name: "Cement (50kg bag)", Quantity: 0.6, Unit: "Bags", UnitRate: 850},
			{Name: "River Sand", Quantity: 0.05, Unit: "m3", UnitRate: 2500},
			{Name: "Hoop iron", Quantity: 0.4, Unit: "Mtr", UnitRate: 30},
		},
		Labour: []TemplateRow{
			labourRow("mason", 1, 10),
			labourRow("labourer", 2, 10),
		},
		Plant: []TemplateRow{},
		Transport: []TemplateRow{
			{Name: "Stone delivery", Quantity: 0.02, Unit: "Trip", UnitRate: 3000},
		},
	},
	{
		Name:     "Cement Sand Plaster (12mm, 1:4)",
		Keywords: []string{"plaster", "render", "key to wall"},
		Materials: []TemplateRow{
			{Name: "Cement (50kg bag)", Quantity: 0.18, Unit: "Bags", UnitRate: 850},
			{Name: "Plaster sand", Quantity: 0.016, Unit: "m3", UnitRate: 2600},
			{Name: "Water", Quantity: 8, Unit: "Ltr", UnitRate: 3},
		},
		Labour: []TemplateRow{
			labourRow("mason", 1, 18),
			labourRow("labourer", 1, 18),
		},
		Plant: []TemplateRow{
			plantRow("scaffolding", 1, 40),
		},
		Transport: []TemplateRow{
			{Name: "Material haulage", Quantity: 0.005, Unit: "Trip", UnitRate: 1500},
		},
	},
	{
		Name:     "Cement Sand Floor Screed (32mm)",
		Keywords: []string{"screed"},
		Materials: []TemplateRow{
			{Name: "Cement (50kg bag)", Quantity: 0.3, Unit: "Bags", UnitRate: 850},
			{Name: "River Sand", Quantity: 0.035, Unit: "m3", UnitRate: 2500},
		},
		Labour: []TemplateRow{
			labourRow("mason", 1, 16),
			labourRow("labourer", 1, 16),
		},
		Plant: []TemplateRow{},
		Transport: []TemplateRow{
			{Name: "Material haulage", Quantity: 0.004, Unit: "Trip", UnitRate: 1500},
		},
	},
	{
		Name:     "Bulk Excavation in Ordinary Soil",
		Keywords: []string{"excavat", "earthwork", "cut to spoil", "trench", "cart away"},
		Materials: []TemplateRow{
			{Name: "Setting out pegs and lines", Quantity: 0.05, Unit: "Lot", UnitRate: 500},
		},
		Labour: []TemplateRow{
			labourRow("operator", 1, 120),
			labourRow("labourer", 2, 120),
		},
		Plant: []TemplateRow{
			plantRow("excavator", 1, 120),
			plantRow("dumper", 1, 120),
		},
		Transport: []TemplateRow{
			{Name: "Disposal of surplus soil", Quantity: 0.08, Unit: "Trip", UnitRate: 2500},
		},
	},
	{
		Name:     "Hardcore Filling, Compacted in Layers",
		Keywords: []string{"hardcore", "murram", "compacted fill", "imported fill"},
		Materials: []TemplateRow{
			{Name: "Hardcore/murram", Quantity: 1.25, Unit: "m3", UnitRate: 1400},
		},
		Labour: []TemplateRow{
			labourRow("labourer", 3, 20),
			labourRow("operator", 1, 20),
		},
		Plant: []TemplateRow{
			plantRow("plate_compactor", 1, 20),
		},
		Transport: []TemplateRow{
			{Name: "Hardcore haulage", Quantity: 0.15, Unit: "Trip", UnitRate: 2500},
		},
	},
	{
		Name:     "Damp Proof Membrane (1000 gauge)",
		Keywords: []string{"damp proof", "dpm", "dpc", "polythene"},
		Materials: []TemplateRow{
			{Name: "Polythene sheet 1000g", Quantity: 1.15, Unit: "m2", UnitRate: 80},
			{Name: "Jointing tape", Quantity: 0.3, Unit: "Mtr", UnitRate: 25},
		},
		Labour: []TemplateRow{
			labourRow("labourer", 1, 100),
		},
		Plant:     []TemplateRow{},
		Transport: []TemplateRow{},
	},
	{
		Name:     "Roof Covering, Pre-painted Iron Sheets",
		Keywords: []string{"roof", "iron sheet", "mabati", "purlin", "rafter"},
		Materials: []TemplateRow{
			{Name: "Pre-painted iron sheets G30", Quantity: 1.15, Unit: "m2", UnitRate: 750},
			{Name: "Cypress purlins 50x75", Quantity: 2.2, Unit: "Mtr", UnitRate: 120},
			{Name: "Roofing nails and washers", Quantity: 0.15, Unit: "Kg", UnitRate: 280},
		},
		Labour: []TemplateRow{
			labourRow("roofer", 2, 25),
			labourRow("labourer", 1, 25),
		},
		Plant: []TemplateRow{
			plantRow("scaffolding", 1, 40),
		},
		Transport: []TemplateRow{
			{Name: "Sheet delivery", Quantity: 0.01, Unit: "Trip", UnitRate: 3000},
		},
	},
	{
		Name:     "Ceramic Floor and Wall Tiling",
		Keywords: []string{"tile", "ceramic", "porcelain", "terrazzo"},
		Materials: []TemplateRow{
			{Name: "Ceramic tiles", Quantity: 1.08, Unit: "m2", UnitRate: 1100},
			{Name: "Tile adhesive (25kg)", Quantity: 0.2, Unit: "Bags", UnitRate: 900},
			{Name: "Grout", Quantity: 0.3, Unit: "Kg", UnitRate: 180},
		},
		Labour: []TemplateRow{
			labourRow("tiler", 1, 12),
			labourRow("labourer", 1, 12),
		},
		Plant: []TemplateRow{},
		Transport: []TemplateRow{
			{Name: "Tile delivery", Quantity: 0.01, Unit: "Trip", UnitRate: 2000},
		},
	},
	{
		Name:     "Three Coats Emulsion Paint to Walls",
		Keywords: []string{"paint", "emulsion", "undercoat", "gloss"},
		Materials: []TemplateRow{
			{Name: "Vinyl emulsion paint", Quantity: 0.25, Unit: "Ltr", UnitRate: 650},
			{Name: "Undercoat/primer", Quantity: 0.1, Unit: "Ltr", UnitRate: 550},
			{Name: "Sandpaper and fillers", Quantity: 0.05, Unit: "Lot", UnitRate: 300},
		},
		Labour: []TemplateRow{
			labourRow("painter", 1, 30),
		},
		Plant: []TemplateRow{
			plantRow("scaffolding", 1, 60),
		},
		Transport: []TemplateRow{},
	},
	{
		Name:     "General Concrete Works (1:2:4 mix)",
		Keywords: []string{"concrete", "slab", "beam", "column", "footing", "strip foundation"},
		Materials: []TemplateRow{
			{Name: "Cement (50kg bag)", Quantity: 6.5, Unit: "Bags", UnitRate: 850},
			{Name: "River Sand", Quantity: 0.46, Unit: "m3", UnitRate: 2500},
			{Name: "Ballast (20mm)", Quantity: 0.92, Unit: "m3", UnitRate: 2800},
			{Name: "Water", Quantity: 200, Unit: "Ltr", UnitRate: 3},
		},
		Labour: []TemplateRow{
			labourRow("mason", 2, 6),
			labourRow("labourer", 5, 6),
		},
		Plant: []TemplateRow{
			plantRow("concrete_mixer", 1, 6),
			plantRow("poker_vibrator", 1, 6),
		},
		Transport: []TemplateRow{
			{Name: "Material haulage to site", Quantity: 1, Unit: "Trip", UnitRate: 1200},
		},
	},
}

// genericTemplate is the absolute fallback: a non-empty concrete-mix seed so
// rate analysis never opens on a blank build-up.
var genericTemplate = &breakdownTemplates[len(breakdownTemplates)-1]

// structureDefaults maps a structure-type hint to a default template, used
// when no keyword matches. Keys are normalized lowercase.
var structureDefaults = map[string]*BreakdownTemplate{
	"substructure":   templateByName("Vibrated Concrete Grade C20/25"),
	"superstructure": templateByName("Vibrated Reinforced Concrete Grade C25/30"),
	"walling":        templateByName("Machine Cut Stone Walling"),
	"roofing":        templateByName("Roof Covering, Pre-painted Iron Sheets"),
	"finishes":       templateByName("Cement Sand Plaster (12mm, 1:4)"),
	"external works": templateByName("Bulk Excavation in Ordinary Soil"),
}

// templateByName finds a catalog template by display name. The catalog is
// static, so a miss is a programming error.
func templateByName(name string) *BreakdownTemplate {
	for i := range breakdownTemplates {
		if breakdownTemplates[i].Name == name {
			return &breakdownTemplates[i]
		}
	}
	panic(fmt.Sprintf("catalog: unknown template %q", name))
}

// Templates returns the ordered breakdown template list. Callers must treat
// the returned slice as read-only.
func Templates() []BreakdownTemplate {
	return breakdownTemplates
}

// StructureTypeOptions returns the structure-type names that carry a default
// template, for dropdown use.
func StructureTypeOptions() []string {
	return []string{"Substructure", "Superstructure", "Walling", "Roofing", "Finishes", "External Works"}
}

// UOMOptions is the list of Unit of Measurement options.
var UOMOptions = []string{
	"Nos", "m", "m2", "m3", "Kg", "MT", "Ltr", "Bags", "Pcs",
	"Lot", "Set", "Lumpsum", "Trip", "Day", "Item",
}

// RegionOptions is the list of selectable project regions.
var RegionOptions = []string{
	"National Average", "Nairobi", "Mombasa", "Kisumu", "Nakuru", "Eldoret", "Rural",
}
