package services

import (
	"strings"

	"github.com/google/uuid"
)

// Default percentages stamped onto every resolved seed. These are starting
// points the user may edit freely, not invariants.
const (
	DefaultOverheadPercent = 15
	DefaultProfitPercent   = 10
)

// MatchKind reports which tier of the resolution strategy produced a seed.
type MatchKind string

const (
	MatchKeyword   MatchKind = "keyword"
	MatchStructure MatchKind = "structure"
	MatchFallback  MatchKind = "fallback"
)

// BreakdownSeed is a freshly resolved rate build-up plus how it was matched.
type BreakdownSeed struct {
	BuildUp RateBuildUp
	Match   MatchKind
}

// ResolveTemplate classifies a free-text work item description into a
// breakdown template and returns a fresh build-up seeded from it.
//
// The strategy is ordered, first match wins:
//  1. keyword substring match against the catalog in declaration order;
//  2. the structure-type default, when a known hint is supplied;
//  3. the generic concrete-mix fallback, so the caller never gets a blank
//     build-up.
//
// Resolution never fails: a malformed or empty description yields the
// fallback. Every call copies the template rows under fresh identities, so
// two items resolving to the same template never share mutable rows.
func ResolveTemplate(description, structureTypeHint string) BreakdownSeed {
	normalized := strings.ToLower(strings.TrimSpace(description))

	if normalized != "" {
		for i := range breakdownTemplates {
			for _, kw := range breakdownTemplates[i].Keywords {
				if strings.Contains(normalized, kw) {
					return BreakdownSeed{BuildUp: seedFrom(&breakdownTemplates[i]), Match: MatchKeyword}
				}
			}
		}
	}

	if hint := strings.ToLower(strings.TrimSpace(structureTypeHint)); hint != "" {
		if tpl, ok := structureDefaults[hint]; ok {
			return BreakdownSeed{BuildUp: seedFrom(tpl), Match: MatchStructure}
		}
	}

	return BreakdownSeed{BuildUp: seedFrom(genericTemplate), Match: MatchFallback}
}

// seedFrom copies a template into a new RateBuildUp with fresh row
// identities and the default overhead/profit percentages.
func seedFrom(tpl *BreakdownTemplate) RateBuildUp {
	return RateBuildUp{
		TemplateName:    tpl.Name,
		Materials:       copyRows(tpl.Materials),
		Labour:          copyRows(tpl.Labour),
		Plant:           copyRows(tpl.Plant),
		Transport:       copyRows(tpl.Transport),
		OverheadPercent: DefaultOverheadPercent,
		ProfitPercent:   DefaultProfitPercent,
	}
}

func copyRows(defs []TemplateRow) []ResourceRow {
	rows := make([]ResourceRow, 0, len(defs))
	for _, d := range defs {
		rows = append(rows, ResourceRow{
			ID:          uuid.NewString(),
			Name:        d.Name,
			Quantity:    d.Quantity,
			Unit:        d.Unit,
			UnitRate:    d.UnitRate,
			DailyOutput: d.DailyOutput,
		})
	}
	return rows
}
