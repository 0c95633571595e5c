package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/Dokboi01/BOQ-pro-sub000/services"
)

// rateAnalysisView is the JSON shape of an open rate-analysis panel: the
// editable rows plus every derived total, recomputed on each request.
type rateAnalysisView struct {
	ItemID   string                 `json:"itemId"`
	Restored bool                   `json:"restored"` // true when loaded from a saved breakdown
	Match    services.MatchKind     `json:"match,omitempty"`
	BuildUp  services.RateBuildUp   `json:"buildUp"`
	Totals   services.BuildUpTotals `json:"totals"`
}

// HandleRateAnalysisView opens rate analysis for an item: the stored
// build-up when one was saved earlier, otherwise a fresh seed resolved from
// the item description and the section's structure type.
func HandleRateAnalysisView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		itemID := e.Request.PathValue("itemId")
		record, err := app.FindRecordById("boq_items", itemID)
		if err != nil {
			return e.String(http.StatusNotFound, "Item not found")
		}

		view := rateAnalysisView{ItemID: itemID}
		if stored := decodeBreakdown(record); stored != nil {
			view.Restored = true
			view.BuildUp = *stored
		} else {
			structureType := ""
			if section, err := app.FindRecordById("sections", record.GetString("section")); err == nil {
				structureType = section.GetString("structure_type")
			}
			seed := services.ResolveTemplate(record.GetString("description"), structureType)
			view.Match = seed.Match
			view.BuildUp = seed.BuildUp
		}
		view.Totals = services.ComputeBuildUpTotals(view.BuildUp)

		return e.JSON(http.StatusOK, view)
	}
}

// RateAnalysisApplyRequest is the edited build-up posted back from the
// rate-analysis panel.
type RateAnalysisApplyRequest struct {
	BuildUp services.RateBuildUp `json:"buildUp"`
}

// HandleRateAnalysisApply recomputes the posted build-up and applies it to
// the owning item: the breakdown is persisted, the computed unit rate
// becomes the item's custom rate (benchmark pricing is switched off since
// the user has now derived their own rate) and the stored total is
// rewritten. The computation itself happens in the services layer; this
// handler only persists the result.
func HandleRateAnalysisApply(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		itemID := e.Request.PathValue("itemId")
		record, err := app.FindRecordById("boq_items", itemID)
		if err != nil {
			return e.String(http.StatusNotFound, "Item not found")
		}

		var req RateAnalysisApplyRequest
		if err := e.BindBody(&req); err != nil {
			return e.String(http.StatusBadRequest, "Invalid request body")
		}

		rate, buildUp := req.BuildUp.Apply()
		raw, err := json.Marshal(buildUp)
		if err != nil {
			log.Printf("rate_analysis: could not marshal breakdown: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		record.Set("breakdown", raw)
		record.Set("custom_rate", rate)
		record.Set("use_benchmark", false)
		writeItemTotal(record, projectRegion(app, projectID))

		if err := app.Save(record); err != nil {
			log.Printf("rate_analysis: could not save item %s: %v", itemID, err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		return e.JSON(http.StatusOK, map[string]any{
			"itemId":   itemID,
			"unitRate": rate,
			"total":    record.GetFloat("total"),
			"totals":   services.ComputeBuildUpTotals(*buildUp),
		})
	}
}

// HandleRateTemplates lists the catalog for the rate-analysis UI: template
// names with keywords, structure types, regions and unit options.
func HandleRateTemplates(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		type templateSummary struct {
			Name     string   `json:"name"`
			Keywords []string `json:"keywords"`
		}
		templates := services.Templates()
		out := make([]templateSummary, 0, len(templates))
		for _, tpl := range templates {
			out = append(out, templateSummary{Name: tpl.Name, Keywords: tpl.Keywords})
		}
		return e.JSON(http.StatusOK, map[string]any{
			"templates":      out,
			"structureTypes": services.StructureTypeOptions(),
			"regions":        services.RegionOptions,
			"units":          services.UOMOptions,
		})
	}
}
