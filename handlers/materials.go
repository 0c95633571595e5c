package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/Dokboi01/BOQ-pro-sub000/services"
)

// HandleMaterialSchedule returns the aggregated material schedule for a
// project. Quantities are folded from the saved item breakdowns on every
// request, so edits made through rate analysis show up immediately.
func HandleMaterialSchedule(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return e.String(http.StatusNotFound, "Project not found")
		}

		sections, err := loadProjectSections(app, projectID)
		if err != nil {
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		schedule := services.AggregateMaterials(sections)
		return e.JSON(http.StatusOK, map[string]any{
			"projectId": projectID,
			"materials": schedule,
			"count":     len(schedule),
		})
	}
}
