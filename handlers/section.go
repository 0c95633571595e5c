package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// SectionCreateRequest is the expected JSON body for section creation.
type SectionCreateRequest struct {
	Name          string `json:"name"`
	StructureType string `json:"structureType"`
	SortOrder     int    `json:"sortOrder"`
}

// HandleSectionAdd appends a section to a project.
func HandleSectionAdd(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return e.String(http.StatusNotFound, "Project not found")
		}

		var req SectionCreateRequest
		if err := e.BindBody(&req); err != nil {
			return e.String(http.StatusBadRequest, "Invalid request body")
		}
		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			return e.String(http.StatusBadRequest, "Section name is required")
		}
		if req.SortOrder <= 0 {
			existing, _ := app.FindRecordsByFilter(
				"sections", "project = {:project}", "", 0, 0,
				map[string]any{"project": projectID},
			)
			req.SortOrder = len(existing) + 1
		}

		col, err := app.FindCollectionByNameOrId("sections")
		if err != nil {
			log.Printf("section_add: could not find sections collection: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		record := core.NewRecord(col)
		record.Set("project", projectID)
		record.Set("name", req.Name)
		record.Set("structure_type", req.StructureType)
		record.Set("sort_order", req.SortOrder)
		if err := app.Save(record); err != nil {
			log.Printf("section_add: could not save section: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		return e.JSON(http.StatusOK, map[string]any{
			"id":            record.Id,
			"name":          req.Name,
			"structureType": req.StructureType,
			"sortOrder":     req.SortOrder,
		})
	}
}

// HandleSectionDelete removes a section; its items cascade.
func HandleSectionDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sectionID := e.Request.PathValue("sectionId")
		section, err := app.FindRecordById("sections", sectionID)
		if err != nil {
			return e.String(http.StatusNotFound, "Section not found")
		}
		if err := app.Delete(section); err != nil {
			log.Printf("section_delete: could not delete section %s: %v", sectionID, err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}
		return e.JSON(http.StatusOK, map[string]any{"deleted": sectionID})
	}
}
