package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/Dokboi01/BOQ-pro-sub000/services"
)

// HandleProjectList returns every project with its freshly computed grand total.
func HandleProjectList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projects, err := app.FindAllRecords("projects")
		if err != nil {
			log.Printf("project_list: could not query projects: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		type projectSummary struct {
			ID         string  `json:"id"`
			Name       string  `json:"name"`
			Region     string  `json:"region"`
			GrandTotal float64 `json:"grandTotal"`
		}

		out := make([]projectSummary, 0, len(projects))
		for _, p := range projects {
			sections, err := loadProjectSections(app, p.Id)
			if err != nil {
				log.Printf("project_list: %v", err)
				return e.String(http.StatusInternalServerError, "Internal error")
			}
			out = append(out, projectSummary{
				ID:         p.Id,
				Name:       p.GetString("name"),
				Region:     p.GetString("region"),
				GrandTotal: services.ProjectGrandTotal(sections, p.GetString("region")),
			})
		}

		return e.JSON(http.StatusOK, out)
	}
}

// ProjectCreateRequest is the expected JSON body for project creation.
type ProjectCreateRequest struct {
	Name   string `json:"name"`
	Region string `json:"region"`
}

// HandleProjectCreate creates a project. Unknown regions are accepted and
// priced at the neutral baseline modifier.
func HandleProjectCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req ProjectCreateRequest
		if err := e.BindBody(&req); err != nil {
			return e.String(http.StatusBadRequest, "Invalid request body")
		}

		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			return e.String(http.StatusBadRequest, "Project name is required")
		}
		if req.Region == "" {
			req.Region = "National Average"
		}

		col, err := app.FindCollectionByNameOrId("projects")
		if err != nil {
			log.Printf("project_create: could not find projects collection: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		record := core.NewRecord(col)
		record.Set("name", req.Name)
		record.Set("region", req.Region)
		if err := app.Save(record); err != nil {
			log.Printf("project_create: could not save project: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		return e.JSON(http.StatusOK, map[string]any{
			"id":               record.Id,
			"name":             req.Name,
			"region":           req.Region,
			"regionalModifier": services.RegionalModifier(req.Region),
		})
	}
}

// HandleProjectView returns a project with sections, items, recomputed item
// totals, section subtotals and the grand total.
func HandleProjectView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		project, err := app.FindRecordById("projects", projectID)
		if err != nil {
			return e.String(http.StatusNotFound, "Project not found")
		}
		region := project.GetString("region")

		sections, err := loadProjectSections(app, projectID)
		if err != nil {
			log.Printf("project_view: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		type itemView struct {
			services.LineItem
			EffectiveRate float64 `json:"effectiveRate"`
			Total         float64 `json:"total"`
			Outlier       bool    `json:"outlier"`
		}
		type sectionView struct {
			Name     string     `json:"name"`
			Subtotal float64    `json:"subtotal"`
			Items    []itemView `json:"items"`
		}

		out := struct {
			ID         string        `json:"id"`
			Name       string        `json:"name"`
			Region     string        `json:"region"`
			Modifier   float64       `json:"regionalModifier"`
			Sections   []sectionView `json:"sections"`
			GrandTotal float64       `json:"grandTotal"`
		}{
			ID:         project.Id,
			Name:       project.GetString("name"),
			Region:     region,
			Modifier:   services.RegionalModifier(region),
			GrandTotal: services.ProjectGrandTotal(sections, region),
		}

		for _, section := range sections {
			sv := sectionView{
				Name:     section.Name,
				Subtotal: services.SectionSubtotal(section, region),
			}
			for _, item := range section.Items {
				sv.Items = append(sv.Items, itemView{
					LineItem:      item,
					EffectiveRate: services.EffectiveRate(item.CustomRate, item.BenchmarkRate, item.UseBenchmark, region),
					Total:         services.ItemTotal(item, region),
					Outlier:       !item.UseBenchmark && services.IsOutlier(item.CustomRate, item.BenchmarkRate),
				})
			}
			out.Sections = append(out.Sections, sv)
		}

		return e.JSON(http.StatusOK, out)
	}
}

// HandleProjectDelete removes a project; sections and items cascade.
func HandleProjectDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		project, err := app.FindRecordById("projects", projectID)
		if err != nil {
			return e.String(http.StatusNotFound, "Project not found")
		}
		if err := app.Delete(project); err != nil {
			log.Printf("project_delete: could not delete project %s: %v", projectID, err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}
		return e.JSON(http.StatusOK, map[string]any{"deleted": projectID})
	}
}
