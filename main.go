package main

import (
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/Dokboi01/BOQ-pro-sub000/collections"
	"github.com/Dokboi01/BOQ-pro-sub000/handlers"
)

func main() {
	app := pocketbase.New()

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		if err := collections.MigrateStaleItemTotals(app); err != nil {
			log.Printf("Warning: item total migration failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// ── Project CRUD ─────────────────────────────────────────
		se.Router.GET("/projects", handlers.HandleProjectList(app))
		se.Router.POST("/projects", handlers.HandleProjectCreate(app))
		se.Router.GET("/projects/{projectId}", handlers.HandleProjectView(app))
		se.Router.DELETE("/projects/{projectId}", handlers.HandleProjectDelete(app))

		// ── Sections ─────────────────────────────────────────────
		se.Router.POST("/projects/{projectId}/sections", handlers.HandleSectionAdd(app))
		se.Router.DELETE("/projects/{projectId}/sections/{sectionId}", handlers.HandleSectionDelete(app))

		// ── BOQ items ────────────────────────────────────────────
		se.Router.POST("/projects/{projectId}/sections/{sectionId}/items", handlers.HandleItemAdd(app))
		se.Router.PATCH("/projects/{projectId}/items/{itemId}", handlers.HandleItemPatch(app))
		se.Router.DELETE("/projects/{projectId}/items/{itemId}", handlers.HandleItemDelete(app))

		// ── Rate analysis ────────────────────────────────────────
		se.Router.GET("/rate-templates", handlers.HandleRateTemplates(app))
		se.Router.GET("/projects/{projectId}/items/{itemId}/rate-analysis", handlers.HandleRateAnalysisView(app))
		se.Router.POST("/projects/{projectId}/items/{itemId}/rate-analysis", handlers.HandleRateAnalysisApply(app))

		// ── Material schedule ────────────────────────────────────
		se.Router.GET("/projects/{projectId}/materials", handlers.HandleMaterialSchedule(app))

		// ── Export ───────────────────────────────────────────────
		se.Router.GET("/projects/{projectId}/export/excel", handlers.HandleProjectExportExcel(app))
		se.Router.GET("/projects/{projectId}/export/pdf", handlers.HandleProjectExportPDF(app))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
