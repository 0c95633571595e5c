package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/Dokboi01/BOQ-pro-sub000/services"
)

// ItemCreateRequest is the expected JSON body for adding a BOQ item.
type ItemCreateRequest struct {
	Description   string  `json:"description"`
	Unit          string  `json:"unit"`
	Qty           float64 `json:"qty"`
	CustomRate    float64 `json:"customRate"`
	BenchmarkRate float64 `json:"benchmarkRate"`
	UseBenchmark  bool    `json:"useBenchmark"`
	SortOrder     int     `json:"sortOrder"`
}

// HandleItemAdd appends a line item to a section and stores its total as
// qty x effective rate.
func HandleItemAdd(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		sectionID := e.Request.PathValue("sectionId")
		if _, err := app.FindRecordById("sections", sectionID); err != nil {
			return e.String(http.StatusNotFound, "Section not found")
		}

		var req ItemCreateRequest
		if err := e.BindBody(&req); err != nil {
			return e.String(http.StatusBadRequest, "Invalid request body")
		}
		req.Description = strings.TrimSpace(req.Description)
		if req.Description == "" {
			return e.String(http.StatusBadRequest, "Item description is required")
		}
		if req.Unit == "" {
			req.Unit = "Item"
		}
		if req.SortOrder <= 0 {
			existing, _ := app.FindRecordsByFilter(
				"boq_items", "section = {:section}", "", 0, 0,
				map[string]any{"section": sectionID},
			)
			req.SortOrder = len(existing) + 1
		}

		col, err := app.FindCollectionByNameOrId("boq_items")
		if err != nil {
			log.Printf("item_add: could not find boq_items collection: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		region := projectRegion(app, projectID)

		record := core.NewRecord(col)
		record.Set("section", sectionID)
		record.Set("sort_order", req.SortOrder)
		record.Set("description", req.Description)
		record.Set("unit", req.Unit)
		record.Set("qty", req.Qty)
		record.Set("custom_rate", req.CustomRate)
		record.Set("benchmark_rate", req.BenchmarkRate)
		record.Set("use_benchmark", req.UseBenchmark)
		writeItemTotal(record, region)

		if err := app.Save(record); err != nil {
			log.Printf("item_add: could not save item: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		return e.JSON(http.StatusOK, map[string]any{
			"id":      record.Id,
			"total":   record.GetFloat("total"),
			"outlier": !req.UseBenchmark && services.IsOutlier(req.CustomRate, req.BenchmarkRate),
		})
	}
}

// ItemPatchRequest carries optional field edits; nil pointers leave fields
// unchanged.
type ItemPatchRequest struct {
	Description   *string  `json:"description"`
	Unit          *string  `json:"unit"`
	Qty           *float64 `json:"qty"`
	CustomRate    *float64 `json:"customRate"`
	BenchmarkRate *float64 `json:"benchmarkRate"`
	UseBenchmark  *bool    `json:"useBenchmark"`
	CompletedQty  *float64 `json:"completedQty"`
	IsVariation   *bool    `json:"isVariationOrder"`
}

// HandleItemPatch edits individual item fields. Any mutation of quantity,
// rate or the benchmark flag rewrites the stored total before saving, so a
// saved item is always consistent. The response carries the advisory outlier
// flag; it never blocks the edit.
func HandleItemPatch(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		itemID := e.Request.PathValue("itemId")
		record, err := app.FindRecordById("boq_items", itemID)
		if err != nil {
			return e.String(http.StatusNotFound, "Item not found")
		}

		var req ItemPatchRequest
		if err := e.BindBody(&req); err != nil {
			return e.String(http.StatusBadRequest, "Invalid request body")
		}

		if req.Description != nil {
			record.Set("description", strings.TrimSpace(*req.Description))
		}
		if req.Unit != nil {
			record.Set("unit", *req.Unit)
		}
		if req.Qty != nil {
			record.Set("qty", *req.Qty)
		}
		if req.CustomRate != nil {
			record.Set("custom_rate", *req.CustomRate)
		}
		if req.BenchmarkRate != nil {
			record.Set("benchmark_rate", *req.BenchmarkRate)
		}
		if req.UseBenchmark != nil {
			record.Set("use_benchmark", *req.UseBenchmark)
		}
		if req.CompletedQty != nil {
			record.Set("completed_qty", *req.CompletedQty)
		}
		if req.IsVariation != nil {
			record.Set("is_variation_order", *req.IsVariation)
		}

		region := projectRegion(app, projectID)
		writeItemTotal(record, region)

		if err := app.Save(record); err != nil {
			log.Printf("item_patch: could not save item %s: %v", itemID, err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		return e.JSON(http.StatusOK, map[string]any{
			"id":    record.Id,
			"total": record.GetFloat("total"),
			"effectiveRate": services.EffectiveRate(
				record.GetFloat("custom_rate"),
				record.GetFloat("benchmark_rate"),
				record.GetBool("use_benchmark"),
				region,
			),
			"outlier": !record.GetBool("use_benchmark") &&
				services.IsOutlier(record.GetFloat("custom_rate"), record.GetFloat("benchmark_rate")),
		})
	}
}

// HandleItemDelete removes a single line item.
func HandleItemDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		itemID := e.Request.PathValue("itemId")
		record, err := app.FindRecordById("boq_items", itemID)
		if err != nil {
			return e.String(http.StatusNotFound, "Item not found")
		}
		if err := app.Delete(record); err != nil {
			log.Printf("item_delete: could not delete item %s: %v", itemID, err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}
		return e.JSON(http.StatusOK, map[string]any{"deleted": itemID})
	}
}
