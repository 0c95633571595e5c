package handlers

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Dokboi01/BOQ-pro-sub000/testhelpers"
)

func TestHandleProjectCreate_Success(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleProjectCreate(app)

	body := strings.NewReader(`{"name":"Ruiru Godown","region":"Nairobi"}`)
	req := httptest.NewRequest(http.MethodPost, "/projects", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		ID               string  `json:"id"`
		Region           string  `json:"region"`
		RegionalModifier float64 `json:"regionalModifier"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response JSON: %v", err)
	}
	if resp.ID == "" {
		t.Error("expected a record id")
	}
	if math.Abs(resp.RegionalModifier-1.15) > 0.001 {
		t.Errorf("Nairobi modifier = %v, want 1.15", resp.RegionalModifier)
	}

	if _, err := app.FindRecordById("projects", resp.ID); err != nil {
		t.Errorf("project record not persisted: %v", err)
	}
}

func TestHandleProjectCreate_DefaultsRegion(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleProjectCreate(app)

	req := httptest.NewRequest(http.MethodPost, "/projects", strings.NewReader(`{"name":"No Region"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp struct {
		Region string `json:"region"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Region != "National Average" {
		t.Errorf("region = %q, want National Average", resp.Region)
	}
}

func TestHandleProjectCreate_BlankName(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleProjectCreate(app)

	req := httptest.NewRequest(http.MethodPost, "/projects", strings.NewReader(`{"name":"  "}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandleProjectView_TotalsRecomputed(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "View Project", "Nairobi")
	section := testhelpers.CreateTestSection(t, app, proj.Id, "Substructure", 1)
	item := testhelpers.CreateTestBOQItem(t, app, section.Id, "Excavation", 10, 500)

	// Sabotage the stored total; the view must recompute, not trust it.
	item.Set("total", 999999)
	if err := app.Save(item); err != nil {
		t.Fatalf("save: %v", err)
	}

	handler := HandleProjectView(app)
	req := httptest.NewRequest(http.MethodGet, "/projects/"+proj.Id, nil)
	req.SetPathValue("projectId", proj.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		GrandTotal float64 `json:"grandTotal"`
		Sections   []struct {
			Subtotal float64 `json:"subtotal"`
			Items    []struct {
				Total float64 `json:"total"`
			} `json:"items"`
		} `json:"sections"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response JSON: %v", err)
	}

	// 10 x 500, custom rate so no regional modifier applies
	want := 5000.0
	if len(resp.Sections) != 1 || len(resp.Sections[0].Items) != 1 {
		t.Fatalf("unexpected shape: %+v", resp)
	}
	if math.Abs(resp.Sections[0].Items[0].Total-want) > 0.001 {
		t.Errorf("item total = %v, want %v", resp.Sections[0].Items[0].Total, want)
	}
	if math.Abs(resp.GrandTotal-want) > 0.001 {
		t.Errorf("grand total = %v, want %v", resp.GrandTotal, want)
	}
}

func TestHandleProjectView_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleProjectView(app)
	req := httptest.NewRequest(http.MethodGet, "/projects/nonexistent", nil)
	req.SetPathValue("projectId", "nonexistent")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandleProjectList_GrandTotals(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "List Project", "National Average")
	section := testhelpers.CreateTestSection(t, app, proj.Id, "Works", 1)
	testhelpers.CreateTestBOQItem(t, app, section.Id, "Item A", 4, 250)
	testhelpers.CreateTestBOQItem(t, app, section.Id, "Item B", 2, 100)

	handler := HandleProjectList(app)
	req := httptest.NewRequest(http.MethodGet, "/projects", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp []struct {
		Name       string  `json:"name"`
		GrandTotal float64 `json:"grandTotal"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response JSON: %v", err)
	}
	if len(resp) != 1 {
		t.Fatalf("expected 1 project, got %d", len(resp))
	}
	if math.Abs(resp[0].GrandTotal-1200) > 0.001 {
		t.Errorf("grand total = %v, want 1200", resp[0].GrandTotal)
	}
}

func TestHandleProjectDelete_Cascades(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Doomed", "Nakuru")
	section := testhelpers.CreateTestSection(t, app, proj.Id, "Doomed Section", 1)
	item := testhelpers.CreateTestBOQItem(t, app, section.Id, "Doomed Item", 1, 1)

	handler := HandleProjectDelete(app)
	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/projects/%s", proj.Id), nil)
	req.SetPathValue("projectId", proj.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	if _, err := app.FindRecordById("projects", proj.Id); err == nil {
		t.Error("project should be deleted")
	}
	if _, err := app.FindRecordById("sections", section.Id); err == nil {
		t.Error("section should cascade")
	}
	if _, err := app.FindRecordById("boq_items", item.Id); err == nil {
		t.Error("item should cascade")
	}
}
