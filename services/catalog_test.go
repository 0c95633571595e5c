package services

import (
	"strings"
	"testing"
)

func TestLabourByKey(t *testing.T) {
	r := LabourByKey("mason")
	if r.Name != "Mason" || r.DailyRate <= 0 {
		t.Errorf("unexpected mason resource: %+v", r)
	}

	defer func() {
		if recover() == nil {
			t.Error("LabourByKey with unknown key should panic")
		}
	}()
	LabourByKey("astronaut")
}

func TestPlantByKey(t *testing.T) {
	r := PlantByKey("concrete_mixer")
	if r.Name == "" || r.DailyRate <= 0 {
		t.Errorf("unexpected mixer resource: %+v", r)
	}

	defer func() {
		if recover() == nil {
			t.Error("PlantByKey with unknown key should panic")
		}
	}()
	PlantByKey("teleporter")
}

func TestCatalogShape(t *testing.T) {
	templates := Templates()
	if len(templates) == 0 {
		t.Fatal("catalog has no templates")
	}

	for _, tpl := range templates {
		if tpl.Name == "" {
			t.Error("template without a name")
		}
		if len(tpl.Keywords) == 0 {
			t.Errorf("template %q has no keywords", tpl.Name)
		}
		for _, kw := range tpl.Keywords {
			if kw != strings.ToLower(kw) {
				t.Errorf("template %q keyword %q is not lowercase", tpl.Name, kw)
			}
		}
		for _, row := range append(append([]TemplateRow{}, tpl.Labour...), tpl.Plant...) {
			if row.DailyOutput <= 0 {
				t.Errorf("template %q labour/plant row %q has no daily output", tpl.Name, row.Name)
			}
		}
	}

	// The fallback seed must never be blank.
	if len(genericTemplate.Materials) == 0 || len(genericTemplate.Labour) == 0 || len(genericTemplate.Plant) == 0 {
		t.Error("generic fallback template has an empty category")
	}
}

func TestStructureDefaults(t *testing.T) {
	for _, name := range StructureTypeOptions() {
		seed := ResolveTemplate("", name)
		if seed.Match != MatchStructure {
			t.Errorf("structure type %q did not resolve to its default", name)
		}
	}
}
