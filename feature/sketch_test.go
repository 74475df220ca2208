package feature

import (
	"errors"
	"testing"
)

func TestParsePlane(t *testing.T) {
	tests := []struct {
		in      string
		want    Plane
		wantErr bool
	}{
		{"Front", PlaneFront, false},
		{"top", PlaneTop, false},
		{"RIGHT", PlaneRight, false},
		{" Front ", PlaneFront, false},
		{"Back", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParsePlane(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidEnumValue) {
				t.Errorf("ParsePlane(%q) error = %v, want ErrInvalidEnumValue", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParsePlane(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePlane(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSketch_BuildRequiresNameAndPlaneID(t *testing.T) {
	s := &Sketch{Plane: PlaneTop, PlaneID: "JDC"}
	if _, err := s.Build(); !errors.Is(err, ErrIncompleteDescriptor) {
		t.Errorf("Build() without name error = %v, want ErrIncompleteDescriptor", err)
	}

	s = &Sketch{Name: "Base", Plane: PlaneTop}
	if _, err := s.Build(); !errors.Is(err, ErrIncompleteDescriptor) {
		t.Errorf("Build() without plane id error = %v, want ErrIncompleteDescriptor", err)
	}
}

func TestSketch_BuildWireShape(t *testing.T) {
	s := &Sketch{Name: "Base", Plane: PlaneTop, PlaneID: "JDC"}
	if err := s.Entities.AddCircle(Point{}, 0.5, false); err != nil {
		t.Fatalf("AddCircle: %v", err)
	}

	def, err := s.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if def.FeatureType() != "newSketch" {
		t.Errorf("FeatureType() = %q, want newSketch", def.FeatureType())
	}

	body := featureBody(t, def)
	if body["btType"] != "BTMSketch-151" {
		t.Errorf("feature.btType = %v, want BTMSketch-151", body["btType"])
	}

	plane := paramByID(t, body, "sketchPlane")
	queries, ok := plane["queries"].([]any)
	if !ok || len(queries) != 1 {
		t.Fatalf("sketchPlane queries = %v, want one entry", plane["queries"])
	}
	q := queries[0].(map[string]any)
	if q["btType"] != "BTMIndividualQuery-138" {
		t.Errorf("query btType = %v, want BTMIndividualQuery-138", q["btType"])
	}
	ids, ok := q["deterministicIds"].([]any)
	if !ok || len(ids) != 1 || ids[0] != "JDC" {
		t.Errorf("deterministicIds = %v, want [JDC]", q["deterministicIds"])
	}

	entities, ok := body["entities"].([]any)
	if !ok || len(entities) != 1 {
		t.Fatalf("entities = %v, want one record", body["entities"])
	}
}

func TestSketch_BuildAllowsEmptyEntitySet(t *testing.T) {
	s := &Sketch{Name: "Empty", Plane: PlaneFront, PlaneID: "JCC"}
	def, err := s.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	body := featureBody(t, def)
	if _, ok := body["entities"]; ok {
		t.Error("entities should be omitted when the set is empty")
	}
	if _, ok := body["constraints"]; ok {
		t.Error("constraints should be omitted when the set is empty")
	}
}
