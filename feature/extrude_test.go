package feature

import (
	"errors"
	"strings"
	"testing"
)

func TestParseOperation(t *testing.T) {
	for in, want := range map[string]Operation{
		"NEW": OpNew, "add": OpAdd, "Remove": OpRemove, "INTERSECT": OpIntersect,
	} {
		got, err := ParseOperation(in)
		if err != nil {
			t.Errorf("ParseOperation(%q) error = %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseOperation(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := ParseOperation("UNION"); !errors.Is(err, ErrInvalidEnumValue) {
		t.Errorf("ParseOperation(UNION) error = %v, want ErrInvalidEnumValue", err)
	}
}

func TestExtrude_BuildValidation(t *testing.T) {
	base := Extrude{Name: "Boss", Sketch: SketchID("FS1"), Depth: Inches(1), Operation: OpNew}

	e := base
	e.Name = ""
	if _, err := e.Build(); !errors.Is(err, ErrIncompleteDescriptor) {
		t.Errorf("Build() without name error = %v, want ErrIncompleteDescriptor", err)
	}

	e = base
	e.Sketch = SketchRef{}
	if _, err := e.Build(); !errors.Is(err, ErrIncompleteDescriptor) {
		t.Errorf("Build() without sketch error = %v, want ErrIncompleteDescriptor", err)
	}

	e = base
	e.Depth = Quantity{}
	if _, err := e.Build(); !errors.Is(err, ErrIncompleteDescriptor) {
		t.Errorf("Build() without depth error = %v, want ErrIncompleteDescriptor", err)
	}

	e = base
	e.Operation = "UNION"
	if _, err := e.Build(); !errors.Is(err, ErrInvalidEnumValue) {
		t.Errorf("Build() with bad operation error = %v, want ErrInvalidEnumValue", err)
	}
}

func TestExtrude_BuildWireShape(t *testing.T) {
	e := Extrude{Name: "Cut", Sketch: SketchID("FS9"), Depth: Inches(0.7874), Operation: OpRemove}
	def, err := e.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if def.FeatureType() != "extrude" {
		t.Errorf("FeatureType() = %q, want extrude", def.FeatureType())
	}
	body := featureBody(t, def)

	entities := paramByID(t, body, "entities")
	queries := entities["queries"].([]any)
	q := queries[0].(map[string]any)
	if q["btType"] != "BTMIndividualSketchRegionQuery-140" {
		t.Errorf("query btType = %v", q["btType"])
	}
	if _, present := q["queryStatement"]; !present || q["queryStatement"] != nil {
		t.Errorf("queryStatement = %v, want explicit null", q["queryStatement"])
	}
	if q["filterInnerLoops"] != true {
		t.Errorf("filterInnerLoops = %v, want true", q["filterInnerLoops"])
	}
	wantQuery := `query = qSketchRegion(id + "FS9", true);`
	if q["queryString"] != wantQuery {
		t.Errorf("queryString = %q, want %q", q["queryString"], wantQuery)
	}
	if q["featureId"] != "FS9" {
		t.Errorf("featureId = %v, want FS9", q["featureId"])
	}

	op := paramByID(t, body, "operationType")
	if op["enumName"] != "NewBodyOperationType" || op["value"] != "REMOVE" {
		t.Errorf("operationType = %v/%v, want NewBodyOperationType/REMOVE", op["enumName"], op["value"])
	}

	depth := paramByID(t, body, "depth")
	if depth["expression"] != "0.7874 in" {
		t.Errorf("depth expression = %v, want 0.7874 in", depth["expression"])
	}

	opposite := paramByID(t, body, "oppositeDirection")
	if opposite["value"] != false {
		t.Errorf("oppositeDirection = %v, want false", opposite["value"])
	}
}

func TestExtrude_PendingSketchRendersPlaceholder(t *testing.T) {
	e := Extrude{Name: "Step 1", Sketch: PendingSketch(0), Depth: Inches(1), Operation: OpRemove}
	def, err := e.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	payload := string(mustMarshal(t, def))
	if !strings.Contains(payload, "{SKETCH_0}") {
		t.Errorf("payload missing placeholder token: %s", payload)
	}

	// Rebinding the reference removes every trace of the token.
	e.Sketch = SketchID("FSX")
	def, err = e.Build()
	if err != nil {
		t.Fatalf("Build() after rebind error = %v", err)
	}
	payload = string(mustMarshal(t, def))
	if strings.Contains(payload, "{SKETCH_") {
		t.Errorf("payload still carries a placeholder after rebind: %s", payload)
	}
	if !strings.Contains(payload, "FSX") {
		t.Errorf("payload missing resolved sketch id: %s", payload)
	}
}

func TestSketchRef_States(t *testing.T) {
	pending := PendingSketch(2)
	if pending.Resolved() {
		t.Error("pending ref reports Resolved")
	}
	if pending.Step() != 2 {
		t.Errorf("Step() = %d, want 2", pending.Step())
	}
	if pending.FeatureID() != "" {
		t.Errorf("FeatureID() = %q, want empty while pending", pending.FeatureID())
	}

	resolved := SketchID("FS1")
	if !resolved.Resolved() {
		t.Error("resolved ref reports not Resolved")
	}
	if resolved.FeatureID() != "FS1" {
		t.Errorf("FeatureID() = %q, want FS1", resolved.FeatureID())
	}
}
