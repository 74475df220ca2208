package feature

import (
	"errors"
	"testing"
)

func TestParseFilletKind(t *testing.T) {
	for in, want := range map[string]FilletKind{
		"EDGE": FilletEdge, "face": FilletFace, "Full_Round": FilletFullRound,
	} {
		got, err := ParseFilletKind(in)
		if err != nil {
			t.Errorf("ParseFilletKind(%q) error = %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseFilletKind(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := ParseFilletKind("CHAMFER"); !errors.Is(err, ErrInvalidEnumValue) {
		t.Errorf("ParseFilletKind(CHAMFER) error = %v, want ErrInvalidEnumValue", err)
	}
}

func TestFillet_BuildRequiresEdges(t *testing.T) {
	f := Fillet{Name: "Edge break", Radius: Inches(0.1), Kind: FilletEdge}
	if _, err := f.Build(); !errors.Is(err, ErrIncompleteDescriptor) {
		t.Fatalf("Build() without edges error = %v, want ErrIncompleteDescriptor", err)
	}

	f.EdgeIDs = []string{"JGD", ""}
	if _, err := f.Build(); !errors.Is(err, ErrIncompleteDescriptor) {
		t.Fatalf("Build() with empty edge id error = %v, want ErrIncompleteDescriptor", err)
	}
}

func TestFillet_BuildWireShape(t *testing.T) {
	f := Fillet{
		Name:    "Rim",
		EdgeIDs: []string{"JGD", "JGH"},
		Radius:  Inches(0.125),
		Kind:    FilletFullRound,
	}
	def, err := f.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if def.FeatureType() != "fillet" {
		t.Errorf("FeatureType() = %q, want fillet", def.FeatureType())
	}
	body := featureBody(t, def)

	entities := paramByID(t, body, "entities")
	q := entities["queries"].([]any)[0].(map[string]any)
	ids, ok := q["deterministicIds"].([]any)
	if !ok || len(ids) != 2 || ids[0] != "JGD" || ids[1] != "JGH" {
		t.Errorf("deterministicIds = %v, want [JGD JGH]", q["deterministicIds"])
	}

	kind := paramByID(t, body, "filletType")
	if kind["enumName"] != "FilletType" || kind["value"] != "FULL_ROUND" {
		t.Errorf("filletType = %v/%v, want FilletType/FULL_ROUND", kind["enumName"], kind["value"])
	}
	if kind["namespace"] != "" {
		t.Errorf("namespace = %v, want empty", kind["namespace"])
	}

	radius := paramByID(t, body, "radius")
	if radius["expression"] != "0.125 in" {
		t.Errorf("radius expression = %v, want 0.125 in", radius["expression"])
	}
}
