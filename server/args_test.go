package server

import (
	"strings"
	"testing"

	"github.com/clarsbyte/onshape-mcp/feature"
)

func TestStudioRefRequiresTriple(t *testing.T) {
	_, err := studioRef(map[string]any{
		"documentId": "d1",
		"elementId":  "e1",
	})
	if err == nil {
		t.Fatalf("expected error for missing workspaceId")
	}
	if !strings.Contains(err.Error(), `"workspaceId"`) {
		t.Fatalf("error = %v, want workspaceId named", err)
	}

	ref, err := studioRef(map[string]any{
		"documentId":  "d1",
		"workspaceId": "w1",
		"elementId":   "e1",
	})
	if err != nil {
		t.Fatalf("studioRef: %v", err)
	}
	if ref.DocumentID != "d1" || ref.WorkspaceID != "w1" || ref.ElementID != "e1" {
		t.Fatalf("ref = %+v", ref)
	}
}

func TestRequirePoint(t *testing.T) {
	p, err := requirePoint(map[string]any{"center": []any{1.5, -2}}, "center")
	if err != nil {
		t.Fatalf("requirePoint: %v", err)
	}
	if p.X != 1.5 || p.Y != -2 {
		t.Fatalf("point = %+v, want (1.5, -2)", p)
	}

	for _, raw := range []any{[]any{1.5}, []any{"a", "b"}, "1,2", nil} {
		if _, err := requirePoint(map[string]any{"center": raw}, "center"); err == nil {
			t.Fatalf("requirePoint(%v): expected error", raw)
		}
	}
}

func TestRequireFloatSliceCoercesStrings(t *testing.T) {
	got, err := requireFloatSlice(map[string]any{"radii": []any{"0.5", 0.25, 1}}, "radii")
	if err != nil {
		t.Fatalf("requireFloatSlice: %v", err)
	}
	want := []float64{0.5, 0.25, 1}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if _, err := requireFloatSlice(map[string]any{"radii": []any{"wide"}}, "radii"); err == nil {
		t.Fatalf("expected error for non-numeric entry")
	}
}

func TestRequireStringSliceRejectsEmpty(t *testing.T) {
	if _, err := requireStringSlice(map[string]any{"edgeIds": []any{}}, "edgeIds"); err == nil {
		t.Fatalf("expected error for empty slice")
	}
	got, err := requireStringSlice(map[string]any{"edgeIds": []any{"JGB", "JGC"}}, "edgeIds")
	if err != nil {
		t.Fatalf("requireStringSlice: %v", err)
	}
	if len(got) != 2 || got[0] != "JGB" {
		t.Fatalf("got = %v", got)
	}
}

func TestScalarArgFallbacks(t *testing.T) {
	args := map[string]any{
		"limit": "15",
		"depth": float64(2),
		"flag":  true,
		"name":  "",
	}
	if got := intArg(args, "limit", 20); got != 15 {
		t.Fatalf("intArg = %d, want 15", got)
	}
	if got := intArg(args, "missing", 20); got != 20 {
		t.Fatalf("intArg fallback = %d, want 20", got)
	}
	if got := floatArg(args, "depth", 0.5); got != 2 {
		t.Fatalf("floatArg = %v, want 2", got)
	}
	if !boolArg(args, "flag") || boolArg(args, "missing") {
		t.Fatalf("boolArg mismatch")
	}
	if got := stringArg(args, "name", "Sketch"); got != "Sketch" {
		t.Fatalf("stringArg empty = %q, want fallback", got)
	}
}

func TestInchesBindsVariable(t *testing.T) {
	q := inches(0.5, map[string]any{"variableDepth": "plate"}, "variableDepth")
	if !q.IsVariable() || q.VariableName() != "plate" {
		t.Fatalf("quantity = %+v, want variable plate", q)
	}
	if q.Value() != 0.5 {
		t.Fatalf("Value = %v, want 0.5", q.Value())
	}

	plain := inches(0.5, map[string]any{}, "variableDepth")
	if plain.IsVariable() {
		t.Fatalf("quantity bound without variable argument")
	}
	if plain.Unit() != feature.UnitInch {
		t.Fatalf("Unit = %q, want inch", plain.Unit())
	}
}
