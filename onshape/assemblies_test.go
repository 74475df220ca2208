package onshape

import (
	"context"
	"net/http"
	"testing"
)

func TestAssemblyDefinition(t *testing.T) {
	client := newTestClient(func(r *http.Request) (*http.Response, error) {
		if r.URL.Path != "/api/v6/assemblies/d/d1/w/w1/e/e1" {
			t.Fatalf("path = %q", r.URL.Path)
		}
		return jsonResponse(http.StatusOK, `{"rootAssembly":{"instances":[
			{"id":"i1","name":"Bracket <1>","type":"Part","partId":"P1","suppressed":false},
			{"id":"i2","name":"Sub <1>","type":"Assembly","suppressed":true}
		]}}`), nil
	})

	assembly, err := NewAssemblies(client).Definition(context.Background(), testRef)
	if err != nil {
		t.Fatalf("Definition() error = %v", err)
	}
	if len(assembly.Instances) != 2 {
		t.Fatalf("Definition() returned %d instances, want 2", len(assembly.Instances))
	}
	if assembly.Instances[0].PartID != "P1" || assembly.Instances[0].Type != "Part" {
		t.Fatalf("instances[0] = %+v, want Part P1", assembly.Instances[0])
	}
	if !assembly.Instances[1].Suppressed {
		t.Fatalf("instances[1].Suppressed = false, want true")
	}
}
