package onshape

import (
	"context"
	"net/http"
	"testing"

	json "github.com/goccy/go-json"
)

func TestVariablesListFlattensTables(t *testing.T) {
	client := newTestClient(func(r *http.Request) (*http.Response, error) {
		if r.URL.Path != "/api/v6/variables/d/d1/w/w1/e/e1/variables" {
			t.Fatalf("path = %q", r.URL.Path)
		}
		return jsonResponse(http.StatusOK, `[
			{"variables":[
				{"name":"boltDia","type":"LENGTH","expression":"0.25 in","description":"bolt diameter"},
				{"name":"wall","type":"LENGTH","expression":"0.125 in"}
			]},
			{"variables":[
				{"name":"teeth","type":"NUMBER","expression":"24"}
			]}
		]`), nil
	})

	variables, err := NewVariables(client).List(context.Background(), testRef)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(variables) != 3 {
		t.Fatalf("List() returned %d variables, want 3", len(variables))
	}
	if variables[0].Name != "boltDia" || variables[0].Description != "bolt diameter" {
		t.Fatalf("variables[0] = %+v, want boltDia with description", variables[0])
	}
	if variables[2].Type != "NUMBER" {
		t.Fatalf("variables[2].Type = %q, want NUMBER", variables[2].Type)
	}
}

func TestVariablesSetDefaultsType(t *testing.T) {
	client := newTestClient(func(r *http.Request) (*http.Response, error) {
		if r.Method != http.MethodPost {
			t.Fatalf("method = %s, want POST", r.Method)
		}
		var payload []Variable
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		if len(payload) != 1 {
			t.Fatalf("payload carries %d variables, want 1", len(payload))
		}
		if payload[0].Type != VariableTypeLength {
			t.Fatalf("Type = %q, want %q", payload[0].Type, VariableTypeLength)
		}
		if payload[0].Expression != "0.75 in" {
			t.Fatalf("Expression = %q, want 0.75 in", payload[0].Expression)
		}
		return jsonResponse(http.StatusOK, `[]`), nil
	})

	err := NewVariables(client).Set(context.Background(), testRef, Variable{
		Name:       "holeDepth",
		Expression: "0.75 in",
	})
	if err != nil {
		t.Fatalf("Set() error = %v", err)
	}
}

func TestVariablesSetKeepsExplicitType(t *testing.T) {
	client := newTestClient(func(r *http.Request) (*http.Response, error) {
		var payload []Variable
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		if payload[0].Type != "NUMBER" {
			t.Fatalf("Type = %q, want NUMBER", payload[0].Type)
		}
		return jsonResponse(http.StatusOK, `[]`), nil
	})

	err := NewVariables(client).Set(context.Background(), testRef, Variable{
		Name:       "teeth",
		Type:       "NUMBER",
		Expression: "24",
	})
	if err != nil {
		t.Fatalf("Set() error = %v", err)
	}
}
