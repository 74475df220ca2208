package onshape

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/clarsbyte/onshape-mcp/feature"
)

func TestParseDocumentFilter(t *testing.T) {
	cases := []struct {
		in      string
		want    DocumentFilter
		wantErr bool
	}{
		{in: "", want: FilterAll},
		{in: "all", want: FilterAll},
		{in: "owned", want: FilterOwned},
		{in: "my", want: FilterOwned},
		{in: "Created", want: FilterCreated},
		{in: " shared ", want: FilterShared},
		{in: "mine", wantErr: true},
	}
	for _, tc := range cases {
		got, err := ParseDocumentFilter(tc.in)
		if tc.wantErr {
			if !errors.Is(err, feature.ErrInvalidEnumValue) {
				t.Fatalf("ParseDocumentFilter(%q) error = %v, want ErrInvalidEnumValue", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseDocumentFilter(%q) error = %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseDocumentFilter(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestDocumentsListQueryDefaults(t *testing.T) {
	client := newTestClient(func(r *http.Request) (*http.Response, error) {
		query := r.URL.Query()
		if got := query.Get("filter"); got != "1" {
			t.Fatalf("filter = %q, want 1", got)
		}
		if got := query.Get("sortColumn"); got != "modifiedAt" {
			t.Fatalf("sortColumn = %q, want modifiedAt", got)
		}
		if got := query.Get("sortOrder"); got != "desc" {
			t.Fatalf("sortOrder = %q, want desc", got)
		}
		if got := query.Get("limit"); got != "20" {
			t.Fatalf("limit = %q, want 20", got)
		}
		return jsonResponse(http.StatusOK, `{"items":[
			{"id":"d1","name":"Bracket","modifiedAt":"2026-01-10T12:00:00Z","owner":{"id":"u1","name":"Ada"}},
			{"id":"d2","name":"Gearbox","modifiedAt":"2026-01-09T08:30:00Z","owner":{"id":"u1","name":"Ada"}}
		]}`), nil
	})

	docs, err := NewDocuments(client).List(context.Background(), ListOptions{Filter: FilterOwned})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("List() returned %d documents, want 2", len(docs))
	}
	if docs[0].ID != "d1" || docs[0].Name != "Bracket" {
		t.Fatalf("docs[0] = %+v, want d1/Bracket", docs[0])
	}
	want := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	if !docs[0].ModifiedAt.Equal(want) {
		t.Fatalf("ModifiedAt = %v, want %v", docs[0].ModifiedAt, want)
	}
	if docs[0].Owner.Name != "Ada" {
		t.Fatalf("Owner.Name = %q, want Ada", docs[0].Owner.Name)
	}
}

func TestDocumentsListUnfiltered(t *testing.T) {
	client := newTestClient(func(r *http.Request) (*http.Response, error) {
		if r.URL.Query().Has("filter") {
			t.Fatalf("filter param present for unfiltered listing: %q", r.URL.RawQuery)
		}
		return jsonResponse(http.StatusOK, `{"items":[]}`), nil
	})

	docs, err := NewDocuments(client).List(context.Background(), ListOptions{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(docs) != 0 {
		t.Fatalf("List() returned %d documents, want 0", len(docs))
	}
}

func TestDocumentsSearch(t *testing.T) {
	client := newTestClient(func(r *http.Request) (*http.Response, error) {
		query := r.URL.Query()
		if got := query.Get("q"); got != "bracket" {
			t.Fatalf("q = %q, want bracket", got)
		}
		if got := query.Get("limit"); got != "5" {
			t.Fatalf("limit = %q, want 5", got)
		}
		return jsonResponse(http.StatusOK, `{"items":[{"id":"d1","name":"Bracket"}]}`), nil
	})

	docs, err := NewDocuments(client).Search(context.Background(), "bracket", 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(docs) != 1 || docs[0].ID != "d1" {
		t.Fatalf("Search() = %+v, want one d1 document", docs)
	}
}

func TestDocumentsGetPath(t *testing.T) {
	client := newTestClient(func(r *http.Request) (*http.Response, error) {
		if r.URL.Path != "/api/v6/documents/d1" {
			t.Fatalf("path = %q, want /api/v6/documents/d1", r.URL.Path)
		}
		return jsonResponse(http.StatusOK, `{"id":"d1","name":"Bracket","public":true}`), nil
	})

	doc, err := NewDocuments(client).Get(context.Background(), "d1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if doc.Name != "Bracket" || !doc.Public {
		t.Fatalf("Get() = %+v, want public Bracket", doc)
	}
}

func TestDocumentsElements(t *testing.T) {
	client := newTestClient(func(r *http.Request) (*http.Response, error) {
		if r.URL.Path != "/api/v6/documents/d/d1/w/w1/elements" {
			t.Fatalf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("elementType"); got != ElementTypePartStudio {
			t.Fatalf("elementType = %q, want %q", got, ElementTypePartStudio)
		}
		return jsonResponse(http.StatusOK, `[
			{"id":"e1","name":"Part Studio 1","elementType":"PARTSTUDIO","dataType":"onshape/partstudio"}
		]`), nil
	})

	elements, err := NewDocuments(client).Elements(context.Background(), "d1", "w1", ElementTypePartStudio)
	if err != nil {
		t.Fatalf("Elements() error = %v", err)
	}
	if len(elements) != 1 || elements[0].ElementType != ElementTypePartStudio {
		t.Fatalf("Elements() = %+v, want one part studio", elements)
	}
}

func TestFindPartStudiosFiltersByName(t *testing.T) {
	client := newTestClient(func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `[
			{"id":"e1","name":"Main Body","elementType":"PARTSTUDIO"},
			{"id":"e2","name":"Gear Housing","elementType":"PARTSTUDIO"},
			{"id":"e3","name":"gear blank","elementType":"PARTSTUDIO"}
		]`), nil
	})

	studios, err := NewDocuments(client).FindPartStudios(context.Background(), "d1", "w1", "GEAR")
	if err != nil {
		t.Fatalf("FindPartStudios() error = %v", err)
	}
	if len(studios) != 2 {
		t.Fatalf("FindPartStudios() matched %d studios, want 2", len(studios))
	}
	if studios[0].ID != "e2" || studios[1].ID != "e3" {
		t.Fatalf("FindPartStudios() = %+v, want e2 then e3", studios)
	}
}

func TestDocumentsSummary(t *testing.T) {
	client := newTestClient(func(r *http.Request) (*http.Response, error) {
		switch r.URL.Path {
		case "/api/v6/documents/d1":
			return jsonResponse(http.StatusOK, `{"id":"d1","name":"Bracket"}`), nil
		case "/api/v6/documents/d/d1/workspaces":
			return jsonResponse(http.StatusOK, `[{"id":"w1","name":"Main"},{"id":"w2","name":"Branch"}]`), nil
		case "/api/v6/documents/d/d1/w/w1/elements":
			return jsonResponse(http.StatusOK, `[{"id":"e1","name":"Part Studio 1","elementType":"PARTSTUDIO"}]`), nil
		case "/api/v6/documents/d/d1/w/w2/elements":
			return jsonResponse(http.StatusOK, `[]`), nil
		default:
			t.Fatalf("unexpected path %q", r.URL.Path)
			return nil, nil
		}
	})

	summary, err := NewDocuments(client).Summary(context.Background(), "d1")
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if summary.Document.Name != "Bracket" {
		t.Fatalf("Document.Name = %q, want Bracket", summary.Document.Name)
	}
	if len(summary.Workspaces) != 2 {
		t.Fatalf("workspaces = %d, want 2", len(summary.Workspaces))
	}
	if summary.Workspaces[0].Workspace.ID != "w1" || len(summary.Workspaces[0].Elements) != 1 {
		t.Fatalf("workspace w1 detail = %+v, want one element", summary.Workspaces[0])
	}
	if len(summary.Workspaces[1].Elements) != 0 {
		t.Fatalf("workspace w2 has %d elements, want 0", len(summary.Workspaces[1].Elements))
	}
}
