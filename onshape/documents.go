package onshape

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/clarsbyte/onshape-mcp/feature"
)

// DocumentFilter narrows a document listing to one ownership class.
type DocumentFilter int

const (
	FilterAll DocumentFilter = iota
	FilterOwned
	FilterCreated
	FilterShared
)

// ParseDocumentFilter maps a user-facing filter name onto a DocumentFilter.
func ParseDocumentFilter(s string) (DocumentFilter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return FilterAll, nil
	case "owned", "my":
		return FilterOwned, nil
	case "created":
		return FilterCreated, nil
	case "shared":
		return FilterShared, nil
	default:
		return FilterAll, fmt.Errorf("%w: document filter %q, want all, owned, created or shared", feature.ErrInvalidEnumValue, s)
	}
}

func (f DocumentFilter) String() string {
	switch f {
	case FilterOwned:
		return "owned"
	case FilterCreated:
		return "created"
	case FilterShared:
		return "shared"
	default:
		return "all"
	}
}

// param returns the Onshape filter code, or ok=false when the listing is
// unfiltered.
func (f DocumentFilter) param() (string, bool) {
	switch f {
	case FilterOwned:
		return "1", true
	case FilterCreated:
		return "4", true
	case FilterShared:
		return "5", true
	default:
		return "", false
	}
}

// Owner identifies the account a document belongs to.
type Owner struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Document is one Onshape document as returned by the documents API.
type Document struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	CreatedAt        time.Time  `json:"createdAt"`
	ModifiedAt       time.Time  `json:"modifiedAt"`
	Description      string     `json:"description"`
	Public           bool       `json:"public"`
	Owner            Owner      `json:"owner"`
	DefaultWorkspace *Workspace `json:"defaultWorkspace"`
}

// Workspace is one editable branch of a document.
type Workspace struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Element is one tab inside a document workspace.
type Element struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ElementType string `json:"elementType"`
	DataType    string `json:"dataType"`
}

// ElementTypePartStudio selects part studio tabs when listing elements.
const ElementTypePartStudio = "PARTSTUDIO"

// ListOptions shape a document listing. The zero value lists everything,
// most recently modified first.
type ListOptions struct {
	Filter    DocumentFilter
	Query     string
	SortBy    string // createdAt, modifiedAt or name; default modifiedAt
	SortOrder string // asc or desc; default desc
	Limit     int    // default 20
}

// WorkspaceDetail pairs a workspace with its elements for a document
// summary.
type WorkspaceDetail struct {
	Workspace Workspace
	Elements  []Element
}

// DocumentSummary is a document together with every workspace and the
// elements each one contains.
type DocumentSummary struct {
	Document   Document
	Workspaces []WorkspaceDetail
}

// Documents binds the document, workspace and element endpoints.
type Documents struct {
	client *Client
}

// NewDocuments builds a Documents binding on an authenticated client.
func NewDocuments(c *Client) *Documents {
	return &Documents{client: c}
}

// List returns documents visible to the key pair, narrowed by opts.
func (d *Documents) List(ctx context.Context, opts ListOptions) ([]Document, error) {
	query := url.Values{}
	if code, ok := opts.Filter.param(); ok {
		query.Set("filter", code)
	}
	if opts.Query != "" {
		query.Set("q", opts.Query)
	}
	sortBy := opts.SortBy
	if sortBy == "" {
		sortBy = "modifiedAt"
	}
	sortOrder := opts.SortOrder
	if sortOrder == "" {
		sortOrder = "desc"
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = 20
	}
	query.Set("sortColumn", sortBy)
	query.Set("sortOrder", sortOrder)
	query.Set("limit", strconv.Itoa(limit))

	var resp struct {
		Items []Document `json:"items"`
	}
	if err := d.client.Get(ctx, "/documents", query, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// Search lists documents whose names match the query string.
func (d *Documents) Search(ctx context.Context, query string, limit int) ([]Document, error) {
	return d.List(ctx, ListOptions{Query: query, Limit: limit})
}

// Get fetches one document by ID.
func (d *Documents) Get(ctx context.Context, documentID string) (Document, error) {
	var doc Document
	err := d.client.Get(ctx, "/documents/"+url.PathEscape(documentID), nil, &doc)
	return doc, err
}

// Workspaces lists the branches of a document.
func (d *Documents) Workspaces(ctx context.Context, documentID string) ([]Workspace, error) {
	var workspaces []Workspace
	path := "/documents/d/" + url.PathEscape(documentID) + "/workspaces"
	if err := d.client.Get(ctx, path, nil, &workspaces); err != nil {
		return nil, err
	}
	return workspaces, nil
}

// Elements lists the tabs in a workspace. elementType narrows the listing
// when non-empty, for example ElementTypePartStudio.
func (d *Documents) Elements(ctx context.Context, documentID, workspaceID, elementType string) ([]Element, error) {
	var query url.Values
	if elementType != "" {
		query = url.Values{"elementType": {elementType}}
	}
	path := fmt.Sprintf("/documents/d/%s/w/%s/elements",
		url.PathEscape(documentID), url.PathEscape(workspaceID))
	var elements []Element
	if err := d.client.Get(ctx, path, query, &elements); err != nil {
		return nil, err
	}
	return elements, nil
}

// FindPartStudios lists the part studios in a workspace whose names contain
// namePattern, case-insensitively. An empty pattern matches every studio.
func (d *Documents) FindPartStudios(ctx context.Context, documentID, workspaceID, namePattern string) ([]Element, error) {
	elements, err := d.Elements(ctx, documentID, workspaceID, ElementTypePartStudio)
	if err != nil {
		return nil, err
	}
	if namePattern == "" {
		return elements, nil
	}
	pattern := strings.ToLower(namePattern)
	matched := make([]Element, 0, len(elements))
	for _, el := range elements {
		if strings.Contains(strings.ToLower(el.Name), pattern) {
			matched = append(matched, el)
		}
	}
	return matched, nil
}

// Summary assembles a document's workspaces and their elements into one
// structure, walking each workspace in turn.
func (d *Documents) Summary(ctx context.Context, documentID string) (DocumentSummary, error) {
	doc, err := d.Get(ctx, documentID)
	if err != nil {
		return DocumentSummary{}, err
	}
	workspaces, err := d.Workspaces(ctx, documentID)
	if err != nil {
		return DocumentSummary{}, err
	}
	summary := DocumentSummary{Document: doc, Workspaces: make([]WorkspaceDetail, 0, len(workspaces))}
	for _, ws := range workspaces {
		elements, err := d.Elements(ctx, documentID, ws.ID, "")
		if err != nil {
			return DocumentSummary{}, err
		}
		summary.Workspaces = append(summary.Workspaces, WorkspaceDetail{Workspace: ws, Elements: elements})
	}
	return summary, nil
}
