package server

import (
	"fmt"
	"strings"
	"time"

	"github.com/clarsbyte/onshape-mcp/onshape"
)

// The read-side tools answer with markdown the model can quote directly.
// Builders here keep the handler bodies down to fetch, render, return.

func renderTime(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.Format(time.RFC3339)
}

func renderDocumentItem(b *strings.Builder, doc onshape.Document) {
	fmt.Fprintf(b, "**%s**\n", doc.Name)
	fmt.Fprintf(b, "  ID: %s\n", doc.ID)
	fmt.Fprintf(b, "  Modified: %s\n", renderTime(doc.ModifiedAt))
	fmt.Fprintf(b, "  Owner: %s\n", doc.Owner.Name)
	if doc.Description != "" {
		fmt.Fprintf(b, "  Description: %s\n", doc.Description)
	}
}

func renderDocuments(docs []onshape.Document) string {
	if len(docs) == 0 {
		return "No documents found"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d document(s):\n", len(docs))
	for _, doc := range docs {
		b.WriteString("\n")
		renderDocumentItem(&b, doc)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderSearchResults(docs []onshape.Document, query string) string {
	if len(docs) == 0 {
		return fmt.Sprintf("No documents found matching '%s'", query)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d document(s) matching '%s':\n", len(docs), query)
	for _, doc := range docs {
		b.WriteString("\n")
		renderDocumentItem(&b, doc)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderDocument(doc onshape.Document) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s**\n", doc.Name)
	fmt.Fprintf(&b, "  ID: %s\n", doc.ID)
	fmt.Fprintf(&b, "  Created: %s\n", renderTime(doc.CreatedAt))
	fmt.Fprintf(&b, "  Modified: %s\n", renderTime(doc.ModifiedAt))
	fmt.Fprintf(&b, "  Owner: %s\n", doc.Owner.Name)
	fmt.Fprintf(&b, "  Public: %t\n", doc.Public)
	if doc.Description != "" {
		fmt.Fprintf(&b, "  Description: %s\n", doc.Description)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderSummary(summary onshape.DocumentSummary) string {
	var b strings.Builder
	b.WriteString(renderDocument(summary.Document))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Workspaces (%d):\n", len(summary.Workspaces))
	for _, detail := range summary.Workspaces {
		b.WriteString("\n")
		fmt.Fprintf(&b, "**%s** (ID: %s)\n", detail.Workspace.Name, detail.Workspace.ID)
		fmt.Fprintf(&b, "  %d element(s)%s\n", len(detail.Elements), renderElementCounts(detail.Elements))
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderElementCounts folds a workspace's elements into per-type counts,
// e.g. ": 2 PARTSTUDIO, 1 ASSEMBLY". Empty for an empty workspace.
func renderElementCounts(elements []onshape.Element) string {
	if len(elements) == 0 {
		return ""
	}
	counts := make(map[string]int)
	var order []string
	for _, el := range elements {
		if counts[el.ElementType] == 0 {
			order = append(order, el.ElementType)
		}
		counts[el.ElementType]++
	}
	parts := make([]string, 0, len(order))
	for _, elementType := range order {
		parts = append(parts, fmt.Sprintf("%d %s", counts[elementType], elementType))
	}
	return ": " + strings.Join(parts, ", ")
}

func renderElements(elements []onshape.Element, elementType string) string {
	scope := ""
	if elementType != "" {
		scope = fmt.Sprintf(" of type '%s'", elementType)
	}
	if len(elements) == 0 {
		return "No elements found" + scope
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d element(s)%s:\n", len(elements), scope)
	for _, el := range elements {
		b.WriteString("\n")
		fmt.Fprintf(&b, "**%s**\n", el.Name)
		fmt.Fprintf(&b, "  ID: %s\n", el.ID)
		fmt.Fprintf(&b, "  Type: %s\n", el.ElementType)
		if el.DataType != "" {
			fmt.Fprintf(&b, "  Data Type: %s\n", el.DataType)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderPartStudios(studios []onshape.Element, namePattern string) string {
	scope := ""
	if namePattern != "" {
		scope = fmt.Sprintf(" matching '%s'", namePattern)
	}
	if len(studios) == 0 {
		return "No Part Studios found" + scope
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d Part Studio(s)%s:\n\n", len(studios), scope)
	for _, el := range studios {
		fmt.Fprintf(&b, "- **%s** (ID: %s)\n", el.Name, el.ID)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderParts(parts []onshape.Part) string {
	if len(parts) == 0 {
		return "No parts found in Part Studio"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d part(s):\n", len(parts))
	for i, part := range parts {
		b.WriteString("\n")
		fmt.Fprintf(&b, "**Part %d: %s**\n", i+1, part.Name)
		fmt.Fprintf(&b, "  Part ID: %s\n", part.PartID)
		fmt.Fprintf(&b, "  Body Type: %s\n", part.BodyType)
		fmt.Fprintf(&b, "  State: %s\n", part.State)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderAssembly(assembly onshape.Assembly) string {
	if len(assembly.Instances) == 0 {
		return "No instances found in assembly"
	}
	var b strings.Builder
	b.WriteString("Assembly Structure:\n\n")
	fmt.Fprintf(&b, "Found %d instance(s):\n", len(assembly.Instances))
	for i, instance := range assembly.Instances {
		b.WriteString("\n")
		fmt.Fprintf(&b, "**Instance %d: %s**\n", i+1, instance.Name)
		fmt.Fprintf(&b, "  ID: %s\n", instance.ID)
		fmt.Fprintf(&b, "  Type: %s\n", instance.Type)
		if instance.PartID != "" {
			fmt.Fprintf(&b, "  Part ID: %s\n", instance.PartID)
		}
		if instance.Suppressed {
			b.WriteString("  Suppressed: true\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderFeatures(list onshape.FeatureList) string {
	if len(list.Features) == 0 {
		return "No features found in Part Studio"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d feature(s):\n\n", len(list.Features))
	for _, f := range list.Features {
		suffix := ""
		if f.Suppressed {
			suffix = " [suppressed]"
		}
		fmt.Fprintf(&b, "- **%s** (%s, ID: %s)%s\n", f.Name, f.FeatureType, f.FeatureID, suffix)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderVariables(variables []onshape.Variable) string {
	if len(variables) == 0 {
		return "No variables found"
	}
	var b strings.Builder
	b.WriteString("Variables in Part Studio:\n")
	for _, v := range variables {
		fmt.Fprintf(&b, "- %s = %s (%s)\n", v.Name, v.Expression, v.Type)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderCircularEdges(edges []onshape.Edge) string {
	if len(edges) == 0 {
		return "No circular edges found"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d circular edge(s):\n\n", len(edges))
	for _, edge := range edges {
		radius, _ := edge.RadiusInches()
		fmt.Fprintf(&b, "- ID: %s, Radius: %.4f in\n", edge.DeterministicID, radius)
	}
	return strings.TrimRight(b.String(), "\n")
}
