package server

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/clarsbyte/onshape-mcp/onshape"
)

func (s *Server) registerDocumentTools() {
	s.addTool(mcp.NewTool("list_documents",
		mcp.WithDescription("List documents visible to the authenticated user"),
		mcp.WithString("filterType", mcp.Description("Ownership filter"), mcp.DefaultString("all"), mcp.Enum("all", "owned", "created", "shared")),
		mcp.WithString("sortBy", mcp.Description("Sort column"), mcp.DefaultString("modifiedAt"), mcp.Enum("name", "modifiedAt", "createdAt")),
		mcp.WithString("sortOrder", mcp.Description("Sort direction"), mcp.DefaultString("desc"), mcp.Enum("asc", "desc")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of documents"), mcp.DefaultNumber(20)),
	), s.handleListDocuments)

	s.addTool(mcp.NewTool("search_documents",
		mcp.WithDescription("Search documents by name"),
		mcp.WithString("query", mcp.Description("Search text"), mcp.Required()),
		mcp.WithNumber("limit", mcp.Description("Maximum number of documents"), mcp.DefaultNumber(20)),
	), s.handleSearchDocuments)

	s.addTool(mcp.NewTool("get_document",
		mcp.WithDescription("Get one document's details"),
		mcp.WithString("documentId", mcp.Description("Document ID"), mcp.Required()),
	), s.handleGetDocument)

	s.addTool(mcp.NewTool("get_document_summary",
		mcp.WithDescription("Get a document overview: details, workspaces and element counts"),
		mcp.WithString("documentId", mcp.Description("Document ID"), mcp.Required()),
	), s.handleGetDocumentSummary)

	s.addTool(mcp.NewTool("find_part_studios",
		mcp.WithDescription("Find Part Studio elements in a workspace, optionally by name"),
		mcp.WithString("documentId", mcp.Description("Document ID"), mcp.Required()),
		mcp.WithString("workspaceId", mcp.Description("Workspace ID"), mcp.Required()),
		mcp.WithString("namePattern", mcp.Description("Case-insensitive name substring")),
	), s.handleFindPartStudios)

	s.addTool(mcp.NewTool("get_elements",
		mcp.WithDescription("List the elements (tabs) in a workspace"),
		mcp.WithString("documentId", mcp.Description("Document ID"), mcp.Required()),
		mcp.WithString("workspaceId", mcp.Description("Workspace ID"), mcp.Required()),
		mcp.WithString("elementType", mcp.Description("Only elements of this type, e.g. PARTSTUDIO or ASSEMBLY")),
	), s.handleGetElements)

	s.addTool(newStudioTool("get_parts",
		"List the parts in a Part Studio",
	), s.handleGetParts)

	s.addTool(mcp.NewTool("get_assembly",
		mcp.WithDescription("Show an assembly's instance structure"),
		mcp.WithString("documentId", mcp.Description("Document ID"), mcp.Required()),
		mcp.WithString("workspaceId", mcp.Description("Workspace ID"), mcp.Required()),
		mcp.WithString("elementId", mcp.Description("Assembly element ID"), mcp.Required()),
	), s.handleGetAssembly)
}

func (s *Server) handleListDocuments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const action = "listing documents"
	args := req.GetArguments()
	filter, err := onshape.ParseDocumentFilter(stringArg(args, "filterType", "all"))
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintParameters)), nil
	}
	docs, err := s.documents.List(ctx, onshape.ListOptions{
		Filter:    filter,
		SortBy:    stringArg(args, "sortBy", "modifiedAt"),
		SortOrder: stringArg(args, "sortOrder", "desc"),
		Limit:     intArg(args, "limit", 20),
	})
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintParameters)), nil
	}
	return mcp.NewToolResultText(renderDocuments(docs)), nil
}

func (s *Server) handleSearchDocuments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const action = "searching documents"
	args := req.GetArguments()
	query, err := requireString(args, "query")
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintParameters)), nil
	}
	docs, err := s.documents.Search(ctx, query, intArg(args, "limit", 20))
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintParameters)), nil
	}
	return mcp.NewToolResultText(renderSearchResults(docs, query)), nil
}

func (s *Server) handleGetDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const action = "getting document"
	documentID, err := requireString(req.GetArguments(), "documentId")
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintStudioIDs)), nil
	}
	doc, err := s.documents.Get(ctx, documentID)
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintStudioIDs)), nil
	}
	return mcp.NewToolResultText(renderDocument(doc)), nil
}

func (s *Server) handleGetDocumentSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const action = "getting document summary"
	documentID, err := requireString(req.GetArguments(), "documentId")
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintStudioIDs)), nil
	}
	summary, err := s.documents.Summary(ctx, documentID)
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintStudioIDs)), nil
	}
	return mcp.NewToolResultText(renderSummary(summary)), nil
}

func (s *Server) handleFindPartStudios(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const action = "finding part studios"
	args := req.GetArguments()
	documentID, err := requireString(args, "documentId")
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintStudioIDs)), nil
	}
	workspaceID, err := requireString(args, "workspaceId")
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintStudioIDs)), nil
	}
	namePattern := stringArg(args, "namePattern", "")
	studios, err := s.documents.FindPartStudios(ctx, documentID, workspaceID, namePattern)
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintStudioIDs)), nil
	}
	return mcp.NewToolResultText(renderPartStudios(studios, namePattern)), nil
}

func (s *Server) handleGetElements(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const action = "getting elements"
	args := req.GetArguments()
	documentID, err := requireString(args, "documentId")
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintStudioIDs)), nil
	}
	workspaceID, err := requireString(args, "workspaceId")
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintStudioIDs)), nil
	}
	elementType := stringArg(args, "elementType", "")
	elements, err := s.documents.Elements(ctx, documentID, workspaceID, elementType)
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintStudioIDs)), nil
	}
	return mcp.NewToolResultText(renderElements(elements, elementType)), nil
}

func (s *Server) handleGetParts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const action = "getting parts"
	ref, err := studioRef(req.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintStudioIDs)), nil
	}
	parts, err := s.studios.Parts(ctx, ref.DocumentID, ref.WorkspaceID, ref.ElementID)
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintStudioIDs)), nil
	}
	return mcp.NewToolResultText(renderParts(parts)), nil
}

func (s *Server) handleGetAssembly(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const action = "getting assembly"
	ref, err := studioRef(req.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintStudioIDs)), nil
	}
	assembly, err := s.assemblies.Definition(ctx, ref)
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintStudioIDs)), nil
	}
	return mcp.NewToolResultText(renderAssembly(assembly)), nil
}
