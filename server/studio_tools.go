package server

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/clarsbyte/onshape-mcp/onshape"
)

func (s *Server) registerStudioTools() {
	s.addTool(newStudioTool("get_features",
		"List the features in a Part Studio",
	), s.handleGetFeatures)

	s.addTool(newStudioTool("get_variables",
		"List the variables defined in a Part Studio",
	), s.handleGetVariables)

	s.addTool(newStudioTool("set_variable",
		"Create or update a Part Studio variable",
		mcp.WithString("name", mcp.Description("Variable name"), mcp.Required()),
		mcp.WithString("expression", mcp.Description("Variable expression, e.g. '0.75 in'"), mcp.Required()),
		mcp.WithString("description", mcp.Description("Variable description")),
	), s.handleSetVariable)

	s.addTool(newStudioTool("find_circular_edges",
		"List circular edges in a Part Studio, optionally filtered by radius",
		mcp.WithNumber("radius", mcp.Description("Only report edges with this radius in inches")),
		mcp.WithNumber("tolerance", mcp.Description("Radius match tolerance in inches"), mcp.DefaultNumber(0.001)),
	), s.handleFindCircularEdges)
}

func (s *Server) handleGetFeatures(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const action = "getting features"
	ref, err := studioRef(req.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintStudioIDs)), nil
	}
	list, err := s.studios.Features(ctx, ref)
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintStudioIDs)), nil
	}
	return mcp.NewToolResultText(renderFeatures(list)), nil
}

func (s *Server) handleGetVariables(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const action = "getting variables"
	ref, err := studioRef(req.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintStudioIDs)), nil
	}
	variables, err := s.variables.List(ctx, ref)
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintStudioIDs)), nil
	}
	return mcp.NewToolResultText(renderVariables(variables)), nil
}

func (s *Server) handleSetVariable(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const action = "setting variable"
	args := req.GetArguments()
	ref, err := studioRef(args)
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintStudioIDs)), nil
	}
	name, err := requireString(args, "name")
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintExpression)), nil
	}
	expression, err := requireString(args, "expression")
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintExpression)), nil
	}
	variable := onshape.Variable{
		Name:        name,
		Expression:  expression,
		Description: stringArg(args, "description", ""),
	}
	if err := s.variables.Set(ctx, ref, variable); err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintExpression)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Set variable '%s' = %s", name, expression)), nil
}

func (s *Server) handleFindCircularEdges(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const action = "finding circular edges"
	args := req.GetArguments()
	ref, err := studioRef(args)
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintStudioIDs)), nil
	}
	var edges []onshape.Edge
	if radius := floatArg(args, "radius", 0); radius > 0 {
		edges, err = s.edges.CircularWithRadius(ctx, ref, radius, floatArg(args, "tolerance", 0.001))
	} else {
		edges, err = s.edges.Circular(ctx, ref)
	}
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintStudioIDs)), nil
	}
	return mcp.NewToolResultText(renderCircularEdges(edges)), nil
}
