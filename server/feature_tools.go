package server

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/clarsbyte/onshape-mcp/feature"
)

func (s *Server) registerFeatureTools() {
	s.addTool(newStudioTool("create_extrude",
		"Extrude a sketch into a solid",
		mcp.WithString("name", mcp.Description("Feature name"), mcp.DefaultString("Extrude")),
		mcp.WithString("sketchFeatureId", mcp.Description("Feature ID of the sketch to extrude"), mcp.Required()),
		mcp.WithNumber("depth", mcp.Description("Extrude depth in inches"), mcp.Required()),
		mcp.WithString("variableDepth", mcp.Description("Variable name to drive the depth")),
		mcp.WithString("operationType", mcp.Description("Boolean operation"), mcp.DefaultString("NEW"), mcp.Enum("NEW", "ADD", "REMOVE", "INTERSECT")),
		mcp.WithBoolean("oppositeDirection", mcp.Description("Extrude in the opposite direction"), mcp.DefaultBool(false)),
	), s.handleCreateExtrude)

	s.addTool(newStudioTool("create_hole",
		"Cut a hole by remove-extruding an existing sketch",
		mcp.WithString("name", mcp.Description("Feature name"), mcp.DefaultString("Hole")),
		mcp.WithString("sketchFeatureId", mcp.Description("Feature ID of the sketch containing the hole profile"), mcp.Required()),
		mcp.WithNumber("depth", mcp.Description("Hole depth in inches"), mcp.Required()),
		mcp.WithString("variableDepth", mcp.Description("Variable name to drive the depth")),
	), s.handleCreateHole)

	s.addTool(newStudioTool("create_fillet",
		"Round the named edges",
		mcp.WithString("name", mcp.Description("Feature name"), mcp.DefaultString("Fillet")),
		mcp.WithArray("edgeIds", mcp.Description("Deterministic edge IDs to fillet"), mcp.Required(), mcp.Items(map[string]any{"type": "string"})),
		mcp.WithNumber("radius", mcp.Description("Fillet radius in inches"), mcp.Required()),
		mcp.WithString("variableRadius", mcp.Description("Variable name to drive the radius")),
		mcp.WithString("filletType", mcp.Description("Fillet type"), mcp.DefaultString("EDGE"), mcp.Enum("EDGE", "FACE", "FULL_ROUND")),
	), s.handleCreateFillet)

	s.addTool(newStudioTool("create_thicken",
		"Thicken a sketch face into a solid",
		mcp.WithString("name", mcp.Description("Feature name"), mcp.DefaultString("Thicken")),
		mcp.WithString("sketchFeatureId", mcp.Description("Feature ID of the sketch to thicken"), mcp.Required()),
		mcp.WithNumber("thickness", mcp.Description("Thickness in inches"), mcp.Required()),
		mcp.WithString("variableThickness", mcp.Description("Variable name to drive the thickness")),
		mcp.WithString("operationType", mcp.Description("Boolean operation"), mcp.DefaultString("NEW"), mcp.Enum("NEW", "ADD", "REMOVE", "INTERSECT")),
		mcp.WithBoolean("midplane", mcp.Description("Thicken symmetrically about the sketch plane"), mcp.DefaultBool(false)),
		mcp.WithBoolean("oppositeDirection", mcp.Description("Thicken in the opposite direction"), mcp.DefaultBool(false)),
	), s.handleCreateThicken)

	s.addTool(newStudioTool("create_stepped_extrude",
		"Create a counterbore: concentric circles cut at increasing depths, widest first",
		mcp.WithString("namePrefix", mcp.Description("Prefix for the generated feature names"), mcp.DefaultString("Counterbore")),
		mcp.WithArray("center", mcp.Description("Hole center [x, y] in inches"), mcp.Required(), mcp.Items(map[string]any{"type": "number"})),
		mcp.WithArray("radii", mcp.Description("Step radii in inches, one per step"), mcp.Required(), mcp.Items(map[string]any{"type": "number"})),
		mcp.WithArray("depths", mcp.Description("Step depths in inches, matched to radii by index"), mcp.Required(), mcp.Items(map[string]any{"type": "number"})),
		mcp.WithString("plane", mcp.Description("Sketch plane"), mcp.DefaultString("Top"), mcp.Enum("Front", "Top", "Right")),
	), s.handleCreateSteppedExtrude)

	s.addTool(newStudioTool("create_gear",
		"Create a spur gear from tooth count and module",
		mcp.WithString("name", mcp.Description("Feature name"), mcp.DefaultString("Gear")),
		mcp.WithNumber("teeth", mcp.Description("Number of teeth"), mcp.Required()),
		mcp.WithNumber("module", mcp.Description("Gear module in millimeters"), mcp.Required()),
		mcp.WithNumber("pressureAngle", mcp.Description("Pressure angle in degrees"), mcp.DefaultNumber(20)),
		mcp.WithNumber("thickness", mcp.Description("Gear thickness in inches"), mcp.Required()),
	), s.handleCreateGear)
}

// submitFeature builds a descriptor and posts it to the studio.
func (s *Server) submitFeature(ctx context.Context, args map[string]any, builder feature.Builder) (string, error) {
	ref, err := studioRef(args)
	if err != nil {
		return "", err
	}
	def, err := builder.Build()
	if err != nil {
		return "", err
	}
	return s.studios.AddFeature(ctx, ref, def)
}

func (s *Server) handleCreateExtrude(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const action = "creating extrude"
	args := req.GetArguments()
	sketchID, err := requireString(args, "sketchFeatureId")
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintSketchID)), nil
	}
	depth, err := requireFloat(args, "depth")
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintSketchID)), nil
	}
	op, err := feature.ParseOperation(stringArg(args, "operationType", "NEW"))
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintSketchID)), nil
	}
	extrude := &feature.Extrude{
		Name:              stringArg(args, "name", "Extrude"),
		Sketch:            feature.SketchID(sketchID),
		Depth:             inches(depth, args, "variableDepth"),
		Operation:         op,
		OppositeDirection: boolArg(args, "oppositeDirection"),
	}
	featureID, err := s.submitFeature(ctx, args, extrude)
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintSketchID)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Created extrude '%s'. Feature ID: %s", extrude.Name, featureID)), nil
}

func (s *Server) handleCreateHole(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const action = "creating hole"
	args := req.GetArguments()
	sketchID, err := requireString(args, "sketchFeatureId")
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintSketchID)), nil
	}
	depth, err := requireFloat(args, "depth")
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintSketchID)), nil
	}
	hole := &feature.Extrude{
		Name:      stringArg(args, "name", "Hole"),
		Sketch:    feature.SketchID(sketchID),
		Depth:     inches(depth, args, "variableDepth"),
		Operation: feature.OpRemove,
	}
	featureID, err := s.submitFeature(ctx, args, hole)
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintSketchID)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Created hole '%s'. Feature ID: %s", hole.Name, featureID)), nil
}

func (s *Server) handleCreateFillet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const action = "creating fillet"
	args := req.GetArguments()
	edgeIDs, err := requireStringSlice(args, "edgeIds")
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintEdgeIDs)), nil
	}
	radius, err := requireFloat(args, "radius")
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintEdgeIDs)), nil
	}
	kind, err := feature.ParseFilletKind(stringArg(args, "filletType", "EDGE"))
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintEdgeIDs)), nil
	}
	fillet := &feature.Fillet{
		Name:    stringArg(args, "name", "Fillet"),
		EdgeIDs: edgeIDs,
		Radius:  inches(radius, args, "variableRadius"),
		Kind:    kind,
	}
	featureID, err := s.submitFeature(ctx, args, fillet)
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintEdgeIDs)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Created fillet '%s'. Feature ID: %s", fillet.Name, featureID)), nil
}

func (s *Server) handleCreateThicken(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const action = "creating thicken"
	args := req.GetArguments()
	sketchID, err := requireString(args, "sketchFeatureId")
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintSketchID)), nil
	}
	thickness, err := requireFloat(args, "thickness")
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintSketchID)), nil
	}
	op, err := feature.ParseOperation(stringArg(args, "operationType", "NEW"))
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintSketchID)), nil
	}
	thicken := &feature.Thicken{
		Name:              stringArg(args, "name", "Thicken"),
		Sketch:            feature.SketchID(sketchID),
		Thickness:         inches(thickness, args, "variableThickness"),
		Operation:         op,
		Midplane:          boolArg(args, "midplane"),
		OppositeDirection: boolArg(args, "oppositeDirection"),
	}
	featureID, err := s.submitFeature(ctx, args, thicken)
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintSketchID)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Created thicken '%s'. Feature ID: %s", thicken.Name, featureID)), nil
}

func (s *Server) handleCreateSteppedExtrude(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const action = "creating stepped extrude"
	args := req.GetArguments()
	ref, err := studioRef(args)
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintParameters)), nil
	}
	center, err := requirePoint(args, "center")
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintParameters)), nil
	}
	radii, err := requireFloatSlice(args, "radii")
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintParameters)), nil
	}
	depths, err := requireFloatSlice(args, "depths")
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintParameters)), nil
	}
	plane, err := feature.ParsePlane(stringArg(args, "plane", "Top"))
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintParameters)), nil
	}
	planeID, err := s.studios.PlaneID(ctx, ref, plane)
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintStudioIDs)), nil
	}
	plan, err := feature.PlanCounterbore(feature.CounterboreSpec{
		NamePrefix: stringArg(args, "namePrefix", "Counterbore"),
		Center:     center,
		Radii:      radii,
		Depths:     depths,
		Plane:      plane,
		PlaneID:    planeID,
	})
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintParameters)), nil
	}
	result, err := feature.NewResolver(s.studios.Bind(ref)).Resolve(ctx, plan)
	if err != nil {
		return mcp.NewToolResultError(renderChainError(action, err, hintParameters)), nil
	}
	text := fmt.Sprintf("Created counterbore hole with %d steps. Feature IDs: %s",
		plan.Len(), strings.Join(result.FeatureIDs, ", "))
	return mcp.NewToolResultText(text), nil
}

func (s *Server) handleCreateGear(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const action = "creating gear"
	args := req.GetArguments()
	teeth, err := requireInt(args, "teeth")
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintParameters)), nil
	}
	module, err := requireFloat(args, "module")
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintParameters)), nil
	}
	thickness, err := requireFloat(args, "thickness")
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintParameters)), nil
	}
	gear := &feature.Gear{
		Name:          stringArg(args, "name", "Gear"),
		Teeth:         teeth,
		Module:        module,
		PressureAngle: floatArg(args, "pressureAngle", 20),
		Thickness:     thickness,
	}
	featureID, err := s.submitFeature(ctx, args, gear)
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintParameters)), nil
	}
	text := fmt.Sprintf("Created gear '%s' with %d teeth. Pitch diameter: %.2f mm. Feature ID: %s",
		gear.Name, gear.Teeth, gear.Module*float64(gear.Teeth), featureID)
	return mcp.NewToolResultText(text), nil
}
