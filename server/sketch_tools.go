package server

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cast"

	"github.com/clarsbyte/onshape-mcp/feature"
	"github.com/clarsbyte/onshape-mcp/onshape"
)

func planeOption() mcp.ToolOption {
	return mcp.WithString("plane",
		mcp.Description("Sketch plane"),
		mcp.DefaultString("Front"),
		mcp.Enum("Front", "Top", "Right"),
	)
}

func (s *Server) registerSketchTools() {
	s.addTool(newStudioTool("create_sketch",
		"Create a sketch on a default plane, optionally pre-populated with entities",
		mcp.WithString("name", mcp.Description("Sketch name"), mcp.DefaultString("Sketch")),
		planeOption(),
		mcp.WithArray("entities",
			mcp.Description("Sketch entities: objects with a 'type' of circle, line or rectangle and the matching geometry fields"),
			mcp.Items(map[string]any{"type": "object"}),
		),
	), s.handleCreateSketch)

	s.addTool(newStudioTool("create_sketch_rectangle",
		"Create a sketch containing a single rectangle",
		mcp.WithString("name", mcp.Description("Sketch name"), mcp.DefaultString("Sketch")),
		planeOption(),
		mcp.WithArray("corner1", mcp.Description("First corner [x, y] in inches"), mcp.Required(), mcp.Items(map[string]any{"type": "number"})),
		mcp.WithArray("corner2", mcp.Description("Opposite corner [x, y] in inches"), mcp.Required(), mcp.Items(map[string]any{"type": "number"})),
		mcp.WithString("variableWidth", mcp.Description("Variable name to drive the width dimension")),
		mcp.WithString("variableHeight", mcp.Description("Variable name to drive the height dimension")),
	), s.handleCreateSketchRectangle)

	s.addTool(newStudioTool("create_sketch_line",
		"Create a sketch containing a single line",
		mcp.WithString("name", mcp.Description("Sketch name"), mcp.DefaultString("Sketch")),
		planeOption(),
		mcp.WithArray("start", mcp.Description("Start point [x, y] in inches"), mcp.Required(), mcp.Items(map[string]any{"type": "number"})),
		mcp.WithArray("end", mcp.Description("End point [x, y] in inches"), mcp.Required(), mcp.Items(map[string]any{"type": "number"})),
		mcp.WithBoolean("isConstruction", mcp.Description("Mark the line as construction geometry"), mcp.DefaultBool(false)),
	), s.handleCreateSketchLine)

	s.addTool(newStudioTool("create_sketch_circle",
		"Create a sketch containing a single circle",
		mcp.WithString("name", mcp.Description("Sketch name"), mcp.DefaultString("Sketch")),
		planeOption(),
		mcp.WithArray("center", mcp.Description("Center point [x, y] in inches"), mcp.Required(), mcp.Items(map[string]any{"type": "number"})),
		mcp.WithNumber("radius", mcp.Description("Radius in inches"), mcp.Required()),
		mcp.WithString("variableRadius", mcp.Description("Variable name to drive the radius dimension")),
		mcp.WithBoolean("isConstruction", mcp.Description("Mark the circle as construction geometry"), mcp.DefaultBool(false)),
	), s.handleCreateSketchCircle)
}

// newSketch resolves the plane argument and binds a sketch descriptor to
// the studio. The plane lookup doubles as a studio existence check, so a
// bad ref fails here rather than on submission.
func (s *Server) newSketch(ctx context.Context, args map[string]any, ref onshape.StudioRef) (*feature.Sketch, error) {
	plane, err := feature.ParsePlane(stringArg(args, "plane", "Front"))
	if err != nil {
		return nil, err
	}
	planeID, err := s.studios.PlaneID(ctx, ref, plane)
	if err != nil {
		return nil, err
	}
	return &feature.Sketch{
		Name:    stringArg(args, "name", "Sketch"),
		Plane:   plane,
		PlaneID: planeID,
	}, nil
}

func (s *Server) submitSketch(ctx context.Context, ref onshape.StudioRef, sketch *feature.Sketch) (string, error) {
	def, err := sketch.Build()
	if err != nil {
		return "", err
	}
	return s.studios.AddFeature(ctx, ref, def)
}

func (s *Server) handleCreateSketch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const action = "creating sketch"
	args := req.GetArguments()
	ref, err := studioRef(args)
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintParameters)), nil
	}
	sketch, err := s.newSketch(ctx, args, ref)
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintStudioIDs)), nil
	}
	if err := addEntities(&sketch.Entities, args["entities"]); err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintParameters)), nil
	}
	featureID, err := s.submitSketch(ctx, ref, sketch)
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintParameters)), nil
	}
	text := fmt.Sprintf("Created sketch '%s' with %d entities on %s plane. Feature ID: %s",
		sketch.Name, sketch.Entities.Len(), sketch.Plane, featureID)
	return mcp.NewToolResultText(text), nil
}

func (s *Server) handleCreateSketchRectangle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const action = "creating sketch"
	args := req.GetArguments()
	ref, err := studioRef(args)
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintParameters)), nil
	}
	corner1, err := requirePoint(args, "corner1")
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintParameters)), nil
	}
	corner2, err := requirePoint(args, "corner2")
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintParameters)), nil
	}
	sketch, err := s.newSketch(ctx, args, ref)
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintStudioIDs)), nil
	}
	var widthParam, heightParam feature.Quantity
	if name := stringArg(args, "variableWidth", ""); name != "" {
		widthParam = feature.Inches(math.Abs(corner2.X - corner1.X)).WithVariable(name)
	}
	if name := stringArg(args, "variableHeight", ""); name != "" {
		heightParam = feature.Inches(math.Abs(corner2.Y - corner1.Y)).WithVariable(name)
	}
	if err := sketch.Entities.AddRectangleParam(corner1, corner2, widthParam, heightParam); err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintParameters)), nil
	}
	featureID, err := s.submitSketch(ctx, ref, sketch)
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintParameters)), nil
	}
	text := fmt.Sprintf("Created sketch '%s' with rectangle on %s plane. Feature ID: %s",
		sketch.Name, sketch.Plane, featureID)
	return mcp.NewToolResultText(text), nil
}

func (s *Server) handleCreateSketchLine(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const action = "creating sketch"
	args := req.GetArguments()
	ref, err := studioRef(args)
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintParameters)), nil
	}
	start, err := requirePoint(args, "start")
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintParameters)), nil
	}
	end, err := requirePoint(args, "end")
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintParameters)), nil
	}
	sketch, err := s.newSketch(ctx, args, ref)
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintStudioIDs)), nil
	}
	if err := sketch.Entities.AddLine(start, end, boolArg(args, "isConstruction")); err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintParameters)), nil
	}
	featureID, err := s.submitSketch(ctx, ref, sketch)
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintParameters)), nil
	}
	text := fmt.Sprintf("Created sketch '%s' with line on %s plane. Feature ID: %s",
		sketch.Name, sketch.Plane, featureID)
	return mcp.NewToolResultText(text), nil
}

func (s *Server) handleCreateSketchCircle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const action = "creating sketch"
	args := req.GetArguments()
	ref, err := studioRef(args)
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintParameters)), nil
	}
	center, err := requirePoint(args, "center")
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintParameters)), nil
	}
	radius, err := requireFloat(args, "radius")
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintParameters)), nil
	}
	sketch, err := s.newSketch(ctx, args, ref)
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintStudioIDs)), nil
	}
	radiusParam := inches(radius, args, "variableRadius")
	if err := sketch.Entities.AddCircleParam(center, radius, radiusParam, boolArg(args, "isConstruction")); err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintParameters)), nil
	}
	featureID, err := s.submitSketch(ctx, ref, sketch)
	if err != nil {
		return mcp.NewToolResultError(renderError(action, err, hintParameters)), nil
	}
	text := fmt.Sprintf("Created sketch '%s' with circle on %s plane. Feature ID: %s",
		sketch.Name, sketch.Plane, featureID)
	return mcp.NewToolResultText(text), nil
}

// addEntities folds the create_sketch entities argument into the set.
func addEntities(set *feature.EntitySet, raw any) error {
	if raw == nil {
		return nil
	}
	items, err := cast.ToSliceE(raw)
	if err != nil {
		return fmt.Errorf("argument %q must be an array of entity objects", "entities")
	}
	for i, item := range items {
		m, err := cast.ToStringMapE(item)
		if err != nil {
			return fmt.Errorf("entity %d must be an object", i+1)
		}
		if err := addEntity(set, m); err != nil {
			return fmt.Errorf("entity %d: %w", i+1, err)
		}
	}
	return nil
}

func addEntity(set *feature.EntitySet, m map[string]any) error {
	kind := stringArg(m, "type", "")
	construction := boolArg(m, "isConstruction")
	switch strings.ToLower(kind) {
	case "circle":
		center, err := requirePoint(m, "center")
		if err != nil {
			return err
		}
		radius, err := requireFloat(m, "radius")
		if err != nil {
			return err
		}
		return set.AddCircle(center, radius, construction)
	case "line":
		start, err := requirePoint(m, "start")
		if err != nil {
			return err
		}
		end, err := requirePoint(m, "end")
		if err != nil {
			return err
		}
		return set.AddLine(start, end, construction)
	case "rectangle":
		corner1, err := requirePoint(m, "corner1")
		if err != nil {
			return err
		}
		corner2, err := requirePoint(m, "corner2")
		if err != nil {
			return err
		}
		return set.AddRectangle(corner1, corner2)
	}
	return fmt.Errorf("%w: entity type %q, want circle, line or rectangle", feature.ErrInvalidEnumValue, kind)
}
