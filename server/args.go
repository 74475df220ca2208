package server

import (
	"fmt"

	"github.com/spf13/cast"

	"github.com/clarsbyte/onshape-mcp/feature"
	"github.com/clarsbyte/onshape-mcp/onshape"
)

// Tool arguments arrive as map[string]any straight off the wire. The
// helpers below coerce them leniently (a client sending "0.5" for a
// number is fine) but report missing required keys explicitly, so the
// rendered error names the argument instead of a zero-value surprise.

func requireString(args map[string]any, key string) (string, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return "", fmt.Errorf("missing required argument %q", key)
	}
	s, err := cast.ToStringE(raw)
	if err != nil || s == "" {
		return "", fmt.Errorf("argument %q must be a non-empty string", key)
	}
	return s, nil
}

func stringArg(args map[string]any, key, fallback string) string {
	raw, ok := args[key]
	if !ok || raw == nil {
		return fallback
	}
	s, err := cast.ToStringE(raw)
	if err != nil || s == "" {
		return fallback
	}
	return s
}

func requireFloat(args map[string]any, key string) (float64, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return 0, fmt.Errorf("missing required argument %q", key)
	}
	v, err := cast.ToFloat64E(raw)
	if err != nil {
		return 0, fmt.Errorf("argument %q must be a number", key)
	}
	return v, nil
}

func floatArg(args map[string]any, key string, fallback float64) float64 {
	raw, ok := args[key]
	if !ok || raw == nil {
		return fallback
	}
	v, err := cast.ToFloat64E(raw)
	if err != nil {
		return fallback
	}
	return v
}

func requireInt(args map[string]any, key string) (int, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return 0, fmt.Errorf("missing required argument %q", key)
	}
	v, err := cast.ToIntE(raw)
	if err != nil {
		return 0, fmt.Errorf("argument %q must be an integer", key)
	}
	return v, nil
}

func intArg(args map[string]any, key string, fallback int) int {
	raw, ok := args[key]
	if !ok || raw == nil {
		return fallback
	}
	v, err := cast.ToIntE(raw)
	if err != nil {
		return fallback
	}
	return v
}

func boolArg(args map[string]any, key string) bool {
	raw, ok := args[key]
	if !ok || raw == nil {
		return false
	}
	return cast.ToBool(raw)
}

// requirePoint reads a [x, y] pair.
func requirePoint(args map[string]any, key string) (feature.Point, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return feature.Point{}, fmt.Errorf("missing required argument %q", key)
	}
	p, ok := pointValue(raw)
	if !ok {
		return feature.Point{}, fmt.Errorf("argument %q must be a [x, y] number pair", key)
	}
	return p, nil
}

func pointValue(raw any) (feature.Point, bool) {
	slice, err := cast.ToSliceE(raw)
	if err != nil || len(slice) != 2 {
		return feature.Point{}, false
	}
	x, errX := cast.ToFloat64E(slice[0])
	y, errY := cast.ToFloat64E(slice[1])
	if errX != nil || errY != nil {
		return feature.Point{}, false
	}
	return feature.Point{X: x, Y: y}, true
}

func requireFloatSlice(args map[string]any, key string) ([]float64, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return nil, fmt.Errorf("missing required argument %q", key)
	}
	slice, err := cast.ToSliceE(raw)
	if err != nil {
		return nil, fmt.Errorf("argument %q must be an array of numbers", key)
	}
	out := make([]float64, len(slice))
	for i, item := range slice {
		v, err := cast.ToFloat64E(item)
		if err != nil {
			return nil, fmt.Errorf("argument %q must be an array of numbers", key)
		}
		out[i] = v
	}
	return out, nil
}

func requireStringSlice(args map[string]any, key string) ([]string, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return nil, fmt.Errorf("missing required argument %q", key)
	}
	slice, err := cast.ToStringSliceE(raw)
	if err != nil || len(slice) == 0 {
		return nil, fmt.Errorf("argument %q must be a non-empty array of strings", key)
	}
	return slice, nil
}

// studioRef reads the documentId/workspaceId/elementId triple every part
// studio tool requires.
func studioRef(args map[string]any) (onshape.StudioRef, error) {
	documentID, err := requireString(args, "documentId")
	if err != nil {
		return onshape.StudioRef{}, err
	}
	workspaceID, err := requireString(args, "workspaceId")
	if err != nil {
		return onshape.StudioRef{}, err
	}
	elementID, err := requireString(args, "elementId")
	if err != nil {
		return onshape.StudioRef{}, err
	}
	return onshape.StudioRef{
		DocumentID:  documentID,
		WorkspaceID: workspaceID,
		ElementID:   elementID,
	}, nil
}

// inches builds a length quantity, optionally bound to a variable named
// by a sibling argument.
func inches(value float64, args map[string]any, variableKey string) feature.Quantity {
	return feature.Inches(value).WithVariable(stringArg(args, variableKey, ""))
}
