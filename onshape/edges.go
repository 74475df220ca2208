package onshape

import (
	"context"
	"fmt"
	"math"
)

const metersPerInch = 0.0254

// Edge is one edge probed by the all-edges FeatureScript query. Radius is
// in meters, nil when the edge is not circular.
type Edge struct {
	TransientID     string   `json:"transientId"`
	DeterministicID string   `json:"deterministicId"`
	GeometryType    string   `json:"geometryType"`
	Radius          *float64 `json:"radius"`
}

// RadiusInches converts the probed radius to inches. The second return
// is false for non-circular edges.
func (e Edge) RadiusInches() (float64, bool) {
	if e.Radius == nil {
		return 0, false
	}
	return *e.Radius / metersPerInch, true
}

// allEdgesScript walks every edge in the studio and reports its IDs,
// geometry type and, for circular edges, the radius.
const allEdgesScript = `
function(context is Context, queries) {
    const allEdges = qEverything(EntityType.EDGE);
    var edgeData = [];

    for (var edge in evaluateQuery(context, allEdges)) {
        var edgeInfo = {
            "transientId" : transientQueriesToStrings(context, edge)[0],
            "deterministicId" : undefined
        };

        try {
            edgeInfo.deterministicId = toString(qDeterministicIdQuery(edge));
        } catch {}

        const geom = evEdgeTangentLine(context, {
            "edge" : edge,
            "parameter" : 0.5
        });
        edgeInfo.geometryType = toString(geom.geometryType);

        try {
            const curvature = evEdgeCurvature(context, {
                "edge" : edge,
                "parameter" : 0.5
            });
            if (curvature.radius != undefined) {
                edgeInfo.radius = curvature.radius * meter;
            }
        } catch {}

        edgeData = append(edgeData, edgeInfo);
    }

    return edgeData;
}
`

// createdEdgesScriptFmt reports the deterministic IDs of the edges one
// feature created. The feature ID is interpolated into makeId.
const createdEdgesScriptFmt = `
function(context is Context, queries) {
    const created = qCreatedBy(makeId("%s"), EntityType.EDGE);
    var edgeIds = [];

    for (var edge in evaluateQuery(context, created)) {
        try {
            edgeIds = append(edgeIds, toString(qDeterministicIdQuery(edge)));
        } catch {}
    }

    return edgeIds;
}
`

// Edges answers edge queries by running FeatureScript against a part
// studio.
type Edges struct {
	studios *PartStudios
}

// NewEdges builds an Edges helper over a part studio binding.
func NewEdges(p *PartStudios) *Edges {
	return &Edges{studios: p}
}

// List probes every edge in the studio.
func (e *Edges) List(ctx context.Context, ref StudioRef) ([]Edge, error) {
	var edges []Edge
	if err := e.studios.EvalFeatureScript(ctx, ref, allEdgesScript, &edges); err != nil {
		return nil, err
	}
	return edges, nil
}

// Circular returns the edges with a measured radius and a deterministic
// ID, the subset a fillet can target.
func (e *Edges) Circular(ctx context.Context, ref StudioRef) ([]Edge, error) {
	edges, err := e.List(ctx, ref)
	if err != nil {
		return nil, err
	}
	var circular []Edge
	for _, edge := range edges {
		if edge.Radius != nil && edge.DeterministicID != "" {
			circular = append(circular, edge)
		}
	}
	return circular, nil
}

// CircularWithRadius narrows Circular to edges whose radius matches
// radiusInches within toleranceInches. The probe reports radii in meters,
// so both inch inputs are converted before comparing.
func (e *Edges) CircularWithRadius(ctx context.Context, ref StudioRef, radiusInches, toleranceInches float64) ([]Edge, error) {
	circular, err := e.Circular(ctx, ref)
	if err != nil {
		return nil, err
	}
	want := radiusInches * metersPerInch
	tolerance := toleranceInches * metersPerInch
	var matched []Edge
	for _, edge := range circular {
		if math.Abs(*edge.Radius-want) <= tolerance {
			matched = append(matched, edge)
		}
	}
	return matched, nil
}

// CreatedBy returns the deterministic IDs of the edges one feature
// created.
func (e *Edges) CreatedBy(ctx context.Context, ref StudioRef, featureID string) ([]string, error) {
	script := fmt.Sprintf(createdEdgesScriptFmt, featureID)
	var ids []string
	if err := e.studios.EvalFeatureScript(ctx, ref, script, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}
