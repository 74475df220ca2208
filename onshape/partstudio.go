package onshape

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	json "github.com/goccy/go-json"

	"github.com/clarsbyte/onshape-mcp/feature"
)

// FeatureSummary is the per-feature slice of a feature-list response.
type FeatureSummary struct {
	FeatureID   string `json:"featureId"`
	Name        string `json:"name"`
	FeatureType string `json:"featureType"`
	Suppressed  bool   `json:"suppressed"`
}

// FeatureList is the feature state of a part studio.
type FeatureList struct {
	Features        []FeatureSummary `json:"features"`
	DefaultFeatures []FeatureSummary `json:"defaultFeatures"`
}

// Part is one solid body owned by a part studio.
type Part struct {
	PartID   string `json:"partId"`
	Name     string `json:"name"`
	BodyType string `json:"bodyType"`
	State    string `json:"state"`
}

// Default-plane deterministic IDs are stable across part studios; they are
// the fallback when the default features have been renamed.
var defaultPlaneIDs = map[feature.Plane]string{
	feature.PlaneFront: "JCC",
	feature.PlaneTop:   "JDC",
	feature.PlaneRight: "JFC",
}

// PartStudios binds the part studio feature, part and FeatureScript
// endpoints.
type PartStudios struct {
	client *Client
}

// NewPartStudios builds a PartStudios binding on an authenticated client.
func NewPartStudios(c *Client) *PartStudios {
	return &PartStudios{client: c}
}

// Features fetches the feature list of a part studio, default features
// included.
func (p *PartStudios) Features(ctx context.Context, ref StudioRef) (FeatureList, error) {
	var list FeatureList
	err := p.client.Get(ctx, ref.path("partstudios")+"/features", nil, &list)
	return list, err
}

// AddFeature submits one serialized feature definition and returns the
// feature ID the service assigned.
func (p *PartStudios) AddFeature(ctx context.Context, ref StudioRef, def *feature.Definition) (string, error) {
	var resp struct {
		Feature struct {
			FeatureID string `json:"featureId"`
		} `json:"feature"`
	}
	if err := p.client.Post(ctx, ref.path("partstudios")+"/features", def, &resp); err != nil {
		return "", err
	}
	if resp.Feature.FeatureID == "" {
		return "", &TransportError{Op: "parse add-feature response", Err: errors.New("featureId missing")}
	}
	return resp.Feature.FeatureID, nil
}

// Parts lists the solid bodies of a part studio. With an empty elementID
// the listing covers the whole workspace.
func (p *PartStudios) Parts(ctx context.Context, documentID, workspaceID, elementID string) ([]Part, error) {
	path := fmt.Sprintf("/parts/d/%s/w/%s",
		url.PathEscape(documentID), url.PathEscape(workspaceID))
	if elementID != "" {
		path += "/e/" + url.PathEscape(elementID)
	}
	var parts []Part
	if err := p.client.Get(ctx, path, nil, &parts); err != nil {
		return nil, err
	}
	return parts, nil
}

// PlaneID resolves a default plane to its deterministic ID. The part
// studio's default features are consulted first, so a renamed plane or a
// bad studio reference surfaces here rather than at feature submission;
// when no default feature matches, the well-known ID is returned.
func (p *PartStudios) PlaneID(ctx context.Context, ref StudioRef, plane feature.Plane) (string, error) {
	fallback, ok := defaultPlaneIDs[plane]
	if !ok {
		return "", fmt.Errorf("%w: plane %q, want Front, Top or Right", feature.ErrInvalidEnumValue, string(plane))
	}
	list, err := p.Features(ctx, ref)
	if err != nil {
		return "", err
	}
	want := string(plane) + " Plane"
	for _, f := range list.DefaultFeatures {
		if f.Name == want && f.FeatureID != "" {
			return f.FeatureID, nil
		}
	}
	return fallback, nil
}

// EvalFeatureScript runs a FeatureScript function against the part studio
// and decodes the script's return value into out. A script that returns
// nothing leaves out untouched.
func (p *PartStudios) EvalFeatureScript(ctx context.Context, ref StudioRef, script string, out any) error {
	body := map[string]string{"script": script}
	var resp struct {
		Result struct {
			Value json.RawMessage `json:"value"`
		} `json:"result"`
	}
	if err := p.client.Post(ctx, ref.path("partstudios")+"/featurescript", body, &resp); err != nil {
		return err
	}
	if out == nil || len(resp.Result.Value) == 0 || string(resp.Result.Value) == "null" {
		return nil
	}
	if err := json.Unmarshal(resp.Result.Value, out); err != nil {
		return &TransportError{Op: "decode featurescript result", Err: err}
	}
	return nil
}

// StudioGateway is a PartStudios binding pinned to one studio, satisfying
// the chain resolver's submission interface.
type StudioGateway struct {
	studios *PartStudios
	ref     StudioRef
}

var _ feature.Gateway = (*StudioGateway)(nil)

// Bind pins the binding to one studio for chained submissions.
func (p *PartStudios) Bind(ref StudioRef) *StudioGateway {
	return &StudioGateway{studios: p, ref: ref}
}

// SubmitFeature implements feature.Gateway.
func (g *StudioGateway) SubmitFeature(ctx context.Context, def *feature.Definition) (string, error) {
	return g.studios.AddFeature(ctx, g.ref, def)
}
