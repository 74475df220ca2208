package feature

import (
	"fmt"
	"strings"
)

// Feature type tokens the remote service dispatches on.
const (
	featureTypeSketch  = "newSketch"
	featureTypeExtrude = "extrude"
	featureTypeFillet  = "fillet"
	featureTypeThicken = "thicken"
	featureTypeCustom  = "customFeature"
)

// Plane names one of the part studio's three default construction planes.
type Plane string

const (
	PlaneFront Plane = "Front"
	PlaneTop   Plane = "Top"
	PlaneRight Plane = "Right"
)

// ParsePlane maps a plane name to its canonical form, case-insensitively.
func ParsePlane(s string) (Plane, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "front":
		return PlaneFront, nil
	case "top":
		return PlaneTop, nil
	case "right":
		return PlaneRight, nil
	}
	return "", fmt.Errorf("%w: plane %q, want Front, Top or Right", ErrInvalidEnumValue, s)
}

// Sketch describes a 2D sketch on one of the default planes. PlaneID must
// be the plane's resolved deterministic ID, never its name; resolving the
// name is the transport layer's job.
type Sketch struct {
	Name     string
	Plane    Plane
	PlaneID  string
	Entities EntitySet
}

// Build serializes the sketch. An empty entity set is allowed; entities
// can be added remotely later.
func (s *Sketch) Build() (*Definition, error) {
	if s.Name == "" {
		return nil, fmt.Errorf("%w: sketch has no name", ErrIncompleteDescriptor)
	}
	if s.PlaneID == "" {
		return nil, fmt.Errorf("%w: sketch %q has no resolved plane id", ErrIncompleteDescriptor, s.Name)
	}
	def := newDefinition(featureTypeSketch, s.Name, []parameter{
		queryListParam("sketchPlane", deterministicIDsQuery([]string{s.PlaneID})),
		boolParam("disableImprinting", false),
	})
	def.Feature.BTType = btSketchFeature
	def.Feature.Entities, def.Feature.Constraints = s.Entities.render()
	return def, nil
}
