package feature

import (
	"fmt"
	"strings"
)

// Operation is the body operation a material feature applies.
type Operation string

const (
	OpNew       Operation = "NEW"
	OpAdd       Operation = "ADD"
	OpRemove    Operation = "REMOVE"
	OpIntersect Operation = "INTERSECT"
)

// ParseOperation maps an operation token to its canonical form,
// case-insensitively.
func ParseOperation(s string) (Operation, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "NEW":
		return OpNew, nil
	case "ADD":
		return OpAdd, nil
	case "REMOVE":
		return OpRemove, nil
	case "INTERSECT":
		return OpIntersect, nil
	}
	return "", fmt.Errorf("%w: operation %q, want NEW, ADD, REMOVE or INTERSECT", ErrInvalidEnumValue, s)
}

func (o Operation) validate() error {
	switch o {
	case OpNew, OpAdd, OpRemove, OpIntersect:
		return nil
	}
	return fmt.Errorf("%w: operation %q, want NEW, ADD, REMOVE or INTERSECT", ErrInvalidEnumValue, string(o))
}

// SketchRef identifies the sketch whose closed regions a feature consumes.
// A resolved reference carries the sketch's real feature ID. A pending
// reference carries only a chain step index: it serializes as that step's
// placeholder token and must be resolved before submission. The Resolver
// is the only producer of pending references.
type SketchRef struct {
	id      string
	step    int
	pending bool
}

// SketchID returns a resolved reference to an already-submitted sketch.
func SketchID(id string) SketchRef { return SketchRef{id: id} }

// PendingSketch returns an unresolved reference to the sketch of the given
// chain step.
func PendingSketch(step int) SketchRef { return SketchRef{step: step, pending: true} }

// Resolved reports whether the reference carries a real feature ID.
func (r SketchRef) Resolved() bool { return !r.pending && r.id != "" }

// Step returns the chain step index of a pending reference.
func (r SketchRef) Step() int { return r.step }

// FeatureID returns the referenced feature ID, or "" while pending.
func (r SketchRef) FeatureID() string {
	if r.pending {
		return ""
	}
	return r.id
}

// token is what the sketch-region query embeds: the real feature ID once
// resolved, the step's placeholder until then.
func (r SketchRef) token() string {
	if r.pending {
		return fmt.Sprintf("{SKETCH_%d}", r.step)
	}
	return r.id
}

// Extrude describes a blind extrusion of a sketch's closed regions.
type Extrude struct {
	Name              string
	Sketch            SketchRef
	Depth             Quantity
	Operation         Operation
	OppositeDirection bool
}

// Build serializes the extrude. The sketch reference may still be pending,
// in which case the definition embeds the step's placeholder token; such a
// definition is only valid inside a chain, where the Resolver rebinds it
// before submission.
func (e *Extrude) Build() (*Definition, error) {
	if e.Name == "" {
		return nil, fmt.Errorf("%w: extrude has no name", ErrIncompleteDescriptor)
	}
	if e.Sketch == (SketchRef{}) {
		return nil, fmt.Errorf("%w: extrude %q has no sketch reference", ErrIncompleteDescriptor, e.Name)
	}
	if e.Depth.IsZero() {
		return nil, fmt.Errorf("%w: extrude %q has no depth", ErrIncompleteDescriptor, e.Name)
	}
	if err := e.Operation.validate(); err != nil {
		return nil, err
	}
	return newDefinition(featureTypeExtrude, e.Name, []parameter{
		queryListParam("entities", regionQuery(e.Sketch.token())),
		enumParam("operationType", "NewBodyOperationType", string(e.Operation)),
		quantityParam("depth", e.Depth),
		boolParam("oppositeDirection", e.OppositeDirection),
	}), nil
}
