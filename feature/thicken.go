package feature

import "fmt"

// Thicken describes giving a sketch's regions material thickness, for
// turning surface sketches into solid bodies.
type Thicken struct {
	Name              string
	Sketch            SketchRef
	Thickness         Quantity
	Operation         Operation
	Midplane          bool
	OppositeDirection bool
}

// Build serializes the thicken.
func (t *Thicken) Build() (*Definition, error) {
	if t.Name == "" {
		return nil, fmt.Errorf("%w: thicken has no name", ErrIncompleteDescriptor)
	}
	if t.Sketch == (SketchRef{}) {
		return nil, fmt.Errorf("%w: thicken %q has no sketch reference", ErrIncompleteDescriptor, t.Name)
	}
	if t.Thickness.IsZero() {
		return nil, fmt.Errorf("%w: thicken %q has no thickness", ErrIncompleteDescriptor, t.Name)
	}
	if err := t.Operation.validate(); err != nil {
		return nil, err
	}
	return newDefinition(featureTypeThicken, t.Name, []parameter{
		queryListParam("entities", regionQuery(t.Sketch.token())),
		enumParam("operationType", "NewBodyOperationType", string(t.Operation)),
		quantityParam("thickness", t.Thickness),
		boolParam("oppositeDirection", t.OppositeDirection),
		boolParam("midplane", t.Midplane),
	}), nil
}
