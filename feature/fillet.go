package feature

import (
	"fmt"
	"strings"
)

// FilletKind selects the fillet operation variant.
type FilletKind string

const (
	FilletEdge      FilletKind = "EDGE"
	FilletFace      FilletKind = "FACE"
	FilletFullRound FilletKind = "FULL_ROUND"
)

// ParseFilletKind maps a fillet kind token to its canonical form,
// case-insensitively.
func ParseFilletKind(s string) (FilletKind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "EDGE":
		return FilletEdge, nil
	case "FACE":
		return FilletFace, nil
	case "FULL_ROUND":
		return FilletFullRound, nil
	}
	return "", fmt.Errorf("%w: fillet kind %q, want EDGE, FACE or FULL_ROUND", ErrInvalidEnumValue, s)
}

func (k FilletKind) validate() error {
	switch k {
	case FilletEdge, FilletFace, FilletFullRound:
		return nil
	}
	return fmt.Errorf("%w: fillet kind %q, want EDGE, FACE or FULL_ROUND", ErrInvalidEnumValue, string(k))
}

// Fillet describes a rounding of one or more edges, addressed by their
// deterministic IDs.
type Fillet struct {
	Name    string
	EdgeIDs []string
	Radius  Quantity
	Kind    FilletKind
}

// Build serializes the fillet. At least one edge ID is required; edge IDs
// come from edge queries against the part studio.
func (f *Fillet) Build() (*Definition, error) {
	if f.Name == "" {
		return nil, fmt.Errorf("%w: fillet has no name", ErrIncompleteDescriptor)
	}
	if len(f.EdgeIDs) == 0 {
		return nil, fmt.Errorf("%w: fillet %q has no edges", ErrIncompleteDescriptor, f.Name)
	}
	for _, id := range f.EdgeIDs {
		if id == "" {
			return nil, fmt.Errorf("%w: fillet %q has an empty edge id", ErrIncompleteDescriptor, f.Name)
		}
	}
	if f.Radius.IsZero() {
		return nil, fmt.Errorf("%w: fillet %q has no radius", ErrIncompleteDescriptor, f.Name)
	}
	if err := f.Kind.validate(); err != nil {
		return nil, err
	}
	return newDefinition(featureTypeFillet, f.Name, []parameter{
		queryListParam("entities", deterministicIDsQuery(f.EdgeIDs)),
		quantityParam("radius", f.Radius),
		enumParam("filletType", "FilletType", string(f.Kind)),
	}), nil
}
