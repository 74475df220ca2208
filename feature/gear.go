package feature

import "fmt"

const millimetersPerInch = 25.4

// gearScript is the FeatureScript payload a Gear submits for remote
// evaluation. The script's precondition block declares the parameter
// types and units, so the gear's numbers travel bare.
const gearScript = `FeatureScript 2856;
import(path : "onshape/std/common.fs", version : "2856.0");

annotation { "Feature Type Name" : "Spur Gear" }
export const gear = defineFeature(function(context is Context, id is Id, definition is map)
    precondition
    {
        annotation { "Name" : "Number of teeth" }
        isInteger(definition.numTeeth, POSITIVE_COUNT_BOUNDS);

        annotation { "Name" : "Module (mm)" }
        isReal(definition.module, POSITIVE_REAL_BOUNDS);

        annotation { "Name" : "Pressure angle (degrees)" }
        isReal(definition.pressureAngle, ANGLE_360_ZERO_DEFAULT_BOUNDS);

        annotation { "Name" : "Thickness" }
        isLength(definition.thickness, LENGTH_BOUNDS);
    }
    {
        const n = definition.numTeeth;
        const m = definition.module * millimeter;
        const pa = definition.pressureAngle * degree;
        const thickness = definition.thickness;

        const pitchDiameter = m * n;
        const baseRadius = (pitchDiameter / 2) * cos(pa);
        const outerRadius = (pitchDiameter / 2) + m;

        var sketch = newSketch(context, id + "gearSketch", {
            "sketchPlane" : qCreatedBy(makeId("Front"), EntityType.FACE)
        });

        // Simplified profile: the outer circle stands in for the involute
        // outline.
        skCircle(sketch, "outer", {
            "center" : vector(0, 0) * meter,
            "radius" : outerRadius
        });

        skSolve(sketch);

        extrude(context, id + "extrude", {
            "entities" : qSketchRegion(id + "gearSketch"),
            "direction" : evOwnerSketchPlane(context, { "entity" : qSketchRegion(id + "gearSketch") }).normal,
            "endBound" : BoundingType.BLIND,
            "endDepth" : thickness
        });
    });
`

// Gear describes a spur gear. Unlike the other descriptors it cannot
// render its geometry locally, since an involute tooth profile is not
// expressible as sketch primitives. Build instead emits an embedded
// FeatureScript payload with the gear parameters as typed fields; the
// remote evaluator owns the profile construction. The contract here is
// "produce something the evaluator can execute", not exact final
// geometry.
type Gear struct {
	Name          string
	Teeth         int
	Module        float64 // millimeters
	PressureAngle float64 // degrees
	Thickness     float64 // inches
}

// Build serializes the gear as a custom feature carrying gearScript.
func (g *Gear) Build() (*Definition, error) {
	if g.Name == "" {
		return nil, fmt.Errorf("%w: gear has no name", ErrIncompleteDescriptor)
	}
	if g.Teeth <= 0 {
		return nil, fmt.Errorf("%w: gear tooth count %d is not positive", ErrInvalidGeometry, g.Teeth)
	}
	if !(g.Module > 0) {
		return nil, fmt.Errorf("%w: gear module %g mm is not positive", ErrInvalidGeometry, g.Module)
	}
	if !(g.PressureAngle > 0 && g.PressureAngle < 90) {
		return nil, fmt.Errorf("%w: gear pressure angle %g deg is out of range", ErrInvalidGeometry, g.PressureAngle)
	}
	if !(g.Thickness > 0) {
		return nil, fmt.Errorf("%w: gear thickness %g is not positive", ErrInvalidGeometry, g.Thickness)
	}
	def := newDefinition(featureTypeCustom, g.Name, []parameter{
		scalarParam("numTeeth", Count(g.Teeth)),
		scalarParam("module", Scalar(g.Module)),
		scalarParam("pressureAngle", Scalar(g.PressureAngle)),
		scalarParam("thickness", Scalar(g.Thickness)),
	})
	def.Feature.FeatureScript = gearScript
	return def, nil
}

// PitchDiameter returns the pitch diameter in inches.
func (g *Gear) PitchDiameter() float64 {
	return g.Module * float64(g.Teeth) / millimetersPerInch
}

// Ratio returns the gear ratio against a mating gear with the given tooth
// count, with this gear driving.
func (g *Gear) Ratio(matingTeeth int) float64 {
	return float64(matingTeeth) / float64(g.Teeth)
}
