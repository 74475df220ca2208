package feature

import (
	"fmt"
	"math"
)

// Sketch coordinates arrive in inches; the geometry schema stores SI.
const metersPerInch = 0.0254

// Point is a 2D sketch-plane coordinate in inches.
type Point struct {
	X float64
	Y float64
}

func (p Point) finite() bool {
	return finite(p.X) && finite(p.Y)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// SketchEntity is one primitive in a sketch's entity set. The variant set
// is closed: Line, Circle and Rectangle.
type SketchEntity interface {
	validate() error
	render(r *entityRenderer)
}

// Line is a straight segment between two distinct points.
type Line struct {
	Start        Point
	End          Point
	Construction bool
}

// Circle is a full circle with a positive radius. RadiusParam, when set,
// adds a driving radius dimension (typically a variable reference).
type Circle struct {
	Center       Point
	Radius       float64
	RadiusParam  Quantity
	Construction bool
}

// Rectangle is four connected segments spanning two opposite corners.
// WidthParam and HeightParam, when set, add driving length dimensions to
// the horizontal and vertical sides.
type Rectangle struct {
	Corner1      Point
	Corner2      Point
	WidthParam   Quantity
	HeightParam  Quantity
	Construction bool
}

var (
	_ SketchEntity = Line{}
	_ SketchEntity = Circle{}
	_ SketchEntity = Rectangle{}
)

func (l Line) validate() error {
	if !l.Start.finite() || !l.End.finite() {
		return fmt.Errorf("%w: line endpoints must be finite", ErrInvalidGeometry)
	}
	if l.Start == l.End {
		return fmt.Errorf("%w: line endpoints coincide at (%g, %g)", ErrInvalidGeometry, l.Start.X, l.Start.Y)
	}
	return nil
}

func (c Circle) validate() error {
	if !c.Center.finite() || !finite(c.Radius) {
		return fmt.Errorf("%w: circle parameters must be finite", ErrInvalidGeometry)
	}
	if c.Radius <= 0 {
		return fmt.Errorf("%w: circle radius %g is not positive", ErrInvalidGeometry, c.Radius)
	}
	return nil
}

func (rc Rectangle) validate() error {
	if !rc.Corner1.finite() || !rc.Corner2.finite() {
		return fmt.Errorf("%w: rectangle corners must be finite", ErrInvalidGeometry)
	}
	if rc.Corner1.X == rc.Corner2.X || rc.Corner1.Y == rc.Corner2.Y {
		return fmt.Errorf("%w: rectangle corners (%g, %g) and (%g, %g) are degenerate",
			ErrInvalidGeometry, rc.Corner1.X, rc.Corner1.Y, rc.Corner2.X, rc.Corner2.Y)
	}
	return nil
}

// EntitySet is an ordered collection of sketch entities. Entities are
// validated as they are added; a rejected entity leaves the set unchanged.
// Serialization preserves insertion order exactly, since the remote
// service's internal entity numbering depends on it.
type EntitySet struct {
	entities []SketchEntity
}

// Add validates e and appends it to the set.
func (s *EntitySet) Add(e SketchEntity) error {
	if err := e.validate(); err != nil {
		return err
	}
	s.entities = append(s.entities, e)
	return nil
}

// AddLine appends a line segment.
func (s *EntitySet) AddLine(start, end Point, construction bool) error {
	return s.Add(Line{Start: start, End: end, Construction: construction})
}

// AddCircle appends a circle.
func (s *EntitySet) AddCircle(center Point, radius float64, construction bool) error {
	return s.Add(Circle{Center: center, Radius: radius, Construction: construction})
}

// AddCircleParam appends a circle with a driving radius dimension,
// typically a variable reference.
func (s *EntitySet) AddCircleParam(center Point, radius float64, radiusParam Quantity, construction bool) error {
	return s.Add(Circle{Center: center, Radius: radius, RadiusParam: radiusParam, Construction: construction})
}

// AddRectangle appends a rectangle spanning two opposite corners.
func (s *EntitySet) AddRectangle(corner1, corner2 Point) error {
	return s.Add(Rectangle{Corner1: corner1, Corner2: corner2})
}

// AddRectangleParam appends a rectangle with driving width and height
// dimensions. A zero Quantity leaves that side undriven.
func (s *EntitySet) AddRectangleParam(corner1, corner2 Point, widthParam, heightParam Quantity) error {
	return s.Add(Rectangle{Corner1: corner1, Corner2: corner2, WidthParam: widthParam, HeightParam: heightParam})
}

// Len returns the number of entities in the set. A rectangle counts once
// even though it serializes as four segments.
func (s *EntitySet) Len() int { return len(s.entities) }

func (s *EntitySet) render() ([]entityRecord, []sketchConstraint) {
	r := &entityRenderer{}
	for _, e := range s.entities {
		e.render(r)
	}
	return r.entities, r.constraints
}

// entityRenderer accumulates wire records while walking an entity set,
// assigning sequential entity IDs.
type entityRenderer struct {
	seq         int
	entities    []entityRecord
	constraints []sketchConstraint
}

func (r *entityRenderer) nextID() string {
	r.seq++
	return fmt.Sprintf("e%d", r.seq)
}

func (l Line) render(r *entityRenderer) {
	id := r.nextID()
	r.entities = append(r.entities, segmentFor(id, l.Start, l.End, l.Construction))
}

func (c Circle) render(r *entityRenderer) {
	id := r.nextID()
	r.entities = append(r.entities, curveRecord{
		BTType:   btCurve,
		EntityID: id,
		Geometry: circleGeometry{
			BTType:  btCircleGeometry,
			Radius:  c.Radius * metersPerInch,
			XCenter: c.Center.X * metersPerInch,
			YCenter: c.Center.Y * metersPerInch,
			XDir:    1,
			YDir:    0,
		},
		IsConstruction: c.Construction,
	})
	if !c.RadiusParam.IsZero() {
		r.constraints = append(r.constraints, dimensionConstraint("RADIUS", "radius", id, c.RadiusParam))
	}
}

func (rc Rectangle) render(r *entityRenderer) {
	p1 := rc.Corner1
	p2 := Point{X: rc.Corner2.X, Y: rc.Corner1.Y}
	p3 := rc.Corner2
	p4 := Point{X: rc.Corner1.X, Y: rc.Corner2.Y}

	widthEdge := r.nextID()
	r.entities = append(r.entities, segmentFor(widthEdge, p1, p2, rc.Construction))
	heightEdge := r.nextID()
	r.entities = append(r.entities, segmentFor(heightEdge, p2, p3, rc.Construction))
	r.entities = append(r.entities, segmentFor(r.nextID(), p3, p4, rc.Construction))
	r.entities = append(r.entities, segmentFor(r.nextID(), p4, p1, rc.Construction))

	if !rc.WidthParam.IsZero() {
		r.constraints = append(r.constraints, dimensionConstraint("LENGTH", "length", widthEdge, rc.WidthParam))
	}
	if !rc.HeightParam.IsZero() {
		r.constraints = append(r.constraints, dimensionConstraint("LENGTH", "length", heightEdge, rc.HeightParam))
	}
}

func segmentFor(id string, start, end Point, construction bool) entityRecord {
	sx, sy := start.X*metersPerInch, start.Y*metersPerInch
	ex, ey := end.X*metersPerInch, end.Y*metersPerInch
	dx, dy := ex-sx, ey-sy
	length := math.Hypot(dx, dy)
	return segmentRecord{
		BTType:       btCurveSegment,
		EntityID:     id,
		StartPointID: id + ".start",
		EndPointID:   id + ".end",
		StartParam:   0,
		EndParam:     length,
		Geometry: lineGeometry{
			BTType: btLineGeometry,
			PntX:   sx,
			PntY:   sy,
			DirX:   dx / length,
			DirY:   dy / length,
		},
		IsConstruction: construction,
	}
}

// entityRecord is one serialized sketch entity.
type entityRecord interface {
	entityRecord()
}

type curveRecord struct {
	BTType         string         `json:"btType"`
	EntityID       string         `json:"entityId"`
	Geometry       circleGeometry `json:"geometry"`
	IsConstruction bool           `json:"isConstruction"`
}

type segmentRecord struct {
	BTType         string       `json:"btType"`
	EntityID       string       `json:"entityId"`
	StartPointID   string       `json:"startPointId"`
	EndPointID     string       `json:"endPointId"`
	StartParam     float64      `json:"startParam"`
	EndParam       float64      `json:"endParam"`
	Geometry       lineGeometry `json:"geometry"`
	IsConstruction bool         `json:"isConstruction"`
}

func (curveRecord) entityRecord()   {}
func (segmentRecord) entityRecord() {}

type circleGeometry struct {
	BTType    string  `json:"btType"`
	Radius    float64 `json:"radius"`
	XCenter   float64 `json:"xCenter"`
	YCenter   float64 `json:"yCenter"`
	XDir      float64 `json:"xDir"`
	YDir      float64 `json:"yDir"`
	Clockwise bool    `json:"clockwise"`
}

type lineGeometry struct {
	BTType string  `json:"btType"`
	PntX   float64 `json:"pntX"`
	PntY   float64 `json:"pntY"`
	DirX   float64 `json:"dirX"`
	DirY   float64 `json:"dirY"`
}

// sketchConstraint is a driving dimension attached to an entity, used to
// bind sketch geometry to variable-table expressions.
type sketchConstraint struct {
	BTType         string      `json:"btType"`
	ConstraintType string      `json:"constraintType"`
	Parameters     []parameter `json:"parameters"`
}

func dimensionConstraint(constraintType, quantityID, entityID string, q Quantity) sketchConstraint {
	return sketchConstraint{
		BTType:         btConstraint,
		ConstraintType: constraintType,
		Parameters: []parameter{
			stringParameter{BTType: btParamString, Value: entityID, ParameterID: "localFirst"},
			quantityParam(quantityID, q),
		},
	}
}
