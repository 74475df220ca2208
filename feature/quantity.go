package feature

import "strconv"

// Unit is the dimension token a literal quantity renders with.
type Unit string

const (
	UnitInch   Unit = "in"
	UnitDegree Unit = "deg"
	UnitNone   Unit = ""
)

// Quantity is a dimensioned parameter value: a literal magnitude with a
// unit, optionally overridden by a reference to a named variable in the
// part studio's variable table.
//
// When a variable name is set it wins for the serialized expression
// ("#name"); the literal magnitude is still carried for the numeric value
// field the feature schema requires. Quantities are immutable; WithVariable
// returns a derived copy.
type Quantity struct {
	value    float64
	unit     Unit
	variable string
	integer  bool
}

// Inches returns a linear quantity in inches.
func Inches(v float64) Quantity {
	return Quantity{value: v, unit: UnitInch}
}

// Degrees returns an angular quantity in degrees.
func Degrees(v float64) Quantity {
	return Quantity{value: v, unit: UnitDegree}
}

// Scalar returns a dimensionless quantity.
func Scalar(v float64) Quantity {
	return Quantity{value: v, unit: UnitNone}
}

// Count returns a dimensionless integer-typed quantity.
func Count(n int) Quantity {
	return Quantity{value: float64(n), unit: UnitNone, integer: true}
}

// Variable returns a quantity that is purely a reference to a named
// variable, with no advisory literal.
func Variable(name string) Quantity {
	return Quantity{variable: name}
}

// WithVariable returns a copy of q that serializes as a reference to the
// named variable. An empty name returns q unchanged.
func (q Quantity) WithVariable(name string) Quantity {
	if name == "" {
		return q
	}
	q.variable = name
	return q
}

// IsVariable reports whether the quantity serializes as a variable
// reference.
func (q Quantity) IsVariable() bool { return q.variable != "" }

// IsZero reports whether q is the zero Quantity. Optional quantity fields
// treat the zero value as absent.
func (q Quantity) IsZero() bool { return q == Quantity{} }

// Value returns the literal magnitude.
func (q Quantity) Value() float64 { return q.value }

// Unit returns the dimension token.
func (q Quantity) Unit() Unit { return q.unit }

// VariableName returns the referenced variable name, or "".
func (q Quantity) VariableName() string { return q.variable }

// Expression returns the display expression the feature schema stores
// alongside the numeric value: "#name" for variable references, otherwise
// the literal with its unit token ("0.7874 in").
func (q Quantity) Expression() string {
	if q.variable != "" {
		return "#" + q.variable
	}
	s := formatValue(q.value)
	if q.unit == UnitNone {
		return s
	}
	return s + " " + string(q.unit)
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
