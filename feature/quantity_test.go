package feature

import "testing"

func TestQuantity_Expression(t *testing.T) {
	tests := []struct {
		name string
		q    Quantity
		want string
	}{
		{"inches literal", Inches(0.7874), "0.7874 in"},
		{"degrees literal", Degrees(45), "45 deg"},
		{"scalar literal", Scalar(2.5), "2.5"},
		{"count", Count(24), "24"},
		{"variable wins over literal", Inches(5).WithVariable("hole_radius"), "#hole_radius"},
		{"pure variable", Variable("depth"), "#depth"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.q.Expression(); got != tt.want {
				t.Errorf("Expression() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestQuantity_VariableKeepsLiteral(t *testing.T) {
	q := Inches(0.25).WithVariable("bore")
	if !q.IsVariable() {
		t.Fatal("IsVariable() = false, want true")
	}
	if q.Value() != 0.25 {
		t.Errorf("Value() = %g, want 0.25", q.Value())
	}
	if q.VariableName() != "bore" {
		t.Errorf("VariableName() = %q, want %q", q.VariableName(), "bore")
	}
}

func TestQuantity_WithVariableCopies(t *testing.T) {
	base := Inches(1)
	derived := base.WithVariable("w")
	if base.IsVariable() {
		t.Error("base quantity mutated by WithVariable")
	}
	if !derived.IsVariable() {
		t.Error("derived quantity lost its variable")
	}
	if same := base.WithVariable(""); same != base {
		t.Errorf("WithVariable(\"\") = %+v, want unchanged", same)
	}
}

func TestQuantity_IsZero(t *testing.T) {
	var zero Quantity
	if !zero.IsZero() {
		t.Error("zero Quantity IsZero() = false")
	}
	if Inches(0).IsZero() {
		t.Error("Inches(0).IsZero() = true, want false")
	}
	if Variable("x").IsZero() {
		t.Error("Variable(\"x\").IsZero() = true, want false")
	}
}
