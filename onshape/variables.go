package onshape

import (
	"context"
)

// VariableTypeLength is the variable-table type used when a caller does
// not pick one; dimensioned expressions like "0.75 in" live under it.
const VariableTypeLength = "LENGTH"

// Variable is one entry in a part studio variable table.
type Variable struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Expression  string `json:"expression"`
	Description string `json:"description,omitempty"`
}

// Variables binds the variable-table endpoints.
type Variables struct {
	client *Client
}

// NewVariables builds a Variables binding on an authenticated client.
func NewVariables(c *Client) *Variables {
	return &Variables{client: c}
}

// List returns every variable in the studio's table. The service nests
// entries one level under per-table records; the listing is flattened.
func (v *Variables) List(ctx context.Context, ref StudioRef) ([]Variable, error) {
	var tables []struct {
		Variables []Variable `json:"variables"`
	}
	if err := v.client.Get(ctx, ref.path("variables")+"/variables", nil, &tables); err != nil {
		return nil, err
	}
	var variables []Variable
	for _, table := range tables {
		variables = append(variables, table.Variables...)
	}
	return variables, nil
}

// Set creates or updates one variable. An empty Type defaults to LENGTH.
func (v *Variables) Set(ctx context.Context, ref StudioRef, variable Variable) error {
	if variable.Type == "" {
		variable.Type = VariableTypeLength
	}
	return v.client.Post(ctx, ref.path("variables")+"/variables", []Variable{variable}, nil)
}
