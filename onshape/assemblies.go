package onshape

import (
	"context"
)

// AssemblyInstance is one instance in an assembly's root tree.
type AssemblyInstance struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	PartID     string `json:"partId"`
	Suppressed bool   `json:"suppressed"`
}

// Assembly is the definition summary of an assembly element.
type Assembly struct {
	Instances []AssemblyInstance
}

// Assemblies binds the assembly definition endpoint.
type Assemblies struct {
	client *Client
}

// NewAssemblies builds an Assemblies binding on an authenticated client.
func NewAssemblies(c *Client) *Assemblies {
	return &Assemblies{client: c}
}

// Definition fetches the root-assembly instance list of an assembly
// element.
func (a *Assemblies) Definition(ctx context.Context, ref StudioRef) (Assembly, error) {
	var resp struct {
		RootAssembly struct {
			Instances []AssemblyInstance `json:"instances"`
		} `json:"rootAssembly"`
	}
	if err := a.client.Get(ctx, ref.path("assemblies"), nil, &resp); err != nil {
		return Assembly{}, err
	}
	return Assembly{Instances: resp.RootAssembly.Instances}, nil
}
