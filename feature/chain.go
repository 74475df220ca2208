package feature

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// Gateway submits one serialized feature to the remote service and
// returns the feature ID the service assigned. The onshape package's
// PartStudio is the production implementation. The core never retries;
// retry policy, if any, belongs to the transport.
type Gateway interface {
	SubmitFeature(ctx context.Context, def *Definition) (string, error)
}

// CounterboreSpec describes a stepped hole: concentric circles of
// decreasing radius cut to increasing cumulative depth. Radii and depths
// are in inches, paired by index; depths are cumulative from the sketch
// plane.
type CounterboreSpec struct {
	NamePrefix string
	Center     Point
	Radii      []float64
	Depths     []float64
	Plane      Plane
	PlaneID    string
}

// ChainStep is one planned sketch+extrude pair of a chain.
type ChainStep struct {
	Radius  float64
	Depth   float64
	Sketch  Sketch
	Extrude Extrude
}

// ChainPlan is a validated, ordered sequence of chain steps. Plans are
// inert: nothing is submitted until a Resolver walks them.
type ChainPlan struct {
	steps []ChainStep
}

// Steps exposes the planned steps in submission order.
func (p *ChainPlan) Steps() []ChainStep { return p.steps }

// Len returns the number of steps.
func (p *ChainPlan) Len() int { return len(p.steps) }

// PlanCounterbore validates a counterbore spec and lays out its chain.
// Steps are ordered by descending radius regardless of input order: the
// widest, shallowest cut must land first because each later cut removes
// material already exposed by the previous one. Equal radii keep their
// input order. Each step's extrude references its sketch through a
// pending SketchRef that Resolve rebinds once the sketch's real ID is
// known.
//
// All validation happens here, before any submission: a rejected spec
// costs zero gateway calls.
func PlanCounterbore(spec CounterboreSpec) (*ChainPlan, error) {
	if len(spec.Radii) != len(spec.Depths) {
		return nil, fmt.Errorf("%w: %d radii but %d depths", ErrInvalidChainSpec, len(spec.Radii), len(spec.Depths))
	}
	if len(spec.Radii) < 2 {
		return nil, fmt.Errorf("%w: counterbore needs at least 2 steps, got %d", ErrInvalidChainSpec, len(spec.Radii))
	}
	if spec.PlaneID == "" {
		return nil, fmt.Errorf("%w: counterbore has no resolved plane id", ErrIncompleteDescriptor)
	}
	prefix := spec.NamePrefix
	if prefix == "" {
		prefix = "Step"
	}

	steps := make([]ChainStep, len(spec.Radii))
	for i := range spec.Radii {
		steps[i] = ChainStep{Radius: spec.Radii[i], Depth: spec.Depths[i]}
	}
	sort.SliceStable(steps, func(a, b int) bool { return steps[a].Radius > steps[b].Radius })

	for i := range steps {
		sketch := Sketch{
			Name:    fmt.Sprintf("%s Sketch %d", prefix, i+1),
			Plane:   spec.Plane,
			PlaneID: spec.PlaneID,
		}
		if err := sketch.Entities.AddCircle(spec.Center, steps[i].Radius, false); err != nil {
			return nil, err
		}
		steps[i].Sketch = sketch
		steps[i].Extrude = Extrude{
			Name:      fmt.Sprintf("%s %d", prefix, i+1),
			Sketch:    PendingSketch(i),
			Depth:     Inches(steps[i].Depth),
			Operation: OpRemove,
		}
	}
	return &ChainPlan{steps: steps}, nil
}

// ChainResult reports a chain resolution. FeatureIDs holds every created
// feature in emission order (sketch, extrude, sketch, extrude, ...). On
// failure it holds the features created before the abort; those already
// exist remotely and are the caller's to reconcile, since the service has
// no transactional multi-feature commit and the resolver performs no
// rollback.
type ChainResult struct {
	FeatureIDs []string
	SketchIDs  []string
	ExtrudeIDs []string
}

// ChainStage names the submission within a step that a chain aborted on.
type ChainStage string

const (
	StageSketch  ChainStage = "sketch"
	StageExtrude ChainStage = "extrude"
)

// ChainError reports where a chain aborted and why. Created lists the
// feature IDs submitted before the abort; those features exist remotely
// and are the caller's to reconcile.
type ChainError struct {
	Step    int
	Stage   ChainStage
	Created []string
	Err     error
}

func (e *ChainError) Error() string {
	return fmt.Sprintf("chain step %d: %s submission failed: %v", e.Step+1, e.Stage, e.Err)
}

func (e *ChainError) Unwrap() error { return e.Err }

// ErrorCode classifies the underlying cause.
func (e *ChainError) ErrorCode() string { return ErrorCode(e.Err) }

// Resolver submits planned chains through a Gateway. Steps are strictly
// sequential and each submission blocks on its result: a step's extrude
// cannot be built until its sketch's ID is known, and the next step's cut
// depends on the solid state the previous one left behind.
type Resolver struct {
	gateway Gateway
}

// NewResolver returns a Resolver submitting through the given gateway.
func NewResolver(gateway Gateway) *Resolver {
	return &Resolver{gateway: gateway}
}

// Resolve walks the plan in order. For each step it submits the sketch,
// rebinds the step's pending sketch reference to the returned ID, then
// builds and submits the extrude. On any failure, including context
// cancellation, it stops immediately and returns the partial result
// alongside a *ChainError; already-created features are never rolled
// back. The plan itself is not mutated and stays reusable.
func (r *Resolver) Resolve(ctx context.Context, plan *ChainPlan) (ChainResult, error) {
	var result ChainResult
	chainStart := time.Now()

	for i := range plan.steps {
		step := &plan.steps[i]
		stepStart := time.Now()
		obs := ChainStepObservation{Step: i, Radius: step.Radius, Depth: step.Depth}

		if err := ctx.Err(); err != nil {
			return r.abort(result, chainStart, stepStart, plan.Len(), obs, &ChainError{Step: i, Stage: StageSketch, Err: err})
		}

		sketchDef, err := step.Sketch.Build()
		if err != nil {
			return r.abort(result, chainStart, stepStart, plan.Len(), obs, &ChainError{Step: i, Stage: StageSketch, Err: err})
		}
		sketchID, err := r.gateway.SubmitFeature(ctx, sketchDef)
		if err != nil {
			return r.abort(result, chainStart, stepStart, plan.Len(), obs, &ChainError{Step: i, Stage: StageSketch, Err: err})
		}
		result.FeatureIDs = append(result.FeatureIDs, sketchID)
		result.SketchIDs = append(result.SketchIDs, sketchID)
		obs.SketchID = sketchID

		extrude := step.Extrude
		extrude.Sketch = SketchID(sketchID)
		extrudeDef, err := extrude.Build()
		if err != nil {
			return r.abort(result, chainStart, stepStart, plan.Len(), obs, &ChainError{Step: i, Stage: StageExtrude, Err: err})
		}
		extrudeID, err := r.gateway.SubmitFeature(ctx, extrudeDef)
		if err != nil {
			return r.abort(result, chainStart, stepStart, plan.Len(), obs, &ChainError{Step: i, Stage: StageExtrude, Err: err})
		}
		result.FeatureIDs = append(result.FeatureIDs, extrudeID)
		result.ExtrudeIDs = append(result.ExtrudeIDs, extrudeID)
		obs.ExtrudeID = extrudeID

		obs.DurationMS = time.Since(stepStart).Milliseconds()
		obs.Success = true
		emitChainStepObservation(obs)
	}

	emitChainObservation(ChainObservation{
		Steps:           plan.Len(),
		FeaturesCreated: len(result.FeatureIDs),
		DurationMS:      time.Since(chainStart).Milliseconds(),
		Success:         true,
	})
	return result, nil
}

func (r *Resolver) abort(result ChainResult, chainStart, stepStart time.Time, steps int, obs ChainStepObservation, cerr *ChainError) (ChainResult, error) {
	cerr.Created = append([]string(nil), result.FeatureIDs...)
	code := ErrorCode(cerr)
	obs.DurationMS = time.Since(stepStart).Milliseconds()
	obs.Success = false
	obs.ErrorCode = code
	emitChainStepObservation(obs)
	emitChainObservation(ChainObservation{
		Steps:           steps,
		FeaturesCreated: len(result.FeatureIDs),
		DurationMS:      time.Since(chainStart).Milliseconds(),
		Success:         false,
		ErrorCode:       code,
	})
	return result, cerr
}
