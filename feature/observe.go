package feature

import "sync"

// ChainStepObservation captures one resolved chain step: the sketch and
// extrude submissions for a single counterbore diameter.
type ChainStepObservation struct {
	Step       int
	Radius     float64
	Depth      float64
	SketchID   string
	ExtrudeID  string
	DurationMS int64
	Success    bool
	ErrorCode  string
}

// ChainObservation captures one whole chain resolution.
type ChainObservation struct {
	Steps           int
	FeaturesCreated int
	DurationMS      int64
	Success         bool
	ErrorCode       string
}

// Observer receives chain resolution observability events.
type Observer interface {
	ObserveChainStep(observation ChainStepObservation)
	ObserveChain(observation ChainObservation)
}

type noopObserver struct{}

func (noopObserver) ObserveChainStep(ChainStepObservation) {}
func (noopObserver) ObserveChain(ChainObservation)         {}

var (
	observerMu     sync.RWMutex
	activeObserver Observer = noopObserver{}
)

// SetObserver sets the process-wide chain observability observer.
func SetObserver(observer Observer) {
	observerMu.Lock()
	defer observerMu.Unlock()
	if observer == nil {
		activeObserver = noopObserver{}
		return
	}
	activeObserver = observer
}

func emitChainStepObservation(observation ChainStepObservation) {
	observerMu.RLock()
	observer := activeObserver
	observerMu.RUnlock()
	observer.ObserveChainStep(observation)
}

func emitChainObservation(observation ChainObservation) {
	observerMu.RLock()
	observer := activeObserver
	observerMu.RUnlock()
	observer.ObserveChain(observation)
}
