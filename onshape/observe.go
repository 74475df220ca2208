package onshape

import "sync"

// RequestObservation captures one REST request outcome.
type RequestObservation struct {
	Method     string
	Path       string
	Status     int
	DurationMS int64
	Success    bool
	ErrorCode  string
}

// Observer receives API-level observability events.
type Observer interface {
	ObserveRequest(observation RequestObservation)
}

type noopObserver struct{}

func (noopObserver) ObserveRequest(RequestObservation) {}

var (
	observerMu     sync.RWMutex
	activeObserver Observer = noopObserver{}
)

// SetObserver sets the process-wide API observability observer.
func SetObserver(observer Observer) {
	observerMu.Lock()
	defer observerMu.Unlock()
	if observer == nil {
		activeObserver = noopObserver{}
		return
	}
	activeObserver = observer
}

func emitRequestObservation(observation RequestObservation) {
	observerMu.RLock()
	observer := activeObserver
	observerMu.RUnlock()
	observer.ObserveRequest(observation)
}
