package enuminject

import (
	"sync"

	"github.com/google/uuid"
)

// Producer creates one model value. Producers registered with an
// Orchestrator are invoked once per (producer, target) pairing over the
// orchestrator's lifetime - once for every target known when the producer is
// registered, and once more for every target registered afterwards. A
// producer must therefore be safe to call any number of times; treat it as a
// factory, not a one-shot initializer.
type Producer[E any] func() E

// Registration identifies one registered producer or target so it can later
// be removed with Unregister.
type Registration struct {
	id string
}

// ID returns the opaque identifier of the registration.
func (r Registration) ID() string { return r.id }

type producerEntry[E any] struct {
	id      string
	produce Producer[E]
}

type targetEntry[E any] struct {
	id     string
	target Injectable[E]
}

// Orchestrator fans model values out from producers to injectable targets.
//
// Registration is eager in both directions: RegisterProducer immediately
// invokes the new producer once for every known target, and RegisterTarget
// immediately invokes every known producer once against the new target.
// Producer results are never cached - late joiners always see a fresh value.
//
// All registration and fan-out runs under a single mutex, so targets are
// injected into by one goroutine at a time as long as every injection flows
// through the orchestrator.
type Orchestrator[E any] struct {
	mu        sync.Mutex
	producers []producerEntry[E]
	targets   []targetEntry[E]
}

// NewOrchestrator creates an empty Orchestrator for model type E.
//
// Example:
//
//	o := enuminject.NewOrchestrator[Model]()
//	o.RegisterProducer(func() Model { return ModelName{Value: "svc"} })
//	o.RegisterTarget(&view) // view.Name is populated here
func NewOrchestrator[E any]() *Orchestrator[E] {
	return &Orchestrator[E]{}
}

// RegisterProducer stores produce and synchronously invokes it once for
// every previously registered target. It returns a Registration that can be
// passed to Unregister, or ErrProducerNil when produce is nil.
func (o *Orchestrator[E]) RegisterProducer(produce Producer[E]) (Registration, error) {
	if produce == nil {
		return Registration{}, ErrProducerNil
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	entry := producerEntry[E]{id: uuid.NewString(), produce: produce}
	o.producers = append(o.producers, entry)

	// One fresh invocation per existing target, never a shared cached value.
	for _, t := range o.targets {
		t.target.Inject(produce())
	}

	return Registration{id: entry.id}, nil
}

// RegisterTarget stores target and synchronously invokes every previously
// registered producer once against it, so late-joining targets receive all
// current values without an explicit call. It returns a Registration that
// can be passed to Unregister, or ErrTargetNil when target is nil.
func (o *Orchestrator[E]) RegisterTarget(target Injectable[E]) (Registration, error) {
	if target == nil {
		return Registration{}, ErrTargetNil
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	entry := targetEntry[E]{id: uuid.NewString(), target: target}
	o.targets = append(o.targets, entry)

	for _, p := range o.producers {
		target.Inject(p.produce())
	}

	return Registration{id: entry.id}, nil
}

// Unregister removes the producer or target identified by r. Removed entries
// take no part in later fan-out. It reports whether anything was removed.
func (o *Orchestrator[E]) Unregister(r Registration) bool {
	if r.id == "" {
		return false
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	for i, p := range o.producers {
		if p.id == r.id {
			o.producers = append(o.producers[:i], o.producers[i+1:]...)
			return true
		}
	}
	for i, t := range o.targets {
		if t.id == r.id {
			o.targets = append(o.targets[:i], o.targets[i+1:]...)
			return true
		}
	}
	return false
}

// Producers returns the number of registered producers.
func (o *Orchestrator[E]) Producers() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.producers)
}

// Targets returns the number of registered targets.
func (o *Orchestrator[E]) Targets() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.targets)
}
