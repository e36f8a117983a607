// Package enuminject provides a tiny, framework-free dependency injection
// mechanism built on compile-time code generation. It is *not* a container:
// there is no service graph, no lifetimes, and no reflection at runtime.
//
// # Overview
//
// Dependencies are modeled as a tagged union (a "model" type): a sealed
// interface whose variants are small structs, each carrying one payload.
// A data-holder struct declares which of its fields receive which variants,
// and the enuminject generator synthesizes the dispatch that routes a model
// value's payload into the matching field:
//
//	// Model is the tagged union listing everything that can be injected.
//	type Model interface{ isModel() }
//
//	type ModelName struct{ Value string }
//	type ModelAge  struct{ Value uint32 }
//
//	func (ModelName) isModel() {}
//	func (ModelAge) isModel()  {}
//
//	// View receives payloads from Model. The directive marks the struct as
//	// injectable and names its model type; inject tags bind each field to
//	// one variant.
//	//
//	//enuminject:model Model
//	type View struct {
//		Name enuminject.Injected[string] `inject:"Model.Name"`
//		Age  enuminject.Injected[uint32] `inject:"Model.Age"`
//	}
//
// Running the generator over the package produces an enuminject_gen.go file
// with a single Inject method per annotated struct:
//
//	go run github.com/enuminject/enuminject/cmd/enuminject ./...
//
// The generated method is a plain type switch, equivalent to hand-written
// dispatch, and realizes Injectable[Model] for the struct. It is the only
// place injected fields are assigned.
//
// # Injected fields
//
// Every bound field must be an Injected[T] cell. A cell starts empty and
// becomes populated the first time a matching model value is injected; later
// injections of the same variant overwrite the value. Reading an empty cell
// with Get panics with ErrNotInjected - a missing dependency is a programming
// error and fails loudly rather than producing a zero value.
//
// # Fan-out
//
// The Orchestrator connects producers of model values to any number of
// injectable targets. Registration is eager in both directions: a new
// producer is immediately invoked once for every known target, and a new
// target immediately receives every known producer's value. Producers are
// re-invoked on every later registration event, so they must tolerate being
// called once per (producer, target) pairing.
//
// # Diagnostics
//
// All annotation errors are reported at generation time: a malformed inject
// tag, the directive on a non-struct type, or fields bound to different
// enums all abort generation for the enclosing type with a position-prefixed
// diagnostic. Nothing is re-checked at runtime.
package enuminject
