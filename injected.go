package enuminject

// Injected is an optional-value cell for a single injectable field. The zero
// value is an empty cell; From produces a populated one. Generated Inject
// methods are the intended writers - a data-holder's injectable state changes
// only through that one code path.
//
// Injected is a plain value with no internal synchronization. If the same
// data-holder is injected into from multiple goroutines, the owner must
// serialize access.
type Injected[T any] struct {
	value    T
	injected bool
}

// From returns a populated cell holding value.
func From[T any](value T) Injected[T] {
	return Injected[T]{value: value, injected: true}
}

// IsInjected reports whether the cell has been populated.
func (i Injected[T]) IsInjected() bool {
	return i.injected
}

// Get returns the injected value. It panics with ErrNotInjected when the
// cell is empty: silently returning a zero value would hide a missing
// dependency.
func (i Injected[T]) Get() T {
	if !i.injected {
		panic(ErrNotInjected)
	}
	return i.value
}

// TryGet returns the injected value and whether the cell was populated. The
// returned value is the zero value of T when the cell is empty.
func (i Injected[T]) TryGet() (T, bool) {
	return i.value, i.injected
}
