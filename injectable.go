package enuminject

// Injectable is the capability realized by generated code for every
// annotated data-holder: accept one value of the model type E and route its
// payload into the matching injected field, if any. Injecting a variant no
// field is bound to is a legal no-op.
//
// Implementations are generated on pointer receivers, so the data-holder
// itself is passed by pointer wherever an Injectable[E] is expected.
type Injectable[E any] interface {
	Inject(value E)
}
