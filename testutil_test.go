package enuminject

// ============================================================================
// Shared Test Types
// ============================================================================

// testModel is a tagged-union fixture with three variants, one of which is
// never bound to any field.
type testModel interface{ isTestModel() }

type testModelName struct{ Value string }

func (testModelName) isTestModel() {}

type testModelAge struct{ Value uint32 }

func (testModelAge) isTestModel() {}

type testModelUnbound struct{ Value bool }

func (testModelUnbound) isTestModel() {}

// testView mirrors a generated data-holder with two bindings. Its Inject
// method is byte-for-byte the dispatch shape the synthesizer emits.
type testView struct {
	Name Injected[string]
	Age  Injected[uint32]
}

func (t *testView) Inject(value testModel) {
	switch value := value.(type) {
	case testModelName:
		t.Name = From(value.Value)
	case testModelAge:
		t.Age = From(value.Value)
	default:
	}
}

var _ Injectable[testModel] = (*testView)(nil)

// testSingle mirrors a generated data-holder with a single binding.
type testSingle struct {
	Name Injected[string]
}

func (t *testSingle) Inject(value testModel) {
	switch value := value.(type) {
	case testModelName:
		t.Name = From(value.Value)
	default:
	}
}

var _ Injectable[testModel] = (*testSingle)(nil)
