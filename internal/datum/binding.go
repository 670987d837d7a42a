package datum

// Binding pairs a fact type with the function that produces it.
type Binding struct {
	// Type is the fact type the function produces.
	Type Type

	// Supply computes the fact. It may call Registry.Get for its inputs.
	Supply func() (Datum, error)
}

// Bind creates a Binding for T from a typed compute function.
func Bind[T Datum](fn func() (T, error)) Binding {
	return Binding{
		Type: TypeOf[T](),
		Supply: func() (Datum, error) {
			v, err := fn()
			if err != nil {
				return nil, err
			}
			return v, nil
		},
	}
}

// BindMemoized is Bind(Memoize(fn)).
func BindMemoized[T Datum](fn func() (T, error)) Binding {
	return Bind(Memoize(fn))
}
