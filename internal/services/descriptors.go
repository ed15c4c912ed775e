package services

// Shape is the argument schema variant governing how raw call arguments are
// normalized into a JSON request body.
type Shape int

const (
	// Binary requires two floating-point fields, "a" and "b" unless the
	// descriptor names others.
	Binary Shape = iota
	// IntPair requires integer fields "a" and "b".
	IntPair
	// IntScalar requires a single integer field "n".
	IntScalar
	// Values takes an optional list of numbers plus verbatim extras.
	Values
	// Window takes a list of numbers and a required integer "window".
	Window
)

// Descriptor declares one operation: its registry name, the upstream
// endpoint it forwards to, and the shape of its arguments. Descriptors are
// immutable and fixed at startup.
type Descriptor struct {
	Name     string
	Endpoint string
	Shape    Shape
	// Fields overrides the two required field names of a Binary operation.
	Fields []string
	// Extra lists optional fields copied through verbatim when present.
	Extra []string
}

// Catalog lists every operation the bridge exposes.
func Catalog() []Descriptor {
	return []Descriptor{
		{Name: "add", Endpoint: "/math/add", Shape: Binary},
		{Name: "subtract", Endpoint: "/math/subtract", Shape: Binary},
		{Name: "multiply", Endpoint: "/math/multiply", Shape: Binary},
		{Name: "divide", Endpoint: "/math/divide", Shape: Binary},
		{Name: "power", Endpoint: "/math/power", Shape: Binary, Fields: []string{"base", "exponent"}},
		{Name: "mean", Endpoint: "/math/mean", Shape: Values},
		{Name: "median", Endpoint: "/math/median", Shape: Values},
		{Name: "std", Endpoint: "/math/std", Shape: Values, Extra: []string{"sample"}},
		{Name: "gcd", Endpoint: "/algorithms/gcd", Shape: IntPair},
		{Name: "lcm", Endpoint: "/algorithms/lcm", Shape: IntPair},
		{Name: "is_prime", Endpoint: "/algorithms/is_prime", Shape: IntScalar},
		{Name: "prime_factors", Endpoint: "/algorithms/prime_factors", Shape: IntScalar},
		{Name: "fibonacci", Endpoint: "/algorithms/fibonacci", Shape: IntScalar},
		{Name: "sort", Endpoint: "/algorithms/sort", Shape: Values, Extra: []string{"reverse"}},
		{Name: "moving_average", Endpoint: "/algorithms/moving_average", Shape: Window},
		{Name: "rolling_min", Endpoint: "/algorithms/rolling_min", Shape: Window},
		{Name: "rolling_max", Endpoint: "/algorithms/rolling_max", Shape: Window},
	}
}
