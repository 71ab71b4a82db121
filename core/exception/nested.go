package exception

import "reflect"

// maxChainDepth bounds cause-chain walks.
const maxChainDepth = 64

// NestedError is returned when rendering the fallback response for Cause
// failed with Err. It reads like Err and unwraps to both errors, Err first,
// so errors.Is and errors.As see the secondary failure before the original.
type NestedError struct {
	Err   error
	Cause error
}

func (e *NestedError) Error() string {
	return e.Err.Error()
}

func (e *NestedError) Unwrap() []error {
	return []error{e.Err, e.Cause}
}

// Chain returns err and every error reachable through Unwrap, depth first.
func Chain(err error) []error {
	var out []error
	var walk func(error, int)
	walk = func(e error, depth int) {
		if e == nil || depth > maxChainDepth {
			return
		}
		out = append(out, e)
		for _, c := range causes(e) {
			walk(c, depth+1)
		}
	}
	walk(err, 0)
	return out
}

func causes(err error) []error {
	switch u := err.(type) {
	case interface{ Unwrap() []error }:
		return u.Unwrap()
	case interface{ Unwrap() error }:
		if c := u.Unwrap(); c != nil {
			return []error{c}
		}
	}
	return nil
}

// chainContains reports whether target itself (not merely an equivalent error
// in the errors.Is sense) appears in the chain of err.
func chainContains(err, target error) bool {
	for _, e := range Chain(err) {
		if sameError(e, target) {
			return true
		}
	}
	return false
}

// sameError compares by identity for comparable errors (pointers, plain
// values) and by deep equality for error values that cannot be compared,
// including structs whose interface fields hold slices or maps.
func sameError(a, b error) bool {
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	if reflect.ValueOf(a).Comparable() && reflect.ValueOf(b).Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}
