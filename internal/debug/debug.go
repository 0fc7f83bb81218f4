// Package debug holds precondition checks that are compiled in only for
// builds tagged "debug". A failed check is a programmer error and panics.
package debug

// Assert panics with msg when checks are enabled and cond is false.
func Assert(cond bool, msg string) {
	if Enabled && !cond {
		panic(msg)
	}
}
