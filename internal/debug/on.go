//go:build debug

package debug

// Enabled reports whether precondition checks are compiled in.
const Enabled = true
