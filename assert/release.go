//go:build release

package assert

// Enabled is true when assertions panic on failure.
const Enabled = false
