package assert

import "github.com/oomph-ac/gravctl/oerror"

// IsTrue panics with the formatted message if ok is false. Builds with the release tag
// compile the check out, see Enabled.
func IsTrue(ok bool, message string, args ...interface{}) {
	if Enabled && !ok {
		panic(oerror.New(message, args...))
	}
}
