//go:build !release

package assert

import (
	"testing"

	"github.com/oomph-ac/gravctl/oerror"
)

func TestIsTruePanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected IsTrue(false) to panic")
		}
		err, ok := r.(*oerror.Error)
		if !ok {
			t.Fatalf("expected *oerror.Error, got %T", r)
		}
		if err.Error() != "bad value 3" {
			t.Fatalf("unexpected message %q", err.Error())
		}
	}()
	IsTrue(false, "bad value %d", 3)
}

func TestIsTrueNoPanic(t *testing.T) {
	IsTrue(true, "never")
}
