package reconcile

import (
	"errors"
	"strings"
	"testing"
)

func TestOutcome(t *testing.T) {
	t.Run("Completed", func(t *testing.T) {
		out := Outcome{Path: "/sync"}
		if !out.Completed() || out.PartiallyFailed() {
			t.Error("empty outcome should be completed")
		}
		if out.Err() != nil {
			t.Errorf("Err() = %v, want nil", out.Err())
		}
	})

	t.Run("AbsorbsChildFailures", func(t *testing.T) {
		errDenied := errors.New("access denied")

		child := Outcome{Path: "/sync/a"}
		child.fail("/sync/a/b", errDenied)

		parent := Outcome{Path: "/sync"}
		parent.absorb(child)
		parent.absorb(Outcome{Path: "/sync/c"})

		if !parent.PartiallyFailed() {
			t.Fatal("parent should be partially failed")
		}
		if len(parent.Failures) != 1 {
			t.Fatalf("Failures = %d, want 1", len(parent.Failures))
		}

		err := parent.Err()
		if !errors.Is(err, errDenied) {
			t.Errorf("Err() should wrap the branch error, got %v", err)
		}
		if !strings.Contains(err.Error(), "/sync/a/b: access denied") {
			t.Errorf("Err() = %q, want the failed path", err.Error())
		}
	})
}
