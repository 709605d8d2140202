package survey

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestKindOf(t *testing.T) {
	if got := KindOf(errf(KindForbidden, "nope")); got != KindForbidden {
		t.Errorf("KindOf = %v, want forbidden", got)
	}
	if got := KindOf(fmt.Errorf("wrapped: %w", errf(KindNotFound, "gone"))); got != KindNotFound {
		t.Errorf("KindOf through wrap = %v, want not_found", got)
	}
	if got := KindOf(errors.New("plain")); got != KindInternal {
		t.Errorf("KindOf plain error = %v, want internal", got)
	}
}

func TestInternalCauseNeverLeaks(t *testing.T) {
	cause := errors.New("pq: connection refused on 10.0.0.5")
	err := internalErr(cause)

	if msg := PublicMessage(err); strings.Contains(msg, "10.0.0.5") {
		t.Fatalf("public message leaks cause: %q", msg)
	}
	if !errors.Is(err, cause) {
		t.Error("cause should stay reachable for server-side logs")
	}
}
