package providers

import (
	"fmt"
	"strings"
	"testing"
)

func TestStatusErrorString(t *testing.T) {
	err := &StatusError{Provider: "fpl", StatusCode: 503, Body: "maintenance"}
	if got := err.Error(); !strings.Contains(got, "503") || !strings.Contains(got, "maintenance") {
		t.Fatalf("expected status and body in error string, got %q", got)
	}
	if got := (&StatusError{Provider: "fpl", StatusCode: 404}).Error(); got != "fpl: unexpected status 404" {
		t.Fatalf("unexpected error string %q", got)
	}
}

func TestAsStatusErrorUnwraps(t *testing.T) {
	wrapped := fmt.Errorf("refresh: %w", &StatusError{Provider: "fpl", StatusCode: 500})
	se, ok := AsStatusError(wrapped)
	if !ok || se.StatusCode != 500 {
		t.Fatalf("expected to unwrap status error, got %+v", se)
	}
	if _, ok := AsStatusError(fmt.Errorf("plain")); ok {
		t.Fatal("expected plain error not to unwrap")
	}
}
