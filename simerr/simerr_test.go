package simerr

import (
	"errors"
	"testing"
)

func TestGeometryOracleFailureUnwraps(t *testing.T) {
	inner := errors.New("boom")
	err := &GeometryOracleFailure{Op: "intersection", Err: inner}
	if !errors.Is(err, inner) {
		t.Errorf("expected errors.Is to find wrapped inner error")
	}
}

func TestToleranceRegressedMessage(t *testing.T) {
	err := &ToleranceRegressed{Previous: 500, Requested: 250}
	if got := err.Error(); got == "" {
		t.Errorf("expected non-empty error message")
	}
}
