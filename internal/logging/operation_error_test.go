package logging

import (
	"errors"
	"testing"
)

func TestNewOperationError_NilPassthrough(t *testing.T) {
	if err := NewOperationError("op", "req-1", nil); err != nil {
		t.Errorf("expected nil for nil cause, got %v", err)
	}
}

func TestOperationError_Message(t *testing.T) {
	cause := errors.New("boom")

	err := NewOperationError("catalog.load", "req-1", cause)
	want := "catalog.load (request_id=req-1): boom"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}

	bare := NewOperationError("catalog.load", "", cause)
	if bare.Error() != "catalog.load: boom" {
		t.Errorf("expected message without request id, got %q", bare.Error())
	}
}

func TestOperationError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := NewOperationError("catalog.load", "req-1", cause)

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to reach the wrapped cause")
	}

	var opErr *OperationError
	if !errors.As(err, &opErr) {
		t.Fatal("expected errors.As to find OperationError")
	}
	if opErr.Operation != "catalog.load" {
		t.Errorf("expected operation catalog.load, got %q", opErr.Operation)
	}
}
