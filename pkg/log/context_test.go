package log

import (
	"context"
	"testing"
)

func TestContext_RoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	ctx = WithUserID(ctx, "user-1")

	if got := RequestIDFromContext(ctx); got != "req-1" {
		t.Errorf("RequestIDFromContext = %q", got)
	}
	if got := UserIDFromContext(ctx); got != "user-1" {
		t.Errorf("UserIDFromContext = %q", got)
	}
}

func TestContext_NilAndEmpty(t *testing.T) {
	//nolint:staticcheck // nil context is accepted on purpose
	if RequestIDFromContext(nil) != "" || UserIDFromContext(nil) != "" || FieldsFromContext(nil) != nil {
		t.Error("nil context should yield zero values")
	}
	if RequestIDFromContext(context.Background()) != "" {
		t.Error("empty context should yield no request id")
	}
}

func TestWithFields_AccumulatesWithoutMutatingParent(t *testing.T) {
	parent := WithFields(context.Background(), "a", 1)
	child := WithFields(parent, "b", 2, "a", 3)

	if got := FieldsFromContext(parent); len(got) != 1 || got["a"] != 1 {
		t.Errorf("parent fields changed: %v", got)
	}
	got := FieldsFromContext(child)
	if got["a"] != 3 || got["b"] != 2 {
		t.Errorf("child fields = %v", got)
	}
}
