package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestFitFuelError_Error(t *testing.T) {
	plain := New(CodeValidationError, "days_per_week is required")
	if got := plain.Error(); got != "[VALIDATION_ERROR] days_per_week is required" {
		t.Errorf("unexpected message %q", got)
	}

	wrapped := Wrap(fmt.Errorf("connection refused"), CodeCatalogUnavailable, "cannot reach catalog")
	if got := wrapped.Error(); got != "[CATALOG_UNAVAILABLE] cannot reach catalog: connection refused" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestErrorsIs(t *testing.T) {
	cause := fmt.Errorf("rpc error: NotFound")
	err := fmt.Errorf("load plan: %w", ErrPlanNotFound.WithCause(cause).WithMetadata("plan_id", "p1"))

	if !stderrors.Is(err, ErrPlanNotFound) {
		t.Error("expected wrapped sentinel to match by code")
	}
	if stderrors.Is(err, ErrPlanInvalid) {
		t.Error("expected different code not to match")
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected cause to be reachable through Unwrap")
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", fmt.Errorf("boom"), false},
		{"retryable", NewRetryable(CodeStorageError, "write failed"), true},
		{"non-retryable", New(CodeValidationError, "bad input"), false},
		{"wrapped retryable", fmt.Errorf("ctx: %w", WrapRetryable(fmt.Errorf("x"), CodePubSubError, "publish")), true},
		{"sentinel", ErrCatalogUnavailable, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(nil); got != "" {
		t.Errorf("expected empty code for nil, got %q", got)
	}
	if got := GetCode(fmt.Errorf("boom")); got != CodeInternalError {
		t.Errorf("expected internal code for plain error, got %q", got)
	}
	if got := GetCode(fmt.Errorf("wrap: %w", ErrPlanInvalid)); got != CodePlanInvalid {
		t.Errorf("expected plan invalid, got %q", got)
	}
}

func TestWithMetadata_DoesNotMutateSentinel(t *testing.T) {
	_ = ErrPlanNotFound.WithMetadata("plan_id", "p1")
	if len(ErrPlanNotFound.Metadata) != 0 {
		t.Errorf("sentinel metadata mutated: %v", ErrPlanNotFound.Metadata)
	}

	e := New(CodeStorageError, "a").WithMetadata("k1", "v1").WithMetadata("k2", "v2")
	if e.Metadata["k1"] != "v1" || e.Metadata["k2"] != "v2" {
		t.Errorf("expected accumulated metadata, got %v", e.Metadata)
	}
	if e.WithMessage("b").Message != "b" {
		t.Error("WithMessage did not apply")
	}
}
