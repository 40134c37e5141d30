package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestChoreoErrorString(t *testing.T) {
	err := New("test.operation", KindSequence, "", errors.New("boom"))
	got := err.Error()
	if got == "" {
		t.Error("expected non-empty error string")
	}
	if !strings.Contains(got, "[sequence]") {
		t.Errorf("error string %q should contain kind", got)
	}
}

func TestChoreoErrorWithSequence(t *testing.T) {
	err := New("test.operation", KindSequence, "entrance_home", errors.New("boom"))
	got := err.Error()
	want := "sequence=entrance_home"
	if !strings.Contains(got, want) {
		t.Errorf("error string %q should contain %q", got, want)
	}
}

func TestChoreoErrorUnwrap(t *testing.T) {
	inner := errors.New("inner")
	err := New("op", KindConfig, "", inner)
	if !errors.Is(err, inner) {
		t.Error("expected errors.Is to find the wrapped error")
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindConfig, "config"},
		{KindSequence, "sequence"},
		{KindInteraction, "interaction"},
		{KindPanic, "panic"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{Value: "test panic"}
	if got, want := err.Error(), "panic: test panic"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}

	err = &PanicError{Op: "choreo.play", Value: "test panic"}
	if got, want := err.Error(), "panic in choreo.play: test panic"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
}

func TestFromPanicCapturesStack(t *testing.T) {
	err := FromPanic("op", "boom")
	if err.StackTrace == "" {
		t.Error("expected a stack trace")
	}
	if err.Timestamp.IsZero() {
		t.Error("expected a timestamp")
	}
}
