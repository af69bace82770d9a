package errors

import (
	stderrors "errors"
	"testing"

	"git.home.luguber.info/inful/actiongraph/internal/action"
)

func TestGraphErrorFormatting(t *testing.T) {
	e := New(CategoryPlan, SeverityFatal, "plan assembly failed")
	want := "plan (fatal): plan assembly failed"
	if e.Error() != want {
		t.Fatalf("Error() = %q, want %q", e.Error(), want)
	}

	cause := stderrors.New("boom")
	wrapped := Wrap(cause, CategoryState, SeverityError, "snapshot store")
	if !stderrors.Is(wrapped, cause) {
		t.Fatal("wrapped error must unwrap to its cause")
	}
}

func TestWithContext(t *testing.T) {
	e := New(CategoryConfig, SeverityFatal, "bad phase").
		WithContext("phase", 3).
		WithContext("builder", "copy")
	if e.Context["phase"] != 3 || e.Context["builder"] != "copy" {
		t.Fatalf("unexpected context: %#v", e.Context)
	}
}

func TestClassifyPatternError(t *testing.T) {
	_, err := action.NewInputMatcher([]string{"[unclosed"}, nil)
	if err == nil {
		t.Fatal("expected pattern error")
	}
	ge := Classify(err)
	if ge.Category != CategoryPattern {
		t.Fatalf("expected pattern category, got %s", ge.Category)
	}
	if ge.Context["pattern"] != "[unclosed" {
		t.Fatalf("expected pattern context, got %#v", ge.Context)
	}
}

func TestClassifyPassthrough(t *testing.T) {
	orig := New(CategoryWatch, SeverityError, "watcher died")
	if got := Classify(orig); got != orig {
		t.Fatal("classified errors must pass through unchanged")
	}
}

func TestExitCodes(t *testing.T) {
	a := NewCLIErrorAdapter(false, nil)
	if got := a.ExitCodeFor(nil); got != 0 {
		t.Fatalf("nil error should exit 0, got %d", got)
	}
	cases := map[ErrorCategory]int{
		CategoryValidation: 2,
		CategoryConfig:     7,
		CategoryPattern:    7,
		CategoryState:      8,
		CategoryPlan:       11,
		CategoryWatch:      12,
		CategoryInternal:   10,
	}
	for cat, want := range cases {
		if got := a.ExitCodeFor(New(cat, SeverityFatal, "x")); got != want {
			t.Errorf("category %s: exit code %d, want %d", cat, got, want)
		}
	}
}
