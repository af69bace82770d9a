package action

import (
	"bytes"
	"testing"
)

func TestOptionsDeepEquality(t *testing.T) {
	a, err := OptionsFromYAML(map[string]any{
		"targets": []any{"lib", "bin"},
		"mode":    "release",
		"nested":  map[string]any{"level": 2, "flags": []any{true, false}},
	})
	if err != nil {
		t.Fatalf("from yaml: %v", err)
	}
	b, err := OptionsFromYAML(map[string]any{
		"nested":  map[string]any{"flags": []any{true, false}, "level": 2},
		"mode":    "release",
		"targets": []any{"lib", "bin"},
	})
	if err != nil {
		t.Fatalf("from yaml: %v", err)
	}
	if !a.Equal(b) {
		t.Fatal("key order must not affect options equality")
	}

	c, _ := OptionsFromYAML(map[string]any{
		"targets": []any{"lib", "bin"},
		"mode":    "release",
		"nested":  map[string]any{"level": 3, "flags": []any{true, false}},
	})
	if a.Equal(c) {
		t.Fatal("deep value change must affect options equality")
	}
}

func TestOptionsSequenceOrderMatters(t *testing.T) {
	a, _ := OptionsFromYAML(map[string]any{"targets": []any{"lib", "bin"}})
	b, _ := OptionsFromYAML(map[string]any{"targets": []any{"bin", "lib"}})
	if a.Equal(b) {
		t.Fatal("sequence order is structural and must affect equality")
	}
}

func TestOptionsScalarKinds(t *testing.T) {
	intOpt, _ := OptionsFromYAML(map[string]any{"x": 1})
	floatOpt, _ := OptionsFromYAML(map[string]any{"x": 1.0})
	if intOpt.Equal(floatOpt) {
		t.Fatal("int and float scalars are distinct kinds")
	}
	if v, ok := intOpt.Get("x"); !ok || v.Kind() != KindInt {
		t.Fatalf("expected int value, got %v", v)
	}
}

func TestOptionsCanonicalHashStable(t *testing.T) {
	a, _ := OptionsFromYAML(map[string]any{"a": 1, "b": map[string]any{"c": "d"}})
	b, _ := OptionsFromYAML(map[string]any{"b": map[string]any{"c": "d"}, "a": 1})

	var ba, bb bytes.Buffer
	a.writeCanonical(&ba)
	b.writeCanonical(&bb)
	if !bytes.Equal(ba.Bytes(), bb.Bytes()) {
		t.Fatal("equal options must produce identical canonical encodings")
	}
}

func TestOptionsEmpty(t *testing.T) {
	var zero Options
	fromNil, err := OptionsFromYAML(nil)
	if err != nil {
		t.Fatalf("from yaml: %v", err)
	}
	if !zero.IsEmpty() || !fromNil.IsEmpty() {
		t.Fatal("expected empty payloads")
	}
	if !zero.Equal(fromNil) {
		t.Fatal("empty payloads should be equal")
	}
}

func TestOptionsRejectsUnsupportedType(t *testing.T) {
	if _, err := OptionsFromYAML(map[string]any{"ch": make(chan int)}); err == nil {
		t.Fatal("expected error for unsupported value type")
	}
}

func TestValueString(t *testing.T) {
	v := Map(map[string]Value{
		"b": Seq(Int(1), Str("two")),
		"a": Bool(true),
	})
	want := `{a: true, b: [1, "two"]}`
	if got := v.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}
