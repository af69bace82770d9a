package action

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Kind discriminates the variants of an options Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindSequence
	KindMapping
)

// Value is one node in a builder-options tree: a scalar, a sequence, or a
// string-keyed mapping. Values are immutable and compared structurally;
// mapping key order never affects equality or hashing.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	seq  []Value
	m    map[string]Value
}

// Null returns the null value. The zero Value is also null.
func Null() Value { return Value{kind: KindNull} }

func Bool(b bool) Value     { return Value{kind: KindBool, b: b} }
func Int(i int64) Value     { return Value{kind: KindInt, i: i} }
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }
func Str(s string) Value    { return Value{kind: KindString, s: s} }

// Seq returns a sequence value holding the given elements in order.
func Seq(elems ...Value) Value {
	return Value{kind: KindSequence, seq: elems}
}

// Map returns a mapping value. The map is not copied; callers must not
// mutate it afterwards.
func Map(m map[string]Value) Value {
	return Value{kind: KindMapping, m: m}
}

// Kind returns the variant of the value.
func (v Value) Kind() Kind { return v.kind }

// Equal reports structural equality. Scalars of different kinds are never
// equal; sequences compare element-wise in order; mappings compare by key
// set and per-key value, independent of insertion order.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindInt:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f
	case KindString:
		return v.s == o.s
	case KindSequence:
		if len(v.seq) != len(o.seq) {
			return false
		}
		for i := range v.seq {
			if !v.seq[i].Equal(o.seq[i]) {
				return false
			}
		}
		return true
	case KindMapping:
		if len(v.m) != len(o.m) {
			return false
		}
		for k, vv := range v.m {
			ov, ok := o.m[k]
			if !ok || !vv.Equal(ov) {
				return false
			}
		}
		return true
	}
	return false
}

// writeCanonical emits an unambiguous byte encoding of the value: a kind
// tag, then length-prefixed payloads. Mapping keys are sorted so that two
// equal values always produce identical bytes.
func (v Value) writeCanonical(w io.Writer) {
	writeByte(w, byte(v.kind))
	switch v.kind {
	case KindBool:
		if v.b {
			writeByte(w, 1)
		} else {
			writeByte(w, 0)
		}
	case KindInt:
		var buf [8]byte
		binary.BigEndian.PutUint64(buf[:], uint64(v.i))
		w.Write(buf[:])
	case KindFloat:
		var buf [8]byte
		binary.BigEndian.PutUint64(buf[:], math.Float64bits(v.f))
		w.Write(buf[:])
	case KindString:
		writeLengthPrefixed(w, []byte(v.s))
	case KindSequence:
		writeCount(w, len(v.seq))
		for _, e := range v.seq {
			e.writeCanonical(w)
		}
	case KindMapping:
		keys := make([]string, 0, len(v.m))
		for k := range v.m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		writeCount(w, len(keys))
		for _, k := range keys {
			writeLengthPrefixed(w, []byte(k))
			v.m[k].writeCanonical(w)
		}
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindString:
		return strconv.Quote(v.s)
	case KindSequence:
		parts := make([]string, len(v.seq))
		for i, e := range v.seq {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindMapping:
		keys := make([]string, 0, len(v.m))
		for k := range v.m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + ": " + v.m[k].String()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return "?"
}

// ValueFromYAML converts a value decoded by yaml.v3 (or encoding/json) into
// a tagged options Value. Supported input shapes are nil, bool, integers,
// floats, strings, []any, and map[string]any.
func ValueFromYAML(raw any) (Value, error) {
	switch t := raw.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case int:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case uint64:
		if t > math.MaxInt64 {
			return Null(), fmt.Errorf("integer option %d overflows int64", t)
		}
		return Int(int64(t)), nil
	case float64:
		return Float(t), nil
	case string:
		return Str(t), nil
	case []any:
		elems := make([]Value, len(t))
		for i, e := range t {
			v, err := ValueFromYAML(e)
			if err != nil {
				return Null(), err
			}
			elems[i] = v
		}
		return Seq(elems...), nil
	case map[string]any:
		m := make(map[string]Value, len(t))
		for k, e := range t {
			v, err := ValueFromYAML(e)
			if err != nil {
				return Null(), err
			}
			m[k] = v
		}
		return Map(m), nil
	default:
		return Null(), fmt.Errorf("unsupported option value of type %T", raw)
	}
}

// Options is the opaque, structurally comparable configuration payload of a
// build action: a mapping from string keys to nested Values. The zero
// Options is the empty payload.
type Options struct {
	m map[string]Value
}

// NewOptions wraps the given mapping. The map is not copied.
func NewOptions(m map[string]Value) Options {
	return Options{m: m}
}

// OptionsFromYAML converts a decoded YAML mapping into Options.
func OptionsFromYAML(raw map[string]any) (Options, error) {
	if len(raw) == 0 {
		return Options{}, nil
	}
	m := make(map[string]Value, len(raw))
	for k, e := range raw {
		v, err := ValueFromYAML(e)
		if err != nil {
			return Options{}, fmt.Errorf("option %q: %w", k, err)
		}
		m[k] = v
	}
	return Options{m: m}, nil
}

// Len returns the number of top-level keys.
func (o Options) Len() int { return len(o.m) }

// IsEmpty reports whether the payload has no keys.
func (o Options) IsEmpty() bool { return len(o.m) == 0 }

// Get returns the value stored under key.
func (o Options) Get(key string) (Value, bool) {
	v, ok := o.m[key]
	return v, ok
}

// Equal reports deep structural equality of the two payloads.
func (o Options) Equal(other Options) bool {
	return Map(o.m).Equal(Map(other.m))
}

func (o Options) String() string {
	return Map(o.m).String()
}

func (o Options) writeCanonical(w io.Writer) {
	Map(o.m).writeCanonical(w)
}

func writeByte(w io.Writer, b byte) {
	w.Write([]byte{b})
}

func writeCount(w io.Writer, n int) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(n))
	w.Write(buf[:])
}

func writeLengthPrefixed(w io.Writer, data []byte) {
	writeCount(w, len(data))
	w.Write(data)
}
