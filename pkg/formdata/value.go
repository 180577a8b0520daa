package formdata

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind identifies the type held by a Value.
type Kind uint8

const (
	KindUndefined Kind = iota
	KindNull
	KindString
	KindInt
	KindNumber
	KindBool
	KindTime
	KindList
)

var kindNames = [...]string{
	KindUndefined: "undefined",
	KindNull:      "null",
	KindString:    "string",
	KindInt:       "int",
	KindNumber:    "number",
	KindBool:      "bool",
	KindTime:      "time",
	KindList:      "list",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a tagged union of the scalar kinds a form answer can hold.
// The zero Value is undefined. Values are immutable.
type Value struct {
	t    time.Time
	s    string
	list []string
	n    float64
	i    int64
	kind Kind
	b    bool
}

// String returns a Value holding s.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Int returns a Value holding an integer.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Number returns a Value holding a float.
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

// Bool returns a Value holding b.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Time returns a Value holding t.
func Time(t time.Time) Value { return Value{kind: KindTime, t: t} }

// Null returns an explicit null Value. Null is defined and renders as "".
func Null() Value { return Value{kind: KindNull} }

// List returns a Value holding a copy of items.
func List(items ...string) Value {
	return Value{kind: KindList, list: append([]string(nil), items...)}
}

// Kind reports the kind of v.
func (v Value) Kind() Kind { return v.kind }

// IsDefined reports whether v holds anything, including Null.
func (v Value) IsDefined() bool { return v.kind != KindUndefined }

// Time returns the held time and true if v is a KindTime value.
func (v Value) Time() (time.Time, bool) { return v.t, v.kind == KindTime }

// String returns the display text of v.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.s
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindNumber:
		return formatNumber(v.n)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindTime:
		return v.t.Format(time.RFC3339)
	case KindList:
		return strings.Join(v.list, ",")
	default:
		return ""
	}
}

func formatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// Any returns v as a plain Go value, nil for Undefined and Null.
func (v Value) Any() any {
	switch v.kind {
	case KindString:
		return v.s
	case KindInt:
		return v.i
	case KindNumber:
		return v.n
	case KindBool:
		return v.b
	case KindTime:
		return v.t
	case KindList:
		return append([]string(nil), v.list...)
	default:
		return nil
	}
}

// FromAny converts a decoded Go value into a Value.
// Unsupported types are rendered with fmt and stored as strings.
func FromAny(x any) Value {
	switch val := x.(type) {
	case nil:
		return Null()
	case Value:
		return val
	case string:
		return String(val)
	case bool:
		return Bool(val)
	case int:
		return Int(int64(val))
	case int32:
		return Int(int64(val))
	case int64:
		return Int(val)
	case uint:
		return Int(int64(val))
	case uint32:
		return Int(int64(val))
	case float32:
		return fromFloat(float64(val))
	case float64:
		return fromFloat(val)
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return Int(i)
		}
		if f, err := val.Float64(); err == nil {
			return Number(f)
		}
		return String(val.String())
	case time.Time:
		return Time(val)
	case []string:
		return List(val...)
	case []any:
		items := make([]string, len(val))
		for i, item := range val {
			items[i] = FromAny(item).String()
		}
		return List(items...)
	case fmt.Stringer:
		return String(val.String())
	default:
		return String(fmt.Sprint(val))
	}
}

// fromFloat keeps whole numbers as integers so 42.0 decoded from JSON
// displays as "42".
func fromFloat(f float64) Value {
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return Int(int64(f))
	}
	return Number(f)
}

// MarshalJSON encodes v as its natural JSON form. Undefined encodes as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindUndefined, KindNull:
		return []byte("null"), nil
	case KindNumber:
		if math.IsNaN(v.n) || math.IsInf(v.n, 0) {
			return json.Marshal(formatNumber(v.n))
		}
	}
	return json.Marshal(v.Any())
}

// UnmarshalJSON decodes any JSON scalar or array into v.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	var x any
	if err := dec.Decode(&x); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	if _, ok := x.(map[string]any); ok {
		return fmt.Errorf("%w: objects are not supported", ErrInvalidValue)
	}
	*v = FromAny(x)
	return nil
}
