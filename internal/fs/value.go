package fs

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindInvalid Kind = iota
	KindString
	KindNumber
	KindDate
	KindList
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "invalid"
	}
}

// Value is a decoded frontmatter value. It is one of string, number, date,
// list or map; the zero Value is invalid.
type Value struct {
	kind     Kind
	str      string
	num      float64
	integral bool
	date     time.Time
	list     []Value
	fields   map[string]Value
}

func StringValue(s string) Value { return Value{kind: KindString, str: s} }

func IntValue(n int64) Value { return Value{kind: KindNumber, num: float64(n), integral: true} }

func FloatValue(f float64) Value { return Value{kind: KindNumber, num: f} }

func DateValue(t time.Time) Value { return Value{kind: KindDate, date: t} }

func ListValue(items ...Value) Value {
	return Value{kind: KindList, list: append([]Value(nil), items...)}
}

func MapValue(fields map[string]Value) Value {
	copied := make(map[string]Value, len(fields))
	for key, value := range fields {
		copied[key] = value
	}
	return Value{kind: KindMap, fields: copied}
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsValid reports whether v holds any variant.
func (v Value) IsValid() bool { return v.kind != KindInvalid }

// Str returns the string variant.
func (v Value) Str() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// Int returns the number variant when it holds an integer.
func (v Value) Int() (int, bool) {
	if v.kind != KindNumber || !v.integral {
		return 0, false
	}
	return int(v.num), true
}

// Float returns the number variant.
func (v Value) Float() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// Time returns the date variant.
func (v Value) Time() (time.Time, bool) {
	if v.kind != KindDate {
		return time.Time{}, false
	}
	return v.date, true
}

// List returns a copy of the list variant.
func (v Value) List() ([]Value, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return append([]Value(nil), v.list...), true
}

// Map returns a copy of the map variant.
func (v Value) Map() (map[string]Value, bool) {
	if v.kind != KindMap {
		return nil, false
	}
	copied := make(map[string]Value, len(v.fields))
	for key, value := range v.fields {
		copied[key] = value
	}
	return copied, true
}

// Text renders v as plain text. Lists and maps render as JSON.
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		if v.integral {
			return strconv.FormatInt(int64(v.num), 10)
		}
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindDate:
		return v.date.Format(time.RFC3339)
	case KindList, KindMap:
		raw, err := json.Marshal(v.Native())
		if err != nil {
			return ""
		}
		return string(raw)
	default:
		return ""
	}
}

func (v Value) String() string { return v.Text() }

// Native converts v to plain Go values for encoders.
func (v Value) Native() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		if v.integral {
			return int64(v.num)
		}
		return v.num
	case KindDate:
		return v.date
	case KindList:
		out := make([]any, 0, len(v.list))
		for _, item := range v.list {
			out = append(out, item.Native())
		}
		return out
	case KindMap:
		out := make(map[string]any, len(v.fields))
		for key, item := range v.fields {
			out[key] = item.Native()
		}
		return out
	default:
		return nil
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Native())
}

func (v Value) MarshalYAML() (any, error) {
	return v.Native(), nil
}

// valueOf converts a decoded engine value. It reports false for nulls.
func valueOf(raw any) (Value, bool) {
	switch typed := raw.(type) {
	case nil:
		return Value{}, false
	case string:
		return StringValue(typed), true
	case bool:
		return StringValue(strconv.FormatBool(typed)), true
	case int:
		return IntValue(int64(typed)), true
	case int8:
		return IntValue(int64(typed)), true
	case int16:
		return IntValue(int64(typed)), true
	case int32:
		return IntValue(int64(typed)), true
	case int64:
		return IntValue(typed), true
	case uint:
		return IntValue(int64(typed)), true
	case uint8:
		return IntValue(int64(typed)), true
	case uint16:
		return IntValue(int64(typed)), true
	case uint32:
		return IntValue(int64(typed)), true
	case uint64:
		if typed > math.MaxInt64 {
			return FloatValue(float64(typed)), true
		}
		return IntValue(int64(typed)), true
	case float32:
		return FloatValue(float64(typed)), true
	case float64:
		return FloatValue(typed), true
	case time.Time:
		return DateValue(typed), true
	case []any:
		items := make([]Value, 0, len(typed))
		for _, item := range typed {
			if value, ok := valueOf(item); ok {
				items = append(items, value)
			}
		}
		return Value{kind: KindList, list: items}, true
	case []map[string]any:
		items := make([]Value, 0, len(typed))
		for _, item := range typed {
			items = append(items, mapOf(item))
		}
		return Value{kind: KindList, list: items}, true
	case map[string]any:
		return mapOf(typed), true
	case map[any]any:
		fields := make(map[string]Value, len(typed))
		for key, item := range typed {
			if value, ok := valueOf(item); ok {
				fields[fmt.Sprint(key)] = value
			}
		}
		return Value{kind: KindMap, fields: fields}, true
	default:
		return StringValue(fmt.Sprint(typed)), true
	}
}

func mapOf(raw map[string]any) Value {
	fields := make(map[string]Value, len(raw))
	for key, item := range raw {
		if value, ok := valueOf(item); ok {
			fields[key] = value
		}
	}
	return Value{kind: KindMap, fields: fields}
}
