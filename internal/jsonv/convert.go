package jsonv

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"sort"
	"strconv"
)

// ToAny converts a value to the representation produced by encoding/json:
// nil, bool, float64, string, []any and map[string]any. Duplicate keys keep
// the last occurrence.
func ToAny(v Value) any {
	return toAny(v, false)
}

// ToAnyExact is like ToAny but keeps integers exact as int or *big.Int
func ToAnyExact(v Value) any {
	return toAny(v, true)
}

func toAny(v Value, exact bool) any {
	switch v.Kind() {
	case KindNull:
		return nil
	case KindBool:
		return v.Bool()
	case KindNumber:
		return numberToAny(v.Text(), exact)
	case KindString:
		return v.Text()
	case KindArray:
		out := make([]any, v.Len())
		for i := range out {
			out[i] = toAny(v.Index(i), exact)
		}
		return out
	case KindObject:
		out := make(map[string]any, v.Len())
		for i := 0; i < v.Len(); i++ {
			p := v.Pair(i)
			out[p.Key] = toAny(p.Value, exact)
		}
		return out
	}
	return nil
}

func numberToAny(lit string, exact bool) any {
	if exact {
		if i, err := strconv.Atoi(lit); err == nil {
			return i
		}
		if b, ok := new(big.Int).SetString(lit, 10); ok {
			return b
		}
	}
	// out of range literals parse to ±Inf, which is what jq shows too
	f, _ := strconv.ParseFloat(lit, 64)
	return f
}

// FromAny converts a generic Go value back into a Value. Map keys are
// sorted since maps carry no order.
func FromAny(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case int:
		return Number(strconv.Itoa(t)), nil
	case int64:
		return Number(strconv.FormatInt(t, 10)), nil
	case float64:
		if math.IsNaN(t) {
			return Null(), nil
		}
		return Number(FormatFloat(t)), nil
	case *big.Int:
		return Number(t.String()), nil
	case json.Number:
		return Number(t.String()), nil
	case string:
		return String(t), nil
	case []any:
		items := make([]Value, len(t))
		for i, e := range t {
			v, err := FromAny(e)
			if err != nil {
				return Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			items[i] = v
		}
		return Array(items...), nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]Pair, len(keys))
		for i, k := range keys {
			v, err := FromAny(t[k])
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", k, err)
			}
			pairs[i] = Pair{Key: k, Value: v}
		}
		return Object(pairs...), nil
	default:
		return Value{}, fmt.Errorf("unsupported type %T", x)
	}
}

// FormatFloat renders a float the way jq prints numbers
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "null"
	case math.IsInf(f, 1):
		return strconv.FormatFloat(math.MaxFloat64, 'g', -1, 64)
	case math.IsInf(f, -1):
		return strconv.FormatFloat(-math.MaxFloat64, 'g', -1, 64)
	}
	if a := math.Abs(f); a != 0 && (a < 1e-6 || a >= 1e21) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
