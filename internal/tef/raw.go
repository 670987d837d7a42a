package tef

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Raw is one decoded trace event record, as produced by encoding/json.
// Numbers may be float64 or json.Number depending on the decoder.
type Raw map[string]any

// Phase returns the record's phase discriminator, or "" when absent.
func (r Raw) Phase() Phase {
	s, _ := r[FieldPhase].(string)
	return Phase(s)
}

// String returns the string value of key, or "" when absent or not a string.
func (r Raw) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// Args returns the "args" object, or nil when absent or not an object.
func (r Raw) Args() map[string]any {
	m, _ := r[FieldArgs].(map[string]any)
	return m
}

// require returns the names of keys absent from r, preserving order.
func (r Raw) require(keys ...string) []string {
	var missing []string
	for _, k := range keys {
		if v, ok := r[k]; !ok || v == nil {
			missing = append(missing, k)
		}
	}
	return missing
}

func (r Raw) int64Field(kind, key string) (int64, error) {
	v, err := toInt64(r[key])
	if err != nil {
		return 0, invalidField(kind, key, "%v", err)
	}
	return v, nil
}

// toInt64 converts a JSON scalar or numeric string to an integer, truncating
// fractional values. Bazel writes integral microseconds but other producers
// emit floats or quoted numbers.
func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", n.String())
		}
		return truncate(f)
	case float64:
		return truncate(n)
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case int32:
		return int64(n), nil
	case string:
		if i, err := strconv.ParseInt(n, 10, 64); err == nil {
			return i, nil
		}
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", n)
		}
		return truncate(f)
	default:
		return 0, fmt.Errorf("not a number: %v", v)
	}
}

func truncate(f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f > math.MaxInt64 || f < math.MinInt64 {
		return 0, fmt.Errorf("number out of range: %v", f)
	}
	return int64(f), nil
}

// toFloat converts a JSON scalar or numeric string to float64.
func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case json.Number:
		return n.Float64()
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case string:
		return strconv.ParseFloat(n, 64)
	default:
		return 0, fmt.Errorf("not a number: %v", v)
	}
}

// stringify renders an argument value as the string shown in reports.
func stringify(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case json.Number:
		return s.String()
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	default:
		b, err := json.Marshal(s)
		if err != nil {
			return fmt.Sprintf("%v", s)
		}
		return string(b)
	}
}

// stringArgs copies the "args" object of r into a string map.
func stringArgs(r Raw) map[string]string {
	args := r.Args()
	if len(args) == 0 {
		return map[string]string{}
	}
	out := make(map[string]string, len(args))
	for k, v := range args {
		out[k] = stringify(v)
	}
	return out
}

// Int returns key as an integer and whether it was present and numeric.
func (r Raw) Int(key string) (int64, bool) {
	v, ok := r[key]
	if !ok {
		return 0, false
	}
	i, err := toInt64(v)
	return i, err == nil
}
