package cms

import "time"

// Record is a flattened content entry: field name to value, always carrying
// an "id". Normalization guarantees callers never see the raw envelope shape
// the API used.
type Record map[string]any

// ID returns the numeric id of the record, or 0 when absent.
func (r Record) ID() int64 {
	return r.Int("id")
}

// String returns the string value of key, or "" when absent or not a string.
func (r Record) String(key string) string {
	v, _ := r[key].(string)
	return v
}

// Int returns the value of key as int64. JSON numbers decode as float64, so
// both representations are accepted.
func (r Record) Int(key string) int64 {
	switch v := r[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	}
	return 0
}

// Float returns the value of key as float64, or 0.
func (r Record) Float(key string) float64 {
	switch v := r[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	}
	return 0
}

// Bool returns the value of key as bool, or false.
func (r Record) Bool(key string) bool {
	v, _ := r[key].(bool)
	return v
}

// Time parses the value of key as RFC 3339. The zero time is returned for
// absent or unparseable values.
func (r Record) Time(key string) time.Time {
	s := r.String(key)
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Record returns the value of key as a nested Record (to-one relations and
// media objects after normalization), or nil.
func (r Record) Record(key string) Record {
	switch v := r[key].(type) {
	case Record:
		return v
	case map[string]any:
		return Record(v)
	}
	return nil
}

// Records returns the value of key as a slice of Record (to-many relations
// after normalization), or nil.
func (r Record) Records(key string) []Record {
	switch v := r[key].(type) {
	case []Record:
		return v
	case []any:
		out := make([]Record, 0, len(v))
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				out = append(out, Record(m))
			}
		}
		return out
	}
	return nil
}
