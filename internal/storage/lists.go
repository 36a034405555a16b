package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// EncodeList stores a string list as JSON array text.
func EncodeList(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// DecodeList reads a stored list. It accepts a JSON array, a legacy
// double-nested array, or a bare string. When splitComma is set a bare
// string is split on commas, as legacy keyword columns were.
func DecodeList(raw string, splitComma bool) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}
	}

	var nested [][]string
	if json.Unmarshal([]byte(raw), &nested) == nil && len(nested) > 0 {
		return clean(nested[0])
	}

	var flat []any
	if json.Unmarshal([]byte(raw), &flat) == nil {
		out := make([]string, 0, len(flat))
		for _, v := range flat {
			switch x := v.(type) {
			case string:
				out = append(out, x)
			case nil:
			default:
				out = append(out, fmt.Sprint(x))
			}
		}
		return clean(out)
	}

	var s string
	if json.Unmarshal([]byte(raw), &s) == nil {
		raw = s
	}
	if splitComma {
		return clean(strings.Split(raw, ","))
	}
	return clean([]string{raw})
}

// IsDoubleNested reports whether raw is a JSON array whose first element is an array.
func IsDoubleNested(raw string) bool {
	var arr []json.RawMessage
	if json.Unmarshal([]byte(raw), &arr) != nil || len(arr) == 0 {
		return false
	}
	first := strings.TrimSpace(string(arr[0]))
	return strings.HasPrefix(first, "[")
}

func clean(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	return out
}

// nullString maps "" to NULL.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// flexTime scans timestamps that sqlite returns as text for computed columns.
type flexTime struct {
	Time  time.Time
	Valid bool
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

func (f *flexTime) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		f.Valid = false
		return nil
	case time.Time:
		f.Time, f.Valid = v, true
		return nil
	case []byte:
		return f.parse(string(v))
	case string:
		return f.parse(v)
	}
	return fmt.Errorf("cannot scan %T into timestamp", src)
}

func (f *flexTime) parse(s string) error {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			f.Time, f.Valid = t, true
			return nil
		}
	}
	return fmt.Errorf("failed to parse timestamp %q", s)
}

func (f flexTime) ptr() *time.Time {
	if !f.Valid {
		return nil
	}
	t := f.Time
	return &t
}
