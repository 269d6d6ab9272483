package shared

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// StringField returns the first non-empty value among keys, rendering JSON
// numbers as decimal strings so numeric identifiers survive normalization.
func StringField(payload map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		v, ok := payload[key]
		if !ok {
			continue
		}
		switch val := v.(type) {
		case string:
			if s := strings.TrimSpace(val); s != "" {
				return s
			}
		case float64:
			return strconv.FormatFloat(val, 'f', -1, 64)
		}
	}
	return ""
}

func NonEmpty(a, b string) string {
	a = strings.TrimSpace(a)
	if a != "" {
		return a
	}
	return strings.TrimSpace(b)
}

func ParseTimeOrNow(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Now().UTC()
	}
	formats := []string{time.RFC3339Nano, time.RFC3339}
	for _, f := range formats {
		if t, err := time.Parse(f, v); err == nil {
			return t.UTC()
		}
	}
	return time.Now().UTC()
}

func NormalizeEventType(in string) string {
	return strings.TrimSpace(in)
}

// MappedValues returns the distinct canonical values of a mapping table in
// sorted order, for descriptor listings.
func MappedValues(m map[string]string) []string {
	seen := make(map[string]struct{}, len(m))
	out := make([]string, 0, len(m))
	for _, v := range m {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
