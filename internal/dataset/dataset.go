// Package dataset holds the small pure helpers shared by the table builders:
// full-tuple deduplication and the key formatting it relies on.
package dataset

import (
	"sort"
	"strconv"
	"strings"
)

const keySep = "\x1f"

// DistinctSorted drops duplicate rows by key and returns the survivors in
// ascending key order, so repeated runs over identical input serialize to
// identical bytes.
func DistinctSorted[T any](rows []T, key func(T) string) []T {
	seen := make(map[string]T, len(rows))
	keys := make([]string, 0, len(rows))
	for _, row := range rows {
		k := key(row)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = row
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]T, 0, len(keys))
	for _, k := range keys {
		out = append(out, seen[k])
	}
	return out
}

// Key joins tuple components with a separator that cannot occur in the data.
func Key(parts ...string) string {
	return strings.Join(parts, keySep)
}

func Int(v int64) string {
	return strconv.FormatInt(v, 10)
}

func Float(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// FloatPtr renders an optional float, distinguishing null from zero.
func FloatPtr(v *float64) string {
	if v == nil {
		return "null"
	}
	return Float(*v)
}
