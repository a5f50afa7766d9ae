package core

import "strings"

// KeySeparator splits a key path into table segments.
const KeySeparator = "."

// Lookup walks the table along a dotted key path (e.g. "hero.title") and
// returns the value stored there. The bool is false when the path is empty,
// a segment is missing, or the walk reaches a non-table value before the
// last segment. An empty string leaf is a valid result.
func (t Translations) Lookup(key string) (interface{}, bool) {
	if t == nil || key == "" {
		return nil, false
	}

	var current interface{} = t
	for _, segment := range strings.Split(key, KeySeparator) {
		if segment == "" {
			return nil, false
		}
		table, ok := asTable(current)
		if !ok {
			return nil, false
		}
		next, ok := table[segment]
		if !ok {
			return nil, false
		}
		current = next
	}

	return current, true
}

// String is Lookup restricted to string leaves. Nested tables and other
// value types report false since they cannot be written as element text.
func (t Translations) String(key string) (string, bool) {
	value, ok := t.Lookup(key)
	if !ok {
		return "", false
	}
	s, ok := value.(string)
	return s, ok
}

func asTable(node interface{}) (map[string]interface{}, bool) {
	switch v := node.(type) {
	case Translations:
		return v, v != nil
	case map[string]interface{}:
		return v, v != nil
	default:
		return nil, false
	}
}
