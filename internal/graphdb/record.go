package graphdb

import (
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// NodeProps returns the properties of the node stored under key.
func NodeProps(record *neo4j.Record, key string) (map[string]any, bool) {
	v, ok := record.Get(key)
	if !ok || v == nil {
		return nil, false
	}
	switch n := v.(type) {
	case neo4j.Node:
		return n.Props, true
	case *neo4j.Node:
		if n == nil {
			return nil, false
		}
		return n.Props, true
	case map[string]any:
		return n, true
	}
	return nil, false
}

func String(props map[string]any, key string) string {
	if s, ok := props[key].(string); ok {
		return s
	}
	return ""
}

// Float reads a numeric property. Integers are widened so that timestamps
// written as whole seconds decode the same way as fractional ones.
func Float(props map[string]any, key string) float64 {
	switch v := props[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	}
	return 0
}

func StringValue(record *neo4j.Record, key string) string {
	v, _ := record.Get(key)
	s, _ := v.(string)
	return s
}

func Int64Value(record *neo4j.Record, key string) int64 {
	v, _ := record.Get(key)
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	}
	return 0
}

func BoolValue(record *neo4j.Record, key string) bool {
	v, _ := record.Get(key)
	b, _ := v.(bool)
	return b
}

// StringsValue decodes a Cypher list of strings; nulls and non-strings are skipped.
func StringsValue(record *neo4j.Record, key string) []string {
	v, _ := record.Get(key)
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
