package metrics

import (
	"encoding/json"
	"strings"
)

// SplitPath splits a dotted field path into its keys. It reports false for
// an empty path or a path with an empty key ("a..b", ".a", "a.").
func SplitPath(path string) ([]string, bool) {
	if path == "" {
		return nil, false
	}
	tokens := strings.Split(path, ".")
	for _, tok := range tokens {
		if tok == "" {
			return nil, false
		}
	}
	return tokens, true
}

// Resolve walks msg along the dotted path and returns the numeric leaf.
// Any missing key, non-object intermediate or non-numeric leaf is a miss.
func Resolve(msg any, path string) (float64, bool) {
	tokens, ok := SplitPath(path)
	if !ok {
		return 0, false
	}
	return ResolveTokens(msg, tokens)
}

// ResolveTokens is Resolve for a path that has already been split.
// msg is never modified.
func ResolveTokens(msg any, tokens []string) (float64, bool) {
	if len(tokens) == 0 {
		return 0, false
	}
	node := msg
	for _, tok := range tokens {
		obj, ok := node.(map[string]any)
		if !ok {
			return 0, false
		}
		node, ok = obj[tok]
		if !ok {
			return 0, false
		}
	}
	return toFloat(node)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
