package tools

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var integerArgs = map[string]bool{
	"limit":       true,
	"skip":        true,
	"quantity":    true,
	"order_value": true,
	"tip":         true,
}

// sanitizeArguments is best effort: ids and text are trimmed, numeric strings and whole
// floats become integers. Anything it cannot make sense of is passed through untouched
// so decoding reports the problem.
func sanitizeArguments(name, arguments string) string {
	if emptyArguments(arguments) {
		return "{}"
	}

	var m map[string]any
	if err := json.Unmarshal([]byte(arguments), &m); err != nil {
		return arguments
	}
	sanitizeObject(m)

	if name == ToolBuildCart || name == ToolComputeCostEstimate || name == ToolCreateReceipt {
		if items, ok := m["items"].([]any); ok {
			for _, it := range items {
				if obj, ok := it.(map[string]any); ok {
					sanitizeObject(obj)
				}
			}
		}
	}

	b, err := json.Marshal(m)
	if err != nil {
		return arguments
	}
	return string(b)
}

func sanitizeObject(m map[string]any) {
	for k, v := range m {
		if integerArgs[k] {
			if n, ok := coerceInt(v); ok {
				m[k] = n
			}
			continue
		}
		switch vv := v.(type) {
		case string:
			m[k] = strings.TrimSpace(vv)
		case float64:
			// ids occasionally arrive as bare numbers
			if strings.HasSuffix(k, "_id") {
				m[k] = strconv.FormatFloat(vv, 'f', -1, 64)
			}
		case nil:
			delete(m, k)
		}
	}
}

func coerceInt(v any) (int, bool) {
	switch vv := v.(type) {
	case float64:
		if vv != math.Trunc(vv) {
			return 0, false
		}
		return int(vv), true
	case string:
		s := strings.TrimSpace(vv)
		if n, err := strconv.Atoi(s); err == nil {
			return n, true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil && f == math.Trunc(f) {
			return int(f), true
		}
	}
	return 0, false
}

func clampInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

func describeArgs(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
