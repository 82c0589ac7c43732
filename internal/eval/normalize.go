package eval

import (
	"encoding/json"
	"strconv"
)

// Normalize repairs a parsed evaluation object into the canonical shape.
// Score values are coerced to integers, the total is computed from the
// category scores when the model omitted it, and a legacy single "score"
// field is adopted as a last resort. Unrecognized fields pass through
// untouched. Normalization never fails; a value that cannot be repaired
// degrades to its default instead of aborting.
func Normalize(data map[string]any) map[string]any {
	if data == nil {
		return nil
	}

	scores, hasScores := data["scores"].(map[string]any)
	if hasScores {
		for key, value := range scores {
			scores[key] = coerceScore(value)
		}
	}

	if _, ok := data["total_score_out_of_10"]; !ok && hasScores {
		total := 0
		for _, value := range scores {
			if n, ok := value.(int); ok {
				total += n
			}
		}
		data["total_score_out_of_10"] = float64(total)
	}

	if _, ok := data["total_score_out_of_10"]; !ok {
		if legacy, ok := data["score"]; ok {
			if f, ok := toFloat(legacy); ok {
				data["total_score_out_of_10"] = f
			}
		}
	}

	return data
}

// coerceScore converts a single rubric value to an int, defaulting to 0 when
// no numeric interpretation exists.
func coerceScore(value any) int {
	if f, ok := toFloat(value); ok {
		return int(f)
	}
	return 0
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
