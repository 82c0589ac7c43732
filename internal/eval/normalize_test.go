package eval

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeCoercesScoreValues(t *testing.T) {
	data := map[string]any{
		"scores": map[string]any{
			"relevance_and_correctness":     "2",
			"structure_and_clarity":         1.0,
			"depth_and_examples":            2,
			"technical_accuracy":            "1.5",
			"communication_and_conciseness": "not a number",
		},
	}

	out := Normalize(data)

	scores := out["scores"].(map[string]any)
	require.Equal(t, 2, scores["relevance_and_correctness"])
	require.Equal(t, 1, scores["structure_and_clarity"])
	require.Equal(t, 2, scores["depth_and_examples"])
	require.Equal(t, 1, scores["technical_accuracy"], "float strings truncate toward zero")
	require.Equal(t, 0, scores["communication_and_conciseness"], "unconvertible values default to 0")
}

func TestNormalizeComputesTotalFromScores(t *testing.T) {
	data := map[string]any{
		"scores": map[string]any{
			"relevance_and_correctness": "2",
			"structure_and_clarity":     1.0,
		},
	}

	out := Normalize(data)
	require.Equal(t, 3.0, out["total_score_out_of_10"])
}

func TestNormalizeKeepsExistingTotal(t *testing.T) {
	data := map[string]any{
		"scores":                map[string]any{"relevance_and_correctness": 2},
		"total_score_out_of_10": 7.5,
	}

	out := Normalize(data)
	require.Equal(t, 7.5, out["total_score_out_of_10"])
}

func TestNormalizeAdoptsLegacyScoreField(t *testing.T) {
	out := Normalize(map[string]any{"score": "6"})
	require.Equal(t, 6.0, out["total_score_out_of_10"])
}

func TestNormalizeIgnoresNonMapScores(t *testing.T) {
	out := Normalize(map[string]any{"scores": "excellent"})
	require.Equal(t, "excellent", out["scores"])
	_, hasTotal := out["total_score_out_of_10"]
	require.False(t, hasTotal)
}

func TestNormalizePassesUnknownFieldsThrough(t *testing.T) {
	out := Normalize(map[string]any{
		"scores":      map[string]any{"relevance_and_correctness": 1},
		"confidence":  "high",
		"model_notes": []any{"a", "b"},
	})

	require.Equal(t, "high", out["confidence"])
	require.Equal(t, []any{"a", "b"}, out["model_notes"])
}

func TestNormalizeIsIdempotent(t *testing.T) {
	data := map[string]any{
		"scores": map[string]any{
			"relevance_and_correctness": "2",
			"structure_and_clarity":     "1",
		},
	}

	once := Normalize(data)
	twice := Normalize(once)

	require.Equal(t, once, twice)
	require.Equal(t, 3.0, twice["total_score_out_of_10"])
}

func TestNormalizeNilInput(t *testing.T) {
	require.Nil(t, Normalize(nil))
}
