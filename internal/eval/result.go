package eval

import "encoding/json"

// Request carries the inputs for a single answer evaluation. A request is
// created per submission and discarded once its result has been produced.
type Request struct {
	Question string
	Answer   string
	Role     string
	Level    string
}

type resultKind int

const (
	kindCanonical resultKind = iota
	kindDegraded
	kindFailed
)

// Result is the outcome of one evaluation. Exactly one of three shapes is
// produced per call and they stay mutually exclusive when serialized:
//
//   - failed:    {"error": ...}                       generation itself failed
//   - degraded:  {"raw_text": ...[, "parse_error"]}   text came back but no usable JSON
//   - canonical: the normalized evaluation object     scores, total, tips, model answer
//
// Callers branch on the presence of the "error" and "raw_text" keys.
type Result struct {
	kind       resultKind
	evaluation map[string]any
	rawText    string
	parseError string
	errText    string
}

// CanonicalResult wraps a normalized evaluation object.
func CanonicalResult(evaluation map[string]any) Result {
	return Result{kind: kindCanonical, evaluation: evaluation}
}

// DegradedResult carries the raw model text when no JSON object could be
// extracted or parsed. parseError is empty when extraction found nothing.
func DegradedResult(rawText, parseError string) Result {
	return Result{kind: kindDegraded, rawText: rawText, parseError: parseError}
}

// FailedResult records a generation failure.
func FailedResult(message string) Result {
	return Result{kind: kindFailed, errText: message}
}

// IsCanonical reports whether the result carries a normalized evaluation.
func (r Result) IsCanonical() bool { return r.kind == kindCanonical }

// IsDegraded reports whether the result degraded to raw text.
func (r Result) IsDegraded() bool { return r.kind == kindDegraded }

// IsFailed reports whether generation failed outright.
func (r Result) IsFailed() bool { return r.kind == kindFailed }

// Evaluation returns the normalized evaluation object for canonical results.
func (r Result) Evaluation() map[string]any { return r.evaluation }

// RawText returns the unparsed model output for degraded results.
func (r Result) RawText() string { return r.rawText }

// ParseError returns the JSON parse failure message, if any.
func (r Result) ParseError() string { return r.parseError }

// ErrorMessage returns the generation failure message for failed results.
func (r Result) ErrorMessage() string { return r.errText }

// TotalScore returns the total score when the result carries one.
func (r Result) TotalScore() (float64, bool) {
	if r.kind != kindCanonical {
		return 0, false
	}
	switch v := r.evaluation["total_score_out_of_10"].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}

// AsMap renders the result in its wire shape.
func (r Result) AsMap() map[string]any {
	switch r.kind {
	case kindFailed:
		return map[string]any{"error": r.errText}
	case kindDegraded:
		out := map[string]any{"raw_text": r.rawText}
		if r.parseError != "" {
			out["parse_error"] = r.parseError
		}
		return out
	default:
		return r.evaluation
	}
}

// MarshalJSON serializes the active variant only.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.AsMap())
}
