package llm

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel failure kinds for a generation call. Matched with errors.Is.
var (
	// ErrTransport indicates the provider call itself failed (network, auth).
	ErrTransport = errors.New("generation call failed")
	// ErrNoCandidates indicates the provider responded with zero candidates.
	ErrNoCandidates = errors.New("no candidates returned")
	// ErrNoTextReturned indicates a candidate was present but no usable text
	// could be extracted from it (safety-filtered or empty).
	ErrNoTextReturned = errors.New("no text returned by model")
)

// Diagnostics records how a response was interpreted. It is part of the
// client contract: every outcome, success or failure, carries enough context
// for operator debugging.
type Diagnostics struct {
	// Strategy names the extraction strategy that produced the text, or the
	// last one attempted on failure.
	Strategy string `json:"strategy,omitempty"`
	// FinishReason is the provider's stop reason for the first candidate.
	FinishReason string `json:"finish_reason,omitempty"`
	// SafetyRatings carries any safety metadata the provider exposed.
	SafetyRatings []string `json:"safety_ratings,omitempty"`
	// RawResponse is a compact representation of the provider response.
	RawResponse string `json:"raw_response,omitempty"`
}

// Generation is the successful outcome of a single model call.
type Generation struct {
	Text        string
	Diagnostics Diagnostics
}

// Error classifies a failed generation call while retaining provider
// diagnostics. It wraps one of the sentinel kinds above plus any underlying
// transport error.
type Error struct {
	Kind        error
	Diagnostics Diagnostics
	Cause       error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Kind.Error(), e.Cause)
	}
	return e.Kind.Error()
}

func (e *Error) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

// Client issues a single text-generation call against an external provider.
// One logical call maps to exactly one provider invocation; retries, if any,
// belong to the caller.
type Client interface {
	// Generate sends prompt to the provider with a bounded output-token
	// budget and returns the extracted text or an *Error.
	Generate(ctx context.Context, prompt string, maxOutputTokens int) (Generation, error)
	// Model returns the configured model identifier.
	Model() string
}
