package llm

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	generationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "coach",
		Subsystem: "llm",
		Name:      "generation_duration_seconds",
		Help:      "Duration of text generation calls",
	}, []string{"provider", "model"})

	generationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "coach",
		Subsystem: "llm",
		Name:      "generation_failures_total",
		Help:      "Number of failed text generation calls",
	}, []string{"provider", "model", "kind"})
)

func failureKind(err *Error) string {
	switch err.Kind {
	case ErrNoCandidates:
		return "no_candidates"
	case ErrNoTextReturned:
		return "no_text"
	default:
		return "transport"
	}
}
