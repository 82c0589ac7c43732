package eval

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildPromptSubstitutesInputs(t *testing.T) {
	prompt := BuildPrompt("What is a goroutine?", "A lightweight thread.", "Backend Engineer", "Junior")

	require.Contains(t, prompt, "Question: What is a goroutine?")
	require.Contains(t, prompt, "Candidate Answer: A lightweight thread.")
	require.Contains(t, prompt, "Role: Backend Engineer")
	require.Contains(t, prompt, "Level: Junior")
}

func TestBuildPromptFixesRubric(t *testing.T) {
	prompt := BuildPrompt("q", "a", "r", "l")

	for _, category := range Categories {
		require.Contains(t, prompt, category)
	}
	require.Contains(t, prompt, "total_score_out_of_10")
	require.Contains(t, prompt, "Return JSON only")
}

func TestBuildPromptToleratesArbitraryInput(t *testing.T) {
	hostile := strings.Repeat("}{%s\x00☃", 1000)

	prompt := BuildPrompt(hostile, hostile, hostile, hostile)
	require.Contains(t, prompt, "Return JSON only")
}
