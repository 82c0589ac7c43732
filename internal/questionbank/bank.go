// Package questionbank serves interview questions from per-role JSON files.
// Each file maps experience levels to ordered question lists and is validated
// against an embedded schema before use; files that fail validation are
// treated as empty rather than failing the request.
package questionbank

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	_ "embed"

	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var schemaJSON string

// Levels enumerates the supported experience levels.
var Levels = []string{"Junior", "Intermediate", "Senior"}

// Bank loads question files on demand. It holds no per-request state; reads
// are safe to run concurrently.
type Bank struct {
	dir    string
	schema *jsonschema.Schema
	logger zerolog.Logger
}

// New builds a bank rooted at dir. The embedded schema must compile; a
// failure here is a programming error surfaced at startup.
func New(dir string, logger zerolog.Logger) (*Bank, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("questions.schema.json", strings.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("add question schema: %w", err)
	}

	schema, err := compiler.Compile("questions.schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile question schema: %w", err)
	}

	return &Bank{
		dir:    dir,
		schema: schema,
		logger: logger.With().Str("component", "questionbank").Logger(),
	}, nil
}

// QuestionsFor returns the ordered questions for a role and level. A missing
// role file, an invalid file, or an unknown level all yield an empty slice.
func (b *Bank) QuestionsFor(ctx context.Context, role, level string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(b.dir, roleFileName(role))
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read question file: %w", err)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		b.logger.Warn().Err(err).Str("file", path).Msg("question file is not valid JSON, skipping")
		return nil, nil
	}

	if err := b.schema.Validate(doc); err != nil {
		b.logger.Warn().Err(err).Str("file", path).Msg("question file failed schema validation, skipping")
		return nil, nil
	}

	levels, ok := doc.(map[string]any)
	if !ok {
		return nil, nil
	}

	entries, ok := levels[level].([]any)
	if !ok {
		return nil, nil
	}

	questions := make([]string, 0, len(entries))
	for _, entry := range entries {
		if q, ok := entry.(string); ok {
			questions = append(questions, q)
		}
	}

	return questions, nil
}

// Random picks one question for the role and level. ok is false when the
// bank has nothing for that combination.
func (b *Bank) Random(ctx context.Context, role, level string) (string, bool, error) {
	questions, err := b.QuestionsFor(ctx, role, level)
	if err != nil {
		return "", false, err
	}
	if len(questions) == 0 {
		return "", false, nil
	}

	return questions[rand.IntN(len(questions))], true, nil
}

// roleFileName maps a display role to its file name, e.g.
// "Data Scientist" -> "data_scientist.json".
func roleFileName(role string) string {
	slug := strings.ToLower(strings.TrimSpace(role))
	slug = strings.ReplaceAll(slug, " ", "_")
	return slug + ".json"
}
