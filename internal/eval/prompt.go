package eval

import "fmt"

// Categories lists the rubric dimensions in prompt order. Each is scored 0-2
// by the model, so the implied total is out of 10; changing the category count
// or the per-category cap changes that denominator.
var Categories = []string{
	"relevance_and_correctness",
	"structure_and_clarity",
	"depth_and_examples",
	"technical_accuracy",
	"communication_and_conciseness",
}

const evalPromptTemplate = `You are an expert technical interview evaluator.
Question: %s
Candidate Answer: %s
Role: %s
Level: %s

Evaluate the candidate's answer and return a JSON object ONLY with this schema:

{
  "scores": {
    "relevance_and_correctness": int,
    "structure_and_clarity": int,
    "depth_and_examples": int,
    "technical_accuracy": int,
    "communication_and_conciseness": int
  },
  "total_score_out_of_10": float,
  "justifications": {
    "relevance_and_correctness": "short justification",
    "structure_and_clarity": "short justification",
    "depth_and_examples": "short justification",
    "technical_accuracy": "short justification",
    "communication_and_conciseness": "short justification"
  },
  "improvement_tips": ["tip1", "tip2"],
  "model_answer": "concise model answer"
}

Each score is an integer from 0 to 2. Return JSON only, no extra commentary.
If you cannot follow the schema exactly, still output a JSON object (best-effort).`

// BuildPrompt renders the evaluation instruction for one request. Pure string
// substitution; arbitrary input never makes it fail.
func BuildPrompt(question, answer, role, level string) string {
	return fmt.Sprintf(evalPromptTemplate, question, answer, role, level)
}
