package eval

import (
	"regexp"
	"strings"
)

var outerObjectPattern = regexp.MustCompile(`(?s)(\{.*\})`)

// ExtractJSONObject locates the first syntactically balanced JSON object in
// text and returns it. The scan starts at the first "{" and tracks brace
// depth; the span where depth returns to zero is the candidate object. When
// no "{" is found directly, a greedy regex match of an outer {...} span is
// tried as a fallback. Truncated output (depth never returns to zero) yields
// no result; partial objects are not repaired.
//
// The depth counter does not skip braces inside JSON string literals, so a
// model that embeds literal braces in a string value can corrupt the count.
// Accepted limitation for a cooperative producer.
func ExtractJSONObject(text string) (string, bool) {
	if text == "" {
		return "", false
	}

	start := strings.IndexByte(text, '{')
	if start == -1 {
		match := outerObjectPattern.FindString(text)
		if match == "" {
			return "", false
		}
		text = match
	} else {
		text = text[start:]
	}

	depth := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[:i+1], true
			}
		}
	}

	return "", false
}
