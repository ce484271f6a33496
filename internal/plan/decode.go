// Plan decoding from externally generated text.
package plan

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Decode parses plan JSON produced by an external planning capability.
// The text may be wrapped in markdown code fences or surrounded by prose;
// both are stripped before the first complete JSON object is decoded.
func Decode(content string) (*Plan, error) {
	jsonStr := extractJSON(stripFences(content))
	if jsonStr == "" {
		return nil, fmt.Errorf("no JSON object found in plan response")
	}

	var p Plan
	if err := json.Unmarshal([]byte(jsonStr), &p); err != nil {
		return nil, fmt.Errorf("parsing plan JSON: %w", err)
	}
	p.CreatedAt = time.Now().Unix()
	return &p, nil
}

// stripFences removes markdown code fence markers around a response.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// extractJSON extracts the first balanced JSON object from content that may
// contain surrounding text.
func extractJSON(content string) string {
	start := strings.Index(content, "{")
	if start == -1 {
		return ""
	}

	depth := 0
	for i := start; i < len(content); i++ {
		switch content[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return content[start : i+1]
			}
		}
	}
	return ""
}
