package worker

import "strings"

// ContextItem is one merged chunk with the owning worker's confidence
// recorded as its relevance score.
type ContextItem struct {
	Name           string  `json:"name"`
	Kind           string  `json:"kind"`
	Content        string  `json:"content"`
	FilePath       string  `json:"file_path"`
	RelevanceScore float64 `json:"relevance_score"`
}

// MergedContext buckets merged chunks by what they describe.
type MergedContext struct {
	Components []ContextItem `json:"components"`
	Types      []ContextItem `json:"types"`
	Schemas    []ContextItem `json:"schemas"`
	Other      []ContextItem `json:"other"`
}

// Len returns the total number of merged items across all buckets.
func (m *MergedContext) Len() int {
	return len(m.Components) + len(m.Types) + len(m.Schemas) + len(m.Other)
}

// Merge folds worker results into category buckets. Duplicate chunk ids
// within a bucket resolve first-seen-wins; the merge itself is
// commutative on membership, so join order never changes which ids
// appear.
func Merge(results []Result) *MergedContext {
	merged := &MergedContext{}
	seen := make(map[string]bool)

	for _, result := range results {
		for _, chunk := range result.Chunks {
			bucket := bucketFor(chunk.Kind)
			key := bucket + "\x00" + chunk.ID
			if seen[key] {
				continue
			}
			seen[key] = true

			item := ContextItem{
				Name:           chunk.ID,
				Kind:           chunk.Kind,
				Content:        chunk.Content,
				FilePath:       chunk.FilePath,
				RelevanceScore: result.Confidence,
			}
			switch bucket {
			case "component":
				merged.Components = append(merged.Components, item)
			case "type":
				merged.Types = append(merged.Types, item)
			case "schema":
				merged.Schemas = append(merged.Schemas, item)
			default:
				merged.Other = append(merged.Other, item)
			}
		}
	}
	return merged
}

// bucketFor categorizes a chunk kind.
func bucketFor(kind string) string {
	switch {
	case strings.Contains(kind, "component") || strings.Contains(kind, "function"):
		return "component"
	case strings.Contains(kind, "type") || strings.Contains(kind, "interface"):
		return "type"
	case strings.Contains(kind, "schema") || strings.Contains(kind, "model"):
		return "schema"
	default:
		return "other"
	}
}
