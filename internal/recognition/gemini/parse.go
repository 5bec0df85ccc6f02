package gemini

import "strings"

// ExtractJSON pulls the JSON document out of a model response. Models
// asked for bare JSON still occasionally wrap it in markdown code
// fences or lead with prose, so the extraction is lenient: strip any
// fence, then slice from the first opening brace to the last closing
// one.
func ExtractJSON(text string) []byte {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		if i := strings.LastIndex(text, "```"); i >= 0 {
			text = text[:i]
		}
		text = strings.TrimSpace(text)
	}

	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start >= 0 && end > start {
		text = text[start : end+1]
	}
	return []byte(text)
}
