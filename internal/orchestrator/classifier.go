package orchestrator

import (
	"encoding/json"
	"strings"
)

// ResponseKind classifies what the model's final text actually contains.
type ResponseKind int

const (
	// PlainText is ordinary prose with no tool call hidden inside.
	PlainText ResponseKind = iota
	// StructuredToolCall is a JSON object explicitly naming a known tool.
	StructuredToolCall
	// EmbeddedJSONGuess is a JSON object that does not name a known tool;
	// the envelope extractor may still pull a message out of it.
	EmbeddedJSONGuess
)

// Classification is the result of inspecting a final text response for
// a hallucinated tool call.
type Classification struct {
	Kind     ResponseKind
	ToolName string
	ToolArgs map[string]interface{}
	// Payload is the extracted JSON object for the JSON kinds.
	Payload map[string]interface{}
}

// knownToolChecker reports whether a name belongs to the tool catalog.
type knownToolChecker interface {
	Has(name string) bool
}

// Classify inspects a model text response. Models sometimes describe a
// tool call as prose JSON instead of issuing a structured call; when
// the extracted object names a registered tool the caller can execute
// it anyway.
func Classify(response string, known knownToolChecker) Classification {
	payload, ok := extractJSONObject(response)
	if !ok {
		return Classification{Kind: PlainText}
	}

	name, args := toolCallShape(payload)
	if name != "" && known != nil && known.Has(name) {
		return Classification{
			Kind:     StructuredToolCall,
			ToolName: name,
			ToolArgs: args,
			Payload:  payload,
		}
	}

	return Classification{Kind: EmbeddedJSONGuess, Payload: payload}
}

// toolCallShape recognizes the shapes models use when describing a
// call: {"name": ..., "args"/"arguments"/"parameters": {...}} or
// {"tool": ..., ...}.
func toolCallShape(payload map[string]interface{}) (string, map[string]interface{}) {
	name, _ := payload["name"].(string)
	if name == "" {
		name, _ = payload["tool"].(string)
	}
	if name == "" {
		return "", nil
	}

	for _, key := range []string{"args", "arguments", "parameters"} {
		if args, ok := payload[key].(map[string]interface{}); ok {
			return name, args
		}
	}
	return name, map[string]interface{}{}
}

// extractJSONObject strips markdown fences and pulls the first
// brace-balanced JSON object out of free text.
func extractJSONObject(response string) (map[string]interface{}, bool) {
	text := stripFences(response)

	start := -1
	depth := 0
	inString := false
	escaped := false

	for i, ch := range text {
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			if start != -1 {
				inString = true
			}
		case '{':
			if start == -1 {
				start = i
			}
			depth++
		case '}':
			if start == -1 {
				continue
			}
			depth--
			if depth == 0 {
				var payload map[string]interface{}
				if err := json.Unmarshal([]byte(text[start:i+1]), &payload); err == nil {
					return payload, true
				}
				start = -1
			}
		}
	}

	return nil, false
}

// stripFences removes a surrounding markdown code fence if present.
func stripFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.Index(trimmed, "\n"); idx != -1 {
		// Drop the language tag line, e.g. ```json
		firstLine := strings.TrimSpace(trimmed[:idx])
		if len(firstLine) <= 10 && !strings.ContainsAny(firstLine, "{}") {
			trimmed = trimmed[idx+1:]
		}
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
