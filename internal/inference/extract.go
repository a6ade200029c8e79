package inference

import "encoding/json"

// Provider responses for speech recognition come back in several shapes:
// a bare JSON string, {"text": ...}, {"transcription": ...}, {"result": ...}
// or {"result": {"text": ...}}. Each extractor is tried in order against
// the decoded payload; the first one that yields a string wins. Nesting is
// only followed one level deep.
type extractor func(map[string]interface{}) (string, bool)

var textExtractors = []extractor{
	stringField("text"),
	stringField("transcription"),
	stringField("result"),
	nestedTextField("text"),
	nestedTextField("transcription"),
	nestedTextField("result"),
}

func stringField(name string) extractor {
	return func(m map[string]interface{}) (string, bool) {
		if s, ok := m[name].(string); ok {
			return s, true
		}
		return "", false
	}
}

func nestedTextField(name string) extractor {
	return func(m map[string]interface{}) (string, bool) {
		nested, ok := m[name].(map[string]interface{})
		if !ok {
			return "", false
		}
		if s, ok := nested["text"].(string); ok {
			return s, true
		}
		return "", false
	}
}

// extractTranscription normalizes a raw speech recognition response body
// into plain text. Returns false when no known shape matches.
func extractTranscription(body []byte) (string, bool) {
	var payload interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", false
	}

	switch v := payload.(type) {
	case string:
		return v, true
	case map[string]interface{}:
		for _, extract := range textExtractors {
			if s, ok := extract(v); ok {
				return s, true
			}
		}
	}
	return "", false
}
