package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// buildPayload assembles the JSON request body. An explicit prompt is
// always written last so extra fields can never overwrite it; an empty
// prompt means "not given", in which case extra must carry the whole
// payload (for example chat-style messages arrays).
func buildPayload(prompt string, extra map[string]any) ([]byte, error) {
	payload := make(map[string]any, len(extra)+1)
	for k, v := range extra {
		payload[k] = v
	}

	if prompt != "" {
		if strings.TrimSpace(prompt) == "" {
			return nil, ErrEmptyPrompt
		}
		payload["prompt"] = prompt
	} else if v, ok := payload["prompt"]; ok {
		s, isString := v.(string)
		if !isString || strings.TrimSpace(s) == "" {
			return nil, ErrEmptyPrompt
		}
	}

	if len(payload) == 0 {
		return nil, ErrEmptyPayload
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("llm: encode payload: %w", err)
	}
	return body, nil
}
