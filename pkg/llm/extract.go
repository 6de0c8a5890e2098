package llm

import "strings"

// shape is one provider response structure. Matchers are tried in
// priority order, so adding a provider is adding an entry here rather
// than growing a conditional chain.
type shape struct {
	name  string
	match func(obj map[string]any) (string, bool)
}

var shapes []shape

// Populated in init because matchResponseField recurses back through
// extractObject, which walks this slice.
func init() {
	shapes = []shape{
		{"response", matchResponseField},
		{"text", matchTextField},
		{"chat", matchChatChoices},
		{"output", matchResponsesOutput},
		{"collections", matchCollections},
		{"generations", matchGenerations},
		{"generated_text", matchGeneratedText},
		{"candidates", matchCandidates},
	}
}

// ExtractText pulls the single intended text reply out of a decoded
// JSON response. It returns a *ShapeError when the value is valid JSON
// but matches no known provider shape.
func ExtractText(v any) (string, error) {
	if text, ok := extractValue(v); ok {
		return text, nil
	}
	var keys []string
	if obj, isObj := v.(map[string]any); isObj {
		keys = make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
	}
	return "", &ShapeError{Keys: keys}
}

func extractValue(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case map[string]any:
		return extractObject(val)
	case []any:
		if text, ok := joinFragments(val); ok {
			return text, true
		}
		// Hugging-Face style: a list of shaped objects; first hit wins.
		for _, item := range val {
			if obj, isObj := item.(map[string]any); isObj {
				if text, ok := extractObject(obj); ok {
					return text, true
				}
			}
		}
	}
	return "", false
}

func extractObject(obj map[string]any) (string, bool) {
	for _, s := range shapes {
		text, ok := s.match(obj)
		if !ok {
			continue
		}
		// Trailing collections alongside a primary match are appended,
		// never dropped.
		switch s.name {
		case "collections":
		case "output":
			if extra, ok := collectionsText(obj, "outputs"); ok {
				text += extra
			}
		default:
			if extra, ok := collectionsText(obj, "outputs", "output"); ok {
				text += extra
			}
		}
		return text, true
	}
	return "", false
}

// matchResponseField handles a top-level "response" field: either the
// reply string itself or a wrapper object to recurse into.
func matchResponseField(obj map[string]any) (string, bool) {
	switch v := obj["response"].(type) {
	case string:
		return v, true
	case map[string]any:
		return extractObject(v)
	}
	return "", false
}

func matchTextField(obj map[string]any) (string, bool) {
	switch v := obj["text"].(type) {
	case string:
		return v, true
	case []any:
		return joinFragments(v)
	}
	return "", false
}

// matchChatChoices handles OpenAI chat completions and streaming
// deltas: choices[0].message.content, then choices[0].delta.content,
// then the legacy completions choices[0].text.
func matchChatChoices(obj map[string]any) (string, bool) {
	choices, ok := obj["choices"].([]any)
	if !ok || len(choices) == 0 {
		return "", false
	}
	first, ok := choices[0].(map[string]any)
	if !ok {
		return "", false
	}
	if msg, ok := first["message"].(map[string]any); ok {
		if text, ok := contentText(msg["content"]); ok {
			return text, true
		}
	}
	if delta, ok := first["delta"].(map[string]any); ok {
		if text, ok := contentText(delta["content"]); ok {
			return text, true
		}
	}
	if text, ok := first["text"].(string); ok {
		return text, true
	}
	return "", false
}

// matchResponsesOutput handles the OpenAI responses API: structured
// output[].content first, then the aggregated output_text appended.
func matchResponsesOutput(obj map[string]any) (string, bool) {
	var b strings.Builder
	found := false
	if out, ok := obj["output"].([]any); ok {
		for _, item := range out {
			entry, isObj := item.(map[string]any)
			if !isObj {
				if text, ok := fragmentText(item); ok {
					b.WriteString(text)
					found = true
				}
				continue
			}
			if text, ok := contentText(entry["content"]); ok {
				b.WriteString(text)
				found = true
			}
		}
	}
	if agg, present := obj["output_text"]; present {
		if text, ok := contentText(agg); ok {
			b.WriteString(text)
			found = true
		}
	}
	return b.String(), found
}

// matchCollections handles bare "outputs"/"output" collections
// (Anthropic-style content blocks).
func matchCollections(obj map[string]any) (string, bool) {
	return collectionsText(obj, "outputs", "output")
}

// matchGenerations handles Cohere-style generations[].text.
func matchGenerations(obj map[string]any) (string, bool) {
	gens, ok := obj["generations"].([]any)
	if !ok {
		return "", false
	}
	var b strings.Builder
	found := false
	for _, item := range gens {
		gen, isObj := item.(map[string]any)
		if !isObj {
			continue
		}
		if text, ok := gen["text"].(string); ok {
			b.WriteString(text)
			found = true
		}
	}
	return b.String(), found
}

// matchGeneratedText handles the Hugging-Face generated_text field.
// The list-of-objects variant is unwrapped by extractValue.
func matchGeneratedText(obj map[string]any) (string, bool) {
	text, ok := obj["generated_text"].(string)
	return text, ok
}

// matchCandidates handles Gemini-style candidates[].content.parts.
func matchCandidates(obj map[string]any) (string, bool) {
	candidates, ok := obj["candidates"].([]any)
	if !ok {
		return "", false
	}
	var b strings.Builder
	found := false
	for _, item := range candidates {
		cand, isObj := item.(map[string]any)
		if !isObj {
			continue
		}
		content, isObj := cand["content"].(map[string]any)
		if !isObj {
			continue
		}
		if parts, ok := content["parts"].([]any); ok {
			if text, ok := joinFragments(parts); ok {
				b.WriteString(text)
				found = true
			}
		}
	}
	return b.String(), found
}

// collectionsText resolves the named top-level collections in order.
func collectionsText(obj map[string]any, keys ...string) (string, bool) {
	var b strings.Builder
	found := false
	for _, key := range keys {
		v, present := obj[key]
		if !present {
			continue
		}
		if text, ok := collectionText(v); ok {
			b.WriteString(text)
			found = true
		}
	}
	return b.String(), found
}

func collectionText(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case []any:
		return joinFragments(val)
	case map[string]any:
		if text, ok := fragmentText(val); ok {
			return text, true
		}
		return extractObject(val)
	}
	return "", false
}

// contentText resolves a message content field: a plain string, a
// fragment list, or a single fragment object.
func contentText(v any) (string, bool) {
	switch c := v.(type) {
	case string:
		return c, true
	case []any:
		return joinFragments(c)
	case map[string]any:
		return fragmentText(c)
	}
	return "", false
}

// joinFragments concatenates fragment texts in list order, so no
// token is dropped and order is preserved.
func joinFragments(list []any) (string, bool) {
	var b strings.Builder
	found := false
	for _, item := range list {
		if text, ok := fragmentText(item); ok {
			b.WriteString(text)
			found = true
		}
	}
	if !found {
		return "", false
	}
	return b.String(), true
}

// fragmentText resolves one fragment: a plain string, or an object
// carrying a base "value" (or "text") string plus optional nested
// "segments"/"parts" fragments which follow the base value in order.
// An empty base value is omitted rather than emitted.
func fragmentText(v any) (string, bool) {
	switch frag := v.(type) {
	case string:
		return frag, true
	case []any:
		return joinFragments(frag)
	case map[string]any:
		var b strings.Builder
		found := false
		base, hasBase := stringField(frag, "value")
		if !hasBase {
			base, hasBase = stringField(frag, "text")
		}
		if hasBase {
			found = true
			if base != "" {
				b.WriteString(base)
			}
		}
		for _, key := range []string{"segments", "parts"} {
			if nested, ok := frag[key].([]any); ok {
				if text, ok := joinFragments(nested); ok {
					b.WriteString(text)
					found = true
				}
			}
		}
		if found {
			return b.String(), true
		}
		if text, ok := contentText(frag["content"]); ok {
			return text, true
		}
	}
	return "", false
}

func stringField(obj map[string]any, key string) (string, bool) {
	s, ok := obj[key].(string)
	return s, ok
}
