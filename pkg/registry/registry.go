// Package registry parses the llms.txt endpoint document and resolves
// a single LLM endpoint from it.
//
// The document is Markdown-like: an optional preamble, a "## LLM
// Endpoints" heading, then bullet entries of the form "- [Name](url)".
// Parsing is a pure function of the input text; every call produces a
// fresh Registry with no shared state, so concurrent use needs no
// locking.
package registry

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// sectionTitle is the normalized heading that opens the endpoint section.
const sectionTitle = "llm endpoints"

// Endpoint is a named LLM service URL entry from the registry document.
// URL is preserved exactly as written between the link parentheses,
// including any interior whitespace.
type Endpoint struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Registry is the ordered set of endpoints parsed from one document.
// The first entry is the implicit default.
type Registry []Endpoint

// Parse extracts endpoints from the document text in document order.
// A missing or unrecognized heading yields an empty registry, not an
// error. Malformed bullet lines and non-http(s) URLs are skipped.
func Parse(text string) Registry {
	var endpoints Registry
	inSection := false
	hasEntry := false

	for _, line := range strings.Split(text, "\n") {
		stripped := strings.TrimSpace(line)

		// Single-# lines are comments. Once entries have accumulated
		// they also close the section.
		if strings.HasPrefix(stripped, "#") && !strings.HasPrefix(stripped, "##") {
			if inSection && hasEntry {
				inSection = false
				hasEntry = false
			}
			continue
		}

		if level := headingLevel(stripped); level > 0 {
			// Sub-headings (### or deeper) never end the section.
			if level <= 2 {
				title := normalizeHeadingTitle(stripped[level:])
				inSection = strings.EqualFold(title, sectionTitle)
				hasEntry = false
			}
			continue
		}

		if !inSection || stripped == "" {
			continue
		}
		switch stripped[0] {
		case '-', '*', '+':
		default:
			continue
		}

		content := strings.TrimLeftFunc(stripped[1:], unicode.IsSpace)
		name, url, ok := parseMarkdownLink(content)
		if !ok {
			continue
		}
		trimmed := strings.TrimSpace(url)
		if trimmed == "" {
			continue
		}
		lowered := strings.ToLower(trimmed)
		if !strings.HasPrefix(lowered, "http://") && !strings.HasPrefix(lowered, "https://") {
			continue
		}
		endpoints = append(endpoints, Endpoint{Name: name, URL: url})
		hasEntry = true
	}
	return endpoints
}

// Load reads and parses the registry document at path. Environment
// variables and a leading ~ in path are expanded. A missing file is
// not an error; it yields an empty registry.
func Load(path string) (Registry, error) {
	expanded, err := expandPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(expanded)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("registry: read %s: %w", expanded, err)
	}
	return Parse(string(data)), nil
}

// Names returns the endpoint display names in document order.
func (r Registry) Names() []string {
	names := make([]string, len(r))
	for i, ep := range r {
		names[i] = ep.Name
	}
	return names
}

// headingLevel counts the leading '#' characters of a stripped line.
// Zero means the line is not a heading.
func headingLevel(s string) int {
	n := 0
	for n < len(s) && s[n] == '#' {
		n++
	}
	return n
}

// normalizeHeadingTitle drops trailing '#' markers and an optional
// trailing colon, then collapses interior whitespace, so headings like
// "## LLM Endpoints ##:" still match.
func normalizeHeadingTitle(raw string) string {
	title := strings.TrimSpace(raw)
	for strings.HasSuffix(title, "#") || strings.HasSuffix(title, ":") {
		title = strings.TrimRightFunc(title[:len(title)-1], unicode.IsSpace)
	}
	return strings.Join(strings.Fields(title), " ")
}

// parseMarkdownLink scans a "[name](url)" link. The URL may contain
// balanced parentheses; an explicit depth counter captures the whole
// group, preserving interior whitespace verbatim.
func parseMarkdownLink(s string) (name, url string, ok bool) {
	open := strings.IndexByte(s, '[')
	if open < 0 {
		return "", "", false
	}
	closing := strings.IndexByte(s[open+1:], ']')
	if closing < 0 {
		return "", "", false
	}
	closing += open + 1
	name = s[open+1 : closing]

	i := closing + 1
	for i < len(s) && unicode.IsSpace(rune(s[i])) {
		i++
	}
	if i >= len(s) || s[i] != '(' {
		return "", "", false
	}
	i++
	depth := 1
	start := i
	for i < len(s) {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return name, s[start:i], true
			}
		}
		i++
	}
	return "", "", false
}

// expandPath expands environment variables and a leading ~.
func expandPath(path string) (string, error) {
	expanded := os.ExpandEnv(path)
	if expanded == "~" || strings.HasPrefix(expanded, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("registry: expand %s: %w", path, err)
		}
		expanded = filepath.Join(home, expanded[1:])
	}
	return expanded, nil
}
