package config

import "strings"

// ParseKeywords splits free-form text into terms: one per line, or
// comma-separated within a line. Blanks are dropped; duplicates are kept.
func ParseKeywords(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		for _, p := range strings.Split(line, ",") {
			p = strings.TrimSpace(p)
			if p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

// KeywordsToText is the inverse used when showing lists for editing.
func KeywordsToText(words []string) string {
	return strings.Join(words, "\n")
}
