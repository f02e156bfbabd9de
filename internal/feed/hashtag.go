package feed

import (
	"regexp"
	"strings"
)

// hashtagPattern matches a # followed by one or more word characters
// (letters, digits, underscore).
var hashtagPattern = regexp.MustCompile(`#[\p{L}\p{N}_]+`)

// ExtractHashtags scans text for #hashtag tokens and returns their normalized
// names: leading # stripped, lowercased, deduplicated in first-occurrence
// order. Empty input yields an empty result; there are no error conditions.
func ExtractHashtags(text string) []string {
	matches := hashtagPattern.FindAllString(text, -1)

	seen := make(map[string]bool, len(matches))
	tags := make([]string, 0, len(matches))
	for _, match := range matches {
		name := strings.ToLower(match[1:])
		if seen[name] {
			continue
		}
		seen[name] = true
		tags = append(tags, name)
	}
	return tags
}

// NormalizeTag lowercases a hashtag name and strips a leading # if present,
// so lookups accept both "go" and "#Go".
func NormalizeTag(name string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "#"))
}
