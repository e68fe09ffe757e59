package utils

import "strings"

// ParseHashtags splits a comma-separated hashtag string into clean tags:
// whitespace trimmed, a single leading '#' stripped, empties dropped. Order is
// preserved and duplicates are kept.
func ParseHashtags(raw string) []string {
	tags := []string{}
	for _, part := range strings.Split(raw, ",") {
		tag := strings.TrimSpace(part)
		tag = strings.TrimPrefix(tag, "#")
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}
