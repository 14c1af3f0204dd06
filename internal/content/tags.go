package content

import (
	"regexp"
	"strings"
)

var (
	hashtagPattern = regexp.MustCompile(`#+[a-zA-Z0-9(_)]+`)
	tagDisallowed  = regexp.MustCompile(`[^a-zA-Z]`)
)

// minTagLength is exclusive: a tag must be longer than this to be kept.
const minTagLength = 3

// ExtractTags collects hashtags from raw generated text and returns them as a
// single comma-space joined string. Only ASCII letters survive cleaning, tags
// of three letters or fewer are dropped and duplicates keep their first
// position. No hashtags yields an empty string. The length filter runs on the
// cleaned tag rather than the raw match, so "#EV(1)" is dropped instead of
// yielding "EV".
func ExtractTags(raw string) string {
	seen := make(map[string]struct{})
	tags := make([]string, 0)

	for _, match := range hashtagPattern.FindAllString(raw, -1) {
		tag := tagDisallowed.ReplaceAllString(match[1:], "")
		if len(tag) <= minTagLength {
			continue
		}

		if _, dup := seen[tag]; dup {
			continue
		}

		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}

	return strings.Join(tags, ", ")
}

// SplitTags reverses ExtractTags for display purposes.
func SplitTags(tags string) []string {
	if strings.TrimSpace(tags) == "" {
		return nil
	}

	parts := strings.Split(tags, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}
