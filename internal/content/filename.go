package content

import (
	"fmt"
	"strings"
	"time"
)

// Slug lowercases a topic and joins its words with hyphens. Non-ASCII
// characters are kept so Korean topics stay readable.
// Example: "Voice CLI Improvements" -> "voice-cli-improvements"
func Slug(topic string) string {
	return strings.Join(strings.Fields(strings.ToLower(topic)), "-")
}

// PostDate returns the date stamp used for posts generated at now: the
// previous calendar day in now's location, formatted YYYY-MM-DD.
func PostDate(now time.Time) string {
	return now.AddDate(0, 0, -1).Format(time.DateOnly)
}

// Filename derives the post filename for topic generated at now.
// The same topic on the same local day always yields the same name.
func Filename(topic string, now time.Time) string {
	return fmt.Sprintf("%s-%s.md", PostDate(now), Slug(topic))
}

// ArchiveName is the name of the batch archive produced at now.
func ArchiveName(now time.Time) string {
	return fmt.Sprintf("%s-blog-files.zip", PostDate(now))
}
