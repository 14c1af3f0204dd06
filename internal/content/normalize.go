package content

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is a generated post ready for publication.
type Document struct {
	Header string
	Body   string
	// Tags is a comma-space joined list, see ExtractTags.
	Tags string
}

// String returns the publishable markdown: header followed by body.
func (d Document) String() string {
	return d.Header + d.Body
}

// Header builds the front matter block for a post. Only the title is
// emitted; category and tags live in the catalog record.
func Header(topic string) string {
	node := &yaml.Node{
		Kind: yaml.MappingNode,
		Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Value: "title"},
			{Kind: yaml.ScalarNode, Value: topic, Style: yaml.DoubleQuotedStyle},
		},
	}

	out, err := yaml.Marshal(node)
	if err != nil {
		// Unreachable for a two-scalar mapping.
		return fmt.Sprintf("---\ntitle: %q\n---\n", topic)
	}

	return "---\n" + string(out) + "---\n"
}

const frontMatterDelim = "---\n"

// StripFrontMatter drops a leading YAML block opened and closed by "---"
// lines, as written by Header. Text without one is returned unchanged.
func StripFrontMatter(document string) string {
	rest, ok := strings.CutPrefix(document, frontMatterDelim)
	if !ok {
		return document
	}

	if body, ok := strings.CutPrefix(rest, frontMatterDelim); ok {
		return body
	}

	if idx := strings.Index(rest, "\n"+frontMatterDelim); idx >= 0 {
		return rest[idx+1+len(frontMatterDelim):]
	}

	if strings.HasSuffix(rest, "\n---") {
		return ""
	}

	return document
}

// StripFirstLine drops the first line of text, which the model uses to echo
// the title. Text with a single line yields an empty body.
func StripFirstLine(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")

	return strings.Join(lines[1:], "\n")
}

// Normalize turns raw generated text into a Document for topic. Tags are
// extracted from the raw text before the first line is dropped.
func Normalize(raw, topic string) Document {
	return Document{
		Header: Header(topic),
		Body:   StripFirstLine(raw),
		Tags:   ExtractTags(raw),
	}
}

// NormalizeResult resolves a generation Result and normalizes it.
func NormalizeResult(res Result, topic string) (Document, error) {
	raw, err := res.Text()
	if err != nil {
		return Document{}, fmt.Errorf("failed to read generation result: %w", err)
	}

	return Normalize(raw, topic), nil
}
