package content

import (
	"errors"
	"strings"
)

// ErrMalformedOutput is returned when a generation result is neither a single
// text nor a list of text fragments.
var ErrMalformedOutput = errors.New("malformed generation output")

type resultKind int

const (
	resultUnknown resultKind = iota
	resultSingleText
	resultFragmentList
)

// Result is the raw output of a Generator. Providers return either one text
// (OpenAI chat completions) or a list of text fragments (Anthropic content
// blocks); the variant is resolved once by Text.
type Result struct {
	kind      resultKind
	text      string
	fragments []string
}

// SingleText wraps a provider response that arrived as one string.
func SingleText(text string) Result {
	return Result{kind: resultSingleText, text: text}
}

// FragmentList wraps a provider response that arrived as ordered fragments.
func FragmentList(fragments ...string) Result {
	return Result{kind: resultFragmentList, fragments: fragments}
}

// Text coerces the result into a single string. Fragments are joined with a
// single space in their original order.
func (r Result) Text() (string, error) {
	switch r.kind {
	case resultSingleText:
		return r.text, nil
	case resultFragmentList:
		return strings.Join(r.fragments, " "), nil
	default:
		return "", ErrMalformedOutput
	}
}
