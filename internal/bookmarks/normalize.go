package bookmarks

import (
	"regexp"
	"strings"
)

// List markers that open the outermost folder body
const (
	listMarkerLower = "<dl>"
	listMarkerUpper = "<DL>"
)

// markupRepairs strips paragraph markers and closes the bare <dt> markers
// exported by browsers.
var markupRepairs = strings.NewReplacer(
	"<p>", "",
	"<P>", "",
	"<dt>", "<dt></dt>",
	"<DT>", "<DT></DT>",
)

// ampersandPattern matches a bare ampersand or one that starts an entity
// reference (&name; &#123; &#x1F;).
var ampersandPattern = regexp.MustCompile(`&(?:[A-Za-z][A-Za-z0-9]*;|#[0-9]+;|#[xX][0-9A-Fa-f]+;)?`)

// Normalize repairs the constructs of a bookmarks export that are not
// well-formed markup so the result can be parsed as a tree. Everything before
// the first list marker is dropped; a document without one is malformed.
func Normalize(document string) (string, error) {
	document = markupRepairs.Replace(document)

	start := firstListMarker(document)
	if start < 0 {
		return "", ErrNoListMarker
	}
	document = document[start:]

	return escapeAmpersands(document), nil
}

// firstListMarker returns the index of the first <dl> or <DL>, or -1
func firstListMarker(document string) int {
	lower := strings.Index(document, listMarkerLower)
	upper := strings.Index(document, listMarkerUpper)

	switch {
	case lower < 0:
		return upper
	case upper < 0:
		return lower
	default:
		return min(lower, upper)
	}
}

// escapeAmpersands escapes every ampersand that is not part of an entity
func escapeAmpersands(document string) string {
	return ampersandPattern.ReplaceAllStringFunc(document, func(match string) string {
		if match == "&" {
			return "&amp;"
		}
		return match
	})
}
