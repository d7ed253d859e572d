package bookmarks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestParseMarkup_BuildsElementTree(t *testing.T) {
	root, err := parseMarkup(`<DL><DT></DT><A HREF="https://a.example/?x=1&amp;y=2">A</A><HR><DL></DL></DL>`)
	require.NoError(t, err)

	assert.Equal(t, html.ElementNode, root.Type)
	assert.Equal(t, "dl", root.Data)

	var tags []string
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		tags = append(tags, c.Data)
	}
	assert.Equal(t, []string{"dt", "a", "hr", "dl"}, tags)

	anchor := root.FirstChild.NextSibling
	require.Len(t, anchor.Attr, 1)
	assert.Equal(t, "href", anchor.Attr[0].Key)
	assert.Equal(t, "https://a.example/?x=1&y=2", anchor.Attr[0].Val)
}

func TestParseMarkup_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"mismatched end tag", "<invalid></file>"},
		{"unclosed element", "<dl><dt></dt><a href=\"x\">x</dl>"},
		{"unclosed root", "<dl><dl></dl>"},
		{"stray end tag", "</dl>"},
		{"second root element", "<dl></dl><dl></dl>"},
		{"text after root", "<dl></dl> trailing"},
		{"empty document", "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseMarkup(tt.input)
			assert.ErrorIs(t, err, ErrMalformedDocument)
		})
	}
}

func TestParseMarkup_IgnoresCommentsAndWhitespace(t *testing.T) {
	root, err := parseMarkup("<dl>\n  <!-- note -->\n  <dt></dt>\n</dl>\n\n")
	require.NoError(t, err)

	elements := 0
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			elements++
		}
	}
	assert.Equal(t, 1, elements)
}
