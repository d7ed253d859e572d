package bookmarks

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// emptyElements never open a scope. Besides the HTML void elements this holds
// <dd>, which bookmark exports use for unclosed folder descriptions.
var emptyElements = map[string]bool{
	"br":    true,
	"dd":    true,
	"hr":    true,
	"img":   true,
	"input": true,
	"link":  true,
	"meta":  true,
}

// parseMarkup builds a generic element tree from normalized markup and
// returns its single top-level element. Unlike html.Parse it does not repair
// anything: mismatched or unclosed tags and content outside the top-level
// element are reported as ErrMalformedDocument.
func parseMarkup(document string) (*html.Node, error) {
	z := html.NewTokenizer(strings.NewReader(document))

	doc := &html.Node{Type: html.DocumentNode}
	stack := []*html.Node{doc}

	for {
		tt := z.Next()
		top := stack[len(stack)-1]

		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
			}
			if len(stack) > 1 {
				return nil, fmt.Errorf("%w: unclosed <%s>", ErrMalformedDocument, top.Data)
			}
			if doc.FirstChild == nil {
				return nil, fmt.Errorf("%w: no root element", ErrMalformedDocument)
			}
			return doc.FirstChild, nil

		case html.TextToken:
			text := string(z.Text())
			if top == doc {
				if strings.TrimSpace(text) != "" {
					return nil, fmt.Errorf("%w: text outside the root element", ErrMalformedDocument)
				}
				continue
			}
			top.AppendChild(&html.Node{Type: html.TextNode, Data: text})

		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			if top == doc && doc.FirstChild != nil {
				return nil, fmt.Errorf("%w: <%s> after the root element", ErrMalformedDocument, tok.Data)
			}

			node := &html.Node{
				Type:     html.ElementNode,
				Data:     tok.Data,
				DataAtom: tok.DataAtom,
				Attr:     tok.Attr,
			}
			top.AppendChild(node)

			if tt == html.StartTagToken && !emptyElements[tok.Data] {
				stack = append(stack, node)
			}

		case html.EndTagToken:
			tok := z.Token()
			if emptyElements[tok.Data] {
				continue
			}
			if top == doc {
				return nil, fmt.Errorf("%w: unexpected </%s>", ErrMalformedDocument, tok.Data)
			}
			if top.Data != tok.Data {
				return nil, fmt.Errorf("%w: </%s> closes <%s>", ErrMalformedDocument, tok.Data, top.Data)
			}
			stack = stack[:len(stack)-1]
		}
		// comments and doctypes carry nothing
	}
}
