// Package markup converts the HTML fragments allowed in item text into
// plain terminal text.
package markup

import (
	"strings"

	"golang.org/x/net/html"
)

// Strip removes tags from an HTML fragment and unescapes entities. Block
// and break elements become newlines so multi-line fragments keep their
// shape. Plain text passes through unchanged.
func Strip(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return fragment
	}

	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.TrimRight(b.String(), "\n")
		case html.TextToken:
			b.WriteString(string(z.Text()))
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "br", "p", "div", "li", "ul", "ol", "pre":
				if b.Len() > 0 && !strings.HasSuffix(b.String(), "\n") {
					b.WriteByte('\n')
				}
			}
		}
	}
}

// Lines strips a fragment and splits it into display lines.
func Lines(fragment string) []string {
	stripped := Strip(fragment)
	if stripped == "" {
		return nil
	}
	return strings.Split(stripped, "\n")
}
