package scrape

import (
	"strings"

	"golang.org/x/net/html"
)

// Elements that never contribute readable content.
var skippedElements = map[string]bool{
	"script":   true,
	"style":    true,
	"nav":      true,
	"footer":   true,
	"header":   true,
	"aside":    true,
	"noscript": true,
	"iframe":   true,
	"svg":      true,
	"form":     true,
}

// Class name fragments that usually mark the main content container.
var contentClassHints = []string{"content", "article", "post", "entry", "text"}

// ExtractText extracts the main readable text from an HTML document.
// It prefers marked content containers, falls back to long paragraphs,
// and finally to all visible text. Whitespace is collapsed to single
// spaces.
func ExtractText(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return ""
	}

	var containers []*html.Node
	var paragraphs []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if skippedElements[n.Data] {
				return
			}
			switch n.Data {
			case "article", "main", "div":
				if n.Data != "div" || hasContentClass(n) {
					containers = append(containers, n)
				}
			case "p":
				paragraphs = append(paragraphs, n)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	var parts []string
	for _, n := range containers {
		if t := nodeText(n); t != "" {
			parts = append(parts, t)
		}
	}

	// No marked containers: fall back to substantial paragraphs.
	if len(parts) == 0 {
		for _, p := range paragraphs {
			if t := nodeText(p); len(t) > 40 {
				parts = append(parts, t)
			}
		}
	}

	// Still nothing: take all visible text.
	if len(parts) == 0 {
		if t := nodeText(doc); t != "" {
			parts = append(parts, t)
		}
	}

	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

// hasContentClass reports whether a div's class attribute contains one
// of the usual content container hints.
func hasContentClass(n *html.Node) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		class := strings.ToLower(attr.Val)
		for _, hint := range contentClassHints {
			if strings.Contains(class, hint) {
				return true
			}
		}
	}
	return false
}

// nodeText collects the text nodes under n, skipping non-content
// elements.
func nodeText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && skippedElements[n.Data] {
			return
		}
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return strings.TrimSpace(buf.String())
}
