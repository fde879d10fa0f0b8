// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// skipTags never contribute text.
var skipTags = map[string]bool{
	"script": true, "style": true, "noscript": true, "template": true,
	"nav": true, "footer": true, "header": true, "aside": true,
}

// blockTags start and end a line so each question stem and option lands
// on its own line.
var blockTags = map[string]bool{
	"p": true, "div": true, "li": true, "dt": true, "dd": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"tr": true, "td": true, "th": true, "blockquote": true, "section": true,
	"article": true, "main": true, "ul": true, "ol": true, "table": true,
	"label": true, "form": true, "fieldset": true, "legend": true,
}

// htmlToText extracts readable text from an HTML document, preferring
// <main>, then <article>, then <body>.
func htmlToText(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", err
	}

	root := doc
	for _, tag := range []string{"main", "article", "body"} {
		if n := findFirst(doc, tag); n != nil {
			root = n
			break
		}
	}

	var b strings.Builder
	collect(&b, root, false)
	return normalizeLines(b.String()), nil
}

func findFirst(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func collect(b *strings.Builder, n *html.Node, inPre bool) {
	switch n.Type {
	case html.TextNode:
		if inPre {
			b.WriteString(n.Data)
			return
		}
		b.WriteString(collapseSpace(n.Data))
		return
	case html.ElementNode:
		if skipTags[n.Data] {
			return
		}
		if n.Data == "br" {
			b.WriteByte('\n')
			return
		}
	}

	block := n.Type == html.ElementNode && (blockTags[n.Data] || n.Data == "pre")
	if block {
		b.WriteByte('\n')
	}
	pre := inPre || (n.Type == html.ElementNode && n.Data == "pre")
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collect(b, c, pre)
	}
	if block {
		b.WriteByte('\n')
	}
}

// collapseSpace folds whitespace runs to one space, keeping a single
// leading or trailing space so adjacent inline elements stay separated.
func collapseSpace(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		if s == "" {
			return ""
		}
		return " "
	}
	out := strings.Join(fields, " ")
	if strings.TrimLeft(s, " \t\n\r\f") != s {
		out = " " + out
	}
	if strings.TrimRight(s, " \t\n\r\f") != s {
		out += " "
	}
	return out
}

// normalizeLines trims each line, collapses inner whitespace runs, and
// drops empty lines.
func normalizeLines(s string) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
