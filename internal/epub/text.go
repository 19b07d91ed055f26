package epub

import (
	"bytes"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Elements whose entire subtree is dropped during text extraction.
var skipElements = map[string]bool{
	"script": true,
	"style":  true,
	"head":   true,
	"meta":   true,
	"link":   true,
}

// ExtractText assembles plain text from the archive's HTML content documents,
// in ascending lexicographic entry-name order, stopping once maxChars
// characters have accumulated. The last appended document may overshoot the
// cap; documents are never split.
//
// Entries whose name contains "toc" are excluded to keep table-of-contents
// boilerplate out of the text. The check is a case-sensitive substring match,
// so names like "TOC.xhtml" slip through and names like "stock.xhtml" are
// over-excluded.
func (r *Reader) ExtractText(maxChars int) string {
	var names []string
	for _, f := range r.zr.File {
		name := f.Name
		if !isHTMLName(name) || strings.Contains(name, "toc") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var parts []string
	total := 0
	for _, name := range names {
		if total >= maxChars {
			break
		}

		data, err := r.ReadFile(name)
		if err != nil {
			continue
		}
		text, err := stripMarkup(data)
		if err != nil {
			continue
		}

		parts = append(parts, text)
		total += utf8.RuneCountInString(text)
	}

	return strings.Join(parts, " ")
}

// stripMarkup parses an HTML document and returns its text content, text
// nodes joined with single spaces. Subtrees of script/style/head/meta/link
// are dropped entirely.
func stripMarkup(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", err
	}

	var parts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && skipElements[n.Data] {
			return
		}
		if n.Type == html.TextNode && n.Data != "" {
			parts = append(parts, n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range doc.Selection.Nodes {
		walk(n)
	}

	return strings.Join(parts, " "), nil
}

// isHTMLName reports whether an entry name looks like an HTML/XHTML
// content document.
func isHTMLName(name string) bool {
	return strings.HasSuffix(name, ".html") ||
		strings.HasSuffix(name, ".xhtml") ||
		strings.HasSuffix(name, ".htm")
}
