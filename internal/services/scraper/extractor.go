package scraper

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractedSection is one heading-delimited content block in document order
type ExtractedSection struct {
	Level       int // 1..3
	Heading     string
	Body        string
	Ordinal     int
	ContentHash string
}

// contentSelectors are tried in order to locate the main content node.
// The Django docs have changed their markup over the years, so several
// fallbacks are kept.
var contentSelectors = []string{
	"#content",
	"div.document",
	"main",
	"article",
	"[role=main]",
	"body",
}

// skipClasses marks navigation chrome that must not leak into section bodies
var skipClasses = []string{"breadcrumbs", "contents", "footer", "navigation", "sphinxsidebar"}

// SectionIterator is a lazy, finite, restartable sequence of extracted
// sections in document order. Bodies are materialized on demand in Next.
type SectionIterator struct {
	url      string
	title    string
	headings []*goquery.Selection
	pos      int
	// fallback is set when the page has no headings but does have body text;
	// the whole page becomes a single level-1 section titled by the page title.
	fallback     *ExtractedSection
	fallbackDone bool
}

// Extract parses raw HTML and returns an iterator over its sections,
// partitioned by h1-h3 headings. A page without a recognizable content root,
// or with neither headings nor body text, yields a ParseError.
func Extract(html []byte, sourceURL string) (*SectionIterator, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, NewParseError(sourceURL, fmt.Sprintf("invalid HTML: %v", err))
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = "Django Documentation"
	}

	var root *goquery.Selection
	for _, selector := range contentSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() > 0 {
			root = sel
			break
		}
	}
	if root == nil {
		return nil, NewParseError(sourceURL, "no content root found")
	}

	it := &SectionIterator{url: sourceURL, title: title}

	root.Find("h1, h2, h3").Each(func(_ int, s *goquery.Selection) {
		if isSkippable(s) {
			return
		}
		it.headings = append(it.headings, s)
	})

	if len(it.headings) == 0 {
		// No heading structure: fall back to a single section built from the
		// leading paragraphs, matching the upstream landing pages.
		body := collectLooseBody(root)
		if body == "" {
			return nil, NewParseError(sourceURL, "no headings and no body text")
		}
		it.fallback = &ExtractedSection{
			Level:       1,
			Heading:     title,
			Body:        body,
			Ordinal:     0,
			ContentHash: hashText(body),
		}
	}

	return it, nil
}

// Title returns the page title from the HTML <title> tag
func (it *SectionIterator) Title() string {
	return it.title
}

// Next returns the next section in document order. The boolean is false when
// the sequence is exhausted.
func (it *SectionIterator) Next() (ExtractedSection, bool) {
	if it.fallback != nil {
		if it.fallbackDone {
			return ExtractedSection{}, false
		}
		it.fallbackDone = true
		return *it.fallback, true
	}

	if it.pos >= len(it.headings) {
		return ExtractedSection{}, false
	}

	heading := it.headings[it.pos]
	ordinal := it.pos
	it.pos++

	level := headingLevel(goquery.NodeName(heading))
	body := collectBody(heading)

	return ExtractedSection{
		Level:       level,
		Heading:     strings.TrimSpace(heading.Text()),
		Body:        body,
		Ordinal:     ordinal,
		ContentHash: hashText(body),
	}, true
}

// Reset rewinds the iterator to the first section
func (it *SectionIterator) Reset() {
	it.pos = 0
	it.fallbackDone = false
}

// All drains the iterator into a slice, restarting it first
func (it *SectionIterator) All() []ExtractedSection {
	it.Reset()
	var sections []ExtractedSection
	for {
		section, ok := it.Next()
		if !ok {
			return sections
		}
		sections = append(sections, section)
	}
}

func headingLevel(nodeName string) int {
	switch nodeName {
	case "h1":
		return 1
	case "h2":
		return 2
	default:
		return 3
	}
}

// collectBody gathers the content between a heading and the next heading,
// converting pre blocks to fenced code and lists to dash items.
func collectBody(heading *goquery.Selection) string {
	var buf strings.Builder

	for node := heading.Next(); node.Length() > 0; node = node.Next() {
		name := goquery.NodeName(node)
		if name == "h1" || name == "h2" || name == "h3" || name == "h4" {
			break
		}
		appendElementText(&buf, node, name)
	}

	return strings.TrimSpace(buf.String())
}

// collectLooseBody gathers leading paragraph content for pages without headings
func collectLooseBody(root *goquery.Selection) string {
	var buf strings.Builder
	count := 0

	root.Find("p, pre, ul, ol").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if isSkippable(s) {
			return true
		}
		appendElementText(&buf, s, goquery.NodeName(s))
		count++
		return count < 10
	})

	return strings.TrimSpace(buf.String())
}

func appendElementText(buf *strings.Builder, s *goquery.Selection, name string) {
	if isSkippable(s) {
		return
	}

	switch name {
	case "pre":
		buf.WriteString("\n```\n")
		buf.WriteString(s.Text())
		buf.WriteString("\n```\n")
	case "ul", "ol":
		buf.WriteString("\n")
		s.Find("li").Each(func(_ int, li *goquery.Selection) {
			buf.WriteString("- ")
			buf.WriteString(strings.TrimSpace(li.Text()))
			buf.WriteString("\n")
		})
	case "p", "div", "section", "article", "dl", "blockquote":
		text := strings.TrimSpace(s.Text())
		if text != "" {
			buf.WriteString("\n")
			buf.WriteString(text)
			buf.WriteString("\n")
		}
	}
}

// isSkippable reports whether the node or any of its ancestors carries one
// of the navigation chrome classes.
func isSkippable(s *goquery.Selection) bool {
	for sel := s; sel.Length() > 0; sel = sel.Parent() {
		class, _ := sel.Attr("class")
		for _, skip := range skipClasses {
			if class != "" && strings.Contains(class, skip) {
				return true
			}
		}
		if goquery.NodeName(sel) == "body" {
			break
		}
	}
	return false
}

func hashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
