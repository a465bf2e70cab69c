package generator

import (
	"bytes"
	"strings"

	// Packages
	goldmark "github.com/yuin/goldmark"
	ast "github.com/yuin/goldmark/ast"
	text "github.com/yuin/goldmark/text"
	cases "golang.org/x/text/cases"
	language "golang.org/x/text/language"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// section is a level-two heading and the markdown which follows it, up to
// the next level-two heading
type section struct {
	Title string
	Body  string
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// sections splits markdown on its top-level "##" headings. Headings inside
// code blocks, lists or quotes are not section boundaries.
func sections(markdown string) []section {
	source := []byte(markdown)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	type mark struct {
		title      string
		start, end int // line containing the heading
	}
	var marks []mark
	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		heading, ok := node.(*ast.Heading)
		if !ok || heading.Level != 2 || heading.Lines().Len() == 0 {
			continue
		}
		seg := heading.Lines().At(0)
		start := bytes.LastIndexByte(source[:seg.Start], '\n') + 1
		end := len(source)
		if i := bytes.IndexByte(source[seg.Stop:], '\n'); i >= 0 {
			end = seg.Stop + i + 1
		}
		marks = append(marks, mark{
			title: strings.TrimSpace(string(seg.Value(source))),
			start: start,
			end:   end,
		})
	}

	result := make([]section, 0, len(marks))
	for i, m := range marks {
		stop := len(source)
		if i+1 < len(marks) {
			stop = marks[i+1].start
		}
		result = append(result, section{
			Title: m.title,
			Body:  strings.TrimSpace(string(source[m.end:stop])),
		})
	}
	return result
}

// sectionKey returns the lower-cased title with whitespace runs replaced
// by underscores
func sectionKey(title string) string {
	return strings.Join(strings.Fields(cases.Lower(language.English).String(title)), "_")
}
