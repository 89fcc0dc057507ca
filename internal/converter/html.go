// Package converter renders document bodies for display.
package converter

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// HTMLConfig holds configuration for Markdown to HTML conversion.
type HTMLConfig struct {
	// Unsafe passes raw HTML in the body through instead of omitting it.
	Unsafe    bool
	HardWraps bool
}

// Heading is one heading found in a body, in document order.
type Heading struct {
	Level int    `json:"level" yaml:"level"`
	ID    string `json:"id" yaml:"id"`
	Text  string `json:"text" yaml:"text"`
}

// HTMLResult holds the result of Markdown to HTML conversion.
type HTMLResult struct {
	HTML     string
	Headings []Heading
}

// ToHTML renders a Markdown body with GFM extensions and auto heading IDs.
func ToHTML(markdown []byte, cfg HTMLConfig) (HTMLResult, error) {
	engine := newEngine(cfg)

	doc := engine.Parser().Parse(text.NewReader(markdown))
	headings, err := collectHeadings(doc, markdown)
	if err != nil {
		return HTMLResult{}, err
	}

	var buf bytes.Buffer
	if err := engine.Renderer().Render(&buf, markdown, doc); err != nil {
		return HTMLResult{}, fmt.Errorf("render markdown: %w", err)
	}
	return HTMLResult{HTML: buf.String(), Headings: headings}, nil
}

func newEngine(cfg HTMLConfig) goldmark.Markdown {
	options := []goldmark.Option{
		goldmark.WithExtensions(extension.GFM, extension.Footnote),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	}
	var htmlOptions []renderer.Option
	if cfg.Unsafe {
		htmlOptions = append(htmlOptions, html.WithUnsafe())
	}
	if cfg.HardWraps {
		htmlOptions = append(htmlOptions, html.WithHardWraps())
	}
	if len(htmlOptions) > 0 {
		options = append(options, goldmark.WithRendererOptions(htmlOptions...))
	}
	return goldmark.New(options...)
}

func collectHeadings(doc ast.Node, source []byte) ([]Heading, error) {
	var headings []Heading
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		heading, ok := n.(*ast.Heading)
		if !ok || !entering {
			return ast.WalkContinue, nil
		}
		h := Heading{Level: heading.Level, Text: headingText(heading, source)}
		if id, found := heading.AttributeString("id"); found {
			if b, isBytes := id.([]byte); isBytes {
				h.ID = string(b)
			}
		}
		headings = append(headings, h)
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return nil, fmt.Errorf("collect headings: %w", err)
	}
	return headings, nil
}

func headingText(heading *ast.Heading, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(heading, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Text:
			buf.Write(node.Segment.Value(source))
		case *ast.String:
			buf.Write(node.Value)
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}
