// Copyright 2026 The Poskit Authors
// SPDX-License-Identifier: Apache-2.0

package posui

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/poskit/poskit/lib/tui"
)

// markdownParserInstance is initialized once and reused. The parser
// configuration never changes and the goldmark Parser is safe to
// share; parsing creates per-call state via Parse(reader).
var (
	markdownParserInstance goldmark.Markdown
	markdownParserOnce     sync.Once
)

func getMarkdownParser() goldmark.Markdown {
	markdownParserOnce.Do(func() {
		markdownParserInstance = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		)
	})
	return markdownParserInstance
}

// renderMarkdown renders a product description as styled terminal
// text: headings and emphasis styled, paragraphs word-wrapped to
// width, fenced code blocks highlighted with chroma. Soft line breaks
// become spaces so hard-wrapped source reflows at any width.
func renderMarkdown(input string, theme tui.Theme, width int) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}
	source := []byte(input)
	document := getMarkdownParser().Parser().Parse(text.NewReader(source))

	// Force the ANSI256 profile: this output is always for the TUI,
	// and auto-detection yields uncolored output without a TTY.
	lipRenderer := lipgloss.NewRenderer(os.Stderr, termenv.WithProfile(termenv.ANSI256))
	lipRenderer.SetColorProfile(termenv.ANSI256)

	renderer := &markdownRenderer{
		source:      source,
		theme:       theme,
		width:       width,
		lipRenderer: lipRenderer,
	}
	ast.Walk(document, renderer.walk)
	return strings.TrimRight(renderer.output.String(), "\n")
}

// markdownRenderer walks a goldmark AST, accumulating inline text per
// block and word-wrapping it when the block closes.
type markdownRenderer struct {
	source      []byte
	theme       tui.Theme
	width       int
	lipRenderer *lipgloss.Renderer

	output strings.Builder
	inline strings.Builder

	boldDepth   int
	italicDepth int
	listDepth   int
	ordinal     []int // Per-level counter for ordered lists.
}

func (renderer *markdownRenderer) walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node := node.(type) {
	case *ast.Heading:
		if entering {
			renderer.inline.Reset()
		} else {
			style := renderer.lipRenderer.NewStyle().
				Bold(true).
				Foreground(renderer.theme.HeaderForeground)
			renderer.output.WriteString(style.Render(renderer.inline.String()))
			renderer.output.WriteString("\n\n")
			renderer.inline.Reset()
		}

	case *ast.Paragraph:
		if entering {
			renderer.inline.Reset()
		} else {
			renderer.flushWrapped()
			renderer.output.WriteByte('\n')
		}

	case *ast.Text:
		if entering {
			renderer.writeStyled(string(node.Segment.Value(renderer.source)))
			if node.SoftLineBreak() {
				renderer.inline.WriteByte(' ')
			}
			if node.HardLineBreak() {
				renderer.inline.WriteByte('\n')
			}
		}

	case *ast.Emphasis:
		if entering {
			if node.Level >= 2 {
				renderer.boldDepth++
			} else {
				renderer.italicDepth++
			}
		} else {
			if node.Level >= 2 {
				renderer.boldDepth--
			} else {
				renderer.italicDepth--
			}
		}

	case *ast.CodeSpan:
		if entering {
			style := renderer.lipRenderer.NewStyle().Foreground(renderer.theme.WarningColor)
			renderer.inline.WriteString(style.Render(string(node.Text(renderer.source))))
			return ast.WalkSkipChildren, nil
		}

	case *ast.List:
		if entering {
			renderer.listDepth++
			renderer.ordinal = append(renderer.ordinal, 0)
		} else {
			renderer.listDepth--
			renderer.ordinal = renderer.ordinal[:len(renderer.ordinal)-1]
			if renderer.listDepth == 0 {
				renderer.output.WriteByte('\n')
			}
		}

	case *ast.ListItem:
		if entering {
			renderer.inline.Reset()
			indent := strings.Repeat("  ", renderer.listDepth-1)
			parent, ok := node.Parent().(*ast.List)
			if ok && parent.IsOrdered() {
				renderer.ordinal[len(renderer.ordinal)-1]++
				renderer.output.WriteString(fmt.Sprintf("%s%d. ", indent, renderer.ordinal[len(renderer.ordinal)-1]))
			} else {
				renderer.output.WriteString(indent + "• ")
			}
		} else {
			renderer.output.WriteString(renderer.inline.String())
			renderer.output.WriteByte('\n')
			renderer.inline.Reset()
		}

	case *ast.FencedCodeBlock:
		if entering {
			renderer.writeCodeBlock(node)
			return ast.WalkSkipChildren, nil
		}

	case *ast.ThematicBreak:
		if entering {
			rule := renderer.lipRenderer.NewStyle().Foreground(renderer.theme.BorderColor)
			renderer.output.WriteString(rule.Render(strings.Repeat("─", renderer.width)))
			renderer.output.WriteString("\n\n")
		}
	}
	return ast.WalkContinue, nil
}

// writeStyled appends text to the inline buffer with the current
// emphasis state applied.
func (renderer *markdownRenderer) writeStyled(text string) {
	if renderer.boldDepth == 0 && renderer.italicDepth == 0 {
		renderer.inline.WriteString(text)
		return
	}
	style := renderer.lipRenderer.NewStyle()
	if renderer.boldDepth > 0 {
		style = style.Bold(true)
	}
	if renderer.italicDepth > 0 {
		style = style.Italic(true)
	}
	renderer.inline.WriteString(style.Render(text))
}

// flushWrapped word-wraps the inline buffer into the output. Wrapping
// counts visible width only approximately when styled spans are
// present, which is acceptable for short description text.
func (renderer *markdownRenderer) flushWrapped() {
	words := strings.Fields(renderer.inline.String())
	renderer.inline.Reset()
	lineLength := 0
	for index, word := range words {
		wordWidth := lipgloss.Width(word)
		if lineLength > 0 && lineLength+1+wordWidth > renderer.width {
			renderer.output.WriteByte('\n')
			lineLength = 0
		} else if index > 0 && lineLength > 0 {
			renderer.output.WriteByte(' ')
			lineLength++
		}
		renderer.output.WriteString(word)
		lineLength += wordWidth
	}
	renderer.output.WriteByte('\n')
}

// writeCodeBlock highlights a fenced block with chroma. Unknown or
// missing languages fall back to plain text.
func (renderer *markdownRenderer) writeCodeBlock(node *ast.FencedCodeBlock) {
	var code strings.Builder
	for index := 0; index < node.Lines().Len(); index++ {
		line := node.Lines().At(index)
		code.Write(line.Value(renderer.source))
	}

	language := string(node.Language(renderer.source))
	if language == "" {
		language = "text"
	}

	var highlighted strings.Builder
	if err := quick.Highlight(&highlighted, code.String(), language, "terminal256", "monokai"); err != nil {
		highlighted.Reset()
		highlighted.WriteString(code.String())
	}

	for _, line := range strings.Split(strings.TrimRight(highlighted.String(), "\n"), "\n") {
		renderer.output.WriteString("  " + line + "\n")
	}
	renderer.output.WriteByte('\n')
}
