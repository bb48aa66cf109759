package goldmark

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/fwojciec/murmur"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

const (
	codeGutter  = "│ "
	quoteGutter = "▎ "
	minWrap     = 10
)

type renderer struct {
	parser parser.Parser

	bold   lipgloss.Style
	italic lipgloss.Style
	strike lipgloss.Style
	code   lipgloss.Style
	head   lipgloss.Style
	muted  lipgloss.Style
	link   lipgloss.Style
}

func newRenderer(theme murmur.Theme) *renderer {
	md := goldmark.New(goldmark.WithExtensions(extension.Strikethrough, extension.Linkify))
	return &renderer{
		parser: md.Parser(),
		bold:   lipgloss.NewStyle().Bold(true),
		italic: lipgloss.NewStyle().Italic(true),
		strike: lipgloss.NewStyle().Strikethrough(true),
		code:   lipgloss.NewStyle().Foreground(color(theme.Accent)),
		head:   lipgloss.NewStyle().Foreground(color(theme.Accent)).Bold(true),
		muted:  lipgloss.NewStyle().Foreground(color(theme.Muted)),
		link:   lipgloss.NewStyle().Foreground(color(theme.Image)).Underline(true),
	}
}

func color(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}

func (r *renderer) render(source []byte, width int) string {
	doc := r.parser.Parse(text.NewReader(source))
	var buf bytes.Buffer
	r.blocks(doc, source, width, &buf)
	return strings.TrimRight(buf.String(), "\n")
}

func (r *renderer) blocks(node ast.Node, source []byte, width int, buf *bytes.Buffer) {
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		r.block(c, source, width, buf)
		if c.NextSibling() != nil {
			buf.WriteString("\n")
		}
	}
}

func (r *renderer) block(node ast.Node, source []byte, width int, buf *bytes.Buffer) {
	switch n := node.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		writeWrapped(buf, r.inline(n, source), width)

	case *ast.Heading:
		writeWrapped(buf, r.head.Render(r.inline(n, source)), width)

	case *ast.FencedCodeBlock:
		if lang := string(n.Language(source)); lang != "" {
			buf.WriteString(r.muted.Render(lang) + "\n")
		}
		r.codeLines(n, source, buf)

	case *ast.CodeBlock:
		r.codeLines(n, source, buf)

	case *ast.Blockquote:
		var inner bytes.Buffer
		r.blocks(n, source, max(width-len(quoteGutter), minWrap), &inner)
		gutter := r.muted.Render(quoteGutter)
		for _, line := range strings.Split(strings.TrimRight(inner.String(), "\n"), "\n") {
			buf.WriteString(gutter + line + "\n")
		}

	case *ast.List:
		r.list(n, source, width, buf, 0)

	case *ast.ThematicBreak:
		buf.WriteString(r.muted.Render(strings.Repeat("─", min(width, 40))) + "\n")

	case *ast.HTMLBlock:
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(source))
		}

	default:
		r.blocks(node, source, width, buf)
	}
}

func (r *renderer) codeLines(n ast.Node, source []byte, buf *bytes.Buffer) {
	gutter := r.muted.Render(codeGutter)
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.WriteString(gutter + strings.TrimRight(string(seg.Value(source)), "\n") + "\n")
	}
}

func (r *renderer) list(node *ast.List, source []byte, width int, buf *bytes.Buffer, depth int) {
	indent := strings.Repeat("  ", depth)
	num := node.Start
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		item, ok := c.(*ast.ListItem)
		if !ok {
			continue
		}
		marker := "• "
		if node.IsOrdered() {
			marker = strconv.Itoa(num) + ". "
			num++
		}

		var pending bytes.Buffer
		flush := func() {
			if pending.Len() == 0 {
				return
			}
			writeItem(buf, indent+marker, pending.String(), width)
			pending.Reset()
			marker = strings.Repeat(" ", len([]rune(marker)))
		}
		for ic := item.FirstChild(); ic != nil; ic = ic.NextSibling() {
			switch in := ic.(type) {
			case *ast.Paragraph, *ast.TextBlock:
				pending.WriteString(r.inline(in, source))
			case *ast.List:
				flush()
				r.list(in, source, width, buf, depth+1)
			default:
				r.block(ic, source, width, &pending)
			}
		}
		flush()
	}
}

func (r *renderer) inline(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		r.span(c, source, &buf)
	}
	return buf.String()
}

func (r *renderer) span(node ast.Node, source []byte, buf *bytes.Buffer) {
	switch n := node.(type) {
	case *ast.Text:
		buf.Write(n.Segment.Value(source))
		switch {
		case n.HardLineBreak():
			buf.WriteByte('\n')
		case n.SoftLineBreak():
			buf.WriteByte(' ')
		}

	case *ast.String:
		buf.Write(n.Value)

	case *ast.Emphasis:
		inner := r.inline(n, source)
		if n.Level == 1 {
			buf.WriteString(r.italic.Render(inner))
		} else {
			buf.WriteString(r.bold.Render(inner))
		}

	case *extast.Strikethrough:
		buf.WriteString(r.strike.Render(r.inline(n, source)))

	case *ast.CodeSpan:
		buf.WriteString(r.code.Render(r.inline(n, source)))

	case *ast.Link:
		r.hyperlink(buf, string(n.Destination), r.inline(n, source))

	case *ast.AutoLink:
		url := string(n.URL(source))
		r.hyperlink(buf, url, url)

	case *ast.Image:
		r.hyperlink(buf, string(n.Destination), "🖼 "+r.inline(n, source))

	case *ast.RawHTML:
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			buf.Write(seg.Value(source))
		}

	default:
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			r.span(c, source, buf)
		}
	}
}

// hyperlink writes label as an OSC 8 link to url. Terminals without OSC 8
// support still see the URL because it follows the label when they differ.
func (r *renderer) hyperlink(buf *bytes.Buffer, url, label string) {
	buf.WriteString(ansi.SetHyperlink(url))
	buf.WriteString(r.link.Render(label))
	buf.WriteString(ansi.ResetHyperlink())
	if ansi.Strip(label) != url {
		buf.WriteString(" " + r.muted.Render("("+url+")"))
	}
}

func writeWrapped(buf *bytes.Buffer, s string, width int) {
	buf.WriteString(lipgloss.NewStyle().Width(width).Render(s))
	buf.WriteString("\n")
}

// writeItem writes a list item with continuation lines aligned under the
// first character after the marker.
func writeItem(buf *bytes.Buffer, prefix, content string, width int) {
	w := ansi.StringWidth(prefix)
	wrapped := lipgloss.NewStyle().Width(max(width-w, minWrap)).Render(strings.TrimRight(content, "\n"))
	pad := strings.Repeat(" ", w)
	for i, line := range strings.Split(wrapped, "\n") {
		if i == 0 {
			buf.WriteString(prefix + line + "\n")
			continue
		}
		buf.WriteString(pad + line + "\n")
	}
}
