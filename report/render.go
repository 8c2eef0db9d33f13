package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-yaml"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/term"

	"go.jacobcolvin.com/cxxdoc/docassoc"
)

// Format is a report output format.
type Format string

const (
	// FormatText is a human-readable listing.
	FormatText Format = "text"
	// FormatJSON is the [Document] as indented JSON.
	FormatJSON Format = "json"
	// FormatYAML is the [Document] as YAML.
	FormatYAML Format = "yaml"
	// FormatMarkdown is a summary table followed by one table per file.
	FormatMarkdown Format = "markdown"
	// FormatHTML is [FormatMarkdown] rendered to a standalone HTML page.
	FormatHTML Format = "html"
)

const defaultWidth = 80

// AllFormats returns every [Format] in a stable order.
func AllFormats() []Format {
	return []Format{FormatText, FormatJSON, FormatYAML, FormatMarkdown, FormatHTML}
}

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(s))
	if !slices.Contains(AllFormats(), f) {
		return "", fmt.Errorf("%w: unknown report format %q", docassoc.ErrInvalidOption, s)
	}

	return f, nil
}

// Renderer writes a [Document] in one [Format].
//
// Create instances with [NewRenderer] or [Config.NewRenderer].
type Renderer struct {
	format Format
	width  int
}

// RendererOption configures a [Renderer].
type RendererOption func(*Renderer)

// WithWidth sets the line width of [FormatText] output. Zero means the
// terminal width when writing to a terminal, and 80 otherwise.
func WithWidth(n int) RendererOption {
	return func(r *Renderer) {
		r.width = max(n, 0)
	}
}

// NewRenderer creates a new [Renderer] for format.
func NewRenderer(format Format, opts ...RendererOption) (*Renderer, error) {
	if !slices.Contains(AllFormats(), format) {
		return nil, fmt.Errorf("%w: unknown report format %q", docassoc.ErrInvalidOption, format)
	}

	r := &Renderer{format: format}
	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

// Render writes doc to w. Write failures match [docassoc.ErrWriteOutput].
func (r *Renderer) Render(w io.Writer, doc *Document) error {
	var (
		out []byte
		err error
	)

	switch r.format {
	case FormatJSON:
		out, err = json.MarshalIndent(doc, "", "  ")
		out = append(out, '\n')

	case FormatYAML:
		out, err = yaml.Marshal(doc)

	case FormatMarkdown:
		out = renderMarkdown(doc)

	case FormatHTML:
		out, err = renderHTML(doc)

	case FormatText:
		err = renderText(w, doc, r.lineWidth(w))
		if err != nil {
			return fmt.Errorf("%w: %w", docassoc.ErrWriteOutput, err)
		}

		return nil
	}

	if err != nil {
		return fmt.Errorf("%w: encoding %s: %w", docassoc.ErrWriteOutput, r.format, err)
	}

	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("%w: %w", docassoc.ErrWriteOutput, err)
	}

	return nil
}

func (r *Renderer) lineWidth(w io.Writer) int {
	if r.width > 0 {
		return r.width
	}

	f, ok := w.(*os.File)
	if !ok {
		return defaultWidth
	}

	fd := int(f.Fd()) //nolint:gosec // File descriptors fit in int.
	if !term.IsTerminal(fd) {
		return defaultWidth
	}

	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return defaultWidth
	}

	return width
}

// renderText writes the listing through a single tabwriter, so nothing
// reaches w before the final flush.
func renderText(w io.Writer, doc *Document, width int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "run %s\n", doc.RunID)

	for _, f := range doc.Files {
		fmt.Fprintf(tw, "\n%s: %s\n", f.Path, statsLine(f.Stats))

		for _, e := range f.Entries {
			mark := "ok"
			if !e.Documented {
				mark = "MISSING"
			}

			fmt.Fprintf(tw, "  %d\t%s\t%s\t%s\t%s\n",
				e.Line, mark, e.Kind, truncate(e.QualifiedName, width/2), e.Source)
		}
	}

	if len(doc.Skipped) > 0 {
		fmt.Fprint(tw, "\nskipped:\n")

		for _, s := range doc.Skipped {
			fmt.Fprintf(tw, "  %s: %s\n", s.Path, truncate(s.Reason, width))
		}
	}

	fmt.Fprintf(tw, "\ntotal: %s\n", statsLine(doc.Stats))
	fmt.Fprintf(tw, "%s\n", densityBar(doc.Stats.Density, width))

	return tw.Flush()
}

func statsLine(s docassoc.Stats) string {
	return fmt.Sprintf("%d/%d documented (%.1f%%)", s.Documented, s.Total, s.Density*100)
}

// densityBar draws a bar of at most width columns, brackets included.
func densityBar(density float64, width int) string {
	n := min(max(width-2, 1), 50)
	filled := int(density*float64(n) + 0.5)

	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", n-filled) + "]"
}

func truncate(s string, width int) string {
	if width < 4 || len(s) <= width {
		return s
	}

	return s[:width-3] + "..."
}

func renderMarkdown(doc *Document) []byte {
	var buf bytes.Buffer

	buf.WriteString("# Documentation coverage\n\n")
	fmt.Fprintf(&buf, "Run `%s`: %s.\n\n", doc.RunID, statsLine(doc.Stats))

	if len(doc.ByKind) > 0 {
		buf.WriteString("| Kind | Documented | Total | Density |\n")
		buf.WriteString("| --- | ---: | ---: | ---: |\n")

		for _, k := range docassoc.AllKinds() {
			s, ok := doc.ByKind[k]
			if !ok {
				continue
			}

			fmt.Fprintf(&buf, "| %s | %d | %d | %.1f%% |\n", k, s.Documented, s.Total, s.Density*100)
		}

		buf.WriteString("\n")
	}

	for _, f := range doc.Files {
		fmt.Fprintf(&buf, "## %s\n\n%s.\n\n", codeSpan(f.Path), statsLine(f.Stats))

		if len(f.Entries) == 0 {
			continue
		}

		buf.WriteString("| Line | Declaration | Kind | Source |\n")
		buf.WriteString("| ---: | --- | --- | --- |\n")

		for _, e := range f.Entries {
			fmt.Fprintf(&buf, "| %d | %s | %s | %s |\n", e.Line, codeSpan(e.QualifiedName), e.Kind, e.Source)
		}

		buf.WriteString("\n")
	}

	if len(doc.Skipped) > 0 {
		buf.WriteString("## Skipped\n\n")

		for _, s := range doc.Skipped {
			fmt.Fprintf(&buf, "- %s: %s\n", codeSpan(s.Path), codeSpan(s.Reason))
		}
	}

	return buf.Bytes()
}

// codeSpan quotes s as inline code that is safe inside a table cell.
func codeSpan(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)

	fence := "`"
	for strings.Contains(s, fence) {
		fence += "`"
	}

	if strings.HasPrefix(s, "`") || strings.HasSuffix(s, "`") {
		return fence + " " + s + " " + fence
	}

	return fence + s + fence
}

func renderHTML(doc *Document) ([]byte, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))

	var body bytes.Buffer

	err := md.Convert(renderMarkdown(doc), &body)
	if err != nil {
		return nil, fmt.Errorf("converting markdown: %w", err)
	}

	var buf bytes.Buffer

	buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	buf.WriteString("<title>Documentation coverage</title>\n</head>\n<body>\n")
	buf.Write(body.Bytes())
	buf.WriteString("</body>\n</html>\n")

	return buf.Bytes(), nil
}
