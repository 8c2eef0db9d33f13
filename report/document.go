package report

import (
	"go.jacobcolvin.com/cxxdoc/batch"
	"go.jacobcolvin.com/cxxdoc/docassoc"
)

// Document is the serializable outcome of one batch run.
type Document struct {
	ByKind  map[docassoc.Kind]docassoc.Stats `json:"byKind,omitempty"  jsonschema:"documentation metrics per declaration kind" yaml:"byKind,omitempty"`
	RunID   string                           `json:"runId"             jsonschema:"random identifier of the run"             yaml:"runId"`
	Files   []FileReport                     `json:"files"             jsonschema:"analyzed files in input order"            yaml:"files"`
	Skipped []SkippedFile                    `json:"skipped,omitempty" jsonschema:"files that could not be read or scanned"  yaml:"skipped,omitempty"`
	Stats   docassoc.Stats                   `json:"stats"             jsonschema:"documentation metrics over all files"     yaml:"stats"`
}

// FileReport lists the declarations of one analyzed file.
type FileReport struct {
	Path    string         `json:"path"    yaml:"path"`
	Entries []Entry        `json:"entries" yaml:"entries"`
	Stats   docassoc.Stats `json:"stats"   yaml:"stats"`
}

// Entry is one declaration and the outcome of its association.
type Entry struct {
	QualifiedName string          `json:"qualifiedName"          yaml:"qualifiedName"`
	Kind          docassoc.Kind   `json:"kind"                   yaml:"kind"`
	Access        docassoc.Access `json:"access,omitempty"       yaml:"access,omitempty"`
	Source        docassoc.Source `json:"source"                 yaml:"source"`
	CommentStyle  docassoc.Style  `json:"commentStyle,omitempty" yaml:"commentStyle,omitempty"`
	Line          int             `json:"line"                   yaml:"line"`
	TemplateDepth int             `json:"templateDepth"          yaml:"templateDepth"`
	CommentLine   int             `json:"commentLine,omitempty"  yaml:"commentLine,omitempty"`
	Documented    bool            `json:"documented"             yaml:"documented"`
}

// SkippedFile is a file the run could not analyze.
type SkippedFile struct {
	Path   string `json:"path"   yaml:"path"`
	Reason string `json:"reason" yaml:"reason"`
}

type options struct {
	undocumentedOnly bool
}

// DocumentOption configures [New].
type DocumentOption func(*options)

// WithUndocumentedOnly drops documented declarations from the file
// entries. Stats still count every declaration.
func WithUndocumentedOnly() DocumentOption {
	return func(o *options) {
		o.undocumentedOnly = true
	}
}

// New builds a [Document] from a batch summary.
func New(sum *batch.Summary, opts ...DocumentOption) *Document {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	doc := &Document{
		RunID:  sum.RunID.String(),
		Files:  []FileReport{},
		Stats:  sum.Stats,
		ByKind: map[docassoc.Kind]docassoc.Stats{},
	}

	for _, f := range sum.Files {
		if f.Skipped() {
			doc.Skipped = append(doc.Skipped, SkippedFile{Path: f.Path, Reason: f.Err.Error()})

			continue
		}

		for k, s := range f.Result.StatsByKind() {
			doc.ByKind[k] = doc.ByKind[k].Add(s)
		}

		assocs := f.Result.Entries()
		if o.undocumentedOnly {
			assocs = f.Result.Undocumented()
		}

		fr := FileReport{
			Path:    f.Path,
			Stats:   f.Result.Stats(),
			Entries: make([]Entry, 0, len(assocs)),
		}

		for _, a := range assocs {
			fr.Entries = append(fr.Entries, newEntry(a))
		}

		doc.Files = append(doc.Files, fr)
	}

	return doc
}

func newEntry(a docassoc.Association) Entry {
	d := a.Declaration

	e := Entry{
		QualifiedName: d.QualifiedName,
		Kind:          d.Kind,
		Access:        d.Access,
		Source:        a.Source,
		Line:          d.Line(),
		TemplateDepth: d.TemplateHeaderDepth,
		Documented:    a.Documented(),
	}

	if a.Comment != nil {
		e.CommentLine = a.Comment.Range.Start.Line
		e.CommentStyle = a.Comment.Style
	}

	return e
}
