// Package report turns a [batch.Summary] into a [Document] and renders it.
//
// A [Document] carries the run ID, one [FileReport] per analyzed file, the
// files that were skipped and the aggregate [docassoc.Stats]. It
// serializes to JSON and YAML as is; [Schema] describes that shape as a
// JSON Schema. A [Renderer] writes a document as [FormatText],
// [FormatJSON], [FormatYAML], [FormatMarkdown] or [FormatHTML]:
//
//	cfg := report.NewConfig()
//	cfg.RegisterFlags(cmd.Flags())
//
//	err := cfg.Write(os.Stdout, summary)
package report
