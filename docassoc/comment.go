package docassoc

import "strings"

// Position is a location in source text. Offset is a 0-based byte offset;
// Line and Column are 1-based, Column counted in bytes.
type Position struct {
	Offset int `json:"offset" yaml:"offset"`
	Line   int `json:"line"   yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

// Range spans [Start, End). End.Line is the line of the last byte.
type Range struct {
	Start Position `json:"start" yaml:"start"`
	End   Position `json:"end"   yaml:"end"`
}

// Style is the lexical form of a comment.
type Style string

const (
	// StylePlain is any comment that is not a documentation comment.
	StylePlain Style = "plain"
	// StyleJavadoc is a "/** ... */" block.
	StyleJavadoc Style = "javadoc"
	// StyleQt is a "/*! ... */" block.
	StyleQt Style = "qt"
	// StyleTrailingLine is a "///<" or "//!<" line comment that documents
	// the declaration before it.
	StyleTrailingLine Style = "trailing-line"
	// StyleTrailingBlock is a "/**<" or "/*!<" block that documents the
	// declaration before it.
	StyleTrailingBlock Style = "trailing-block"
)

// Eligible reports whether comments of this style can document a
// declaration.
func (s Style) Eligible() bool {
	return s != StylePlain && s != ""
}

// Trailing reports whether the style is a trailing marker, which binds to
// the declaration before it first.
func (s Style) Trailing() bool {
	return s == StyleTrailingLine || s == StyleTrailingBlock
}

// Preceding reports whether a comment of this style can document the
// declaration after it. Trailing blocks are still "/** */" and "/*! */"
// blocks and may do so when the declaration before them did not take them;
// trailing line markers never can.
func (s Style) Preceding() bool {
	return s.Eligible() && s != StyleTrailingLine
}

// Comment is a comment block found by the scanner.
type Comment struct {
	Text  string `json:"text"  yaml:"text"`
	Style Style  `json:"style" yaml:"style"`
	Range Range  `json:"range" yaml:"range"`
}

// commentStyle classifies raw comment text, including its delimiters.
func commentStyle(text string) Style {
	switch {
	case strings.HasPrefix(text, "///<"), strings.HasPrefix(text, "//!<"):
		return StyleTrailingLine
	case strings.HasPrefix(text, "/**<"), strings.HasPrefix(text, "/*!<"):
		return StyleTrailingBlock
	case text == "/**/":
		return StylePlain
	case strings.HasPrefix(text, "/**"):
		return StyleJavadoc
	case strings.HasPrefix(text, "/*!"):
		return StyleQt
	}

	return StylePlain
}
