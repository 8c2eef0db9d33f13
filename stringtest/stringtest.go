// Package stringtest provides helpers for writing source snippets in tests.
package stringtest

import "strings"

// Input removes one leading and one trailing line break from s, then strips
// the leading whitespace common to all non-blank lines. Whitespace-only
// lines become empty. CRLF line breaks are kept. Use it to write C++
// snippets as indented raw strings.
//
// The common indentation is compared as text, so a tab never cancels
// out a space.
//
// Example:
//
//	src := stringtest.Input(`
//		/** doc */
//		struct A {
//		    void f();
//		};
//	`) // -> "/** doc */\nstruct A {\n    void f();\n};"
func Input(s string) string {
	s = trimBreak(s, strings.CutPrefix)
	s = trimBreak(s, strings.CutSuffix)

	lines := strings.Split(s, "\n")
	prefix := ""
	first := true

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if first {
			prefix, first = indent, false

			continue
		}

		prefix = commonPrefix(prefix, indent)
	}

	for i, line := range lines {
		switch {
		case strings.TrimSpace(line) == "":
			lines[i] = ""
			if strings.HasSuffix(line, "\r") {
				lines[i] = "\r"
			}
		default:
			lines[i] = strings.TrimPrefix(line, prefix)
		}
	}

	return strings.Join(lines, "\n")
}

func trimBreak(s string, cut func(string, string) (string, bool)) string {
	if after, ok := cut(s, "\r\n"); ok {
		return after
	}

	after, _ := cut(s, "\n")

	return after
}

func commonPrefix(a, b string) string {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return a[:i]
		}
	}

	return a[:n]
}

// JoinLF joins multiple strings with LF line endings.
// Use this to construct source text with explicit line endings.
//
// Example:
//
//	src := stringtest.JoinLF(
//		"/** doc */",
//		"void f();",
//	) // -> "/** doc */\nvoid f();"
func JoinLF(ss ...string) string {
	return strings.Join(ss, "\n")
}

// JoinCRLF joins multiple strings with CRLF line endings.
// Use this to check that positions and comment text are unaffected by
// Windows line endings.
//
// Example:
//
//	src := stringtest.JoinCRLF(
//		"int x; ///< doc",
//		"void f();",
//	) // -> "int x; ///< doc\r\nvoid f();"
func JoinCRLF(ss ...string) string {
	return strings.Join(ss, "\r\n")
}
