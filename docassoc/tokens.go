package docassoc

import "strings"

// keywords are the reserved words that can never name a declaration.
var keywords = toSet(
	"alignas", "alignof", "asm", "auto", "bool", "break", "case", "catch",
	"char", "char8_t", "char16_t", "char32_t", "class", "const", "concept",
	"consteval", "constexpr", "constinit", "const_cast", "continue",
	"co_await", "co_return", "co_yield", "decltype", "default", "delete",
	"do", "double", "dynamic_cast", "else", "enum", "explicit", "extern",
	"false", "float", "for", "friend", "goto", "if", "inline", "int", "long",
	"mutable", "namespace", "new", "noexcept", "nullptr", "private",
	"protected", "public", "register", "reinterpret_cast", "return",
	"requires", "short", "signed", "sizeof", "static", "static_assert",
	"static_cast", "struct", "switch", "template", "this", "thread_local",
	"throw", "true", "try", "typedef", "typename", "union", "unsigned",
	"using", "virtual", "void", "volatile", "wchar_t", "while", "typeid",
)

// parenKeywords take a parenthesized operand that is never a function
// declarator.
var parenKeywords = toSet(
	"alignas", "alignof", "decltype", "noexcept", "sizeof", "throw",
	"requires", "static_assert", "typeid", "__declspec", "__attribute__",
	"__typeof__", "typeof", "_Alignas",
)

// attributeKeywords take a parenthesized operand and only annotate the
// declaration that follows.
var attributeKeywords = toSet("alignas", "_Alignas", "__declspec", "__attribute__")

// classKeys introduce a class definition or declaration.
var classKeys = toSet("class", "struct", "union")

func toSet(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}

	return m
}

func text(toks []Token, i int) string {
	if i >= 0 && i < len(toks) {
		return toks[i].Text
	}

	return ""
}

func isName(t Token) bool {
	return t.Kind == TokenIdent && !keywords[t.Text]
}

// matchForward returns the index of the token closing the group opened at
// toks[open], or -1. Parentheses, brackets and braces nest; angle brackets
// are handled by [matchAngle].
func matchForward(toks []Token, open int) int {
	depth := 0

	for i := open; i < len(toks); i++ {
		switch toks[i].Text {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

// matchAngle returns the index of the '>' closing the '<' at toks[open], or
// -1. Angle brackets inside parentheses are ignored so that expressions such
// as (N > 1) do not close the list.
func matchAngle(toks []Token, open int) int {
	angle, paren := 0, 0

	for i := open; i < len(toks); i++ {
		switch toks[i].Text {
		case "(", "[":
			paren++
		case ")", "]":
			paren--
		case "<":
			if paren == 0 {
				angle++
			}
		case ">":
			if paren == 0 {
				angle--
				if angle == 0 {
					return i
				}
			}
		case ";", "{", "}":
			return -1
		}
	}

	return -1
}

// matchAngleBack returns the index of the '<' opening the '>' at
// toks[closing], or -1.
func matchAngleBack(toks []Token, closing, floor int) int {
	angle, paren := 0, 0

	for i := closing; i >= floor; i-- {
		switch toks[i].Text {
		case ")", "]":
			paren++
		case "(", "[":
			paren--
		case ">":
			if paren == 0 {
				angle++
			}
		case "<":
			if paren == 0 {
				angle--
				if angle == 0 {
					return i
				}
			}
		}
	}

	return -1
}

// templateHeaders describes the stacked template<...> prefixes of a
// statement.
type templateHeaders struct {
	// Next is the index of the first token after the headers.
	Next int
	// Depth counts non-empty headers.
	Depth int
	// Explicit is set when an empty template<> header was seen.
	Explicit bool
}

// skipTemplateHeaders consumes consecutive template<...> headers starting
// at toks[i]. ok is false when a header is not closed.
func skipTemplateHeaders(toks []Token, i int) (templateHeaders, bool) {
	h := templateHeaders{Next: i}

	for text(toks, h.Next) == "template" && text(toks, h.Next+1) == "<" {
		end := matchAngle(toks, h.Next+1)
		if end < 0 {
			return h, false
		}

		if end == h.Next+2 {
			h.Explicit = true
		} else {
			h.Depth++
		}

		h.Next = skipRequires(toks, end+1)
	}

	return h, true
}

// skipRequires skips a requires-clause following a template header: a
// conjunction or disjunction of parenthesized expressions and possibly
// qualified concept-ids.
func skipRequires(toks []Token, i int) int {
	if text(toks, i) != "requires" {
		return i
	}

	i++

	for i < len(toks) {
		for text(toks, i) == "!" {
			i++
		}

		start := i

		if text(toks, i) == "(" {
			end := matchForward(toks, i)
			if end < 0 {
				return len(toks)
			}

			i = end + 1
		} else {
			for i < len(toks) && (toks[i].Kind == TokenIdent && !keywords[toks[i].Text] || toks[i].Text == "::") {
				i++

				if text(toks, i) == "<" {
					end := matchAngle(toks, i)
					if end < 0 {
						return len(toks)
					}

					i = end + 1
				}

				if text(toks, i) != "::" && text(toks, i-1) != "::" {
					break
				}
			}
		}

		if i == start {
			return i
		}

		op := text(toks, i)
		if (op == "&" || op == "|") && text(toks, i+1) == op {
			i += 2

			continue
		}

		return i
	}

	return i
}

// skipAttributes skips attribute-like prefixes: [[...]], alignas(...),
// __declspec(...), __attribute__((...)) and the export keyword.
func skipAttributes(toks []Token, i int) int {
	for i < len(toks) {
		switch {
		case toks[i].Text == "[" && text(toks, i+1) == "[":
			end := matchForward(toks, i)
			if end < 0 {
				return len(toks)
			}

			i = end + 1
		case attributeKeywords[toks[i].Text] && text(toks, i+1) == "(":
			end := matchForward(toks, i+1)
			if end < 0 {
				return len(toks)
			}

			i = end + 1
		case toks[i].Text == "export":
			i++
		default:
			return i
		}
	}

	return i
}

// declarator locates the function declarator in toks[from:].
type declarator struct {
	// NameStart and Paren bound the declarator id: toks[NameStart:Paren].
	NameStart int
	// Paren is the index of the '(' opening the parameter list.
	Paren int
	// Close is the index of the matching ')'.
	Close int
}

// findDeclarator returns the function declarator of a statement head, or
// false when the head has no parameter list before an initializer.
func findDeclarator(toks []Token, from int) (declarator, bool) {
	angle := 0
	opIdx := -1

	for i := from; i < len(toks); i++ {
		t := toks[i].Text

		switch {
		case t == "[" && text(toks, i+1) == "[":
			end := matchForward(toks, i)
			if end < 0 {
				return declarator{}, false
			}

			i = end

		case t == "operator":
			opIdx = i
			// operator() names the call operator; its parameter list
			// follows.
			if text(toks, i+1) == "(" && text(toks, i+2) == ")" {
				i += 2
			}

			for i+1 < len(toks) && toks[i+1].Text != "(" {
				i++
			}

		case t == "(":
			prev := text(toks, i-1)
			if angle > 0 || (i > from && parenKeywords[prev]) {
				end := matchForward(toks, i)
				if end < 0 {
					return declarator{}, false
				}

				i = end

				continue
			}

			closing := matchForward(toks, i)
			if closing < 0 {
				return declarator{}, false
			}

			// The operator keyword ends the qualifier chain of an operator
			// name such as A::operator==.
			start := i
			if opIdx >= 0 {
				start = opIdx + 1
			}

			return declarator{
				NameStart: qualifierStart(toks, start, from),
				Paren:     i,
				Close:     closing,
			}, true

		case t == "<":
			if i > from && (toks[i-1].Kind == TokenIdent && toks[i-1].Text != "operator" || toks[i-1].Text == "template") {
				angle++
			}

		case t == ">":
			if angle > 0 {
				angle--
			}

		case t == "=" && angle == 0:
			return declarator{}, false

		case t == ";" || t == "{":
			return declarator{}, false
		}
	}

	return declarator{}, false
}

// qualifierStart walks backward from end (exclusive) over an id-expression
// such as A<B>::~A or ns::C::operator== and returns its first index. The
// result equals end when no name precedes it.
func qualifierStart(toks []Token, end, floor int) int {
	k := end - 1
	start := end

	for k >= floor {
		if toks[k].Text == ">" {
			lt := matchAngleBack(toks, k, floor)
			if lt <= floor {
				break
			}

			k = lt - 1
		}

		if k < floor || toks[k].Kind != TokenIdent {
			break
		}

		start = k
		k--

		if k >= floor && toks[k].Text == "~" {
			start = k
			k--
		}

		if k >= floor && toks[k].Text == "::" {
			start = k
			k--

			continue
		}

		break
	}

	return start
}

// joinTokens renders tokens compactly, inserting a space only between two
// word tokens.
func joinTokens(toks []Token) string {
	var sb strings.Builder

	for i, t := range toks {
		if i > 0 && isWord(toks[i-1]) && isWord(t) {
			sb.WriteByte(' ')
		}

		sb.WriteString(t.Text)
	}

	return sb.String()
}

func isWord(t Token) bool {
	return t.Kind == TokenIdent || t.Kind == TokenNumber
}

// stripTemplateArgs renders an id-expression without template argument
// lists, so that A<B>::~A and A<T>::~A produce the same key.
func stripTemplateArgs(toks []Token) string {
	var out []Token

	for i := 0; i < len(toks); i++ {
		if toks[i].Text == "<" && i > 0 && toks[i-1].Kind == TokenIdent && toks[i-1].Text != "operator" {
			end := matchAngle(toks, i)
			if end > 0 {
				i = end

				continue
			}
		}

		out = append(out, toks[i])
	}

	return joinTokens(out)
}

// countParams counts the parameters between toks[open] '(' and toks[closing]
// ')'. An empty list and (void) count as zero.
func countParams(toks []Token, open, closing int) int {
	inner := toks[open+1 : closing]
	if len(inner) == 0 || (len(inner) == 1 && inner[0].Text == "void") {
		return 0
	}

	n := 1
	depth, angle := 0, 0

	for i, t := range inner {
		switch t.Text {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			depth--
		case "<":
			if i > 0 && inner[i-1].Kind == TokenIdent {
				angle++
			}
		case ">":
			if angle > 0 {
				angle--
			}
		case ",":
			if depth == 0 && angle == 0 {
				n++
			}
		}
	}

	return n
}
