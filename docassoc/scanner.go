package docassoc

// UnitKind tags the variant held by a [Unit].
type UnitKind string

// Unit kinds.
const (
	UnitComment   UnitKind = "comment"
	UnitDirective UnitKind = "directive"
	UnitStatement UnitKind = "statement"
)

// Unit is one item of the scanner output: a comment, a preprocessor
// directive, or a statement that may declare something. Exactly one of the
// pointer fields is set, matching Kind.
type Unit struct {
	Comment   *Comment
	Directive *Directive
	Statement *Statement
	Kind      UnitKind
}

// BodyKind describes the braced body of a [Statement].
type BodyKind string

// Body kinds.
const (
	// BodyNone marks statements without a body, such as declarations
	// ending in ';'.
	BodyNone BodyKind = ""
	// BodyScope marks namespace and linkage-specification blocks. Their
	// contents are scanned into Children.
	BodyScope BodyKind = "scope"
	// BodyClass marks class, struct and union definitions. Members are
	// scanned into Children.
	BodyClass BodyKind = "class"
	// BodyEnum marks enumerations. The enumerator list is not scanned.
	BodyEnum BodyKind = "enum"
	// BodyFunction marks function definitions. The body is not scanned.
	BodyFunction BodyKind = "function"
)

// Statement is the token window of one declaration candidate.
type Statement struct {
	// Head holds the tokens before the body, or every token of a bodiless
	// statement including its ';'.
	Head []Token
	// Tail holds the tokens following a class or enum body, such as
	// declarators and the closing ';'.
	Tail []Token
	// Children holds the units of a class or scope body.
	Children []Unit
	// Comments holds comments found between the statement's own tokens.
	Comments []*Comment
	Body     BodyKind
	// Range spans the first to the last token of the statement.
	Range Range
	// BodyRange spans the braces of the body, if any.
	BodyRange Range
	// Terminated reports whether the statement ended with ';' or a
	// function body rather than at the end of the enclosing scope.
	Terminated bool
}

// Scan splits C++ source into units. Comment ordering and offsets are
// preserved. It returns a [*ScanError] for unterminated comments and
// literals, statements that run to the end of input, and unbalanced braces.
func Scan(src []byte) ([]Unit, error) {
	items, err := lex(src)
	if err != nil {
		return nil, err
	}

	p := &structurer{items: items}

	return p.units(nil, false)
}

// structurer groups lexer items into statements and nested bodies.
type structurer struct {
	items []item
	pos   int
}

// units scans until the end of input or, when open is non-nil, the '}'
// closing it. The closing brace is left for the caller.
func (p *structurer) units(open *Token, inClass bool) ([]Unit, error) {
	var out []Unit

	for {
		if p.pos >= len(p.items) {
			if open != nil {
				return nil, scanErrorf(open.Range.Start, "unbalanced '{'")
			}

			return out, nil
		}

		it := p.items[p.pos]

		switch it.kind {
		case itemComment:
			out = append(out, Unit{Kind: UnitComment, Comment: it.comment})
			p.pos++

		case itemDirective:
			out = append(out, Unit{Kind: UnitDirective, Directive: it.directive})
			p.pos++

		default:
			if it.tok.Text == "}" {
				if open != nil {
					return out, nil
				}

				return nil, scanErrorf(it.tok.Range.Start, "unbalanced '}'")
			}

			stmt, err := p.statement(inClass)
			if err != nil {
				return nil, err
			}

			out = append(out, Unit{Kind: UnitStatement, Statement: stmt})
		}
	}
}

// statement scans one statement starting at the current token.
func (p *structurer) statement(inClass bool) (*Statement, error) {
	first := p.items[p.pos].tok
	st := &Statement{}

	if inClass && p.accessLabel(st) {
		return st, nil
	}

	depth := 0
	initList := false

	for {
		if p.pos >= len(p.items) {
			return nil, scanErrorf(first.Range.Start, "declaration has no terminator")
		}

		it := p.items[p.pos]

		switch it.kind {
		case itemComment:
			st.Comments = append(st.Comments, it.comment)
			p.pos++

			continue

		case itemDirective:
			// Conditional compilation inside a declaration.
			p.pos++

			continue
		}

		tok := it.tok

		switch tok.Text {
		case "(", "[":
			depth++

		case ")", "]":
			if depth > 0 {
				depth--
			}

		case ":":
			if depth == 0 && st.Body == BodyNone && text(st.Head, len(st.Head)-1) == ")" {
				initList = true
			}

		case ";":
			if depth == 0 {
				st.add(tok)
				p.pos++
				st.Terminated = true

				return st, nil
			}

		case "}":
			// Missing ';' before the end of the enclosing scope.
			if len(st.Head) == 0 {
				return nil, scanErrorf(tok.Range.Start, "unbalanced '}'")
			}

			return st, nil

		case "{":
			if depth > 0 || st.Body != BodyNone {
				err := p.skipInto(st)
				if err != nil {
					return nil, err
				}

				continue
			}

			done, err := p.body(st, tok, initList)
			if err != nil {
				return nil, err
			}

			if done {
				return st, nil
			}

			continue
		}

		st.add(tok)
		p.pos++
	}
}

// accessLabel consumes "public:", "protected:", "private:" and Qt's
// "signals:" or "public slots:" labels.
func (p *structurer) accessLabel(st *Statement) bool {
	var toks []Token

	for i := p.pos; i < len(p.items) && len(toks) < 3; i++ {
		if p.items[i].kind != itemToken {
			continue
		}

		toks = append(toks, p.items[i].tok)
	}

	n := 0

	switch {
	case len(toks) >= 2 && isAccessWord(toks[0].Text) && toks[1].Text == ":":
		n = 2
	case len(toks) >= 3 && isAccessWord(toks[0].Text) && isAccessWord(toks[1].Text) && toks[2].Text == ":":
		n = 3
	default:
		return false
	}

	for n > 0 {
		it := p.items[p.pos]
		p.pos++

		if it.kind != itemToken {
			if it.kind == itemComment {
				st.Comments = append(st.Comments, it.comment)
			}

			continue
		}

		st.add(it.tok)
		n--
	}

	st.Terminated = true

	return true
}

func isAccessWord(s string) bool {
	switch s {
	case "public", "protected", "private", "signals", "slots", "Q_SIGNALS", "Q_SLOTS":
		return true
	}

	return false
}

// body handles the first '{' at depth 0 of a statement. It reports whether
// the statement ends with the body.
func (p *structurer) body(st *Statement, open Token, initList bool) (bool, error) {
	switch kind := braceKind(st.Head, initList); kind {
	case BodyScope, BodyClass:
		p.pos++

		children, err := p.units(&open, kind == BodyClass)
		if err != nil {
			return false, err
		}

		closing := p.items[p.pos].tok
		p.pos++

		st.Children = children
		st.Body = kind
		st.BodyRange = Range{Start: open.Range.Start, End: closing.Range.End}
		st.extend(closing)

		if kind == BodyScope {
			st.Terminated = true
			// An optional ';' after a namespace is an empty declaration
			// that belongs to the namespace statement.
			if p.pos < len(p.items) && p.items[p.pos].kind == itemToken && p.items[p.pos].tok.Text == ";" {
				st.Tail = append(st.Tail, p.items[p.pos].tok)
				st.extend(p.items[p.pos].tok)
				p.pos++
			}

			return true, nil
		}

		return false, nil

	case BodyEnum, BodyFunction:
		closing, err := p.skipBraces()
		if err != nil {
			return false, err
		}

		st.Body = kind
		st.BodyRange = Range{Start: open.Range.Start, End: closing.Range.End}
		st.extend(closing)

		if kind == BodyFunction {
			st.Terminated = true

			// Tolerate a stray ';' after a function definition.
			if p.pos < len(p.items) && p.items[p.pos].kind == itemToken && p.items[p.pos].tok.Text == ";" {
				st.Tail = append(st.Tail, p.items[p.pos].tok)
				st.extend(p.items[p.pos].tok)
				p.pos++
			}

			return true, nil
		}

		return false, nil

	default:
		// Brace initializer or member initializer: part of the head.
		return false, p.skipInto(st)
	}
}

// skipInto skips a brace group that does not open a body and records its
// outer braces on the statement, so the group reads as one "{}" pair.
func (p *structurer) skipInto(st *Statement) error {
	open := p.items[p.pos].tok

	closing, err := p.skipBraces()
	if err != nil {
		return err
	}

	st.add(open)
	st.add(closing)

	return nil
}

// skipBraces consumes a balanced brace group starting at the current '{'
// and returns the closing brace. Comments inside it are dropped.
func (p *structurer) skipBraces() (Token, error) {
	open := p.items[p.pos].tok
	depth := 0

	for ; p.pos < len(p.items); p.pos++ {
		it := p.items[p.pos]
		if it.kind != itemToken {
			continue
		}

		switch it.tok.Text {
		case "{":
			depth++
		case "}":
			depth--
			if depth == 0 {
				p.pos++

				return it.tok, nil
			}
		}
	}

	return Token{}, scanErrorf(open.Range.Start, "unbalanced '{'")
}

func (st *Statement) add(tok Token) {
	if st.Body == BodyNone {
		st.Head = append(st.Head, tok)
	} else {
		st.Tail = append(st.Tail, tok)
	}

	st.extend(tok)
}

func (st *Statement) extend(tok Token) {
	if st.Range.End.Line == 0 {
		st.Range.Start = tok.Range.Start
	}

	st.Range.End = tok.Range.End
}

// braceKind decides what the first top-level '{' of a statement opens from
// the tokens before it.
func braceKind(head []Token, initList bool) BodyKind {
	if initList {
		if last := text(head, len(head)-1); last == ">" || (len(head) > 0 && head[len(head)-1].Kind == TokenIdent) {
			return BodyNone
		}

		return BodyFunction
	}

	i := skipAttributes(head, 0)

	switch text(head, i) {
	case "namespace":
		return BodyScope
	case "inline":
		if text(head, i+1) == "namespace" {
			return BodyScope
		}
	case "extern":
		if i+2 == len(head) && head[i+1].Kind == TokenString {
			return BodyScope
		}
	}

	h, ok := skipTemplateHeaders(head, i)
	if !ok {
		return BodyNone
	}

	depth := 0

	for j := h.Next; j < len(head); j++ {
		switch head[j].Text {
		case "(", "[":
			depth++
		case ")", "]":
			depth--
		case "=":
			prev := text(head, j-1)
			if depth == 0 && j > h.Next && (head[j-1].Kind == TokenIdent && prev != "operator" || prev == "]") {
				return BodyNone
			}
		}
	}

	j := skipAttributes(head, h.Next)
	for text(head, j) == "typedef" || text(head, j) == "friend" {
		j = skipAttributes(head, j+1)
	}

	if _, isCall := findDeclarator(head, j); !isCall {
		switch {
		case classKeys[text(head, j)]:
			return BodyClass
		case text(head, j) == "enum":
			return BodyEnum
		}
	}

	if _, isCall := findDeclarator(head, h.Next); isCall {
		return BodyFunction
	}

	return BodyNone
}
