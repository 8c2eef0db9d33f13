package docassoc

import (
	"fmt"
	"strconv"
	"strings"
)

// Declaration is a documentable declaration recognized by [Classify].
type Declaration struct {
	Kind Kind `json:"kind" yaml:"kind"`
	// Name is the declarator id as written, including template arguments
	// and qualifiers, e.g. "A<B>::~A".
	Name string `json:"name" yaml:"name"`
	// QualifiedName prefixes Name with the enclosing namespaces and
	// classes.
	QualifiedName string `json:"qualifiedName" yaml:"qualifiedName"`
	// EnclosingScope is the qualified name of the owning class, or of the
	// qualifier of an out-of-line definition. Empty at namespace scope.
	EnclosingScope string `json:"enclosingScope,omitempty" yaml:"enclosingScope,omitempty"`
	Access         Access `json:"access,omitempty"         yaml:"access,omitempty"`
	// MemberKey identifies a function across in-class and out-of-line
	// mentions: qualified name without template arguments, a slash and the
	// parameter count. Empty for non-function kinds.
	MemberKey string `json:"-"     yaml:"-"`
	Range     Range  `json:"range" yaml:"range"`
	// TemplateHeaderDepth counts the stacked non-empty template<...>
	// headers. An empty template<> header is not counted.
	TemplateHeaderDepth int `json:"templateHeaderDepth" yaml:"templateHeaderDepth"`
	// Params is the parameter count of function kinds and -1 otherwise.
	Params int `json:"params" yaml:"params"`
	// IsDefinitionOnly is set for forward declarations of nested classes.
	IsDefinitionOnly bool `json:"isDefinitionOnly,omitempty" yaml:"isDefinitionOnly,omitempty"`
	// HasBody is set for class and function definitions, including
	// defaulted and deleted functions.
	HasBody bool `json:"hasBody,omitempty" yaml:"hasBody,omitempty"`
	// OutOfLine is set when the name carries a scope qualifier.
	OutOfLine bool `json:"outOfLine,omitempty" yaml:"outOfLine,omitempty"`
}

// Line returns the 1-based line of the first token of the declaration.
func (d Declaration) Line() int {
	return d.Range.Start.Line
}

// Scope is the lexical context of a statement.
type Scope struct {
	// Path holds the enclosing namespace and class names, outermost first.
	Path []string
	// Class is the qualified name of the directly enclosing class, or empty
	// at namespace scope.
	Class string
	// ClassName is the unqualified name of the directly enclosing class.
	ClassName string
	// Access is the access level in effect inside a class body.
	Access Access
}

// Qualify prefixes name with the scope path. Names starting with "::" are
// already absolute.
func (s Scope) Qualify(name string) string {
	if after, ok := strings.CutPrefix(name, "::"); ok {
		return after
	}

	parts := make([]string, 0, len(s.Path)+1)
	for _, p := range s.Path {
		if p != "" {
			parts = append(parts, p)
		}
	}

	return strings.Join(append(parts, name), "::")
}

// memberPath qualifies name like [Scope.Qualify], but with template
// argument lists removed from every enclosing name, so that members of
// X<int> declared in the body and defined as X<int>::f share a key.
func (s Scope) memberPath(name string) string {
	if after, ok := strings.CutPrefix(name, "::"); ok {
		return after
	}

	parts := make([]string, 0, len(s.Path)+1)
	for _, p := range s.Path {
		if p = dropTemplateArgs(p); p != "" {
			parts = append(parts, p)
		}
	}

	return strings.Join(append(parts, name), "::")
}

// Nest returns the scope of the body of a class or namespace named name.
func (s Scope) Nest(name string, class bool, access Access) Scope {
	path := append(append([]string(nil), s.Path...), name)
	if !class {
		return Scope{Path: path}
	}

	return Scope{
		Path:      path,
		Class:     s.Qualify(name),
		ClassName: baseName(name),
		Access:    access,
	}
}

// baseName drops template argument lists and qualifiers from a class
// name, so that "ns::X<T*>" yields "X".
func baseName(name string) string {
	s := dropTemplateArgs(name)
	if idx := strings.LastIndex(s, "::"); idx >= 0 {
		s = s[idx+2:]
	}

	return s
}

// dropTemplateArgs removes every template argument list from name.
func dropTemplateArgs(name string) string {
	var sb strings.Builder

	depth := 0

	for _, r := range name {
		switch {
		case r == '<':
			depth++
		case r == '>' && depth > 0:
			depth--
		case depth == 0:
			sb.WriteRune(r)
		}
	}

	return sb.String()
}

// Classify recognizes the declaration shape of stmt. It returns an error
// matching [ErrNotDocumentable] for recognized shapes that are never
// documented, and [ErrAmbiguous] when no shape matches.
func Classify(stmt *Statement, scope Scope) (Declaration, error) {
	if stmt.Body == BodyScope {
		return Declaration{}, fmt.Errorf("%w: namespace or linkage block", ErrNotDocumentable)
	}

	if _, ok := AccessLabel(stmt); ok {
		return Declaration{}, fmt.Errorf("%w: access specifier", ErrNotDocumentable)
	}

	toks := trimSemicolon(stmt.Head)
	if len(toks) == 0 {
		return Declaration{}, fmt.Errorf("%w: empty declaration", ErrNotDocumentable)
	}

	i := skipAttributes(toks, 0)

	switch {
	case text(toks, i) == "extern" && text(toks, i+1) == "template",
		text(toks, i) == "template" && text(toks, i+1) != "<":
		return Declaration{}, fmt.Errorf("%w: explicit instantiation", ErrNotDocumentable)
	}

	h, ok := skipTemplateHeaders(toks, i)
	if !ok {
		return Declaration{}, fmt.Errorf("%w: unclosed template header", ErrAmbiguous)
	}

	j := skipAttributes(toks, h.Next)
	if j >= len(toks) {
		return Declaration{}, fmt.Errorf("%w: template header without declaration", ErrAmbiguous)
	}

	d := Declaration{
		Range:               stmt.Range,
		Access:              scope.Access,
		EnclosingScope:      scope.Class,
		TemplateHeaderDepth: h.Depth,
		Params:              -1,
	}

	switch w := toks[j].Text; {
	case w == "friend", w == "static_assert", w == "namespace", w == "asm", w == "concept":
		return Declaration{}, fmt.Errorf("%w: %s declaration", ErrNotDocumentable, w)

	case w == "using":
		return classifyUsing(d, toks, j, h, scope)

	case w == "typedef":
		return classifyTypedef(d, stmt, toks, j, scope)

	case classKeys[w], w == "enum":
		_, isCall := findDeclarator(toks, j)
		if !isCall || stmt.Body == BodyClass || stmt.Body == BodyEnum {
			return classifyClass(d, stmt, toks, j, h, scope)
		}
	}

	return classifyFunction(d, stmt, toks, j, h, scope)
}

// AccessLabel reports the access level set by an access specifier
// statement such as "public:".
func AccessLabel(stmt *Statement) (Access, bool) {
	if len(stmt.Head) < 2 || stmt.Head[len(stmt.Head)-1].Text != ":" || !isAccessWord(stmt.Head[0].Text) {
		return AccessNone, false
	}

	switch stmt.Head[0].Text {
	case "protected":
		return AccessProtected, true
	case "private":
		return AccessPrivate, true
	}

	return AccessPublic, true
}

func classifyUsing(d Declaration, toks []Token, j int, h templateHeaders, scope Scope) (Declaration, error) {
	if next := text(toks, j+1); next == "namespace" || next == "enum" {
		return Declaration{}, fmt.Errorf("%w: using-directive", ErrNotDocumentable)
	}

	eq := -1

	for k := j + 1; k < len(toks); k++ {
		if toks[k].Text == "=" {
			eq = k

			break
		}
	}

	if eq < 0 {
		return Declaration{}, fmt.Errorf("%w: using-declaration", ErrNotDocumentable)
	}

	if j+1 >= eq || !isName(toks[j+1]) || h.Explicit {
		return Declaration{}, fmt.Errorf("%w: malformed alias", ErrAmbiguous)
	}

	d.Name = toks[j+1].Text
	d.QualifiedName = scope.Qualify(d.Name)
	d.Kind = KindTypeAlias

	if h.Depth > 0 {
		d.Kind = KindTemplateAlias
	}

	return d, nil
}

func classifyTypedef(d Declaration, stmt *Statement, toks []Token, j int, scope Scope) (Declaration, error) {
	src := toks[j+1:]
	if stmt.Body == BodyClass || stmt.Body == BodyEnum {
		src = trimSemicolon(stmt.Tail)
	}

	name := typedefName(src)
	if name == "" {
		return Declaration{}, fmt.Errorf("%w: typedef without name", ErrAmbiguous)
	}

	d.Name = name
	d.QualifiedName = scope.Qualify(name)
	d.Kind = KindTypeAlias
	d.TemplateHeaderDepth = 0

	return d, nil
}

// typedefName returns the name introduced by the first declarator of a
// typedef, handling function pointer forms such as (*Fn)(int).
func typedefName(toks []Token) string {
	depth := 0
	end := len(toks)

	for k, t := range toks {
		switch t.Text {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			depth--
		case ",":
			if depth == 0 && end == len(toks) {
				end = k
			}
		}
	}

	toks = toks[:end]

	for k := 0; k+1 < len(toks); k++ {
		if toks[k].Text == "(" && (toks[k+1].Text == "*" || toks[k+1].Text == "&" || toks[k+1].Text == "^") {
			for m := k + 2; m < len(toks) && toks[m].Text != ")"; m++ {
				if isName(toks[m]) && text(toks, m+1) != "::" {
					return toks[m].Text
				}
			}
		}
	}

	name := ""
	depth = 0

	for _, t := range toks {
		switch {
		case t.Text == "[" || t.Text == "(":
			depth++
		case t.Text == "]" || t.Text == ")":
			depth--
		case depth == 0 && isName(t):
			name = t.Text
		}
	}

	return name
}

func classifyClass(d Declaration, stmt *Statement, toks []Token, j int, h templateHeaders, scope Scope) (Declaration, error) {
	key := toks[j].Text

	k := j + 1
	if key == "enum" && classKeys[text(toks, k)] {
		k++
	}

	k = skipAttributes(toks, k)

	end := k
	for end < len(toks) && (toks[end].Kind == TokenIdent && !isVirtSpecifier(toks[end].Text) || toks[end].Text == "::") {
		end++
	}

	start := qualifierStart(toks, end, k)
	if start == end {
		return Declaration{}, fmt.Errorf("%w: anonymous %s", ErrNotDocumentable, key)
	}

	nameEnd := end

	hasArgs := text(toks, end) == "<"
	if hasArgs {
		gt := matchAngle(toks, end)
		if gt < 0 {
			return Declaration{}, fmt.Errorf("%w: unclosed template argument list", ErrAmbiguous)
		}

		nameEnd = gt + 1
	}

	d.Name = joinTokens(toks[start:nameEnd])
	d.QualifiedName = scope.Qualify(d.Name)
	d.OutOfLine = strings.Contains(stripTemplateArgs(toks[start:nameEnd]), "::")

	if stmt.Body == BodyClass || stmt.Body == BodyEnum {
		d.HasBody = true

		switch {
		case h.Explicit, hasArgs && h.Depth > 0:
			d.Kind = KindSpecialization
		case key == "enum":
			d.Kind = KindEnum
		case h.Depth > 0:
			d.Kind = KindTemplateClass
		default:
			d.Kind = classKind(key)
		}

		return d, nil
	}

	// struct stat info;
	if start > k {
		return Declaration{}, fmt.Errorf("%w: elaborated type specifier", ErrNotDocumentable)
	}

	rest := nameEnd
	for rest < len(toks) && isVirtSpecifier(toks[rest].Text) {
		rest++
	}

	// Opaque enum declaration: enum class E : int;
	if key == "enum" && text(toks, rest) == ":" {
		rest = len(toks)
	}

	if rest != len(toks) {
		return Declaration{}, fmt.Errorf("%w: elaborated type specifier", ErrNotDocumentable)
	}

	if scope.Class == "" {
		return Declaration{}, fmt.Errorf("%w: forward declaration", ErrNotDocumentable)
	}

	d.IsDefinitionOnly = true

	switch {
	case h.Depth > 0 && key != "enum":
		d.Kind = KindNestedTemplateClassDecl
	case key == "enum":
		d.Kind = KindEnum
	default:
		d.Kind = classKind(key)
	}

	return d, nil
}

func classKind(key string) Kind {
	switch key {
	case "struct":
		return KindStruct
	case "union":
		return KindUnion
	}

	return KindClass
}

func isVirtSpecifier(s string) bool {
	return s == "final" || s == "sealed" || s == "abstract"
}

func classifyFunction(d Declaration, stmt *Statement, toks []Token, j int, h templateHeaders, scope Scope) (Declaration, error) {
	decl, ok := findDeclarator(toks, j)
	if !ok {
		return Declaration{}, fmt.Errorf("%w: variable or unrecognized declaration", ErrNotDocumentable)
	}

	nameToks := toks[decl.NameStart:decl.Paren]
	if len(nameToks) == 0 {
		return Declaration{}, fmt.Errorf("%w: declarator without name", ErrAmbiguous)
	}

	stripped := stripTemplateArgs(nameToks)

	final := stripped
	if idx := strings.LastIndex(stripped, "::"); idx >= 0 {
		final = stripped[idx+2:]
	}

	isOperator := strings.HasPrefix(final, "operator")
	base := strings.TrimPrefix(final, "~")

	if !isOperator && (base == "" || keywords[base]) {
		return Declaration{}, fmt.Errorf("%w: declarator %q is not a name", ErrAmbiguous, final)
	}

	qualified := strings.Contains(strings.TrimPrefix(stripped, "::"), "::")
	destructor := strings.HasPrefix(final, "~")
	hasReturn := decl.NameStart > j
	special := scope.ClassName != "" && base == scope.ClassName

	if !hasReturn && !qualified && !special && !isOperator {
		return Declaration{}, fmt.Errorf("%w: %s looks like a macro invocation", ErrAmbiguous, final)
	}

	d.Name = joinTokens(nameToks)
	d.QualifiedName = scope.Qualify(d.Name)
	d.Params = countParams(toks, decl.Paren, decl.Close)
	d.HasBody = stmt.Body == BodyFunction || isDefaulted(toks, decl.Close)
	d.MemberKey = scope.memberPath(stripped) + "/" + strconv.Itoa(d.Params)

	if qualified {
		d.OutOfLine = true
		d.EnclosingScope = scope.Qualify(stripped[:strings.LastIndex(stripped, "::")])
	}

	switch {
	case destructor && qualified:
		d.Kind = KindDestructorDefinition
	case h.Explicit:
		d.Kind = KindSpecialization
	case qualified && h.Depth > 0:
		d.Kind = KindOutOfLineTemplateMember
	case h.Depth > 0:
		d.Kind = KindTemplateFunction
	default:
		d.Kind = KindFunction
	}

	return d, nil
}

// isDefaulted reports whether the tokens after the parameter list contain
// "= default" or "= delete".
func isDefaulted(toks []Token, closing int) bool {
	for k := closing + 1; k+1 < len(toks); k++ {
		if toks[k].Text == "=" && (toks[k+1].Text == "default" || toks[k+1].Text == "delete") {
			return true
		}
	}

	return false
}

func trimSemicolon(toks []Token) []Token {
	if n := len(toks); n > 0 && toks[n-1].Text == ";" {
		return toks[:n-1]
	}

	return toks
}
