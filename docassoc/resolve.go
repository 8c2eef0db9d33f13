package docassoc

import (
	"errors"
	"log/slog"
)

// Source tells how an [Association] was made.
type Source string

// Association sources.
const (
	// SourcePreceding marks a comment directly before the declaration.
	SourcePreceding Source = "preceding"
	// SourceTrailing marks a trailing comment directly after the
	// declaration.
	SourceTrailing Source = "trailing"
	// SourceInherited marks a nested forward declaration covered by the
	// comment of its enclosing class.
	SourceInherited Source = "inherited"
	// SourceRegistry marks an out-of-line definition whose in-class
	// declaration was documented.
	SourceRegistry Source = "registry"
	// SourceNone marks an undocumented declaration.
	SourceNone Source = "none"
)

// Association binds one declaration to at most one comment.
type Association struct {
	// Comment is the consumed comment, or nil for the inherited, registry
	// and none sources.
	Comment     *Comment    `json:"comment,omitempty" yaml:"comment,omitempty"`
	Source      Source      `json:"source"            yaml:"source"`
	Declaration Declaration `json:"declaration"       yaml:"declaration"`
}

// Documented reports whether the declaration counts as documented.
func (a Association) Documented() bool {
	return a.Source != SourceNone && a.Source != ""
}

// cursor is the comment consumption state of one resolver pass. Comments
// are identified by their start offset.
type cursor struct {
	consumed map[int]bool
}

func newCursor() *cursor {
	return &cursor{consumed: map[int]bool{}}
}

func (c *cursor) available(cm *Comment) bool {
	return !c.consumed[cm.Range.Start.Offset]
}

func (c *cursor) consume(cm *Comment) {
	c.consumed[cm.Range.Start.Offset] = true
}

// count returns the number of consumed comments.
func (c *cursor) count() int {
	return len(c.consumed)
}

// resolver walks the unit tree once, in source order.
type resolver struct {
	log                 *slog.Logger
	cur                 *cursor
	reg                 *Registry
	out                 []Association
	publicOnly          bool
	trailingInheritance bool
}

// frame is the state of one body: the file, a namespace or a class.
type frame struct {
	// parent is the association of the enclosing class, if any.
	parent *Association
	scope  Scope
	// consumed is set once a declaration of this body consumed a comment.
	consumed bool
	// hidden is set inside non-public classes.
	hidden bool
}

func (r *resolver) walk(units []Unit, f *frame) {
	for i, u := range units {
		if u.Kind != UnitStatement {
			continue
		}

		st := u.Statement

		if access, ok := AccessLabel(st); ok {
			f.scope.Access = access

			continue
		}

		d, err := Classify(st, f.scope)
		if err != nil {
			if errors.Is(err, ErrAmbiguous) {
				r.log.Debug("skipping statement",
					slog.Int("line", st.Range.Start.Line),
					slog.Any("err", err),
				)
			}

			r.descend(st, f, nil)

			continue
		}

		a, ok := r.associate(units, i, d, f)
		if !ok {
			r.log.Debug("skipping re-declaration",
				slog.String("name", d.QualifiedName),
				slog.Int("line", d.Line()),
			)

			continue
		}

		if r.visible(d, f) {
			r.out = append(r.out, a)
		}

		r.descend(st, f, &a)
	}
}

// associate applies the association rules to d, the declaration of
// units[i]. It returns false for out-of-line bodyless re-mentions that are
// already covered by the registry.
func (r *resolver) associate(units []Unit, i int, d Declaration, f *frame) (Association, bool) {
	a := Association{Declaration: d, Source: SourceNone}
	member := d.Kind.Functional() && d.MemberKey != ""
	remention := member && d.OutOfLine && !d.HasBody && r.reg.Has(d.MemberKey)

	if remention && r.reg.Documented(d.MemberKey) {
		return a, false
	}

	switch c := r.preceding(units, i); {
	case c != nil:
		a.Comment, a.Source = c, SourcePreceding

	default:
		if c := r.trailing(units, i, d); c != nil {
			a.Comment, a.Source = c, SourceTrailing

			break
		}

		switch {
		case remention:
			// An undocumented member mentioned again without a comment.
			return a, false
		case d.IsDefinitionOnly && r.inherits(f):
			a.Source = SourceInherited
		case member && d.OutOfLine && d.HasBody && r.reg.Documented(d.MemberKey):
			a.Source = SourceRegistry
		}
	}

	if a.Comment != nil {
		r.cur.consume(a.Comment)
		f.consumed = true
	}

	switch {
	case member && !d.OutOfLine && f.scope.Class != "":
		r.reg.Register(d.MemberKey, a.Documented())
	case remention:
		r.reg.Register(d.MemberKey, true)
	}

	return a, true
}

// preceding returns the eligible comment directly before units[i]. The
// statement before the comment has already been resolved, so a comment
// sharing its last line that is still available was not taken by it and
// binds here.
func (r *resolver) preceding(units []Unit, i int) *Comment {
	if i == 0 || units[i-1].Kind != UnitComment {
		return nil
	}

	c := units[i-1].Comment
	if !c.Style.Preceding() || !r.cur.available(c) {
		return nil
	}

	return c
}

// trailing returns the comment directly after units[i] when it is a
// trailing marker, or an eligible block whose closing delimiter is on the
// last line of d.
func (r *resolver) trailing(units []Unit, i int, d Declaration) *Comment {
	if i+1 >= len(units) || units[i+1].Kind != UnitComment {
		return nil
	}

	c := units[i+1].Comment
	if !c.Style.Eligible() || !r.cur.available(c) {
		return nil
	}

	if c.Style.Trailing() || c.Range.End.Line == d.Range.End.Line {
		return c
	}

	return nil
}

func (r *resolver) inherits(f *frame) bool {
	if f.parent == nil || f.consumed {
		return false
	}

	switch f.parent.Source {
	case SourcePreceding:
		return true
	case SourceTrailing:
		return r.trailingInheritance
	}

	return false
}

func (r *resolver) visible(d Declaration, f *frame) bool {
	if !r.publicOnly {
		return true
	}

	return !f.hidden && (d.Access == AccessNone || d.Access == AccessPublic)
}

// descend walks the body of st, if it has one. a is the association of st,
// or nil when st is not a documentable declaration.
func (r *resolver) descend(st *Statement, f *frame, a *Association) {
	switch st.Body {
	case BodyScope:
		r.walk(st.Children, &frame{
			scope:  f.scope.Nest(namespaceName(st.Head), false, AccessNone),
			hidden: f.hidden,
		})

	case BodyClass:
		access := defaultAccess(st.Head)

		child := &frame{
			hidden: f.hidden,
			// Members of an anonymous class belong to the enclosing scope.
			scope: Scope{
				Path:      f.scope.Path,
				Class:     f.scope.Class,
				ClassName: f.scope.ClassName,
				Access:    access,
			},
		}

		if a != nil {
			child.parent = a
			child.scope = f.scope.Nest(a.Declaration.Name, true, access)
			child.hidden = f.hidden || (a.Declaration.Access != AccessNone && a.Declaration.Access != AccessPublic)
		}

		r.walk(st.Children, child)
	}
}

// namespaceName returns the name of a namespace statement, or "" for
// anonymous namespaces and linkage blocks.
func namespaceName(head []Token) string {
	for i, t := range head {
		if t.Text != "namespace" {
			continue
		}

		var name []Token

		for j := skipAttributes(head, i+1); j < len(head); j++ {
			if head[j].Kind == TokenIdent && head[j].Text != "inline" || head[j].Text == "::" {
				name = append(name, head[j])
			}
		}

		return joinTokens(name)
	}

	return ""
}

// defaultAccess returns the initial member access of a class body: private
// for class, public for struct and union.
func defaultAccess(head []Token) Access {
	i := skipAttributes(head, 0)

	h, ok := skipTemplateHeaders(head, i)
	if ok {
		i = h.Next
	}

	for ; i < len(head); i++ {
		switch head[i].Text {
		case "class":
			return AccessPrivate
		case "struct", "union":
			return AccessPublic
		}
	}

	return AccessPublic
}
