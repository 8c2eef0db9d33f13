package docassoc

import (
	"slices"
)

// Key identifies a declaration in a [Result]: its qualified name and the
// 1-based line of its first token.
type Key struct {
	QualifiedName string `json:"qualifiedName" yaml:"qualifiedName"`
	Line          int    `json:"line"          yaml:"line"`
}

// Key returns the [Result] key of d.
func (d Declaration) Key() Key {
	return Key{QualifiedName: d.QualifiedName, Line: d.Line()}
}

// Stats aggregates the documentation metrics of a set of declarations.
type Stats struct {
	Total        int `json:"total"        yaml:"total"`
	Documented   int `json:"documented"   yaml:"documented"`
	Undocumented int `json:"undocumented" yaml:"undocumented"`
	// Density is Documented/Total, or 1 when Total is 0.
	Density float64 `json:"density" yaml:"density"`
}

// Add returns the sum of s and o with the density recomputed.
func (s Stats) Add(o Stats) Stats {
	return newStats(s.Total+o.Total, s.Documented+o.Documented)
}

func newStats(total, documented int) Stats {
	s := Stats{
		Total:        total,
		Documented:   documented,
		Undocumented: total - documented,
		Density:      1,
	}

	if total > 0 {
		s.Density = float64(documented) / float64(total)
	}

	return s
}

// Result is the documentation outcome of one source file. It is immutable
// and safe for concurrent reads.
type Result struct {
	index   map[Key]int
	entries []Association
}

// Emit builds a [Result] from associations. Entries are ordered by source
// position. When two declarations share a [Key], lookups return the first.
func Emit(assocs []Association) *Result {
	entries := slices.Clone(assocs)
	slices.SortStableFunc(entries, func(a, b Association) int {
		return a.Declaration.Range.Start.Offset - b.Declaration.Range.Start.Offset
	})

	index := make(map[Key]int, len(entries))
	for i, a := range entries {
		k := a.Declaration.Key()
		if _, ok := index[k]; !ok {
			index[k] = i
		}
	}

	return &Result{entries: entries, index: index}
}

// Documented reports whether the declaration identified by k is
// documented. ok is false when no such declaration exists.
func (r *Result) Documented(k Key) (documented, ok bool) {
	a, ok := r.Lookup(k)

	return a.Documented(), ok
}

// Lookup returns the association of the declaration identified by k.
func (r *Result) Lookup(k Key) (Association, bool) {
	i, ok := r.index[k]
	if !ok {
		return Association{}, false
	}

	return r.entries[i], true
}

// Entries returns all associations in source order.
func (r *Result) Entries() []Association {
	return slices.Clone(r.entries)
}

// Undocumented returns the associations of undocumented declarations in
// source order.
func (r *Result) Undocumented() []Association {
	var out []Association

	for _, a := range r.entries {
		if !a.Documented() {
			out = append(out, a)
		}
	}

	return out
}

// Len returns the number of declarations.
func (r *Result) Len() int {
	return len(r.entries)
}

// Stats returns the aggregate metrics of r.
func (r *Result) Stats() Stats {
	documented := 0

	for _, a := range r.entries {
		if a.Documented() {
			documented++
		}
	}

	return newStats(len(r.entries), documented)
}

// StatsByKind returns the metrics of r per declaration kind. Kinds without
// declarations are omitted.
func (r *Result) StatsByKind() map[Kind]Stats {
	out := map[Kind]Stats{}

	for _, a := range r.entries {
		one := newStats(1, 0)
		if a.Documented() {
			one = newStats(1, 1)
		}

		out[a.Declaration.Kind] = out[a.Declaration.Kind].Add(one)
	}

	return out
}
