package docassoc

// Registry records member functions declared inside class bodies, keyed by
// [Declaration.MemberKey], together with whether the in-class declaration
// was documented. Out-of-line mentions of the same member are checked
// against it.
//
// A Registry belongs to the processing of a single file and is not safe
// for concurrent use.
type Registry struct {
	entries map[string]bool
}

// NewRegistry returns an empty [Registry].
func NewRegistry() *Registry {
	return &Registry{entries: map[string]bool{}}
}

// Register records key. Overloads sharing a key are merged: the entry is
// documented if any registration was.
func (r *Registry) Register(key string, documented bool) {
	r.entries[key] = r.entries[key] || documented
}

// Has reports whether key was registered.
func (r *Registry) Has(key string) bool {
	_, ok := r.entries[key]

	return ok
}

// Documented reports whether key was registered by a documented
// declaration.
func (r *Registry) Documented(key string) bool {
	return r.entries[key]
}

// Len returns the number of registered keys.
func (r *Registry) Len() int {
	return len(r.entries)
}
