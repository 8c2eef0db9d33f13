package docassoc

import "slices"

// Kind is the shape of a documentable declaration.
type Kind string

// Declaration kinds. The set is closed; [Classify] never returns any other
// value.
const (
	KindClass                   Kind = "class"
	KindStruct                  Kind = "struct"
	KindUnion                   Kind = "union"
	KindEnum                    Kind = "enum"
	KindFunction                Kind = "function"
	KindTypeAlias               Kind = "type-alias"
	KindTemplateClass           Kind = "template-class"
	KindTemplateAlias           Kind = "template-alias"
	KindTemplateFunction        Kind = "template-function"
	KindSpecialization          Kind = "specialization"
	KindNestedTemplateClassDecl Kind = "nested-template-class-decl"
	KindOutOfLineTemplateMember Kind = "out-of-line-template-member"
	KindDestructorDefinition    Kind = "destructor-definition"
)

// AllKinds returns every [Kind] in a stable order.
func AllKinds() []Kind {
	return []Kind{
		KindClass,
		KindStruct,
		KindUnion,
		KindEnum,
		KindFunction,
		KindTypeAlias,
		KindTemplateClass,
		KindTemplateAlias,
		KindTemplateFunction,
		KindSpecialization,
		KindNestedTemplateClassDecl,
		KindOutOfLineTemplateMember,
		KindDestructorDefinition,
	}
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return slices.Contains(AllKinds(), k)
}

// Functional reports whether k describes a function-like declaration that
// takes part in in-class versus out-of-line deduplication.
func (k Kind) Functional() bool {
	switch k {
	case KindFunction, KindTemplateFunction, KindOutOfLineTemplateMember, KindDestructorDefinition:
		return true
	}

	return false
}

// Access is the member access level of a declaration. It is empty at
// namespace scope.
type Access string

// Access levels.
const (
	AccessNone      Access = ""
	AccessPublic    Access = "public"
	AccessProtected Access = "protected"
	AccessPrivate   Access = "private"
)
