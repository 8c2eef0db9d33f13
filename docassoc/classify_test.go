package docassoc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/cxxdoc/docassoc"
)

func firstStatement(t *testing.T, src string) *docassoc.Statement {
	t.Helper()

	units, err := docassoc.Scan([]byte(src))
	require.NoError(t, err)

	for _, u := range units {
		if u.Kind == docassoc.UnitStatement {
			return u.Statement
		}
	}

	require.FailNow(t, "no statement in input")

	return nil
}

func TestClassify(t *testing.T) {
	t.Parallel()

	inClass := func(name string) docassoc.Scope {
		return docassoc.Scope{}.Nest(name, true, docassoc.AccessPublic)
	}

	tcs := map[string]struct {
		input     string
		scope     docassoc.Scope
		kind      docassoc.Kind
		name      string
		qualified string
		enclosing string
		depth     int
		params    int
		defOnly   bool
		hasBody   bool
	}{
		"class": {
			input: "class Widget { };",
			kind:  docassoc.KindClass, name: "Widget", qualified: "Widget",
			params: -1, hasBody: true,
		},
		"struct with base": {
			input: "struct Derived final : public Base { };",
			kind:  docassoc.KindStruct, name: "Derived", qualified: "Derived",
			params: -1, hasBody: true,
		},
		"union": {
			input: "union U { int i; float f; };",
			kind:  docassoc.KindUnion, name: "U", qualified: "U",
			params: -1, hasBody: true,
		},
		"scoped enum": {
			input: "enum class Color : int { Red, Green };",
			kind:  docassoc.KindEnum, name: "Color", qualified: "Color",
			params: -1, hasBody: true,
		},
		"class with export macro": {
			input: "class API_EXPORT Widget { };",
			kind:  docassoc.KindClass, name: "Widget", qualified: "Widget",
			params: -1, hasBody: true,
		},
		"template class": {
			input: "template <typename T> class X { };",
			kind:  docassoc.KindTemplateClass, name: "X", qualified: "X",
			depth: 1, params: -1, hasBody: true,
		},
		"template class with requires clause": {
			input: "template <typename T> requires std::integral<T> && (sizeof(T) > 1) struct Num { };",
			kind:  docassoc.KindTemplateClass, name: "Num", qualified: "Num",
			depth: 1, params: -1, hasBody: true,
		},
		"partial specialization": {
			input: "template <class T> class X<T*> { };",
			kind:  docassoc.KindSpecialization, name: "X<T*>", qualified: "X<T*>",
			depth: 1, params: -1, hasBody: true,
		},
		"explicit class specialization": {
			input: "template <> struct Traits<int> { };",
			kind:  docassoc.KindSpecialization, name: "Traits<int>", qualified: "Traits<int>",
			params: -1, hasBody: true,
		},
		"template alias": {
			input: "template <typename T> using Vec = std::vector<T>;",
			kind:  docassoc.KindTemplateAlias, name: "Vec", qualified: "Vec",
			depth: 1, params: -1,
		},
		"stacked template alias": {
			input: "template <typename T> template <typename U> using Pair = P<T, U>;",
			kind:  docassoc.KindTemplateAlias, name: "Pair", qualified: "Pair",
			depth: 2, params: -1,
		},
		"member type alias": {
			input: "using type = void;",
			scope: inClass("testClass"),
			kind:  docassoc.KindTypeAlias, name: "type", qualified: "testClass::type",
			enclosing: "testClass", params: -1,
		},
		"typedef": {
			input: "typedef unsigned long size_type;",
			kind:  docassoc.KindTypeAlias, name: "size_type", qualified: "size_type",
			params: -1,
		},
		"typedef function pointer": {
			input: "typedef void (*Callback)(int);",
			kind:  docassoc.KindTypeAlias, name: "Callback", qualified: "Callback",
			params: -1,
		},
		"typedef anonymous struct": {
			input: "typedef struct { int x; } Point;",
			kind:  docassoc.KindTypeAlias, name: "Point", qualified: "Point",
			params: -1,
		},
		"function": {
			input: "int add(int a, int b);",
			kind:  docassoc.KindFunction, name: "add", qualified: "add",
			params: 2,
		},
		"function with void parameter list": {
			input: "void reset(void) {}",
			kind:  docassoc.KindFunction, name: "reset", qualified: "reset",
			hasBody: true,
		},
		"function with default template argument": {
			input: "void f(std::map<int, int> m = {}, int n = g(1, 2));",
			kind:  docassoc.KindFunction, name: "f", qualified: "f",
			params: 2,
		},
		"trailing return type": {
			input: "auto size() const -> std::size_t;",
			kind:  docassoc.KindFunction, name: "size", qualified: "size",
		},
		"operator": {
			input: "bool operator==(const A& other) const;",
			scope: inClass("A"),
			kind:  docassoc.KindFunction, name: "operator==", qualified: "A::operator==",
			enclosing: "A", params: 1,
		},
		"constructor": {
			input: "Widget(int size);",
			scope: inClass("Widget"),
			kind:  docassoc.KindFunction, name: "Widget", qualified: "Widget::Widget",
			enclosing: "Widget", params: 1,
		},
		"constructor definition with initializers": {
			input: "Widget::Widget(int s) : size_{s}, name_(\"w\") {}",
			kind:  docassoc.KindFunction, name: "Widget::Widget", qualified: "Widget::Widget",
			enclosing: "Widget", params: 1, hasBody: true,
		},
		"template function": {
			input: "template <typename T> T max(T a, T b) { return a > b ? a : b; }",
			kind:  docassoc.KindTemplateFunction, name: "max", qualified: "max",
			depth: 1, params: 2, hasBody: true,
		},
		"cascaded out-of-line member": {
			input: "template <class U> template <class T> void TestClass::functionTest();",
			kind:  docassoc.KindOutOfLineTemplateMember, name: "TestClass::functionTest",
			qualified: "TestClass::functionTest", enclosing: "TestClass", depth: 2,
		},
		"out-of-line member of template class": {
			input: "template <class T> void Box<T>::put(T v) {}",
			kind:  docassoc.KindOutOfLineTemplateMember, name: "Box<T>::put",
			qualified: "Box<T>::put", enclosing: "Box", depth: 1, params: 1, hasBody: true,
		},
		"explicit function specialization": {
			input: "template<> Formatter& LogMsg_applyFormat<int>(Formatter& format, int i);",
			kind:  docassoc.KindSpecialization, name: "LogMsg_applyFormat<int>",
			qualified: "LogMsg_applyFormat<int>", params: 2,
		},
		"defaulted destructor of template class": {
			input: "template <typename B> A<B>::~A() = default;",
			kind:  docassoc.KindDestructorDefinition, name: "A<B>::~A",
			qualified: "A<B>::~A", enclosing: "A", depth: 1, hasBody: true,
		},
		"destructor definition": {
			input: "Widget::~Widget() {}",
			kind:  docassoc.KindDestructorDefinition, name: "Widget::~Widget",
			qualified: "Widget::~Widget", enclosing: "Widget", hasBody: true,
		},
		"in-class destructor": {
			input: "virtual ~Widget();",
			scope: inClass("Widget"),
			kind:  docassoc.KindFunction, name: "~Widget", qualified: "Widget::~Widget",
			enclosing: "Widget",
		},
		"nested template class declaration": {
			input: "template<class T> class B;",
			scope: inClass("A"),
			kind:  docassoc.KindNestedTemplateClassDecl, name: "B", qualified: "A::B",
			enclosing: "A", depth: 1, params: -1, defOnly: true,
		},
		"nested class declaration": {
			input: "class Impl;",
			scope: inClass("A"),
			kind:  docassoc.KindClass, name: "Impl", qualified: "A::Impl",
			enclosing: "A", params: -1, defOnly: true,
		},
		"declaration in namespace": {
			input: "void run();",
			scope: docassoc.Scope{}.Nest("ns", false, docassoc.AccessNone),
			kind:  docassoc.KindFunction, name: "run", qualified: "ns::run",
		},
		"attributes": {
			input: "[[nodiscard]] int compute();",
			kind:  docassoc.KindFunction, name: "compute", qualified: "compute",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			d, err := docassoc.Classify(firstStatement(t, tc.input), tc.scope)
			require.NoError(t, err)

			assert.Equal(t, tc.kind, d.Kind)
			assert.Equal(t, tc.name, d.Name)
			assert.Equal(t, tc.qualified, d.QualifiedName)
			assert.Equal(t, tc.enclosing, d.EnclosingScope)
			assert.Equal(t, tc.depth, d.TemplateHeaderDepth)
			assert.Equal(t, tc.params, d.Params)
			assert.Equal(t, tc.defOnly, d.IsDefinitionOnly)
			assert.Equal(t, tc.hasBody, d.HasBody)
			assert.True(t, d.Kind.Valid())
		})
	}
}

func TestClassifyRejects(t *testing.T) {
	t.Parallel()

	inClass := docassoc.Scope{}.Nest("A", true, docassoc.AccessPrivate)

	tcs := map[string]struct {
		err   error
		input string
		scope docassoc.Scope
	}{
		"variable": {
			input: "int count = 0;",
			err:   docassoc.ErrNotDocumentable,
		},
		"member variable": {
			input: "int publicAttr;",
			scope: inClass,
			err:   docassoc.ErrNotDocumentable,
		},
		"friend": {
			input: "friend class B;",
			scope: inClass,
			err:   docassoc.ErrNotDocumentable,
		},
		"template friend": {
			input: "template <class U> friend class B;",
			scope: inClass,
			err:   docassoc.ErrNotDocumentable,
		},
		"using directive": {
			input: "using namespace std;",
			err:   docassoc.ErrNotDocumentable,
		},
		"using declaration": {
			input: "using Base::Base;",
			scope: inClass,
			err:   docassoc.ErrNotDocumentable,
		},
		"static assertion": {
			input: "static_assert(sizeof(int) == 4, \"int\");",
			err:   docassoc.ErrNotDocumentable,
		},
		"explicit instantiation": {
			input: "template class std::vector<int>;",
			err:   docassoc.ErrNotDocumentable,
		},
		"extern template": {
			input: "extern template class std::vector<int>;",
			err:   docassoc.ErrNotDocumentable,
		},
		"forward declaration": {
			input: "class Foo;",
			err:   docassoc.ErrNotDocumentable,
		},
		"elaborated variable": {
			input: "struct stat info;",
			err:   docassoc.ErrNotDocumentable,
		},
		"namespace": {
			input: "namespace ns { }",
			err:   docassoc.ErrNotDocumentable,
		},
		"linkage block": {
			input: "extern \"C\" { }",
			err:   docassoc.ErrNotDocumentable,
		},
		"anonymous struct": {
			input: "struct { int x; } point;",
			err:   docassoc.ErrNotDocumentable,
		},
		"access specifier": {
			input: "class A {\npublic:\n};",
			err:   docassoc.ErrNotDocumentable,
		},
		"macro invocation": {
			input: "DECLARE_THING(Foo);",
			err:   docassoc.ErrAmbiguous,
		},
		"unclosed template header": {
			input: "template <class T void f();",
			err:   docassoc.ErrAmbiguous,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			st := firstStatement(t, tc.input)
			if name == "access specifier" {
				st = st.Children[0].Statement
			}

			_, err := docassoc.Classify(st, tc.scope)
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestMemberKey(t *testing.T) {
	t.Parallel()

	ns := docassoc.Scope{}.Nest("ns", false, docassoc.AccessNone)

	tcs := map[string]struct {
		input string
		scope docassoc.Scope
		want  string
	}{
		"in-class member": {
			input: "void f(int a, int b);",
			scope: ns.Nest("Box", true, docassoc.AccessPublic),
			want:  "ns::Box::f/2",
		},
		"member of a specialization": {
			input: "void f();",
			scope: docassoc.Scope{}.Nest("X<int>", true, docassoc.AccessPrivate),
			want:  "X::f/0",
		},
		"out-of-line definition in a specialization": {
			input: "void X<int>::f() {}",
			want:  "X::f/0",
		},
		"member of a partial specialization in a namespace": {
			input: "void put(T* v);",
			scope: ns.Nest("Box<T*>", true, docassoc.AccessPublic),
			want:  "ns::Box::put/1",
		},
		"out-of-line template member in a namespace": {
			input: "template <class T> void Box<T*>::put(T* v) {}",
			scope: ns,
			want:  "ns::Box::put/1",
		},
		"class has no key": {
			input: "class Impl;",
			scope: ns.Nest("Box", true, docassoc.AccessPublic),
			want:  "",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			d, err := docassoc.Classify(firstStatement(t, tc.input), tc.scope)
			require.NoError(t, err)

			assert.Equal(t, tc.want, d.MemberKey)
		})
	}
}

func TestAccessLabel(t *testing.T) {
	t.Parallel()

	src := "class A {\npublic:\n  void a();\nprotected:\n  void b();\nprivate:\n  void c();\nsignals:\n  void d();\npublic slots:\n  void e();\n};"

	st := firstStatement(t, src)

	var got []docassoc.Access

	for _, u := range st.Children {
		if access, ok := docassoc.AccessLabel(u.Statement); ok {
			got = append(got, access)
		}
	}

	assert.Equal(t, []docassoc.Access{
		docassoc.AccessPublic,
		docassoc.AccessProtected,
		docassoc.AccessPrivate,
		docassoc.AccessPublic,
		docassoc.AccessPublic,
	}, got)
}

func TestKinds(t *testing.T) {
	t.Parallel()

	kinds := docassoc.AllKinds()
	assert.Len(t, kinds, 13)

	for _, k := range kinds {
		assert.True(t, k.Valid(), k)
	}

	assert.False(t, docassoc.Kind("variable").Valid())
	assert.True(t, docassoc.KindDestructorDefinition.Functional())
	assert.False(t, docassoc.KindTemplateClass.Functional())
}
