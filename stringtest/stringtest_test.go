package stringtest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.jacobcolvin.com/cxxdoc/stringtest"
)

func TestInput(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  string
	}{
		"empty": {
			input: "",
			want:  "",
		},
		"one declaration": {
			input: "\nvoid f();\n",
			want:  "void f();",
		},
		"only one surrounding line break is removed": {
			input: "\n\nvoid f();\n\n",
			want:  "\nvoid f();\n",
		},
		"tab indented class": {
			input: "\n\t\tclass X {\n\t\t  void f();\n\t\t};\n",
			want:  "class X {\n  void f();\n};",
		},
		"raw string closing indent becomes a final newline": {
			input: `
			/** doc */
			template <typename T>
			class X {
			public:
			    void f(); ///< f
			};
		`,
			want: "/** doc */\ntemplate <typename T>\nclass X {\npublic:\n    void f(); ///< f\n};\n",
		},
		"mixed tabs and spaces keep the differing part": {
			input: "\t\tint a;\n\t  int b;",
			want:  "\tint a;\n  int b;",
		},
		"spaces do not cancel a tab": {
			input: "\tvoid f();\n    void g();",
			want:  "\tvoid f();\n    void g();",
		},
		"blank lines inside a body": {
			input: "\n    struct A {\n\n      int x;\n    \n    };",
			want:  "struct A {\n\n  int x;\n\n};",
		},
		"all blank": {
			input: "\n   \n\t\n",
			want:  "\n",
		},
		"crlf": {
			input: "\r\n    /** doc */\r\n    void f();\r\n",
			want:  "/** doc */\r\nvoid f();",
		},
		"crlf blank line keeps its carriage return": {
			input: "  int a;\r\n  \r\n  int b;",
			want:  "int a;\r\n\r\nint b;",
		},
		"already dedented": {
			input: "struct A {\n  int x;\n};",
			want:  "struct A {\n  int x;\n};",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, stringtest.Input(tc.input))
		})
	}
}

func TestJoin(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		lf    string
		crlf  string
		input []string
	}{
		"nothing": {
			input: nil,
		},
		"one line": {
			input: []string{"void f();"},
			lf:    "void f();",
			crlf:  "void f();",
		},
		"comment and declaration": {
			input: []string{"/** doc */", "void f();"},
			lf:    "/** doc */\nvoid f();",
			crlf:  "/** doc */\r\nvoid f();",
		},
		"blank line": {
			input: []string{"int a;", "", "int b;"},
			lf:    "int a;\n\nint b;",
			crlf:  "int a;\r\n\r\nint b;",
		},
		"embedded line breaks are kept": {
			input: []string{"/**\n * doc\n */", "void f();"},
			lf:    "/**\n * doc\n */\nvoid f();",
			crlf:  "/**\n * doc\n */\r\nvoid f();",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.lf, stringtest.JoinLF(tc.input...))
			assert.Equal(t, tc.crlf, stringtest.JoinCRLF(tc.input...))
		})
	}
}
