package batch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"go.jacobcolvin.com/cxxdoc/batch"
	"go.jacobcolvin.com/cxxdoc/docassoc"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()

	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	return dir
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"a.h":           "",
		"src/b.cpp":     "",
		"src/c.HPP":     "",
		"src/notes.txt": "",
		"README.md":     "",
	})

	tcs := map[string]struct {
		opts  []batch.Option
		paths []string
		want  []string
	}{
		"default extensions": {
			paths: []string{dir},
			want:  []string{"a.h", "src/b.cpp", "src/c.HPP"},
		},
		"custom extensions": {
			opts:  []batch.Option{batch.WithExtensions(".cpp")},
			paths: []string{dir},
			want:  []string{"src/b.cpp"},
		},
		"explicit file is always included": {
			paths: []string{filepath.Join(dir, "src", "notes.txt")},
			want:  []string{"src/notes.txt"},
		},
		"duplicates are removed": {
			paths: []string{dir, filepath.Join(dir, "a.h")},
			want:  []string{"a.h", "src/b.cpp", "src/c.HPP"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := batch.NewRunner(docassoc.NewEngine(), tc.opts...).Discover(tc.paths)
			require.NoError(t, err)

			want := make([]string, 0, len(tc.want))
			for _, w := range tc.want {
				want = append(want, filepath.Join(dir, filepath.FromSlash(w)))
			}

			assert.Equal(t, want, got)
		})
	}
}

func TestDiscoverMissingPath(t *testing.T) {
	t.Parallel()

	_, err := batch.NewRunner(docassoc.NewEngine()).Discover([]string{filepath.Join(t.TempDir(), "missing")})
	require.ErrorIs(t, err, docassoc.ErrReadInput)
}

func TestRun(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"good.h":   "/** doc */\nvoid f();\nvoid g();\n",
		"other.h":  "/** doc */\nclass C {};\n",
		"broken.h": "/** unterminated\n",
	})

	runner := batch.NewRunner(docassoc.NewEngine(), batch.WithWorkers(4))

	files := []string{
		filepath.Join(dir, "good.h"),
		filepath.Join(dir, "broken.h"),
		filepath.Join(dir, "missing.h"),
		filepath.Join(dir, "other.h"),
	}

	sum, err := runner.Run(t.Context(), files)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, sum.RunID)
	require.Len(t, sum.Files, 4)

	for i, f := range sum.Files {
		assert.Equal(t, files[i], f.Path)
	}

	assert.False(t, sum.Files[0].Skipped())
	assert.ErrorIs(t, sum.Files[1].Err, docassoc.ErrScan)
	assert.ErrorIs(t, sum.Files[2].Err, docassoc.ErrReadInput)
	assert.False(t, sum.Files[3].Skipped())
	assert.Len(t, sum.Skipped(), 2)

	assert.Equal(t, docassoc.Stats{Total: 3, Documented: 2, Undocumented: 1, Density: 2.0 / 3.0}, sum.Stats)
}

func TestRunCanceled(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{"a.h": "void f();\n"})

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := batch.NewRunner(docassoc.NewEngine()).Run(ctx, []string{filepath.Join(dir, "a.h")})
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunEmpty(t *testing.T) {
	t.Parallel()

	sum, err := batch.NewRunner(docassoc.NewEngine()).Run(t.Context(), nil)
	require.NoError(t, err)

	assert.Empty(t, sum.Files)
	assert.Equal(t, docassoc.Stats{Density: 1}, sum.Stats)
}

func TestConfig(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		err  error
		args []string
	}{
		"defaults": {
			args: nil,
		},
		"workers": {
			args: []string{"-j", "3", "--ext", ".h,.cpp"},
		},
		"zero workers": {
			args: []string{"--workers", "0"},
			err:  docassoc.ErrInvalidOption,
		},
		"extension without dot": {
			args: []string{"--ext", "h"},
			err:  docassoc.ErrInvalidOption,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg := batch.NewConfig()

			flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
			cfg.RegisterFlags(flags)
			require.NoError(t, flags.Parse(tc.args))

			runner, err := cfg.NewRunner(docassoc.NewEngine(), nil)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)

				return
			}

			require.NoError(t, err)
			assert.NotNil(t, runner)
		})
	}
}
