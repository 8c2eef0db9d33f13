package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/cxxdoc/docassoc"
	"go.jacobcolvin.com/cxxdoc/log"
	"go.jacobcolvin.com/cxxdoc/report"
	"go.jacobcolvin.com/cxxdoc/stringtest"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(t.Context())

	return stdout.String(), stderr.String(), err
}

func writeSources(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	files := map[string]string{
		"widget.h": stringtest.Input(`
			/** A widget. */
			class Widget {
			public:
			  /** Draws it. */
			  void draw();
			  void resize(int w, int h);
			};
		`),
		"broken.hpp": "/*! never closed\n",
		"notes.txt":  "/** not C++ */\n",
	}

	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	return dir
}

func TestCheck(t *testing.T) {
	t.Parallel()

	dir := writeSources(t)

	stdout, stderr, err := execute(t, "check", "-f", "json", "--log-format", "json", dir)
	require.NoError(t, err)

	var doc report.Document
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))

	assert.Equal(t, docassoc.Stats{Total: 3, Documented: 2, Undocumented: 1, Density: 2.0 / 3.0}, doc.Stats)

	require.Len(t, doc.Files, 1)
	assert.Equal(t, filepath.Join(dir, "widget.h"), doc.Files[0].Path)

	require.Len(t, doc.Skipped, 1)
	assert.Equal(t, filepath.Join(dir, "broken.hpp"), doc.Skipped[0].Path)

	assert.Contains(t, stderr, `"msg":"skipping file"`)
	assert.Contains(t, stderr, `"msg":"analysis complete"`)
}

func TestCheckFailUnder(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		err       error
		failUnder string
	}{
		"met": {
			failUnder: "60",
		},
		"not met": {
			failUnder: "70",
			err:       errBelowThreshold,
		},
		"out of range": {
			failUnder: "150",
			err:       docassoc.ErrInvalidOption,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			dir := writeSources(t)

			_, _, err := execute(t, "check", "--log-level", "error", "--fail-under", tc.failUnder,
				filepath.Join(dir, "widget.h"))
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestCheckInvalidFlags(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		err  error
		args []string
	}{
		"unknown log level": {
			args: []string{"--log-level", "loud"},
			err:  log.ErrInvalidArgument,
		},
		"unknown report format": {
			args: []string{"-f", "csv"},
			err:  docassoc.ErrInvalidOption,
		},
		"zero workers": {
			args: []string{"-j", "0"},
			err:  docassoc.ErrInvalidOption,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			dir := writeSources(t)

			args := append([]string{"check"}, tc.args...)
			args = append(args, dir)

			_, _, err := execute(t, args...)
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestCheckMissingPath(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "check", filepath.Join(t.TempDir(), "missing"))
	require.ErrorIs(t, err, docassoc.ErrReadInput)
}

func TestSchemaCmd(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "schema")
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &raw))
	assert.Equal(t, report.SchemaURI, raw["$schema"])
}

func TestVersionCmd(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "cxxdoc ")

	stdout, _, err = execute(t, "version", "--json")
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &raw))
	assert.NotEmpty(t, raw["version"])
}
