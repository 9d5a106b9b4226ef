package minifier

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/go-sourcemap/sourcemap"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreampie/jsminify/js/compiler"
	"github.com/dreampie/jsminify/lib/fileset"
	"github.com/dreampie/jsminify/lib/fsext"
	"github.com/dreampie/jsminify/lib/testutils"
)

func newTestMinifier(t *testing.T, fs fsext.Fs, settings Settings) *Minifier {
	t.Helper()
	sources, err := compiler.DefaultExterns()
	require.NoError(t, err)
	externs, err := compiler.LoadExterns(sources)
	require.NoError(t, err)
	logger := testutils.NewLogger(t)
	return New(logger, fs, compiler.NewEsbuild(logger), externs, settings)
}

func writeFiles(t *testing.T, fs fsext.Fs, files map[string]string) {
	t.Helper()
	for path, code := range files {
		require.NoError(t, fsext.WriteFile(fs, path, []byte(code), 0o644))
	}
}

func readFile(t *testing.T, fs fsext.Fs, path string) string {
	t.Helper()
	data, err := fsext.ReadFile(fs, path)
	require.NoError(t, err)
	return string(data)
}

func TestCompileMerged(t *testing.T) {
	t.Parallel()

	fs := fsext.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		"/js/a.js": "var greeting = 'hello';\n",
		"/js/b.js": "function shout(text) {\n  return text.toUpperCase();\n}\nconsole.log(shout(greeting));\n",
	})
	m := newTestMinifier(t, fs, Settings{SourceRoot: "/js", OutputRoot: "/out"})

	files := []fileset.FileSpec{{Path: "/js/a.js"}, {Path: "/js/b.js"}}
	require.NoError(t, m.CompileMerged(context.Background(), files, "/out/dist/all.min.js"))

	out := readFile(t, fs, "/out/dist/all.min.js")
	assert.Less(t, strings.Index(out, "greeting"), strings.Index(out, "function shout"))
	require.NoError(t, compiler.Verify("all.min.js", out))

	artifacts := m.Artifacts()
	require.Len(t, artifacts, 1)
	assert.Equal(t, []string{"/js/a.js", "/js/b.js"}, artifacts[0].Sources)
	assert.Equal(t, len(out), artifacts[0].OutputBytes)
	assert.Zero(t, artifacts[0].Warnings)
}

func TestCompilePerFile(t *testing.T) {
	t.Parallel()

	sources := map[string]string{
		"/js/app.js":      "function start(options) {\n  var merged = options || {};\n  return merged;\n}\nstart();\n",
		"/js/lib/util.js": "var util = { twice: function (value) { return value * 2; } };\n",
	}
	files := []fileset.FileSpec{{Path: "/js/app.js"}, {Path: "/js/lib/util.js"}}

	run := func() map[string]string {
		fs := fsext.NewMemMapFs()
		writeFiles(t, fs, sources)
		m := newTestMinifier(t, fs, Settings{SourceRoot: "/js", OutputRoot: "/out"})
		require.NoError(t, m.CompilePerFile(context.Background(), files))
		require.Len(t, m.Artifacts(), len(files))
		return map[string]string{
			"/out/app.min.js":      readFile(t, fs, "/out/app.min.js"),
			"/out/lib/util.min.js": readFile(t, fs, "/out/lib/util.min.js"),
		}
	}

	first, second := run(), run()
	assert.Equal(t, first, second)
	assert.Contains(t, first["/out/app.min.js"], "function start(")
	assert.Contains(t, first["/out/lib/util.min.js"], "var util=")
}

func TestCompilePerFileStopsAtFirstFailure(t *testing.T) {
	t.Parallel()

	fs := fsext.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		"/js/a.js": "var a = 1;\n",
		"/js/b.js": "var b = ;\n",
		"/js/c.js": "var c = 3;\n",
	})
	m := newTestMinifier(t, fs, Settings{SourceRoot: "/js", OutputRoot: "/out"})
	err := m.CompilePerFile(context.Background(),
		[]fileset.FileSpec{{Path: "/js/a.js"}, {Path: "/js/b.js"}, {Path: "/js/c.js"}})
	require.Error(t, err)

	var cErr *CompilationError
	require.True(t, errors.As(err, &cErr))
	assert.Equal(t, "/out/b.min.js", cErr.Destination)

	exists := func(path string) bool {
		ok, err := fsext.Exists(fs, path)
		require.NoError(t, err)
		return ok
	}
	assert.True(t, exists("/out/a.min.js"))
	assert.False(t, exists("/out/b.min.js"))
	assert.False(t, exists("/out/c.min.js"))
}

func TestCompileCanceled(t *testing.T) {
	t.Parallel()

	fs := fsext.NewMemMapFs()
	writeFiles(t, fs, map[string]string{"/js/a.js": "var a = 1;\n"})
	m := newTestMinifier(t, fs, Settings{SourceRoot: "/js", OutputRoot: "/out"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	files := []fileset.FileSpec{{Path: "/js/a.js"}}
	assert.ErrorIs(t, m.CompilePerFile(ctx, files), context.Canceled)
	assert.ErrorIs(t, m.CompileMerged(ctx, files, "/out/all.min.js"), context.Canceled)
	assert.Empty(t, m.Artifacts())
}

func TestCompileMissingInput(t *testing.T) {
	t.Parallel()

	m := newTestMinifier(t, fsext.NewMemMapFs(), Settings{SourceRoot: "/js", OutputRoot: "/out"})
	err := m.CompileMerged(context.Background(), []fileset.FileSpec{{Path: "/js/gone.js"}}, "/out/all.min.js")
	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "read", ioErr.Op)
	assert.Equal(t, "/js/gone.js", ioErr.Path)
}

func TestCompileSiblings(t *testing.T) {
	t.Parallel()

	fs := fsext.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		"/project/js/app.js": "var message = 'hello';\n\nconsole.log(message);\n",
	})
	m := newTestMinifier(t, fs, Settings{
		SourceRoot: "/project/js",
		OutputRoot: "/project/out",
		SourceMap:  true,
		Compress:   []string{CompressGzip, CompressBrotli},
		Verify:     true,
	})
	require.NoError(t, m.CompilePerFile(context.Background(), []fileset.FileSpec{{Path: "/project/js/app.js"}}))

	out := readFile(t, fs, "/project/out/app.min.js")
	assert.True(t, strings.HasSuffix(out, "//# sourceMappingURL=app.min.js.map\n"), out)

	smap, err := sourcemap.Parse("app.min.js.map", []byte(readFile(t, fs, "/project/out/app.min.js.map")))
	require.NoError(t, err)
	file, _, line, _, ok := smap.Source(1, 0)
	require.True(t, ok)
	assert.Contains(t, file, "js/app.js")
	assert.Equal(t, 1, line)

	gz, err := gzip.NewReader(strings.NewReader(readFile(t, fs, "/project/out/app.min.js.gz")))
	require.NoError(t, err)
	unzipped, err := io.ReadAll(gz)
	require.NoError(t, err)
	assert.Equal(t, out, string(unzipped))

	unbrotlied, err := io.ReadAll(brotli.NewReader(bytes.NewReader([]byte(readFile(t, fs, "/project/out/app.min.js.br")))))
	require.NoError(t, err)
	assert.Equal(t, out, string(unbrotlied))

	artifacts := m.Artifacts()
	require.Len(t, artifacts, 1)
	assert.Equal(t, []string{
		"/project/out/app.min.js.map",
		"/project/out/app.min.js.gz",
		"/project/out/app.min.js.br",
	}, artifacts[0].Siblings)
}
