package fileset

import (
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreampie/jsminify/lib/fsext"
	"github.com/dreampie/jsminify/lib/testutils"
)

func newFs(t *testing.T, files ...string) fsext.Fs {
	t.Helper()
	fs := fsext.NewMemMapFs()
	for _, f := range files {
		f = filepath.FromSlash(f)
		require.NoError(t, fs.MkdirAll(filepath.Dir(f), 0o755))
		require.NoError(t, fsext.WriteFile(fs, f, []byte("var x = 1;"), 0o644))
	}
	return fs
}

func paths(files []FileSpec) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = filepath.ToSlash(f.Path)
	}
	return out
}

func p(s string) string {
	return filepath.FromSlash(s)
}

func TestResolve(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		files    []string
		opts     Options
		expected []string
	}{
		{
			name:     "source directory",
			files:    []string{"/src/b.js", "/src/a.js", "/src/sub/c.js", "/other/d.js"},
			opts:     Options{SourceDirectory: p("/src")},
			expected: []string{"/src/a.js", "/src/b.js", "/src/sub/c.js"},
		},
		{
			name:  "includes with directory and exclude",
			files: []string{"/src/a.js", "/src/b.js", "/src/dir/c.js", "/src/dir/d.js"},
			opts: Options{
				SourceDirectory: p("/src"),
				Includes:        []string{p("/src/a.js"), p("/src/b.js"), p("/src/dir")},
				Excludes:        []string{p("/src/b.js")},
			},
			expected: []string{"/src/a.js", "/src/dir/c.js", "/src/dir/d.js"},
		},
		{
			name:  "directory exclude",
			files: []string{"/src/a.js", "/src/sub/b.js"},
			opts: Options{
				SourceDirectory: p("/src"),
				Excludes:        []string{p("/src/sub")},
			},
			expected: []string{"/src/a.js"},
		},
		{
			name:  "absent exclude",
			files: []string{"/src/a.js", "/src/b.js"},
			opts: Options{
				SourceDirectory: p("/src"),
				Excludes:        []string{p("/src/missing.js"), p("/nowhere")},
			},
			expected: []string{"/src/a.js", "/src/b.js"},
		},
		{
			name:  "duplicates are kept",
			files: []string{"/src/a.js", "/src/dir/c.js"},
			opts: Options{
				Includes: []string{p("/src/dir/c.js"), p("/src/a.js"), p("/src/dir")},
			},
			expected: []string{"/src/dir/c.js", "/src/a.js", "/src/dir/c.js"},
		},
		{
			name:  "merge removes the output file",
			files: []string{"/src/a.js", "/src/all.min.js", "/src/b.js"},
			opts: Options{
				SourceDirectory: p("/src"),
				OutputFile:      p("/src/all.min.js"),
				Merge:           true,
			},
			expected: []string{"/src/a.js", "/src/b.js"},
		},
		{
			name:  "merge removes the output file with excludes",
			files: []string{"/src/a.js", "/src/all.min.js", "/src/b.js"},
			opts: Options{
				SourceDirectory: p("/src"),
				Excludes:        []string{p("/src/b.js")},
				OutputFile:      p("/src/all.min.js"),
				Merge:           true,
			},
			expected: []string{"/src/a.js"},
		},
		{
			name:  "per-file skips previous outputs",
			files: []string{"/src/a.js", "/src/out/a.min.js", "/src/vendor.min.js"},
			opts: Options{
				SourceDirectory: p("/src"),
				OutputDirectory: p("/src/out"),
				OutputFile:      p("/src/a.js"),
			},
			expected: []string{"/src/a.js", "/src/vendor.min.js"},
		},
		{
			name:  "fileset",
			files: []string{"/web/app.js", "/web/app.css", "/web/lib/util.js", "/web/vendor/jquery.js", "/web/legacy.js"},
			opts: Options{
				SourceDirectory: p("/src"),
				FileSet: FileSet{
					Directory: p("/web"),
					Includes:  []string{"*.js"},
					Excludes:  []string{"vendor/", "legacy.js"},
				},
			},
			expected: []string{"/web/app.js", "/web/lib/util.js"},
		},
		{
			name:  "fileset without includes",
			files: []string{"/web/app.js", "/web/app.css"},
			opts: Options{
				FileSet: FileSet{Directory: p("/web")},
			},
			expected: []string{"/web/app.css", "/web/app.js"},
		},
		{
			name:     "empty",
			files:    []string{"/src/.keep/x.js"},
			opts:     Options{SourceDirectory: p("/src"), Excludes: []string{p("/src/.keep")}},
			expected: []string{},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			fs := newFs(t, tc.files...)
			files, err := Resolve(fs, testutils.NewLogger(t), tc.opts)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, paths(files))
			for _, f := range files {
				assert.False(t, f.IsDir)
			}
		})
	}
}

func TestResolveErrors(t *testing.T) {
	t.Parallel()

	t.Run("missing include", func(t *testing.T) {
		t.Parallel()
		fs := newFs(t, "/src/a.js")
		_, err := Resolve(fs, testutils.NewLogger(t), Options{Includes: []string{p("/src/missing.js")}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing.js")
	})

	t.Run("missing source directory", func(t *testing.T) {
		t.Parallel()
		fs := newFs(t, "/src/a.js")
		_, err := Resolve(fs, testutils.NewLogger(t), Options{SourceDirectory: p("/nope")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "nope")
	})

	t.Run("no source directory", func(t *testing.T) {
		t.Parallel()
		_, err := Resolve(newFs(t), testutils.NewLogger(t), Options{})
		require.Error(t, err)
	})
}

func TestResolveLogsIgnoredExcludes(t *testing.T) {
	t.Parallel()

	logger, hook := testutils.NewLoggerWithHook(t)
	fs := newFs(t, "/src/a.js")
	files, err := Resolve(fs, logger, Options{SourceDirectory: p("/src"), Excludes: []string{p("/src/gone.js")}})
	require.NoError(t, err)
	assert.Len(t, files, 1)
	assert.True(t, testutils.LogContains(hook.Drain(), logrus.DebugLevel, "doesn't exist"))
}

func TestSummary(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", Summary(nil))
	assert.Equal(t, "/a.js, /b/c.js", Summary([]FileSpec{{Path: "/a.js"}, {Path: "/b/c.js"}}))
}
