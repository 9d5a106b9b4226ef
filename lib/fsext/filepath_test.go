package fsext

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAbs(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		root, path, expected string
	}{
		{"/project", "src/main/javascript", "/project/src/main/javascript"},
		{"/project", "/elsewhere/app.js", "/elsewhere/app.js"},
		{"/project", "../sibling/./lib", "/sibling/lib"},
		{"/project", "", ""},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.path, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, filepath.FromSlash(tc.expected),
				Abs(filepath.FromSlash(tc.root), filepath.FromSlash(tc.path)))
		})
	}
}

func TestRelativeTo(t *testing.T) {
	t.Parallel()

	rel, ok := RelativeTo(filepath.FromSlash("/js"), filepath.FromSlash("/js/sub/app.js"))
	assert.True(t, ok)
	assert.Equal(t, filepath.FromSlash("sub/app.js"), rel)

	rel, ok = RelativeTo(filepath.FromSlash("/js/"), filepath.FromSlash("/js"))
	assert.True(t, ok)
	assert.Equal(t, ".", rel)

	rel, ok = RelativeTo(filepath.FromSlash("/js"), filepath.FromSlash("/jsx/app.js"))
	assert.False(t, ok)
	assert.Equal(t, filepath.FromSlash("jsx/app.js"), rel)

	rel, ok = RelativeTo(filepath.FromSlash("/js"), filepath.FromSlash("/other/../lib/x.js"))
	assert.False(t, ok)
	assert.Equal(t, filepath.FromSlash("lib/x.js"), rel)
}
