package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreampie/jsminify/lib/testutils"
)

func TestDefaultExterns(t *testing.T) {
	t.Parallel()

	sources, err := DefaultExterns()
	require.NoError(t, err)
	names := make([]string, 0, len(sources))
	for _, src := range sources {
		names = append(names, src.Name)
		assert.NotEmpty(t, src.Code)
	}
	assert.Equal(t, []string{"browser.js", "es3.js", "es5.js", "es6.js"}, names)

	externs, err := LoadExterns(sources)
	require.NoError(t, err)
	assert.Equal(t, len(sources), externs.Len())
	for _, name := range []string{"undefined", "Math", "JSON", "Promise", "console", "window", "setTimeout"} {
		assert.True(t, externs.Has(name), name)
	}
	assert.False(t, externs.Has("jQuery"))
}

func TestLoadExterns(t *testing.T) {
	t.Parallel()

	t.Run("declarations", func(t *testing.T) {
		t.Parallel()
		externs, err := LoadExterns([]Source{{Name: "custom.js", Code: `
var jQuery, $;
let analytics;
const config = {};
function track(event) {}
class Widget {}
jQuery.fn = {};
`}})
		require.NoError(t, err)
		for _, name := range []string{"jQuery", "$", "analytics", "config", "track", "Widget"} {
			assert.True(t, externs.Has(name), name)
		}
		assert.False(t, externs.Has("fn"))
		assert.False(t, externs.Has("event"))
	})

	t.Run("invalid", func(t *testing.T) {
		t.Parallel()
		_, err := LoadExterns([]Source{{Name: "broken.js", Code: "var = ;"}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "broken.js")
	})

	t.Run("nil", func(t *testing.T) {
		t.Parallel()
		var externs *Externs
		assert.Zero(t, externs.Len())
		assert.False(t, externs.Has("window"))
		assert.Nil(t, externs.Sources())
	})
}

func TestUndeclaredGlobals(t *testing.T) {
	t.Parallel()

	externs, err := LoadExterns([]Source{{Name: "env.js", Code: "var console;"}})
	require.NoError(t, err)

	t.Run("shared scope", func(t *testing.T) {
		t.Parallel()
		diags := undeclaredGlobals(externs, []Source{
			{Name: "lib.js", Code: "function helper() { return 1; }"},
			{Name: "app.js", Code: "console.log(helper(), missing, missing);"},
		})
		require.Len(t, diags, 1)
		assert.Equal(t, "app.js", diags[0].SourceName)
		assert.Contains(t, diags[0].Description, "missing")
	})

	t.Run("unparsable", func(t *testing.T) {
		t.Parallel()
		diags := undeclaredGlobals(externs, []Source{{Name: "odd.js", Code: "var = ;"}})
		require.Len(t, diags, 1)
		assert.Contains(t, diags[0].Description, "analysis skipped")
	})

	t.Run("engine independent", func(t *testing.T) {
		t.Parallel()
		c := NewEsbuild(testutils.NewLogger(t))
		res := c.Compile(externs, []Source{{Name: "a.js", Code: "console.log(1);"}}, DefaultOptions())
		require.True(t, res.Success)
		assert.Empty(t, res.Warnings)
	})
}
