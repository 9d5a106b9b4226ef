/*
 *
 * jsminify - JavaScript minification for build pipelines
 * Copyright (C) 2024 Dreampie
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU Affero General Public License as
 * published by the Free Software Foundation, either version 3 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU Affero General Public License for more details.
 *
 * You should have received a copy of the GNU Affero General Public License
 * along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 */

package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/guregu/null.v3"

	"github.com/dreampie/jsminify/lib/fileset"
)

type testCmdData struct {
	Name  string
	Tests []testCmdTest
}

type testCmdTest struct {
	Args     []string
	Expected []string
	Name     string
}

func TestConfigCmd(t *testing.T) {
	t.Parallel()
	testdata := []testCmdData{
		{
			Name: "Include",

			Tests: []testCmdTest{
				{
					Name:     "NoArgs",
					Args:     []string{""},
					Expected: nil,
				},
				{
					Name:     "SingleArg",
					Args:     []string{"--include", "a.js"},
					Expected: []string{"a.js"},
				},
				{
					Name:     "MultiArg",
					Args:     []string{"--include", "a.js", "--include", "lib,vendor"},
					Expected: []string{"a.js", "lib,vendor"},
				},
			},
		},
	}

	for _, data := range testdata {
		data := data
		t.Run(data.Name, func(t *testing.T) {
			t.Parallel()
			for _, test := range data.Tests {
				t.Run(`"`+test.Name+`"`, func(t *testing.T) {
					fs := configFlagSet()
					require.NoError(t, fs.Parse(test.Args))

					config := getConfig(fs)
					assert.Equal(t, test.Expected, config.IncludeFiles)
				})
			}
		})
	}
}

func TestConfigFlags(t *testing.T) {
	t.Parallel()

	fs := configFlagSet()
	require.NoError(t, fs.Parse([]string{
		"--merge", "--engine", "tdewolff", "--fileset-directory", "web",
		"--fileset-include", "**/*.js", "--compress", "gzip", "--compress", "br",
	}))
	config := getConfig(fs)

	assert.Equal(t, null.BoolFrom(true), config.Merge)
	assert.Equal(t, null.StringFrom("tdewolff"), config.Engine)
	assert.Equal(t, []string{"gzip", "br"}, config.Compress)
	assert.Equal(t, &fileset.FileSet{Directory: "web", Includes: []string{"**/*.js"}}, config.SourceFiles)
	assert.False(t, config.Skip.Valid)
	assert.False(t, config.OutputFile.Valid)
}

func TestConfigEnv(t *testing.T) {
	t.Parallel()
	testdata := map[struct{ Name, Key string }]map[string]func(Config){
		{"Merge", "JSMINIFY_MERGE"}: {
			"true":  func(c Config) { assert.Equal(t, null.BoolFrom(true), c.Merge) },
			"false": func(c Config) { assert.Equal(t, null.BoolFrom(false), c.Merge) },
		},
		{"Engine", "JSMINIFY_ENGINE"}: {
			"":         func(c Config) { assert.Equal(t, null.String{}, c.Engine) },
			"tdewolff": func(c Config) { assert.Equal(t, null.StringFrom("tdewolff"), c.Engine) },
		},
		{"ExcludeFiles", "JSMINIFY_EXCLUDE_FILES"}: {
			"a.js":      func(c Config) { assert.Equal(t, []string{"a.js"}, c.ExcludeFiles) },
			"a.js,b.js": func(c Config) { assert.Equal(t, []string{"a.js", "b.js"}, c.ExcludeFiles) },
		},
	}
	for field, data := range testdata {
		field, data := field, data
		t.Run(field.Name, func(t *testing.T) {
			t.Parallel()
			for value, fn := range data {
				value, fn := value, fn
				t.Run(`"`+value+`"`, func(t *testing.T) {
					t.Parallel()
					config, err := readEnvConfig(map[string]string{field.Key: value})
					require.NoError(t, err)
					fn(config)
				})
			}
		})
	}

	t.Run("Unset", func(t *testing.T) {
		t.Parallel()
		config, err := readEnvConfig(map[string]string{"JSMINIFY_UNRELATED": "1"})
		require.NoError(t, err)
		assert.Equal(t, Config{}, config)
	})

	t.Run("Invalid", func(t *testing.T) {
		t.Parallel()
		_, err := readEnvConfig(map[string]string{"JSMINIFY_VERIFY": "maybe"})
		assert.Error(t, err)
	})
}

func TestConfigApply(t *testing.T) {
	t.Parallel()
	t.Run("Merge", func(t *testing.T) {
		t.Parallel()
		conf := Config{Merge: null.BoolFrom(true)}.Apply(Config{Merge: null.BoolFrom(false)})
		assert.Equal(t, null.BoolFrom(false), conf.Merge)
	})
	t.Run("KeepsUnset", func(t *testing.T) {
		t.Parallel()
		conf := Config{Engine: null.StringFrom("tdewolff")}.Apply(Config{Verify: null.BoolFrom(true)})
		assert.Equal(t, null.StringFrom("tdewolff"), conf.Engine)
		assert.Equal(t, null.BoolFrom(true), conf.Verify)
	})
	t.Run("Slices", func(t *testing.T) {
		t.Parallel()
		conf := Config{}.Apply(Config{Externs: []string{"a.js"}})
		assert.Equal(t, []string{"a.js"}, conf.Externs)

		conf = conf.Apply(Config{Externs: []string{}})
		assert.Equal(t, []string{}, conf.Externs)

		conf = conf.Apply(Config{})
		assert.Equal(t, []string{}, conf.Externs)
	})
}

func TestYAMLToJSON(t *testing.T) {
	t.Parallel()

	data, err := yamlToJSON([]byte("merge: true\nsourceFiles:\n  directory: web\n  includes: ['*.js']\n"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"merge": true, "sourceFiles": {"directory": "web", "includes": ["*.js"]}}`, string(data))

	data, err = yamlToJSON(nil)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))

	_, err = yamlToJSON([]byte("merge: [true"))
	assert.Error(t, err)
}

func TestPluginConfig(t *testing.T) {
	t.Parallel()

	project := filepath.FromSlash("/work/shop")
	conf := defaultConfig(project).Apply(Config{
		IncludeFiles: []string{"a.js", filepath.FromSlash("/abs/b.js")},
		SourceFiles:  &fileset.FileSet{Directory: "web", Includes: []string{"*.js"}},
		Externs:      []string{"externs.js"},
	}).pluginConfig(project)

	assert.Equal(t, filepath.Join(project, "src", "main", "javascript"), conf.SourceDirectory)
	assert.Equal(t, filepath.Join(project, "src", "main", "webapp", "javascript"), conf.OutputDirectory)
	assert.Equal(t, filepath.Join(conf.OutputDirectory, "shop-1.0.0.min.js"), conf.OutputFile)
	assert.Equal(t, []string{filepath.Join(project, "a.js"), filepath.FromSlash("/abs/b.js")}, conf.IncludeFiles)
	assert.Equal(t, filepath.Join(project, "web"), conf.SourceFiles.Directory)
	assert.Equal(t, []string{"*.js"}, conf.SourceFiles.Includes)
	assert.Equal(t, []string{filepath.Join(project, "externs.js")}, conf.Externs)
	assert.Equal(t, "esbuild", conf.Engine)
	assert.Empty(t, conf.SummaryExport)
	assert.Nil(t, conf.ExcludeFiles)

	explicit := defaultConfig(project).Apply(Config{OutputFile: null.StringFrom("dist/app.min.js")}).pluginConfig(project)
	assert.Equal(t, filepath.Join(project, "dist", "app.min.js"), explicit.OutputFile)
}

func TestDisplayPath(t *testing.T) {
	t.Parallel()

	cwd := filepath.FromSlash("/work/shop")
	assert.Equal(t, filepath.FromSlash("dist/app.min.js"), displayPath(cwd, filepath.FromSlash("/work/shop/dist/app.min.js")))
	assert.Equal(t, filepath.FromSlash("/other/app.min.js"), displayPath(cwd, filepath.FromSlash("/other/app.min.js")))
	assert.Equal(t, filepath.FromSlash("/work/app.min.js"), displayPath("", filepath.FromSlash("/work/app.min.js")))
}
