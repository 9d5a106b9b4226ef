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
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mstoykov/envconfig"
	"github.com/spf13/pflag"
	"gopkg.in/guregu/null.v3"
	"gopkg.in/yaml.v3"

	"github.com/dreampie/jsminify/cmd/state"
	"github.com/dreampie/jsminify/errext"
	"github.com/dreampie/jsminify/errext/exitcodes"
	"github.com/dreampie/jsminify/js/compiler"
	"github.com/dreampie/jsminify/lib/fileset"
	"github.com/dreampie/jsminify/lib/fsext"
	"github.com/dreampie/jsminify/minifier"
)

const defaultProjectVersion = "1.0.0"

//nolint:gochecknoglobals
var defaultConfigFileNames = []string{"jsminify.json", "jsminify.yaml", "jsminify.yml"}

// Config is the user facing configuration. Every field is optional, so the
// defaults, the config file, the environment and the CLI flags can be
// layered on top of each other with Apply.
type Config struct {
	ProjectName     null.String      `json:"projectName" envconfig:"JSMINIFY_PROJECT_NAME"`
	ProjectVersion  null.String      `json:"projectVersion" envconfig:"JSMINIFY_PROJECT_VERSION"`
	SourceDirectory null.String      `json:"sourceDirectory" envconfig:"JSMINIFY_SOURCE_DIRECTORY"`
	IncludeFiles    []string         `json:"includeFiles" envconfig:"JSMINIFY_INCLUDE_FILES"`
	SourceFiles     *fileset.FileSet `json:"sourceFiles" ignored:"true"`
	ExcludeFiles    []string         `json:"excludeFiles" envconfig:"JSMINIFY_EXCLUDE_FILES"`
	OutputFile      null.String      `json:"outputFile" envconfig:"JSMINIFY_OUTPUT_FILE"`
	OutputDirectory null.String      `json:"outputDirectory" envconfig:"JSMINIFY_OUTPUT_DIRECTORY"`
	Merge           null.Bool        `json:"merge" envconfig:"JSMINIFY_MERGE"`
	Skip            null.Bool        `json:"skip" envconfig:"JSMINIFY_SKIP"`

	Engine        null.String `json:"engine" envconfig:"JSMINIFY_ENGINE"`
	Externs       []string    `json:"externs" envconfig:"JSMINIFY_EXTERNS"`
	SourceMap     null.Bool   `json:"sourceMap" envconfig:"JSMINIFY_SOURCE_MAP"`
	Compress      []string    `json:"compress" envconfig:"JSMINIFY_COMPRESS"`
	Verify        null.Bool   `json:"verify" envconfig:"JSMINIFY_VERIFY"`
	SummaryExport null.String `json:"summaryExport" envconfig:"JSMINIFY_SUMMARY_EXPORT"`
}

// Apply the provided config on top of the current one, returning a new one. The provided config has priority.
func (c Config) Apply(cfg Config) Config {
	if cfg.ProjectName.Valid {
		c.ProjectName = cfg.ProjectName
	}
	if cfg.ProjectVersion.Valid {
		c.ProjectVersion = cfg.ProjectVersion
	}
	if cfg.SourceDirectory.Valid {
		c.SourceDirectory = cfg.SourceDirectory
	}
	if cfg.IncludeFiles != nil {
		c.IncludeFiles = cfg.IncludeFiles
	}
	if cfg.SourceFiles != nil {
		c.SourceFiles = cfg.SourceFiles
	}
	if cfg.ExcludeFiles != nil {
		c.ExcludeFiles = cfg.ExcludeFiles
	}
	if cfg.OutputFile.Valid {
		c.OutputFile = cfg.OutputFile
	}
	if cfg.OutputDirectory.Valid {
		c.OutputDirectory = cfg.OutputDirectory
	}
	if cfg.Merge.Valid {
		c.Merge = cfg.Merge
	}
	if cfg.Skip.Valid {
		c.Skip = cfg.Skip
	}
	if cfg.Engine.Valid {
		c.Engine = cfg.Engine
	}
	if cfg.Externs != nil {
		c.Externs = cfg.Externs
	}
	if cfg.SourceMap.Valid {
		c.SourceMap = cfg.SourceMap
	}
	if cfg.Compress != nil {
		c.Compress = cfg.Compress
	}
	if cfg.Verify.Valid {
		c.Verify = cfg.Verify
	}
	if cfg.SummaryExport.Valid {
		c.SummaryExport = cfg.SummaryExport
	}
	return c
}

func configFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("", 0)
	flags.SortFlags = false
	flags.String("project-dir", "", "project directory, relative paths are resolved against it (default: working directory)")
	flags.String("project-name", "", "project name used for the merged output file (default: project directory name)")
	flags.String("project-version", "", "project version used for the merged output file (default \""+defaultProjectVersion+"\")")
	flags.String("source-directory", "", "directory with the JavaScript sources (default \"src/main/javascript\")")
	flags.StringArray("include", nil, "file or directory to minify instead of the source directory, can be repeated")
	flags.String("fileset-directory", "", "directory of a source fileset, used instead of the source directory")
	flags.StringArray("fileset-include", nil, "gitignore style pattern selecting fileset files, can be repeated")
	flags.StringArray("fileset-exclude", nil, "gitignore style pattern dropping fileset files, can be repeated")
	flags.StringArray("exclude", nil, "file or directory to leave out, can be repeated")
	flags.String("output-file", "", "merged output file (default \"<output-directory>/<name>-<version>.min.js\")")
	flags.String("output-directory", "", "output directory of per-file minification (default \"src/main/webapp/javascript\")")
	flags.Bool("merge", false, "merge all the files into the output file")
	flags.Bool("skip", false, "skip the minification")
	flags.String("engine", compiler.EngineEsbuild, "compiler engine, one of "+strings.Join(compiler.Engines(), ", "))
	flags.StringArray("extern", nil, "additional extern declarations file, can be repeated")
	flags.Bool("source-map", false, "write source maps next to per-file outputs")
	flags.StringArray("compress", nil, "write precompressed copies, gzip or br, can be repeated")
	flags.Bool("verify", false, "check that every output compiles before writing it")
	flags.String("summary-export", "", "output the run summary to a JSON file")
	return flags
}

func getConfig(flags *pflag.FlagSet) Config {
	cfg := Config{
		ProjectName:     getNullString(flags, "project-name"),
		ProjectVersion:  getNullString(flags, "project-version"),
		SourceDirectory: getNullString(flags, "source-directory"),
		IncludeFiles:    getChangedStrings(flags, "include"),
		ExcludeFiles:    getChangedStrings(flags, "exclude"),
		OutputFile:      getNullString(flags, "output-file"),
		OutputDirectory: getNullString(flags, "output-directory"),
		Merge:           getNullBool(flags, "merge"),
		Skip:            getNullBool(flags, "skip"),
		Engine:          getNullString(flags, "engine"),
		Externs:         getChangedStrings(flags, "extern"),
		SourceMap:       getNullBool(flags, "source-map"),
		Compress:        getChangedStrings(flags, "compress"),
		Verify:          getNullBool(flags, "verify"),
		SummaryExport:   getNullString(flags, "summary-export"),
	}
	if flags.Changed("fileset-directory") || flags.Changed("fileset-include") || flags.Changed("fileset-exclude") {
		dir := getNullString(flags, "fileset-directory")
		cfg.SourceFiles = &fileset.FileSet{
			Directory: dir.String,
			Includes:  getChangedStrings(flags, "fileset-include"),
			Excludes:  getChangedStrings(flags, "fileset-exclude"),
		}
	}
	return cfg
}

// defaultConfig returns the values used when nothing else is configured.
func defaultConfig(projectDir string) Config {
	return Config{
		ProjectName:     null.NewString(filepath.Base(projectDir), false),
		ProjectVersion:  null.NewString(defaultProjectVersion, false),
		SourceDirectory: null.NewString(filepath.Join("src", "main", "javascript"), false),
		OutputDirectory: null.NewString(filepath.Join("src", "main", "webapp", "javascript"), false),
		Merge:           null.NewBool(false, false),
		Skip:            null.NewBool(false, false),
		Engine:          null.NewString(compiler.EngineEsbuild, false),
		SourceMap:       null.NewBool(false, false),
		Verify:          null.NewBool(false, false),
	}
}

// readDiskConfig reads the explicitly configured config file, or the
// default one in the project directory if there is one.
func readDiskConfig(gs *state.GlobalState, projectDir string) (Config, string, error) {
	path := gs.Flags.ConfigFilePath
	if path != "" {
		cwd, err := gs.Getwd()
		if err != nil {
			return Config{}, "", err
		}
		path = fsext.Abs(cwd, path)
	} else {
		for _, name := range defaultConfigFileNames {
			candidate := filepath.Join(projectDir, name)
			if exists, _ := fsext.Exists(gs.FS, candidate); exists {
				path = candidate
				break
			}
		}
		if path == "" {
			return Config{}, "", nil
		}
	}

	data, err := fsext.ReadFile(gs.FS, path)
	if err != nil {
		return Config{}, path, fmt.Errorf("couldn't read the config file %s: %w", path, err)
	}
	if ext := filepath.Ext(path); ext == ".yaml" || ext == ".yml" {
		if data, err = yamlToJSON(data); err != nil {
			return Config{}, path, fmt.Errorf("couldn't parse the config file %s: %w", path, err)
		}
	}

	var conf Config
	if err := json.Unmarshal(data, &conf); err != nil {
		return Config{}, path, fmt.Errorf("couldn't parse the config file %s: %w", path, err)
	}
	return conf, path, nil
}

func yamlToJSON(data []byte) ([]byte, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(raw)
}

// readEnvConfig reads the configuration from the environment variables.
func readEnvConfig(env map[string]string) (Config, error) {
	var conf Config
	err := envconfig.Process("", &conf, func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	})
	return conf, err
}

// getConsolidatedConfig assembles the final plugin configuration. Sources
// with higher priority override the ones before them:
//   - defaults
//   - the config file
//   - the environment variables
//   - the CLI flags
func getConsolidatedConfig(gs *state.GlobalState, flags *pflag.FlagSet) (minifier.Config, error) {
	projectDir, err := getProjectDir(gs, flags)
	if err != nil {
		return minifier.Config{}, err
	}

	fileConf, path, err := readDiskConfig(gs, projectDir)
	if err != nil {
		return minifier.Config{}, errext.WithHint(errext.WithExitCodeIfNone(err, exitcodes.InvalidConfig),
			"the config file can be JSON or YAML and is set with --config or "+envConfigKey)
	}
	if path != "" {
		gs.Logger.WithField("path", path).Debug("Loaded the config file")
	}

	envConf, err := readEnvConfig(gs.Env)
	if err != nil {
		return minifier.Config{}, errext.WithExitCodeIfNone(
			fmt.Errorf("couldn't read the environment: %w", err), exitcodes.InvalidConfig)
	}

	conf := defaultConfig(projectDir).Apply(fileConf).Apply(envConf).Apply(getConfig(flags))
	return conf.pluginConfig(projectDir), nil
}

const envConfigKey = "JSMINIFY_CONFIG"

func getProjectDir(gs *state.GlobalState, flags *pflag.FlagSet) (string, error) {
	cwd, err := gs.Getwd()
	if err != nil {
		return "", fmt.Errorf("couldn't get the working directory: %w", err)
	}
	projectDir := fsext.Abs(cwd, getNullString(flags, "project-dir").String)
	if projectDir == "" {
		projectDir = filepath.Clean(cwd)
	}
	isDir, err := fsext.IsDir(gs.FS, projectDir)
	if err != nil || !isDir {
		return "", errext.WithExitCodeIfNone(
			errors.New("the project directory "+projectDir+" doesn't exist"), exitcodes.InvalidConfig)
	}
	return projectDir, nil
}

// pluginConfig turns the consolidated values into the plugin configuration,
// resolving every path against the project directory.
func (c Config) pluginConfig(projectDir string) minifier.Config {
	abs := func(path string) string {
		return fsext.Abs(projectDir, path)
	}
	absAll := func(paths []string) []string {
		if len(paths) == 0 {
			return nil
		}
		out := make([]string, len(paths))
		for i, p := range paths {
			out[i] = abs(p)
		}
		return out
	}

	outputDirectory := abs(c.OutputDirectory.String)
	outputFile := abs(c.OutputFile.String)
	if outputFile == "" {
		outputFile = filepath.Join(outputDirectory,
			fmt.Sprintf("%s-%s%s", c.ProjectName.String, c.ProjectVersion.String, fileset.MinSuffix))
	}

	conf := minifier.Config{
		SourceDirectory: abs(c.SourceDirectory.String),
		IncludeFiles:    absAll(c.IncludeFiles),
		ExcludeFiles:    absAll(c.ExcludeFiles),
		OutputFile:      outputFile,
		OutputDirectory: outputDirectory,
		Merge:           c.Merge.Bool,
		Skip:            c.Skip.Bool,
		Engine:          c.Engine.String,
		Externs:         absAll(c.Externs),
		SourceMap:       c.SourceMap.Bool,
		Compress:        c.Compress,
		Verify:          c.Verify.Bool,
		SummaryExport:   abs(c.SummaryExport.String),
	}
	if c.SourceFiles != nil {
		conf.SourceFiles = fileset.FileSet{
			Directory: abs(c.SourceFiles.Directory),
			Includes:  c.SourceFiles.Includes,
			Excludes:  c.SourceFiles.Excludes,
		}
	}
	return conf
}
