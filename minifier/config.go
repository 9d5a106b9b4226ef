package minifier

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dreampie/jsminify/js/compiler"
	"github.com/dreampie/jsminify/lib/fileset"
)

// Supported precompression formats.
const (
	CompressGzip   = "gzip"
	CompressBrotli = "br"
)

// Config is the fully consolidated, read-only configuration of one run. All
// paths are absolute.
type Config struct {
	SourceDirectory string          `json:"sourceDirectory" yaml:"sourceDirectory"`
	IncludeFiles    []string        `json:"includeFiles,omitempty" yaml:"includeFiles,omitempty"`
	SourceFiles     fileset.FileSet `json:"sourceFiles,omitempty" yaml:"sourceFiles,omitempty"`
	ExcludeFiles    []string        `json:"excludeFiles,omitempty" yaml:"excludeFiles,omitempty"`
	OutputFile      string          `json:"outputFile" yaml:"outputFile"`
	OutputDirectory string          `json:"outputDirectory" yaml:"outputDirectory"`
	Merge           bool            `json:"merge" yaml:"merge"`
	Skip            bool            `json:"skip" yaml:"skip"`

	Engine        string   `json:"engine" yaml:"engine"`
	Externs       []string `json:"externs,omitempty" yaml:"externs,omitempty"`
	SourceMap     bool     `json:"sourceMap" yaml:"sourceMap"`
	Compress      []string `json:"compress,omitempty" yaml:"compress,omitempty"`
	Verify        bool     `json:"verify" yaml:"verify"`
	SummaryExport string   `json:"summaryExport,omitempty" yaml:"summaryExport,omitempty"`
}

// Validate checks the parts of the configuration that don't need the file
// system.
func (c Config) Validate() error {
	var errs []error
	if !slices.Contains(compiler.Engines(), c.Engine) {
		errs = append(errs, fmt.Errorf("unknown engine %q, supported engines are %s",
			c.Engine, strings.Join(compiler.Engines(), ", ")))
	}
	for _, format := range c.Compress {
		if format != CompressGzip && format != CompressBrotli {
			errs = append(errs, fmt.Errorf("unknown compression %q, supported values are %s and %s",
				format, CompressGzip, CompressBrotli))
		}
	}
	if c.Merge && c.OutputFile == "" {
		errs = append(errs, errors.New("an output file is required in merge mode"))
	}
	if !c.Merge && c.OutputDirectory == "" {
		errs = append(errs, errors.New("an output directory is required when files aren't merged"))
	}
	if len(c.IncludeFiles) == 0 && c.SourceFiles.IsZero() && c.SourceDirectory == "" {
		errs = append(errs, errors.New("one of a source directory, include files or a source fileset is required"))
	}
	if len(c.SourceFiles.Includes)+len(c.SourceFiles.Excludes) > 0 && c.SourceFiles.IsZero() {
		errs = append(errs, errors.New("the source fileset patterns need a fileset directory"))
	}
	return errors.Join(errs...)
}

// Mode returns the human readable compilation mode.
func (c Config) Mode() string {
	if c.Merge {
		return "merge"
	}
	return "per-file"
}

// SourceRoot is the directory relative output paths are computed from.
func (c Config) SourceRoot() string {
	if !c.SourceFiles.IsZero() {
		return c.SourceFiles.Directory
	}
	return c.SourceDirectory
}

func (c Config) resolverOptions() fileset.Options {
	return fileset.Options{
		SourceDirectory: c.SourceDirectory,
		Includes:        c.IncludeFiles,
		FileSet:         c.SourceFiles,
		Excludes:        c.ExcludeFiles,
		OutputFile:      c.OutputFile,
		OutputDirectory: c.OutputDirectory,
		Merge:           c.Merge,
	}
}

func (c Config) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "mode=%s engine=%s", c.Mode(), c.Engine)
	if c.Merge {
		fmt.Fprintf(&b, " output=%s", c.OutputFile)
	} else {
		fmt.Fprintf(&b, " output=%s", c.OutputDirectory)
	}
	return b.String()
}
