package minifier

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/dreampie/jsminify/errext"
	"github.com/dreampie/jsminify/js/compiler"
	"github.com/dreampie/jsminify/lib/fileset"
	"github.com/dreampie/jsminify/lib/fsext"
)

// State is a step of a Plugin run.
type State uint8

// Plugin states, in the order a successful run goes through them.
const (
	Idle State = iota
	ConfigLoaded
	FilesResolved
	Compiling
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case ConfigLoaded:
		return "config-loaded"
	case FilesResolved:
		return "files-resolved"
	case Compiling:
		return "compiling"
	case Done:
		return "done"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Plugin is the entry point of a run: it loads a Config, resolves the input
// files and dispatches them to a Minifier.
type Plugin struct {
	logger logrus.FieldLogger
	fs     fsext.Fs
	state  State

	cfg       Config
	compiler  compiler.Compiler
	externs   *compiler.Externs
	files     []fileset.FileSpec
	artifacts []Artifact

	newCompiler func(engine string, logger logrus.FieldLogger) (compiler.Compiler, error)
}

// NewPlugin returns an idle plugin.
func NewPlugin(logger logrus.FieldLogger, fs fsext.Fs) *Plugin {
	return &Plugin{
		logger:      logger,
		fs:          fs,
		newCompiler: compiler.New,
	}
}

// State returns the current state.
func (p *Plugin) State() State {
	return p.state
}

// Files returns the resolved inputs.
func (p *Plugin) Files() []fileset.FileSpec {
	return p.files
}

// Artifacts returns the written outputs.
func (p *Plugin) Artifacts() []Artifact {
	return p.artifacts
}

// Load validates cfg and prepares the compiler and the externs. A skipped
// configuration is stored without any further checks.
func (p *Plugin) Load(cfg Config) error {
	if p.state != Idle {
		return fmt.Errorf("can't load a configuration in the %s state", p.state)
	}
	p.cfg = cfg
	if cfg.Skip {
		p.state = ConfigLoaded
		return nil
	}
	if err := p.prepare(); err != nil {
		p.state = Failed
		return err
	}
	p.state = ConfigLoaded
	return nil
}

func (p *Plugin) prepare() error {
	if err := p.cfg.Validate(); err != nil {
		return &ConfigError{Err: err}
	}
	if err := compiler.DefaultOptions().Validate(); err != nil {
		return &ConfigError{Err: err}
	}

	c, err := p.newCompiler(p.cfg.Engine, p.logger)
	if err != nil {
		return &ConfigError{Err: err}
	}
	p.compiler = c

	sources, err := compiler.DefaultExterns()
	if err != nil {
		return &ConfigError{Err: err}
	}
	for _, path := range p.cfg.Externs {
		data, err := fsext.ReadFile(p.fs, path)
		if err != nil {
			return errext.WithHint(&ConfigError{Err: fmt.Errorf("couldn't read extern %s: %w", path, err)},
				"extern files are resolved against the project directory")
		}
		sources = append(sources, compiler.Source{Name: filepath.Base(path), Code: string(data)})
	}
	if p.externs, err = compiler.LoadExterns(sources); err != nil {
		return &ConfigError{Err: err}
	}
	return nil
}

// Execute resolves the files and compiles them. It must be called after a
// successful Load.
func (p *Plugin) Execute(ctx context.Context) error {
	if p.state != ConfigLoaded {
		return fmt.Errorf("can't execute in the %s state", p.state)
	}
	if p.cfg.Skip {
		p.logger.Info("Skipping minification")
		p.state = Done
		return nil
	}

	if err := p.run(ctx); err != nil {
		p.state = Failed
		return fmt.Errorf("minification failed: %w", err)
	}
	p.state = Done
	return nil
}

func (p *Plugin) run(ctx context.Context) error {
	files, err := fileset.Resolve(p.fs, p.logger, p.cfg.resolverOptions())
	if err != nil {
		return errext.WithHint(&ConfigError{Err: err},
			"check the source directory, the include files and the source fileset")
	}
	p.files = files
	p.state = FilesResolved
	p.logger.WithField("files", fileset.Summary(files)).Info("Included files")
	if len(p.cfg.ExcludeFiles) > 0 {
		p.logger.WithField("files", fileset.Summary(specs(p.cfg.ExcludeFiles))).Debug("Excluded files")
	}

	if len(files) == 0 {
		p.logger.Info("No files to minify")
		return p.exportSummary()
	}

	p.state = Compiling
	m := New(p.logger, p.fs, p.compiler, p.externs, Settings{
		SourceRoot: p.cfg.SourceRoot(),
		OutputRoot: p.cfg.OutputDirectory,
		SourceMap:  p.cfg.SourceMap,
		Compress:   p.cfg.Compress,
		Verify:     p.cfg.Verify,
	})
	if p.cfg.Merge {
		if p.cfg.SourceMap {
			p.logger.Warn("Source maps are only generated when files aren't merged")
		}
		err = m.CompileMerged(ctx, files, p.cfg.OutputFile)
	} else {
		err = m.CompilePerFile(ctx, files)
	}
	p.artifacts = m.Artifacts()
	if err != nil {
		return err
	}
	return p.exportSummary()
}

func (p *Plugin) exportSummary() error {
	if p.cfg.SummaryExport == "" {
		return nil
	}
	err := WriteSummary(p.fs, p.cfg.SummaryExport, Summary{
		Mode:    p.cfg.Mode(),
		Engine:  p.cfg.Engine,
		Level:   compiler.DefaultOptions().Level.String(),
		Inputs:  len(p.files),
		Outputs: p.artifacts,
	})
	var ioErr *IOError
	if err != nil && !errors.As(err, &ioErr) {
		return fmt.Errorf("couldn't export the summary: %w", err)
	}
	return err
}

func specs(paths []string) []fileset.FileSpec {
	out := make([]fileset.FileSpec, len(paths))
	for i, path := range paths {
		out[i] = fileset.FileSpec{Path: path}
	}
	return out
}
