package compiler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"github.com/cespare/xxhash/v2"

	"github.com/rhino1998/mipsc/pkg/parser"
)

type Config struct {
	Src   fs.FS
	Files []string

	// Strict turns references to undeclared identifiers into errors instead
	// of warnings and rejects programs whose kinds do not line up.
	Strict bool

	// StrictComparisons makes every comparison produce exactly 0 or 1.
	StrictComparisons bool

	// JumpOverElse stops a then-branch from falling through into its
	// else-branch.
	JumpOverElse bool
}

func (c *Config) Validate(logger *slog.Logger) error {
	if len(c.Files) > 0 && c.Src == nil {
		return fmt.Errorf("source filesystem is required when files are given")
	}

	logger.Debug("compiler config",
		slog.Int("files", len(c.Files)),
		slog.Bool("strict", c.Strict),
		slog.Bool("strict_comparisons", c.StrictComparisons),
		slog.Bool("jump_over_else", c.JumpOverElse),
	)

	return nil
}

type sourceFile struct {
	name string
	r    io.Reader
}

type Compiler struct {
	logger *slog.Logger
	Config Config

	sources []sourceFile
}

func New(logger *slog.Logger, config Config) (*Compiler, error) {
	if logger == nil {
		logger = slog.Default()
	}

	err := config.Validate(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to validate compiler config: %w", err)
	}

	return &Compiler{
		logger: logger,
		Config: config,
	}, nil
}

// AddFile queues a source read from r. Sources are compiled after the files
// named in the config, in the order they were added, into one program.
func (c *Compiler) AddFile(name string, r io.Reader) {
	c.sources = append(c.sources, sourceFile{name: name, r: r})
}

func (c *Compiler) parseAll(ctx context.Context) ([]*parser.Program, error) {
	errs := newErrorSet()

	var files []*parser.Program
	parse := func(name string, r io.Reader) {
		ast, err := parser.ParseReader(name, r)
		if err != nil {
			errs.Add(fileError(name, err))
			return
		}

		files = append(files, ast)
	}

	for _, name := range c.Config.Files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		f, err := c.Config.Src.Open(name)
		if err != nil {
			errs.Add(FileError{File: name, Err: fmt.Errorf("failed to open file: %w", err)})
			continue
		}

		parse(name, f)
		f.Close()
	}

	for _, src := range c.sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		parse(src.name, src.r)
	}

	if len(files) == 0 && len(errs.Errs) == 0 {
		return nil, errors.New("no source files")
	}

	return files, errs.Defer(nil)
}

func (c *Compiler) Compile(ctx context.Context) (*Program, error) {
	files, err := c.parseAll(ctx)
	if err != nil {
		return nil, err
	}

	prog := newProgram()

	errs := newErrorSet()
	for _, file := range files {
		errs.Add(c.compileFile(prog, file))
	}
	errs.Add(c.checkReferences(prog))
	if c.Config.Strict {
		errs.Add(c.checkProgramTypes(prog))
	}

	err = errs.Defer(nil)
	if err != nil {
		return nil, err
	}

	err = prog.lower(c.Config)
	if err != nil {
		return nil, err
	}

	ifs, loops := prog.Labels()
	c.logger.Debug("compiled program",
		slog.Int("statements", len(prog.root.Statements)),
		slog.Int("symbols", prog.symbols.Len()),
		slog.Int("instructions", prog.code.Len()),
		slog.Int("if_labels", ifs),
		slog.Int("loop_labels", loops),
		slog.String("checksum", fmt.Sprintf("%016x", xxhash.Sum64String(prog.String()))),
	)

	return prog, nil
}
