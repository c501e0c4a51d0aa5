package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/rhino1998/mipsc/pkg/compiler"
	"github.com/rhino1998/mipsc/pkg/interpreter"
	"github.com/rhino1998/mipsc/pkg/spim"
)

const sourceExt = ".src"

func compileFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "debug",
			Aliases: []string{"d"},
			Usage:   "log at debug level",
		},
		&cli.BoolFlag{
			Name:  "strict",
			Usage: "reject references to undeclared identifiers",
		},
		&cli.BoolFlag{
			Name:  "strict-comparisons",
			Usage: "make every comparison yield exactly 0 or 1",
		},
		&cli.BoolFlag{
			Name:  "jump-over-else",
			Usage: "stop then-branches from falling through into else-branches",
		},
	}
}

func newLogger(c *cli.Command) *slog.Logger {
	level := slog.LevelInfo
	if c.Bool("debug") {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func sourcePaths(path string) ([]string, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	if !stat.IsDir() {
		return []string{path}, nil
	}

	files, err := filepath.Glob(filepath.Join(path, "*"+sourceExt))
	if err != nil {
		return nil, fmt.Errorf("failed to find source files in directory: %w", err)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no %s files in %s", sourceExt, path)
	}

	return files, nil
}

func compileArgs(ctx context.Context, c *cli.Command, logger *slog.Logger) (*compiler.Program, error) {
	if c.Args().Len() < 1 {
		return nil, fmt.Errorf("must provide at least one source file or directory as argument")
	}

	config := compiler.Config{
		Strict:            c.Bool("strict"),
		StrictComparisons: c.Bool("strict-comparisons"),
		JumpOverElse:      c.Bool("jump-over-else"),
	}

	comp, err := compiler.New(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize compiler: %w", err)
	}

	for _, arg := range c.Args().Slice() {
		paths, err := sourcePaths(arg)
		if err != nil {
			return nil, err
		}

		for _, path := range paths {
			f, err := os.Open(path)
			if err != nil {
				return nil, fmt.Errorf("failed to open file: %w", err)
			}
			defer f.Close()

			comp.AddFile(path, f)
		}
	}

	return comp.Compile(ctx)
}

func outputPath(c *cli.Command) string {
	if out := c.String("output"); out != "" {
		return out
	}

	path := c.Args().First()
	if stat, err := os.Stat(path); err == nil && stat.IsDir() {
		return filepath.Join(path, "main.s")
	}

	return strings.TrimSuffix(path, filepath.Ext(path)) + ".s"
}

func writeListing(w io.Writer, listing *spim.Listing, numbered bool) error {
	if !numbered {
		_, err := io.WriteString(w, listing.String())
		return err
	}

	for i, line := range listing.Lines() {
		_, err := fmt.Fprintf(w, "%4d  %s\n", i+1, line)
		if err != nil {
			return err
		}
	}

	return nil
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cmd := &cli.Command{
		Name:  "mipsc",
		Usage: "Compile int/bool programs into MIPS assembly",
		Commands: []*cli.Command{
			{
				Name:      "build",
				Usage:     "Compile source files into a MIPS assembly file",
				ArgsUsage: "<file or directory>...",
				Flags: append(compileFlags(),
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "assembly output path",
					},
				),
				Action: func(ctx context.Context, c *cli.Command) error {
					logger := newLogger(c)

					prog, err := compileArgs(ctx, c, logger)
					if err != nil {
						return err
					}

					out, err := os.Create(outputPath(c))
					if err != nil {
						return err
					}
					defer out.Close()

					_, err = spim.EmitAssembly(ctx, logger, out, prog)
					if err != nil {
						return err
					}

					return out.Close()
				},
			},
			{
				Name:      "print",
				Usage:     "Compile source files and print the assembly",
				ArgsUsage: "<file or directory>...",
				Flags:     compileFlags(),
				Action: func(ctx context.Context, c *cli.Command) error {
					logger := newLogger(c)

					prog, err := compileArgs(ctx, c, logger)
					if err != nil {
						return err
					}

					listing, err := spim.Assemble(prog)
					if err != nil {
						return err
					}

					logger.Debug("assembled", slog.String("checksum", fmt.Sprintf("%016x", listing.Checksum)))

					return writeListing(os.Stdout, listing, term.IsTerminal(int(os.Stdout.Fd())))
				},
			},
			{
				Name:      "ast",
				Usage:     "Print the source reconstructed from the checked tree",
				ArgsUsage: "<file or directory>...",
				Flags:     compileFlags(),
				Action: func(ctx context.Context, c *cli.Command) error {
					prog, err := compileArgs(ctx, c, newLogger(c))
					if err != nil {
						return err
					}

					_, err = io.WriteString(os.Stdout, prog.String())
					return err
				},
			},
			{
				Name:      "run",
				Usage:     "Compile source files and simulate the assembly",
				ArgsUsage: "<file or directory>...",
				Flags: append(compileFlags(),
					&cli.IntFlag{
						Name:  "max-steps",
						Usage: "instruction budget, 0 for the default",
					},
					&cli.BoolFlag{
						Name:  "trace",
						Usage: "log every executed instruction",
					},
				),
				Action: func(ctx context.Context, c *cli.Command) error {
					logger := newLogger(c)

					prog, err := compileArgs(ctx, c, logger)
					if err != nil {
						return err
					}

					config := spim.RuntimeConfig{
						MaxSteps: int(c.Int("max-steps")),
					}
					if c.Bool("trace") {
						config.Trace = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
					}

					runtime, err := spim.NewRuntime(prog, config)
					if err != nil {
						return err
					}

					err = runtime.Run(ctx)
					if err != nil {
						return err
					}

					logger.Debug("simulation finished", slog.Int("steps", runtime.Steps()))

					for _, sym := range runtime.Symbols() {
						v, _ := runtime.Load(sym.Name)
						fmt.Printf("%s = %d\n", sym.Name, v)
					}

					return nil
				},
			},
			{
				Name:      "interpret",
				Usage:     "Evaluate source files directly without generating assembly",
				ArgsUsage: "<file or directory>...",
				Flags: append(compileFlags(),
					&cli.IntFlag{
						Name:  "max-steps",
						Usage: "statement budget, 0 for the default",
					},
				),
				Action: func(ctx context.Context, c *cli.Command) error {
					prog, err := compileArgs(ctx, c, newLogger(c))
					if err != nil {
						return err
					}

					vals, err := interpreter.Execute(ctx, prog, interpreter.Config{
						MaxSteps: int(c.Int("max-steps")),
					})
					if err != nil {
						return err
					}

					for _, sym := range prog.Symbols().All() {
						fmt.Printf("%s = %d\n", sym.Name, vals[sym.Name])
					}

					return nil
				},
			},
		},
	}

	err := cmd.Run(ctx, os.Args)
	if err != nil {
		log.Fatalln(err)
	}
}
