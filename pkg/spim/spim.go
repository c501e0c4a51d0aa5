package spim

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/rhino1998/mipsc/pkg/compiler"
	"github.com/rhino1998/mipsc/pkg/compiler/mips"
)

// Listing is the rendered assembly of one program.
type Listing struct {
	// Fragments holds the newline-terminated text of each instruction in
	// program order.
	Fragments []string
	Checksum  uint64
}

func (l *Listing) String() string {
	return strings.Join(l.Fragments, "")
}

// Lines splits the listing into assembly lines without their terminators.
func (l *Listing) Lines() []string {
	text := strings.TrimSuffix(l.String(), "\n")
	if text == "" {
		return nil
	}

	return strings.Split(text, "\n")
}

// Assemble renders prog with a fresh renderer.
func Assemble(prog *compiler.Program) (*Listing, error) {
	frags, err := mips.NewRenderer().RenderAll(prog.Instructions())
	if err != nil {
		return nil, fmt.Errorf("failed to render program: %w", err)
	}

	digest := xxhash.New()
	for _, frag := range frags {
		_, _ = digest.WriteString(frag)
	}

	return &Listing{
		Fragments: frags,
		Checksum:  digest.Sum64(),
	}, nil
}

// EmitAssembly renders prog and writes the assembly text to w.
func EmitAssembly(ctx context.Context, logger *slog.Logger, w io.Writer, prog *compiler.Program) (*Listing, error) {
	if logger == nil {
		logger = slog.Default()
	}

	listing, err := Assemble(prog)
	if err != nil {
		return nil, err
	}

	var written int64
	for _, frag := range listing.Fragments {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		n, err := io.WriteString(w, frag)
		written += int64(n)
		if err != nil {
			return nil, fmt.Errorf("failed to write assembly: %w", err)
		}
	}

	logger.Debug("emitted assembly",
		slog.Int("instructions", len(listing.Fragments)),
		slog.Int("lines", len(listing.Lines())),
		slog.Int64("bytes", written),
		slog.String("checksum", fmt.Sprintf("%016x", listing.Checksum)),
	)

	return listing, nil
}
