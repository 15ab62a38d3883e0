package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/levelgen/pkg/blueprint"
	apperrors "github.com/matzehuels/levelgen/pkg/errors"
	"github.com/matzehuels/levelgen/pkg/layout"
	"github.com/matzehuels/levelgen/pkg/render/treeviz"
)

type treeOpts struct {
	output   string
	format   string
	detailed bool
}

func (c *CLI) treeCommand() *cobra.Command {
	opts := treeOpts{format: "dot", detailed: true}

	cmd := &cobra.Command{
		Use:   "tree <blueprint>",
		Short: "Draw a blueprint's generator tree",
		Long: `Draw the generator tree of a blueprint as Graphviz DOT, or as SVG
rendered with the embedded Graphviz.

Each node shows its generator kind and, with --detailed, its parameters.
Edges are labelled with the child's role (border, inside, generators[2]).`,
		Example: `  levelgen tree crypt.toml | dot -Tpng > crypt.png
  levelgen tree crypt.toml -f svg -o crypt.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: dot, svg")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", opts.detailed, "show generator parameters")

	return cmd
}

func runTree(ctx context.Context, out io.Writer, path string, opts treeOpts) error {
	if err := apperrors.ValidateFormat(opts.format, "dot", "svg"); err != nil {
		return err
	}
	bp, err := blueprint.Load(path)
	if err != nil {
		return err
	}

	dot := treeviz.ToDOT(bp.Root, treeviz.Options{Detailed: opts.detailed})
	data := []byte(dot)
	if opts.format == "svg" {
		if data, err = treeviz.RenderSVG(ctx, dot); err != nil {
			return fmt.Errorf("render svg: %w", err)
		}
	}

	if opts.output == "" {
		_, err := out.Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	printSuccess("Drew %s (%d generators)", bp.Name, layout.Count(bp.Root))
	printFile(opts.output)
	return nil
}
