package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/levelgen/pkg/blueprint"
	apperrors "github.com/matzehuels/levelgen/pkg/errors"
	"github.com/matzehuels/levelgen/pkg/pipeline"
)

// errNoSelection is returned when the picker is closed without a choice.
var errNoSelection = errors.New("no blueprint selected")

// formatExt maps output formats to file extensions.
var formatExt = map[string]string{
	pipeline.FormatASCII: ".txt",
	pipeline.FormatJSON:  ".json",
}

// generateOpts holds the generate flags that are not part of the config.
// Size, seed, attempts, colour and caching flags are read through
// internal/config so that they layer over the config file.
type generateOpts struct {
	output  string
	formats []string
	refresh bool
}

func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:     "generate [blueprint|dir]",
		Aliases: []string{"gen"},
		Short:   "Generate a level from a blueprint",
		Long: `Generate a level from a blueprint file.

Given a directory, or nothing (the configured blueprints directory), an
interactive picker lists the blueprints found there.

The level is printed to stdout unless --output is set. With several
formats, --output is a base path and each format gets its extension.`,
		Example: `  levelgen generate crypt.toml --seed 7
  levelgen generate caves.yaml -W 120 -H 60 -f ascii,json -o out/caves
  levelgen generate blueprints/`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := ""
			if len(args) > 0 {
				target = args[0]
			}
			return c.runGenerate(cmd.Context(), cmd.OutOrStdout(), target, opts)
		},
	}

	cmd.Flags().IntP("width", "W", 0, "level width (default: blueprint, then 80)")
	cmd.Flags().IntP("height", "H", 0, "level height (default: blueprint, then 40)")
	cmd.Flags().Uint64("seed", 0, "seed of the first attempt (default: random)")
	cmd.Flags().Int("max-attempts", 0, fmt.Sprintf("attempts before giving up (default %d)", pipeline.DefaultMaxAttempts))
	cmd.Flags().Bool("no-color", false, "disable colours in ascii output")
	cmd.Flags().Bool("no-cache", false, "disable the level cache")
	cmd.Flags().String("redis", "", "cache levels in redis at this address")
	cmd.Flags().StringSliceVarP(&opts.formats, "format", "f", []string{pipeline.FormatASCII}, "output format(s): ascii, json")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file, or base path with several formats")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "regenerate even when the level is cached")

	return cmd
}

func (c *CLI) runGenerate(ctx context.Context, out io.Writer, target string, opts generateOpts) error {
	logger := loggerFromContext(ctx)

	path, err := c.resolveBlueprint(target)
	if err != nil {
		if errors.Is(err, errNoSelection) {
			return nil
		}
		return err
	}
	bp, err := blueprint.Load(path)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	po := c.options()
	po.Logger = logger
	po.Refresh = opts.refresh
	po.Formats = opts.formats
	po.Color = po.Color && opts.output == "" && isTerminal(out)

	var spinner *Spinner
	if logger.GetLevel() > log.DebugLevel && isTerminal(statusOut) {
		spinner = newSpinnerWithContext(ctx, fmt.Sprintf("Generating %s...", bp.Name))
		spinner.Start()
	}
	res, err := runner.Generate(ctx, bp, po)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		if apperrors.Retryable(err) {
			printError("%s", apperrors.UserMessage(err))
			printNextStep("Allow more attempts", fmt.Sprintf("%s generate %s --max-attempts %d", appName, path, po.MaxAttempts*4))
		}
		return err
	}

	files, err := writeArtifacts(out, res, opts)
	if err != nil {
		return err
	}

	printSuccess("Generated %s", bp.Name)
	b := res.Grid.Bounds()
	printStats([]string{
		fmt.Sprintf("%dx%d", b.Width(), b.Height()),
		fmt.Sprintf("seed %d", res.Seed),
		fmt.Sprintf("%d attempts", res.Attempts),
		res.Duration.Round(time.Millisecond).String(),
	}, res.CacheHit)
	for _, f := range files {
		printFile(f)
	}
	return nil
}

// writeArtifacts writes every rendered format to out, or to files when an
// output path is set. It returns the files written.
func writeArtifacts(out io.Writer, res *pipeline.Result, opts generateOpts) ([]string, error) {
	if opts.output == "" {
		for _, f := range opts.formats {
			if _, err := out.Write(res.Artifacts[f]); err != nil {
				return nil, err
			}
		}
		return nil, nil
	}

	paths := map[string]string{}
	if len(opts.formats) == 1 {
		paths[opts.formats[0]] = opts.output
	} else {
		base := strings.TrimSuffix(opts.output, filepath.Ext(opts.output))
		for _, f := range opts.formats {
			paths[f] = base + formatExt[f]
		}
	}

	var files []string
	for _, f := range opts.formats {
		path := paths[f]
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return files, err
			}
		}
		if err := os.WriteFile(path, res.Artifacts[f], 0o644); err != nil {
			return files, fmt.Errorf("write %s: %w", path, err)
		}
		files = append(files, path)
	}
	return files, nil
}

// resolveBlueprint turns the generate argument into a blueprint file,
// opening the picker for directories.
func (c *CLI) resolveBlueprint(target string) (string, error) {
	if target == "" {
		target = c.settings().Blueprints
	}
	info, err := os.Stat(target)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "blueprint %s", target)
	}
	if !info.IsDir() {
		return target, nil
	}

	entries, err := listBlueprints(target)
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", apperrors.New(apperrors.ErrCodeFileNotFound, "no blueprints in %s", target)
	}
	if !isTerminal(os.Stdin) {
		return "", apperrors.New(apperrors.ErrCodeInvalidInput, "%s is a directory; name a blueprint file", target)
	}

	final, err := tea.NewProgram(NewBlueprintListModel(entries)).Run()
	if err != nil {
		return "", fmt.Errorf("blueprint picker: %w", err)
	}
	m, ok := final.(BlueprintListModel)
	if !ok || m.Selected == nil {
		return "", errNoSelection
	}
	return m.Selected.Path, nil
}
