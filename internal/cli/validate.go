package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/levelgen/pkg/blueprint"
	apperrors "github.com/matzehuels/levelgen/pkg/errors"
	"github.com/matzehuels/levelgen/pkg/layout"
)

func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <blueprint|dir>...",
		Short: "Check blueprints without generating",
		Long: `Parse and validate blueprint files. Directories are searched for
.toml, .yaml, .yml and .json files.

Errors name the offending node, e.g.
"generator.generators[2].inside: unknown type \"box\"".`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog := newProgress(loggerFromContext(cmd.Context()))

			entries, err := collectBlueprints(args)
			if err != nil {
				return err
			}

			failed := 0
			for _, e := range entries {
				if !e.Valid() {
					failed++
					printError("%s", e.Path)
					printDetail("%s", apperrors.UserMessage(e.Err))
					continue
				}
				printSuccess("%s", e.Path)
				printDetail("%s · %d generators · root %s", e.Blueprint.Name, layout.Count(e.Blueprint.Root), layout.Kind(e.Blueprint.Root))
			}

			if failed > 0 {
				return apperrors.New(apperrors.ErrCodeInvalidBlueprint, "%d of %d blueprints invalid", failed, len(entries))
			}
			prog.done(fmt.Sprintf("Validated %d blueprints", len(entries)))
			return nil
		},
	}
}

// collectBlueprints loads the named files and the blueprints under the
// named directories.
func collectBlueprints(args []string) ([]blueprintEntry, error) {
	var entries []blueprintEntry
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			entries = append(entries, blueprintEntry{
				Path: arg,
				Err:  apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "blueprint %s", arg),
			})
			continue
		}
		if !info.IsDir() {
			bp, err := blueprint.Load(arg)
			entries = append(entries, blueprintEntry{Path: arg, Blueprint: bp, Err: err})
			continue
		}
		found, err := listBlueprints(arg)
		if err != nil {
			return nil, err
		}
		entries = append(entries, found...)
	}
	return entries, nil
}
