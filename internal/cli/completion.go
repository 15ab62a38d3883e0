package cli

import (
	"github.com/spf13/cobra"
)

func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for levelgen.

To load completions:

Bash:
  $ source <(levelgen completion bash)

  # Every session (Linux):
  $ levelgen completion bash > /etc/bash_completion.d/levelgen

Zsh (with compinit enabled):
  $ levelgen completion zsh > "${fpath[1]}/_levelgen"

Fish:
  $ levelgen completion fish | source

  # To load completions for each session, execute once:
  $ levelgen completion fish > ~/.config/fish/completions/levelgen.fish

PowerShell:
  PS> levelgen completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> levelgen completion powershell > levelgen.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
			return nil
		},
	}

	return cmd
}
