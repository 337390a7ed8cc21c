package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for insightdeck.

To load completions:

Bash:
  $ source <(insightdeck completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ insightdeck completion bash > /etc/bash_completion.d/insightdeck
  # macOS:
  $ insightdeck completion bash > $(brew --prefix)/etc/bash_completion.d/insightdeck

Zsh:
  $ insightdeck completion zsh > "${fpath[1]}/_insightdeck"

Fish:
  $ insightdeck completion fish > ~/.config/fish/completions/insightdeck.fish

PowerShell:
  PS> insightdeck completion powershell > insightdeck.ps1
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}
