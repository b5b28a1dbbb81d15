package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for wordcloud.

To load completions:

Bash:
  $ source <(wordcloud completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ wordcloud completion bash > /etc/bash_completion.d/wordcloud
  # macOS:
  $ wordcloud completion bash > $(brew --prefix)/etc/bash_completion.d/wordcloud

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ wordcloud completion zsh > "${fpath[1]}/_wordcloud"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ wordcloud completion fish | source

  # To load completions for each session, execute once:
  $ wordcloud completion fish > ~/.config/fish/completions/wordcloud.fish

PowerShell:
  PS> wordcloud completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}

// orientationCompletion completes --orientation values.
func orientationCompletion(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return []string{"single", "right angled", "multiple"}, cobra.ShellCompDirectiveNoFileComp
}

// scaleCompletion completes --scale values.
func scaleCompletion(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return []string{"linear", "log", "square root"}, cobra.ShellCompDirectiveNoFileComp
}
