package main

import (
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for ire.

To load completions:

Bash:
  $ source <(ire completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ ire completion bash > /etc/bash_completion.d/ire
  # macOS:
  $ ire completion bash > $(brew --prefix)/etc/bash_completion.d/ire

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ ire completion zsh > "${fpath[1]}/_ire"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ ire completion fish | source

  # To load completions for each session, execute once:
  $ ire completion fish > ~/.config/fish/completions/ire.fish

PowerShell:
  PS> ire completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> ire completion powershell > ire.ps1
  # and source this file from your PowerShell profile.
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.ExactValidArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := cmd.Root()
		out := cmd.OutOrStdout()

		switch args[0] {
		case "bash":
			return root.GenBashCompletionV2(out, true)
		case "zsh":
			return root.GenZshCompletion(out)
		case "fish":
			return root.GenFishCompletion(out, true)
		case "powershell":
			return root.GenPowerShellCompletionWithDesc(out)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
