// Package cmd provides the CLI commands for dayaim.
//
// This software is a derivative work based on Zeit (https://github.com/mrusme/zeit)
// Original work copyright (c) マリウス (mrusme)
// Modifications copyright (c) Manav Panchal
//
// Licensed under the SEGV License, Version 1.0
// See LICENSE file for full license text.
package cmd

import (
	"github.com/spf13/cobra"
)

// completionCmd represents the completion command.
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for dayaim.

To load completions:

Bash:
  $ source <(dayaim completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ dayaim completion bash > /etc/bash_completion.d/dayaim
  # macOS:
  $ dayaim completion bash > $(brew --prefix)/etc/bash_completion.d/dayaim

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ dayaim completion zsh > "${fpath[1]}/_dayaim"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ dayaim completion fish | source

  # To load completions for each session, execute once:
  $ dayaim completion fish > ~/.config/fish/completions/dayaim.fish

PowerShell:
  PS> dayaim completion powershell | Out-String | Invoke-Expression

Goal, task and habit ids complete from the local store.
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletionV2(out, true)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletionWithDesc(out)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
