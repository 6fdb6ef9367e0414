package cli

import (
	"os"

	"github.com/spf13/cobra"

	"chatbot/internal/chatconfig"
	"chatbot/internal/tui"
	"chatbot/internal/view"
)

func newTUICmd(a *app) *cobra.Command {
	var prompt, system string
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive chat client",
		Long: "Open the interactive chat client.\n\n" +
			"Logs are discarded unless --log-file is given, since the terminal belongs to the UI.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := chatconfig.New(a.log.With().Str("component", "chatconfig").Logger())
			if !a.cfg.Chat.IsEmpty() {
				store.Update(a.cfg.Chat)
			}
			return tui.Run(cmd.Context(), tui.Options{
				API:          a.client(),
				Store:        store,
				Theme:        view.NewTheme(os.Stdout),
				Logger:       a.log.With().Str("component", "tui").Logger(),
				Prompt:       prompt,
				SystemPrompt: system,
			})
		},
	}
	cmd.Flags().StringVar(&prompt, "prompt", "", "Initial user prompt")
	cmd.Flags().StringVar(&system, "system", "", "Initial system prompt")
	return cmd
}
