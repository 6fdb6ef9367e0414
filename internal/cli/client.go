package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"chatbot/internal/apiclient"
	"chatbot/internal/chatconfig"
	"chatbot/internal/composer"
	"chatbot/internal/view"
)

// errNothingToSend is returned by chat when no model resolves or the prompt is blank.
var errNothingToSend = errors.New("nothing to send: need a model and a non-blank prompt")

func (a *app) client() *apiclient.Client {
	return apiclient.New(a.cfg.APIBaseURL, apiclient.WithLogger(a.log.With().Str("component", "apiclient").Logger()))
}

func newHealthCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the backend heartbeat",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.client().FetchHealth(cmd.Context())
			if err != nil {
				return fmt.Errorf("health: %w", err)
			}
			th := view.NewTheme(cmd.OutOrStdout())
			fmt.Fprintln(cmd.OutOrStdout(), view.RenderStatusCard(th, "Backend", h.Status, h.Version, view.ToneSuccess))
			if h.Timestamp != "" {
				fmt.Fprintln(cmd.OutOrStdout(), th.Faint.Render(h.Timestamp))
			}
			return nil
		},
	}
}

func newModelsCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "models",
		Short: "List the models registered with the backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			models, err := a.client().FetchModels(cmd.Context())
			if err != nil {
				return fmt.Errorf("models: %w", err)
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(models)
			}
			th := view.NewTheme(cmd.OutOrStdout())
			active, _ := composer.ResolveActiveModel(models, "")
			fmt.Fprintln(cmd.OutOrStdout(), view.RenderModelList(th, models, active))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw model cards as JSON")
	return cmd
}

func newChatCmd(a *app) *cobra.Command {
	var (
		model, system string
		sets          []string
		asJSON        bool
	)
	cmd := &cobra.Command{
		Use:   "chat [PROMPT...]",
		Short: "Send one prompt and print the mock stream",
		Example: "  chatbot chat \"Say hi\"\n" +
			"  chatbot chat --model phi-3-mini-q8 --set temperature=1.1 --set max_tokens=64 \"Say hi\"",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := chatconfig.New(a.log.With().Str("component", "chatconfig").Logger())
			if !a.cfg.Chat.IsEmpty() {
				store.Update(a.cfg.Chat)
			}
			for _, kv := range sets {
				k, v, ok := strings.Cut(kv, "=")
				if !ok {
					return fmt.Errorf("--set %q: want key=value", kv)
				}
				if _, err := store.SetField(k, v); err != nil {
					return fmt.Errorf("--set: %w", err)
				}
			}

			api := a.client()
			models, err := api.FetchModels(cmd.Context())
			if err != nil {
				return fmt.Errorf("models: %w", err)
			}
			prompt := composer.DefaultPrompt
			if len(args) > 0 {
				prompt = strings.Join(args, " ")
			}
			c := composer.New(store, api,
				composer.WithLogger(a.log.With().Str("component", "composer").Logger()),
				composer.WithPrompts(prompt, system))
			c.SetModels(models)
			c.Select(model)

			resp, sent, err := c.SubmitAndWait(cmd.Context())
			if !sent {
				return errNothingToSend
			}
			if err != nil {
				return fmt.Errorf("chat: %w", err)
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(resp)
			}
			th := view.NewTheme(cmd.OutOrStdout())
			fmt.Fprintln(cmd.OutOrStdout(), view.RenderResponse(th, view.ResponseState{State: c.State(), Response: resp}))
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&model, "model", "", "Model id (default: first registered model)")
	f.StringVar(&system, "system", composer.DefaultSystemPrompt, "System prompt")
	f.StringArrayVar(&sets, "set", nil, "Override a config field, e.g. --set top_p=0.9 (repeatable)")
	f.BoolVar(&asJSON, "json", false, "Print the raw response as JSON")
	return cmd
}
