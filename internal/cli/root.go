// Package cli builds the chatbot command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"chatbot/internal/config"
)

// app carries state shared by all subcommands once flags are parsed.
type app struct {
	// persistent flag values
	cfgPath    string
	apiBaseURL string
	logLevel   string
	logFormat  string
	logFile    string

	cfg      config.Config
	log      zerolog.Logger
	closeLog func() error
}

// Execute runs the command tree with args and returns the first error.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

// NewRootCmd constructs the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{log: zerolog.Nop()}
	root := &cobra.Command{
		Use:           "chatbot",
		Short:         "Local chat client and mock inference backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgPath, "config", "", "Config file (yaml, json or toml); defaults to ./chatbot.{yaml,yml,json,toml} if present")
	pf.StringVar(&a.apiBaseURL, "api-base-url", config.DefaultAPIBaseURL, "Backend API base URL (defaults CHATBOT_API_BASE_URL)")
	pf.StringVar(&a.logLevel, "log-level", config.DefaultLogLevel, "Log level: debug|info|warn|error (defaults CHATBOT_LOG_LEVEL)")
	pf.StringVar(&a.logFormat, "log-format", config.DefaultLogFormat, "Log format: console|json")
	pf.StringVar(&a.logFile, "log-file", "", "Write logs to this file instead of stderr")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return a.setup(cmd)
	}
	root.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if a.closeLog != nil {
			return a.closeLog()
		}
		return nil
	}

	root.AddCommand(
		newServeCmd(a),
		newHealthCmd(a),
		newModelsCmd(a),
		newChatCmd(a),
		newTUICmd(a),
		newConfigCmd(a),
		newCompletionCmd(root),
	)
	return root
}

// setup layers defaults, the config file, the environment and flags, then
// builds the process logger.
func (a *app) setup(cmd *cobra.Command) error {
	path := a.cfgPath
	if path == "" {
		if p, ok := config.Discover("."); ok {
			path = p
		}
	}
	var cfg config.Config
	if path != "" {
		c, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c
	}
	cfg, err := cfg.ApplyEnv()
	if err != nil {
		return err
	}
	f := cmd.Flags()
	if f.Changed("api-base-url") {
		cfg.APIBaseURL = a.apiBaseURL
	}
	if f.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if f.Changed("log-format") {
		cfg.LogFormat = a.logFormat
	}
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	out := cmd.ErrOrStderr()
	if a.logFile != "" {
		fh, err := os.OpenFile(a.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		out = fh
		a.closeLog = fh.Close
	} else if cmd.Name() == "tui" {
		// the terminal belongs to the UI
		out = io.Discard
	}
	l, err := newLogger(cfg.LogLevel, cfg.LogFormat, out)
	if err != nil {
		return err
	}
	a.log = l
	if path != "" {
		a.log.Debug().Str("path", path).Msg("config loaded")
	}
	return nil
}

func newCompletionCmd(root *cobra.Command) *cobra.Command {
	completionCmd := &cobra.Command{Use: "completion", Short: "Generate the autocompletion script for the specified shell"}
	completionCmd.AddCommand(&cobra.Command{Use: "bash", Short: "Bash completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenBashCompletion(cmd.OutOrStdout()) }})
	completionCmd.AddCommand(&cobra.Command{Use: "zsh", Short: "Zsh completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenZshCompletion(cmd.OutOrStdout()) }})
	completionCmd.AddCommand(&cobra.Command{Use: "fish", Short: "Fish completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenFishCompletion(cmd.OutOrStdout(), true) }})
	completionCmd.AddCommand(&cobra.Command{Use: "powershell", Short: "PowerShell completion", RunE: func(cmd *cobra.Command, args []string) error {
		return root.GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
	}})
	return completionCmd
}
