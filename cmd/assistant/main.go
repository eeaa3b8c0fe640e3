package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aarush-luthra/Government-Scheme/internal/app"
	"github.com/aarush-luthra/Government-Scheme/internal/config"
	"github.com/aarush-luthra/Government-Scheme/internal/tui"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "assistant",
		Short: "Government Scheme Assistant terminal client",
		Long: "Chat with the Government Scheme Assistant backend from your terminal.\n" +
			"Run without arguments to open the interactive chat.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat()
		},
	}
	root.AddCommand(
		newChatCmd(),
		newLoginCmd(),
		newSignupCmd(),
		newLogoutCmd(),
		newLangCmd(),
		newProfileCmd(),
		newVerifyCmd(),
		newWhoamiCmd(),
	)
	return root
}

// buildApp assembles the client the same way for every command. The caller
// must Close() the returned app.
func buildApp() (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger, err := app.NewLogger(cfg.DataDir)
	if err != nil {
		logger = zap.NewNop()
	}
	renderer, err := tui.NewMarkdown(80)
	if err != nil {
		logger.Warn("markdown renderer unavailable", zap.Error(err))
		renderer = nil
	}
	if renderer == nil {
		return app.New(cfg, logger, nil)
	}
	return app.New(cfg, logger, renderer)
}

func runChat() error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.Close()

	p := tea.NewProgram(tui.NewModel(a), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
