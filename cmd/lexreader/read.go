package main

import (
	"fmt"

	"lexreader/internal/gateway"
	"lexreader/internal/session"
	"lexreader/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var readCmd = &cobra.Command{
	Use:   "read",
	Short: "Read books in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := clientConfig(cmd)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		logger, err := clientLogger(cmd)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer logger.Sync()

		gw := gateway.NewClient(cfg.APIURL, cfg.APIKey, cfg.Timeout, logger)
		ctrl := session.NewController(gw, logger)
		defer ctrl.Reset()

		p := tea.NewProgram(tui.New(ctrl, cfg.Timeout), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("run reader: %w", err)
		}
		return nil
	},
}
