package main

import (
	"fmt"
	"os"
	"strings"

	"lexreader/internal/config"
	"lexreader/internal/gateway"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "lexreader",
	Short: "Read books and build a vocabulary as you go",
	Long: "lexreader serves a vocabulary API backed by PostgreSQL and reads books against it " +
		"from the terminal or a Telegram bot. Clicked words are translated and tracked as " +
		"unfamiliar, learning or familiar.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("api-url", "", "API base URL (overrides LEXREADER_API_URL)")
	rootCmd.PersistentFlags().String("api-key", "", "API key (overrides LEXREADER_API_KEY)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Log debug output to stderr")
	rootCmd.PersistentFlags().String("log-file", "", "Write debug logs to this file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(botCmd)
	rootCmd.AddCommand(readCmd)
	rootCmd.AddCommand(booksCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(wordsCmd)
	rootCmd.AddCommand(statsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// clientConfig loads the API client settings; flags win over the environment
func clientConfig(cmd *cobra.Command) (*config.ClientConfig, error) {
	cfg, err := config.LoadClient()
	if err != nil {
		return nil, err
	}
	if url, _ := cmd.Flags().GetString("api-url"); url != "" {
		cfg.APIURL = strings.TrimRight(url, "/")
	}
	if key, _ := cmd.Flags().GetString("api-key"); key != "" {
		cfg.APIKey = key
	}
	return cfg, nil
}

// clientLogger returns the logger of client commands: a file logger with
// --log-file, stderr with --verbose, nothing otherwise
func clientLogger(cmd *cobra.Command) (*zap.Logger, error) {
	if path, _ := cmd.Flags().GetString("log-file"); path != "" {
		cfg := zap.NewDevelopmentConfig()
		cfg.OutputPaths = []string{path}
		cfg.ErrorOutputPaths = []string{path}
		return cfg.Build()
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		return zap.NewDevelopment()
	}
	return zap.NewNop(), nil
}

// newGateway builds the REST gateway used by client commands
func newGateway(cmd *cobra.Command) (*gateway.Client, *zap.Logger, error) {
	cfg, err := clientConfig(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := clientLogger(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return gateway.NewClient(cfg.APIURL, cfg.APIKey, cfg.Timeout, logger), logger, nil
}
