// Command scenttwin runs perfume searches from the terminal, prints the
// output schemas, and serves the search tools over MCP stdio.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/scenttwin/internal/app"
	"github.com/kailas-cloud/scenttwin/internal/config"
	logpkg "github.com/kailas-cloud/scenttwin/internal/logger"
	"github.com/kailas-cloud/scenttwin/internal/version"
)

// rootOptions are the persistent flags shared by every subcommand.
type rootOptions struct {
	env      string
	logLevel string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:          "scenttwin",
		Short:        "Find perfume twins and perfumes by notes",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.env, "env", config.GetEnv(), "config environment (config/<env>.yaml)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level override: debug, info, warn, error")

	root.AddCommand(
		newSearchCmd(opts),
		newSchemaCmd(),
		newMCPCmd(opts),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version info",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if asJSON {
				return printJSON(cmd.OutOrStdout(), map[string]string{
					"version": version.Version,
					"commit":  version.Commit,
					"date":    version.Date,
				})
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "scenttwin %s\n", version.String())
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}

// loadConfig reads config/<env>.yaml. Without a config file the CLI runs on
// defaults plus the environment (.env included).
func loadConfig(env string) (config.Config, error) {
	cfg, err := config.Load(env)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return config.Config{}, err
	}
	if err := config.LoadDotEnv(); err != nil {
		return config.Config{}, err
	}
	return config.Parse(nil)
}

// newApp wires services the same way the API server does. Logs go to stderr.
func newApp(ctx context.Context, opts *rootOptions) (*app.App, *zap.Logger, error) {
	cfg, err := loadConfig(opts.env)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := logpkg.NewLogger("cli", opts.logLevel)
	if err != nil {
		return nil, nil, err
	}
	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return a, logger, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
