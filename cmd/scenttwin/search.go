package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/scenttwin/internal/domain/search/mode"
	"github.com/kailas-cloud/scenttwin/internal/domain/search/request"
	scenttwin "github.com/kailas-cloud/scenttwin/pkg/sdk"
)

type searchOptions struct {
	server  string
	apiKey  string
	timeout time.Duration
}

func newSearchCmd(root *rootOptions) *cobra.Command {
	opts := &searchOptions{}

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Run a perfume search in-process or against a server",
	}
	cmd.PersistentFlags().StringVar(&opts.server, "server", "", "scenttwin API base URL; empty runs the search in-process")
	cmd.PersistentFlags().StringVar(&opts.apiKey, "api-key", os.Getenv("SCENTTWIN_API_KEY"), "bearer token for --server")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", scenttwin.DefaultTimeout, "overall timeout")

	cmd.AddCommand(
		&cobra.Command{
			Use:     "name <perfume>",
			Short:   "Describe a perfume and list similar alternatives",
			Example: `  scenttwin search name "Sauvage Dior"`,
			Args:    cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runSearch(cmd, root, opts, mode.ByName, strings.Join(args, " "))
			},
		},
		&cobra.Command{
			Use:     "notes <description>",
			Short:   "Suggest perfumes matching a description of notes",
			Example: `  scenttwin search notes "baunilha, tabaco e um toque cítrico"`,
			Args:    cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runSearch(cmd, root, opts, mode.ByNotes, strings.Join(args, " "))
			},
		},
	)
	return cmd
}

func runSearch(cmd *cobra.Command, root *rootOptions, opts *searchOptions, m mode.Mode, query string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
	defer cancel()

	var (
		out []byte
		err error
	)
	if opts.server != "" {
		out, err = searchRemote(ctx, opts, m, query)
	} else {
		out, err = searchLocal(ctx, root, m, query)
	}
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, out, "", "  "); err != nil {
		return fmt.Errorf("format output: %w", err)
	}
	buf.WriteByte('\n')
	_, err = buf.WriteTo(cmd.OutOrStdout())
	return err
}

func searchLocal(ctx context.Context, root *rootOptions, m mode.Mode, query string) ([]byte, error) {
	req, err := request.New(query, m)
	if err != nil {
		return nil, err
	}

	a, logger, err := newApp(ctx, root)
	if err != nil {
		return nil, err
	}
	defer func() { _ = logger.Sync() }()

	res, err := a.Search.Search(ctx, req)
	if err != nil {
		return nil, err
	}
	out, err := res.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return out, nil
}

func searchRemote(ctx context.Context, opts *searchOptions, m mode.Mode, query string) ([]byte, error) {
	client, err := scenttwin.New(opts.server, scenttwin.WithAPIKey(opts.apiKey))
	if err != nil {
		return nil, err
	}
	raw, err := client.Search(ctx, query, m)
	if err != nil {
		return nil, err
	}
	return raw, nil
}
