package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Zachkp/magnus-site/internal/logging"
)

var (
	fetchQuery string
	fetchPage  string
)

var fetchResources = []string{"blogs", "featured", "categories", "services", "banner"}

var fetchCmd = &cobra.Command{
	Use:       "fetch <" + strings.Join(fetchResources, "|") + ">",
	Short:     "Print one content resource from the API as JSON",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: fetchResources,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := logging.New(cfg.LogLevel)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		client := newClient(cfg, logger)
		ctx := cmd.Context()

		var out any
		switch args[0] {
		case "blogs":
			out, err = client.Blogs.List(ctx, fetchQuery)
		case "featured":
			out, err = client.Blogs.Featured(ctx)
		case "categories":
			out, err = client.Blogs.Categories(ctx)
		case "services":
			out, err = client.Services.List(ctx, fetchQuery)
		case "banner":
			out, err = client.Banners.Active(ctx, fetchPage)
		}
		if err != nil {
			return fmt.Errorf("fetch %s: %w", args[0], err)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

func init() {
	fetchCmd.Flags().StringVar(&fetchQuery, "query", "", `query string for list resources, e.g. "?limit=6"`)
	fetchCmd.Flags().StringVar(&fetchPage, "page", "", "page for banner lookups (default home)")
}
