package main

import (
	"github.com/spf13/cobra"

	"github.com/Zachkp/magnus-site/internal/logging"
	"github.com/Zachkp/magnus-site/internal/site"
	"github.com/Zachkp/magnus-site/internal/tui"
)

var browseLog string

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the site in the terminal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// The terminal belongs to the UI, so logs go to a file.
		logger, err := logging.NewFile(cfg.LogLevel, browseLog)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		loader := site.NewLoader(site.SourcesFromClient(newClient(cfg, logger)),
			site.WithLogger(logger),
			site.WithFetchTimeout(cfg.API.Timeout),
		)
		return tui.Run(cmd.Context(), loader,
			tui.WithLogger(logger),
			tui.WithSite(cfg.Site),
		)
	},
}

func init() {
	browseCmd.Flags().StringVar(&browseLog, "log-file", "browse.log", "where to write logs while the terminal UI runs")
}
