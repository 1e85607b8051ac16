package main

import (
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Zachkp/magnus-site/internal/api"
	"github.com/Zachkp/magnus-site/internal/config"
)

var (
	configPath string
	cfg        config.Config
)

var rootCmd = &cobra.Command{
	Use:          "magnus-site",
	Short:        "Magnus the Illusionist: web site, terminal site and content tools",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		return err
	},
	// With no subcommand the site is served.
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "optional YAML config file (environment variables override it)")
	rootCmd.AddCommand(serveCmd, browseCmd, fetchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newClient builds the content gateway from configuration. The token is
// fixed for the process; an empty token sends no Authorization header.
func newClient(c config.Config, logger *zap.Logger) *api.Client {
	return api.New(c.API.BaseURL,
		api.WithSession(api.StaticToken(c.API.Token)),
		api.WithLogger(logger),
	)
}
