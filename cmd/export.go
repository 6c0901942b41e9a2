package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shahriarislam71/kaf-tar-sub002/internal/logging"
	"github.com/shahriarislam71/kaf-tar-sub002/internal/progress"
	"github.com/shahriarislam71/kaf-tar-sub002/internal/site"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render the public pages to static HTML",
	Long:  `Fetches the current content and writes the home page and every service page to a directory, ready to serve from any static host.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		outDir, _ := cmd.Flags().GetString("out")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		setupLogging(cfg)
		st, err := newStore(cfg)
		if err != nil {
			return err
		}

		s, err := site.New(site.Config{SiteName: cfg.SiteName, PageSize: cfg.PageSize}, st, nil, logging.Component("export"))
		if err != nil {
			return err
		}
		n, err := s.Export(cmd.Context(), outDir, progress.NewReporter("Exporting pages"))
		if err != nil {
			return fmt.Errorf("exporting site: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Static site exported: %s (%d pages)\n", outDir, n)
		return nil
	},
}

func init() {
	exportCmd.Flags().String("out", "public", "output directory")
	rootCmd.AddCommand(exportCmd)
}
