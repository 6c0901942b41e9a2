package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shahriarislam71/kaf-tar-sub002/internal/listview"
)

var messagesCmd = &cobra.Command{
	Use:   "messages",
	Short: "List contact messages, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		page, _ := cmd.Flags().GetInt("page")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		setupLogging(cfg)
		st, err := newStore(cfg)
		if err != nil {
			return err
		}

		msgs, err := st.Client().ContactMessages(cmd.Context())
		if err != nil {
			return err
		}
		view := listview.Build(msgs, cfg.PageSize, page)
		if view.Empty() {
			fmt.Fprintln(cmd.OutOrStdout(), "No messages found.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SUBMITTED\tNAME\tEMAIL\tMESSAGE")
		for _, m := range view.Rows {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", m.SubmittedAt.Local().Format("2006-01-02 15:04"), m.Name, m.Email, m.Message)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nPage %d of %d (%d messages)\n", view.Page, view.TotalPages, view.Total)
		return nil
	},
}

func init() {
	messagesCmd.Flags().Int("page", 1, "page to show")
	rootCmd.AddCommand(messagesCmd)
}
