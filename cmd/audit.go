package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/shahriarislam71/kaf-tar-sub002/internal/audit"
	"github.com/shahriarislam71/kaf-tar-sub002/internal/db"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect and prune the edit history",
}

var auditListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent saves",
	RunE: func(cmd *cobra.Command, args []string) error {
		section, _ := cmd.Flags().GetString("section")
		limit, _ := cmd.Flags().GetInt("limit")

		store, closeDB, err := openAudit()
		if err != nil {
			return err
		}
		defer closeDB()

		entries, err := store.Query(cmd.Context(), audit.QueryFilter{Section: section, Limit: limit})
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No edits recorded.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TIME\tACTOR\tSECTION\tACTION\tSTATUS\tMESSAGE")
		for _, e := range entries {
			status := "-"
			if e.StatusCode != 0 {
				status = fmt.Sprint(e.StatusCode)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				e.Timestamp.Local().Format("2006-01-02 15:04:05"), e.Actor, e.Section, e.Action, status, e.Message)
		}
		return w.Flush()
	},
}

var auditPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete edit history older than a given age",
	RunE: func(cmd *cobra.Command, args []string) error {
		olderThan, _ := cmd.Flags().GetDuration("older-than")
		if olderThan <= 0 {
			return fmt.Errorf("--older-than must be positive")
		}

		store, closeDB, err := openAudit()
		if err != nil {
			return err
		}
		defer closeDB()

		n, err := store.DeleteBefore(cmd.Context(), time.Now().Add(-olderThan))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d entries.\n", n)
		return nil
	},
}

func openAudit() (*audit.Store, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	setupLogging(cfg)
	database, err := db.Open(cfg.DatabasePath())
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	return audit.NewStore(database), func() { database.Close() }, nil
}

func init() {
	auditListCmd.Flags().String("section", "", "only show this section")
	auditListCmd.Flags().Int("limit", 20, "maximum entries to show")
	auditPruneCmd.Flags().Duration("older-than", 90*24*time.Hour, "age of entries to delete")
	auditCmd.AddCommand(auditListCmd, auditPruneCmd)
	rootCmd.AddCommand(auditCmd)
}
