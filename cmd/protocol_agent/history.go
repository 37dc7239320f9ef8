package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/fire-protocols/internal/export"
	"github.com/jonathan/fire-protocols/internal/observability"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect the history of generated protocols",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the most recent history entries, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyCustomersCmd = &cobra.Command{
	Use:   "customers",
	Short: "Show recently used customers",
	Args:  cobra.NoArgs,
	RunE:  runHistoryCustomers,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all history entries",
	Args:  cobra.NoArgs,
	RunE:  runHistoryClear,
}

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the history to an .xlsx workbook",
	Args:  cobra.NoArgs,
	RunE:  runHistoryExport,
}

var (
	historyLimit      int
	historyExportFile string
)

func init() {
	historyCmd.PersistentFlags().IntVarP(&historyLimit, "limit", "n", 10, "Maximum number of entries to show")
	historyExportCmd.Flags().StringVarP(&historyExportFile, "out", "o", "", "Path to the .xlsx file (required)")

	if err := historyExportCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark flag as required: %v", err))
	}

	historyCmd.AddCommand(historyListCmd, historyCustomersCmd, historyClearCmd, historyExportCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	entries, err := historyStore().Recent(historyLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "История пуста")
		return nil
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintHistory(entries)
	return nil
}

func runHistoryCustomers(cmd *cobra.Command, _ []string) error {
	customers, err := historyStore().RecentCustomers(historyLimit)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, c := range customers {
		_, _ = fmt.Fprintln(out, c)
	}
	return nil
}

func runHistoryClear(cmd *cobra.Command, _ []string) error {
	if err := historyStore().Clear(); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "История очищена")
	return nil
}

func runHistoryExport(cmd *cobra.Command, _ []string) error {
	entries, err := historyStore().Entries()
	if err != nil {
		return err
	}
	if err := export.SaveHistory(historyExportFile, entries); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entries to %s\n", len(entries), historyExportFile)
	return nil
}
