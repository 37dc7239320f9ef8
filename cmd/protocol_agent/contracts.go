package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/fire-protocols/internal/contracts"
	"github.com/jonathan/fire-protocols/internal/observability"
	"github.com/jonathan/fire-protocols/internal/store"
)

var contractsCmd = &cobra.Command{
	Use:   "contracts",
	Short: "Manage the customer contracts cache",
	Long:  "Scans the contracts directory for .docx files and keeps the customer and object data extracted from them.",
}

var contractsScanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Rescan the contracts directory and replace the cache",
	Args:  cobra.NoArgs,
	RunE:  runContractsScan,
}

var contractsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the cached customers",
	Args:  cobra.NoArgs,
	RunE:  runContractsList,
}

var contractsFindCmd = &cobra.Command{
	Use:   "find <customer>",
	Short: "Find contracts whose customer contains the given text",
	Args:  cobra.ExactArgs(1),
	RunE:  runContractsFind,
}

var contractsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show contract cache statistics",
	Args:  cobra.NoArgs,
	RunE:  runContractsStats,
}

var contractsWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rescan whenever the contracts directory changes",
	Args:  cobra.NoArgs,
	RunE:  runContractsWatch,
}

var (
	contractsDir           string
	contractsWatchDebounce time.Duration
)

func init() {
	contractsCmd.PersistentFlags().StringVar(&contractsDir, "dir", "", "Contracts directory (default: contracts_dir from config)")
	contractsWatchCmd.Flags().DurationVar(&contractsWatchDebounce, "debounce", contracts.DefaultDebounce, "Quiet period before a rescan")

	contractsCmd.AddCommand(contractsScanCmd, contractsListCmd, contractsFindCmd, contractsStatsCmd, contractsWatchCmd)
	rootCmd.AddCommand(contractsCmd)
}

func contractsScanner() *contracts.Scanner {
	if contractsDir != "" {
		return contracts.NewScanner(contractsDir, appConfig.ScanWorkers, logger)
	}
	return scanner()
}

func updateContracts(ctx context.Context, cmd *cobra.Command, sc *contracts.Scanner, st *store.ContractStore) error {
	stats, err := contracts.Update(ctx, sc, st)
	if p := printer(cmd); p != nil {
		p.PrintScanSummary(sc.Dir(), stats)
	}
	if err != nil {
		if errors.Is(err, contracts.ErrNoContracts) {
			return fmt.Errorf("в папке %s не найдено договоров: %w", sc.Dir(), err)
		}
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Найдено договоров: %d (файлов: %d, ошибок: %d)\n",
		stats.Extracted, stats.Files, stats.Failed)
	return nil
}

func runContractsScan(cmd *cobra.Command, _ []string) error {
	return updateContracts(cmd.Context(), cmd, contractsScanner(), contractStore())
}

func runContractsList(cmd *cobra.Command, _ []string) error {
	customers, err := contractStore().AllCustomers()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, c := range customers {
		_, _ = fmt.Fprintln(out, c)
	}
	return nil
}

func runContractsFind(cmd *cobra.Command, args []string) error {
	records, err := contractStore().FindSimilar(args[0])
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("договор не найден: %q", args[0])
	}
	out := cmd.OutOrStdout()
	for _, r := range records {
		_, _ = fmt.Fprintf(out, "%s\t%s\t%s\n", r.Customer, r.Object(), r.FileName)
	}
	return nil
}

func runContractsStats(cmd *cobra.Command, _ []string) error {
	st := contractStore()
	stats, err := st.Stats()
	if err != nil {
		return err
	}
	customers, err := st.AllCustomers()
	if err != nil {
		return err
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintContractStats(stats, customers)
	return nil
}

func runContractsWatch(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sc, st := contractsScanner(), contractStore()
	if err := updateContracts(ctx, cmd, sc, st); err != nil && !errors.Is(err, contracts.ErrNoContracts) {
		return err
	}

	w := contracts.NewWatcher(sc.Dir(), contractsWatchDebounce, func(ctx context.Context) {
		if err := updateContracts(ctx, cmd, sc, st); err != nil {
			logger.Warn("contracts rescan failed", zap.Error(err))
		}
	}, logger)
	if err := w.Start(ctx); err != nil {
		return err
	}
	defer w.Stop()

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Watching %s, press Ctrl+C to stop\n", sc.Dir())
	<-ctx.Done()
	return nil
}
