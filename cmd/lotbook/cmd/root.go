package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lotbook",
	Short: "Lot-based position accounting and backtest replay",
	Long: `Lotbook replays signal and price histories against a simulated account.

It provides tools for:
  - Running backtests over CSV signal/price matrices
  - FIFO lot-level position accounting with realized/unrealized PnL
  - Maker/taker, per-unit and fixed commission schedules
  - Journaling fills and equity curves to CSV or SQLite
  - Unpacking zipped data bundles`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}
