package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/lotbook/backtest"
	"github.com/rustyeddy/lotbook/book"
	"github.com/rustyeddy/lotbook/config"
	"github.com/rustyeddy/lotbook/journal"
	"github.com/rustyeddy/lotbook/market"
)

var (
	runConfigPath  string
	runDataDir     string
	runOutDir      string
	runAccountName string
	runSizing      string
	runVerbose     bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Replay a backtest and write the equity curve",
	Long: `Run loads universe.json, accounts.json and the timestamps, signals and
prices series from the data directory, replays them against a fresh
account and writes equity_curve.csv to the output directory.`,
	RunE: runBacktest,
}

func init() {
	runCmd.Flags().StringVarP(&runConfigPath, "config", "c", "", "config file (yaml or json)")
	runCmd.Flags().StringVarP(&runDataDir, "data", "d", ".", "data directory with universe, accounts and series files")
	runCmd.Flags().StringVarP(&runOutDir, "out", "o", ".", "output directory for the equity curve")
	runCmd.Flags().StringVarP(&runAccountName, "account", "a", "", "account name to run (default: last configured)")
	runCmd.Flags().StringVar(&runSizing, "sizing", "unit", "sizing policy: unit or capital")
	runCmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "log every step")
	rootCmd.AddCommand(runCmd)
}

func runBacktest(cmd *cobra.Command, args []string) error {
	log := logrus.New()
	if runVerbose {
		log.SetLevel(logrus.DebugLevel)
	}

	cfg := config.Default()
	if runConfigPath != "" {
		loaded, err := config.LoadFromFile(runConfigPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if runDataDir != "" {
		cfg.Data.Dir = runDataDir
	}

	specs, err := config.LoadUniverse(filepath.Join(cfg.Data.Dir, "universe.json"))
	if err != nil {
		return err
	}
	universe := make([]market.Instrument, len(specs))
	for i, spec := range specs {
		universe[i] = spec
	}

	accounts, err := config.LoadAccounts(filepath.Join(cfg.Data.Dir, "accounts.json"))
	if err != nil {
		return err
	}
	acct, err := selectAccount(accounts, runAccountName)
	if err != nil {
		return err
	}

	timestamps, err := backtest.LoadTimestamps(cfg.Data.Dir)
	if err != nil {
		return err
	}
	signals, err := backtest.LoadSignals(cfg.Data.Dir, len(universe))
	if err != nil {
		return err
	}
	prices, err := backtest.LoadBestPrices(cfg.Data.Dir, len(universe))
	if err != nil {
		return err
	}

	j, err := openJournal(cfg.Journal)
	if err != nil {
		return err
	}
	defer j.Close()

	var sizer backtest.Sizer
	switch runSizing {
	case "unit":
		sizer = backtest.UnitSizer{}
	case "capital":
		sizer = backtest.CapitalSizer{}
	default:
		return fmt.Errorf("unknown sizing policy %q", runSizing)
	}

	runner := &backtest.Runner{
		Universe: universe,
		Account:  acct,
		Sizer:    sizer,
		Journal:  j,
		Log:      log,
	}
	curve, err := runner.Run(timestamps, signals, prices)
	if err != nil {
		return err
	}

	if err := backtest.SaveEquityCurve(runOutDir, curve); err != nil {
		return err
	}
	log.WithField("path", filepath.Join(runOutDir, "equity_curve.csv")).Info("equity curve written")
	return nil
}

func selectAccount(accounts []book.AccountConfig, name string) (book.AccountConfig, error) {
	if name == "" {
		return accounts[len(accounts)-1], nil
	}
	for _, acct := range accounts {
		if acct.Name == name {
			return acct, nil
		}
	}
	return book.AccountConfig{}, fmt.Errorf("no account named %q configured", name)
}

func openJournal(cfg config.JournalConfig) (journal.Journal, error) {
	switch cfg.Type {
	case "csv":
		return journal.NewCSV(cfg.FillsFile, cfg.EquityFile)
	case "sqlite":
		return journal.NewSQLite(cfg.DBPath)
	default:
		return journal.Nop{}, nil
	}
}
