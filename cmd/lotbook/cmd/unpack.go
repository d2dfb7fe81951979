package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/xyproto/unzip"
)

var unpackOutDir string

var unpackCmd = &cobra.Command{
	Use:   "unpack <bundle.zip>",
	Short: "Extract a zipped data bundle into the data directory",
	Long: `Unpack extracts a zip archive of replay inputs (universe.json,
accounts.json, timestamps/signals/prices series) so that 'lotbook run'
can read them.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := unzip.Extract(args[0], unpackOutDir); err != nil {
			return fmt.Errorf("unpack %s: %w", args[0], err)
		}
		logrus.WithFields(logrus.Fields{
			"bundle": args[0],
			"dir":    unpackOutDir,
		}).Info("bundle extracted")
		return nil
	},
}

func init() {
	unpackCmd.Flags().StringVarP(&unpackOutDir, "out", "o", ".", "directory to extract into")
	rootCmd.AddCommand(unpackCmd)
}
