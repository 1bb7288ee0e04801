package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show statistics of the published directory",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	dir, err := openDirectory(cmd, true)
	if err != nil {
		return err
	}
	defer dir.Close()

	stats, err := dir.Stats(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), formatStats(stats))
	return nil
}
