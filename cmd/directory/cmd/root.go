package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Get2Core/fs-project/internal/app/di"
	"github.com/Get2Core/fs-project/internal/feature/directory/adapters/sqlite"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:           "directory",
	Short:         "DART company directory builder and search",
	Long:          "Builds the company directory from OpenDART corp codes (or a CSV export) and queries it.",
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "",
		fmt.Sprintf("directory store path (default $%s or %s)", di.EnvKeyDirectoryPath, di.DefaultDirectoryPath))

	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(tokenCmd)
}

// openDirectory はストアを開きます。load が true なら公開中の世代を読み込みます。
func openDirectory(cmd *cobra.Command, load bool) (*sqlite.Directory, error) {
	path := di.DirectoryPath(dbPath)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	dir, err := di.NewDirectory(path, nil)
	if err != nil {
		return nil, err
	}
	if load {
		if err := dir.Reload(cmd.Context()); err != nil {
			_ = dir.Close()
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}
	return dir, nil
}
