package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Get2Core/fs-project/internal/app/di"
	"github.com/Get2Core/fs-project/internal/feature/directory/adapters/source"
	"github.com/Get2Core/fs-project/internal/feature/directory/usecase"
	"github.com/Get2Core/fs-project/internal/platform/externalapi/opendart"
)

var fetchCSV string

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download corp codes from OpenDART and build the directory",
	RunE:  runFetch,
}

func init() {
	fetchCmd.Flags().StringVar(&fetchCSV, "csv", "", "also export the downloaded snapshot to this CSV path")
}

func runFetch(cmd *cobra.Command, args []string) error {
	client := di.NewOpenDARTClient()
	if !client.Configured() {
		return errors.New("OPENDART_API_KEY is not set")
	}

	rows, err := opendart.NewCorpCodeSource(client).FetchSnapshot(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "downloaded %d rows\n", len(rows))

	if fetchCSV != "" {
		if err := source.WriteCSVFile(fetchCSV, rows); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "exported %s\n", fetchCSV)
	}

	dir, err := openDirectory(cmd, false)
	if err != nil {
		return err
	}
	defer dir.Close()

	report, err := usecase.NewBuildUsecase(dir, nil).Build(cmd.Context(), rows)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), formatReport(report))
	return nil
}
