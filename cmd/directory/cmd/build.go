package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Get2Core/fs-project/internal/feature/directory/adapters/source"
	"github.com/Get2Core/fs-project/internal/feature/directory/usecase"
)

var buildInput string

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the directory from a corp code CSV",
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&buildInput, "input", "", "corp code CSV (corp_code,corp_name,corp_eng_name,stock_code,modify_date)")
	_ = buildCmd.MarkFlagRequired("input")
}

func runBuild(cmd *cobra.Command, args []string) error {
	dir, err := openDirectory(cmd, false)
	if err != nil {
		return err
	}
	defer dir.Close()

	report, err := usecase.NewBuildUsecase(dir, nil).Rebuild(cmd.Context(), source.NewCSVSource(buildInput))
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), formatReport(report))
	return nil
}
