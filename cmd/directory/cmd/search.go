package cmd

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/Get2Core/fs-project/internal/feature/directory/usecase"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search companies by name or stock code",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 20, "maximum results")
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(args[0])
	if query == "" {
		return errors.New("query is empty")
	}
	if utf8.RuneCountInString(query) < usecase.MinQueryRunes {
		return fmt.Errorf("query must be at least %d characters", usecase.MinQueryRunes)
	}

	dir, err := openDirectory(cmd, true)
	if err != nil {
		return err
	}
	defer dir.Close()

	res, err := usecase.NewSearchUsecase(dir).Search(cmd.Context(), query, searchLimit)
	if err != nil {
		return err
	}
	if len(res) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no results")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CORP_CODE\tSTOCK\tNAME")
	for _, c := range res {
		stock := c.StockCode
		if stock == "" {
			stock = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", c.CorpCode, stock, c.CorpName)
	}
	return w.Flush()
}
