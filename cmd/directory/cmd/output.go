package cmd

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Get2Core/fs-project/internal/feature/directory/domain/entity"
)

var printer = message.NewPrinter(language.Korean)

func formatReport(r entity.BuildReport) string {
	var b strings.Builder
	b.WriteString("directory built\n")
	printer.Fprintf(&b, "  generation:   %s\n", r.Generation)
	printer.Fprintf(&b, "  path:         %s\n", r.Path)
	printer.Fprintf(&b, "  records:      %d (listed %d, unlisted %d)\n", r.TotalRecords, r.Listed, r.Unlisted)
	printer.Fprintf(&b, "  rejected:     %d\n", r.Rejected)
	printer.Fprintf(&b, "  duplicates:   %d\n", r.DuplicatesResolved)
	printer.Fprintf(&b, "  stock shared: %d\n", r.StockCodeConflicts)
	printer.Fprintf(&b, "  size:         %d bytes\n", r.StoreSizeBytes)
	fmt.Fprintf(&b, "  took:         %s\n", r.Duration.Round(time.Millisecond))
	return b.String()
}

func formatStats(s entity.DirectoryStats) string {
	var b strings.Builder
	printer.Fprintf(&b, "path:       %s\n", s.Path)
	printer.Fprintf(&b, "generation: %s\n", s.Generation)
	if s.BuiltAt != "" {
		printer.Fprintf(&b, "built at:   %s\n", s.BuiltAt)
	}
	printer.Fprintf(&b, "companies:  %d (listed %d, unlisted %d)\n", s.Total, s.Listed, s.Unlisted)
	printer.Fprintf(&b, "size:       %d bytes\n", s.StoreSizeBytes)
	return b.String()
}
