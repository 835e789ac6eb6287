package reporter

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/trivyignore-auditor/pkg/checker"
)

type TableReporter struct{}

func (r *TableReporter) Report(result *checker.Result) error {
	if !result.Failed() {
		fmt.Printf("All %d ignored CVEs are still unresolved for %s.\n", len(result.Open), result.Distribution)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CVE\tPACKAGE\tSTATE\tFIXED VERSION\tURGENCY")
	fmt.Fprintln(w, "---\t-------\t-----\t-------------\t-------")

	for _, f := range result.Resolved {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			f.ID,
			f.Package,
			"RESOLVED",
			orUnknown(f.FixedVersion),
			orUnknown(f.Urgency),
		)
	}
	for _, id := range result.Unmatched {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			id,
			"(not found)",
			"UNMATCHED",
			"-",
			"-",
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	var parts []string
	if n := len(result.Resolved); n > 0 {
		parts = append(parts, fmt.Sprintf("%d resolved upstream", n))
	}
	if n := len(result.Unmatched); n > 0 {
		parts = append(parts, fmt.Sprintf("%d never matched", n))
	}
	fmt.Printf("\nStale ignore entries for %s: %s.\n", result.Distribution, strings.Join(parts, ", "))
	return nil
}

func orUnknown(s string) string {
	if s == "" {
		return "(unknown)"
	}
	return s
}
