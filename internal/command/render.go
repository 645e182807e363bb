package command

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"
)

// table prints rows in aligned columns on stdout.
func table(header []string, rows [][]string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()
}

// shortDate renders timestamps the way list views want them.
func shortDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}

// yesNo renders a boolean flag.
func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

// activeLabel renders the active/inactive status column.
func activeLabel(v bool) string {
	if v {
		return "active"
	}
	return "inactive"
}

// orDash substitutes a dash for empty optional fields.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
