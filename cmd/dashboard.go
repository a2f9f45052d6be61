package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/KaramelBytes/moviescope-cli/internal/analysis"
	"github.com/KaramelBytes/moviescope-cli/internal/dashboard"
	"github.com/KaramelBytes/moviescope-cli/internal/dataset"
	"github.com/KaramelBytes/moviescope-cli/internal/filter"
	"github.com/KaramelBytes/moviescope-cli/internal/narrative"
	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Interactive menu over the six project steps",
	Long: `Prints the project intro and a dataset preview, then loops over a menu of
the six project steps. Choosing "analyses" lets you edit the filter ranges
(attr=min:max, reset, blank line to render); ranges are kept between choices.
Enter q to quit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset()
		if err != nil {
			return err
		}
		return runDashboard(cmd.InOrStdin(), cmd.OutOrStdout(), ds)
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(in io.Reader, out io.Writer, ds *dataset.Dataset) error {
	fmt.Fprintln(out, narrative.Intro())
	sopt := analysis.DefaultOptions()
	sopt.SampleRows = previewRows()
	sopt.Outliers = false
	rep := analysis.Summarize(ds, sopt)
	fmt.Fprintf(out, "\n📂 Dataset preview (%d movies)\n", ds.Len())
	header, rows := rep.SampleTable()
	renderTable(out, header, rows)
	for _, w := range rep.Warnings {
		fmt.Fprintf(out, "⚠ %s\n", w)
	}

	secs := narrative.Sections()
	names := make([]string, len(secs))
	for i, s := range secs {
		names[i] = s.Title()
	}

	sc := bufio.NewScanner(in)
	ranges := filter.Defaults(ds)
	opt := dashboardOptions()
	for {
		printMenu(out, names)
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		choice := strings.TrimSpace(sc.Text())
		switch strings.ToLower(choice) {
		case "":
			continue
		case "q", "quit", "exit":
			fmt.Fprintln(out, "Bye.")
			return nil
		}
		sec, err := narrative.Parse(choice)
		if err != nil {
			fmt.Fprintf(out, "✗ %v\n", err)
			continue
		}
		if sec == narrative.Analyses {
			ranges, err = promptRanges(sc, out, ds, ranges)
			if err != nil {
				return err
			}
		}
		page := dashboard.Render(ds, dashboard.State{Section: sec, Ranges: ranges}, opt)
		if _, err := printPage(out, page); err != nil {
			fmt.Fprintf(out, "✗ %v\n", err)
		}
	}
}

// promptRanges reads filter edits until a blank line. Invalid edits are
// reported and skipped; the returned ranges are a fresh copy.
func promptRanges(sc *bufio.Scanner, out io.Writer, ds *dataset.Dataset, cur filter.Ranges) (filter.Ranges, error) {
	rs := cur.Clone()
	fmt.Fprintln(out, "\n🎚️ Filters (attr=min:max, reset, blank line to render):")
	for _, a := range dataset.Attributes() {
		lo, hi := ds.Bounds(a)
		fmt.Fprintf(out, "  %s %s (observed [%g, %g])\n", a, rs[a], lo, hi)
	}
	for {
		fmt.Fprint(out, "filter> ")
		if !sc.Scan() {
			return rs, sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		switch strings.ToLower(line) {
		case "":
			return rs, nil
		case "reset":
			rs = filter.Defaults(ds)
			fmt.Fprintln(out, "✓ Filters reset to observed bounds")
			continue
		}
		attr, r, err := filter.ParseRange(line, rs)
		if err != nil {
			fmt.Fprintf(out, "✗ %v\n", err)
			continue
		}
		rs[attr] = r
		fmt.Fprintf(out, "✓ %s %s\n", attr, r)
	}
}
