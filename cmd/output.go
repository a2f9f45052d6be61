package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/KaramelBytes/moviescope-cli/internal/charts"
	"github.com/KaramelBytes/moviescope-cli/internal/dashboard"
	"github.com/KaramelBytes/moviescope-cli/internal/utils"
	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
)

// printPage writes a rendered page to w and saves its charts under
// <charts_dir>/<run-id>/. It returns the written chart paths.
func printPage(w io.Writer, page dashboard.Page) ([]string, error) {
	fmt.Fprintf(w, "\n== %s ==\n", page.Title)
	if page.Err != nil {
		fmt.Fprintf(w, "✗ %v\n", page.Err)
		return nil, nil
	}
	for _, p := range page.Paragraphs {
		fmt.Fprintln(w, p)
	}
	for _, t := range page.Tables {
		fmt.Fprintf(w, "\n%s\n", t.Title)
		renderTable(w, t.Header, t.Rows)
	}
	if len(page.Charts) == 0 {
		return nil, nil
	}

	runID := uuid.NewString()
	dir := "charts"
	if cfg != nil && cfg.ChartsDir != "" {
		dir = cfg.ChartsDir
	}
	dir = filepath.Join(dir, runID)
	wIn, hIn := chartSize()
	var paths []string
	fmt.Fprintln(w)
	for _, c := range page.Charts {
		path := filepath.Join(dir, utils.Slug(c.Name)+".png")
		if err := charts.Save(c.Plot, path, wIn, hIn); err != nil {
			return paths, fmt.Errorf("save chart %s: %w", c.Name, err)
		}
		paths = append(paths, path)
		fmt.Fprintf(w, "%s\n✓ Saved chart to %s\n", c.Title, path)
	}
	debugf("render pass %s wrote %d charts", runID, len(paths))
	return paths, nil
}

func renderTable(w io.Writer, header []string, rows [][]string) {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(header)
	tw.SetAutoWrapText(false)
	tw.SetAutoFormatHeaders(false)
	tw.AppendBulk(rows)
	tw.Render()
}

func printMenu(w io.Writer, names []string) {
	fmt.Fprintln(w, "\nChoose a project step:")
	for i, n := range names {
		fmt.Fprintf(w, "  %d) %s\n", i+1, n)
	}
}
