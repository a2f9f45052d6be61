package cmd

import (
	"fmt"

	"github.com/KaramelBytes/moviescope-cli/internal/analysis"
	"github.com/spf13/cobra"
)

var (
	sumSampleRows int
	sumOutliers   bool
	sumOutlierThr float64
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarize the dataset's numeric columns and preview its first rows",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset()
		if err != nil {
			return err
		}
		opt := analysis.DefaultOptions()
		opt.SampleRows = previewRows()
		if cmd.Flags().Changed("sample-rows") {
			opt.SampleRows = sumSampleRows
		}
		opt.Outliers = sumOutliers
		if sumOutlierThr > 0 {
			opt.OutlierThreshold = sumOutlierThr
		}
		rep := analysis.Summarize(ds, opt)
		out := cmd.OutOrStdout()
		fmt.Fprint(out, rep.Text())
		if len(rep.Samples) > 0 {
			fmt.Fprintln(out, "\n[HEAD]")
			header, rows := rep.SampleTable()
			renderTable(out, header, rows)
		}
		return nil
	},
}

func previewRows() int {
	if cfg != nil && cfg.PreviewRows > 0 {
		return cfg.PreviewRows
	}
	return analysis.DefaultOptions().SampleRows
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().IntVar(&sumSampleRows, "sample-rows", 5, "number of head rows to preview")
	summaryCmd.Flags().BoolVar(&sumOutliers, "outliers", true, "compute robust outlier counts (MAD)")
	summaryCmd.Flags().Float64Var(&sumOutlierThr, "outlier-threshold", 3.5, "robust |z| threshold for outliers (MAD-based)")
}
