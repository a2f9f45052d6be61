package cmd

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/moviescope-cli/internal/dashboard"
	"github.com/KaramelBytes/moviescope-cli/internal/filter"
	"github.com/KaramelBytes/moviescope-cli/internal/narrative"
	"github.com/spf13/cobra"
)

var (
	secRanges []string
)

var sectionCmd = &cobra.Command{
	Use:   "section <name|number>",
	Short: "Render one dashboard section (scenario, questions, analyses, models, conclusions, suggestions)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sec, err := narrative.Parse(args[0])
		if err != nil {
			return err
		}
		ds, err := loadDataset()
		if err != nil {
			return err
		}
		st := dashboard.NewState(ds, sec)
		if len(secRanges) > 0 {
			if sec != narrative.Analyses {
				return fmt.Errorf("--range only applies to the analyses section")
			}
			st.Ranges, err = filter.WithSpecs(st.Ranges, secRanges)
			if err != nil {
				return err
			}
		}
		page := dashboard.Render(ds, st, dashboardOptions())
		_, err = printPage(cmd.OutOrStdout(), page)
		return err
	},
}

func init() {
	rootCmd.AddCommand(sectionCmd)
	names := make([]string, 0, len(narrative.Sections()))
	for _, s := range narrative.Sections() {
		names = append(names, string(s))
	}
	sectionCmd.Long = "Render one dashboard section: " + strings.Join(names, ", ") + "."
	sectionCmd.Flags().StringArrayVar(&secRanges, "range", nil, "analyses filter, attr=min:max (repeatable; empty bound keeps the observed one)")
}
