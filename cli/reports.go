// ABOUTME: Reporting CLI commands
// ABOUTME: Summary table, spreadsheet export, graphs, the pipeline dashboard, and the demo fixture
package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/harperreed/outlab/demo"
	"github.com/harperreed/outlab/metrics"
	"github.com/harperreed/outlab/models"
	"github.com/harperreed/outlab/viz"
	"github.com/spf13/cobra"
)

func (a *app) overviewCommand() *cobra.Command {
	var xlsxPath string

	cmd := &cobra.Command{
		Use:   "overview [campaign]",
		Short: "Print the campaign summary table",
		Long: `Print the Campaign/Object/Field/Value summary table for one campaign, or
for every campaign when none is named. --xlsx writes the same rows to a
spreadsheet instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := a.database()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			var rows []metrics.OverviewRow
			if len(args) == 1 {
				campaign, err := resolveCampaign(ctx, database, args[0])
				if err != nil {
					return err
				}
				m, err := metrics.ComputeCampaignMetrics(ctx, database, campaign.ID)
				if err != nil {
					return err
				}
				rows = metrics.OverviewRows(campaign, m)
			} else if rows, err = metrics.Overview(ctx, database); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if xlsxPath != "" {
				f, err := os.Create(xlsxPath)
				if err != nil {
					return err
				}
				if err := metrics.WriteOverviewXLSX(f, rows); err != nil {
					_ = f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return err
				}
				success(out, "Wrote %d row(s) to %s", len(rows), xlsxPath)
				return nil
			}

			if len(rows) == 0 {
				fmt.Fprintln(out, "No campaigns found")
				return nil
			}
			table := make([][]string, 0, len(rows))
			for _, r := range rows {
				table = append(table, []string{r.Campaign, r.Object, r.Field, r.Value})
			}
			return printTable(out, []string{"CAMPAIGN", "OBJECT", "FIELD", "VALUE"}, table)
		},
	}

	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Write the table to this .xlsx file")
	return cmd
}

func (a *app) graphCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "graph [campaign]",
		Short: "Render a campaign graph (all campaigns when none is named)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := a.database()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			generator := viz.NewGraphGenerator(database)

			var dot string
			if len(args) == 1 {
				campaign, err := resolveCampaign(ctx, database, args[0])
				if err != nil {
					return err
				}
				dot, err = generator.GenerateCampaignGraph(ctx, campaign.ID)
				if err != nil {
					return err
				}
			} else if dot, err = generator.GenerateCompleteGraph(ctx); err != nil {
				return err
			}

			if output != "" {
				return os.WriteFile(output, []byte(dot), 0644)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dot)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	return cmd
}

func (a *app) dashboardCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show pipeline totals and campaigns needing attention",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := a.database()
			if err != nil {
				return err
			}
			stats, err := viz.GenerateDashboardStats(cmd.Context(), database)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), viz.RenderDashboard(stats))
			return nil
		},
	}
}

func (a *app) demoCommand() *cobra.Command {
	var seed int64
	var n int

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Print an illustrative prospecting dashboard from seeded random data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if n > demo.MaxRows {
				return fmt.Errorf("%w: --rows must be at most %d", models.ErrValidation, demo.MaxRows)
			}
			d := demo.Generate(seed, n)
			out := cmd.OutOrStdout()

			heading(out, "Use cases")
			rows := make([][]string, 0, len(d.UseCaseRows))
			for _, r := range d.UseCaseRows {
				rows = append(rows, append([]string{r.UseCase, r.Persona}, countCells(r.Counts)...))
			}
			if err := printTable(out, append([]string{"USE CASE", "PERSONA"}, countHeaders...), rows); err != nil {
				return err
			}

			fmt.Fprintln(out)
			heading(out, "Accounts")
			rows = rows[:0]
			for _, r := range d.AccountRows {
				rows = append(rows, append([]string{r.Account, r.Industry, strconv.Itoa(r.Signals)}, countCells(r.Counts)...))
			}
			if err := printTable(out, append([]string{"ACCOUNT", "INDUSTRY", "SIGNALS"}, countHeaders...), rows); err != nil {
				return err
			}

			fmt.Fprintln(out)
			heading(out, "Intent")
			rows = rows[:0]
			for _, r := range d.IntentRows {
				rows = append(rows, append([]string{r.Topic, strconv.Itoa(r.IntentScore)}, countCells(r.Counts)...))
			}
			return printTable(out, append([]string{"TOPIC", "INTENT"}, countHeaders...), rows)
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 1, "Random seed; the same seed prints the same dashboard")
	cmd.Flags().IntVar(&n, "rows", 5, "Rows per table")
	return cmd
}

var countHeaders = []string{"ACCOUNTS", "LEADS", "ENGAGED", "EXHAUSTED", "OPPS", "NEXT BEST ACTION"}

func countCells(c demo.Counts) []string {
	return []string{
		strconv.Itoa(c.Accounts),
		strconv.Itoa(c.Leads),
		strconv.Itoa(c.Engaged),
		strconv.Itoa(c.Exhausted),
		strconv.Itoa(c.Opportunities),
		string(c.NextBestAction),
	}
}
