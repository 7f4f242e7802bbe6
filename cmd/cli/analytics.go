package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"
)

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Show usage and savings",
}

var analyticsDashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Summary of optimizations and savings",
	Args:  cobra.NoArgs,
	RunE: protected(func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")

		ctx, cancel := commandContext(cmd)
		defer cancel()

		summary, err := api.Dashboard(ctx, days)
		if err != nil {
			return err
		}

		return render(cmd, summary, func(out io.Writer) error {
			fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("Last %d days", days)))
			field(out, "Optimizations", summary.TotalOptimizations)
			field(out, "Tokens saved", summary.TotalTokensSaved)
			field(out, "Cost savings", fmt.Sprintf("$%.2f", summary.TotalCostSavings))
			field(out, "Avg reduction", fmt.Sprintf("%.1f%%", summary.AverageTokenReduction))
			field(out, "Avg quality", fmt.Sprintf("%.1f/10", summary.AverageQualityScore))

			printCounts(out, "By model", summary.ModelUsage)
			printCounts(out, "By type", summary.OptimizationTypeUsage)

			if len(summary.DailyStats) > 0 {
				fmt.Fprintln(out)
				fmt.Fprintln(out, headerStyle.Render("Daily"))
				for _, day := range summary.DailyStats {
					fmt.Fprintf(out, "  %s  %4d optimizations  %7d tokens  $%.2f\n",
						day.Date, day.Optimizations, day.TokensSaved, day.CostSavings)
				}
			}
			return nil
		})
	}),
}

var analyticsUsageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Plan limits and what is left this month",
	Args:  cobra.NoArgs,
	RunE: protected(func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		usage, err := api.Usage(ctx)
		if err != nil {
			return err
		}

		return render(cmd, usage, func(out io.Writer) error {
			fmt.Fprintln(out, titleStyle.Render("Usage this month"))
			field(out, "Plan", tierStyle.Render(string(usage.SubscriptionTier)))
			field(out, "Optimizations", fmt.Sprintf("%d of %d used, %d left",
				usage.OptimizationsUsed, usage.MonthlyOptimizations, usage.OptimizationsRemaining))
			field(out, "Tokens", fmt.Sprintf("%d of %d used, %d left",
				usage.TokensUsed, usage.MonthlyTokens, usage.TokensRemaining))
			return nil
		})
	}),
}

var analyticsPerformanceCmd = &cobra.Command{
	Use:   "performance",
	Short: "Success rate and processing times",
	Args:  cobra.NoArgs,
	RunE: protected(func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")

		ctx, cancel := commandContext(cmd)
		defer cancel()

		metrics, err := api.Performance(ctx, days)
		if err != nil {
			return err
		}

		return render(cmd, metrics, func(out io.Writer) error {
			fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("Performance, last %d days", days)))
			field(out, "Success rate", fmt.Sprintf("%.1f%%", metrics.SuccessRate))
			field(out, "Avg time", fmt.Sprintf("%.2fs", metrics.AverageProcessingTime))
			field(out, "Quality points", len(metrics.QualityTrend))
			field(out, "Efficiency pts", len(metrics.EfficiencyTrend))
			return nil
		})
	}),
}

func printCounts(out io.Writer, title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}

	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fmt.Fprintln(out)
	fmt.Fprintln(out, headerStyle.Render(title))
	for _, key := range keys {
		fmt.Fprintf(out, "  %-24s %d\n", key, counts[key])
	}
}

func init() {
	analyticsDashboardCmd.Flags().Int("days", 30, "Days to include")
	analyticsPerformanceCmd.Flags().Int("days", 30, "Days to include")

	analyticsCmd.AddCommand(analyticsDashboardCmd, analyticsUsageCmd, analyticsPerformanceCmd)
	rootCmd.AddCommand(analyticsCmd)
}
