package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/aipo-io/cli/internal/models"
	"github.com/spf13/cobra"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize [prompt-id]",
	Short: "Optimize a prompt",
	Long: `Runs an optimization on a saved prompt or on text given with --text
or --file.

Example:
  aipo optimize 42 --type token_reduction --reduction-target 0.4
  echo "Explain ..." | aipo optimize --file - --target-model gpt-4`,
	Args: cobra.MaximumNArgs(1),
	RunE: protected(runOptimize),
}

func runOptimize(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	request := models.OptimizationRequest{}

	optimizationType, _ := cmd.Flags().GetString("type")
	request.OptimizationType = models.OptimizationType(optimizationType)
	request.TargetModel, _ = cmd.Flags().GetString("target-model")

	if cmd.Flags().Changed("reduction-target") {
		target, _ := cmd.Flags().GetFloat64("reduction-target")
		request.ReductionTarget = &target
	}
	if cmd.Flags().Changed("quality-threshold") {
		threshold, _ := cmd.Flags().GetFloat64("quality-threshold")
		request.QualityThreshold = &threshold
	}

	if len(args) == 1 {
		prompt, err := api.GetPrompt(ctx, args[0])
		if err != nil {
			return err
		}
		request.PromptID = &prompt.ID
		request.OriginalPrompt = prompt.OriginalPrompt
	} else {
		text, err := promptText(cmd, true)
		if err != nil {
			return err
		}
		request.OriginalPrompt = text
	}

	optimization, err := api.CreateOptimization(ctx, request)
	if err != nil {
		return err
	}

	notifier.Success(fmt.Sprintf("Saved %d tokens (%.1f%%).",
		optimization.TokenReduction, optimization.TokenReductionPercentage))

	return render(cmd, optimization, func(out io.Writer) error {
		printOptimization(out, optimization)
		return nil
	})
}

var optimizationsCmd = &cobra.Command{
	Use:   "optimizations",
	Short: "Browse past optimizations",
}

var optimizationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List optimizations",
	Args:  cobra.NoArgs,
	RunE: protected(func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		optimizations, err := api.ListOptimizations(ctx, listOptions(cmd))
		if err != nil {
			return err
		}

		return render(cmd, optimizations, func(out io.Writer) error {
			if len(optimizations) == 0 {
				fmt.Fprintln(out, infoStyle.Render("No optimizations yet. Try 'aipo optimize'."))
				return nil
			}

			fmt.Fprintln(out, headerStyle.Render("Optimizations"))
			for _, o := range optimizations {
				fmt.Fprintf(out, "  %-8s %-20s %-14s %6.1f%%  %s\n",
					o.ID, o.OptimizationType, o.ModelUsed, o.TokenReductionPercentage,
					o.CreatedAt.Local().Format("2006-01-02"))
			}
			return nil
		})
	}),
}

var optimizationsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show an optimization",
	Args:  cobra.ExactArgs(1),
	RunE: protected(func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		optimization, err := api.GetOptimization(ctx, args[0])
		if err != nil {
			return err
		}

		return render(cmd, optimization, func(out io.Writer) error {
			printOptimization(out, optimization)
			return nil
		})
	}),
}

var optimizationsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an optimization",
	Args:  cobra.ExactArgs(1),
	RunE: protected(func(cmd *cobra.Command, args []string) error {
		if ok, err := confirmDelete(cmd, "optimization", args[0]); err != nil || !ok {
			return err
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		if err := api.DeleteOptimization(ctx, args[0]); err != nil {
			return err
		}

		notifier.Success(fmt.Sprintf("Optimization %s deleted.", args[0]))
		return nil
	}),
}

func printOptimization(out io.Writer, o *models.Optimization) {
	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("Optimization %s", o.ID)))
	field(out, "Type", o.OptimizationType)
	field(out, "Model", o.ModelUsed)
	field(out, "Tokens", fmt.Sprintf("%d → %d (-%d, %.1f%%)",
		o.OriginalTokens, o.OptimizedTokens, o.TokenReduction, o.TokenReductionPercentage))
	if o.QualityScore != nil {
		field(out, "Quality", fmt.Sprintf("%.1f/10", *o.QualityScore))
	}
	if o.CostSavings != nil {
		field(out, "Cost savings", fmt.Sprintf("$%.4f", *o.CostSavings))
	}
	if o.ProcessingTime != nil {
		field(out, "Took", fmt.Sprintf("%.2fs", *o.ProcessingTime))
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, successStyle.Render("Optimized prompt"))
	fmt.Fprintln(out, o.OptimizedPrompt)
}

func optimizationTypeNames() string {
	names := make([]string, 0, len(models.OptimizationTypes))
	for _, t := range models.OptimizationTypes {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}

func init() {
	optimizeCmd.Flags().String("text", "", "Prompt text")
	optimizeCmd.Flags().StringP("file", "f", "", "Read the prompt text from a file, - for stdin")
	optimizeCmd.Flags().String("type", string(models.OptimizationTypeTokenReduction),
		"Optimization type: "+optimizationTypeNames())
	optimizeCmd.Flags().String("target-model", "", "Model to optimize for, e.g. gpt-4, claude-3, gemini-pro")
	optimizeCmd.Flags().Float64("reduction-target", 0.3, "Target token reduction, 0.1 to 0.9")
	optimizeCmd.Flags().Float64("quality-threshold", 8.0, "Minimum quality score, 1 to 10")
	rootCmd.AddCommand(optimizeCmd)

	addListFlags(optimizationsListCmd)
	optimizationsDeleteCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
	optimizationsCmd.AddCommand(optimizationsListCmd, optimizationsGetCmd, optimizationsDeleteCmd)
	rootCmd.AddCommand(optimizationsCmd)
}
