package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/aipo-io/cli/internal/models"
	"github.com/spf13/cobra"
)

var templatesCmd = &cobra.Command{
	Use:     "templates",
	Aliases: []string{"template"},
	Short:   "Browse the prompt template library",
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List templates",
	Args:  cobra.NoArgs,
	RunE: protected(func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		list, err := api.ListTemplates(ctx, listOptions(cmd))
		if err != nil {
			return err
		}

		return render(cmd, list, func(out io.Writer) error {
			if len(list.Templates) == 0 {
				fmt.Fprintln(out, infoStyle.Render("No templates found."))
				return nil
			}

			fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("Templates (%d of %d)", len(list.Templates), list.Total)))
			for _, t := range list.Templates {
				featured := " "
				if t.IsFeatured {
					featured = "★"
				}
				fmt.Fprintf(out, "  %s %-8s %-16s %-40s %.1f (%d)\n",
					featured, t.ID, truncate(t.Category, 16), truncate(t.Name, 40), t.AverageRating, t.RatingCount)
			}
			return nil
		})
	}),
}

var templatesGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a template",
	Args:  cobra.ExactArgs(1),
	RunE: protected(func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		template, err := api.GetTemplate(ctx, args[0])
		if err != nil {
			return err
		}

		return render(cmd, template, func(out io.Writer) error {
			printTemplate(out, template)
			return nil
		})
	}),
}

func printTemplate(out io.Writer, t *models.Template) {
	fmt.Fprintln(out, headerStyle.Render(t.Name))
	field(out, "ID", t.ID)
	field(out, "Category", t.Category)
	if industry := deref(t.Industry); len(industry) > 0 {
		field(out, "Industry", industry)
	}
	if len(t.DifficultyLevel) > 0 {
		field(out, "Difficulty", t.DifficultyLevel)
	}
	if len(t.Tags) > 0 {
		field(out, "Tags", strings.Join(t.Tags, ", "))
	}
	field(out, "Rating", fmt.Sprintf("%.1f from %d ratings", t.AverageRating, t.RatingCount))
	field(out, "Used", fmt.Sprintf("%d times", t.UsageCount))
	if t.EstimatedTokens != nil {
		field(out, "Est. tokens", *t.EstimatedTokens)
	}
	if description := deref(t.Description); len(description) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, mutedStyle.Render(description))
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, t.TemplateContent)
}

func init() {
	addListFlags(templatesListCmd)
	templatesCmd.AddCommand(templatesListCmd, templatesGetCmd)
	rootCmd.AddCommand(templatesCmd)
}
