package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aipo-io/cli/internal/models"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var promptsCmd = &cobra.Command{
	Use:     "prompts",
	Aliases: []string{"prompt"},
	Short:   "Manage your prompt library",
}

var promptsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your prompts",
	Args:  cobra.NoArgs,
	RunE: protected(func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		list, err := api.ListPrompts(ctx, listOptions(cmd))
		if err != nil {
			return err
		}

		return render(cmd, list, func(out io.Writer) error {
			if len(list.Prompts) == 0 {
				fmt.Fprintln(out, infoStyle.Render("No prompts found. Create one with 'aipo prompts create'."))
				return nil
			}

			fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("Prompts (%d of %d)", len(list.Prompts), list.Total)))
			for _, prompt := range list.Prompts {
				fmt.Fprintf(out, "  %-8s %-12s %s\n",
					prompt.ID, string(prompt.Status), truncate(prompt.GetTitle(), 60))
			}
			return nil
		})
	}),
}

var promptsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a prompt",
	Args:  cobra.ExactArgs(1),
	RunE: protected(func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		prompt, err := api.GetPrompt(ctx, args[0])
		if err != nil {
			return err
		}

		return render(cmd, prompt, func(out io.Writer) error {
			printPrompt(out, prompt)
			return nil
		})
	}),
}

var promptsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Save a new prompt",
	Long: `Save a new prompt to your library. The prompt text is taken from
--text, from --file (use - for stdin) or asked for interactively.

Example:
  aipo prompts create --title "Summarise" --file prompt.txt`,
	Args: cobra.NoArgs,
	RunE: protected(func(cmd *cobra.Command, args []string) error {
		text, err := promptText(cmd, true)
		if err != nil {
			return err
		}

		title, _ := cmd.Flags().GetString("title")
		description, _ := cmd.Flags().GetString("description")
		category, _ := cmd.Flags().GetString("category")
		promptType, _ := cmd.Flags().GetString("type")
		tags, _ := cmd.Flags().GetStringSlice("tags")

		ctx, cancel := commandContext(cmd)
		defer cancel()

		prompt, err := api.CreatePrompt(ctx, models.PromptCreate{
			OriginalPrompt: text,
			Title:          title,
			Description:    description,
			Category:       category,
			PromptType:     promptType,
			Tags:           tags,
		})
		if err != nil {
			return err
		}

		notifier.Success(fmt.Sprintf("Prompt %s saved.", prompt.ID))
		return render(cmd, prompt, func(out io.Writer) error {
			printPrompt(out, prompt)
			return nil
		})
	}),
}

var promptsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change a prompt",
	Args:  cobra.ExactArgs(1),
	RunE: protected(func(cmd *cobra.Command, args []string) error {
		var update models.PromptUpdate

		if cmd.Flags().Changed("text") || cmd.Flags().Changed("file") {
			text, err := promptText(cmd, false)
			if err != nil {
				return err
			}
			update.OriginalPrompt = &text
		}
		if cmd.Flags().Changed("title") {
			title, _ := cmd.Flags().GetString("title")
			update.Title = &title
		}
		if cmd.Flags().Changed("description") {
			description, _ := cmd.Flags().GetString("description")
			update.Description = &description
		}
		if cmd.Flags().Changed("category") {
			category, _ := cmd.Flags().GetString("category")
			update.Category = &category
		}
		if cmd.Flags().Changed("status") {
			raw, _ := cmd.Flags().GetString("status")
			status := models.PromptStatus(raw)
			update.Status = &status
		}
		if cmd.Flags().Changed("tags") {
			update.Tags, _ = cmd.Flags().GetStringSlice("tags")
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		prompt, err := api.UpdatePrompt(ctx, args[0], update)
		if err != nil {
			return err
		}

		notifier.Success(fmt.Sprintf("Prompt %s updated.", prompt.ID))
		return render(cmd, prompt, func(out io.Writer) error {
			printPrompt(out, prompt)
			return nil
		})
	}),
}

var promptsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a prompt",
	Args:  cobra.ExactArgs(1),
	RunE: protected(func(cmd *cobra.Command, args []string) error {
		if ok, err := confirmDelete(cmd, "prompt", args[0]); err != nil || !ok {
			return err
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		if err := api.DeletePrompt(ctx, args[0]); err != nil {
			return err
		}

		notifier.Success(fmt.Sprintf("Prompt %s deleted.", args[0]))
		return nil
	}),
}

func printPrompt(out io.Writer, prompt *models.Prompt) {
	fmt.Fprintln(out, headerStyle.Render(prompt.GetTitle()))
	field(out, "ID", prompt.ID)
	field(out, "Status", prompt.Status)
	if prompt.Category != nil {
		field(out, "Category", *prompt.Category)
	}
	if len(prompt.Tags) > 0 {
		field(out, "Tags", strings.Join(prompt.Tags, ", "))
	}
	if prompt.OriginalTokens != nil {
		field(out, "Tokens", *prompt.OriginalTokens)
	}
	if prompt.TokenReductionPercentage != nil {
		field(out, "Reduction", fmt.Sprintf("%.1f%%", *prompt.TokenReductionPercentage))
	}
	if prompt.OverallQualityScore != nil {
		field(out, "Quality", fmt.Sprintf("%.1f/10", *prompt.OverallQualityScore))
	}
	field(out, "Created", prompt.CreatedAt.Local().Format("2006-01-02 15:04"))

	fmt.Fprintln(out)
	fmt.Fprintln(out, prompt.OriginalPrompt)

	if optimized := deref(prompt.OptimizedPrompt); len(optimized) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, successStyle.Render("Optimized"))
		fmt.Fprintln(out, optimized)
	}
}

// promptText reads the prompt body from --text, --file or an editor form.
func promptText(cmd *cobra.Command, ask bool) (string, error) {
	if text, _ := cmd.Flags().GetString("text"); len(text) > 0 {
		return text, nil
	}

	if file, _ := cmd.Flags().GetString("file"); len(file) > 0 {
		var data []byte
		var err error
		if file == "-" {
			data, err = io.ReadAll(cmd.InOrStdin())
		} else {
			data, err = os.ReadFile(file)
		}
		if err != nil {
			return "", fmt.Errorf("failed to read prompt: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}

	if !ask || !isInteractive() {
		return "", fmt.Errorf("prompt text is required: use --text or --file")
	}

	var text string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Prompt").
				CharLimit(models.MaxPromptLength).
				Value(&text).
				Validate(required("prompt")),
		),
	)
	if err := form.Run(); err != nil {
		return "", fmt.Errorf("cancelled: %w", err)
	}

	return strings.TrimSpace(text), nil
}

func confirmDelete(cmd *cobra.Command, kind string, id string) (bool, error) {
	if yes, _ := cmd.Flags().GetBool("yes"); yes || !isInteractive() {
		return true, nil
	}

	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %s %s?", kind, id)).
				Description("This cannot be undone.").
				Value(&confirmed),
		),
	)
	if err := form.Run(); err != nil {
		return false, fmt.Errorf("delete cancelled: %w", err)
	}
	return confirmed, nil
}

func listOptions(cmd *cobra.Command) models.ListOptions {
	page, _ := cmd.Flags().GetInt("page")
	limit, _ := cmd.Flags().GetInt("limit")
	category, _ := cmd.Flags().GetString("category")
	search, _ := cmd.Flags().GetString("search")

	return models.ListOptions{
		Page:     page,
		Limit:    limit,
		Category: category,
		Search:   search,
	}
}

func addListFlags(cmd *cobra.Command) {
	cmd.Flags().Int("page", 1, "Page number")
	cmd.Flags().Int("limit", 20, "Items per page")
	cmd.Flags().String("category", "", "Only show this category")
	cmd.Flags().String("search", "", "Search text")
}

func addPromptFlags(cmd *cobra.Command) {
	cmd.Flags().String("text", "", "Prompt text")
	cmd.Flags().StringP("file", "f", "", "Read the prompt text from a file, - for stdin")
	cmd.Flags().String("title", "", "Title")
	cmd.Flags().String("description", "", "Description")
	cmd.Flags().String("category", "", "Category")
	cmd.Flags().StringSlice("tags", nil, "Comma separated tags")
}

func init() {
	addListFlags(promptsListCmd)

	addPromptFlags(promptsCreateCmd)
	promptsCreateCmd.Flags().String("type", "", "Prompt type, e.g. chat or completion")

	addPromptFlags(promptsUpdateCmd)
	promptsUpdateCmd.Flags().String("status", "", "Status: draft, optimizing, completed or failed")

	promptsDeleteCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")

	promptsCmd.AddCommand(promptsListCmd, promptsGetCmd, promptsCreateCmd, promptsUpdateCmd, promptsDeleteCmd)
	rootCmd.AddCommand(promptsCmd)
}
