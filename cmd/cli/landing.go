package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type feature struct {
	Title       string
	Description string
}

var features = []feature{
	{
		Title:       "Smart Token Reduction",
		Description: "Automatically reduce token usage by up to 45% while maintaining or improving output quality",
	},
	{
		Title:       "Multi-Model Support",
		Description: "Optimize prompts for GPT-4, Claude, Gemini, and custom models with intelligent adaptation",
	},
	{
		Title:       "Cost Calculator",
		Description: "Real-time token counting and cost analysis to optimize your AI spending",
	},
	{
		Title:       "Enterprise Security",
		Description: "SOC 2 compliant with enterprise-grade security and team collaboration features",
	},
	{
		Title:       "Analytics Dashboard",
		Description: "Track performance, ROI, and optimization metrics with detailed insights",
	},
	{
		Title:       "Team Collaboration",
		Description: "Share prompt libraries, templates, and optimization strategies across your team",
	},
}

const cardsPerRow = 3

// landingPage renders the hero, the feature grid and the call to action.
func landingPage(appURL string) string {
	var page strings.Builder

	page.WriteString(badgeStyle.Render("✦ AI-Powered Optimization"))
	page.WriteString("\n\n")
	page.WriteString(heroStyle.Render("Optimize Your AI Prompts"))
	page.WriteString("\n")
	page.WriteString(titleStyle.Render("Save 45%+ on Tokens"))
	page.WriteString("\n")
	page.WriteString(mutedStyle.Render(
		"Build the world's most effective AI prompt optimization platform. Enhance result quality\n" +
			"while aggressively reducing token costs across GPT-4, Claude, and Gemini."))
	page.WriteString("\n\n")

	page.WriteString(headerStyle.Render("Why Choose AI Prompt Optimizer?"))
	page.WriteString("\n")
	page.WriteString(mutedStyle.Render("Advanced features designed to maximize your AI efficiency and ROI"))
	page.WriteString("\n\n")

	for start := 0; start < len(features); start += cardsPerRow {
		end := min(start+cardsPerRow, len(features))

		cards := make([]string, 0, end-start)
		for _, f := range features[start:end] {
			cards = append(cards, cardStyle.Render(
				cardTitleStyle.Render(f.Title)+"\n"+mutedStyle.Render(f.Description),
			))
		}
		page.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
		page.WriteString("\n")
	}

	page.WriteString("\n")
	page.WriteString(headerStyle.Render("Ready to Optimize Your AI Workflow?"))
	page.WriteString("\n")
	page.WriteString(mutedStyle.Render("Join thousands of developers and teams already saving on AI costs"))
	page.WriteString("\n\n")
	page.WriteString(ctaStyle.Render("aipo register"))
	page.WriteString("  Start Free Trial    ")
	page.WriteString(ctaStyle.Render("aipo login"))
	page.WriteString("  Get Started\n\n")

	if len(appURL) > 0 {
		page.WriteString(mutedStyle.Render(fmt.Sprintf("Or open %s in your browser.", appURL)))
		page.WriteString("\n")
	}

	return page.String()
}

func renderLanding(out io.Writer, appURL string) error {
	_, err := fmt.Fprint(out, landingPage(appURL))
	return err
}
