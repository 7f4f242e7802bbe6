package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/itchyny/gojq"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type outputFormat string

const (
	outputTable outputFormat = "table"
	outputJSON  outputFormat = "json"
	outputYAML  outputFormat = "yaml"
)

func getOutputFormat(cmd *cobra.Command) (outputFormat, error) {
	raw, err := cmd.Flags().GetString("output")
	if err != nil {
		return outputTable, nil
	}

	switch format := outputFormat(strings.ToLower(raw)); format {
	case outputTable, outputJSON, outputYAML:
		return format, nil
	case "yml":
		return outputYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q", raw)
	}
}

// render writes value as JSON or YAML when asked to, otherwise calls table.
// A --query expression is applied first; its results replace the table view.
func render(cmd *cobra.Command, value any, table func(out io.Writer) error) error {
	format, err := getOutputFormat(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	expression, _ := cmd.Flags().GetString("query")
	if len(strings.TrimSpace(expression)) > 0 {
		results, err := applyQuery(expression, value)
		if err != nil {
			return err
		}
		return renderResults(out, format, results)
	}

	switch format {
	case outputJSON:
		return writeJSON(out, value)
	case outputYAML:
		return writeYAML(out, value)
	default:
		return table(out)
	}
}

func writeJSON(out io.Writer, value any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

func writeYAML(out io.Writer, value any) error {
	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)
	defer encoder.Close()
	return encoder.Encode(value)
}

// applyQuery runs a jq expression over the JSON form of value and collects
// every result it emits.
func applyQuery(expression string, value any) ([]any, error) {
	query, err := gojq.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("failed to parse query %q: %w", expression, err)
	}

	code, err := gojq.Compile(query)
	if err != nil {
		return nil, fmt.Errorf("failed to compile query %q: %w", expression, err)
	}

	// gojq only understands plain JSON values
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var input any
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, err
	}

	var results []any
	iter := code.Run(input)
	for {
		result, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := result.(error); isErr {
			return nil, fmt.Errorf("query failed: %w", err)
		}
		results = append(results, result)
	}
	return results, nil
}

// renderResults prints query results. The table format prints strings raw
// and everything else as compact JSON, one result per line.
func renderResults(out io.Writer, format outputFormat, results []any) error {
	for _, result := range results {
		var err error
		switch format {
		case outputJSON:
			err = writeJSON(out, result)
		case outputYAML:
			fmt.Fprintln(out, "---")
			err = writeYAML(out, result)
		default:
			if s, ok := result.(string); ok {
				_, err = fmt.Fprintln(out, s)
				break
			}
			var data []byte
			if data, err = json.Marshal(result); err == nil {
				_, err = fmt.Fprintln(out, string(data))
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// field prints an aligned "label: value" line.
func field(out io.Writer, label string, value any) {
	fmt.Fprintf(out, "%-16s %v\n", label+":", value)
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}
