package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"intentrouter/classification"
	"intentrouter/evaluation"
)

func messageFromArgs(args []string) string {
	return strings.Join(args, " ")
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func newClassifyCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "classify [message...]",
		Short: "Print the intent of a message",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := opts.loadRouter(cmd)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), r.Classify(messageFromArgs(args)))
			return err
		},
	}
}

func newExtractCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "extract [message...]",
		Short: "Print entities of a message as JSON",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := opts.loadRouter(cmd)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), r.Extract(messageFromArgs(args)))
		},
	}
}

func newRouteCmd(opts *options) *cobra.Command {
	var trace bool

	cmd := &cobra.Command{
		Use:   "route [message...]",
		Short: "Prefilter, classify and extract in one call, print JSON",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := opts.loadRouter(cmd)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), r.Route(messageFromArgs(args), trace))
		},
	}
	cmd.Flags().BoolVar(&trace, "trace", false, "include the decision trace")
	return cmd
}

func newCheckRulesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check-rules",
		Short: "Load and build the rule table, report every configuration error",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := opts.loadRouter(cmd)
			if err != nil {
				return fmt.Errorf("rules check failed: %w", err)
			}

			t := r.Table()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, successStyle.Render("✓ Rules OK"))
			fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("source: %s, version: %d, rules: %d, ignore words: %d",
				rulesSource(opts.rulesPath), t.Version(), len(t.Rules()), t.Ignore().Len())))

			tbl := newTable("#", "Intent", "Priority", "Triggers", "Requires")
			for _, rule := range t.Rules() {
				tbl.Row(
					strconv.Itoa(rule.Index),
					string(rule.Spec.Intent),
					strconv.Itoa(rule.Spec.Priority),
					strconv.Itoa(len(rule.Spec.Keywords)+len(rule.Spec.Phrases)+len(rule.Spec.Patterns)),
					gates(rule.Spec),
				)
			}
			_, err = fmt.Fprintln(out, tbl.Render())
			return err
		},
	}
}

func gates(spec classification.RuleSpec) string {
	var parts []string
	if spec.RequiresNumber {
		parts = append(parts, "number")
	}
	if spec.RequiresReference {
		parts = append(parts, "reference")
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}

func rulesSource(path string) string {
	if path == "" {
		return "builtin"
	}
	return path
}

func newDumpRulesCmd(opts *options) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "dump-rules",
		Short: "Print the rule definition in yaml, json or toml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			def := classification.DefaultDefinition()
			if opts.rulesPath != "" {
				loaded, err := classification.LoadDefinition(opts.rulesPath)
				if err != nil {
					return err
				}
				def = loaded
			}
			return classification.EncodeDefinition(cmd.OutOrStdout(), def, strings.ToLower(format))
		},
	}
	cmd.Flags().StringVar(&format, "format", classification.FormatYAML, "output format: yaml, json or toml")
	return cmd
}

func newEvalCmd(opts *options) *cobra.Command {
	var (
		input       string
		output      string
		minAccuracy float64
	)

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Measure accuracy on a labeled corpus",
		Long: `eval классифицирует размеченный корпус (CSV или XLSX: текст, намерение) и печатает метрики.
Без --input используется встроенный регрессионный корпус.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := opts.loadRouter(cmd)
			if err != nil {
				return err
			}

			samples := evaluation.DefaultSamples()
			if input != "" {
				if samples, err = evaluation.LoadSamples(input); err != nil {
					return err
				}
			}

			report := evaluation.Evaluate(r, samples)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, titleStyle.Render("Evaluation"))
			fmt.Fprint(out, report.String())

			if len(report.Mismatches) > 0 {
				tbl := newTable("Text", "Expected", "Got")
				for _, m := range report.Mismatches {
					tbl.Row(m.Text, string(m.Expected), string(m.Got))
				}
				fmt.Fprintln(out, tbl.Render())
			}

			if output != "" {
				if err := evaluation.ExportXLSX(report, output); err != nil {
					return err
				}
				fmt.Fprintln(out, successStyle.Render("✓ Report saved: "+output))
			}

			if minAccuracy > 0 && report.Accuracy < minAccuracy {
				return fmt.Errorf("accuracy %.4f is below threshold %.4f", report.Accuracy, minAccuracy)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "labeled corpus (.csv or .xlsx)")
	cmd.Flags().StringVar(&output, "output", "", "save the report to an .xlsx file")
	cmd.Flags().Float64Var(&minAccuracy, "min-accuracy", 0, "fail when accuracy is below this value")
	return cmd
}
