// cmd/tools/score-preview/preview.go
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"benevolence-intake/internal/scoring"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

type previewOptions struct {
	files  []string
	date   string
	asJSON bool
}

func newRootCmd() *cobra.Command {
	opts := &previewOptions{}
	cmd := &cobra.Command{
		Use:   "score-preview [fields.json]",
		Short: "Preview the automatic eligibility score for a set of form answers",
		Long: "Reads a JSON object of form field answers from a file or stdin and prints the " +
			"completeness, financial, crisis and alternatives scores with the recommendation.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd, args, opts)
		},
	}

	cmd.Flags().StringArrayVar(&opts.files, "file", nil, "Uploaded document as field=filename (repeatable)")
	cmd.Flags().StringVar(&opts.date, "date", "", "Evaluation date YYYY-MM-DD (default today)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Print the assessment as JSON")
	return cmd
}

func runPreview(cmd *cobra.Command, args []string, opts *previewOptions) error {
	var in io.Reader = cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open fields file: %w", err)
		}
		defer f.Close()
		in = f
	}

	fields, err := readFields(in)
	if err != nil {
		return err
	}
	files, err := parseFiles(opts.files)
	if err != nil {
		return err
	}

	now := time.Now()
	if opts.date != "" {
		now, err = time.ParseInLocation(dateLayout, opts.date, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --date %q: expected YYYY-MM-DD", opts.date)
		}
	}

	assessment := scoring.EvaluateSubmission(fields, files, now)

	out := cmd.OutOrStdout()
	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(assessment)
	}
	_, err = fmt.Fprintln(out, renderTable(assessment))
	return err
}

// readFields accepts strings, numbers and booleans. Nulls are dropped.
func readFields(r io.Reader) (map[string]string, error) {
	var raw map[string]interface{}
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode fields JSON: %w", err)
	}

	fields := make(map[string]string, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case nil:
		case string:
			fields[k] = val
		case float64:
			fields[k] = strconv.FormatFloat(val, 'f', -1, 64)
		case bool:
			if val {
				fields[k] = "yes"
			} else {
				fields[k] = "no"
			}
		default:
			return nil, fmt.Errorf("field %q: unsupported value %v", k, v)
		}
	}
	return fields, nil
}

func parseFiles(pairs []string) ([]scoring.UploadedFile, error) {
	files := make([]scoring.UploadedFile, 0, len(pairs))
	for _, pair := range pairs {
		field, name, ok := strings.Cut(pair, "=")
		if !ok || field == "" || name == "" {
			return nil, fmt.Errorf("invalid --file %q: expected field=filename", pair)
		}
		files = append(files, scoring.UploadedFile{FieldName: field, Filename: name})
	}
	return files, nil
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func renderTable(a scoring.Assessment) string {
	rows := [][]string{
		{"Completeness", score(a.Completeness.Score, scoring.CompletenessMax), a.Completeness.Detail},
		{"Financial need", score(a.Financial.Score, scoring.FinancialMax), a.Financial.Detail},
		{"Crisis", score(a.Crisis.Score, scoring.CrisisMax), a.Crisis.Detail},
		{"Alternatives", score(a.Alternatives.Score, scoring.AlternativesMax), a.Alternatives.Detail},
		{"Auto score", score(a.Recommendation.AutoScore, scoring.AutoScoreMax), ""},
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Category", "Score", "Detail").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	var sb strings.Builder
	sb.WriteString(t.String())
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Recommendation: %s\n", a.Recommendation.Bracket)
	fmt.Fprintf(&sb, "Estimated range: %d / %d / %d (low / mid / high)\n",
		a.Recommendation.LowEstimate, a.Recommendation.MidEstimate, a.Recommendation.HighEstimate)
	fmt.Fprintf(&sb, "Urgency: %s\n", a.Crisis.UrgencyLabel)
	if len(a.Crisis.SelectedNeeds) > 0 {
		needs := append([]string(nil), a.Crisis.SelectedNeeds...)
		sort.Strings(needs)
		fmt.Fprintf(&sb, "Needs: %s\n", strings.Join(needs, ", "))
	}
	sb.WriteString(a.Recommendation.Guidance)
	return sb.String()
}

func score(got, limit int) string {
	return fmt.Sprintf("%d/%d", got, limit)
}
