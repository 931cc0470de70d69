package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/datavis/internal/cli/output"
	"github.com/leapstack-labs/datavis/pkg/dataset"
	"github.com/leapstack-labs/datavis/pkg/layout"
)

// ClassifyOutput is the machine-readable result of classify.
type ClassifyOutput struct {
	dataset.Summary `yaml:",inline"`
	Charts          []layout.ChartKind `json:"charts" yaml:"charts"`
}

// NewClassifyCommand creates the classify command.
func NewClassifyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify [file]",
		Short: "Classify a table and show its axis ranges",
		Long: `Read a table, infer its kind (numerical or categorical), dimensionality and
animation tail, and report the computed axis ranges and the chart kinds it
supports.

The table comes from the file argument, or from the source section of
datavis.yaml when no file is given.`,
		Example: `  # Classify a CSV file
  datavis classify sales.csv

  # Classify a query result as JSON
  datavis classify --source-type duckdb --query "SELECT * FROM 'points.parquet'" -o json

  # Force categorical parsing
  datavis classify --kind categorical scores.csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(cmd, args)
		},
	}
	addSourceFlags(cmd)
	return cmd
}

func runClassify(cmd *cobra.Command, args []string) error {
	cmdCtx := NewCommandContext(cmd)
	ds, err := cmdCtx.loadDataset(cmd, args)
	if ds == nil {
		return err
	}

	out := ClassifyOutput{Summary: ds.Summary(), Charts: layout.AvailableKinds(ds)}
	if out.Charts == nil {
		out.Charts = []layout.ChartKind{}
	}

	r := cmdCtx.Renderer
	if ok, rerr := r.Data(out); ok {
		if rerr != nil {
			return rerr
		}
		return err
	}
	renderSummary(r, out)
	return err
}

func renderSummary(r *output.Renderer, out ClassifyOutput) {
	s := out.Summary
	r.Header(1, "Dataset")
	r.KeyValue("Kind", s.Kind)
	if s.Error != "" {
		r.Error(s.Error)
		return
	}
	r.KeyValue("Dimensions", s.Dimensions)
	r.KeyValue("Header", s.HasLabels)
	r.KeyValue("Rows", s.Rows)
	r.KeyValue("Animation tail", s.TailLength)
	r.KeyValue("Charts", joinKinds(out.Charts))
	r.Println()

	r.Header(2, "Ranges")
	rows := [][]string{
		{"x", labelOr(s.Labels.X), formatFloat(s.Ranges.X.Min), formatFloat(s.Ranges.X.Max)},
	}
	if s.Dimensions == 3 {
		rows = append(rows, []string{"y", labelOr(s.Labels.Y), formatFloat(s.Ranges.Y.Min), formatFloat(s.Ranges.Y.Max)})
	}
	rows = append(rows, []string{"z", labelOr(s.Labels.Z), formatFloat(s.Ranges.Z.Min), formatFloat(s.Ranges.Z.Max)})
	if s.Animable {
		rows = append(rows, []string{"z (animated)", labelOr(s.Labels.Z), formatFloat(s.Ranges.ZAnim.Min), formatFloat(s.Ranges.ZAnim.Max)})
	}
	r.Table([]string{"axis", "label", "min", "max"}, rows)
}

func joinKinds(kinds []layout.ChartKind) string {
	if len(kinds) == 0 {
		return "none"
	}
	s := ""
	for i, k := range kinds {
		if i > 0 {
			s += ", "
		}
		s += string(k)
	}
	return s
}

func labelOr(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
