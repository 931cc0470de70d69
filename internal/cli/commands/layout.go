package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/datavis/internal/cli/config"
	"github.com/leapstack-labs/datavis/internal/cli/output"
	"github.com/leapstack-labs/datavis/pkg/core"
	"github.com/leapstack-labs/datavis/pkg/layout"
)

// LayoutOptions holds options for the layout command.
type LayoutOptions struct {
	Set     []string // key=value overrides of the chart options
	Animate bool
}

// NewLayoutCommand creates the layout command.
func NewLayoutCommand() *cobra.Command {
	opts := &LayoutOptions{}
	kinds := make([]string, 0, len(layout.Kinds()))
	for _, k := range layout.Kinds() {
		kinds = append(kinds, string(k))
	}

	cmd := &cobra.Command{
		Use:   "layout <" + strings.Join(kinds, "|") + "> [file]",
		Short: "Compute the layout of a chart",
		Long: `Compute the declarative layout of a chart: primitives, axes, ticks, labels,
mesh data and animation keyframes, ready for a 3D host to realize.

Chart options come from the chart section of datavis.yaml: the shared axis,
color and animation sections, then the section named after the chart kind.
--set overrides single options of the chart kind section using dotted keys.

Use -o json or -o yaml for the complete layout.`,
		Example: `  # Bar chart of a CSV file, full layout as JSON
  datavis layout bar sales.csv -o json

  # Pie chart with a coarser circle
  datavis layout pie shares.csv --set vertex_count=32

  # Animated surface with explicit z steps
  datavis layout surface terrain.csv --animate --set axis.step_z=0.5`,
		Args:      cobra.RangeArgs(1, 2),
		ValidArgs: kinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayout(cmd, args, opts)
		},
	}

	addSourceFlags(cmd)
	cmd.Flags().StringArrayVar(&opts.Set, "set", nil, "Override a chart option (key=value, repeatable)")
	cmd.Flags().BoolVar(&opts.Animate, "animate", false, "Generate animation keyframes from the data tail")
	return cmd
}

func runLayout(cmd *cobra.Command, args []string, opts *LayoutOptions) error {
	kind, err := layout.ParseChartKind(args[0])
	if err != nil {
		return err
	}
	cmdCtx := NewCommandContext(cmd)

	req, err := cmdCtx.Cfg.Request(kind)
	if err != nil {
		return err
	}
	overrides, err := parseSets(opts.Set)
	if err != nil {
		return err
	}
	if opts.Animate {
		overrides["animation"] = mergeSection(overrides["animation"], map[string]any{"animate": true})
	}
	if err := config.DecodeInto(req, overrides); err != nil {
		return core.NewConfigurationError("set", "%v", err)
	}

	// An invalid dataset still goes to the engine, which cancels with the
	// classification error as the reason.
	ds, err := cmdCtx.loadDataset(cmd, args[1:])
	if ds == nil {
		return err
	}

	res := layout.NewEngine(cmdCtx.Logger).Create(cmd.Context(), ds, req)
	r := cmdCtx.Renderer
	if ok, rerr := r.Data(res); ok {
		if rerr != nil {
			return rerr
		}
	} else {
		renderResult(r, res)
	}
	if !res.Finished() {
		return fmt.Errorf("%s chart cancelled: %w", kind, res.Err)
	}
	return nil
}

// parseSets converts key=value pairs into a nested map. Comma separated
// values become lists.
func parseSets(sets []string) (map[string]any, error) {
	out := make(map[string]any)
	for _, s := range sets {
		key, value, ok := strings.Cut(s, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, core.NewConfigurationError("set", "expected key=value, got %q", s)
		}

		var v any = value
		if strings.Contains(value, ",") {
			parts := strings.Split(value, ",")
			list := make([]any, len(parts))
			for i, p := range parts {
				list[i] = strings.TrimSpace(p)
			}
			v = list
		}

		path := strings.Split(key, ".")
		m := out
		for _, p := range path[:len(path)-1] {
			next, ok := m[p].(map[string]any)
			if !ok {
				next = make(map[string]any)
				m[p] = next
			}
			m = next
		}
		m[path[len(path)-1]] = v
	}
	return out, nil
}

func mergeSection(existing any, add map[string]any) map[string]any {
	m, ok := existing.(map[string]any)
	if !ok {
		m = make(map[string]any)
	}
	for k, v := range add {
		m[k] = v
	}
	return m
}

func renderResult(r *output.Renderer, res layout.Result) {
	for _, w := range res.Warnings {
		r.Warning(w.Reason)
	}
	if !res.Finished() {
		r.Error("cancelled: " + res.Reason)
		return
	}

	spec := res.Spec
	r.Header(1, fmt.Sprintf("%s chart", spec.Kind))
	r.KeyValue("ID", spec.ID)
	r.KeyValue("Dimensions", spec.Dimensions)
	r.KeyValue("Value range", fmt.Sprintf("%s .. %s", formatFloat(spec.ValueRange[0]), formatFloat(spec.ValueRange[1])))
	if len(spec.Vertices) > 0 {
		r.KeyValue("Mesh", fmt.Sprintf("%d vertices, %d edges, %d faces", len(spec.Vertices), len(spec.Edges), len(spec.Faces)))
	}
	if len(spec.ShapeKeys) > 0 {
		r.KeyValue("Shape keys", len(spec.ShapeKeys))
	}
	if len(spec.Keyframes) > 0 {
		r.KeyValue("Keyframes", len(spec.Keyframes))
	}
	r.Println()

	if len(spec.Primitives) > 0 {
		r.Header(2, "Primitives")
		rows := make([][]string, len(spec.Primitives))
		for i, p := range spec.Primitives {
			rows[i] = []string{
				fmt.Sprint(i),
				string(p.Kind),
				p.Name,
				formatVec(p.Transform.Location),
				formatVec(p.Transform.Scale),
				formatFloat(p.MaterialValue),
				p.Color,
			}
		}
		r.Table([]string{"#", "kind", "name", "location", "scale", "value", "color"}, rows)
		r.Println()
	}

	if len(spec.Axes) > 0 {
		r.Header(2, "Axes")
		rows := make([][]string, len(spec.Axes))
		for i, a := range spec.Axes {
			title := "-"
			if a.Title != nil {
				title = a.Title.Text
			}
			ticks := make([]string, len(a.Ticks))
			for j, t := range a.Ticks {
				ticks[j] = t.Label
			}
			rows[i] = []string{a.Direction.String(), title, formatFloat(a.Line.Length()), strings.Join(ticks, " ")}
		}
		r.Table([]string{"direction", "title", "length", "ticks"}, rows)
	}
}

func formatVec(v core.Vec3) string {
	return fmt.Sprintf("(%s, %s, %s)", formatFloat(v[0]), formatFloat(v[1]), formatFloat(v[2]))
}
