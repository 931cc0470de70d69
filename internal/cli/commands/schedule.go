package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/datavis/pkg/anim"
	"github.com/leapstack-labs/datavis/pkg/core"
)

// ColumnScheduleOutput is the machine-readable result of schedule columns.
type ColumnScheduleOutput struct {
	TailLength int             `json:"tail_length" yaml:"tail_length"`
	Steps      []anim.Step     `json:"steps" yaml:"steps"`
	Keyframes  []core.Keyframe `json:"keyframes" yaml:"keyframes"`
}

// NewScheduleCommand creates the schedule command group.
func NewScheduleCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Build animation keyframe schedules",
		Long: `Build keyframe schedules for a 3D host: discrete shape-key crossfades over
the animation tail of a table, or two-key parameter tweens.`,
	}
	cmd.AddCommand(newScheduleColumnsCommand())
	cmd.AddCommand(newScheduleTweenCommand())
	return cmd
}

func newScheduleColumnsCommand() *cobra.Command {
	opts := anim.ColumnOptions{KeySpacing: 20, StartFrame: 1, EndIndex: -1}
	var prefix string
	var tail int

	cmd := &cobra.Command{
		Use:   "columns [file]",
		Short: "Schedule one shape key per animation tail column",
		Long: `Assign every animation tail column of a table its own frame. At each frame the
column's shape key has weight 1 and every other key weight 0, with constant
interpolation so columns switch discretely.

--tail builds the schedule for a tail length without reading a table.`,
		Example: `  # Schedule the tail columns of a table
  datavis schedule columns quarterly.csv

  # Three columns, 20 frames apart, starting at frame 0
  datavis schedule columns --tail 3 --start-frame 0 -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContext(cmd)
			if tail <= 0 {
				ds, err := cmdCtx.loadDataset(cmd, args)
				if err != nil {
					return err
				}
				if !ds.Animable() {
					return core.NewInvalidDataError("table has no animation tail")
				}
				tail = ds.TailLength()
			}

			steps, err := anim.BuildColumnSchedule(tail, opts)
			if err != nil {
				return err
			}
			out := ColumnScheduleOutput{
				TailLength: tail,
				Steps:      steps,
				Keyframes:  anim.ColumnKeyframes(steps, prefix),
			}

			r := cmdCtx.Renderer
			if ok, err := r.Data(out); ok {
				return err
			}
			r.Header(1, fmt.Sprintf("Column schedule (%d keys)", tail))
			rows := make([][]string, len(steps))
			for i, s := range steps {
				weights := make([]string, len(s.Weights))
				for j, w := range s.Weights {
					weights[j] = formatFloat(w)
				}
				rows[i] = []string{fmt.Sprint(s.Frame), anim.ShapeKeyTarget(prefix, s.Active), strings.Join(weights, " ")}
			}
			r.Table([]string{"frame", "active", "weights"}, rows)
			return nil
		},
	}

	addSourceFlags(cmd)
	f := cmd.Flags()
	f.IntVar(&tail, "tail", 0, "Animation tail length (skips reading a table)")
	f.IntVar(&opts.KeySpacing, "key-spacing", opts.KeySpacing, "Frames between keys")
	f.IntVar(&opts.StartFrame, "start-frame", opts.StartFrame, "Frame of the first key")
	f.IntVar(&opts.StartIndex, "start-index", opts.StartIndex, "First tail column to animate")
	f.IntVar(&opts.EndIndex, "end-index", opts.EndIndex, "Last tail column to animate (-1 for the last)")
	f.StringVar(&prefix, "prefix", anim.DefaultShapeKeyPrefix, "Target prefix of shape-key weights")
	return cmd
}

func newScheduleTweenCommand() *cobra.Command {
	opts := anim.TweenOptions{Duration: 20, StartFrame: 1, End: 1, Interpolation: core.InterpolationLinear}
	var interp string

	cmd := &cobra.Command{
		Use:   "tween <param>",
		Short: "Build a two-key parameter tween",
		Long: `Key a parameter at a start and an end frame. Interpolation is LINEAR, CUBIC
or BOUNCE; --reverse swaps the start and end values.`,
		Example: `  # Grow a chart from flat to full height over 40 frames
  datavis schedule tween scale.z --start 0 --end 1 --duration 40 --interpolation bounce`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Param = args[0]
			if interp != "" {
				if err := opts.Interpolation.UnmarshalText([]byte(interp)); err != nil {
					return err
				}
			}
			keys, err := anim.Tween(opts)
			if err != nil {
				return err
			}

			r := NewCommandContext(cmd).Renderer
			if ok, err := r.Data(keys); ok {
				return err
			}
			rows := make([][]string, len(keys))
			for i, k := range keys {
				rows[i] = []string{fmt.Sprint(k.Frame), k.Target, fmt.Sprint(k.Value), k.Interpolation.String()}
			}
			r.Table([]string{"frame", "target", "value", "interpolation"}, rows)
			return nil
		},
	}

	f := cmd.Flags()
	f.Float64Var(&opts.Start, "start", 0, "Value at the first key")
	f.Float64Var(&opts.End, "end", opts.End, "Value at the second key")
	f.IntVar(&opts.StartFrame, "start-frame", opts.StartFrame, "Frame of the first key")
	f.IntVar(&opts.Duration, "duration", opts.Duration, "Frames between the keys")
	f.StringVar(&interp, "interpolation", "", "Interpolation (linear|cubic|bounce)")
	f.BoolVar(&opts.Reverse, "reverse", false, "Swap the start and end values")
	return cmd
}
