package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/datavis/pkg/source"
)

// NewSourcesCommand creates the sources command.
func NewSourcesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List the available table sources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r := NewCommandContext(cmd).Renderer
			names := source.ListSources()
			if ok, err := r.Data(names); ok {
				return err
			}
			rows := make([][]string, len(names))
			for i, n := range names {
				rows[i] = []string{n}
			}
			r.Table([]string{"source"}, rows)
			return nil
		},
	}
}
