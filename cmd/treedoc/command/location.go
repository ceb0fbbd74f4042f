package command

import (
	"github.com/spf13/cobra"

	"github.com/treejer/ranger/backend/internal/domain"
	"github.com/treejer/ranger/backend/internal/treedoc"
)

type locationPolicy struct {
	CanUpdate bool `json:"canUpdate"`
}

func newCanUpdateLocationCmd() *cobra.Command {
	var (
		journeyPath string
		nursery     bool
	)
	cmd := &cobra.Command{
		Use:   "can-update-location",
		Short: "Report whether a visit may overwrite the tree's location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var j domain.Journey
			if err := readFile(journeyPath, &j); err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), locationPolicy{
				CanUpdate: treedoc.CanUpdateTreeLocation(j, nursery),
			})
		},
	}
	cmd.Flags().StringVar(&journeyPath, "journey", "", "journey file (YAML or JSON)")
	cmd.Flags().BoolVar(&nursery, "nursery", false, "treat the tree as a nursery")
	_ = cmd.MarkFlagRequired("journey")
	return cmd
}
