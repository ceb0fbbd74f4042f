package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/treejer/ranger/backend/internal/domain"
	"github.com/treejer/ranger/backend/internal/treedoc"
)

type assembleFlags struct {
	journey string
	tree    string
	hash    string
	base    string
	now     int64
}

var assembleShort = map[domain.SubmissionKind]string{
	domain.SubmissionNew:      "Build the document for a newly registered tree",
	domain.SubmissionUpdate:   "Build the document for a visit to an existing tree",
	domain.SubmissionAssigned: "Build the document for planting an assigned tree",
}

func newAssembleCmd(kind domain.SubmissionKind) *cobra.Command {
	var f assembleFlags
	cmd := &cobra.Command{
		Use:   string(kind),
		Short: assembleShort[kind],
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := assemble(kind, f)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), doc)
		},
	}
	cmd.Flags().StringVar(&f.journey, "journey", "", "journey file (YAML or JSON)")
	cmd.Flags().StringVar(&f.hash, "hash", "", "IPFS hash of the visit photo")
	cmd.Flags().StringVar(&f.base, "base", defaultGateway, "gateway base for photo URLs")
	cmd.Flags().Int64Var(&f.now, "now", 0, "Unix time to stamp the update with (default: current time)")
	_ = cmd.MarkFlagRequired("journey")
	_ = cmd.MarkFlagRequired("hash")
	if kind != domain.SubmissionNew {
		cmd.Flags().StringVar(&f.tree, "tree", "", "prior tree spec file; defaults to the journey's tree")
	}
	return cmd
}

func assemble(kind domain.SubmissionKind, f assembleFlags) (domain.Document, error) {
	var j domain.Journey
	if err := readFile(f.journey, &j); err != nil {
		return domain.Document{}, err
	}
	prior := j.Tree
	if f.tree != "" {
		prior = &domain.TreeSpec{}
		if err := readFile(f.tree, prior); err != nil {
			return domain.Document{}, err
		}
	}

	a := treedoc.New(treedoc.WithClock(clockAt(f.now)))
	var (
		doc domain.Document
		err error
	)
	switch kind {
	case domain.SubmissionNew:
		doc, err = a.NewTree(f.base, f.hash, j)
	case domain.SubmissionUpdate:
		doc, err = a.UpdateTree(f.base, f.hash, j, prior)
	case domain.SubmissionAssigned:
		doc, err = a.AssignedTree(f.base, f.hash, j, prior)
	}
	if err != nil {
		return domain.Document{}, fmt.Errorf("assemble %s document: %w", kind, err)
	}
	return doc, nil
}
