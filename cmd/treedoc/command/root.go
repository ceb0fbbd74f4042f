// Package command provides the root and sub-commands of the treedoc CLI.
// Each sub-command reads a journey (and optionally a prior tree spec) from
// YAML or JSON files, runs the assembler, and prints JSON on stdout.
//
//	treedoc new --journey visit.yaml --hash QmPhoto [--base URL]
//	treedoc update --journey visit.yaml --tree tree.yaml --hash QmPhoto
//	treedoc assigned --journey visit.yaml --tree tree.yaml --hash QmPhoto
//	treedoc can-update-location --journey visit.yaml [--nursery]
package command

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/treejer/ranger/backend/internal/domain"
)

const defaultGateway = "https://ipfs.treejer.com/ipfs"

// NewRootCmd builds the command tree. A fresh tree per call keeps flag state
// out of package globals.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "treedoc",
		Short: "Assemble Treejer tree documents offline",
		Long: `treedoc runs the same document assembler as the Ranger API against
local files, so field data can be checked before it is submitted.
Input files may be YAML or JSON; output is always JSON.`,
		SilenceUsage: true,
	}
	root.AddCommand(
		newAssembleCmd(domain.SubmissionNew),
		newAssembleCmd(domain.SubmissionUpdate),
		newAssembleCmd(domain.SubmissionAssigned),
		newCanUpdateLocationCmd(),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// readFile decodes a YAML or JSON file into dst. JSON is valid YAML, so one
// decoder covers both.
func readFile(path string, dst any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// clockAt returns a clock frozen at the given Unix time, or nil for the
// wall clock.
func clockAt(unix int64) func() time.Time {
	if unix == 0 {
		return nil
	}
	t := time.Unix(unix, 0)
	return func() time.Time { return t }
}
