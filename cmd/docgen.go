//go:build docgen

package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// NewCmdDocGen returns the hidden [cobra.Command] used for generating
// documentation.
func NewCmdDocGen() *cobra.Command {
	cmd := &cobra.Command{
		Use:    "docgen",
		Short:  "Generate documentation",
		Hidden: true,
	}

	man := &cobra.Command{
		Use:   "man [dir]",
		Short: "Generate man pages",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "docs/man"
			if len(args) > 0 {
				dir = args[0]
			}
			hdr := &doc.GenManHeader{
				Title:   "TEMPCONV",
				Section: "1",
			}
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return err
			}
			return doc.GenManTree(cmd.Root(), hdr, dir)
		},
	}

	cmd.AddCommand(man)
	return cmd
}

func init() {
	extraCommands = append(extraCommands, NewCmdDocGen)
}
