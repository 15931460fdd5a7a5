package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lone-faerie/tempconv/internal/render"
	"github.com/lone-faerie/tempconv/temperature"
)

// NewCmdUnits returns the [cobra.Command] used for listing the supported units.
//
// Each unit is printed with its symbol, its name and the pattern that
// recognizes it in a literal.
//
// Usage:
//
//	tempconv units
//
// Aliases:
//
//	units, u
func NewCmdUnits() *cobra.Command {
	return &cobra.Command{
		Use:     "units",
		Aliases: []string{"u"},
		Short:   "List supported units",
		GroupID: "commands",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return render.New(cmd.OutOrStdout()).Units(temperature.Units())
		},
	}
}
