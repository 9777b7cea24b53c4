package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/witscm/wit/pkg/object"
	"github.com/witscm/wit/pkg/repo"
)

func newRevParseCmd() *cobra.Command {
	var typeName string

	cmd := &cobra.Command{
		Use:   "rev-parse <name>",
		Short: "Resolve a name to a full object hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var want object.Type
			if typeName != "" {
				want = object.Type(typeName)
				if !object.KnownType(want) {
					return fmt.Errorf("rev-parse: unknown type %q", typeName)
				}
			}

			r, err := repo.Open(".")
			if err != nil {
				return err
			}
			h, err := r.Find(args[0], want)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), h)
			return nil
		},
	}

	cmd.Flags().StringVarP(&typeName, "type", "t", "", "coerce the result to this object type")
	return cmd
}
