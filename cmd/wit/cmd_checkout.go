package main

import (
	"github.com/spf13/cobra"
	"github.com/witscm/wit/pkg/repo"
)

func newCheckoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkout <commit> <dir>",
		Short: "Materialize a commit or tree into an empty directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			h, err := r.Find(args[0], "")
			if err != nil {
				return err
			}
			return r.Checkout(h, args[1])
		},
	}
}
