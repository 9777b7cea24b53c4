package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/witscm/wit/pkg/repo"
)

func newLsFilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls-files",
		Short: "List the paths tracked by the index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}
			idx, err := r.ReadIndex()
			if err != nil {
				return err
			}
			for _, entry := range idx.Entries {
				fmt.Fprintln(cmd.OutOrStdout(), entry.Name)
			}
			return nil
		},
	}
}
