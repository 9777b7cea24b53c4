package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/witscm/wit/pkg/object"
	"github.com/witscm/wit/pkg/repo"
)

func newLsTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls-tree <object>",
		Short: "List the entries of a tree object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			h, err := r.Find(args[0], object.TypeTree)
			if err != nil {
				return err
			}
			obj, err := r.Store.Read(h)
			if err != nil {
				return err
			}
			tree, ok := obj.(*object.Tree)
			if !ok {
				return fmt.Errorf("ls-tree: %s is a %s, not a tree", h, obj.Type())
			}

			for _, entry := range tree.Entries {
				child, err := r.Store.Read(entry.Hash)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%06s %s %s\t%s\n", entry.Mode, child.Type(), entry.Hash, entry.Name)
			}
			return nil
		},
	}
}
