package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/witscm/wit/pkg/object"
	"github.com/witscm/wit/pkg/repo"
)

func newCatFileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cat-file <type> <object>",
		Short: "Print the payload of a repository object",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			want := object.Type(args[0])
			if !object.KnownType(want) {
				return fmt.Errorf("cat-file: unknown type %q", args[0])
			}

			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			h, err := r.Find(args[1], want)
			if err != nil {
				return err
			}
			obj, err := r.Store.Read(h)
			if err != nil {
				return err
			}
			payload, err := object.Marshal(obj)
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(payload)
			return err
		},
	}
}
