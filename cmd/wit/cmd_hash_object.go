package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/witscm/wit/pkg/object"
	"github.com/witscm/wit/pkg/repo"
)

func newHashObjectCmd() *cobra.Command {
	var (
		typeName string
		write    bool
	)

	cmd := &cobra.Command{
		Use:   "hash-object [-t type] [-w] <path>",
		Short: "Compute an object hash and optionally store the object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := object.Type(typeName)
			if !object.KnownType(t) {
				return fmt.Errorf("hash-object: unknown type %q", typeName)
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("hash-object: %w", err)
			}
			obj, err := object.Unmarshal(t, data)
			if err != nil {
				return err
			}

			var h object.Hash
			if write {
				r, err := repo.Open(".")
				if err != nil {
					return err
				}
				h, err = r.Store.Write(obj)
				if err != nil {
					return err
				}
			} else {
				h, err = object.HashOf(obj)
				if err != nil {
					return err
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), h)
			return nil
		},
	}

	cmd.Flags().StringVarP(&typeName, "type", "t", "blob", "object type")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "actually write the object into the store")
	return cmd
}
