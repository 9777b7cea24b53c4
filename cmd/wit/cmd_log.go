package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/witscm/wit/pkg/object"
	"github.com/witscm/wit/pkg/repo"
)

func newLogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "log [commit]",
		Short: "Print commit ancestry as a graphviz digraph",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "HEAD"
			if len(args) > 0 {
				name = args[0]
			}

			r, err := repo.Open(".")
			if err != nil {
				return err
			}
			start, err := r.Find(name, object.TypeCommit)
			if err != nil {
				return err
			}
			edges, err := r.CommitEdges(start)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "digraph witlog {")
			for _, e := range edges {
				fmt.Fprintf(out, "  c_%s -> c_%s\n", e.Child, e.Parent)
			}
			fmt.Fprintln(out, "}")
			return nil
		},
	}
}
