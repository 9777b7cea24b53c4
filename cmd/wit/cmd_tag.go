package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/witscm/wit/pkg/repo"
)

func newTagCmd() *cobra.Command {
	var (
		annotate bool
		message  string
		tagger   string
	)

	cmd := &cobra.Command{
		Use:   "tag [name] [object]",
		Short: "List tags, or create a tag pointing at an object",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			// No name: list refs/tags.
			if len(args) == 0 {
				refs, err := r.ListRefs()
				if err != nil {
					return err
				}
				for _, ref := range refs {
					if name, ok := strings.CutPrefix(ref.Name, "refs/tags/"); ok {
						fmt.Fprintln(cmd.OutOrStdout(), name)
					}
				}
				return nil
			}

			name := args[0]
			target := "HEAD"
			if len(args) > 1 {
				target = args[1]
			}

			if annotate {
				if strings.TrimSpace(message) == "" {
					message = fmt.Sprintf("tag %s", name)
				}
				_, err = r.CreateAnnotatedTag(name, target, tagger, message)
				return err
			}
			return r.CreateTag(name, target)
		},
	}

	cmd.Flags().BoolVarP(&annotate, "annotate", "a", false, "create a tag object instead of a plain ref")
	cmd.Flags().StringVarP(&message, "message", "m", "", "tag message (annotated tags)")
	cmd.Flags().StringVar(&tagger, "tagger", "", "tagger identity (annotated tags)")
	return cmd
}
