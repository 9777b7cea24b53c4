package repo

import (
	"fmt"

	"github.com/witscm/wit/pkg/object"
)

// CommitEdge is one parent link in the commit graph.
type CommitEdge struct {
	Child  object.Hash
	Parent object.Hash
}

// CommitEdges walks the ancestry graph from start and returns every
// child-to-parent edge in visit order. The walk is iterative with a seen
// set, so shared ancestry is visited once and history depth cannot
// overflow the stack.
func (r *Repo) CommitEdges(start object.Hash) ([]CommitEdge, error) {
	var edges []CommitEdge
	seen := make(map[object.Hash]bool)
	stack := []object.Hash{start}

	for len(stack) > 0 {
		h := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[h] {
			continue
		}
		seen[h] = true

		obj, err := r.Store.Read(h)
		if err != nil {
			return nil, fmt.Errorf("commit edges: %w", err)
		}
		commit, ok := obj.(*object.Commit)
		if !ok {
			return nil, fmt.Errorf("commit edges: %s is a %s, not a commit", h, obj.Type())
		}

		for _, p := range commit.Parents() {
			edges = append(edges, CommitEdge{Child: h, Parent: p})
			stack = append(stack, p)
		}
	}
	return edges, nil
}
