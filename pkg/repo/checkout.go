package repo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/witscm/wit/pkg/object"
)

// Checkout materializes the tree reachable from h into dest. A commit hash
// is followed to its tree. Dest must be an empty directory, or absent, in
// which case it is created.
func (r *Repo) Checkout(h object.Hash, dest string) error {
	obj, err := r.Store.Read(h)
	if err != nil {
		return fmt.Errorf("checkout: %w", err)
	}

	if c, ok := obj.(*object.Commit); ok {
		treeHash, ok := c.TreeHash()
		if !ok {
			return fmt.Errorf("checkout: commit %s has no tree header", h)
		}
		obj, err = r.Store.Read(treeHash)
		if err != nil {
			return fmt.Errorf("checkout: %w", err)
		}
	}

	tree, ok := obj.(*object.Tree)
	if !ok {
		return fmt.Errorf("checkout: %s is a %s, not a tree or commit", h, obj.Type())
	}

	if info, err := os.Stat(dest); err == nil {
		if !info.IsDir() {
			return fmt.Errorf("checkout: %s is not a directory", dest)
		}
		entries, err := os.ReadDir(dest)
		if err != nil {
			return fmt.Errorf("checkout: %w", err)
		}
		if len(entries) > 0 {
			return fmt.Errorf("checkout: %s is not empty", dest)
		}
	} else if err := os.MkdirAll(dest, 0o755); err != nil {
		return fmt.Errorf("checkout: mkdir %s: %w", dest, err)
	}

	// Walk with an explicit work list rather than recursion, so tree depth
	// is bounded only by memory.
	type work struct {
		tree *object.Tree
		dir  string
	}
	stack := []work{{tree: tree, dir: dest}}

	for len(stack) > 0 {
		w := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, entry := range w.tree.Entries {
			child, err := r.Store.Read(entry.Hash)
			if err != nil {
				return fmt.Errorf("checkout %s: %w", entry.Name, err)
			}
			target := filepath.Join(w.dir, entry.Name)

			switch c := child.(type) {
			case *object.Tree:
				if err := os.Mkdir(target, 0o755); err != nil {
					return fmt.Errorf("checkout %s: %w", entry.Name, err)
				}
				stack = append(stack, work{tree: c, dir: target})
			case *object.Blob:
				perm := os.FileMode(0o644)
				if entry.Mode == object.TreeModeExecutable {
					perm = 0o755
				}
				if err := os.WriteFile(target, c.Data, perm); err != nil {
					return fmt.Errorf("checkout %s: %w", entry.Name, err)
				}
			default:
				return fmt.Errorf("checkout %s: unexpected %s object in tree", entry.Name, child.Type())
			}
		}
	}
	return nil
}
