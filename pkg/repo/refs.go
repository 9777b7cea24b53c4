package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/witscm/wit/pkg/object"
)

// ErrReferenceCycle reports a symbolic reference chain that never reaches
// a direct hash.
var ErrReferenceCycle = errors.New("reference cycle")

// maxSymbolicRefDepth bounds symbolic ref chains. Anything deeper is
// treated as a cycle.
const maxSymbolicRefDepth = 16

// symrefPrefix marks a ref file whose value is another ref name.
const symrefPrefix = "ref: "

// Ref is one resolved entry of the reference namespace.
type Ref struct {
	Name string // slash-separated, e.g. "refs/heads/main"
	Hash object.Hash
}

// ResolveRef resolves a ref name (e.g. "HEAD", "refs/heads/main") to an
// object hash, following "ref: " indirection until a direct hash is
// reached. Chains longer than maxSymbolicRefDepth fail with
// ErrReferenceCycle instead of looping.
func (r *Repo) ResolveRef(name string) (object.Hash, error) {
	cur := name
	for depth := 0; depth < maxSymbolicRefDepth; depth++ {
		data, err := os.ReadFile(filepath.Join(r.WitDir, filepath.FromSlash(cur)))
		if err != nil {
			return "", fmt.Errorf("resolve ref %q: %w", cur, err)
		}
		content := strings.TrimRight(string(data), "\n")

		target, ok := strings.CutPrefix(content, symrefPrefix)
		if !ok {
			return object.Hash(content), nil
		}
		cur = target
	}
	return "", fmt.Errorf("resolve ref %q: %w", name, ErrReferenceCycle)
}

// CreateRef writes a direct ref under .wit/, creating parent directories
// as needed. Name is slash-separated relative to the .wit/ root.
func (r *Repo) CreateRef(name string, h object.Hash) error {
	path := filepath.Join(r.WitDir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create ref %q: mkdir: %w", name, err)
	}
	if err := os.WriteFile(path, []byte(string(h)+"\n"), 0o644); err != nil {
		return fmt.Errorf("create ref %q: %w", name, err)
	}
	return nil
}

// ListRefs walks .wit/refs and returns every reference fully resolved,
// sorted by name.
func (r *Repo) ListRefs() ([]Ref, error) {
	root := filepath.Join(r.WitDir, "refs")

	var refs []Ref
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(r.WitDir, path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)

		h, err := r.ResolveRef(name)
		if err != nil {
			return err
		}
		refs = append(refs, Ref{Name: name, Hash: h})
		return nil
	})
	if os.IsNotExist(err) {
		return refs, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list refs: %w", err)
	}
	return refs, nil
}
