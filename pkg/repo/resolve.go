package repo

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/witscm/wit/pkg/object"
)

var (
	// ErrNameNotFound reports a name with no matching object.
	ErrNameNotFound = errors.New("name not found")

	// ErrAmbiguousName reports a short hash matching several objects.
	ErrAmbiguousName = errors.New("ambiguous name")

	// ErrNoSuchConversion reports a resolved object that cannot be
	// coerced to the requested type.
	ErrNoSuchConversion = errors.New("no such conversion")
)

// hashNameRE matches names usable as a hash or hash prefix.
var hashNameRE = regexp.MustCompile(`^[0-9A-Fa-f]{4,40}$`)

// maxTypeFollowDepth bounds the tag/commit indirection walk in Find so a
// tag chain that loops back on itself reports an error.
const maxTypeFollowDepth = 16

// ResolveName maps a name to its candidate hashes. "HEAD" resolves through
// the reference namespace; a 4-40 character hex string is an exact hash
// (40 chars, lowercased) or a prefix matched against the store. Any other
// name yields no candidates; branch and tag namespace lookups would extend
// this function.
func (r *Repo) ResolveName(name string) ([]object.Hash, error) {
	if strings.TrimSpace(name) == "" {
		return nil, nil
	}

	if name == "HEAD" {
		h, err := r.ResolveRef("HEAD")
		if err != nil {
			return nil, err
		}
		return []object.Hash{h}, nil
	}

	if hashNameRE.MatchString(name) {
		lower := strings.ToLower(name)
		if len(lower) == 2*object.RawHashLen {
			return []object.Hash{object.Hash(lower)}, nil
		}
		return r.Store.ScanPrefix(lower)
	}

	return nil, nil
}

// Find resolves a name to exactly one object hash, optionally coercing the
// result to the wanted type by following indirection: a tag yields its
// "object" target, and a commit yields its "tree" when a tree is wanted.
// Every other mismatch fails with ErrNoSuchConversion.
func (r *Repo) Find(name string, want object.Type) (object.Hash, error) {
	candidates, err := r.ResolveName(name)
	if err != nil {
		return "", fmt.Errorf("find %q: %w", name, err)
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("find %q: %w", name, ErrNameNotFound)
	}
	if len(candidates) > 1 {
		strs := make([]string, len(candidates))
		for i, c := range candidates {
			strs[i] = string(c)
		}
		return "", fmt.Errorf("find %q: %w: candidates are %s", name, ErrAmbiguousName, strings.Join(strs, ", "))
	}

	h := candidates[0]
	if want == "" {
		return h, nil
	}

	for depth := 0; depth < maxTypeFollowDepth; depth++ {
		obj, err := r.Store.Read(h)
		if err != nil {
			return "", fmt.Errorf("find %q: %w", name, err)
		}
		if obj.Type() == want {
			return h, nil
		}

		switch o := obj.(type) {
		case *object.Tag:
			target, ok := o.Target()
			if !ok {
				return "", fmt.Errorf("find %q: tag %s has no object header: %w", name, h, ErrNoSuchConversion)
			}
			h = target
		case *object.Commit:
			if want != object.TypeTree {
				return "", fmt.Errorf("find %q: cannot convert commit to %s: %w", name, want, ErrNoSuchConversion)
			}
			tree, ok := o.TreeHash()
			if !ok {
				return "", fmt.Errorf("find %q: commit %s has no tree header: %w", name, h, ErrNoSuchConversion)
			}
			h = tree
		default:
			return "", fmt.Errorf("find %q: cannot convert %s to %s: %w", name, obj.Type(), want, ErrNoSuchConversion)
		}
	}
	return "", fmt.Errorf("find %q: indirection too deep: %w", name, ErrReferenceCycle)
}
