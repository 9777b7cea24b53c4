package object

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zlib"
)

// Store is a content-addressed object store with a 2-character fan-out
// directory layout: objects/ab/cdef0123... Each file holds the
// deflate-compressed envelope "type len\0payload".
type Store struct {
	root string
}

// NewStore creates a Store rooted at the given directory. The objects/
// subdirectory is created lazily on first write.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// objectPath returns the filesystem path for a given hash.
func (s *Store) objectPath(h Hash) string {
	return filepath.Join(s.root, "objects", string(h[:2]), string(h[2:]))
}

// Has reports whether the store contains an object with the given hash.
func (s *Store) Has(h Hash) bool {
	if !h.Valid() {
		return false
	}
	_, err := os.Stat(s.objectPath(h))
	return err == nil
}

// Write stores an object and returns its content hash. Storage is
// append-only: writing a hash that already exists is a no-op, and new
// objects land via temp file + rename so a bucket never holds a partial
// write.
func (s *Store) Write(obj Object) (Hash, error) {
	payload, err := Marshal(obj)
	if err != nil {
		return "", fmt.Errorf("object write: %w", err)
	}
	raw := envelope(obj.Type(), payload)

	h, err := HashOf(obj)
	if err != nil {
		return "", fmt.Errorf("object write: %w", err)
	}

	// Fast path: already exists.
	if s.Has(h) {
		return h, nil
	}

	dir := filepath.Join(s.root, "objects", string(h[:2]))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("object write mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return "", fmt.Errorf("object write tmpfile: %w", err)
	}
	tmpName := tmp.Name()

	zw := zlib.NewWriter(tmp)
	if _, err := zw.Write(raw); err != nil {
		zw.Close()
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("object write compress: %w", err)
	}
	if err := zw.Close(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("object write compress close: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("object write close: %w", err)
	}

	if err := os.Rename(tmpName, s.objectPath(h)); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("object write rename: %w", err)
	}

	return h, nil
}

// Read retrieves and decodes an object by hash. It validates the envelope:
// the declared payload length must match the byte count that follows it.
func (s *Store) Read(h Hash) (Object, error) {
	if !h.Valid() {
		return nil, fmt.Errorf("object read %q: not a full hash: %w", h, ErrNotFound)
	}
	f, err := os.Open(s.objectPath(h))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("object read %s: %w", h, ErrNotFound)
		}
		return nil, fmt.Errorf("object read %s: %w", h, err)
	}
	defer f.Close()

	zr, err := zlib.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("object read %s: bad compressed stream: %w", h, ErrCorrupt)
	}
	raw, err := io.ReadAll(zr)
	if cerr := zr.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, fmt.Errorf("object read %s: bad compressed stream: %w", h, ErrCorrupt)
	}

	// Parse envelope: "type len\0payload".
	spc := bytes.IndexByte(raw, ' ')
	if spc < 0 {
		return nil, fmt.Errorf("object read %s: no type tag: %w", h, ErrCorrupt)
	}
	nul := bytes.IndexByte(raw[spc:], 0)
	if nul < 0 {
		return nil, fmt.Errorf("object read %s: no envelope terminator: %w", h, ErrCorrupt)
	}
	nul += spc

	objType := Type(raw[:spc])
	size, err := strconv.Atoi(string(raw[spc+1 : nul]))
	if err != nil {
		return nil, fmt.Errorf("object read %s: bad declared length: %w", h, ErrCorrupt)
	}
	payload := raw[nul+1:]
	if size != len(payload) {
		return nil, fmt.Errorf("object read %s: length mismatch (header=%d, actual=%d): %w", h, size, len(payload), ErrCorrupt)
	}

	obj, err := Unmarshal(objType, payload)
	if err != nil {
		return nil, fmt.Errorf("object read %s: %w", h, err)
	}
	return obj, nil
}

// ScanPrefix enumerates stored hashes starting with the given hex prefix.
// The prefix is matched case-insensitively and must be at least 4
// characters so a scan never walks the whole fan-out.
func (s *Store) ScanPrefix(prefix string) ([]Hash, error) {
	prefix = strings.ToLower(prefix)
	if len(prefix) < 4 || len(prefix) > 2*RawHashLen {
		return nil, fmt.Errorf("scan prefix %q: length must be 4..%d", prefix, 2*RawHashLen)
	}

	bucket := prefix[:2]
	dir := filepath.Join(s.root, "objects", bucket)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan prefix %q: %w", prefix, err)
	}

	rest := prefix[2:]
	var matches []Hash
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), rest) {
			continue
		}
		h := Hash(bucket + e.Name())
		if h.Valid() {
			matches = append(matches, h)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i] < matches[j] })
	return matches, nil
}
