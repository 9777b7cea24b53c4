package object

import (
	"bytes"
	"fmt"
	"strings"
)

// Tree mode strings as stored on disk. Directory modes serialize with five
// digits, file modes with six.
const (
	TreeModeDir        = "40000"
	TreeModeFile       = "100644"
	TreeModeExecutable = "100755"
	TreeModeSymlink    = "120000"
)

// parseTreeEntry decodes one "mode SP name NUL raw20" record starting at
// pos and returns the entry and the position of the next record.
func parseTreeEntry(raw []byte, pos int) (TreeEntry, int, error) {
	spc := bytes.IndexByte(raw[pos:], ' ')
	if spc != 5 && spc != 6 {
		return TreeEntry{}, 0, fmt.Errorf("tree entry at byte %d: bad mode width: %w", pos, ErrMalformedTree)
	}
	mode := string(raw[pos : pos+spc])

	nul := bytes.IndexByte(raw[pos+spc:], 0)
	if nul < 0 {
		return TreeEntry{}, 0, fmt.Errorf("tree entry at byte %d: unterminated name: %w", pos, ErrMalformedTree)
	}
	name := string(raw[pos+spc+1 : pos+spc+nul])

	hashStart := pos + spc + nul + 1
	if len(raw)-hashStart < RawHashLen {
		return TreeEntry{}, 0, fmt.Errorf("tree entry %q: truncated hash: %w", name, ErrMalformedTree)
	}
	h, err := HashFromRaw(raw[hashStart : hashStart+RawHashLen])
	if err != nil {
		return TreeEntry{}, 0, fmt.Errorf("tree entry %q: %w", name, err)
	}

	return TreeEntry{Mode: mode, Name: name, Hash: h}, hashStart + RawHashLen, nil
}

// UnmarshalTree decodes the packed binary list of tree entries, preserving
// on-disk order.
func UnmarshalTree(data []byte) (*Tree, error) {
	tr := &Tree{}
	pos := 0
	for pos < len(data) {
		entry, next, err := parseTreeEntry(data, pos)
		if err != nil {
			return nil, err
		}
		tr.Entries = append(tr.Entries, entry)
		pos = next
	}
	return tr, nil
}

// MarshalTree encodes entries in their stored order. The entry hash is
// written as fixed-width big-endian bytes so leading zero bytes are kept.
func MarshalTree(tr *Tree) ([]byte, error) {
	var buf bytes.Buffer
	for _, e := range tr.Entries {
		if len(e.Mode) != 5 && len(e.Mode) != 6 {
			return nil, fmt.Errorf("tree entry %q: bad mode %q: %w", e.Name, e.Mode, ErrMalformedTree)
		}
		if strings.IndexByte(e.Name, 0) >= 0 {
			return nil, fmt.Errorf("tree entry name contains NUL: %w", ErrMalformedTree)
		}
		raw, err := e.Hash.Raw()
		if err != nil {
			return nil, fmt.Errorf("tree entry %q: %w", e.Name, err)
		}
		buf.WriteString(e.Mode)
		buf.WriteByte(' ')
		buf.WriteString(e.Name)
		buf.WriteByte(0)
		buf.Write(raw[:])
	}
	return buf.Bytes(), nil
}
