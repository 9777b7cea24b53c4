package object

// Type identifies the kind of object stored.
type Type string

const (
	TypeBlob   Type = "blob"
	TypeTree   Type = "tree"
	TypeCommit Type = "commit"
	TypeTag    Type = "tag"
)

// KnownType reports whether t is one of the four storable object types.
func KnownType(t Type) bool {
	switch t {
	case TypeBlob, TypeTree, TypeCommit, TypeTag:
		return true
	}
	return false
}

// Object is the closed set of storable variants: *Blob, *Tree, *Commit
// and *Tag. Every codec site switches exhaustively over these four.
type Object interface {
	Type() Type
}

// Blob holds raw file data.
type Blob struct {
	Data []byte
}

func (*Blob) Type() Type { return TypeBlob }

// TreeEntry is one entry in a tree object: a mode string of 5 or 6 ASCII
// digits, a name free of NUL bytes, and the hash of the entry's target.
// Entries keep their on-disk order; the codec enforces no sorting and no
// uniqueness.
type TreeEntry struct {
	Mode string
	Name string
	Hash Hash
}

// Tree holds the entries of a directory object.
type Tree struct {
	Entries []TreeEntry
}

func (*Tree) Type() Type { return TypeTree }

// Commit is a kvlm document: ordered headers plus a message.
type Commit struct {
	Doc Document
}

func (*Commit) Type() Type { return TypeCommit }

// TreeHash returns the commit's "tree" header value.
func (c *Commit) TreeHash() (Hash, bool) {
	v, ok := c.Doc.Get("tree")
	if !ok {
		return "", false
	}
	return Hash(v), true
}

// Parents returns the commit's "parent" header values in order.
func (c *Commit) Parents() []Hash {
	vals := c.Doc.Values("parent")
	if len(vals) == 0 {
		return nil
	}
	parents := make([]Hash, len(vals))
	for i, v := range vals {
		parents[i] = Hash(v)
	}
	return parents
}

// Tag is an annotated tag: the same kvlm shape as a commit, with
// conventional headers object, type, tag and tagger.
type Tag struct {
	Doc Document
}

func (*Tag) Type() Type { return TypeTag }

// Target returns the tag's "object" header value.
func (t *Tag) Target() (Hash, bool) {
	v, ok := t.Doc.Get("object")
	if !ok {
		return "", false
	}
	return Hash(v), true
}

// TargetType returns the tag's "type" header value.
func (t *Tag) TargetType() (Type, bool) {
	v, ok := t.Doc.Get("type")
	if !ok {
		return "", false
	}
	return Type(v), true
}
