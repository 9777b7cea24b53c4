package object

import "fmt"

// Marshal encodes an object to its canonical payload bytes. Marshaling is
// deterministic: unmarshal then marshal reproduces the input byte for byte,
// which is what keeps content hashes stable.
func Marshal(obj Object) ([]byte, error) {
	switch o := obj.(type) {
	case *Blob:
		out := make([]byte, len(o.Data))
		copy(out, o.Data)
		return out, nil
	case *Tree:
		return MarshalTree(o)
	case *Commit:
		return o.Doc.Marshal(), nil
	case *Tag:
		return o.Doc.Marshal(), nil
	default:
		return nil, fmt.Errorf("marshal %T: %w", obj, ErrUnsupportedType)
	}
}

// Unmarshal decodes payload bytes into the object variant named by the
// type tag.
func Unmarshal(t Type, data []byte) (Object, error) {
	switch t {
	case TypeBlob:
		out := make([]byte, len(data))
		copy(out, data)
		return &Blob{Data: out}, nil
	case TypeTree:
		return UnmarshalTree(data)
	case TypeCommit:
		doc, err := ParseDocument(data)
		if err != nil {
			return nil, fmt.Errorf("unmarshal commit: %w", err)
		}
		return &Commit{Doc: doc}, nil
	case TypeTag:
		doc, err := ParseDocument(data)
		if err != nil {
			return nil, fmt.Errorf("unmarshal tag: %w", err)
		}
		return &Tag{Doc: doc}, nil
	default:
		return nil, fmt.Errorf("unmarshal type %q: %w", t, ErrUnsupportedType)
	}
}
