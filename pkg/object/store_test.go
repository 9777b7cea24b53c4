package object

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zlib"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(t.TempDir())
}

func TestStoreWriteRead(t *testing.T) {
	s := tempStore(t)

	payloads := map[string][]byte{
		"empty":      {},
		"single":     {0x42},
		"text":       []byte("hello world"),
		"multi-meg":  bytes.Repeat([]byte("0123456789abcdef"), 1<<18), // 4 MiB
		"binary nul": {0x00, 0x01, 0x00, 0xff},
	}
	for name, data := range payloads {
		t.Run(name, func(t *testing.T) {
			h, err := s.Write(&Blob{Data: data})
			if err != nil {
				t.Fatalf("Write: %v", err)
			}
			if !h.Valid() {
				t.Errorf("hash %q not valid", h)
			}

			got, err := s.Read(h)
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			blob, ok := got.(*Blob)
			if !ok {
				t.Fatalf("got %T, want *Blob", got)
			}
			if !bytes.Equal(blob.Data, data) {
				t.Errorf("payload mismatch: got %d bytes, want %d", len(blob.Data), len(data))
			}
		})
	}
}

func TestStoreWriteIdempotent(t *testing.T) {
	s := tempStore(t)
	blob := &Blob{Data: []byte("same content")}

	h1, err := s.Write(blob)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	h2, err := s.Write(blob)
	if err != nil {
		t.Fatalf("second Write: %v", err)
	}
	if h1 != h2 {
		t.Errorf("hashes differ: %q vs %q", h1, h2)
	}

	got, err := s.Read(h1)
	if err != nil {
		t.Fatalf("Read after rewrite: %v", err)
	}
	if !bytes.Equal(got.(*Blob).Data, blob.Data) {
		t.Error("store corrupted by duplicate write")
	}

	// Exactly one file in the bucket.
	entries, err := os.ReadDir(filepath.Join(s.root, "objects", string(h1[:2])))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("bucket entries: got %d, want 1", len(entries))
	}
}

func TestStoreDryRunHashMatchesWrite(t *testing.T) {
	s := tempStore(t)
	blob := &Blob{Data: []byte("dry run")}

	dry, err := HashOf(blob)
	if err != nil {
		t.Fatalf("HashOf: %v", err)
	}
	if s.Has(dry) {
		t.Error("HashOf wrote to the store")
	}

	written, err := s.Write(blob)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if dry != written {
		t.Errorf("dry-run hash %q != written hash %q", dry, written)
	}
}

func TestStoreFanoutLayout(t *testing.T) {
	s := tempStore(t)
	h, err := s.Write(&Blob{Data: []byte("fanout")})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	path := filepath.Join(s.root, "objects", string(h[:2]), string(h[2:]))
	if _, err := os.Stat(path); err != nil {
		t.Errorf("object not at fan-out path %s: %v", path, err)
	}
}

func TestStoreReadNotFound(t *testing.T) {
	s := tempStore(t)
	_, err := s.Read("aabbccddeeff00112233445566778899aabbccdd")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

// plant places raw (already compressed or not) bytes at the bucket path
// for the given hash, bypassing Write.
func plant(t *testing.T, s *Store, h Hash, raw []byte) {
	t.Helper()
	dir := filepath.Join(s.root, "objects", string(h[:2]))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, string(h[2:])), raw, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func deflate(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		t.Fatalf("compress: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("compress close: %v", err)
	}
	return buf.Bytes()
}

func TestStoreReadCorrupt(t *testing.T) {
	h := Hash(strings.Repeat("ab", 20))

	cases := []struct {
		name string
		raw  []byte
	}{
		{"garbage stream", []byte("not zlib at all")},
		{"no type tag", nil}, // filled below
		{"length mismatch", nil},
		{"bad declared length", nil},
	}
	cases[1].raw = deflate(t, []byte("blobnospace\x00data"))
	cases[2].raw = deflate(t, []byte("blob 5\x00abc"))
	cases[3].raw = deflate(t, []byte("blob five\x00abcde"))

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := tempStore(t)
			plant(t, s, h, tc.raw)
			if _, err := s.Read(h); !errors.Is(err, ErrCorrupt) {
				t.Errorf("got %v, want ErrCorrupt", err)
			}
		})
	}
}

func TestStoreReadUnsupportedType(t *testing.T) {
	s := tempStore(t)
	h := Hash(strings.Repeat("cd", 20))
	plant(t, s, h, deflate(t, []byte("widget 4\x00data")))
	if _, err := s.Read(h); !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("got %v, want ErrUnsupportedType", err)
	}
}

func TestStoreScanPrefix(t *testing.T) {
	s := tempStore(t)

	// Two fabricated entries sharing the 4-char prefix "abc1".
	h1 := Hash("abc123" + strings.Repeat("a", 34))
	h2 := Hash("abc124" + strings.Repeat("b", 34))
	plant(t, s, h1, []byte("x"))
	plant(t, s, h2, []byte("y"))

	both, err := s.ScanPrefix("abc1")
	if err != nil {
		t.Fatalf("ScanPrefix: %v", err)
	}
	if len(both) != 2 || both[0] != h1 || both[1] != h2 {
		t.Errorf("prefix abc1: got %v, want [%s %s]", both, h1, h2)
	}

	one, err := s.ScanPrefix("abc123")
	if err != nil {
		t.Fatalf("ScanPrefix: %v", err)
	}
	if len(one) != 1 || one[0] != h1 {
		t.Errorf("prefix abc123: got %v, want [%s]", one, h1)
	}

	// Case-insensitive, normalized to lowercase.
	upper, err := s.ScanPrefix("ABC123")
	if err != nil {
		t.Fatalf("ScanPrefix: %v", err)
	}
	if len(upper) != 1 || upper[0] != h1 {
		t.Errorf("prefix ABC123: got %v, want [%s]", upper, h1)
	}

	none, err := s.ScanPrefix("ffff")
	if err != nil {
		t.Fatalf("ScanPrefix: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("prefix ffff: got %v, want none", none)
	}

	if _, err := s.ScanPrefix("ab"); err == nil {
		t.Error("prefix shorter than 4: got nil error")
	}
}
