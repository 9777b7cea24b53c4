package repo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/witscm/wit/pkg/index"
)

func TestReadIndex(t *testing.T) {
	r := tempRepo(t)

	want := &index.Index{Version: 2, Entries: []index.Entry{{
		CTimeSec:  100,
		MTimeSec:  200,
		ModeType:  index.ModeRegular,
		ModePerms: 0o644,
		Size:      5,
		Hash:      "aabbccddeeff00112233445566778899aabbccdd",
		Name:      "hello.txt",
	}}}
	raw, err := index.Encode(want)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if err := os.WriteFile(filepath.Join(r.WitDir, "index"), raw, 0o644); err != nil {
		t.Fatalf("write index: %v", err)
	}

	got, err := r.ReadIndex()
	if err != nil {
		t.Fatalf("ReadIndex: %v", err)
	}
	if len(got.Entries) != 1 || got.Entries[0] != want.Entries[0] {
		t.Errorf("got %+v, want %+v", got.Entries, want.Entries)
	}
}

func TestReadIndexMissing(t *testing.T) {
	r := tempRepo(t)
	if _, err := r.ReadIndex(); err == nil {
		t.Error("missing index: got nil error")
	}
}
