package object

import (
	"bytes"
	"errors"
	"reflect"
	"testing"
)

// sampleCommit is a canonical kvlm payload: repeated parent keys, a
// multi-line continuation value, and a message with embedded newlines.
var sampleCommit = []byte("tree 29ff16c9c14e2652b22f8b78bb08a5a07930c147\n" +
	"parent 206941306e8a8af65b66eaaaea388a7ae24d49a0\n" +
	"parent 123941306e8a8af65b66eaaaea388a7ae24d49a0\n" +
	"author Alice <alice@example.com> 1527025023 +0200\n" +
	"committer Alice <alice@example.com> 1527025044 +0200\n" +
	"gpgsig -----BEGIN PGP SIGNATURE-----\n" +
	" iQIzBAABCAAdFiEE\n" +
	" =lgTX\n" +
	" -----END PGP SIGNATURE-----\n" +
	"\n" +
	"Create first draft\n\nWith a second paragraph.\n")

func TestParseDocumentFields(t *testing.T) {
	d, err := ParseDocument(sampleCommit)
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}

	wantKeys := []string{"tree", "parent", "author", "committer", "gpgsig"}
	var gotKeys []string
	for _, f := range d.Fields {
		gotKeys = append(gotKeys, f.Key)
	}
	if !reflect.DeepEqual(gotKeys, wantKeys) {
		t.Errorf("field order: got %v, want %v", gotKeys, wantKeys)
	}

	if v, _ := d.Get("tree"); v != "29ff16c9c14e2652b22f8b78bb08a5a07930c147" {
		t.Errorf("tree: got %q", v)
	}

	parents := d.Values("parent")
	if len(parents) != 2 {
		t.Fatalf("parents: got %d values, want 2", len(parents))
	}
	if parents[0] != "206941306e8a8af65b66eaaaea388a7ae24d49a0" ||
		parents[1] != "123941306e8a8af65b66eaaaea388a7ae24d49a0" {
		t.Errorf("parent order not first-seen: %v", parents)
	}

	sig, _ := d.Get("gpgsig")
	wantSig := "-----BEGIN PGP SIGNATURE-----\niQIzBAABCAAdFiEE\n=lgTX\n-----END PGP SIGNATURE-----"
	if sig != wantSig {
		t.Errorf("continuation unescape: got %q, want %q", sig, wantSig)
	}

	wantMsg := "Create first draft\n\nWith a second paragraph.\n"
	if string(d.Message) != wantMsg {
		t.Errorf("message: got %q, want %q", d.Message, wantMsg)
	}
}

func TestDocumentCanonicalRoundTrip(t *testing.T) {
	d, err := ParseDocument(sampleCommit)
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	if got := d.Marshal(); !bytes.Equal(got, sampleCommit) {
		t.Errorf("serialize(parse(x)) != x:\ngot  %q\nwant %q", got, sampleCommit)
	}
}

func TestDocumentParseRoundTripLaw(t *testing.T) {
	d1, err := ParseDocument(sampleCommit)
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	d2, err := ParseDocument(d1.Marshal())
	if err != nil {
		t.Fatalf("ParseDocument(Marshal): %v", err)
	}
	if !reflect.DeepEqual(d1, d2) {
		t.Errorf("parse(serialize(parse(x))) != parse(x):\ngot  %#v\nwant %#v", d2, d1)
	}
}

func TestParseDocumentEmptyMessage(t *testing.T) {
	d, err := ParseDocument([]byte("key value\n\n"))
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	if d.Message == nil || len(d.Message) != 0 {
		t.Errorf("message: got %q, want present and empty", d.Message)
	}
}

func TestParseDocumentMessageOnly(t *testing.T) {
	d, err := ParseDocument([]byte("\njust a message"))
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	if len(d.Fields) != 0 {
		t.Errorf("fields: got %d, want 0", len(d.Fields))
	}
	if string(d.Message) != "just a message" {
		t.Errorf("message: got %q", d.Message)
	}
}

func TestParseDocumentMalformed(t *testing.T) {
	cases := []struct {
		name string
		in   []byte
	}{
		{"no space in header line", []byte("noseparator\n\nmsg")},
		{"newline before space", []byte("bad\nkey value\n\nmsg")},
		{"missing message separator", []byte("key value\n")},
		{"empty input", []byte("")},
		{"unterminated header", []byte("key value")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseDocument(tc.in); !errors.Is(err, ErrMalformedHeader) {
				t.Errorf("got %v, want ErrMalformedHeader", err)
			}
		})
	}
}

func TestDocumentRepeatedKeySerialization(t *testing.T) {
	var d Document
	d.Add("parent", "a")
	d.Add("other", "x")
	d.Add("parent", "b")
	d.Message = []byte("m")

	want := "parent a\nparent b\nother x\n\nm"
	if got := string(d.Marshal()); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDocumentValueWithNewlines(t *testing.T) {
	var d Document
	d.Add("sig", "line1\nline2\nline3")
	d.Message = []byte("msg\n")

	out := d.Marshal()
	want := "sig line1\n line2\n line3\n\nmsg\n"
	if string(out) != want {
		t.Errorf("escape: got %q, want %q", out, want)
	}

	back, err := ParseDocument(out)
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	if v, _ := back.Get("sig"); v != "line1\nline2\nline3" {
		t.Errorf("round trip: got %q", v)
	}
}
