package object

import (
	"bytes"
	"fmt"
)

// Field is one header key with its values in first-seen order. A key that
// repeats in the header accumulates values rather than producing a second
// Field.
type Field struct {
	Key    string
	Values []string
}

// Document is the "key-value-list-with-message" payload shared by commit
// and tag objects: an insertion-ordered header block followed by a free-form
// message. Header order is positional and survives a parse/marshal round
// trip.
type Document struct {
	Fields  []Field
	Message []byte
}

// Get returns the first value stored under key.
func (d *Document) Get(key string) (string, bool) {
	for i := range d.Fields {
		if d.Fields[i].Key == key {
			return d.Fields[i].Values[0], true
		}
	}
	return "", false
}

// Values returns all values stored under key, in header order.
func (d *Document) Values(key string) []string {
	for i := range d.Fields {
		if d.Fields[i].Key == key {
			return d.Fields[i].Values
		}
	}
	return nil
}

// Add appends a value under key, creating the field on first use and
// otherwise extending it in place.
func (d *Document) Add(key, value string) {
	for i := range d.Fields {
		if d.Fields[i].Key == key {
			d.Fields[i].Values = append(d.Fields[i].Values, value)
			return
		}
	}
	d.Fields = append(d.Fields, Field{Key: key, Values: []string{value}})
}

// ParseDocument decodes the kvlm format: "key SP value NL" header lines
// (value continuation lines start with a space, stripped on decode), a
// blank line, then the message verbatim. The message is always present,
// even when empty; input with no blank-line separator is malformed.
//
// The parser is a flat loop over header lines, not a recursion over the
// input, so header size is bounded only by memory.
func ParseDocument(raw []byte) (Document, error) {
	var d Document
	pos := 0
	for {
		if pos >= len(raw) {
			return Document{}, fmt.Errorf("kvlm parse: missing message separator: %w", ErrMalformedHeader)
		}
		if raw[pos] == '\n' {
			// The message is always materialized, even when empty.
			msg := raw[pos+1:]
			d.Message = make([]byte, len(msg))
			copy(d.Message, msg)
			return d, nil
		}

		spc := bytes.IndexByte(raw[pos:], ' ')
		nl := bytes.IndexByte(raw[pos:], '\n')
		if spc < 0 || (nl >= 0 && nl < spc) {
			return Document{}, fmt.Errorf("kvlm parse: header line at byte %d has no key separator: %w", pos, ErrMalformedHeader)
		}
		spc += pos
		key := string(raw[pos:spc])

		// The value runs to the first newline not followed by a space;
		// each "\n " is a continuation and folds back to "\n".
		end := spc
		for {
			i := bytes.IndexByte(raw[end+1:], '\n')
			if i < 0 {
				return Document{}, fmt.Errorf("kvlm parse: header %q not terminated: %w", key, ErrMalformedHeader)
			}
			end += 1 + i
			if end+1 >= len(raw) || raw[end+1] != ' ' {
				break
			}
		}
		value := bytes.ReplaceAll(raw[spc+1:end], []byte("\n "), []byte("\n"))
		d.Add(key, string(value))

		pos = end + 1
	}
}

// Marshal encodes the document back to kvlm bytes: every field in header
// order (one line per value, embedded newlines escaped as "\n "), one blank
// line, then the message.
func (d *Document) Marshal() []byte {
	var buf bytes.Buffer
	for _, f := range d.Fields {
		for _, v := range f.Values {
			buf.WriteString(f.Key)
			buf.WriteByte(' ')
			buf.Write(bytes.ReplaceAll([]byte(v), []byte("\n"), []byte("\n ")))
			buf.WriteByte('\n')
		}
	}
	buf.WriteByte('\n')
	buf.Write(d.Message)
	return buf.Bytes()
}
