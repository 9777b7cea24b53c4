// Package index decodes and encodes the binary working-tree index file.
package index

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/witscm/wit/pkg/object"
)

var (
	// ErrBadSignature reports input without the index magic bytes.
	ErrBadSignature = errors.New("bad index signature")

	// ErrTruncated reports input that ends before a field it promised.
	ErrTruncated = errors.New("truncated index")
)

// signature is the 4-byte magic at the start of every index file.
var signature = []byte("DIRC")

const (
	headerLen     = 12
	fixedEntryLen = 62
	entryAlign    = 8

	// maxNameLen is the largest name length the 12-bit flag field can
	// carry; longer names store the overflow marker instead.
	maxNameLen = 0xFFF
)

// Mode object-type codes, the high 4 bits of an entry's mode word.
const (
	ModeRegular uint16 = 0b1000
	ModeSymlink uint16 = 0b1010
	ModeGitlink uint16 = 0b1110
)

// Entry is one decoded index record. Field layout follows the on-disk
// order; times are (seconds, nanoseconds) pairs.
type Entry struct {
	CTimeSec  uint32
	CTimeNano uint32
	MTimeSec  uint32
	MTimeNano uint32
	Dev       uint32
	Ino       uint32

	// ModeType is the 4-bit object type code (regular, symlink, gitlink);
	// ModePerms holds the low 12 permission bits.
	ModeType  uint16
	ModePerms uint16

	UID  uint32
	GID  uint32
	Size uint32
	Hash object.Hash

	AssumeValid bool
	Extended    bool
	Stage       uint8

	Name string
}

// Index is a decoded index file: the version word as stored, plus entries
// in on-disk order.
type Index struct {
	Version uint32
	Entries []Entry
}

// Decode parses raw index file bytes. The 12-byte header carries the
// signature, version and entry count; each entry is a 62-byte fixed block,
// a NUL-terminated name, and zero padding to the next 8-byte boundary
// measured from the entry's start.
func Decode(data []byte) (*Index, error) {
	if len(data) < len(signature) || !bytes.Equal(data[:len(signature)], signature) {
		return nil, fmt.Errorf("index decode: %w", ErrBadSignature)
	}
	if len(data) < headerLen {
		return nil, fmt.Errorf("index decode: header: %w", ErrTruncated)
	}

	idx := &Index{
		Version: binary.BigEndian.Uint32(data[4:8]),
	}
	count := binary.BigEndian.Uint32(data[8:12])

	pos := headerLen
	for i := uint32(0); i < count; i++ {
		entry, next, err := decodeEntry(data, pos)
		if err != nil {
			return nil, fmt.Errorf("index decode: entry %d: %w", i, err)
		}
		idx.Entries = append(idx.Entries, entry)
		pos = next
	}
	return idx, nil
}

func decodeEntry(data []byte, start int) (Entry, int, error) {
	if len(data)-start < fixedEntryLen {
		return Entry{}, 0, fmt.Errorf("fixed fields: %w", ErrTruncated)
	}
	fixed := data[start : start+fixedEntryLen]

	mode := binary.BigEndian.Uint32(fixed[24:28])
	flags := binary.BigEndian.Uint16(fixed[60:62])

	h, err := object.HashFromRaw(fixed[40:60])
	if err != nil {
		return Entry{}, 0, err
	}

	e := Entry{
		CTimeSec:    binary.BigEndian.Uint32(fixed[0:4]),
		CTimeNano:   binary.BigEndian.Uint32(fixed[4:8]),
		MTimeSec:    binary.BigEndian.Uint32(fixed[8:12]),
		MTimeNano:   binary.BigEndian.Uint32(fixed[12:16]),
		Dev:         binary.BigEndian.Uint32(fixed[16:20]),
		Ino:         binary.BigEndian.Uint32(fixed[20:24]),
		ModeType:    uint16(mode >> 12 & 0xF),
		ModePerms:   uint16(mode & 0xFFF),
		UID:         binary.BigEndian.Uint32(fixed[28:32]),
		GID:         binary.BigEndian.Uint32(fixed[32:36]),
		Size:        binary.BigEndian.Uint32(fixed[36:40]),
		Hash:        h,
		AssumeValid: flags&0x8000 != 0,
		Extended:    flags&0x4000 != 0,
		Stage:       uint8(flags >> 12 & 0x3),
	}

	nameStart := start + fixedEntryLen
	nul := bytes.IndexByte(data[nameStart:], 0)
	if nul < 0 {
		return Entry{}, 0, fmt.Errorf("name: %w", ErrTruncated)
	}
	e.Name = string(data[nameStart : nameStart+nul])

	// Advance past the NUL, then to the next 8-byte boundary relative to
	// the start of this record. Padding byte values are not validated.
	consumed := fixedEntryLen + nul + 1
	if rem := consumed % entryAlign; rem != 0 {
		consumed += entryAlign - rem
	}
	if start+consumed > len(data) {
		return Entry{}, 0, fmt.Errorf("padding: %w", ErrTruncated)
	}
	return e, start + consumed, nil
}

// Encode serializes the index symmetrically to Decode, padding each entry
// with zero bytes to the 8-byte boundary.
func Encode(idx *Index) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(signature)

	var word [4]byte
	binary.BigEndian.PutUint32(word[:], idx.Version)
	buf.Write(word[:])
	binary.BigEndian.PutUint32(word[:], uint32(len(idx.Entries)))
	buf.Write(word[:])

	for i := range idx.Entries {
		if err := encodeEntry(&buf, &idx.Entries[i]); err != nil {
			return nil, fmt.Errorf("index encode: entry %d: %w", i, err)
		}
	}
	return buf.Bytes(), nil
}

func encodeEntry(buf *bytes.Buffer, e *Entry) error {
	start := buf.Len() - headerLen

	raw, err := e.Hash.Raw()
	if err != nil {
		return err
	}

	var word [4]byte
	for _, v := range []uint32{
		e.CTimeSec, e.CTimeNano, e.MTimeSec, e.MTimeNano,
		e.Dev, e.Ino,
		uint32(e.ModeType)<<12 | uint32(e.ModePerms),
		e.UID, e.GID, e.Size,
	} {
		binary.BigEndian.PutUint32(word[:], v)
		buf.Write(word[:])
	}
	buf.Write(raw[:])

	nameLen := len(e.Name)
	if nameLen > maxNameLen {
		nameLen = maxNameLen
	}
	flags := uint16(nameLen)
	flags |= uint16(e.Stage&0x3) << 12
	if e.Extended {
		flags |= 0x4000
	}
	if e.AssumeValid {
		flags |= 0x8000
	}
	var half [2]byte
	binary.BigEndian.PutUint16(half[:], flags)
	buf.Write(half[:])

	buf.WriteString(e.Name)
	buf.WriteByte(0)

	consumed := buf.Len() - headerLen - start
	if rem := consumed % entryAlign; rem != 0 {
		for i := 0; i < entryAlign-rem; i++ {
			buf.WriteByte(0)
		}
	}
	return nil
}
