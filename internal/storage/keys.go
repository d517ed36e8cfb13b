package storage

import (
	"bytes"
	"encoding/binary"
	"errors"
	"github.com/litetable/litetable-mapper/internal/litetable"
)

var errCorruptKey = errors.New("corrupt cell key")

// cellKey is the decoded form of a stored key.
type cellKey struct {
	keyspace string
	rowKey   string
	family   string
	super    string
	column   string
}

// writePart writes a uint32 length (BigEndian) followed by the bytes, so one part can never be
// mistaken for the prefix of another.
func writePart(buf *bytes.Buffer, s string) {
	var n [4]byte
	binary.BigEndian.PutUint32(n[:], uint32(len(s)))
	buf.Write(n[:])
	buf.WriteString(s)
}

// encodeKey builds the key (or key prefix) for the given parts, outermost first.
func encodeKey(parts ...string) []byte {
	var buf bytes.Buffer
	for _, p := range parts {
		writePart(&buf, p)
	}
	return buf.Bytes()
}

func (k cellKey) bytes() []byte {
	return encodeKey(k.keyspace, k.rowKey, k.family, k.super, k.column)
}

func decodeKey(b []byte) (cellKey, error) {
	parts := make([]string, 0, 5)
	for len(b) > 0 {
		if len(b) < 4 {
			return cellKey{}, errCorruptKey
		}
		n := binary.BigEndian.Uint32(b[:4])
		b = b[4:]
		if uint32(len(b)) < n {
			return cellKey{}, errCorruptKey
		}
		parts = append(parts, string(b[:n]))
		b = b[n:]
	}
	if len(parts) != 5 {
		return cellKey{}, errCorruptKey
	}
	return cellKey{parts[0], parts[1], parts[2], parts[3], parts[4]}, nil
}

// pathPrefix returns the prefix covering everything path addresses inside one row.
func pathPrefix(keyspace, rowKey string, path litetable.ColumnPath) []byte {
	switch {
	case path.Column != "":
		return encodeKey(keyspace, rowKey, path.Family, path.Super, path.Column)
	case path.Super != "":
		return encodeKey(keyspace, rowKey, path.Family, path.Super)
	default:
		return encodeKey(keyspace, rowKey, path.Family)
	}
}

// prefixEnd returns the smallest key greater than every key starting with prefix, or nil when
// no such key exists.
func prefixEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil
}

// encodeValue prefixes the value with its write time.
func encodeValue(cell litetable.Cell) []byte {
	out := make([]byte, 8+len(cell.Value))
	binary.BigEndian.PutUint64(out[:8], uint64(cell.Timestamp))
	copy(out[8:], cell.Value)
	return out
}

func decodeValue(b []byte) (value []byte, timestamp int64, err error) {
	if len(b) < 8 {
		return nil, 0, errors.New("corrupt cell value")
	}
	return append([]byte(nil), b[8:]...), int64(binary.BigEndian.Uint64(b[:8])), nil
}
