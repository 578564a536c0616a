// Package tlv frames typed, length-delimited records.
//
// A record is one tag byte, a zigzag varint payload length, and exactly that
// many payload bytes. Decoding reads the three parts in order and either
// returns a fully populated record or an error; the payload is always copied
// out of the caller's buffer.
package tlv

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/xiaojian-hong/yomo-codec/protocol"
	"github.com/xiaojian-hong/yomo-codec/protocol/varint"
)

const (
	opDecode       = "tlv.Decode"
	opAsInteger    = "tlv.AsInteger"
	opAsUTF8String = "tlv.AsUTF8String"
	opAsFloat      = "tlv.AsFloat"
	opAsUUID       = "tlv.AsUUID"
)

var (
	ErrInvalidInput    = protocol.ErrInvalidInput
	ErrOutOfBounds     = protocol.ErrOutOfBounds
	ErrInvalidEncoding = protocol.ErrInvalidEncoding
	ErrNotImplemented  = protocol.ErrNotImplemented

	ErrTagMismatch   = fmt.Errorf("%w: tag mismatch", protocol.ErrInvalidEncoding)
	ErrLimitExceeded = errors.New("tlv: limit exceeded")
)

// Record is one decoded TLV record.
// Offset and Cursor locate the record in the buffer it was decoded from;
// Cursor is the offset of the first byte after the payload.
type Record struct {
	Tag     Tag
	Length  int
	Payload []byte
	Offset  int
	Cursor  int
}

type header struct {
	tag    Tag
	length int
	start  int
}

// Decode reads the record starting at buf[offset] and returns it with the
// cursor for the next record.
func Decode(buf []byte, offset int) (Record, int, error) {
	h, err := decodeHeader(buf, offset)
	if err != nil {
		return Record{}, offset, err
	}
	rec := materialize(buf, offset, h)
	return rec, rec.Cursor, nil
}

func decodeHeader(buf []byte, offset int) (header, error) {
	if offset < 0 || offset >= len(buf) {
		return header{}, protocol.Errorf(opDecode, offset, ErrInvalidInput, "no tag byte in buffer of %d", len(buf))
	}
	tag := TagFromByte(buf[offset])

	lengthAt := offset + 1
	if lengthAt >= len(buf) {
		return header{}, protocol.Errorf(opDecode, offset, ErrInvalidInput, "no length byte after tag %s", tag)
	}
	length, n, err := varint.DecodeSigned(buf, lengthAt)
	if err != nil {
		if errors.Is(err, ErrOutOfBounds) {
			return header{}, protocol.Errorf(opDecode, offset, ErrInvalidInput, "truncated length: %v", err)
		}
		return header{}, protocol.Errorf(opDecode, offset, ErrInvalidEncoding, "length: %v", err)
	}
	if length < 0 {
		return header{}, protocol.Errorf(opDecode, offset, ErrInvalidEncoding, "negative length %d", length)
	}

	start := lengthAt + n
	if uint64(length) > uint64(len(buf)-start) {
		return header{}, protocol.Errorf(opDecode, offset, ErrOutOfBounds, "declared %d payload bytes, %d remain", length, len(buf)-start)
	}
	return header{tag: tag, length: int(length), start: start}, nil
}

func materialize(buf []byte, offset int, h header) Record {
	end := h.start + h.length
	payload := make([]byte, h.length)
	copy(payload, buf[h.start:end])
	return Record{
		Tag:     h.tag,
		Length:  h.length,
		Payload: payload,
		Offset:  offset,
		Cursor:  end,
	}
}

// AsInteger decodes the payload as exactly one signed varint.
// Integer and SCode records carry integer payloads.
func (r Record) AsInteger() (int64, error) {
	if r.Tag != TagInteger && r.Tag != TagSCode {
		return 0, protocol.Errorf(opAsInteger, r.Offset, ErrTagMismatch, "tag %s", r.Tag)
	}
	if len(r.Payload) == 0 {
		return 0, protocol.Errorf(opAsInteger, r.Offset, ErrInvalidEncoding, "empty payload")
	}
	v, n, err := varint.DecodeSigned(r.Payload, 0)
	if err != nil {
		return 0, protocol.Errorf(opAsInteger, r.Offset, ErrInvalidEncoding, "nested varint: %v", err)
	}
	if n != len(r.Payload) {
		return 0, protocol.Errorf(opAsInteger, r.Offset, ErrInvalidEncoding, "%d trailing bytes after varint", len(r.Payload)-n)
	}
	return v, nil
}

// AsBinary returns a copy of the raw payload for any tag.
func (r Record) AsBinary() []byte {
	buf := make([]byte, len(r.Payload))
	copy(buf, r.Payload)
	return buf
}

func (r Record) AsUTF8String() (string, error) {
	if r.Tag != TagString {
		return "", protocol.Errorf(opAsUTF8String, r.Offset, ErrTagMismatch, "tag %s", r.Tag)
	}
	if !utf8.Valid(r.Payload) {
		return "", protocol.Errorf(opAsUTF8String, r.Offset, ErrInvalidEncoding, "malformed utf-8")
	}
	return string(r.Payload), nil
}

// AsFloat is not supported by this wire scheme version.
func (r Record) AsFloat() (float64, error) {
	return 0, protocol.Errorf(opAsFloat, r.Offset, ErrNotImplemented, "float payloads are deferred")
}

// AsUUID is not supported by this wire scheme version.
func (r Record) AsUUID() ([16]byte, error) {
	return [16]byte{}, protocol.Errorf(opAsUUID, r.Offset, ErrNotImplemented, "uuid payloads are deferred")
}
