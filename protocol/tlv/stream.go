package tlv

import (
	"errors"
	"io"

	"github.com/xiaojian-hong/yomo-codec/protocol"
	"github.com/xiaojian-hong/yomo-codec/protocol/varint"
)

const opReadRecord = "tlv.ReadRecord"

// ReadRecord reads one record from r. It returns io.EOF when r ends before
// the tag byte; a record cut short after that is an error.
//
// Limits.MaxPayloadBytes is checked before any payload byte is read.
// The returned record has Offset 0 and Cursor set to the bytes consumed.
func ReadRecord(r io.Reader, limits Limits) (Record, error) {
	var head [1 + varint.MaxLen]byte
	if _, err := io.ReadFull(r, head[:1]); err != nil {
		return Record{}, err
	}
	tag := TagFromByte(head[0])

	n := 1
	for {
		if _, err := io.ReadFull(r, head[n:n+1]); err != nil {
			if errors.Is(err, io.EOF) {
				return Record{}, protocol.Errorf(opReadRecord, 0, ErrInvalidInput, "truncated length after tag %s", tag)
			}
			return Record{}, err
		}
		n++
		if head[n-1]&0x80 == 0 || n == len(head) {
			break
		}
	}
	length, _, err := varint.DecodeSigned(head[:n], 1)
	if err != nil {
		return Record{}, protocol.Errorf(opReadRecord, 0, ErrInvalidEncoding, "length: %v", err)
	}
	if length < 0 {
		return Record{}, protocol.Errorf(opReadRecord, 0, ErrInvalidEncoding, "negative length %d", length)
	}
	if limits.MaxPayloadBytes > 0 && uint64(length) > limits.MaxPayloadBytes {
		return Record{}, protocol.Errorf(opReadRecord, 0, ErrLimitExceeded, "payload %d exceeds %d bytes", length, limits.MaxPayloadBytes)
	}

	// Grow with the data actually read so a forged length cannot force a huge
	// allocation.
	payload, err := io.ReadAll(io.LimitReader(r, length))
	if err != nil {
		return Record{}, err
	}
	if int64(len(payload)) < length {
		return Record{}, protocol.Errorf(opReadRecord, 0, ErrOutOfBounds, "declared %d payload bytes, %d read", length, len(payload))
	}
	return Record{
		Tag:     tag,
		Length:  len(payload),
		Payload: payload,
		Cursor:  n + len(payload),
	}, nil
}

// WriteRecord writes r to w as tag and length followed by the payload.
func WriteRecord(w io.Writer, r Record) error {
	head := make([]byte, 0, 1+varint.MaxLen)
	head = append(head, r.Tag.Byte())
	head = varint.AppendSigned(head, int64(len(r.Payload)))
	if _, err := w.Write(head); err != nil {
		return err
	}
	if len(r.Payload) == 0 {
		return nil
	}
	_, err := w.Write(r.Payload)
	return err
}

func WriteRecords(w io.Writer, records []Record) error {
	for _, r := range records {
		if err := WriteRecord(w, r); err != nil {
			return err
		}
	}
	return nil
}
