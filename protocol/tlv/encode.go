package tlv

import "github.com/xiaojian-hong/yomo-codec/protocol/varint"

// New builds a record around a copy of payload.
func New(tag Tag, payload []byte) Record {
	buf := make([]byte, len(payload))
	copy(buf, payload)
	return Record{Tag: tag, Length: len(buf), Payload: buf}
}

// NewInteger creates an Integer record holding v as a signed varint.
func NewInteger(v int64) Record {
	payload := varint.EncodeSigned(v)
	return Record{Tag: TagInteger, Length: len(payload), Payload: payload}
}

// NewSCode creates an SCode record holding code as a signed varint.
func NewSCode(code int64) Record {
	payload := varint.EncodeSigned(code)
	return Record{Tag: TagSCode, Length: len(payload), Payload: payload}
}

// NewString creates a String record.
func NewString(v string) Record {
	return Record{Tag: TagString, Length: len(v), Payload: []byte(v)}
}

// NewBinary creates a Binary record.
func NewBinary(v []byte) Record {
	return New(TagBinary, v)
}

// Size returns the encoded size of r. The length field is derived from
// len(r.Payload), not r.Length.
func (r Record) Size() int {
	return 1 + varint.SizeSigned(int64(len(r.Payload))) + len(r.Payload)
}

// AppendTo appends the wire form of r to dst.
func (r Record) AppendTo(dst []byte) []byte {
	dst = append(dst, r.Tag.Byte())
	dst = varint.AppendSigned(dst, int64(len(r.Payload)))
	return append(dst, r.Payload...)
}

func (r Record) Encode() []byte {
	return r.AppendTo(make([]byte, 0, r.Size()))
}

func EncodeRecords(records []Record) []byte {
	total := 0
	for _, r := range records {
		total += r.Size()
	}
	out := make([]byte, 0, total)
	for _, r := range records {
		out = r.AppendTo(out)
	}
	return out
}
