// Package varint encodes 64-bit integers as little-endian base-128 groups.
//
// Each byte carries 7 payload bits in bits 0-6 and a continuation flag in
// bit 7. The first byte holds the least significant group. Signed values are
// zigzag-mapped first so that small magnitudes of either sign stay short:
// 0, -1, 1, -2, 2 become 0, 1, 2, 3, 4.
//
// Encoders always emit the minimal form. Decoders reject values that need more
// than 64 bits instead of wrapping them.
package varint

import "github.com/xiaojian-hong/yomo-codec/protocol"

// MaxLen is the longest encoding of a 64-bit value.
const MaxLen = 10

const (
	continuationBit byte = 0x80
	payloadMask     byte = 0x7F
	groupBits            = 7
)

const (
	opDecode       = "varint.Decode"
	opDecodeSigned = "varint.DecodeSigned"
)

var (
	ErrInvalidInput    = protocol.ErrInvalidInput
	ErrOutOfBounds     = protocol.ErrOutOfBounds
	ErrInvalidEncoding = protocol.ErrInvalidEncoding
)

// ZigZag maps a signed value onto the unsigned line.
func ZigZag(n int64) uint64 {
	return uint64(n<<1) ^ uint64(n>>63)
}

// UnZigZag inverts ZigZag.
func UnZigZag(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}

// Size returns the number of bytes EncodeUnsigned(v) produces.
func Size(v uint64) int {
	n := 1
	for v >= uint64(continuationBit) {
		v >>= groupBits
		n++
	}
	return n
}

// SizeSigned returns the number of bytes EncodeSigned(n) produces.
func SizeSigned(n int64) int {
	return Size(ZigZag(n))
}

func EncodeUnsigned(v uint64) []byte {
	return AppendUnsigned(make([]byte, 0, Size(v)), v)
}

func EncodeSigned(n int64) []byte {
	return EncodeUnsigned(ZigZag(n))
}

// AppendUnsigned appends the encoding of v to dst and returns the extended slice.
func AppendUnsigned(dst []byte, v uint64) []byte {
	for v >= uint64(continuationBit) {
		dst = append(dst, byte(v)&payloadMask|continuationBit)
		v >>= groupBits
	}
	return append(dst, byte(v))
}

func AppendSigned(dst []byte, n int64) []byte {
	return AppendUnsigned(dst, ZigZag(n))
}

// Decode reads one varint starting at buf[offset] and returns its magnitude
// and the number of bytes consumed. Non-minimal encodings are accepted.
func Decode(buf []byte, offset int) (uint64, int, error) {
	return decode(opDecode, buf, offset)
}

func DecodeSigned(buf []byte, offset int) (int64, int, error) {
	u, n, err := decode(opDecodeSigned, buf, offset)
	if err != nil {
		return 0, 0, err
	}
	return UnZigZag(u), n, nil
}

func decode(op string, buf []byte, offset int) (uint64, int, error) {
	if offset < 0 || offset >= len(buf) {
		return 0, 0, protocol.Errorf(op, offset, ErrInvalidInput, "no byte to read in buffer of %d", len(buf))
	}
	var v uint64
	for i := 0; i < MaxLen; i++ {
		pos := offset + i
		if pos >= len(buf) {
			return 0, 0, protocol.Errorf(op, offset, ErrOutOfBounds, "truncated after %d bytes", i)
		}
		b := buf[pos]
		// The tenth group has room for exactly one bit and must terminate.
		if i == MaxLen-1 && b > 1 {
			return 0, 0, protocol.Errorf(op, offset, ErrInvalidEncoding, "value exceeds 64 bits")
		}
		v |= uint64(b&payloadMask) << (groupBits * i)
		if b&continuationBit == 0 {
			return v, i + 1, nil
		}
	}
	return 0, 0, protocol.Errorf(op, offset, ErrInvalidEncoding, "value exceeds 64 bits")
}
