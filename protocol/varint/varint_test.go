package varint

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/xiaojian-hong/yomo-codec/internal/testutil/testlog"
	"github.com/xiaojian-hong/yomo-codec/protocol"
	"google.golang.org/protobuf/encoding/protowire"
)

func TestEncodeSignedKnownVectors(t *testing.T) {
	testlog.Start(t)
	cases := []struct {
		in   int64
		want []byte
	}{
		{0, []byte{0x00}},
		{-1, []byte{0x01}},
		{1, []byte{0x02}},
		{-2, []byte{0x03}},
		{63, []byte{0x7E}},
		{-64, []byte{0x7F}},
		{64, []byte{0x80, 0x01}},
		{255, []byte{0xFE, 0x03}},
	}
	for _, tc := range cases {
		got := EncodeSigned(tc.in)
		if !bytes.Equal(got, tc.want) {
			t.Fatalf("EncodeSigned(%d) = %x want %x", tc.in, got, tc.want)
		}
	}
}

func TestDecodeKnownVector(t *testing.T) {
	testlog.Start(t)
	buf := []byte{0x81, 0x82, 0x03}
	u, n, err := Decode(buf, 0)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if u != 49409 || n != 3 {
		t.Fatalf("got (%d, %d) want (49409, 3)", u, n)
	}
	s, n, err := DecodeSigned(buf, 0)
	if err != nil {
		t.Fatalf("decode signed: %v", err)
	}
	if s != -24705 || n != 3 {
		t.Fatalf("got (%d, %d) want (-24705, 3)", s, n)
	}
}

func TestDecodeFromOffsetStopsAtTerminator(t *testing.T) {
	testlog.Start(t)
	buf := []byte{0x01, 0x81, 0x82, 0x03, 0x01, 0x01}
	u, n, err := Decode(buf, 1)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if u != 49409 || n != 3 {
		t.Fatalf("got (%d, %d) want (49409, 3)", u, n)
	}
	u, n, err = Decode(buf, 5)
	if err != nil || u != 1 || n != 1 {
		t.Fatalf("single byte at tail: got (%d, %d, %v)", u, n, err)
	}
}

func TestSignedRoundTrip(t *testing.T) {
	testlog.Start(t)
	values := []int64{0, -1, 1, math.MinInt64, math.MaxInt64, math.MinInt64 + 1, math.MaxInt64 - 1}
	for n := int64(-1000); n <= 1000; n++ {
		values = append(values, n)
	}
	for _, v := range values {
		enc := EncodeSigned(v)
		got, n, err := DecodeSigned(enc, 0)
		if err != nil {
			t.Fatalf("decode %d (%x): %v", v, enc, err)
		}
		if got != v || n != len(enc) {
			t.Fatalf("round trip %d: got %d consumed %d of %d", v, got, n, len(enc))
		}
		if SizeSigned(v) != len(enc) {
			t.Fatalf("SizeSigned(%d) = %d want %d", v, SizeSigned(v), len(enc))
		}
	}
}

func TestUnsignedBoundaries(t *testing.T) {
	testlog.Start(t)
	cases := []struct {
		in      uint64
		wantLen int
	}{
		{0, 1},
		{127, 1},
		{128, 2},
		{16383, 2},
		{16384, 3},
		{1<<56 - 1, 8},
		{1 << 63, 10},
		{math.MaxUint64, 10},
	}
	for _, tc := range cases {
		enc := EncodeUnsigned(tc.in)
		if len(enc) != tc.wantLen {
			t.Fatalf("EncodeUnsigned(%d) len %d want %d", tc.in, len(enc), tc.wantLen)
		}
		got, n, err := Decode(enc, 0)
		if err != nil || got != tc.in || n != tc.wantLen {
			t.Fatalf("Decode(%x) = (%d, %d, %v)", enc, got, n, err)
		}
	}
	want := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x01}
	if got := EncodeUnsigned(math.MaxUint64); !bytes.Equal(got, want) {
		t.Fatalf("max uint64 encoding: %x", got)
	}
}

func TestEncodingIsMinimal(t *testing.T) {
	testlog.Start(t)
	check := func(enc []byte) {
		t.Helper()
		for i, b := range enc[:len(enc)-1] {
			if b&continuationBit == 0 {
				t.Fatalf("%x: byte %d missing continuation bit", enc, i)
			}
		}
		last := enc[len(enc)-1]
		if last&continuationBit != 0 {
			t.Fatalf("%x: last byte has continuation bit", enc)
		}
		if len(enc) > 1 && last == 0 {
			t.Fatalf("%x: redundant leading zero group", enc)
		}
	}
	for shift := 0; shift < 64; shift++ {
		v := uint64(1) << shift
		check(EncodeUnsigned(v))
		check(EncodeUnsigned(v - 1))
	}
	for n := int64(-1000); n <= 1000; n++ {
		check(EncodeSigned(n))
	}
	check(EncodeSigned(math.MinInt64))
	check(EncodeSigned(math.MaxInt64))
}

func TestMatchesProtobufWireFormat(t *testing.T) {
	testlog.Start(t)
	signed := []int64{0, -1, 1, 255, -24705, 1 << 40, math.MinInt64, math.MaxInt64}
	for _, v := range signed {
		if ZigZag(v) != protowire.EncodeZigZag(v) {
			t.Fatalf("zigzag(%d) = %d want %d", v, ZigZag(v), protowire.EncodeZigZag(v))
		}
		if UnZigZag(ZigZag(v)) != protowire.DecodeZigZag(protowire.EncodeZigZag(v)) {
			t.Fatalf("unzigzag mismatch for %d", v)
		}
		want := protowire.AppendVarint(nil, protowire.EncodeZigZag(v))
		if got := EncodeSigned(v); !bytes.Equal(got, want) {
			t.Fatalf("EncodeSigned(%d) = %x protowire %x", v, got, want)
		}
	}
	for shift := 0; shift < 64; shift += 3 {
		v := uint64(0xA5A5A5A5A5A5A5A5) >> shift
		enc := EncodeUnsigned(v)
		got, n := protowire.ConsumeVarint(enc)
		if n != len(enc) || got != v {
			t.Fatalf("protowire read %x as (%d, %d) want (%d, %d)", enc, got, n, v, len(enc))
		}
		if Size(v) != protowire.SizeVarint(v) {
			t.Fatalf("Size(%d) = %d protowire %d", v, Size(v), protowire.SizeVarint(v))
		}
	}
}

func TestAppendKeepsPrefix(t *testing.T) {
	testlog.Start(t)
	dst := []byte{0xAA}
	dst = AppendSigned(dst, 255)
	dst = AppendUnsigned(dst, 1)
	if !bytes.Equal(dst, []byte{0xAA, 0xFE, 0x03, 0x01}) {
		t.Fatalf("unexpected append result: %x", dst)
	}
}

func TestDecodeInvalidInput(t *testing.T) {
	testlog.Start(t)
	cases := []struct {
		name   string
		buf    []byte
		offset int
	}{
		{"nil buffer", nil, 0},
		{"empty buffer", []byte{}, 0},
		{"offset at end", []byte{0x01}, 1},
		{"offset past end", []byte{0x01}, 5},
		{"negative offset", []byte{0x01}, -1},
	}
	for _, tc := range cases {
		_, n, err := Decode(tc.buf, tc.offset)
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", tc.name, err)
		}
		if n != 0 {
			t.Fatalf("%s: consumed %d on failure", tc.name, n)
		}
	}
}

func TestDecodeTruncatedIsOutOfBounds(t *testing.T) {
	testlog.Start(t)
	cases := [][]byte{
		{0x80},
		{0x81, 0x82},
		{0x01, 0xFF},
		{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF},
	}
	for _, buf := range cases {
		offset := 0
		if buf[0] == 0x01 {
			offset = 1
		}
		_, _, err := Decode(buf, offset)
		if !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("%x: expected ErrOutOfBounds, got %v", buf, err)
		}
		if off, ok := protocol.OffsetOf(err); !ok || off != offset {
			t.Fatalf("%x: expected offset %d on error, got %d", buf, offset, off)
		}
	}
}

func TestDecodeOverflowIsInvalidEncoding(t *testing.T) {
	testlog.Start(t)
	cases := []struct {
		name string
		buf  []byte
	}{
		{"tenth group too wide", []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x02}},
		{"tenth group continues", []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x00}},
		{"eleven bytes", []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x01}},
	}
	for _, tc := range cases {
		_, _, err := Decode(tc.buf, 0)
		if !errors.Is(err, ErrInvalidEncoding) {
			t.Fatalf("%s: expected ErrInvalidEncoding, got %v", tc.name, err)
		}
		_, _, err = DecodeSigned(tc.buf, 0)
		if !errors.Is(err, ErrInvalidEncoding) {
			t.Fatalf("%s signed: expected ErrInvalidEncoding, got %v", tc.name, err)
		}
	}
}

func TestDecodeAcceptsNonMinimal(t *testing.T) {
	testlog.Start(t)
	u, n, err := Decode([]byte{0x81, 0x80, 0x00}, 0)
	if err != nil || u != 1 || n != 3 {
		t.Fatalf("got (%d, %d, %v) want (1, 3, nil)", u, n, err)
	}
}

func BenchmarkEncodeSigned(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = EncodeSigned(int64(i) - 1<<20)
	}
}

func BenchmarkDecode(b *testing.B) {
	buf := EncodeUnsigned(math.MaxUint64)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := Decode(buf, 0); err != nil {
			b.Fatal(err)
		}
	}
}
