package tlv

import (
	"errors"

	"github.com/xiaojian-hong/yomo-codec/internal/logging"
	"github.com/xiaojian-hong/yomo-codec/internal/observability"
	"github.com/xiaojian-hong/yomo-codec/protocol"
)

const opScan = "tlv.Scanner"

// Limits constrains scanner memory use. Zero means unlimited.
type Limits struct {
	MaxPayloadBytes uint64
	MaxRecords      int
}

func DefaultLimits() Limits {
	return Limits{
		MaxPayloadBytes: 8 * 1024 * 1024,
		MaxRecords:      0,
	}
}

// Scanner walks consecutive records in one buffer.
//
//	s := tlv.NewScanner(buf, tlv.DefaultLimits())
//	for s.Next() {
//		rec := s.Record()
//		...
//	}
//	if err := s.Err(); err != nil { ... }
//
// Scanning stops at the first failure. Offset then points at the record that
// failed, so a caller can choose where to resume with NewScannerAt.
type Scanner struct {
	buf    []byte
	limits Limits
	cursor int
	count  int
	rec    Record
	err    error
}

func NewScanner(buf []byte, limits Limits) *Scanner {
	return NewScannerAt(buf, 0, limits)
}

func NewScannerAt(buf []byte, offset int, limits Limits) *Scanner {
	return &Scanner{buf: buf, limits: limits, cursor: offset}
}

// Next decodes the record at the cursor. It returns false at the end of the
// buffer or on error.
func (s *Scanner) Next() bool {
	if s.err != nil || s.cursor == len(s.buf) {
		return false
	}
	if s.limits.MaxRecords > 0 && s.count >= s.limits.MaxRecords {
		s.fail(protocol.Errorf(opScan, s.cursor, ErrLimitExceeded, "more than %d records", s.limits.MaxRecords))
		return false
	}
	h, err := decodeHeader(s.buf, s.cursor)
	if err != nil {
		s.fail(err)
		return false
	}
	if s.limits.MaxPayloadBytes > 0 && uint64(h.length) > s.limits.MaxPayloadBytes {
		s.fail(protocol.Errorf(opScan, s.cursor, ErrLimitExceeded, "payload %d exceeds %d bytes", h.length, s.limits.MaxPayloadBytes))
		return false
	}
	s.rec = materialize(s.buf, s.cursor, h)
	s.cursor = s.rec.Cursor
	s.count++
	observability.RecordDecoded(s.rec.Tag.String(), s.rec.Length)
	return true
}

// Record returns the record decoded by the last successful Next.
func (s *Scanner) Record() Record {
	return s.rec
}

// Offset returns the cursor: the next unread byte, or the failing record's start.
func (s *Scanner) Offset() int {
	return s.cursor
}

// Count returns how many records have been decoded.
func (s *Scanner) Count() int {
	return s.count
}

func (s *Scanner) Err() error {
	return s.err
}

func (s *Scanner) fail(err error) {
	s.err = err
	s.rec = Record{}
	reason := failureReason(err)
	observability.RecordDecodeError(reason)
	l := logging.Logger()
	l.Debug().
		Err(err).
		Int("offset", s.cursor).
		Int("records", s.count).
		Str("reason", reason).
		Msg("tlv scan stopped")
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrLimitExceeded):
		return "limit_exceeded"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrOutOfBounds):
		return "out_of_bounds"
	case errors.Is(err, ErrInvalidEncoding):
		return "invalid_encoding"
	default:
		return "other"
	}
}

// DecodeAll decodes every record in buf. On failure no records are returned.
func DecodeAll(buf []byte, limits Limits) ([]Record, error) {
	records := make([]Record, 0, 4)
	s := NewScanner(buf, limits)
	for s.Next() {
		records = append(records, s.Record())
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
