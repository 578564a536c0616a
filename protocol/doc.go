// Package protocol owns the self-describing wire primitives.
//
// Ownership boundary:
// - varint primitives (protocol/varint)
// - tlv record primitives (protocol/tlv)
// - the shared decode error taxonomy
//
// Wire scheme:
// - one flat tag byte drawn from a closed type enumeration
// - a zigzag varint payload length
// - exactly length payload bytes
//
// Decoders never retain the caller's buffer; payloads are copied.
// Schema and field-name resolution live above this layer.
package protocol
