package tlv

import "fmt"

// Tag is the one-byte type discriminator at the head of every record.
// Codes outside the known set are carried through untouched.
type Tag uint8

// Type codes from the flat tag enumeration.
const (
	TagString  Tag = 0x00
	TagInteger Tag = 0x01
	TagFloat   Tag = 0x02
	TagUUID    Tag = 0x03
	TagSCode   Tag = 0x04
	TagBinary  Tag = 0x80
)

var tagNames = map[Tag]string{
	TagString:  "String",
	TagInteger: "Integer",
	TagFloat:   "Float",
	TagUUID:    "UUID",
	TagSCode:   "SCode",
	TagBinary:  "Binary",
}

func TagFromByte(b byte) Tag {
	return Tag(b)
}

func (t Tag) Byte() byte {
	return byte(t)
}

// Known reports whether t is part of the enumeration.
func (t Tag) Known() bool {
	_, ok := tagNames[t]
	return ok
}

func (t Tag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Tag(0x%02x)", byte(t))
}
