package bomb

import "fmt"

// Family identifies the Unicode encoding a signature belongs to.
type Family uint8

const (
	// FamilyUnknown - no signature.
	FamilyUnknown Family = iota
	// FamilyUTF8 - UTF-8.
	FamilyUTF8
	// FamilyUTF16BE - UTF-16, big-endian.
	FamilyUTF16BE
	// FamilyUTF16LE - UTF-16, little-endian.
	FamilyUTF16LE
	// FamilyUTF32BE - UTF-32, big-endian.
	FamilyUTF32BE
	// FamilyUTF32LE - UTF-32, little-endian.
	FamilyUTF32LE
)

// String returns a human-readable representation of the Family.
func (f Family) String() string {
	switch f {
	case FamilyUnknown:
		return "unknown"
	case FamilyUTF8:
		return "UTF-8"
	case FamilyUTF16BE:
		return "UTF-16BE"
	case FamilyUTF16LE:
		return "UTF-16LE"
	case FamilyUTF32BE:
		return "UTF-32BE"
	case FamilyUTF32LE:
		return "UTF-32LE"
	default:
		return fmt.Sprintf("unknown: %d", f)
	}
}

// MaxSignatureLen is the length of the longest recognized mark.
const MaxSignatureLen = 4

// Signature is a byte-order mark of one encoding family.
type Signature struct {
	// Family is the encoding the mark belongs to.
	Family Family
	// Mark holds the raw byte values of the mark.
	Mark string
}

// Len returns the number of bytes (and raw-decoded characters) in the mark.
func (s Signature) Len() int {
	return len(s.Mark)
}

// Bytes returns a copy of the mark bytes.
func (s Signature) Bytes() []byte {
	return []byte(s.Mark)
}

// signatures is ordered so that a mark precedes every mark that is its strict prefix.
// UTF-32LE must come before UTF-16LE.
//
//nolint:gochecknoglobals // Immutable table shared by all calls.
var signatures = [...]Signature{
	{Family: FamilyUTF32BE, Mark: "\x00\x00\xFE\xFF"},
	{Family: FamilyUTF32LE, Mark: "\xFF\xFE\x00\x00"},
	{Family: FamilyUTF8, Mark: "\xEF\xBB\xBF"},
	{Family: FamilyUTF16BE, Mark: "\xFE\xFF"},
	{Family: FamilyUTF16LE, Mark: "\xFF\xFE"},
}

// Signatures returns a copy of the recognized signatures, longest first.
func Signatures() []Signature {
	result := make([]Signature, len(signatures))
	copy(result, signatures[:])

	return result
}
