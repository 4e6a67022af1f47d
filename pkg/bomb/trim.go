package bomb

import "unicode/utf8"

// Trim strips a leading byte-order mark from a string value.
// Any value that is not a string, nil included, is returned as is.
// Values of named string types (type S string) are not inspected either.
func Trim(input any) any {
	s, ok := input.(string)
	if !ok {
		return input
	}

	return TrimString(s)
}

// TrimString strips a leading byte-order mark from a raw-decoded string.
// The remainder is returned untouched; a second mark behind the first one stays.
func TrimString(s string) string {
	_, offset, ok := match(s)
	if !ok {
		return s
	}

	return s[offset:]
}

// TrimBytes strips a leading byte-order mark from undecoded bytes.
// The returned slice shares the backing array of b.
func TrimBytes(b []byte) []byte {
	sig, ok := DetectBytes(b)
	if !ok {
		return b
	}

	return b[sig.Len():]
}

// Detect reports the longest signature that prefixes a raw-decoded string.
func Detect(s string) (Signature, bool) {
	sig, _, ok := match(s)

	return sig, ok
}

// DetectBytes reports the longest signature that prefixes undecoded bytes.
func DetectBytes(b []byte) (Signature, bool) {
	var (
		best  Signature
		found bool
	)

	for _, sig := range signatures {
		if len(b) < sig.Len() || string(b[:sig.Len()]) != sig.Mark {
			continue
		}

		if !found || sig.Len() > best.Len() {
			best, found = sig, true
		}
	}

	return best, found
}

// match finds the longest signature whose bytes equal the code points of the first
// characters of s. It returns the byte offset in s right behind the matched characters.
func match(s string) (Signature, int, bool) {
	var (
		best       Signature
		bestOffset int
		found      bool
	)

	for _, sig := range signatures {
		offset, ok := hasRawPrefix(s, sig.Mark)
		if !ok {
			continue
		}

		if !found || sig.Len() > best.Len() {
			best, bestOffset, found = sig, offset, true
		}
	}

	return best, bestOffset, found
}

// hasRawPrefix compares the leading runes of s with the bytes of mark, one rune per byte.
func hasRawPrefix(s, mark string) (int, bool) {
	offset := 0

	for i := range len(mark) {
		if offset >= len(s) {
			return 0, false
		}

		// Invalid UTF-8 decodes to RuneError, which never equals a mark byte.
		r, size := utf8.DecodeRuneInString(s[offset:])
		if r != rune(mark[i]) {
			return 0, false
		}

		offset += size
	}

	return offset, true
}
