package bomb

import (
	"fmt"

	"golang.org/x/text/encoding/charmap"
)

// DecodeRaw maps every byte of b to the character with the same code point (ISO-8859-1).
// A BOM in b therefore shows up as separate characters that TrimString recognizes.
func DecodeRaw(b []byte) (string, error) {
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("failed to decode raw bytes: %w", err)
	}

	return string(decoded), nil
}

// EncodeRaw is the inverse of DecodeRaw.
// It fails if s holds a character above U+00FF.
func EncodeRaw(s string) ([]byte, error) {
	encoded, err := charmap.ISO8859_1.NewEncoder().String(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode raw string: %w", err)
	}

	return []byte(encoded), nil
}
