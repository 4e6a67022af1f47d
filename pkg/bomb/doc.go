// Package bomb removes byte-order-mark signatures from the start of text.
// Input is expected to be decoded one character per byte (see DecodeRaw),
// so a BOM surfaces as two, three or four characters with code points 0-255.
// Only the signature at the very start is removed, and only one of them.
package bomb
