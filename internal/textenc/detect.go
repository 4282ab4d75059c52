package textenc

import (
	"bytes"
	"unicode/utf8"
)

// Detect classifies raw bytes into one of the supported encodings.
//
// BOM sniffing runs first; the four-byte UTF-32 LE mark is checked before
// the shorter UTF-16 LE prefix it contains. Without a BOM the content is
// sampled: a pure 7-bit stream is Ascii, a stream with valid UTF-8
// continuation structure is Utf8NoBom, anything else is SystemDefault.
// Detection never fails; empty input resolves to Utf8NoBom.
func Detect(data []byte) Encoding {
	if len(data) == 0 {
		return Utf8NoBom
	}

	switch {
	case bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}):
		return Utf8WithBom
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE, 0x00, 0x00}):
		return Utf32Le
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}):
		return Utf16Le
	case bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		return Utf16Be
	}

	if isAllASCII(data) {
		return Ascii
	}
	if utf8.Valid(data) {
		return Utf8NoBom
	}
	return SystemDefault
}

func isAllASCII(data []byte) bool {
	for _, b := range data {
		if b > 0x7F {
			return false
		}
	}
	return true
}
